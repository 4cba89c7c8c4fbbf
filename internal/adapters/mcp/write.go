package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ikonograf/internal/application"
	"ikonograf/internal/domain"
)

// RegisterWriteTools adds the curation tools to the MCP server. All writes
// are additive: existing curated values are never overwritten.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(setLabelTool(), setLabelHandler(deps))
	s.AddTool(addHintsTool(), addHintsHandler(deps))
	s.AddTool(setDuplicateOfTool(), setDuplicateOfHandler(deps))
}

func loadRecord(deps Deps, themeID, id string) (domain.Theme, *domain.Catalog, domain.CatalogRecord, error) {
	theme, err := deps.Store.Theme(themeID)
	if err != nil {
		return domain.Theme{}, nil, domain.CatalogRecord{}, err
	}
	cat, err := deps.Store.LoadCatalog(theme)
	if err != nil {
		return domain.Theme{}, nil, domain.CatalogRecord{}, err
	}
	rec, ok := cat.Icons[id]
	if !ok {
		return domain.Theme{}, nil, domain.CatalogRecord{}, fmt.Errorf("icon %s not in catalog of %s", id, themeID)
	}
	return theme, cat, rec, nil
}

// --- set_label ---

func setLabelTool() mcp.Tool {
	return mcp.NewTool("set_label",
		mcp.WithDescription("Set an icon's display label. Fails if the icon already has one; labels are curated and never overwritten."),
		mcp.WithString("theme", mcp.Description("Theme ID"), mcp.Required()),
		mcp.WithString("identifier", mcp.Description("Icon identifier"), mcp.Required()),
		mcp.WithString("label", mcp.Description("Display label"), mcp.Required()),
	)
}

func setLabelHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		themeID := req.GetString("theme", "")
		id := req.GetString("identifier", "")
		label := strings.TrimSpace(req.GetString("label", ""))
		if themeID == "" || id == "" || label == "" {
			return toolError(fmt.Errorf("theme, identifier, and label are required"))
		}

		theme, cat, rec, err := loadRecord(deps, themeID, id)
		if err != nil {
			return toolError(err)
		}
		if rec.Label != "" {
			return toolError(&application.CuratedFieldError{ID: id, Field: "label"})
		}
		rec.Label = label
		cat.Icons[id] = rec
		if err := deps.Store.SaveCatalog(theme, cat); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Label of %s set to %q", id, label)), nil
	}
}

// --- add_hints ---

func addHintsTool() mcp.Tool {
	return mcp.NewTool("add_hints",
		mcp.WithDescription("Append search hints to an icon. Existing hints are kept; duplicates are skipped."),
		mcp.WithString("theme", mcp.Description("Theme ID"), mcp.Required()),
		mcp.WithString("identifier", mcp.Description("Icon identifier"), mcp.Required()),
		mcp.WithString("hints", mcp.Description("Comma-separated hints to add"), mcp.Required()),
	)
}

func addHintsHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		themeID := req.GetString("theme", "")
		id := req.GetString("identifier", "")
		raw := req.GetString("hints", "")
		if themeID == "" || id == "" || raw == "" {
			return toolError(fmt.Errorf("theme, identifier, and hints are required"))
		}

		theme, cat, rec, err := loadRecord(deps, themeID, id)
		if err != nil {
			return toolError(err)
		}

		added := 0
		for _, h := range strings.Split(raw, ",") {
			h = strings.TrimSpace(h)
			if h == "" || slices.Contains(rec.Hints, h) {
				continue
			}
			rec.Hints = append(rec.Hints, h)
			added++
		}
		if added == 0 {
			return mcp.NewToolResultText("No new hints to add."), nil
		}
		cat.Icons[id] = rec
		if err := deps.Store.SaveCatalog(theme, cat); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Added %d hint(s) to %s", added, id)), nil
	}
}

// --- set_duplicate_of ---

func setDuplicateOfTool() mcp.Tool {
	return mcp.NewTool("set_duplicate_of",
		mcp.WithDescription("Record that an icon is a byte-identical copy of a primary icon. Writes duplicate_of on the copy and appends to the primary's duplicates list. Fails if the copy already points elsewhere."),
		mcp.WithString("theme", mcp.Description("Theme ID"), mcp.Required()),
		mcp.WithString("identifier", mcp.Description("Identifier of the copy"), mcp.Required()),
		mcp.WithString("primary", mcp.Description("Identifier of the primary icon"), mcp.Required()),
	)
}

func setDuplicateOfHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		themeID := req.GetString("theme", "")
		id := req.GetString("identifier", "")
		primary := req.GetString("primary", "")
		if themeID == "" || id == "" || primary == "" {
			return toolError(fmt.Errorf("theme, identifier, and primary are required"))
		}
		if id == primary {
			return toolError(fmt.Errorf("an icon cannot be a duplicate of itself"))
		}

		theme, cat, rec, err := loadRecord(deps, themeID, id)
		if err != nil {
			return toolError(err)
		}
		primaryRec, ok := cat.Icons[primary]
		if !ok {
			return toolError(fmt.Errorf("primary %s not in catalog of %s", primary, themeID))
		}
		if primaryRec.DuplicateOf != "" {
			return toolError(fmt.Errorf("primary %s is itself a copy of %s; chains are not allowed", primary, primaryRec.DuplicateOf))
		}
		if rec.DuplicateOf == primary && slices.Contains(primaryRec.Duplicates, id) {
			return mcp.NewToolResultText("Relationship already recorded."), nil
		}
		if rec.DuplicateOf != "" {
			return toolError(&application.CuratedFieldError{ID: id, Field: "duplicate_of"})
		}

		rec.DuplicateOf = primary
		cat.Icons[id] = rec
		if !slices.Contains(primaryRec.Duplicates, id) {
			primaryRec.Duplicates = append(primaryRec.Duplicates, id)
			slices.Sort(primaryRec.Duplicates)
			cat.Icons[primary] = primaryRec
		}
		if err := deps.Store.SaveCatalog(theme, cat); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s recorded as duplicate of %s", id, primary)), nil
	}
}
