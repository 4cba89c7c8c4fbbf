package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ikonograf/internal/application/commands"
	"ikonograf/internal/ports"
)

// Deps bundles the ports the MCP tools operate on.
type Deps struct {
	Store  ports.CatalogStore
	Parser ports.DescriptorParser
	Hasher ports.Hasher
	Index  ports.IconIndex
}

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listThemesTool(), listThemesHandler(deps))
	s.AddTool(getIconTool(), getIconHandler(deps))
	s.AddTool(searchIconsTool(), searchIconsHandler(deps))
	s.AddTool(duplicateReportTool(), duplicateReportHandler(deps))
}

// --- list_themes ---

func listThemesTool() mcp.Tool {
	return mcp.NewTool("list_themes",
		mcp.WithDescription("List the registered icon themes with their labels, effective sizes, and contexts."),
	)
}

func listThemesHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reg, err := deps.Store.LoadRegistry()
		if err != nil {
			return toolError(err)
		}
		if len(reg) == 0 {
			return mcp.NewToolResultText("No themes registered."), nil
		}

		var sb strings.Builder
		for _, id := range reg.ThemeIDs() {
			entry := reg[id]
			label := entry.Label
			if label == "" {
				label = id
			}
			fmt.Fprintf(&sb, "%s  %s  sizes=%v  contexts=%v\n", id, label, entry.EffectiveSizes, entry.RawContexts)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_icon ---

func getIconTool() mcp.Tool {
	return mcp.NewTool("get_icon",
		mcp.WithDescription("Read one icon's catalog record by theme and identifier."),
		mcp.WithString("theme",
			mcp.Description("Theme ID (e.g. oxygen)"),
			mcp.Required(),
		),
		mcp.WithString("identifier",
			mcp.Description("Icon identifier (e.g. oxygen_actions_edit-copy)"),
			mcp.Required(),
		),
	)
}

func getIconHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		themeID := req.GetString("theme", "")
		id := req.GetString("identifier", "")
		if themeID == "" || id == "" {
			return toolError(fmt.Errorf("theme and identifier are required"))
		}

		theme, err := deps.Store.Theme(themeID)
		if err != nil {
			return toolError(err)
		}
		cat, err := deps.Store.LoadCatalog(theme)
		if err != nil {
			return toolError(err)
		}
		rec, ok := cat.Icons[id]
		if !ok {
			return toolError(fmt.Errorf("icon %s not in catalog of %s", id, themeID))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "identifier: %s\nfile: %s\nsizes: %v\n", id, rec.File, rec.Sizes)
		if rec.Context != "" {
			fmt.Fprintf(&sb, "context: %s\n", rec.Context)
		}
		if rec.Label != "" {
			fmt.Fprintf(&sb, "label: %s\n", rec.Label)
		}
		if rec.Symbolic != nil {
			fmt.Fprintf(&sb, "symbolic: %t\n", *rec.Symbolic)
		}
		if len(rec.Hints) > 0 {
			fmt.Fprintf(&sb, "hints: %s\n", strings.Join(rec.Hints, ", "))
		}
		if rec.DuplicateOf != "" {
			fmt.Fprintf(&sb, "duplicate_of: %s\n", rec.DuplicateOf)
		}
		if len(rec.Duplicates) > 0 {
			fmt.Fprintf(&sb, "duplicates: %s\n", strings.Join(rec.Duplicates, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search_icons ---

func searchIconsTool() mcp.Tool {
	return mcp.NewTool("search_icons",
		mcp.WithDescription("Search indexed icons across all themes by identifier, filename, or label."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 50)"),
		),
	)
}

func searchIconsHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		limit := req.GetInt("limit", 50)

		icons, err := deps.Index.Search(query, limit)
		if err != nil {
			return toolError(err)
		}
		if len(icons) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, icon := range icons {
			label := icon.Label
			if label == "" {
				label = icon.File
			}
			fmt.Fprintf(&sb, "%s  %s  %v\n", icon.Identifier, label, icon.Sizes)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- duplicate_report ---

func duplicateReportTool() mcp.Tool {
	return mcp.NewTool("duplicate_report",
		mcp.WithDescription("Hash a theme's icon files and report full and partial byte-identical duplicates. Read-only decision support."),
		mcp.WithString("theme",
			mcp.Description("Theme ID (e.g. oxygen)"),
			mcp.Required(),
		),
	)
}

func duplicateReportHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		themeID := req.GetString("theme", "")
		if themeID == "" {
			return toolError(fmt.Errorf("theme is required"))
		}
		theme, err := deps.Store.Theme(themeID)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewDuplicatesCommand(deps.Store, deps.Parser, deps.Hasher, theme).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		report := result.Report
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d icons hashed, %d full groups, %d partials, %d broken references\n\n",
			report.IconCount, len(report.FullGroups), len(report.Partials), len(report.Broken))

		for _, g := range report.FullGroups {
			status := ""
			if g.Done {
				status = "  [DONE]"
			}
			fmt.Fprintf(&sb, "full (%d sizes)%s: %s\n", g.SizeCount, status, strings.Join(g.Icons, ", "))
		}
		for _, p := range report.Partials {
			fmt.Fprintf(&sb, "partial %s sizes=%v matches=%s\n", p.ID, p.Sizes, strings.Join(p.MatchSet, ", "))
		}
		for _, b := range report.Broken {
			fmt.Fprintf(&sb, "broken %s %s -> %s: %s\n", b.ID, b.Field, b.Target, b.Reason)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
