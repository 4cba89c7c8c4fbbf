package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ikonograf/internal/adapters/tui/styles"
	"ikonograf/internal/ports"
)

// IconRow is one browsable icon with its catalog detail.
type IconRow struct {
	Identifier  string
	Theme       string
	Context     string
	File        string
	Label       string
	Symbolic    bool
	Sizes       []int
	Hints       []string
	DuplicateOf string
	Duplicates  []string
}

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Filter   key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy identifier"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// IconsLoadedMsg delivers the browsable rows
type IconsLoadedMsg struct {
	Rows []IconRow
}

// LoadErrMsg reports a load failure
type LoadErrMsg struct {
	Err error
}

// BrowserModel is the model for the icon browser view
type BrowserModel struct {
	ViewState
	store ports.CatalogStore

	loading   bool
	err       error
	filtering bool

	filterInput textinput.Model
	paginator   *Paginator

	all      []IconRow
	filtered []IconRow
}

// NewBrowserModel creates a new browser view model
func NewBrowserModel(store ports.CatalogStore) *BrowserModel {
	input := textinput.New()
	input.Placeholder = "filter icons..."
	input.Prompt = "/ "

	return &BrowserModel{
		store:       store,
		loading:     true,
		filterInput: input,
		paginator:   NewPaginator(20),
	}
}

// Init initializes the browser view
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadIcons()
}

// Reload re-reads the catalogs from disk
func (m *BrowserModel) Reload() tea.Cmd {
	m.loading = true
	return m.loadIcons()
}

func (m *BrowserModel) loadIcons() tea.Cmd {
	return func() tea.Msg {
		reg, err := m.store.LoadRegistry()
		if err != nil {
			return LoadErrMsg{Err: err}
		}

		var rows []IconRow
		for _, id := range reg.ThemeIDs() {
			theme, err := m.store.Theme(id)
			if err != nil {
				continue
			}
			cat, err := m.store.LoadCatalog(theme)
			if err != nil {
				continue
			}
			for _, iconID := range cat.IDs() {
				rec := cat.Icons[iconID]
				rows = append(rows, IconRow{
					Identifier:  iconID,
					Theme:       id,
					Context:     rec.Context,
					File:        rec.File,
					Label:       rec.Label,
					Symbolic:    rec.Symbolic != nil && *rec.Symbolic,
					Sizes:       rec.Sizes,
					Hints:       rec.Hints,
					DuplicateOf: rec.DuplicateOf,
					Duplicates:  rec.Duplicates,
				})
			}
		}
		return IconsLoadedMsg{Rows: rows}
	}
}

// Update handles messages for the browser view
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		// Leave room for header, filter, detail pane, and status bar.
		if msg.Height > 16 {
			m.paginator.SetPageSize(msg.Height - 16)
		}
		return m, nil

	case IconsLoadedMsg:
		m.loading = false
		m.err = nil
		m.all = msg.Rows
		m.applyFilter()
		return m, nil

	case LoadErrMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilterMode(msg)
		}
		return m.updateListMode(msg)
	}
	return m, nil
}

func (m *BrowserModel) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *BrowserModel) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, BrowserKeys.Help):
		return m, func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	case key.Matches(msg, BrowserKeys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, BrowserKeys.Up):
		m.paginator.CursorUp()
		return m, nil
	case key.Matches(msg, BrowserKeys.Down):
		m.paginator.CursorDown()
		return m, nil
	case key.Matches(msg, BrowserKeys.NextPage):
		m.paginator.NextPage()
		return m, nil
	case key.Matches(msg, BrowserKeys.PrevPage):
		m.paginator.PrevPage()
		return m, nil
	case key.Matches(msg, BrowserKeys.Copy):
		if row, ok := m.selected(); ok {
			if err := clipboard.WriteAll(row.Identifier); err != nil {
				m.SetMessage(fmt.Sprintf("clipboard: %v", err), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", row.Identifier), false)
			}
		}
		return m, nil
	case msg.Type == tea.KeyEsc:
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}
	return m, nil
}

func (m *BrowserModel) selected() (IconRow, bool) {
	cursor := m.paginator.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return IconRow{}, false
	}
	return m.filtered[cursor], true
}

func (m *BrowserModel) applyFilter() {
	m.filtered = FilterRows(m.all, m.filterInput.Value())
	m.paginator.SetTotal(len(m.filtered))
}

// FilterRows returns the rows matching a case-insensitive substring query
// against identifier, filename, label, and hints.
func FilterRows(rows []IconRow, query string) []IconRow {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	var out []IconRow
	for _, row := range rows {
		if rowMatches(row, query) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row IconRow, query string) bool {
	if strings.Contains(strings.ToLower(row.Identifier), query) ||
		strings.Contains(strings.ToLower(row.File), query) ||
		strings.Contains(strings.ToLower(row.Label), query) {
		return true
	}
	for _, h := range row.Hints {
		if strings.Contains(strings.ToLower(h), query) {
			return true
		}
	}
	return false
}

// View renders the browser view
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Ikonograf"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(styles.MutedText.Render("Loading catalogs..."))
		return styles.App.Render(b.String())
	}
	if m.err != nil {
		b.WriteString(styles.ErrorMsg.Render(m.err.Error()))
		return styles.App.Render(b.String())
	}

	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedText.Render("No icons."))
		b.WriteString("\n")
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.filtered[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
		if m.paginator.TotalPages() > 1 {
			b.WriteString(styles.MutedText.Render(
				fmt.Sprintf("page %d/%d  %d icons", m.paginator.CurrentPage(), m.paginator.TotalPages(), len(m.filtered))))
			b.WriteString("\n")
		}
	}

	if row, ok := m.selected(); ok {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(row))
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderRow(row IconRow, selected bool) string {
	display := row.Label
	if display == "" {
		display = row.File
	}
	line := fmt.Sprintf("%s  %s", row.Identifier, display)
	if selected {
		return styles.RowSelected.Render(line)
	}
	if row.Symbolic {
		return styles.RowSymbolic.Render(line)
	}
	return styles.RowIcon.Foreground(styles.ContextColor(row.Context)).Render(line)
}

func (m *BrowserModel) renderDetail(row IconRow) string {
	var b strings.Builder
	detail := func(k, v string) {
		b.WriteString(styles.DetailKey.Render(k + ": "))
		b.WriteString(styles.DetailValue.Render(v))
		b.WriteString("\n")
	}
	detail("theme", row.Theme)
	detail("file", row.File)
	detail("sizes", fmt.Sprintf("%v", row.Sizes))
	if row.Context != "" {
		detail("context", row.Context)
	}
	if row.Symbolic {
		detail("symbolic", "true")
	}
	if len(row.Hints) > 0 {
		detail("hints", strings.Join(row.Hints, ", "))
	}
	if row.DuplicateOf != "" {
		detail("duplicate of", row.DuplicateOf)
	}
	if len(row.Duplicates) > 0 {
		detail("duplicates", strings.Join(row.Duplicates, ", "))
	}
	return b.String()
}

func (m *BrowserModel) renderStatusBar() string {
	keys := []string{"j/k move", "/ filter", "c copy", "? help", "q quit"}
	return styles.StatusText.Render(strings.Join(keys, "  •  "))
}
