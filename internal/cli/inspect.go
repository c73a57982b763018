package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaview/pkg/highlight"
	"github.com/matzehuels/schemaview/pkg/pipeline"
	"github.com/matzehuels/schemaview/pkg/schema"
	"github.com/matzehuels/schemaview/pkg/view"
)

// inspectCommand creates the inspect command, an interactive field browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		engine  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [snapshot.json|snapshot.toml]",
		Short: "Browse a snapshot and preview field hover in the terminal",
		Long: `Browse a snapshot and preview field hover in the terminal.

Moving the cursor over a column hovers it exactly like a pointer would in a
rendering client: the side panel lists the relationships that light up, the
fields at their ends and the stroke each edge is drawn with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], engine, noCache)
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine: native, graphviz (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, engine string, noCache bool) error {
	snap, err := schema.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}
	opts, err := c.viewOptions(engine)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{View: opts, NoCache: noCache, Logger: c.Logger}
	v, err := runner.Load(ctx, snap, popts)
	if err != nil {
		return err
	}
	hash, err := pipeline.SnapshotHash(snap)
	if err != nil {
		return err
	}

	layout := func(refresh bool) (bool, error) {
		o := popts
		o.Refresh = refresh
		return runner.LayoutWithCacheInfo(ctx, v, hash, o)
	}

	// The TUI owns the terminal; keep log lines out of it.
	level := c.Logger.GetLevel()
	c.SetLogLevel(log.ErrorLevel)
	defer c.SetLogLevel(level)

	m, err := tea.NewProgram(newInspectModel(v, layout), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	if im, ok := m.(inspectModel); ok && im.err != nil {
		return im.err
	}
	return nil
}

// =============================================================================
// inspectModel - Field browser with hover preview
// =============================================================================

var (
	inspectTableStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	inspectCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	inspectLitStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	inspectPanelStyle  = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				PaddingLeft(1).
				PaddingRight(1)
)

const inspectListWidth = 36

// fieldRow is one selectable column.
type fieldRow struct {
	table   string
	column  string
	typ     string
	primary bool
}

type inspectKeys struct {
	Up       key.Binding
	Down     key.Binding
	Clear    key.Binding
	Relayout key.Binding
	Quit     key.Binding
}

func (k inspectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Clear, k.Relayout, k.Quit}
}

func (k inspectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultInspectKeys() inspectKeys {
	return inspectKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave")),
		Relayout: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-layout")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// layoutDoneMsg reports the end of an auto layout.
type layoutDoneMsg struct {
	cached bool
	err    error
}

// inspectModel is the bubbletea model of the inspect command. The view is
// only touched from Update and View, never while a layout is running.
type inspectModel struct {
	view   *view.View
	layout func(refresh bool) (bool, error)
	rows   []fieldRow

	cursor int
	offset int
	height int
	ready  bool
	cached bool
	err    error

	spinner spinner.Model
	detail  viewport.Model
	help    help.Model
	keys    inspectKeys
}

func newInspectModel(v *view.View, layout func(refresh bool) (bool, error)) inspectModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleIconSpinner

	var rows []fieldRow
	for _, n := range v.Graph().Nodes {
		for _, col := range n.Columns {
			rows = append(rows, fieldRow{table: n.ID, column: col.Name, typ: col.Type, primary: col.Primary})
		}
	}

	return inspectModel{
		view:    v,
		layout:  layout,
		rows:    rows,
		height:  15,
		spinner: s,
		detail:  viewport.New(60, 15),
		help:    help.New(),
		keys:    defaultInspectKeys(),
	}
}

func (m inspectModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runLayout(false))
}

func (m inspectModel) runLayout(refresh bool) tea.Cmd {
	return func() tea.Msg {
		cached, err := m.layout(refresh)
		return layoutDoneMsg{cached: cached, err: err}
	}
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case !m.ready:
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Clear):
			m.view.ClearHover()
			m.refreshDetail()
		case key.Matches(msg, m.keys.Relayout):
			m.ready = false
			return m, tea.Batch(m.spinner.Tick, m.runLayout(true))
		default:
			m.detail, cmd = m.detail.Update(msg)
		}
		return m, cmd

	case layoutDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.ready = true
		m.cached = msg.cached
		if _, ok := m.view.Highlight().State().(highlight.None); ok {
			m.hoverCursor()
		}
		m.refreshDetail()

	case spinner.TickMsg:
		if !m.ready {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
		m.detail.Width = max(msg.Width-inspectListWidth-4, 20)
		m.detail.Height = m.height
		m.help.Width = msg.Width
		m.clampOffset()
	}

	return m, nil
}

// move shifts the cursor and hovers the field under it.
func (m *inspectModel) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rows) {
		return
	}
	m.cursor = next
	m.clampOffset()
	m.hoverCursor()
	m.refreshDetail()
}

func (m *inspectModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *inspectModel) hoverCursor() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	if err := m.view.HoverField(row.table, row.column); err != nil {
		m.err = err
	}
}

// refreshDetail renders the hover panel into the detail viewport.
func (m *inspectModel) refreshDetail() {
	hl := m.view.Highlight()
	var b strings.Builder

	switch s := hl.State().(type) {
	case highlight.HoveredField:
		b.WriteString(StyleTitle.Render(s.Table + "." + s.Column))
		if n, ok := m.view.Graph().Node(s.Table); ok {
			b.WriteString(StyleDim.Render(fmt.Sprintf("  at (%.0f, %.0f)", n.Position.X, n.Position.Y)))
		}
	case highlight.HoveredEdge:
		b.WriteString(StyleTitle.Render(s.ID))
	default:
		b.WriteString(StyleDim.Render("Nothing hovered"))
	}
	b.WriteString("\n\n")

	edges := hl.Edges()
	if len(edges) == 0 {
		b.WriteString(StyleDim.Render("No relationships"))
		m.detail.SetContent(b.String())
		return
	}

	rows := make([][]string, 0, len(edges))
	for _, id := range edges {
		e, ok := m.view.Graph().Edge(id)
		if !ok {
			continue
		}
		stroke := hl.Emphasis(id)
		rows = append(rows, []string{
			e.Label,
			e.SourceTable + "." + e.SourceColumn,
			e.TargetTable + "." + e.TargetColumn,
			fmt.Sprintf("%s %.1f", stroke.Color, stroke.Width),
		})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Relationship", "From", "To", "Stroke").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return StyleDim
			}
			return StyleValue
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	fields := hl.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d fields: ", len(fields))))
	b.WriteString(inspectLitStyle.Render(strings.Join(names, ", ")))

	m.detail.SetContent(b.String())
}

func (m inspectModel) View() string {
	if !m.ready {
		return fmt.Sprintf("\n %s Laying out %d tables...\n", m.spinner.View(), len(m.view.Graph().Nodes))
	}

	hl := m.view.Highlight()
	var list strings.Builder
	end := min(m.offset+m.height, len(m.rows))
	prev := ""
	if m.offset > 0 {
		prev = m.rows[m.offset-1].table
	}
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		if row.table != prev {
			list.WriteString(inspectTableStyle.Render(row.table) + "\n")
			prev = row.table
		}
		marker := "  "
		name := row.column
		style := StyleValue
		switch {
		case i == m.cursor:
			marker = "▸ "
			style = inspectCursorStyle
		case hl.FieldHighlighted(row.table, row.column):
			style = inspectLitStyle
		}
		if row.primary {
			name += " " + StyleDim.Render("pk")
		}
		list.WriteString(marker + style.Render(name) + " " + StyleDim.Render(row.typ) + "\n")
	}

	left := lipgloss.NewStyle().Width(inspectListWidth).Render(list.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, inspectPanelStyle.Render(m.detail.View()))

	status := styleComputed.Render(iconFresh)
	if m.cached {
		status = styleCached.Render(iconCached)
	}
	footer := StyleDim.Render(fmt.Sprintf("%s layout · %s · %d/%d  ", m.view.Engine(), status, m.cursor+1, len(m.rows)))
	footer += m.help.View(m.keys)
	if m.err != nil {
		footer += "\n" + styleIconError.Render(iconError) + " " + m.err.Error()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
