package commands

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/cli/output"
	"github.com/leapstack-labs/shopdash/internal/pagination"
)

// NewBrowseCommand creates the interactive category browser.
func NewBrowseCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the category tree interactively",
		Long: `Open a terminal browser over the category tree.

Keys: n/p or arrows change page, enter opens the selected category,
backspace goes back to its parent, +/- change the page size, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			m := newBrowseModel(cmd.Context(), cmdCtx.Categories, rows, cmdCtx.Renderer.Styles())

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&rows, "rows", pagination.DefaultRowsPerPage, "Rows per page")
	return cmd
}

// level is one step down the tree: the category opened and the page of its
// parent's list that was showing, so going back restores it.
type level struct {
	id    string
	name  string
	query url.Values
}

type browseKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Open    key.Binding
	Back    key.Binding
	Bigger  key.Binding
	Smaller key.Binding
	Quit    key.Binding
}

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		Next:    key.NewBinding(key.WithKeys("n", "right", "pgdown"), key.WithHelp("n/→", "next page")),
		Prev:    key.NewBinding(key.WithKeys("p", "left", "pgup"), key.WithHelp("p/←", "prev page")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("backspace", "esc"), key.WithHelp("⌫", "back")),
		Bigger:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "rows per page")),
		Smaller: key.NewBinding(key.WithKeys("-")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Open, k.Back, k.Bigger, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// pageMsg carries the result of a page load. seq discards responses to
// superseded requests.
type pageMsg struct {
	seq  int
	conn *api.Connection
	err  error
}

type browseModel struct {
	ctx      context.Context
	service  api.CategoryService
	styles   *output.Styles
	keys     browseKeys
	help     help.Model
	spinner  spinner.Model
	table    table.Model
	trail    []level
	query    url.Values
	conn     *api.Connection
	loading  bool
	seq      int
	err      error
	quitting bool
}

func newBrowseModel(ctx context.Context, svc api.CategoryService, rows int, styles *output.Styles) *browseModel {
	if rows <= 0 {
		rows = pagination.DefaultRowsPerPage
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Description", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(rows+1),
	)

	return &browseModel{
		ctx:     ctx,
		service: svc,
		styles:  styles,
		keys:    defaultBrowseKeys(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		table:   t,
		query:   url.Values{pagination.KeyRowsPerPage: {strconv.Itoa(rows)}},
		loading: true,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// parentID is the category whose children are listed, or "" at the root.
func (m *browseModel) parentID() string {
	if len(m.trail) == 0 {
		return ""
	}
	return m.trail[len(m.trail)-1].id
}

func (m *browseModel) load() tea.Cmd {
	m.seq++
	m.loading = true
	seq, parent, q := m.seq, m.parentID(), m.query
	return func() tea.Msg {
		conn, err := fetchPage(m.ctx, m.service, parent, q)
		return pageMsg{seq: seq, conn: conn, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.conn = msg.conn
			m.table.SetRows(tableRows(msg.conn))
			m.table.SetCursor(0)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if links := m.links(); links.Next != nil {
			m.query = links.Next
			return m, m.load()
		}

	case key.Matches(msg, m.keys.Prev):
		if links := m.links(); links.Prev != nil {
			m.query = links.Prev
			return m, m.load()
		}

	case key.Matches(msg, m.keys.Bigger), key.Matches(msg, m.keys.Smaller):
		step := 1
		if key.Matches(msg, m.keys.Smaller) {
			step = -1
		}
		return m, m.resize(step)

	case key.Matches(msg, m.keys.Open):
		if m.conn.Empty() || m.loading {
			return m, nil
		}
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.conn.Edges) {
			return m, nil
		}
		node := m.conn.Edges[idx].Node
		m.trail = append(m.trail, level{id: node.ID, name: node.Name, query: m.query})
		m.query = pagination.ChangeRowsPerPage(url.Values{}, pagination.RowsPerPage(m.query))
		return m, m.load()

	case key.Matches(msg, m.keys.Back):
		if len(m.trail) == 0 {
			return m, nil
		}
		last := m.trail[len(m.trail)-1]
		m.trail = m.trail[:len(m.trail)-1]
		m.query = last.query
		return m, m.load()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize moves to the neighbouring page size and back to the first page.
func (m *browseModel) resize(step int) tea.Cmd {
	options := pagination.RowsPerPageOptions
	idx := slices.Index(options, pagination.RowsPerPage(m.query))
	next := idx + step
	if idx < 0 {
		next = 0
	}
	if next < 0 || next >= len(options) {
		return nil
	}
	m.query = pagination.ChangeRowsPerPage(m.query, options[next])
	m.table.SetHeight(options[next] + 1)
	return m.load()
}

func (m *browseModel) links() pagination.Links {
	return pagination.Navigate(m.query, m.conn.Window())
}

func tableRows(conn *api.Connection) []table.Row {
	rows := make([]table.Row, 0, len(conn.Nodes()))
	for _, c := range conn.Nodes() {
		rows = append(rows, table.Row{c.Name, summarize(c.Description, 46)})
	}
	return rows
}

func (m *browseModel) breadcrumbs() string {
	parts := []string{"Categories"}
	for _, l := range m.trail {
		parts = append(parts, l.name)
	}
	return strings.Join(parts, " › ")
}

func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.breadcrumbs()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Something went wrong: " + m.err.Error()))
		b.WriteString("\n")
	case m.conn == nil:
		b.WriteString(m.spinner.View() + " Loading…\n")
	case m.conn.Empty():
		b.WriteString("No categories found.\n")
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		links := m.links()
		status := fmt.Sprintf("%d-%d of %d", links.From, links.To, links.Total)
		if m.loading {
			status += " " + m.spinner.View()
		}
		b.WriteString(m.styles.Muted.Render(status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
