package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/cli/output"
	"github.com/leapstack-labs/shopdash/internal/pagination"
)

// NewCategoriesCommand creates the categories command and its subcommands.
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Inspect the category tree",
		Long: `List, show and browse categories from the GraphQL API, or edit them
from an interactive shell.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
	}

	cmd.AddCommand(newCategoriesListCommand())
	cmd.AddCommand(newCategoriesShowCommand())
	cmd.AddCommand(NewBrowseCommand())
	cmd.AddCommand(NewShellCommand())

	return cmd
}

// ListOptions holds options for the categories list command.
type ListOptions struct {
	Parent      string `json:"parent,omitempty"`
	Rows        int    `json:"rows"`
	Action      string `json:"action"`
	Page        int    `json:"page"`
	FirstCursor string `json:"firstCursor"`
	LastCursor  string `json:"lastCursor"`
}

// Query encodes the options as the query string the dashboard uses, so a
// page printed here and a page shown in the browser are the same page.
func (o ListOptions) Query() url.Values {
	q := url.Values{}
	if o.Rows > 0 {
		q.Set(pagination.KeyRowsPerPage, strconv.Itoa(o.Rows))
	}
	if o.Action != "" {
		q.Set(pagination.KeyAction, o.Action)
	}
	if o.Page > 0 {
		q.Set(pagination.KeyCurrentPage, strconv.Itoa(o.Page))
	}
	if o.FirstCursor != "" {
		q.Set(pagination.KeyFirstCursor, o.FirstCursor)
	}
	if o.LastCursor != "" {
		q.Set(pagination.KeyLastCursor, o.LastCursor)
	}
	return q
}

func newCategoriesListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of categories",
		Example: `  # First page of top-level categories
  shopdash categories list

  # Children of a category, 20 per page
  shopdash categories list --parent Q2F0ZWdvcnk6MQ== --rows 20

  # Next page, using the cursors printed with the previous page
  shopdash categories list --action next --page 1 --last-cursor YXJyYXljb25uZWN0aW9uOjQ=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Action != "" && opts.Action != string(pagination.ActionNext) && opts.Action != string(pagination.ActionPrev) {
				return fmt.Errorf("--action must be next or prev, got %q", opts.Action)
			}
			return runCategoriesList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "List the children of this category id")
	cmd.Flags().IntVar(&opts.Rows, "rows", pagination.DefaultRowsPerPage, "Rows per page")
	cmd.Flags().StringVar(&opts.Action, "action", "", "Page direction: next or prev")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Zero-based index of the page being requested")
	cmd.Flags().StringVar(&opts.FirstCursor, "first-cursor", "", "Cursor of the first row on the previous page")
	cmd.Flags().StringVar(&opts.LastCursor, "last-cursor", "", "Cursor of the last row on the previous page")

	_ = cmd.RegisterFlagCompletionFunc("action", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(pagination.ActionNext), string(pagination.ActionPrev)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// listResult is the JSON shape of one listed page.
type listResult struct {
	Parent     string         `json:"parent,omitempty"`
	TotalCount int            `json:"totalCount"`
	From       int            `json:"from"`
	To         int            `json:"to"`
	Categories []api.Category `json:"categories"`
	Next       *ListOptions   `json:"next,omitempty"`
	Prev       *ListOptions   `json:"prev,omitempty"`
}

func runCategoriesList(cmd *cobra.Command, opts *ListOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	q := opts.Query()
	conn, err := fetchPage(cmd.Context(), cmdCtx.Categories, opts.Parent, q)
	if err != nil {
		return err
	}
	links := pagination.Navigate(q, conn.Window())

	res := listResult{
		Parent:     opts.Parent,
		TotalCount: conn.TotalCount,
		From:       links.From,
		To:         links.To,
		Categories: conn.Nodes(),
		Next:       optionsFor(opts, links.Next),
		Prev:       optionsFor(opts, links.Prev),
	}
	if res.Categories == nil {
		res.Categories = []api.Category{}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(res)
	}

	title := "Categories"
	if opts.Parent != "" {
		title = "Subcategories"
	}
	r.Header(1, title)

	if conn.Empty() {
		r.Println("No categories found.")
		return nil
	}

	rows := make([][]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		rows = append(rows, []string{c.ID, c.Name, summarize(c.Description, 60)})
	}
	r.Table([]string{"ID", "Name", "Description"}, rows)

	r.Println()
	r.Printf("%d-%d of %d\n", res.From, res.To, res.TotalCount)
	if res.Prev != nil {
		r.Muted("Previous page: shopdash categories list " + res.Prev.Args())
	}
	if res.Next != nil {
		r.Muted("Next page: shopdash categories list " + res.Next.Args())
	}
	return nil
}

// fetchPage loads the page of root categories, or of parentID's children,
// described by q.
func fetchPage(ctx context.Context, svc api.CategoryService, parentID string, q url.Values) (*api.Connection, error) {
	vars := pagination.ParseState(q).Variables()
	if parentID == "" {
		return svc.RootCategories(ctx, vars)
	}
	return svc.CategoryChildren(ctx, parentID, vars)
}

// optionsFor turns a pager query back into list flags.
func optionsFor(base *ListOptions, q url.Values) *ListOptions {
	if q == nil {
		return nil
	}
	st := pagination.ParseState(q)
	return &ListOptions{
		Parent:      base.Parent,
		Rows:        st.RowsPerPage,
		Action:      string(st.Action),
		Page:        st.CurrentPage,
		FirstCursor: st.FirstCursor,
		LastCursor:  st.LastCursor,
	}
}

// Args renders the options as command-line flags.
func (o ListOptions) Args() string {
	var parts []string
	if o.Parent != "" {
		parts = append(parts, "--parent "+o.Parent)
	}
	parts = append(parts,
		"--rows "+strconv.Itoa(o.Rows),
		"--action "+o.Action,
		"--page "+strconv.Itoa(o.Page),
		"--first-cursor "+o.FirstCursor,
		"--last-cursor "+o.LastCursor,
	)
	return strings.Join(parts, " ")
}

func newCategoriesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one category and its first subcategories",
		Example: `  shopdash categories show Q2F0ZWdvcnk6MQ==
  shopdash categories show Q2F0ZWdvcnk6MQ== --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesShow(cmd, args[0])
		},
	}
}

// showResult is the JSON shape of a shown category.
type showResult struct {
	api.Category
	Subcategories *api.Connection `json:"subcategories"`
}

func runCategoriesShow(cmd *cobra.Command, id string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	cat, err := cmdCtx.Categories.Category(ctx, id)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("category %s not found", id)
	}
	if err != nil {
		return err
	}

	children, err := cmdCtx.Categories.CategoryChildren(ctx, id, pagination.ParseState(nil).Variables())
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(showResult{Category: *cat, Subcategories: children})
	}

	r.Header(1, cat.Name)
	r.KeyValue("ID", cat.ID)
	if cat.Parent != nil {
		r.KeyValue("Parent", fmt.Sprintf("%s (%s)", cat.Parent.Name, cat.Parent.ID))
	} else {
		r.KeyValue("Parent", "(none)")
	}
	r.KeyValue("Subcategories", strconv.Itoa(children.TotalCount))

	if desc := descriptionMarkdown(cat.Description); desc != "" {
		r.Println()
		r.Println(desc)
	}

	if !children.Empty() {
		r.Println()
		r.Header(2, "Subcategories")
		rows := make([][]string, 0, len(children.Edges))
		for _, c := range children.Nodes() {
			rows = append(rows, []string{c.ID, c.Name})
		}
		r.Table([]string{"ID", "Name"}, rows)
	}
	return nil
}

// descriptionMarkdown converts an HTML description to Markdown. Plain text
// and unparsable markup are returned as they are.
func descriptionMarkdown(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" || !strings.Contains(desc, "<") {
		return desc
	}
	md, err := htmltomarkdown.ConvertString(desc)
	if err != nil {
		return desc
	}
	return strings.TrimSpace(md)
}

// summarize shortens s to at most n runes on one line.
func summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
