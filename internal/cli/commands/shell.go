package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/cli/output"
	"github.com/leapstack-labs/shopdash/internal/pagination"
)

const shellPrompt = "shopdash> "

// NewShellCommand creates the interactive category shell.
func NewShellCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Edit the category tree from an interactive prompt",
		Long: `Start a line-oriented shell over the category tree.

Move through the tree with ls, cd and next/prev, and change it with add,
rename and rm. Type help for the full list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			sh := newShell(cmdCtx.Categories, cmdCtx.Renderer, rows)
			return runShell(cmd, sh)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", pagination.DefaultRowsPerPage, "Rows per page")
	return cmd
}

func runShell(cmd *cobra.Command, sh *shell) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     shellHistoryFile(),
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "shopdash category shell")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type help for commands, quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := sh.exec(ctx, line); quit {
			return nil
		}
		rl.SetPrompt(sh.prompt())
	}
}

// shellHistoryFile keeps history next to the user's other config. An empty
// path disables history.
func shellHistoryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "shopdash")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "shell_history")
}

// shell is the state of one interactive session: where in the tree it is
// and which page of that level is showing.
type shell struct {
	svc   api.CategoryService
	r     *output.Renderer
	rows  int
	trail []level
	query url.Values
	page  *api.Connection
}

func newShell(svc api.CategoryService, r *output.Renderer, rows int) *shell {
	sh := &shell{svc: svc, r: r, rows: rows}
	sh.query = sh.firstPage()
	return sh
}

func (sh *shell) firstPage() url.Values {
	return pagination.ChangeRowsPerPage(url.Values{}, sh.rows)
}

func (sh *shell) parentID() string {
	if len(sh.trail) == 0 {
		return ""
	}
	return sh.trail[len(sh.trail)-1].id
}

func (sh *shell) prompt() string {
	if len(sh.trail) == 0 {
		return shellPrompt
	}
	return "shopdash:" + sh.trail[len(sh.trail)-1].name + "> "
}

// exec runs one input line and reports whether the session should end.
// Command errors are printed, never returned.
func (sh *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch verb {
	case "quit", "exit":
		return true
	case "help":
		printShellHelp(sh.r.Writer())
	case "ls":
		err = sh.list(ctx)
	case "next":
		err = sh.turn(ctx, true)
	case "prev":
		err = sh.turn(ctx, false)
	case "cd":
		err = sh.cd(ctx, args)
	case "show":
		err = sh.show(ctx, args)
	case "add":
		err = sh.add(ctx, args)
	case "rename":
		err = sh.rename(ctx, args)
	case "rm":
		err = sh.remove(ctx, args)
	default:
		err = fmt.Errorf("unknown command: %s (type help for commands)", verb)
	}
	if err != nil {
		sh.r.Error(err.Error())
	}
	return false
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  ls                  List the current page
  next / prev         Move to the next or previous page
  cd <id>             Open a category's subcategories
  cd .. / cd /        Go up one level / back to the top
  show <id>           Show a category
  add <name>          Create a category at the current level
  rename <id> <name>  Rename a category
  rm <id>             Delete a category
  help                Show this help message
  quit / exit         Leave the shell

Tips:
  - Tab completes commands and the ids on the current page
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func (sh *shell) load(ctx context.Context) error {
	conn, err := fetchPage(ctx, sh.svc, sh.parentID(), sh.query)
	if err != nil {
		return err
	}
	sh.page = conn
	return nil
}

func (sh *shell) list(ctx context.Context) error {
	if err := sh.load(ctx); err != nil {
		return err
	}
	sh.printPage()
	return nil
}

func (sh *shell) printPage() {
	if sh.page.Empty() {
		sh.r.Println("No categories found.")
		return
	}
	rows := make([][]string, 0, len(sh.page.Edges))
	for _, c := range sh.page.Nodes() {
		rows = append(rows, []string{c.ID, c.Name, summarize(c.Description, 40)})
	}
	sh.r.Table([]string{"ID", "Name", "Description"}, rows)
	links := pagination.Navigate(sh.query, sh.page.Window())
	sh.r.Muted(fmt.Sprintf("%d-%d of %d", links.From, links.To, links.Total))
}

// turn moves one page forward or back using the links of the page shown.
func (sh *shell) turn(ctx context.Context, forward bool) error {
	if sh.page == nil {
		if err := sh.load(ctx); err != nil {
			return err
		}
	}
	links := pagination.Navigate(sh.query, sh.page.Window())
	target := links.Prev
	if forward {
		target = links.Next
	}
	if target == nil {
		return errors.New("no more pages in that direction")
	}
	sh.query = target
	return sh.list(ctx)
}

func (sh *shell) cd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cd <id> | cd .. | cd /")
	}

	switch args[0] {
	case "/":
		sh.trail = nil
		sh.query = sh.firstPage()
	case "..":
		if len(sh.trail) == 0 {
			return nil
		}
		sh.query = sh.trail[len(sh.trail)-1].query
		sh.trail = sh.trail[:len(sh.trail)-1]
	default:
		cat, err := sh.lookup(ctx, args[0])
		if err != nil {
			return err
		}
		sh.trail = append(sh.trail, level{id: cat.ID, name: cat.Name, query: sh.query})
		sh.query = sh.firstPage()
	}
	return sh.list(ctx)
}

func (sh *shell) lookup(ctx context.Context, id string) (*api.Category, error) {
	cat, err := sh.svc.Category(ctx, id)
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("category %s not found", id)
	}
	return cat, err
}

func (sh *shell) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <id>")
	}
	cat, err := sh.lookup(ctx, args[0])
	if err != nil {
		return err
	}

	sh.r.Header(2, cat.Name)
	sh.r.KeyValue("ID", cat.ID)
	if cat.Parent != nil {
		sh.r.KeyValue("Parent", fmt.Sprintf("%s (%s)", cat.Parent.Name, cat.Parent.ID))
	}
	if desc := descriptionMarkdown(cat.Description); desc != "" {
		sh.r.Println(desc)
	}
	return nil
}

func (sh *shell) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <name>")
	}
	cat, err := savedCategory(sh.svc.CreateCategory(ctx, sh.parentID(), api.CategoryInput{Name: strings.Join(args, " ")}))
	if err != nil {
		return err
	}
	sh.r.Success(fmt.Sprintf("Created %s (%s)", cat.Name, cat.ID))
	return sh.list(ctx)
}

func (sh *shell) rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: rename <id> <name>")
	}
	cat, err := sh.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	input := api.CategoryInput{Name: strings.Join(args[1:], " "), Description: cat.Description}
	saved, err := savedCategory(sh.svc.UpdateCategory(ctx, cat.ID, input))
	if err != nil {
		return err
	}
	sh.r.Success("Renamed to " + saved.Name)
	return nil
}

func (sh *shell) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: rm <id>")
	}
	res, err := sh.svc.DeleteCategory(ctx, args[0])
	if err := mutationErr(res, err); err != nil {
		return err
	}
	sh.r.Success("Deleted " + args[0])
	return sh.list(ctx)
}

// mutationErr folds a failed request and validation errors into one error.
func mutationErr(res *api.MutationResult, err error) error {
	if err != nil {
		return err
	}
	if res.OK() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		if fe.Field != "" {
			msgs = append(msgs, fe.Field+": "+fe.Message)
		} else {
			msgs = append(msgs, fe.Message)
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// savedCategory is mutationErr for create and update, which must also
// return the category they wrote.
func savedCategory(res *api.MutationResult, err error) (*api.Category, error) {
	if err := mutationErr(res, err); err != nil {
		return nil, err
	}
	if res.Category == nil {
		return nil, errors.New("the server did not return the saved category")
	}
	return res.Category, nil
}

// completer offers the commands and, after an id-taking command, the ids
// on the page last shown.
func (sh *shell) completer() *readline.PrefixCompleter {
	ids := func(string) []string {
		var out []string
		for _, c := range sh.page.Nodes() {
			out = append(out, c.ID)
		}
		return out
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("ls"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("cd", readline.PcItem(".."), readline.PcItem("/"), readline.PcItemDynamic(ids)),
		readline.PcItem("show", readline.PcItemDynamic(ids)),
		readline.PcItem("add"),
		readline.PcItem("rename", readline.PcItemDynamic(ids)),
		readline.PcItem("rm", readline.PcItemDynamic(ids)),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
