package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/shopdash/internal/cli/config"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the category dashboard",
		Long: `Start a local web server with the category management dashboard.

The dashboard provides:
- Paginated browsing of the category tree
- Category details with subcategories
- Create, edit and delete forms
- Live updates across open tabs`,
		Example: `  # Start on the configured port
  shopdash serve

  # Start on a custom port against a remote API
  shopdash serve --port 3000 --api-url https://shop.example.com/graphql/

  # Start without auto-opening the browser
  shopdash serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload translation files when they change")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Reload open pages when translations change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	// CLI flags override config file
	port := cfg.UI.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.UI.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.UI.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	secret := cfg.UI.SessionSecret
	if secret == "" {
		secret = generateSessionSecret()
		logger.Warn("ui.session_secret is not set; flash messages will not survive a restart")
	}

	server := ui.NewServer(ui.Config{
		Categories:      cmdCtx.Categories,
		Catalog:         catalog,
		Port:            port,
		Watch:           watch,
		Dev:             opts.Dev,
		SessionSecret:   secret,
		Logger:          logger,
		TranslationsDir: cfg.I18n.Dir,
	})

	// Open browser if configured
	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	r := cmdCtx.Renderer
	r.Printf("Starting dashboard on http://localhost:%d\n", port)
	r.Muted(fmt.Sprintf("API: %s", cfg.API.URL))
	r.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// loadCatalog loads the built-in translations plus any in i18n.dir.
func loadCatalog(cfg *config.Config) (*i18n.Catalog, error) {
	fallback, err := language.Parse(cfg.I18n.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid i18n.locale: %w", err)
	}

	catalog, err := i18n.NewCatalog(fallback)
	if err != nil {
		return nil, err
	}
	if cfg.I18n.Dir != "" {
		if err := catalog.Reload(cfg.I18n.Dir); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// generateSessionSecret returns a random secret for this process only.
// Two UUIDs give the cookie store 64 bytes of key material.
func generateSessionSecret() string {
	return uuid.NewString() + uuid.NewString()
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
