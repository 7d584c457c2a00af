package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"quotedesk/internal/api"
	"quotedesk/internal/config"
	"quotedesk/internal/debug"
	"quotedesk/internal/session"
	"quotedesk/internal/ui"
	"quotedesk/internal/ui/theme"
)

func main() {
	fs := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if v, _ := fs.GetBool("version"); v {
		printVersion(os.Stdout)
		return
	}

	if err := config.Initialize(config.WithFlags(fs)); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
	notesStyle, _ := fs.GetString("notes-style")
	opts := loadRuntimeOptions(notesStyle)

	if err := debug.InitWithPath(opts.debug, opts.debugPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()

	err := runProgram(opts, os.Stderr, buildApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		debug.Close()
		os.Exit(1)
	}
}

// newFlagSet declares the command-line flags. Names listed in
// config.FlagKeys are bound into the configuration.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("quotedesk", pflag.ContinueOnError)
	fs.String("base-url", "", "Base URL of the quotation API")
	fs.Duration("timeout", 0, "Timeout of one API call")
	fs.String("user-id", "", "User id sent as "+api.HeaderUserID)
	fs.String("token", "", "Bearer token sent with every call")
	fs.Duration("lookup-debounce", 0, "Quiet period before a selector search is sent")
	fs.Int("page-size", 0, "Rows per page of the quotation list")
	fs.String("theme", "", "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	fs.Bool("debug", false, "Write a debug log")
	fs.String("debug-path", "", "Debug log path (default ~/.quotedesk/debug.log)")
	fs.String("notes-style", "rich", "Markdown style of detail notes (rich, light, plain)")
	fs.BoolP("version", "v", false, "Print version information and exit")
	return fs
}

type runtimeOptions struct {
	baseURL        string
	timeout        time.Duration
	requiredRole   string
	lookupDebounce time.Duration
	listDebounce   time.Duration
	lookupPageSize int
	listPageSize   int
	theme          string
	notesStyle     string
	debug          bool
	debugPath      string
}

// loadRuntimeOptions reads the resolved configuration.
func loadRuntimeOptions(notesStyle string) runtimeOptions {
	return runtimeOptions{
		baseURL:        strings.TrimSpace(config.GetString(config.KeyAPIBaseURL)),
		timeout:        config.GetDuration(config.KeyAPITimeout),
		requiredRole:   strings.TrimSpace(config.GetString(config.KeyAuthRequiredRole)),
		lookupDebounce: config.GetDuration(config.KeyLookupDebounce),
		listDebounce:   config.GetDuration(config.KeyListDebounce),
		lookupPageSize: config.GetInt(config.KeyLookupPageSize),
		listPageSize:   config.GetInt(config.KeyListPageSize),
		theme:          strings.TrimSpace(config.GetString(config.KeyTheme)),
		notesStyle:     strings.TrimSpace(notesStyle),
		debug:          config.GetBool(config.KeyDebug),
		debugPath:      strings.TrimSpace(config.GetString(config.KeyDebugPath)),
	}
}

// buildApp wires the HTTP client, the session and the theme into the UI.
func buildApp(opts runtimeOptions, warn io.Writer) (*ui.App, error) {
	resolver := session.FromConfig()
	client, err := api.NewHTTPClient(opts.baseURL,
		api.WithTimeout(opts.timeout),
		api.WithResolver(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}
	if opts.theme != "" && !theme.Set(opts.theme) {
		fmt.Fprintf(warn, "Warning: unknown theme %q, using %s\n", opts.theme, theme.CurrentName())
	}
	return ui.NewApp(ui.Config{
		Client:         client,
		Resolver:       resolver,
		RequiredRole:   opts.requiredRole,
		LookupDebounce: opts.lookupDebounce,
		ListDebounce:   opts.listDebounce,
		LookupPageSize: opts.lookupPageSize,
		ListPageSize:   opts.listPageSize,
		NotesStyle:     opts.notesStyle,
		Version:        Version,
	}), nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

type appBuilder func(runtimeOptions, io.Writer) (*ui.App, error)

func runProgram(opts runtimeOptions, warn io.Writer, builder appBuilder, factory programFactory) error {
	app, err := builder(opts, warn)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
