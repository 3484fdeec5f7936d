package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/cache"
	"github.com/ziadkadry99/careerbot/internal/config"
	"github.com/ziadkadry99/careerbot/internal/db"
	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/format"
	"github.com/ziadkadry99/careerbot/internal/panel"
	"github.com/ziadkadry99/careerbot/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `careerbot init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if !verbose {
		log.SetOutputLevel(logLevel(cfg.Log.Level))
	}
	return cfg, nil
}

func logLevel(l config.LogLevel) int {
	switch l {
	case config.LogDebug:
		return log.Ldebug
	case config.LogWarn:
		return log.Lwarn
	case config.LogError:
		return log.Lerror
	default:
		return log.Linfo
	}
}

// newClient creates the career-advice server client from config.
func newClient(cfg *config.Config) (*api.Client, error) {
	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return api.New(api.Options{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       timeout,
		SessionCookie: cfg.API.SessionCookie,
		UserAgent:     "careerbot/" + Version,
	})
}

// newFormatter creates the response formatter from config.
func newFormatter(cfg *config.Config) (*format.Formatter, error) {
	trunc, err := format.ParseTruncation(string(cfg.Format.Truncation))
	if err != nil {
		return nil, err
	}
	return &format.Formatter{Truncation: trunc, Markdown: cfg.Format.Markdown}, nil
}

// openCache opens the local cache, or returns nil when it is disabled.
// The returned close func is always safe to call.
func openCache(cfg *config.Config) (*cache.Store, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	database, err := db.Open(cfg.Cache.Path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening cache %s: %w", cfg.Cache.Path, err)
	}
	return cache.NewStore(database), func() { database.Close() }, nil
}

// detectSession asks the server whether the configured cookie is logged in.
func detectSession(ctx context.Context, client *api.Client, cfg *config.Config) panel.Session {
	if cfg.API.SessionCookie == "" {
		return panel.Session{}
	}
	ok, err := client.ProbeSession(ctx)
	if err != nil {
		log.Warnf("could not check login session: %v", err)
		return panel.Session{}
	}
	if !ok {
		log.Warnf("session cookie is not logged in; save and history are unavailable")
	}
	return panel.Session{LoggedIn: ok}
}

// parseFeature accepts "1".."5".
func parseFeature(arg string) (feature.ID, error) {
	id, err := feature.Parse(arg)
	if err != nil {
		return 0, fmt.Errorf("%w (1 career paths, 2 resume, 3 market, 4 college, 5 interview)", err)
	}
	return id, nil
}

// app bundles everything a panel command needs.
type app struct {
	cfg       *config.Config
	client    *api.Client
	formatter *format.Formatter
	store     *cache.Store
	session   panel.Session
	close     func()
}

// newApp builds the client, formatter, cache and session from config.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	formatter, err := newFormatter(cfg)
	if err != nil {
		return nil, err
	}
	store, closeCache, err := openCache(cfg)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		client:    client,
		formatter: formatter,
		store:     store,
		session:   detectSession(ctx, client, cfg),
		close:     closeCache,
	}, nil
}

func (a *app) panelOptions() panel.Options {
	opts := panel.Options{Session: a.session, Formatter: a.formatter}
	if a.store != nil {
		opts.Cache = a.store
	}
	return opts
}

// controller creates a terminal-bound controller for id.
func (a *app) controller(id feature.ID, raw bool) (*panel.Controller, *terminalView) {
	view := newTerminalView(os.Stdout, os.Stderr, id, raw)
	return panel.New(id, view, a.client, a.panelOptions()), view
}

// terminalView prints panel output: fragments to out, alerts to errOut.
type terminalView struct {
	out    io.Writer
	errOut io.Writer
	raw    bool
	busy   progress.Indicator
}

func newTerminalView(out, errOut io.Writer, id feature.ID, raw bool) *terminalView {
	return &terminalView{
		out:    out,
		errOut: errOut,
		raw:    raw,
		busy:   progress.NewIndicator(id.Info().Name),
	}
}

func (v *terminalView) Alert(level panel.Level, message string) {
	fmt.Fprintf(v.errOut, "[%s] %s\n", level, message)
}

func (v *terminalView) ShowResult(r panel.Result) {
	if v.raw {
		fmt.Fprintln(v.out, r.Raw)
		return
	}
	fmt.Fprintln(v.out, r.HTML)
}

func (v *terminalView) ShowSuggestions(items []string) {
	for _, item := range items {
		fmt.Fprintf(v.out, "- %s\n", item)
	}
}

func (v *terminalView) ShowTranscript(entries []panel.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(v.out, "(no messages)")
		return
	}
	for _, e := range entries {
		v.AppendEntry(e)
	}
}

func (v *terminalView) AppendEntry(e panel.Entry) {
	stamp := ""
	if e.Timestamp != "" {
		stamp = " " + e.Timestamp
	}
	fmt.Fprintf(v.out, "[%s%s] %s\n", e.Role, stamp, e.HTML)
}

func (v *terminalView) SetBusy(busy bool) {
	v.busy.SetBusy(busy)
}

// readInput returns the joined args, or stdin when args are empty or "-".
func readInput(args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
