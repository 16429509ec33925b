package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cnharrison/zirest/internal/config"
	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/render"
)

// Version information
const version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Config  string           `help:"Path to a config file. Defaults to .zirest.yml in the current directory or its parents." type:"path"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	TUI       TUICmd       `cmd:"" default:"1" help:"Open the interactive client."`
	Send      SendCmd      `cmd:"" help:"Send one request and print the response."`
	History   HistoryCmd   `cmd:"" help:"Inspect and manage request history."`
	Highlight HighlightCmd `cmd:"" help:"Colour JSON from a file or stdin."`
}

// runContext carries what every command needs
type runContext struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("zirest"),
		kong.Description("A terminal REST client with JSON highlighting and a lazy response tree"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", apperrors.UserFriendlyError(err))
		os.Exit(1)
	}

	log.SetFlags(log.LstdFlags)
	err = ctx.Run(&runContext{cfg: cfg, stdout: os.Stdout, stderr: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", apperrors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// openHistory opens the configured history backend
func (rc *runContext) openHistory() (*history.History, error) {
	store, err := history.OpenStore(rc.cfg.History.Backend, rc.cfg.HistoryPath())
	if err != nil {
		return nil, err
	}
	return history.New(store, rc.cfg.History.MaxItems), nil
}

func (rc *runContext) client() *httpclient.Client {
	return httpclient.NewClient(rc.cfg.Request.Timeout, rc.cfg.Request.UserAgent)
}

func (rc *runContext) renderer(noColor bool) *render.Renderer {
	color := false
	if f, ok := rc.stdout.(*os.File); ok {
		color = render.ColorEnabled(f, noColor)
	}
	return render.New(rc.stdout, color, format.PaletteFromConfig(rc.cfg.Highlight.Colors))
}

// setupTUILogging sends log output to the debug log file, or nowhere, while
// the interactive client owns the terminal. The returned func closes the file.
func setupTUILogging(cfg *config.Config) (func(), error) {
	if !cfg.Dev.Debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	path := cfg.Dev.LogFile
	if path == "" {
		path = "zirest-debug.log"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("cannot open log file %s", path), err)
	}
	log.SetOutput(f)
	log.Printf("zirest %s starting", version)
	return func() { f.Close() }, nil
}
