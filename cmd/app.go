// Package cmd implements the CLI application to render a portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cartera"
	"github.com/etnz/cartera/config"
	"github.com/etnz/cartera/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&tickerCmd{}, "reports")
	c.Register(&movementsCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")
	c.Register(&analysisCmd{}, "reports")
	c.Register(&publishCmd{}, "reports")

	c.Register(&checkCmd{}, "data")
	c.Register(&fetchIndexCmd{}, "data")

	c.Register(&serveCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (default: cartera.yaml in . or $HOME/.config/cartera)")
var dataDir = flag.String("data", "", "Path to the data directory, overrides data_dir")
var verbose = flag.Bool("v", false, "Log debug messages")

// cfg is the configuration loaded by Setup.
var cfg = &config.Config{DataDir: "public/data", Addr: ":3000", LogLevel: "info", LogPretty: true, CacheSize: store.DefaultCacheSize}

// Setup loads the configuration and the logger. It must be called after flag.Parse.
func Setup() error {
	c, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *dataDir != "" {
		c.DataDir = *dataDir
	}
	if *verbose {
		c.LogLevel = "debug"
	}
	cfg = c
	return SetupLogging(c.LogLevel, c.LogPretty)
}

// SetupLogging sets the global log level and output.
func SetupLogging(level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

// openStore opens the configured data directory.
func openStore() (*store.Store, error) {
	return store.New(cfg.DataDir, cfg.CacheSize)
}

// loadSnapshot reads the snapshot of the configured data directory.
func loadSnapshot(ctx context.Context) (*cartera.Snapshot, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// printMarkdown renders md for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
