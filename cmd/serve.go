package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/cartera/ambito"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/web"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the reports as a web site" }
func (*serveCmd) Usage() string {
	return `cartera serve [-addr <address>]

  Serves the reports as HTML pages until interrupted. See 'cartera topic web'.

  When index_schedule is configured, the CCL index is downloaded again on that
  cron schedule (for instance "0 19 * * 1-5").
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address (default addr in the configuration)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	addr := c.addr
	if addr == "" {
		addr = cfg.Addr
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IndexSchedule != "" {
		scheduler, err := scheduleIndex(ctx, cfg.IndexSchedule)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scheduling the index refresh: %v\n", err)
			return subcommands.ExitFailure
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	if err := web.New(s, log.Logger).ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// scheduleIndex returns a scheduler downloading the index on schedule.
func scheduleIndex(ctx context.Context, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		from := cfg.IndexFrom
		if from.IsZero() {
			from = ambito.DefaultFrom
		}
		if _, err := refreshIndex(ctx, from, date.Today(), true); err != nil {
			log.Error().Err(err).Msg("index refresh failed")
			return
		}
		log.Info().Msg("index refreshed")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	log.Info().Str("schedule", schedule).Msg("index refresh scheduled")
	return c, nil
}
