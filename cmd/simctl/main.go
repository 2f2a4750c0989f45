// Command simctl drives a running local simulation service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pefman/bg-localsim/internal/api"
	"github.com/pefman/bg-localsim/internal/config"
	"github.com/pefman/bg-localsim/internal/models"
)

// Config holds the parsed command line.
type Config struct {
	URL        string
	Iterations int
	TimeoutMs  int
	Threads    int
	Command    string
	Args       []string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

var errUsage = errors.New("usage: simctl [-url URL] [-iterations N] [-timeout-ms N] [-threads N] health|cards|current|simulate FILE")

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{URL: api.DefaultBaseURL}
	if lookup != nil {
		if v, ok := lookup("BGSIM_URL"); ok && strings.TrimSpace(v) != "" {
			cfg.URL = strings.TrimSpace(v)
		}
	}

	fs.StringVar(&cfg.URL, "url", cfg.URL, "service base URL")
	fs.IntVar(&cfg.Iterations, "iterations", models.DefaultIterations, "trials per simulation")
	fs.IntVar(&cfg.TimeoutMs, "timeout-ms", 0, "simulation time budget in milliseconds (0 for none)")
	fs.IntVar(&cfg.Threads, "threads", 0, "worker threads (0 for the service default)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errUsage
	}
	cfg.Command, cfg.Args = rest[0], rest[1:]
	switch cfg.Command {
	case "health", "cards", "current":
	case "simulate":
		if len(cfg.Args) != 1 {
			return Config{}, errUsage
		}
	default:
		return Config{}, fmt.Errorf("unknown command %q\n%w", cfg.Command, errUsage)
	}
	return cfg, nil
}

func (c Config) options() models.SimOptions {
	opts := models.SimOptions{Iterations: c.Iterations}
	if c.TimeoutMs > 0 {
		opts.TimeoutMs = models.IntPtr(c.TimeoutMs)
	}
	if c.Threads > 0 {
		opts.ThreadCount = models.IntPtr(c.Threads)
	}
	return opts
}

// Run executes the configured command and prints its result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	client := api.NewClient(cfg.URL)
	switch cfg.Command {
	case "health":
		status, err := client.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, status)
	case "cards":
		list, err := client.Cards(ctx)
		if err != nil {
			return err
		}
		if !list.Ready {
			fmt.Fprintln(out, "catalog not loaded yet")
			return nil
		}
		for _, c := range list.Cards {
			fmt.Fprintf(out, "%-20s %s\n", c.ID, c.Name)
		}
	case "current":
		res, err := client.SimulateFromCurrent(ctx, cfg.options())
		if err != nil {
			return err
		}
		printResult(out, res)
	case "simulate":
		body, err := os.ReadFile(cfg.Args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		if !json.Valid(body) {
			return fmt.Errorf("snapshot %s is not valid JSON", cfg.Args[0])
		}
		res, err := client.SimulateRaw(ctx, body, cfg.options())
		if err != nil {
			return err
		}
		printResult(out, res)
	}
	return nil
}

func printResult(out io.Writer, res *models.SimResult) {
	fmt.Fprintf(out, "win %.1f%%  tie %.1f%%  lose %.1f%%  (%d simulations)\n",
		res.Win*100, res.Tie*100, res.Lose*100, res.Simulations)
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		config.Exitf("%v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("simctl %s: %v", cfg.Command, err)
	}
}
