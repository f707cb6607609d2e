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
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"go-crowd-monitor/internal/config"
	"go-crowd-monitor/internal/container"
	"go-crowd-monitor/internal/logger"
)

const usage = `usage:
  crowdmon analyze -input IN -output OUT
  crowdmon history [-limit N]`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	// A missing .env is fine; the environment alone is enough
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithError(err).Warn("Failed to load .env file")
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.WithError(err).Error("Failed to load config")
		return 1
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize container")
		return 1
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close container")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "analyze":
		return runAnalyze(ctx, c, cfg, args[1:], stdout)
	case "history":
		return runHistory(ctx, c, args[1:], stdout)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
}

func runAnalyze(ctx context.Context, c *container.Container, cfg *config.Config, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	input := fs.String("input", "", "input image location")
	output := fs.String("output", "", "heatmap output location")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.AnalysisTimeout)
	defer cancel()

	result := c.Service().Analyze(ctx, *input, *output)
	if err := writeJSON(stdout, result); err != nil {
		logger.WithError(err).Error("Failed to write result")
		return 1
	}
	if !result.Succeeded() {
		return 1
	}
	return 0
}

func runHistory(ctx context.Context, c *container.Container, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "number of records to show, 0 for all")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	records, err := c.Service().History(ctx, *limit)
	if err != nil {
		logger.WithFields(logrus.Fields{"limit": *limit}).WithError(err).Error("Failed to read history")
		return 1
	}
	if err := writeJSON(stdout, records); err != nil {
		logger.WithError(err).Error("Failed to write history")
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
