package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	appcli "examgen/internal/cli"
	"examgen/internal/config"
	"examgen/internal/pipeline"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the
// appropriate logrus level. Defaults to InfoLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))

	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

func main() {
	// Best-effort .env loading; a missing file is fine.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "examgen",
		Usage:   "extract topic-relevant questions from PDF papers and generate answered PDFs",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Missing credentials abort before any work begins.
			if err := cfg.Validate(); err != nil {
				return err
			}

			prompter := appcli.NewPrompter(os.Stdin, os.Stdout)
			cfg.SourceDir = prompter.Ask("Folder containing the question paper PDFs", cfg.SourceDir)
			cfg.Topic = prompter.Ask("Topic to extract questions for", cfg.Topic)

			p, err := pipeline.New(cfg, logger, prompter)
			if err != nil {
				return err
			}

			if err := p.Run(ctx); err != nil {
				return err
			}

			prompter.Successf("Done. PDFs written to %s", cfg.PDFDir)
			return nil
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.WithError(err).Fatal("examgen failed")
	}
}
