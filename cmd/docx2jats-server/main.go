// Command docx2jats-server exposes the converter over HTTP: an upload form,
// a conversion endpoint, Markdown preview, and health/metrics endpoints.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	docx2jats "github.com/alnah/go-docx2jats"
	"github.com/alnah/go-docx2jats/internal/config"
	"github.com/alnah/go-docx2jats/internal/server"
	"github.com/alnah/go-docx2jats/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFlag  = flag.StringP("config", "c", "", "config file name or path")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("docx2jats-server %s\n", version.Display())
		return nil
	}

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	svc := docx2jats.New(
		docx2jats.WithPandocBinary(cfg.Pandoc.Binary),
		docx2jats.WithTimeout(cfg.Pandoc.Timeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if pandocVersion, err := svc.EngineVersion(ctx); err != nil {
		logger.Warn("pandoc unavailable; conversions will fail until installed", slog.Any("error", err))
	} else {
		logger.Info("engine ready", slog.String("pandoc", pandocVersion))
	}

	srv := server.New(cfg.Server, svc, logger, prometheus.NewRegistry())
	logger.Info("starting", slog.String("version", version.Display()))
	return srv.ListenAndServe(ctx)
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
