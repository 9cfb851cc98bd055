package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	docx2jats "github.com/alnah/go-docx2jats"
	"github.com/alnah/go-docx2jats/internal/config"
	"github.com/alnah/go-docx2jats/internal/version"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput           = errors.New("no input file (see --help)")
	ErrUnsupportedFormat = errors.New("unsupported input format (expected .docx or .md)")
	ErrReadInput         = errors.New("failed to read input file")
	ErrWriteOutput       = errors.New("failed to write output file")
	ErrInvalidTimeout    = errors.New("invalid timeout")
)

const pandocInstallHint = "Install pandoc from https://pandoc.org/installing.html"

// run parses arguments, builds the service, and executes one conversion.
func run(args []string, stdout, stderr io.Writer) error {
	flags, positional, err := parseFlags(args[1:], stderr)
	if err != nil {
		return err
	}

	if flags.showVersion {
		fmt.Fprintf(stdout, "docx2jats %s\n", version.Display())
		return nil
	}

	if len(positional) < 1 {
		return ErrNoInput
	}
	inputPath := positional[0]

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".docx" && ext != ".md" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(inputPath))
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	opts := []docx2jats.Option{docx2jats.WithPandocBinary(cfg.Pandoc.Binary)}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, docx2jats.WithTimeout(d))
	} else if cfg.Pandoc.Timeout > 0 {
		opts = append(opts, docx2jats.WithTimeout(cfg.Pandoc.Timeout))
	}

	svc := docx2jats.New(opts...)
	ctx := context.Background()

	engineVersion, err := svc.EngineVersion(ctx)
	if err != nil {
		fmt.Fprintln(stderr, pandocInstallHint)
		return err
	}
	if flags.verbose && !flags.quiet {
		fmt.Fprintf(stderr, "Using %s\n", engineVersion)
	}

	outputPath, output, err := convert(ctx, svc, inputPath, flags)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(output), 0o644); err != nil { // #nosec G306 -- converted document, not a secret
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if !flags.quiet {
		fmt.Fprintf(stdout, "Created %s\n", outputPath)
	}
	return nil
}

// convert dispatches by input extension and returns the output path and
// converted text.
func convert(ctx context.Context, svc *docx2jats.Service, inputPath string, flags *cliFlags) (string, string, error) {
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".docx":
		if flags.jats {
			out, err := svc.ConvertDocxToJATS(ctx, inputPath)
			return resolveOutputPath(inputPath, flags.output, ".xml"), out, err
		}
		out, err := svc.ConvertDocx(ctx, inputPath)
		return resolveOutputPath(inputPath, flags.output, ".md"), out, err

	case ".md":
		content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided input path
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		out, err := svc.ConvertMarkdown(ctx, string(content))
		return resolveOutputPath(inputPath, flags.output, ".xml"), out, err

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(inputPath))
	}
}

// resolveOutputPath derives the output file path: explicit -o wins,
// otherwise the input path with its extension swapped.
func resolveOutputPath(inputPath, explicit, ext string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}

// loadConfig loads the named config, or defaults with env overrides when no
// config is given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	cfg := config.Default()
	if nameOrPath != "" {
		loaded, err := config.Load(nameOrPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
