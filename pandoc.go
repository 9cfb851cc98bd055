package docx2jats

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultPandocBinary is the engine binary resolved from PATH.
const DefaultPandocBinary = "pandoc"

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Engine abstracts the external conversion engine. The contract is "given a
// source document and target format, return converted text or fail with a
// diagnostic"; callers depend only on its conventional output shapes.
type Engine interface {
	ToMarkdown(ctx context.Context, docxPath string) (string, error)
	ToJATS(ctx context.Context, markdown string) (string, error)
	Version(ctx context.Context) (string, error)
}

// PandocEngine converts documents by invoking the pandoc CLI with temp
// output files.
type PandocEngine struct {
	Binary string
	Runner CommandRunner
}

// NewPandocEngine creates a PandocEngine with a real command runner.
func NewPandocEngine(binary string) *PandocEngine {
	if binary == "" {
		binary = DefaultPandocBinary
	}
	return &PandocEngine{Binary: binary, Runner: &ExecRunner{}}
}

// ToMarkdown converts a DOCX file to Markdown. Multiline tables are kept,
// headings use ATX style, and lines are not wrapped so the downstream regex
// passes see whole paragraphs.
func (e *PandocEngine) ToMarkdown(ctx context.Context, docxPath string) (string, error) {
	if docxPath == "" {
		return "", ErrEmptyInputPath
	}
	if _, err := os.Stat(docxPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, docxPath)
	}

	outPath, cleanup, err := tempOutputPath("out.md")
	if err != nil {
		return "", err
	}
	defer cleanup()

	args := []string{
		docxPath, "-o", outPath,
		"--to", "markdown+multiline_tables",
		"--wrap=none",
		"--markdown-headings=atx",
		"--reference-location=document",
	}
	if err := e.run(ctx, args); err != nil {
		return "", err
	}

	return readEngineOutput(outPath)
}

// ToJATS converts Markdown content to standalone JATS archiving XML.
func (e *PandocEngine) ToJATS(ctx context.Context, markdown string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyMarkdown
	}

	inPath, cleanupIn, err := writeTempMarkdown(markdown)
	if err != nil {
		return "", err
	}
	defer cleanupIn()

	outPath, cleanupOut, err := tempOutputPath("out.xml")
	if err != nil {
		return "", err
	}
	defer cleanupOut()

	args := []string{
		inPath, "-o", outPath,
		"--to", "jats_archiving",
		"--standalone",
		"--wrap=none",
		"--reference-location=document",
	}
	if err := e.run(ctx, args); err != nil {
		return "", err
	}

	return readEngineOutput(outPath)
}

// Version returns pandoc's version line, or ErrPandocNotFound when the
// binary cannot be executed.
func (e *PandocEngine) Version(ctx context.Context) (string, error) {
	stdout, _, err := e.Runner.Run(ctx, e.binary(), "--version")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPandocNotFound, err)
	}
	line, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(line), nil
}

func (e *PandocEngine) binary() string {
	if e.Binary == "" {
		return DefaultPandocBinary
	}
	return e.Binary
}

// run invokes pandoc and wraps a failure with its stderr diagnostic.
func (e *PandocEngine) run(ctx context.Context, args []string) error {
	_, stderr, err := e.Runner.Run(ctx, e.binary(), args...)
	if err != nil {
		diag := strings.TrimSpace(stderr)
		if diag != "" {
			return fmt.Errorf("%w: %s: %v", ErrPandocFailed, diag, err)
		}
		return fmt.Errorf("%w: %v", ErrPandocFailed, err)
	}
	return nil
}

// tempOutputPath reserves a temp directory for one engine output file.
// Returns the output path and a cleanup function removing the directory.
func tempOutputPath(name string) (path string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "go-docx2jats-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	return filepath.Join(dir, name), func() { _ = os.RemoveAll(dir) }, nil
}

// writeTempMarkdown creates a temporary file with Markdown content.
// Returns the file path and a cleanup function to remove the file.
func writeTempMarkdown(content string) (path string, cleanup func(), err error) {
	tmpFile, err := os.CreateTemp("", "go-docx2jats-*.md")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}

	return path, cleanup, nil
}

// readEngineOutput reads the engine's output file, distinguishing a missing
// file (engine claimed success but wrote nothing) from other read errors.
func readEngineOutput(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is created by tempOutputPath
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoEngineOutput
		}
		return "", fmt.Errorf("reading engine output: %w", err)
	}
	return string(data), nil
}
