package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the converter CLI.
type cliFlags struct {
	output      string
	config      string
	jats        bool
	quiet       bool
	verbose     bool
	showVersion bool
	timeout     string
}

// parseFlags parses CLI flags and returns positional args.
func parseFlags(args []string, usageOut io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("docx2jats", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: input with .md/.xml extension)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.jats, "jats", false, "convert DOCX all the way to JATS XML")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show engine details")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "engine timeout (e.g., 30s, 2m)")

	fs.SetOutput(usageOut)
	fs.Usage = func() { printUsage(usageOut, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	_, _ = io.WriteString(w, `Usage: docx2jats [flags] <input.docx|input.md>

Converts DOCX to Markdown, or Markdown to JATS XML, via pandoc.
DOCX input produces <input>.md (or <input>.xml with --jats);
Markdown input produces <input>.xml.

Flags:
`)
	_, _ = io.WriteString(w, fs.FlagUsages())
}
