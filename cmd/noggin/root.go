package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MarkProvanP/mips-toy-lang/internal/config"
	"github.com/MarkProvanP/mips-toy-lang/internal/lexer"
	"github.com/MarkProvanP/mips-toy-lang/internal/parser"
)

// app is the state shared by every subcommand
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *slog.Logger

	stdin          io.Reader
	stdout, stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:   "noggin",
		Short: "noggin front end - lexer and parser",
		Long: `noggin tokenizes and parses noggin source files.

Commands:
  lex      - print the token stream of a file
  parse    - parse a file and print its declarations and definitions
  repl     - tokenize lines interactively
  version  - print the version`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.FileName+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log the lexer and parser trace to stderr")

	root.AddCommand(newLexCmd(a), newParseCmd(a), newReplCmd(a), newVersionCmd(a))
	return root
}

func (a *app) setup() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		wd, werr := os.Getwd()
		if werr != nil {
			return werr
		}
		a.cfg, err = config.Discover(wd)
	}
	if err != nil {
		return err
	}
	a.log = a.cfg.Logger(a.stderr, a.verbose)
	a.log.Debug("config loaded", "file", a.cfgFile, "hyphens", a.cfg.Lexer.IdentifierHyphens)
	return nil
}

// readSource reads the named file, or stdin when args is empty
func (a *app) readSource(args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(b), nil
}

// outputFormat picks the flag value if set, otherwise the configured format
func (a *app) outputFormat(flag string) (string, error) {
	format := a.cfg.Output.Format
	if flag != "" {
		format = flag
	}
	switch format {
	case "text", "yaml":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q, want text or yaml", format)
}

func (a *app) lexerOptions() []lexer.Option {
	return append(a.cfg.LexerOptions(), lexer.WithLogger(a.log))
}

func (a *app) parserOptions() []parser.Option {
	return []parser.Option{parser.WithLogger(a.log), parser.WithLexerOptions(a.cfg.LexerOptions()...)}
}

// fail renders err against src on stderr
func (a *app) fail(src string, err error) error {
	fmt.Fprintln(a.stderr, a.render(src, err))
	return &reportedError{err: err}
}
