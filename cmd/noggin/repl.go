package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/lexer"
	"github.com/MarkProvanP/mips-toy-lang/internal/parser"
	"github.com/MarkProvanP/mips-toy-lang/internal/report"
)

const (
	historyFile = ".noggin_history"
	promptMain  = "noggin> "
)

// lineReader is the part of liner.State the loop needs
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Tokenize lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			home, _ := os.UserHomeDir()
			histPath := filepath.Join(home, historyFile)

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			if f, err := os.Open(histPath); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(histPath); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()
			return a.repl(ln)
		},
	}
}

// repl prints the tokens of each entered line and keeps the lines that lexed
// cleanly in a buffer for :parse.
func (a *app) repl(in lineReader) error {
	fmt.Fprintln(a.stdout, a.hint("noggin repl. :parse parses the buffer, :dump prints its summary, :reset clears it, :quit exits."))

	var buf []string
	for {
		line, err := in.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if err != nil {
			return err
		}

		cmdline := strings.TrimSpace(line)
		if cmdline == "" {
			continue
		}
		in.AppendHistory(line)

		if strings.HasPrefix(cmdline, ":") {
			switch strings.ToLower(cmdline) {
			case ":quit":
				return nil
			case ":reset":
				buf = nil
				fmt.Fprintln(a.stdout, a.hint("buffer cleared"))
			case ":parse":
				src := strings.Join(buf, "\n")
				if prog, ok := a.replParse(src); ok {
					if err := report.WriteProgram(a.stdout, prog); err != nil {
						return err
					}
				}
			case ":dump":
				src := strings.Join(buf, "\n")
				if prog, ok := a.replParse(src); ok {
					fmt.Fprintf(a.stdout, "%# v\n", pretty.Formatter(report.Summarize(prog)))
				}
			default:
				fmt.Fprintln(a.stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}

		toks, err := lexer.Tokenize(strings.NewReader(line), a.lexerOptions()...)
		if err != nil {
			fmt.Fprintln(a.stderr, a.render(line, err))
			continue
		}
		buf = append(buf, line)
		if err := report.WriteTokens(a.stdout, toks); err != nil {
			return err
		}
	}
}

func (a *app) replParse(src string) (*ast.Program, bool) {
	prog, err := parser.ParseString(src, a.parserOptions()...)
	if err != nil {
		fmt.Fprintln(a.stderr, a.render(src, err))
		return nil, false
	}
	return prog, true
}
