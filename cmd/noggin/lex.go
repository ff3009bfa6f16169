package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarkProvanP/mips-toy-lang/internal/lexer"
	"github.com/MarkProvanP/mips-toy-lang/internal/report"
)

func newLexCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the tokens of a source file (stdin if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			out, err := a.outputFormat(format)
			if err != nil {
				return err
			}
			src, err := a.readSource(args)
			if err != nil {
				return err
			}
			toks, err := lexer.Tokenize(strings.NewReader(src), a.lexerOptions()...)
			if err != nil {
				return a.fail(src, err)
			}
			if out == "yaml" {
				return report.WriteYAML(a.stdout, report.Tokens(toks))
			}
			return report.WriteTokens(a.stdout, toks)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or yaml (default from config)")
	return cmd
}
