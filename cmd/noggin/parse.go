package main

import (
	"github.com/spf13/cobra"

	"github.com/MarkProvanP/mips-toy-lang/internal/parser"
	"github.com/MarkProvanP/mips-toy-lang/internal/report"
)

func newParseCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file (stdin if omitted) and summarise it",
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
			prog, err := parser.ParseString(src, a.parserOptions()...)
			if err != nil {
				return a.fail(src, err)
			}
			if out == "yaml" {
				return report.WriteYAML(a.stdout, report.Summarize(prog))
			}
			return report.WriteProgram(a.stdout, prog)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or yaml (default from config)")
	return cmd
}
