package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorTitle = lipgloss.Color("#7C3AED")
)

var (
	errorHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorError)

	caretStyle = lipgloss.NewStyle().
			Foreground(colorError)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)
)

// render formats a diagnostic, styled unless output.color is off
func (a *app) render(src string, err error) string {
	ce := diag.FromError(src, err)
	if !a.cfg.Output.Color {
		return ce.Format(nil, nil)
	}
	return ce.Format(
		func(s string) string { return errorHeaderStyle.Render(s) },
		func(s string) string { return caretStyle.Render(s) },
	)
}

func (a *app) hint(s string) string {
	if !a.cfg.Output.Color {
		return s
	}
	return hintStyle.Render(s)
}

func (a *app) title(s string) string {
	if !a.cfg.Output.Color {
		return s
	}
	return titleStyle.Render(s)
}
