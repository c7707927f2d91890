package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(mode string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(mode)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}

	return "", fmt.Errorf("%w: %q (expected auto, always or never)", ErrInvalidArgument, mode)
}

// printer writes one "<filename> - <result>" line per edited project.
type printer struct {
	w      io.Writer
	name   lipgloss.Style
	result lipgloss.Style
}

func newPrinter(w io.Writer, mode ColorMode) *printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(colorProfile(w, mode))

	return &printer{
		w:      w,
		name:   r.NewStyle().Foreground(lipgloss.Color("211")),
		result: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	}
}

func (p *printer) Result(path, result string) {
	fmt.Fprintf(p.w, "%s - %s\n", p.name.Render(filepath.Base(path)), p.result.Render(result))
}

func colorProfile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI256
	case ColorAuto:
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return termenv.Ascii
	}

	return termenv.NewOutput(w).EnvColorProfile()
}
