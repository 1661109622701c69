// Package output provides terminal output formatting utilities for the devkit CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer writes status lines. Plain output drops colors and replaces
// symbols with ASCII so it stays greppable in CI logs.
type Printer struct {
	Out   io.Writer
	Plain bool
}

// NewPrinter returns a Printer for out. Output is plain when requested or
// when out is not a terminal.
func NewPrinter(out io.Writer, plain bool) *Printer {
	return &Printer{Out: out, Plain: plain || color.NoColor || !IsTerminal(out)}
}

func (p *Printer) paint(attrs []color.Attribute, s string) string {
	if p.Plain {
		return s
	}
	return color.New(attrs...).Sprint(s)
}

func (p *Printer) symbol(fancy, plain string) string {
	if p.Plain {
		return plain
	}
	return fancy
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...any) {
	mark := p.paint([]color.Attribute{color.FgGreen, color.Bold}, p.symbol("✓", "OK"))
	fmt.Fprintf(p.Out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning line.
func (p *Printer) Warning(format string, args ...any) {
	mark := p.paint([]color.Attribute{color.FgYellow, color.Bold}, p.symbol("⚠", "WARN"))
	fmt.Fprintf(p.Out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Failure prints a red cross line.
func (p *Printer) Failure(format string, args ...any) {
	mark := p.paint([]color.Attribute{color.FgRed, color.Bold}, p.symbol("✗", "FAIL"))
	fmt.Fprintf(p.Out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Item prints an indented bullet.
func (p *Printer) Item(format string, args ...any) {
	bullet := p.paint([]color.Attribute{color.Faint}, p.symbol("•", "-"))
	fmt.Fprintf(p.Out, "  %s %s\n", bullet, fmt.Sprintf(format, args...))
}

// Check prints one checklist line; detail is shown dimmed after the label.
func (p *Printer) Check(ok bool, label, detail string) {
	line := label
	if detail != "" {
		line += " " + p.paint([]color.Attribute{color.Faint}, "("+detail+")")
	}
	if ok {
		p.Success("%s", line)
		return
	}
	p.Failure("%s", line)
}

// Header prints a section header rule sized to the terminal.
func (p *Printer) Header(title string) {
	width := GetTerminalWidth()
	lineLen := (width - len(title) - 2) / 2
	if lineLen > 10 {
		lineLen = 10
	}
	if lineLen < 3 {
		lineLen = 3
	}
	line := strings.Repeat(p.symbol("─", "-"), lineLen)
	fmt.Fprintf(p.Out, "%s %s %s\n", p.paint([]color.Attribute{color.Faint}, line),
		p.paint([]color.Attribute{color.FgCyan, color.Bold}, title), p.paint([]color.Attribute{color.Faint}, line))
}

// Table prints rows as left-aligned columns separated by two spaces.
func (p *Printer) Table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		fmt.Fprintln(p.Out, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
