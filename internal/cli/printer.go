// Package cli bundles the terminal surface: colored output and input
// prompting with validation.
package cli

import (
	"fmt"
	"io"
	"strings"
)

// ANSI escape sequences for terminal colors.
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// Printer writes user facing output, optionally colorized.
type Printer struct {
	out     io.Writer
	colored bool
}

// NewPrinter creates a Printer writing to out. When colored is false all
// color codes are suppressed.
func NewPrinter(out io.Writer, colored bool) *Printer {
	return &Printer{
		out:     out,
		colored: colored,
	}
}

func (p *Printer) paint(color, text string) string {
	if !p.colored {
		return text
	}

	return color + text + ansiReset
}

// Title prints the application banner framed by asterisks.
func (p *Printer) Title(text string) {
	frame := strings.Repeat("*", 10)
	fmt.Fprintln(p.out, p.paint(ansiMagenta+ansiBold, frame+" "+text+" "+frame))
}

// Heading prints a bold section heading.
func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(ansiBold, fmt.Sprintf(format, args...)))
}

// MenuItem prints one numbered menu entry.
func (p *Printer) MenuItem(index int, label string) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(ansiCyan, fmt.Sprintf("%2d.", index)), label)
}

// Success prints a confirmation message.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(ansiGreen, fmt.Sprintf(format, args...)))
}

// Error prints an error message.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(ansiRed, fmt.Sprintf(format, args...)))
}

// Info prints a neutral informational message.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Movie prints one collection entry with its rating and optional markers.
func (p *Printer) Movie(title string, year int, rating float64, favorite bool) {
	marker := ""
	if favorite {
		marker = " " + p.paint(ansiYellow, "[fav]")
	}

	fmt.Fprintf(p.out, "%s (%d): %s%s\n",
		p.paint(ansiBold, title),
		year,
		p.paint(ansiBlue, fmt.Sprintf("%.1f", rating)),
		marker,
	)
}

// Stat prints one labelled statistic.
func (p *Printer) Stat(label string, format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n",
		p.paint(ansiCyan, label+":"),
		fmt.Sprintf(format, args...),
	)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}
