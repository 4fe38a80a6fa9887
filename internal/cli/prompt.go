// Package cli provides the interactive prompt surface of the tool.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Prompter reads interactive answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter on the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints a prompt with a default value and returns the entered line, or
// the default when the user just presses enter.
func (p *Prompter) Ask(label, defaultValue string) string {
	prompt := color.New(color.FgCyan, color.Bold).Sprint(label)
	fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultValue)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

// Infof prints a progress line.
func (p *Prompter) Infof(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Successf prints a green success line.
func (p *Prompter) Successf(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(p.out, format+"\n", args...)
}

// Warnf prints a yellow warning line.
func (p *Prompter) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(p.out, format+"\n", args...)
}
