// Package ui renders questions on the terminal, collects answers, and hosts
// the interactive REPL. Rendering is the only place color is used; it is
// disabled automatically when output is not a TTY.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/themobileprof/formpilot/pkg/models"
)

// Prompter reads answers interactively from in and renders questions to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	title  *color.Color
	faint  *color.Color
	errCol *color.Color
	accent *color.Color
}

// NewPrompter creates a prompter. Color is enabled only when requested and
// meaningful for the writer.
func NewPrompter(in io.Reader, out io.Writer, useColor bool) *Prompter {
	p := &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		title:  color.New(color.Bold),
		faint:  color.New(color.Faint),
		errCol: color.New(color.FgRed),
		accent: color.New(color.FgCyan),
	}
	if !useColor || !writerIsTerminal(out) {
		for _, c := range []*color.Color{p.title, p.faint, p.errCol, p.accent} {
			c.DisableColor()
		}
	}
	return p
}

// writerIsTerminal reports whether the writer is a TTY that can take color
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Ask renders the question and reads one raw answer. The inputs "back" and
// "quit"/"exit" are navigation commands, reported through wantBack/wantQuit
// instead of as values.
func (p *Prompter) Ask(q *models.Question, header string) (any, bool, bool, error) {
	if header != "" {
		p.faint.Fprintln(p.out, header)
	}

	required := ""
	if q.Required {
		required = " *"
	}
	p.title.Fprintf(p.out, "%s%s\n", q.Text, required)
	if q.Description != "" {
		p.faint.Fprintln(p.out, q.Description)
	}
	p.renderHint(q)

	fmt.Fprint(p.out, "> ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, false, true, nil
		}
		return nil, false, false, fmt.Errorf("failed to read input: %w", err)
	}
	input := strings.TrimSpace(line)

	switch strings.ToLower(input) {
	case "back":
		return nil, true, false, nil
	case "quit", "exit":
		return nil, false, true, nil
	}

	return p.parse(q, input), false, false, nil
}

// renderHint prints type-specific guidance under the question text
func (p *Prompter) renderHint(q *models.Question) {
	switch q.Type {
	case models.TypeSingleChoice, models.TypeMultipleChoice:
		for i, opt := range q.Options {
			p.accent.Fprintf(p.out, "  %d) %s\n", i+1, opt.Label)
		}
		if q.Type == models.TypeMultipleChoice {
			p.faint.Fprintln(p.out, "  (separate multiple selections with commas)")
		}
	case models.TypeBoolean:
		p.faint.Fprintln(p.out, "  (yes/no)")
	case models.TypeDate:
		p.faint.Fprintln(p.out, "  (YYYY-MM-DD)")
	case models.TypeRating:
		if q.Min != nil && q.Max != nil {
			p.faint.Fprintf(p.out, "  (%v to %v)\n", *q.Min, *q.Max)
		}
	}
}

// parse converts raw input to the answer shape the validators expect.
// Invalid shapes are passed through untouched; validation decides what to
// tell the user.
func (p *Prompter) parse(q *models.Question, input string) any {
	if input == "" {
		return ""
	}
	switch q.Type {
	case models.TypeNumber, models.TypeRating:
		if n, err := strconv.ParseFloat(input, 64); err == nil {
			return n
		}
		return input
	case models.TypeSingleChoice:
		return p.resolveOption(q, input)
	case models.TypeMultipleChoice:
		parts := strings.Split(input, ",")
		selected := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			selected = append(selected, p.resolveOption(q, part))
		}
		return selected
	case models.TypeBoolean:
		return strings.ToLower(input)
	default:
		return input
	}
}

// resolveOption maps a 1-based option number to its value; anything else is
// taken as a literal option value
func (p *Prompter) resolveOption(q *models.Question, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1].Value
	}
	return input
}

// ShowErrors renders validation findings before a re-prompt
func (p *Prompter) ShowErrors(result models.ValidationResult) {
	for _, e := range result.Errors {
		p.errCol.Fprintf(p.out, "  ✗ %s\n", e.Message)
	}
	for _, w := range result.Warnings {
		p.faint.Fprintf(p.out, "  ! %s\n", w.Message)
	}
}
