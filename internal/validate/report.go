// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// Report accumulates the findings of one validation pass.
type Report struct {
	Errors   []string
	Warnings []string
	Passed   []string
}

// OK reports whether the pass found no errors. Warnings never fail a pass.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) passf(format string, args ...any) {
	r.Passed = append(r.Passed, fmt.Sprintf(format, args...))
}

// Print writes the report to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("Configuration report"))

	for _, p := range r.Passed {
		fmt.Fprintln(w, passStyle.Render("  ok    "+p))
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "\n%d error(s) must be fixed:\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintln(w, errorStyle.Render("  error "+e))
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d warning(s):\n", len(r.Warnings))
		for _, wn := range r.Warnings {
			fmt.Fprintln(w, warnStyle.Render("  warn  "+wn))
		}
	}

	fmt.Fprintln(w)
	if r.OK() {
		fmt.Fprintln(w, okStyle.Render("All required settings are in place."))
		fmt.Fprintln(w, "Try: autoblog generate --type=tech")
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Validation failed with %d error(s).", len(r.Errors))))
}
