// Package report prints the one-line pass/fail summary of a test run.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/deixis/testgate/internal/workflow"
)

// Status lines. The decoration is added by the Printer's styles.
const (
	PassMessage = "✓ All tests passed!"
	FailMessage = "✗ Tests failed!"
)

// Printer writes a single styled status line per outcome.
type Printer struct {
	out  io.Writer
	pass lipgloss.Style
	fail lipgloss.Style
}

// NewPrinter returns a Printer for w. Color is used only when w is a
// terminal that supports it.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:  w,
		pass: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		fail: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Print writes the status line for o.
func (p *Printer) Print(o workflow.Outcome) error {
	line := p.fail.Render(FailMessage)
	if o.OK() {
		line = p.pass.Render(PassMessage)
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}
