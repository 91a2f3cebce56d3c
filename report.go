package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // Gray
)

// reporter writes per-check results and the run summary.
type reporter struct {
	w     io.Writer
	color bool
}

func newReporter(w io.Writer, noColor bool) *reporter {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &reporter{w: w, color: color}
}

func (r *reporter) render(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *reporter) result(i int, res Result) {
	elapsed := r.render(dimStyle, fmt.Sprintf("(%s)", res.Elapsed.Round(time.Millisecond)))
	if res.Passed() {
		fmt.Fprintf(r.w, "%s %2d. %s %s\n", r.render(passStyle, "PASS"), i+1, res.Name, elapsed)
		return
	}
	fmt.Fprintf(r.w, "%s %2d. %s %s\n", r.render(failStyle, "FAIL"), i+1, res.Name, elapsed)
	fmt.Fprintf(r.w, "         %v\n", res.Err)
}

func (r *reporter) summary(results []Result) {
	failed := countFailed(results)
	line := fmt.Sprintf("%d passed, %d failed", len(results)-failed, failed)
	if failed > 0 {
		line = r.render(failStyle, line)
	} else {
		line = r.render(passStyle, line)
	}
	fmt.Fprintln(r.w, line)
}

// report writes every result followed by the summary line.
func (r *reporter) report(results []Result) {
	for i, res := range results {
		r.result(i, res)
	}
	r.summary(results)
}
