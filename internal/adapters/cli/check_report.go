package cli

import (
	"fmt"
	"time"

	"github.com/3-lines-studio/vitrine/internal/core"
)

type colorizer interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
}

type fileResult struct {
	Path        string
	Diagnostics []core.Diagnostic
	Err         string
}

// CheckReport collects language service results for a set of files and
// prints them compiler style.
type CheckReport struct {
	out       *Output
	colors    colorizer
	files     []fileResult
	startTime time.Time
	now       func() time.Time
}

func NewCheckReport(out *Output) *CheckReport {
	return &CheckReport{
		out:       out,
		colors:    out,
		startTime: time.Now(),
		now:       time.Now,
	}
}

func (r *CheckReport) Add(path string, diags []core.Diagnostic) {
	r.files = append(r.files, fileResult{Path: path, Diagnostics: diags})
}

func (r *CheckReport) AddFailure(path string, msg string) {
	r.files = append(r.files, fileResult{Path: path, Err: msg})
}

func (r *CheckReport) Counts() (errors, warnings int) {
	for _, f := range r.files {
		if f.Err != "" {
			errors++
		}
		for _, d := range f.Diagnostics {
			switch d.Severity {
			case core.SeverityError:
				errors++
			case core.SeverityWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}

func (r *CheckReport) HasFailures() bool {
	errs, _ := r.Counts()
	return errs > 0
}

func (r *CheckReport) Render() {
	w := r.out.Writer()

	for _, f := range r.files {
		if f.Err != "" {
			fmt.Fprintf(r.out.ErrWriter(), "%s: %s\n", f.Path, r.colors.Red(f.Err))
			continue
		}
		for _, d := range f.Diagnostics {
			label := r.severityLabel(d.Severity)
			fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n", f.Path, d.Line, d.Column, label, d.Message, r.colors.Gray("("+d.Source+")"))
		}
	}

	errs, warns := r.Counts()
	duration := formatDuration(r.now().Sub(r.startTime))
	if len(r.files) > 0 {
		fmt.Fprintln(w)
	}
	switch {
	case errs > 0:
		fmt.Fprintf(w, "  %s\n", r.colors.Red(fmt.Sprintf("%s, %s in %s", plural(errs, "error"), plural(warns, "warning"), duration)))
	case warns > 0:
		fmt.Fprintf(w, "  %s%s in %s\n", r.colors.Yellow("⚠ "), plural(warns, "warning"), duration)
	default:
		fmt.Fprintf(w, "  %s%s checked in %s\n", r.colors.Green("✓ "), plural(len(r.files), "file"), duration)
	}
}

func (r *CheckReport) severityLabel(s core.Severity) string {
	switch s {
	case core.SeverityError:
		return r.colors.Red("error:")
	case core.SeverityWarning:
		return r.colors.Yellow("warning:")
	default:
		return r.colors.Gray("info:")
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
