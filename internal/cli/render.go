package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"resume-ats/internal/ats"
	"resume-ats/internal/reports"
)

const gaugeWidth = 20

// Renderer draws reports for a terminal. Colors are only emitted when the
// writer it was built for supports them.
type Renderer struct {
	title lipgloss.Style
	muted lipgloss.Style
	pass  lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

// NewRenderer builds a Renderer whose color profile matches w.
func NewRenderer(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		title: lr.NewStyle().Bold(true),
		muted: lr.NewStyle().Foreground(lipgloss.Color("245")),
		pass:  lr.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  lr.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (r *Renderer) scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return r.pass
	case score >= 40:
		return r.warn
	default:
		return r.fail
	}
}

func (r *Renderer) statusTag(s ats.Status) string {
	switch s {
	case ats.StatusFail:
		return r.fail.Render("FAIL")
	case ats.StatusWarning:
		return r.warn.Render("WARN")
	default:
		return r.pass.Render("PASS")
	}
}

// Gauge renders score (0-100) as a bar of width cells.
func Gauge(score, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Report writes the full report: score gauge, findings worst first and the
// recommendations in rank order.
func (r *Renderer) Report(w io.Writer, name string, rep reports.Report) {
	style := r.scoreStyle(rep.Score)

	fmt.Fprintln(w, r.title.Render(name))
	fmt.Fprintf(w, "Score %s  %s\n", style.Render(fmt.Sprintf("%d/100", rep.Score)), style.Render(rep.Band))
	fmt.Fprintf(w, "[%s]\n", style.Render(Gauge(rep.Score, gaugeWidth)))
	fmt.Fprintln(w, r.muted.Render(fmt.Sprintf("%d checks: %d pass, %d warning, %d fail",
		len(rep.Checks), rep.Summary.Pass, rep.Summary.Warning, rep.Summary.Fail)))
	fmt.Fprintln(w)

	for _, f := range ats.SortedBySeverity(rep.Checks) {
		fmt.Fprintf(w, "%s  %s %s  %s\n", r.statusTag(f.Status), f.Label, r.muted.Render(fmt.Sprintf("(%d)", f.Weight)), f.Message)
		if f.Status == ats.StatusPass {
			continue
		}
		for _, d := range f.Details {
			fmt.Fprintf(w, "      - %s\n", d)
		}
	}

	if len(rep.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.title.Render("Recommendations"))
	for i, rec := range rep.Recommendations {
		fmt.Fprintf(w, "%2d. %s\n", i+1, rec.Title)
		fmt.Fprintf(w, "    %s\n", rec.Action)
	}
}

// BatchLine writes one summary line per batch file.
func (r *Renderer) BatchLine(w io.Writer, name string, res BatchResult) {
	if res.Error != "" {
		fmt.Fprintf(w, "%s  %s  %s\n", r.fail.Render("ERR"), name, r.muted.Render(res.Error))
		return
	}
	style := r.scoreStyle(res.Score)
	fmt.Fprintf(w, "%s  %-10s  %s\n", style.Render(fmt.Sprintf("%3d", res.Score)), res.Band, name)
}

// History writes recorded reports newest first.
func (r *Renderer) History(w io.Writer, reps []reports.Report) {
	if len(reps) == 0 {
		fmt.Fprintln(w, r.muted.Render("no reports recorded"))
		return
	}
	for _, rep := range reps {
		style := r.scoreStyle(rep.Score)
		fmt.Fprintf(w, "%s  %s  %-10s  %s\n",
			r.muted.Render(rep.CreatedAt.Local().Format("2006-01-02 15:04")),
			style.Render(fmt.Sprintf("%3d", rep.Score)),
			rep.Band,
			rep.ID)
	}
}
