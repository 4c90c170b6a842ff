package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/eulergrowth/internal/analysis"
	"github.com/san-kum/eulergrowth/internal/viz"
)

const (
	chartWidth  = 60
	chartHeight = 12
)

type tickMsg time.Time

// Replay reveals a comparison sample by sample, redrawing the chart on
// every frame.
type Replay struct {
	cmp      *analysis.Comparison
	frame    time.Duration
	perFrame int
	shown    int
	paused   bool
	done     bool
}

// NewReplay plays the whole comparison in roughly seconds wall-clock time at
// fps frames per second.
func NewReplay(cmp *analysis.Comparison, fps int, seconds float64) *Replay {
	if fps <= 0 {
		fps = 30
	}
	if seconds <= 0 {
		seconds = 5
	}
	frames := int(float64(fps) * seconds)
	perFrame := len(cmp.Samples) / max(frames, 1)
	if perFrame < 1 {
		perFrame = 1
	}
	return &Replay{
		cmp:      cmp,
		frame:    time.Second / time.Duration(fps),
		perFrame: perFrame,
		shown:    min(1, len(cmp.Samples)),
	}
}

func (m *Replay) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Replay) Init() tea.Cmd { return m.tick() }

func (m *Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.shown = min(1, len(m.cmp.Samples))
			m.done = false
		case "e":
			m.shown = len(m.cmp.Samples)
			m.done = true
		}
		return m, nil
	case tickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Replay) advance() {
	m.shown = min(m.shown+m.perFrame, len(m.cmp.Samples))
	if m.shown == len(m.cmp.Samples) {
		m.done = true
	}
}

// Shown is the number of samples currently revealed.
func (m *Replay) Shown() int { return m.shown }

func (m *Replay) View() string {
	if len(m.cmp.Samples) == 0 {
		return "no samples\n"
	}

	partial := &analysis.Comparison{Samples: m.cmp.Samples[:m.shown]}
	cur := partial.Samples[m.shown-1]

	status := viz.StatusRunning.Render("running")
	switch {
	case m.done:
		status = viz.StatusRunning.Render("done")
	case m.paused:
		status = viz.StatusPaused.Render("paused")
	}

	var sb strings.Builder
	sb.WriteString(viz.Title.Render("forward euler replay"))
	sb.WriteString("  ")
	sb.WriteString(status)
	sb.WriteString("\n\n")
	sb.WriteString(viz.PlotComparison(partial, chartWidth, chartHeight))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s %s\n",
		viz.ProgressBar(float64(m.shown)/float64(len(m.cmp.Samples)), 40),
		viz.Subtle.Render(fmt.Sprintf("%d/%d", m.shown, len(m.cmp.Samples))))
	fmt.Fprintf(&sb, "%s t=%.3f  %s %.6g  %s %.6g  %s %.3g\n",
		viz.MetricLabel.Render("sample"), cur.Time,
		viz.EulerStyle.Render("euler"), cur.Euler,
		viz.ExactStyle.Render("exact"), cur.Exact,
		viz.MetricLabel.Render("rel err"), cur.RelError)
	fmt.Fprintf(&sb, "%s %s\n", viz.MetricLabel.Render("error"), viz.SparklineChart(relErrors(partial), 40))
	sb.WriteString(viz.KeyHint.Render("space pause · r restart · e end · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func relErrors(cmp *analysis.Comparison) []float64 {
	out := make([]float64, len(cmp.Samples))
	for i, s := range cmp.Samples {
		out[i] = s.RelError
	}
	return out
}

func Run(cmp *analysis.Comparison, fps int, seconds float64) error {
	_, err := tea.NewProgram(NewReplay(cmp, fps, seconds)).Run()
	return err
}
