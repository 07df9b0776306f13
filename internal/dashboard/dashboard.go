// Package dashboard is the interactive terminal view: enter a handle,
// get the full analysis and prediction rendered in place.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bojcoach/internal/coach"
)

const fetchTimeout = 30 * time.Second

type state int

const (
	stateInput state = iota
	stateLoading
	stateReport
	stateError
)

type reportMsg struct {
	analysis *coach.Analysis
}

type errMsg struct {
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	coach    *coach.Service
	input    textinput.Model
	state    state
	handle   string
	analysis *coach.Analysis
	err      error
	width    int
	height   int
}

// New creates the dashboard model.
func New(svc *coach.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "solved.ac handle"
	ti.CharLimit = 40
	ti.Focus()

	return Model{coach: svc, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInput || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case "esc":
			if m.state == stateReport || m.state == stateError {
				m.state = stateInput
				m.input.SetValue("")
				return m, m.input.Focus()
			}
		case "enter":
			if m.state == stateInput && strings.TrimSpace(m.input.Value()) != "" {
				m.handle = strings.TrimSpace(m.input.Value())
				m.state = stateLoading
				return m, m.fetch(m.handle)
			}
		}

	case reportMsg:
		m.analysis = msg.analysis
		m.state = stateReport
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// fetch runs the analysis pipeline off the update loop. The full
// report already carries the tier prediction, so one call covers
// every card.
func (m Model) fetch(handle string) tea.Cmd {
	svc := m.coach
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		a, err := svc.Analysis(ctx, handle)
		if err != nil {
			return errMsg{err: err}
		}
		return reportMsg{analysis: a}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var content string
	switch m.state {
	case stateInput:
		content = m.viewInput()
	case stateLoading:
		content = dimStyle.Render(fmt.Sprintf("Fetching %s's profile from solved.ac...", m.handle))
	case stateReport:
		content = m.viewReport()
	case stateError:
		content = errorStyle.Render(m.err.Error()) + "\n\n" +
			dimStyle.Render("Esc to try another handle, Ctrl+C to quit")
	}

	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(content))
	return v
}

func (m Model) viewInput() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bojcoach"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Adaptive coaching for Baekjoon Online Judge"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Enter to analyze, Ctrl+C to quit"))
	return b.String()
}

func (m Model) viewReport() string {
	a := m.analysis

	var b strings.Builder

	b.WriteString(titleStyle.Render(a.User.Handle))
	b.WriteString("  ")
	b.WriteString(tierStyle.Render(a.Tier.Name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d rating, %d solved", a.User.Rating, a.User.SolvedCount)))
	b.WriteString("\n\n")

	b.WriteString(m.profileCard(a))
	b.WriteString("\n")
	b.WriteString(m.weaknessCard(a))
	b.WriteString("\n")
	b.WriteString(m.predictionCard(a))
	b.WriteString("\n")

	if a.Message != "" {
		b.WriteString(dimStyle.Width(min(m.width-4, 78)).Render(a.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Esc for another handle, q to quit"))
	return b.String()
}

func (m Model) profileCard(a *coach.Analysis) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Profile"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n",
		valueStyle.Render("Toward "+a.Tier.NextName+":"),
		progressBar(a.Tier.Progress, 24))
	fmt.Fprintf(&b, "%s %s, avg level %s\n",
		valueStyle.Render("Difficulty range:"),
		a.Difficulty.Summary.Easiest+" to "+a.Difficulty.Summary.Hardest,
		fmt.Sprintf("%.1f", a.Difficulty.Summary.AverageLevel))
	fmt.Fprintf(&b, "%s %.1f/day (%s)",
		valueStyle.Render("Activity:"),
		a.Activity.DailyAvg, a.Activity.Label)
	return cardStyle.Render(b.String())
}

func (m Model) weaknessCard(a *coach.Analysis) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Weak areas"))
	b.WriteString("\n")
	if len(a.WeakTags) == 0 {
		b.WriteString(dimStyle.Render("none detected"))
	}
	for i, w := range a.WeakTags {
		if i > 0 {
			b.WriteString("\n")
		}
		sev := lipgloss.NewStyle().Foreground(severityColor(string(w.Severity))).Render(string(w.Severity))
		fmt.Fprintf(&b, "%-16s %5.1f%%  %s  %s",
			w.Tag, w.SuccessRate, sev, dimStyle.Render(w.EstimatedTime))
	}
	return cardStyle.Render(b.String())
}

func (m Model) predictionCard(a *coach.Analysis) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Next tier"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s in %s (%s confidence)",
		valueStyle.Render(a.Prediction.NextTier),
		a.Prediction.EstimatedTime, a.Prediction.Confidence)
	for _, blocker := range a.Prediction.Blockers {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! "))
		b.WriteString(valueStyle.Render(blocker))
	}
	return cardStyle.Render(b.String())
}

// progressBar renders a fixed-width bar for a 0-100 percentage.
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %.1f%%", lipgloss.NewStyle().Foreground(colPrimary).Render(bar), pct)
}

// Run starts the Bubble Tea program.
func Run(svc *coach.Service) error {
	_, err := tea.NewProgram(New(svc)).Run()
	return err
}
