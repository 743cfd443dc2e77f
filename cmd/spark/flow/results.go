package flow

import (
	"strings"
	"time"

	"careerspark/internal/api"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// rampState animates the analysis progress bar between quiz submission
// and the results screen.
type rampState struct {
	bar     progress.Model
	percent float64
}

func (m *Model) startRamp() tea.Cmd {
	m.ramp = rampState{bar: progress.New(progress.WithDefaultGradient())}
	return m.rampTick()
}

func (m Model) rampTick() tea.Cmd {
	from := m.screen
	return tea.Tick(analysisRampTick, func(time.Time) tea.Msg {
		return rampTickMsg{from: from}
	})
}

func (m Model) updateRamp(msg tea.Msg) (tea.Model, tea.Cmd) {
	tick, ok := msg.(rampTickMsg)
	if !ok || tick.from != ScreenQuizLoading {
		return m, nil
	}
	m.ramp.percent += float64(analysisRampTick) / float64(analysisRampTime)
	if m.ramp.percent < 1 {
		return m, m.rampTick()
	}
	m.ramp.percent = 1
	m.setScreen(ScreenResults)
	m.results.fetching = true
	return m, m.fetchAnalysis()
}

func (m Model) viewRamp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Reading between the lines..."))
	b.WriteString("\n\n")
	b.WriteString(m.ramp.bar.ViewAs(m.ramp.percent))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("Matching your answers against creative career patterns."))
	return m.styles.Content.Render(b.String())
}

// resultsState holds the computed profile and the debate-mode choice.
type resultsState struct {
	analysis *api.Analysis
	fetching bool
	errMsg   string
	cursor   int // 0 = live debate, 1 = quick result
}

func (m Model) fetchAnalysis() tea.Cmd {
	return func() tea.Msg {
		a, err := m.client.GetAnalysis(m.ctx, m.userID)
		return analysisMsg{analysis: a, err: err}
	}
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisMsg:
		m.results.fetching = false
		if msg.err != nil {
			// Without a profile there is nothing to recommend; the only
			// way forward is back.
			m.results.errMsg = msg.err.Error()
			m.log.Warn("analysis fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.results.analysis = msg.analysis
		m.log.Info("analysis ready", zap.String("category", msg.analysis.PredictedCategory))
		return m, nil

	case tea.KeyMsg:
		if m.results.fetching {
			return m, nil
		}
		if m.results.errMsg != "" {
			if msg.String() == "esc" {
				m.setScreen(ScreenQuestions)
				return m, m.quiz.focusCmd()
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k", "down", "j", "tab":
			m.results.cursor = 1 - m.results.cursor
		case "enter":
			if m.debate.opening {
				return m, nil // a stream is already being opened
			}
			if m.results.cursor == 0 {
				m.debate.opening = true
				return m, m.openDebate()
			}
			m.setScreen(ScreenLoader)
			return m, tea.Batch(m.findBestRole(), m.loaderFlip())
		}
	}
	return m, nil
}

func (m Model) viewResults() string {
	var b strings.Builder

	if m.results.fetching {
		b.WriteString(m.spinner.View() + " " + m.styles.Info.Render("Fetching your creative profile..."))
		return m.styles.Content.Render(b.String())
	}
	if m.results.errMsg != "" {
		b.WriteString(m.styles.Error.Render("Could not load your profile"))
		b.WriteString("\n\n" + m.styles.Body.Render(m.results.errMsg))
		b.WriteString("\n\n" + m.styles.Footer.Render("esc: back to quiz"))
		return m.styles.Content.Render(b.String())
	}

	a := m.results.analysis
	b.WriteString(m.styles.Title.Render("Your creative profile"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Badge.Render(a.PredictedCategory))
	b.WriteString("\n\n")
	if a.UserInputSummary != "" {
		b.WriteString(m.styles.Card.Render(a.UserInputSummary))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Bold.Render("Find your best role:"))
	b.WriteString("\n")

	options := []string{
		"Watch the live agent debate",
		"Just give me the answer",
	}
	for i, opt := range options {
		if i == m.results.cursor {
			b.WriteString("  " + m.styles.Selected.Render("> "+opt))
		} else {
			b.WriteString("    " + m.styles.Choice.Render(opt))
		}
		b.WriteString("\n")
	}

	if m.debate.opening {
		b.WriteString("\n" + m.spinner.View() + " " + m.styles.Info.Render("Convening the career agents..."))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("up/down: choose • enter: go"))
	return m.styles.Content.Render(b.String())
}

// loaderState cycles reassuring messages while the single-shot
// recommendation runs.
type loaderState struct {
	frame  int
	errMsg string
}

var loaderMessages = []string{
	"Weighing your strengths...",
	"Comparing career paths...",
	"Consulting the role profiles...",
	"Almost there...",
}

func (m Model) loaderFlip() tea.Cmd {
	from := m.screen
	return tea.Tick(loaderCycleDelay, func(time.Time) tea.Msg {
		return loaderFlipMsg{from: from}
	})
}

func (m Model) findBestRole() tea.Cmd {
	category := ""
	if m.results.analysis != nil {
		category = m.results.analysis.PredictedCategory
	}
	return func() tea.Msg {
		res, err := m.client.FindBestRole(m.ctx, m.userID, category)
		return roleResultMsg{result: res, err: err}
	}
}

func (m Model) updateLoader(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loaderFlipMsg:
		if msg.from != ScreenLoader {
			return m, nil
		}
		m.loader.frame = (m.loader.frame + 1) % len(loaderMessages)
		return m, m.loaderFlip()

	case roleResultMsg:
		if msg.err != nil {
			m.loader.errMsg = msg.err.Error()
			m.log.Warn("role recommendation failed", zap.Error(msg.err))
			return m, nil
		}
		return m.showRoleResult(msg.result)

	case tea.KeyMsg:
		if m.loader.errMsg == "" {
			return m, nil
		}
		switch msg.String() {
		case "r":
			m.loader.errMsg = ""
			return m, tea.Batch(m.findBestRole(), m.loaderFlip())
		case "esc":
			m.setScreen(ScreenResults)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) viewLoader() string {
	var b strings.Builder
	if m.loader.errMsg != "" {
		b.WriteString(m.styles.Error.Render("Could not find your best role"))
		b.WriteString("\n\n" + m.styles.Body.Render(m.loader.errMsg))
		b.WriteString("\n\n" + m.styles.Footer.Render("r: retry • esc: back"))
		return m.styles.Content.Render(b.String())
	}
	b.WriteString(m.spinner.View() + " " + m.styles.Title.Render("Finding your best role"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Info.Render(loaderMessages[m.loader.frame]))
	return m.styles.Content.Render(b.String())
}
