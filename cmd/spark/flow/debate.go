package flow

import (
	"fmt"
	"strings"

	"careerspark/internal/api"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// debateOpenedMsg reports the outcome of starting the stream.
type debateOpenedMsg struct {
	stream *api.DebateStream
	err    error
}

// debateState renders the live agent debate. The transcript is
// append-only; events arrive one at a time through the channel pump in
// waitForEvent.
type debateState struct {
	stream  *api.DebateStream
	vp      viewport.Model
	lines   []string
	opening bool
	errMsg  string
	done    bool
}

func (d *debateState) resize(width, height int) {
	w := width - 4
	h := height - 8
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	d.vp.Width = w
	d.vp.Height = h
	d.refresh()
}

func (d *debateState) refresh() {
	d.vp.SetContent(strings.Join(d.lines, "\n"))
	d.vp.GotoBottom()
}

func (m Model) openDebate() tea.Cmd {
	category := ""
	if m.results.analysis != nil {
		category = m.results.analysis.PredictedCategory
	}
	return func() tea.Msg {
		s, err := m.client.OpenDebateStream(m.ctx, m.userID, category)
		return debateOpenedMsg{stream: s, err: err}
	}
}

func (m Model) handleDebateOpened(msg debateOpenedMsg) (tea.Model, tea.Cmd) {
	m.debate.opening = false
	if m.screen != ScreenResults {
		// The user moved on before the stream opened.
		if msg.stream != nil {
			msg.stream.Close()
		}
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn("debate stream failed to open", zap.Error(msg.err))
		m.results.errMsg = msg.err.Error()
		return m, nil
	}
	m.debate = debateState{stream: msg.stream}
	m.debate.resize(m.width, m.height)
	m.setScreen(ScreenDebate)
	return m, m.waitForEvent()
}

// waitForEvent delivers the next stream event, re-armed after each one.
// A closed channel arrives as ok=false exactly once.
func (m Model) waitForEvent() tea.Cmd {
	stream := m.debate.stream
	return func() tea.Msg {
		ev, ok := <-stream.Events()
		return debateEventMsg{ev: ev, ok: ok}
	}
}

func (m Model) updateDebate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debateEventMsg:
		if m.debate.stream == nil {
			return m, nil // stale event after navigating away
		}
		if !msg.ok {
			return m.finishDebate()
		}
		m.debate.lines = append(m.debate.lines, m.renderEvent(msg.ev)...)
		m.debate.refresh()
		return m, m.waitForEvent()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Leaving the debate must kill the connection.
			m.teardown()
			m.setScreen(ScreenResults)
			return m, nil
		case "enter":
			if m.debate.done {
				return m.showRoleResult(m.role.result)
			}
		case "r":
			if m.debate.errMsg != "" {
				m.debate = debateState{opening: true}
				m.setScreen(ScreenResults)
				return m, m.openDebate()
			}
		}
		var cmd tea.Cmd
		m.debate.vp, cmd = m.debate.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// finishDebate resolves the stream outcome once the event channel
// closes.
func (m Model) finishDebate() (tea.Model, tea.Cmd) {
	stream := m.debate.stream
	m.debate.stream = nil
	result, err := stream.Result()
	switch {
	case err != nil:
		m.debate.errMsg = err.Error()
		m.debate.lines = append(m.debate.lines, "", m.styles.Error.Render("The debate was interrupted: "+err.Error()))
		m.debate.refresh()
		m.log.Warn("debate stream ended with error", zap.Error(err))
	case result != nil:
		m.role.result = result
		m.debate.done = true
		m.debate.lines = append(m.debate.lines, "",
			m.styles.Success.Render(fmt.Sprintf("The agents agree: %s", result.RecommendedRole)))
		m.debate.refresh()
	default:
		// Closed locally before completion; nothing to show.
		m.setScreen(ScreenResults)
	}
	return m, nil
}

// renderEvent formats one stream record for the transcript. Unknown
// event types still render their message so new backend events degrade
// gracefully.
func (m Model) renderEvent(ev api.DebateEvent) []string {
	s := m.styles
	switch ev.Type {
	case api.EventStepHeader, api.EventHeader:
		return []string{"", s.Title.Render(ev.Message)}
	case api.EventStepInfo, api.EventInfo:
		msg := ev.Message
		if msg == "" {
			msg = ev.Data.Message
		}
		return []string{s.Muted.Render("  " + msg)}
	case api.EventStepSuccess:
		return []string{s.Success.Render("  ✓ " + ev.Message)}
	case api.EventAgentArgument:
		return []string{
			"",
			s.Agent.Render(fmt.Sprintf("%s (for %s):", ev.Data.AgentName, ev.Data.Role)),
			s.Body.Render("  " + ev.Data.Argument),
		}
	case api.EventRebuttal:
		return []string{
			"",
			s.Rebuttal.Render(fmt.Sprintf("%s rebuts %s:", ev.Data.AgentName, ev.Data.OpponentName)),
			s.Body.Render("  " + ev.Data.Rebuttal),
		}
	case api.EventModeratorReview:
		return []string{"", s.Moderator.Render("Moderator: " + firstNonEmpty(ev.Message, ev.Data.Message))}
	case api.EventConclusion:
		return []string{"", s.Conclusion.Render("Conclusion: " + firstNonEmpty(ev.Message, ev.Data.Reason))}
	default:
		if msg := firstNonEmpty(ev.Message, ev.Data.Message); msg != "" {
			return []string{s.Body.Render(msg)}
		}
		return nil
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (m Model) viewDebate() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Live career debate"))
	b.WriteString("\n")
	b.WriteString(m.debate.vp.View())
	b.WriteString("\n")

	switch {
	case m.debate.errMsg != "":
		b.WriteString(m.styles.Footer.Render("r: retry • esc: back"))
	case m.debate.done:
		b.WriteString(m.styles.Footer.Render("enter: see your result • esc: back"))
	default:
		b.WriteString(m.styles.Footer.Render(m.spinner.View() + " debating • esc: cancel"))
	}
	return b.String()
}
