package flow

import (
	"fmt"
	"strings"

	"careerspark/cmd/spark/ui"
	"careerspark/internal/quiz"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type quizState struct {
	session    *quiz.Session
	textInput  textinput.Model
	submitting bool
	errMsg     string
}

func newQuizState(questions []quiz.Question, styles ui.Styles) quizState {
	ti := textinput.New()
	ti.Placeholder = "Your answer (or leave blank to skip)"
	ti.CharLimit = 500
	return quizState{
		session:   quiz.NewSession(questions),
		textInput: ti,
	}
}

func (q *quizState) restyle(styles ui.Styles) {}

func (q *quizState) focusCmd() tea.Cmd {
	q.syncInput()
	return textinput.Blink
}

// syncInput points the free-text input at the stored answer for the
// current question, focusing it only for text questions.
func (q *quizState) syncInput() {
	cur := q.session.Current()
	if cur.Type == quiz.TypeText {
		q.textInput.SetValue(q.session.ResponseFor(cur.ID).Text)
		q.textInput.Focus()
	} else {
		q.textInput.Blur()
	}
}

// commitText records whatever is in the text input for a text question.
// Blank input stays recorded as a skip.
func (q *quizState) commitText() {
	cur := q.session.Current()
	if cur.Type == quiz.TypeText {
		q.session.Record(cur.ID, quiz.Response{Text: strings.TrimSpace(q.textInput.Value())})
	}
}

func (q *quizState) next() {
	q.commitText()
	q.session.Next()
	q.syncInput()
}

func (q *quizState) prev() {
	q.commitText()
	q.session.Prev()
	q.syncInput()
}

func (m Model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen == ScreenQuizSuccess {
		if adv, ok := msg.(advanceMsg); ok && adv.from == ScreenQuizSuccess {
			m.setScreen(ScreenQuizLoading)
			return m, m.startRamp()
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case quizSubmittedMsg:
		m.quiz.submitting = false
		if msg.err != nil {
			m.quiz.errMsg = msg.err.Error()
			m.log.Warn("quiz submission failed", zap.Error(msg.err))
			return m, nil
		}
		m.setScreen(ScreenQuizSuccess)
		return m, m.advanceAfter(quizAdvanceDelay)

	case tea.KeyMsg:
		if m.quiz.submitting {
			return m, nil
		}
		cur := m.quiz.session.Current()

		switch msg.String() {
		case "up":
			m.quiz.prev()
			return m, nil
		case "down":
			m.quiz.next()
			return m, nil
		case "enter":
			if m.quiz.session.AtLast() {
				m.quiz.commitText()
				m.quiz.submitting = true
				m.quiz.errMsg = ""
				return m, m.submitQuiz()
			}
			m.quiz.next()
			return m, nil
		case "esc":
			m.setScreen(ScreenUpload)
			return m, m.upload.focusCmd()
		}

		if cur.IsLikert() {
			if n := likertKey(msg.String()); n >= 1 && n <= 5 {
				m.quiz.session.Record(cur.ID, quiz.Response{Scale: n})
				if !m.quiz.session.AtLast() {
					m.quiz.next()
				}
				return m, nil
			}
			return m, nil
		}
		if cur.Type == quiz.TypeChoice {
			if n := likertKey(msg.String()); n > 0 && n <= len(cur.Options) {
				m.quiz.session.Record(cur.ID, quiz.Response{Text: cur.Options[n-1]})
				if !m.quiz.session.AtLast() {
					m.quiz.next()
				}
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.quiz.textInput, cmd = m.quiz.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func likertKey(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}

func (m Model) submitQuiz() tea.Cmd {
	payload := m.quiz.session.Payload(m.userID)
	return func() tea.Msg {
		return quizSubmittedMsg{err: m.client.SubmitQuestions(m.ctx, payload)}
	}
}

func (m Model) viewQuiz() string {
	if m.screen == ScreenQuizSuccess {
		return m.styles.Content.Render(
			m.styles.Success.Render("✓ Responses submitted!") + "\n\n" +
				m.styles.Body.Render("Building your personality profile..."))
	}

	s := m.quiz.session
	cur := s.Current()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Personality quiz"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Question %d of %d • %d answered • skipping is fine",
		s.Index()+1, s.Len(), s.Answered())))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Bold.Render(cur.Question))
	b.WriteString("\n\n")

	resp := s.ResponseFor(cur.ID)
	switch {
	case cur.IsLikert():
		labels := []string{"Strongly disagree", "Disagree", "Neutral", "Agree", "Strongly agree"}
		for i, label := range labels {
			line := fmt.Sprintf("%d. %s", i+1, label)
			if resp.Scale == i+1 {
				b.WriteString("  " + m.styles.Selected.Render(line))
			} else {
				b.WriteString("  " + m.styles.Choice.Render(line))
			}
			b.WriteString("\n")
		}
	case cur.Type == quiz.TypeChoice:
		for i, opt := range cur.Options {
			line := fmt.Sprintf("%d. %s", i+1, opt)
			if resp.Text == opt {
				b.WriteString("  " + m.styles.Selected.Render(line))
			} else {
				b.WriteString("  " + m.styles.Choice.Render(line))
			}
			b.WriteString("\n")
		}
	default:
		b.WriteString(m.quiz.textInput.View())
		b.WriteString("\n")
	}

	if m.quiz.submitting {
		b.WriteString("\n" + m.spinner.View() + " " + m.styles.Info.Render("Submitting responses..."))
	}
	if m.quiz.errMsg != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.quiz.errMsg))
	}

	b.WriteString("\n\n")
	hint := "1-5: answer • up/down: navigate • enter: next"
	if s.AtLast() {
		hint = "enter: submit • up: back"
	}
	b.WriteString(m.styles.Footer.Render(hint))
	return m.styles.Content.Render(b.String())
}
