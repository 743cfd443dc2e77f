package flow

import (
	"strings"

	"careerspark/cmd/spark/ui"
	"careerspark/internal/api"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const mentorErrorReply = "I'm sorry, I'm having trouble responding right now. Please try again."

type chatTurn struct {
	fromUser bool
	content  string
}

// mentorState is the virtual-mentor chat overlay. The transcript is
// append-only and sends are single-flight: the input stays captured
// while a reply is pending.
type mentorState struct {
	sessionID  string
	transcript []chatTurn
	input      textarea.Model
	vp         viewport.Model
	waiting    bool
}

func newMentorState(styles ui.Styles) mentorState {
	ta := textarea.New()
	ta.Placeholder = "Ask your mentor anything about this career..."
	ta.SetHeight(3)
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	return mentorState{input: ta}
}

func (c *mentorState) restyle(styles ui.Styles) {}

func (c *mentorState) resize(width, height int) {
	w := width - 6
	h := height - 12
	if w < 20 {
		w = 20
	}
	if h < 4 {
		h = 4
	}
	c.vp.Width = w
	c.vp.Height = h
	c.input.SetWidth(w)
}

// openMentor starts (or resumes) the chat overlay. The session ID is
// minted once per journey so the backend keeps conversational context.
func (m Model) openMentor() (tea.Model, tea.Cmd) {
	if m.mentor.sessionID == "" {
		m.mentor.sessionID = uuid.NewString()
		m.mentor.transcript = []chatTurn{{
			content: "Hi! I've worked as a " + m.role.result.RecommendedRole +
				" for years. What would you like to know?",
		}}
	}
	m.overlay = overlayMentor
	m.mentor.resize(m.width, m.height)
	m.refreshMentorView()
	m.mentor.input.Focus()
	return m, textarea.Blink
}

func (m *Model) refreshMentorView() {
	var b strings.Builder
	for _, turn := range m.mentor.transcript {
		if turn.fromUser {
			b.WriteString(m.styles.Prompt.Render("You:"))
			b.WriteString("\n" + m.styles.UserInput.Render(turn.content) + "\n\n")
		} else {
			b.WriteString(m.styles.Bold.Render("Mentor:"))
			b.WriteString("\n" + m.styles.Mentor.Render(m.renderMentorMarkdown(turn.content)) + "\n\n")
		}
	}
	m.mentor.vp.SetContent(b.String())
	m.mentor.vp.GotoBottom()
}

// renderMentorMarkdown renders a mentor reply (the backend sends
// markdown) for the transcript, falling back to the raw text.
func (m *Model) renderMentorMarkdown(content string) string {
	width := m.mentor.vp.Width - 4
	if width < 20 {
		width = 60
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) updateMentor(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.mentor.waiting = false
		if msg.err != nil {
			// The transcript never loses turns; failures become an
			// apologetic mentor reply.
			m.log.Warn("mentor chat failed", zap.Error(msg.err))
			m.mentor.transcript = append(m.mentor.transcript, chatTurn{content: mentorErrorReply})
		} else {
			m.mentor.transcript = append(m.mentor.transcript, chatTurn{content: msg.reply})
		}
		m.refreshMentorView()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.overlay = overlayNone
			m.mentor.input.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.mentor.input.Value())
			if text == "" || m.mentor.waiting {
				return m, nil // blank sends and double-sends are no-ops
			}
			m.mentor.transcript = append(m.mentor.transcript, chatTurn{fromUser: true, content: text})
			m.mentor.input.Reset()
			m.mentor.waiting = true
			m.refreshMentorView()
			return m, m.sendChat(text)
		}
		var cmd tea.Cmd
		m.mentor.input, cmd = m.mentor.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) sendChat(text string) tea.Cmd {
	req := api.ChatRequest{
		JobTitle:  m.role.result.RecommendedRole,
		Message:   text,
		SessionID: m.mentor.sessionID,
	}
	return func() tea.Msg {
		reply, err := m.client.ChatWithMentor(m.ctx, req)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m Model) viewMentor() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Virtual mentor • " + m.role.result.RecommendedRole))
	b.WriteString("\n")
	b.WriteString(m.mentor.vp.View())
	b.WriteString("\n")
	if m.mentor.waiting {
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Mentor is thinking..."))
		b.WriteString("\n")
	}
	b.WriteString(m.mentor.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: send • esc: back to your result"))
	return b.String()
}
