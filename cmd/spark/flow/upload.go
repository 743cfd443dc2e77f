package flow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"careerspark/cmd/spark/ui"
	"careerspark/internal/api"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadPhase is the local sub-state of the upload screen.
type uploadPhase int

const (
	uploadComposing uploadPhase = iota // editing the free-text message
	uploadPickingFile                  // typing a file path to attach
	uploadConfirming                   // y/n before sending
	uploadSending                      // request in flight
)

// sentMessage records one successful upload for the session. The list
// is append-only and lost on restart.
type sentMessage struct {
	id          string
	text        string
	fileNames   []string
	storageKeys []string
	sentAt      time.Time
}

type uploadState struct {
	phase     uploadPhase
	message   textarea.Model
	pathInput textinput.Model
	files     []string
	sent      []sentMessage
	errMsg    string
}

func newUploadState(styles ui.Styles) uploadState {
	ta := textarea.New()
	ta.Placeholder = "Tell us about your creative work, passions, and projects..."
	ta.SetHeight(5)
	ta.CharLimit = 4000

	ti := textinput.New()
	ti.Placeholder = "path/to/portfolio.pdf"
	ti.CharLimit = 512

	return uploadState{
		message:   ta,
		pathInput: ti,
	}
}

func (u *uploadState) restyle(styles ui.Styles) {}

func (u *uploadState) resize(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	u.message.SetWidth(w)
	u.pathInput.Width = w
}

func (u *uploadState) focusCmd() tea.Cmd {
	u.message.Focus()
	return textarea.Blink
}

// addFile attaches a path if it points at a readable file. Attaching the
// same file twice is allowed; the list is ordered and append-only until
// removal.
func (u *uploadState) addFile(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		u.errMsg = "not a readable file: " + path
		return
	}
	u.files = append(u.files, path)
	u.errMsg = ""
}

// removeFile drops the attachment at index i, keeping the relative
// order of the rest. Out-of-range indices are a silent no-op.
func (u *uploadState) removeFile(i int) {
	if i < 0 || i >= len(u.files) {
		return
	}
	u.files = append(u.files[:i], u.files[i+1:]...)
}

// removeLastFile drops the most recent attachment.
func (u *uploadState) removeLastFile() {
	u.removeFile(len(u.files) - 1)
}

// canSubmit requires a message or at least one file, checked before any
// network traffic.
func (u *uploadState) canSubmit() bool {
	return strings.TrimSpace(u.message.Value()) != "" || len(u.files) > 0
}

func (m Model) updateUpload(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen == ScreenUploadSuccess {
		if adv, ok := msg.(advanceMsg); ok && adv.from == ScreenUploadSuccess {
			m.setScreen(ScreenQuestions)
			return m, m.quiz.focusCmd()
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case uploadDoneMsg:
		if msg.err != nil {
			m.upload.phase = uploadComposing
			m.upload.errMsg = api.Remediation(msg.err)
			m.log.Warn("upload failed", zap.Error(msg.err))
			return m, m.upload.focusCmd()
		}
		m.log.Info("upload accepted", zap.Int("files", len(m.upload.files)))
		rec := sentMessage{
			id:     uuid.NewString(),
			text:   m.upload.message.Value(),
			sentAt: time.Now(),
		}
		for _, f := range m.upload.files {
			rec.fileNames = append(rec.fileNames, filepath.Base(f))
		}
		if msg.resp != nil {
			rec.storageKeys = msg.resp.S3Keys
		}
		m.upload.sent = append(m.upload.sent, rec)
		m.upload.message.Reset()
		m.upload.files = nil
		m.upload.phase = uploadComposing
		m.setScreen(ScreenUploadSuccess)
		return m, m.advanceAfter(uploadAdvanceDelay)

	case tea.KeyMsg:
		switch m.upload.phase {
		case uploadConfirming:
			switch msg.String() {
			case "y", "Y", "enter":
				m.upload.phase = uploadSending
				return m, m.sendUpload()
			case "n", "N", "esc":
				m.upload.phase = uploadComposing
				return m, m.upload.focusCmd()
			}
			return m, nil

		case uploadSending:
			return m, nil // ignore input while in flight

		case uploadPickingFile:
			switch msg.String() {
			case "enter":
				m.upload.addFile(m.upload.pathInput.Value())
				m.upload.pathInput.SetValue("")
				return m, nil
			case "esc":
				m.upload.phase = uploadComposing
				m.upload.pathInput.Blur()
				return m, m.upload.focusCmd()
			}
			var cmd tea.Cmd
			m.upload.pathInput, cmd = m.upload.pathInput.Update(msg)
			return m, cmd

		default: // composing
			switch msg.String() {
			case "ctrl+f":
				m.upload.phase = uploadPickingFile
				m.upload.message.Blur()
				m.upload.pathInput.Focus()
				return m, textinput.Blink
			case "ctrl+d":
				m.upload.removeLastFile()
				return m, nil
			case "ctrl+s":
				if !m.upload.canSubmit() {
					m.upload.errMsg = "Please provide some information or upload files"
					return m, nil
				}
				m.upload.errMsg = ""
				m.upload.phase = uploadConfirming
				m.upload.message.Blur()
				return m, nil
			case "esc":
				m.setScreen(ScreenWelcome)
				return m, nil
			}
			var cmd tea.Cmd
			m.upload.message, cmd = m.upload.message.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) sendUpload() tea.Cmd {
	message := m.upload.message.Value()
	files := append([]string(nil), m.upload.files...)
	return func() tea.Msg {
		resp, err := m.client.Upload(m.ctx, message, files)
		return uploadDoneMsg{resp: resp, err: err}
	}
}

func (m Model) viewUpload() string {
	if m.screen == ScreenUploadSuccess {
		return m.styles.Content.Render(
			m.styles.Success.Render("✓ Upload successful!") + "\n\n" +
				m.styles.Body.Render("Analyzing your creative profile...") + "\n" +
				m.styles.Muted.Render("Taking you to the personality quiz."))
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Share your creative world"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Describe your work, or attach portfolios, demos, scripts, anything."))
	b.WriteString("\n\n")
	if n := len(m.upload.sent); n > 0 {
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("✓ %d submission(s) shared this session", n)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.upload.message.View())
	b.WriteString("\n\n")

	if len(m.upload.files) > 0 {
		b.WriteString(m.styles.Bold.Render(fmt.Sprintf("Attachments (%d):", len(m.upload.files))))
		b.WriteString("\n")
		for _, f := range m.upload.files {
			b.WriteString("  • " + m.styles.Body.Render(f) + "\n")
		}
		b.WriteString("\n")
	}

	switch m.upload.phase {
	case uploadPickingFile:
		b.WriteString(m.styles.Prompt.Render("Attach file: "))
		b.WriteString(m.upload.pathInput.View())
		b.WriteString("\n")
	case uploadConfirming:
		b.WriteString(m.styles.Warning.Render("Send this to the analysis backend? (y/n)"))
		b.WriteString("\n")
	case uploadSending:
		b.WriteString(m.spinner.View() + " " + m.styles.Info.Render("Uploading..."))
		b.WriteString("\n")
	}

	if m.upload.errMsg != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.upload.errMsg) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("ctrl+s: submit • ctrl+f: attach file • ctrl+d: remove last file • esc: back"))
	return m.styles.Content.Render(b.String())
}
