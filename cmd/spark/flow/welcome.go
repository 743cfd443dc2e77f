package flow

import (
	"fmt"
	"strings"

	"careerspark/cmd/spark/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Categories shown in the welcome gallery. The backend predicts one of
// these from the uploaded material; the gallery is purely inspirational
// and does not constrain the prediction.
var welcomeCategories = []struct {
	Name    string
	Tagline string
}{
	{"Business & Management", "Lead teams and turn ideas into ventures"},
	{"Sport", "Coach, compete, and build athletic careers"},
	{"Music", "Compose, produce, and engineer sound"},
	{"Film/TV", "Direct, edit, and tell stories on screen"},
	{"VFX/Animation", "Bring impossible worlds to life"},
	{"Writing & Journalism", "Find the story and make it land"},
}

type welcomeState struct {
	cursor int
}

func newWelcomeState() welcomeState {
	return welcomeState{}
}

func (m Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.welcome.cursor > 0 {
			m.welcome.cursor--
		}
	case "down", "j":
		if m.welcome.cursor < len(welcomeCategories)-1 {
			m.welcome.cursor++
		}
	case "enter", " ":
		m.setScreen(ScreenUpload)
		return m, m.upload.focusCmd()
	case "q", "esc":
		m.teardown()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(m.styles.Content.Render(ui.Logo(m.styles)))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("  Discover the creative career that fits who you are."))
	b.WriteString("\n\n")

	for i, cat := range welcomeCategories {
		line := fmt.Sprintf("%s  %s", cat.Name, m.styles.Muted.Render(cat.Tagline))
		if i == m.welcome.cursor {
			b.WriteString("  " + m.styles.Selected.Render("> "+cat.Name) + "  " + m.styles.Muted.Render(cat.Tagline))
		} else {
			b.WriteString("    " + m.styles.Choice.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: start your journey • q: quit"))
	return b.String()
}
