package flow

import (
	"fmt"
	"strings"

	"careerspark/internal/api"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// roleState holds the final recommendation and its rendered card.
type roleState struct {
	result   *api.RoleResult
	rendered string
	cursor   int
}

var roleActions = []string{
	"Chat with a virtual mentor",
	"Try the role hands-on",
	"Start over",
}

// showRoleResult lands the journey on the recommendation screen.
func (m Model) showRoleResult(result *api.RoleResult) (tea.Model, tea.Cmd) {
	m.teardown()
	m.role = roleState{result: result, rendered: m.renderRoleCard(result)}
	m.setScreen(ScreenRoleResult)
	return m, nil
}

// renderRoleCard formats the recommendation as markdown and renders it
// with glamour; on renderer failure the raw markdown is shown instead.
func (m Model) renderRoleCard(r *api.RoleResult) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", r.RecommendedRole)
	fmt.Fprintf(&md, "**Confidence:** %d/10\n\n", r.Confidence)
	if r.Reason != "" {
		fmt.Fprintf(&md, "%s\n\n", r.Reason)
	}
	if len(r.Pros) > 0 {
		md.WriteString("## Why it fits\n\n")
		for _, p := range r.Pros {
			fmt.Fprintf(&md, "- %s\n", p)
		}
		md.WriteString("\n")
	}
	if len(r.Considerations) > 0 {
		md.WriteString("## Worth considering\n\n")
		for _, c := range r.Considerations {
			fmt.Fprintf(&md, "- %s\n", c)
		}
		md.WriteString("\n")
	}
	if len(r.DebatedRoles) > 0 {
		fmt.Fprintf(&md, "*Debated against: %s*\n", strings.Join(r.DebatedRoles, ", "))
	}

	width := m.width - 6
	if width < 40 {
		width = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md.String()
	}
	out, err := renderer.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}

func (m Model) updateRoleResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.role.cursor > 0 {
			m.role.cursor--
		}
	case "down", "j":
		if m.role.cursor < len(roleActions)-1 {
			m.role.cursor++
		}
	case "enter":
		switch m.role.cursor {
		case 0:
			return m.openMentor()
		case 1:
			return m.openExperience()
		default:
			m.restart()
			return m, nil
		}
	}
	return m, nil
}

func (m Model) viewRoleResult() string {
	var b strings.Builder
	b.WriteString(m.role.rendered)
	b.WriteString("\n")
	for i, action := range roleActions {
		if i == m.role.cursor {
			b.WriteString("  " + m.styles.Selected.Render("> "+action))
		} else {
			b.WriteString("    " + m.styles.Choice.Render(action))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("up/down: choose • enter: go"))
	return m.styles.Content.Render(b.String())
}
