package flow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"careerspark/internal/game"

	tea "github.com/charmbracelet/bubbletea"
)

// experienceState runs the hands-on role experience overlay. The game
// semantics live in internal/game; this layer only translates keys and
// draws the board.
type experienceState struct {
	session    *game.Session
	cursor     int    // selected track/category for mixing and budget
	amount     string // budget amount being typed
	wrongOrder bool   // timeline: full selection in the wrong order
	ticking    bool
}

// openExperience starts a fresh session for the recommended role.
func (m Model) openExperience() (tea.Model, tea.Cmd) {
	m.expGen++
	m.exp = experienceState{
		session: game.NewSession(m.role.result.RecommendedRole, m.rng),
		ticking: true,
	}
	m.overlay = overlayExperience
	return m, m.gameTick()
}

func (m Model) gameTick() tea.Cmd {
	gen := m.expGen
	return tea.Tick(gameTickInterval, func(time.Time) tea.Msg {
		return gameTickMsg{gen: gen}
	})
}

func (m Model) updateExperience(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.exp.session
	if s == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case gameTickMsg:
		if msg.gen != m.expGen || m.overlay != overlayExperience || !m.exp.ticking {
			return m, nil
		}
		s.Tick()
		if s.Completed {
			m.exp.ticking = false
			return m, nil
		}
		return m, m.gameTick()

	case clearOrderMsg:
		if msg.gen != m.expGen {
			return m, nil
		}
		if s.Timeline != nil {
			s.Timeline.ClearSelection()
		}
		m.exp.wrongOrder = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.overlay = overlayNone
			m.exp = experienceState{}
			return m, nil
		case "r":
			m.expGen++ // orphan any timer armed for the old run
			s.Reset()
			m.exp.cursor = 0
			m.exp.amount = ""
			m.exp.wrongOrder = false
			m.exp.ticking = true
			return m, m.gameTick()
		}
		if s.Completed {
			return m, nil
		}
		return m.handleGameKey(msg.String())
	}
	return m, nil
}

func (m Model) handleGameKey(key string) (tea.Model, tea.Cmd) {
	s := m.exp.session
	switch s.Kind() {
	case game.KindTimeline:
		if m.exp.wrongOrder {
			return m, nil // wait for the clear
		}
		if n := likertKey(key); n > 0 {
			out := s.SelectScene(n)
			if out.WrongOrder {
				m.exp.wrongOrder = true
				gen := m.expGen
				return m, tea.Tick(wrongOrderDelay, func(time.Time) tea.Msg {
					return clearOrderMsg{gen: gen}
				})
			}
		}

	case game.KindMixing:
		tracks := s.Mixing.Tracks
		switch key {
		case "up", "k":
			if m.exp.cursor > 0 {
				m.exp.cursor--
			}
		case "down", "j":
			if m.exp.cursor < len(tracks)-1 {
				m.exp.cursor++
			}
		case "left", "h":
			t := tracks[m.exp.cursor]
			s.SetTrackLevel(t.Name, t.Level-5)
		case "right", "l":
			t := tracks[m.exp.cursor]
			s.SetTrackLevel(t.Name, t.Level+5)
		}

	case game.KindShot:
		if n := likertKey(key); n > 0 {
			s.ChooseShot(n)
		}

	case game.KindWriting:
		if n := likertKey(key); n > 0 {
			s.ChooseDialogue(n)
		}

	case game.KindBudget:
		cats := s.Budget.Categories
		switch {
		case key == "up" || key == "k":
			if m.exp.cursor > 0 {
				m.exp.cursor--
				m.exp.amount = ""
			}
		case key == "down" || key == "j":
			if m.exp.cursor < len(cats)-1 {
				m.exp.cursor++
				m.exp.amount = ""
			}
		case key == "backspace":
			if len(m.exp.amount) > 0 {
				m.exp.amount = m.exp.amount[:len(m.exp.amount)-1]
			}
		case key == "enter":
			if n, err := strconv.Atoi(m.exp.amount); err == nil {
				s.Allocate(cats[m.exp.cursor].Name, n)
			}
			m.exp.amount = ""
		case len(key) == 1 && key[0] >= '0' && key[0] <= '9' && len(m.exp.amount) < 6:
			m.exp.amount += key
		}

	default: // project
		if n := likertKey(key); n > 0 && n <= len(s.Project.Tasks) {
			s.CompleteTask(s.Project.Tasks[n-1].Name)
		}
	}
	return m, nil
}

func (m Model) viewExperience() string {
	s := m.exp.session
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Header.Render(fmt.Sprintf("Try it: %s", s.Role)))
	b.WriteString("\n")
	b.WriteString(st.Content.Render(fmt.Sprintf("%s   %s   %s",
		st.Badge.Render(fmt.Sprintf("Score %d", s.Score)),
		st.Badge.Render(fmt.Sprintf("Level %d", s.Level)),
		st.Bold.Render(fmt.Sprintf("⏱ %ds", s.TimeLeft)))))
	b.WriteString("\n")

	if s.Completed {
		b.WriteString(st.Content.Render(
			st.Title.Render("Time's up!") + "\n\n" +
				st.Body.Render(fmt.Sprintf("Final score: %d", s.Score)) + "\n" +
				st.Success.Render(s.ScoreMessage()) + "\n\n" +
				st.Footer.Render("r: play again • esc: back")))
		return b.String()
	}

	switch s.Kind() {
	case game.KindTimeline:
		b.WriteString(m.viewTimeline())
	case game.KindMixing:
		b.WriteString(m.viewMixing())
	case game.KindShot:
		b.WriteString(m.viewShot())
	case game.KindWriting:
		b.WriteString(m.viewWriting())
	case game.KindBudget:
		b.WriteString(m.viewBudget())
	default:
		b.WriteString(m.viewProject())
	}

	b.WriteString("\n")
	b.WriteString(st.Footer.Render("r: restart • esc: back"))
	return b.String()
}

func (m Model) viewTimeline() string {
	s := m.exp.session
	st := m.styles
	t := s.Timeline

	var b strings.Builder
	b.WriteString(st.Body.Render(t.Story))
	b.WriteString("\n\n")
	for _, scene := range t.Scenes {
		marker := "  "
		if t.IsSelected(scene.ID) {
			marker = st.Success.Render("✓ ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker,
			st.Badge.Render(strconv.Itoa(scene.ID)),
			st.Body.Render(scene.Description)))
		b.WriteString("     " + st.Muted.Render(scene.StoryPoint) + "\n")
	}
	if m.exp.wrongOrder {
		b.WriteString("\n" + st.Error.Render("That order doesn't tell the story. Resetting..."))
	} else {
		b.WriteString("\n" + st.Muted.Render("Press a scene number to add it to your cut, in story order."))
	}
	return st.Content.Render(b.String())
}

func (m Model) viewMixing() string {
	s := m.exp.session
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Body.Render(s.Mixing.Song))
	b.WriteString("\n\n")
	for i, t := range s.Mixing.Tracks {
		name := fmt.Sprintf("%-18s", t.Name)
		if i == m.exp.cursor {
			name = st.Selected.Render(name)
		} else {
			name = st.Choice.Render(name)
		}
		status := st.Muted.Render("•")
		if t.InTolerance() {
			status = st.Success.Render("✓")
		}
		b.WriteString(fmt.Sprintf("%s %s %3d  target %d  %s\n",
			name, levelBar(t.Level), t.Level, t.Target, status))
	}
	b.WriteString("\n" + st.Muted.Render("up/down: pick a track • left/right: move the fader"))
	return st.Content.Render(b.String())
}

// levelBar draws a 20-cell fader position.
func levelBar(level int) string {
	filled := level / 5
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 20-filled) + "]"
}

func (m Model) viewShot() string {
	s := m.exp.session
	st := m.styles
	sc := s.Shot.CurrentScenario()

	var b strings.Builder
	b.WriteString(st.Bold.Render(sc.Scene))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render("Goal: " + sc.Goal))
	b.WriteString("\n\n")
	for _, opt := range sc.Shots {
		b.WriteString(fmt.Sprintf("  %d. %s\n", opt.ID, st.Body.Render(opt.Description)))
	}
	b.WriteString("\n" + st.Muted.Render(fmt.Sprintf("Scenario %d of %d • pick the shot that serves the scene",
		s.Shot.Current+1, len(s.Shot.Scenarios))))
	return st.Content.Render(b.String())
}

func (m Model) viewWriting() string {
	s := m.exp.session
	st := m.styles
	ch := s.Writing.CurrentChallenge()

	var b strings.Builder
	b.WriteString(st.Body.Render(ch.Context))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render("Voice: " + ch.Character))
	b.WriteString("\n\n")
	b.WriteString(st.Bold.Render("“" + ch.Dialogue + "”"))
	b.WriteString("\n\n")
	for _, opt := range ch.Options {
		b.WriteString(fmt.Sprintf("  %d. %s\n", opt.ID, st.Body.Render(opt.Text)))
	}
	b.WriteString("\n" + st.Muted.Render("Pick the line that fits the character."))
	return st.Content.Render(b.String())
}

func (m Model) viewBudget() string {
	s := m.exp.session
	st := m.styles
	bud := s.Budget

	var b strings.Builder
	b.WriteString(st.Body.Render(bud.Project))
	b.WriteString("\n\n")
	for i, c := range bud.Categories {
		name := fmt.Sprintf("%-20s", c.Name)
		if i == m.exp.cursor {
			name = st.Selected.Render(name)
		} else {
			name = st.Choice.Render(name)
		}
		status := ""
		if c.Allocated > 0 && !c.InRange() {
			status = st.Warning.Render(" out of range")
		}
		b.WriteString(fmt.Sprintf("%s $%-7d (range $%d-$%d)%s\n",
			name, c.Allocated, c.Min, c.Max, status))
	}
	b.WriteString("\n")
	b.WriteString(st.Bold.Render(fmt.Sprintf("Remaining: $%d of $%d", bud.Remaining(), game.TotalBudget)))
	b.WriteString("\n")
	if m.exp.amount != "" {
		b.WriteString(st.Prompt.Render("Amount: $" + m.exp.amount))
		b.WriteString("\n")
	}
	b.WriteString("\n" + st.Muted.Render("up/down: pick a line • type an amount, enter to commit"))
	return st.Content.Render(b.String())
}

func (m Model) viewProject() string {
	s := m.exp.session
	st := m.styles
	p := s.Project

	var b strings.Builder
	b.WriteString(st.Body.Render(p.Scenario))
	b.WriteString("\n\n")
	for i, task := range p.Tasks {
		marker := st.Muted.Render("[ ]")
		if task.Completed {
			marker = st.Success.Render("[✓]")
		}
		b.WriteString(fmt.Sprintf("  %d. %s %s  %s\n", i+1, marker,
			st.Body.Render(task.Name),
			st.Muted.Render(fmt.Sprintf("%d pts, %dh", task.Points, task.Time))))
	}
	b.WriteString("\n")
	b.WriteString(st.Bold.Render(fmt.Sprintf("Time used: %dh of %dh", p.TimeUsed, game.MaxProjectTime)))
	b.WriteString("\n\n" + st.Muted.Render("Press a task number to complete it."))
	return st.Content.Render(b.String())
}
