// Package game implements the "virtual experience" mini-games: small,
// fully client-local simulations of a recommended role. Exactly one game
// variant is active per session, chosen once from the role title; only
// the 60-second timer ends a session, never a win.
package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// SessionSeconds is the countdown length of one play session.
const SessionSeconds = 60

// Kind identifies a game variant. The set is closed: role dispatch always
// resolves to one of these, with KindProject as the explicit fallback.
type Kind int

const (
	KindTimeline Kind = iota // order scenes into a story
	KindMixing               // match mixing-desk track levels
	KindShot                 // pick the right camera shot
	KindWriting              // pick dialogue matching a character voice
	KindBudget               // allocate a production budget
	KindProject              // run a project task list (fallback)
)

func (k Kind) String() string {
	switch k {
	case KindTimeline:
		return "timeline"
	case KindMixing:
		return "mixing"
	case KindShot:
		return "shot"
	case KindWriting:
		return "writing"
	case KindBudget:
		return "budget"
	case KindProject:
		return "project"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindForRole maps a free-form role title to a game variant by
// case-insensitive keyword match. Unknown roles play the generic
// project-management game.
func KindForRole(role string) Kind {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "editor") || strings.Contains(r, "video"):
		return KindTimeline
	case strings.Contains(r, "sound") || strings.Contains(r, "audio") || strings.Contains(r, "engineer"):
		return KindMixing
	case strings.Contains(r, "director") || strings.Contains(r, "filmmaker"):
		return KindShot
	case strings.Contains(r, "writer") || strings.Contains(r, "screenwriter") || strings.Contains(r, "journalist"):
		return KindWriting
	case strings.Contains(r, "producer"):
		return KindBudget
	default:
		return KindProject
	}
}

// Session is one play-through: score, level, countdown, and the single
// active variant. Winning a round raises score and level and regenerates
// the variant; the session itself keeps running until the timer expires.
type Session struct {
	Role      string
	Score     int
	Level     int
	TimeLeft  int
	Completed bool

	kind Kind
	rng  *rand.Rand

	Timeline *Timeline
	Mixing   *Mixing
	Shot     *Shot
	Writing  *Writing
	Budget   *Budget
	Project  *Project
}

// NewSession creates a session for the given role. rng drives shuffles
// and level randomization and is injected for deterministic tests.
func NewSession(role string, rng *rand.Rand) *Session {
	s := &Session{
		Role:     role,
		Level:    1,
		TimeLeft: SessionSeconds,
		kind:     KindForRole(role),
		rng:      rng,
	}
	s.spawnVariant()
	return s
}

// Kind returns the active game variant.
func (s *Session) Kind() Kind { return s.kind }

func (s *Session) spawnVariant() {
	s.Timeline, s.Mixing, s.Shot, s.Writing, s.Budget, s.Project = nil, nil, nil, nil, nil, nil
	switch s.kind {
	case KindTimeline:
		s.Timeline = newTimeline(s.rng)
	case KindMixing:
		s.Mixing = newMixing(s.rng)
	case KindShot:
		s.Shot = newShot()
	case KindWriting:
		s.Writing = newWriting()
	case KindBudget:
		s.Budget = newBudget()
	default:
		s.Project = newProject()
	}
}

// Tick advances the countdown by one second. At zero the session enters
// its terminal completed state regardless of progress.
func (s *Session) Tick() {
	if s.Completed {
		return
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if s.TimeLeft == 0 {
		s.Completed = true
	}
}

// Reset restores score, level, and timer and regenerates the active
// variant's payload. The variant itself never changes.
func (s *Session) Reset() {
	s.Score = 0
	s.Level = 1
	s.TimeLeft = SessionSeconds
	s.Completed = false
	s.spawnVariant()
}

// winRound applies the fixed per-variant reward, bumps the level, and
// regenerates the payload for the next round.
func (s *Session) winRound(reward int) {
	s.Score += reward
	s.Level++
	s.spawnVariant()
}

// ScoreMessage summarizes performance when the timer runs out.
func (s *Session) ScoreMessage() string {
	pct := float64(s.Score) / float64(s.Level*50) * 100
	switch {
	case pct >= 80:
		return "Outstanding! You're a natural!"
	case pct >= 60:
		return "Great job! You have strong potential!"
	case pct >= 40:
		return "Good effort! Keep learning!"
	default:
		return "Every expert was once a beginner. Try again!"
	}
}
