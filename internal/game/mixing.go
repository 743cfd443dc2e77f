package game

import "math/rand"

const (
	mixingReward    = 40
	mixingTolerance = 5
)

// Track is one fader of the mixing desk.
type Track struct {
	Name        string
	Level       int // current fader position, 0-100
	Target      int
	Description string
}

// Mixing is the sound-engineer game: bring every track within tolerance
// of its target level.
type Mixing struct {
	Song   string
	Tracks []Track
}

func newMixing(rng *rand.Rand) *Mixing {
	m := &Mixing{
		Song: "You're mixing a pop ballad. The vocals need to be prominent, but the emotional guitar solo should shine in the bridge.",
		Tracks: []Track{
			{Name: "Lead Vocals", Target: 80, Description: "Main melody - should be clear and upfront"},
			{Name: "Drums", Target: 65, Description: "Rhythm foundation - present but not overwhelming"},
			{Name: "Bass", Target: 60, Description: "Low end support - felt more than heard"},
			{Name: "Guitar Solo", Target: 75, Description: "Emotional peak - needs space to breathe"},
			{Name: "Background Vocals", Target: 55, Description: "Harmony layer - subtle enhancement"},
		},
	}
	for i := range m.Tracks {
		m.Tracks[i].Level = rng.Intn(100)
	}
	return m
}

// randomize rerolls levels and targets for the next round.
func (m *Mixing) randomize(rng *rand.Rand) {
	for i := range m.Tracks {
		m.Tracks[i].Level = rng.Intn(100)
		m.Tracks[i].Target = rng.Intn(30) + 55
	}
}

// InTolerance reports whether a track sits close enough to its target.
func (t Track) InTolerance() bool {
	d := t.Level - t.Target
	if d < 0 {
		d = -d
	}
	return d <= mixingTolerance
}

// balanced reports whether every track is within tolerance.
func (m *Mixing) balanced() bool {
	for _, t := range m.Tracks {
		if !t.InTolerance() {
			return false
		}
	}
	return true
}

// SetTrackLevel moves one fader (clamped to 0-100) and checks the win
// condition. Returns true when the round was won.
func (s *Session) SetTrackLevel(name string, level int) bool {
	m := s.Mixing
	if m == nil {
		return false
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	for i := range m.Tracks {
		if m.Tracks[i].Name == name {
			m.Tracks[i].Level = level
		}
	}
	if !m.balanced() {
		return false
	}
	s.Score += mixingReward
	s.Level++
	m.randomize(s.rng)
	return true
}
