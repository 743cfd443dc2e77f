package game

import "math/rand"

const timelineReward = 50

// Scene is one shot of the editing exercise.
type Scene struct {
	ID          int
	Description string
	StoryPoint  string
}

// Timeline is the video-editor game: pick the shuffled scenes in correct
// story order. A full wrong selection is cleared (after a UI delay)
// without penalty.
type Timeline struct {
	Story        string
	Scenes       []Scene
	CorrectOrder []int
	Selected     []int
}

func timelineScenes() []Scene {
	return []Scene{
		{ID: 1, Description: "Wide shot: Character walks into coffee shop", StoryPoint: "Establishing location"},
		{ID: 2, Description: "Close-up: Character's hand shakes as they order", StoryPoint: "Show nervousness"},
		{ID: 3, Description: "Medium shot: Character sits at table, looks around", StoryPoint: "Build tension"},
		{ID: 4, Description: "Extreme close-up: Character's eyes widen in recognition", StoryPoint: "Revelation moment"},
	}
}

func newTimeline(rng *rand.Rand) *Timeline {
	t := &Timeline{
		Story:        "A character is meeting someone important for the first time. Edit the scenes to create emotional progression.",
		Scenes:       timelineScenes(),
		CorrectOrder: []int{1, 2, 3, 4},
	}
	rng.Shuffle(len(t.Scenes), func(i, j int) {
		t.Scenes[i], t.Scenes[j] = t.Scenes[j], t.Scenes[i]
	})
	return t
}

// IsSelected reports whether a scene is already part of the selection.
func (t *Timeline) IsSelected(id int) bool {
	for _, sel := range t.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// ClearSelection drops the current (wrong) selection so the round can be
// retried.
func (t *Timeline) ClearSelection() {
	t.Selected = nil
}

// TimelineOutcome describes the effect of one scene selection.
type TimelineOutcome struct {
	RoundWon   bool // full selection in correct order
	WrongOrder bool // full selection, wrong order; caller clears after a delay
}

// hasScene reports whether id names one of the scenes.
func (t *Timeline) hasScene(id int) bool {
	for _, sc := range t.Scenes {
		if sc.ID == id {
			return true
		}
	}
	return false
}

// SelectScene appends a scene to the ordered selection and, once all
// scenes are picked, checks the order. Unknown IDs and already-picked
// scenes are no-ops.
func (s *Session) SelectScene(id int) TimelineOutcome {
	t := s.Timeline
	if t == nil || !t.hasScene(id) || t.IsSelected(id) {
		return TimelineOutcome{}
	}
	t.Selected = append(t.Selected, id)
	if len(t.Selected) < len(t.CorrectOrder) {
		return TimelineOutcome{}
	}
	for i, id := range t.Selected {
		if id != t.CorrectOrder[i] {
			return TimelineOutcome{WrongOrder: true}
		}
	}
	s.winRound(timelineReward)
	return TimelineOutcome{RoundWon: true}
}
