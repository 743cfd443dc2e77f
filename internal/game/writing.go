package game

const writingReward = 25

// DialogueOption is one candidate line.
type DialogueOption struct {
	ID      int
	Text    string
	Correct bool
	Reason  string
}

// WritingChallenge asks for the line that matches a character's voice.
type WritingChallenge struct {
	Context   string
	Character string
	Dialogue  string // line with a blank to fill
	Options   []DialogueOption
}

// Writing is the writer game, same pattern as Shot over dialogue
// challenges.
type Writing struct {
	Challenges []WritingChallenge
	Current    int
}

func newWriting() *Writing {
	return &Writing{
		Challenges: []WritingChallenge{
			{
				Context:   "A confident CEO is addressing their team after a major setback.",
				Character: "Strong, reassuring leader",
				Dialogue:  "Team, I know this is tough, but we've faced challenges before. We will _____.",
				Options: []DialogueOption{
					{ID: 1, Text: "bounce back stronger", Correct: true, Reason: "Shows resilience and leadership"},
					{ID: 2, Text: "figure something out", Correct: false, Reason: "Too uncertain for a confident leader"},
					{ID: 3, Text: "try our best", Correct: false, Reason: "Lacks conviction and strength"},
				},
			},
			{
				Context:   "A shy teenager is confessing their feelings for the first time.",
				Character: "Nervous, vulnerable, authentic",
				Dialogue:  "I've been wanting to tell you... I think I _____ you.",
				Options: []DialogueOption{
					{ID: 1, Text: "like", Correct: true, Reason: "Simple and authentic for a shy character"},
					{ID: 2, Text: "adore", Correct: false, Reason: "Too formal and mature for a teenager"},
					{ID: 3, Text: "am infatuated with", Correct: false, Reason: "Too sophisticated and wordy"},
				},
			},
			{
				Context:   "A veteran journalist is breaking a major story.",
				Character: "Professional, precise, ethical",
				Dialogue:  "After months of investigation, we can now confirm that _____.",
				Options: []DialogueOption{
					{ID: 1, Text: "the evidence points to", Correct: true, Reason: "Professional, factual, and responsible"},
					{ID: 2, Text: "we totally caught them", Correct: false, Reason: "Too casual and unprofessional"},
					{ID: 3, Text: "it's definitely true that", Correct: false, Reason: "Lacks journalistic precision"},
				},
			},
		},
	}
}

// CurrentChallenge returns the challenge awaiting a decision.
func (w *Writing) CurrentChallenge() WritingChallenge {
	return w.Challenges[w.Current]
}

// ChooseDialogue scores a correct pick and advances; clearing the last
// challenge levels up and restarts the cycle. Incorrect picks have no
// state effect.
func (s *Session) ChooseDialogue(optionID int) PickOutcome {
	w := s.Writing
	if w == nil {
		return PickOutcome{}
	}
	var picked *DialogueOption
	challenge := w.CurrentChallenge()
	for i := range challenge.Options {
		if challenge.Options[i].ID == optionID {
			picked = &challenge.Options[i]
		}
	}
	if picked == nil || !picked.Correct {
		return PickOutcome{}
	}
	s.Score += writingReward
	if w.Current < len(w.Challenges)-1 {
		w.Current++
		return PickOutcome{Correct: true}
	}
	s.Level++
	w.Current = 0
	return PickOutcome{Correct: true, RoundWon: true}
}
