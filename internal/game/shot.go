package game

const shotReward = 30

// ShotOption is one camera choice for a scenario.
type ShotOption struct {
	ID          int
	Description string
	Correct     bool
	Reason      string
}

// ShotScenario is one directing decision.
type ShotScenario struct {
	Scene string
	Goal  string
	Shots []ShotOption
}

// Shot is the director game: pick the shot that serves the scene.
// Incorrect picks are silently ignored; correct picks advance, and
// clearing the final scenario wins the round.
type Shot struct {
	Scenarios []ShotScenario
	Current   int
}

func newShot() *Shot {
	return &Shot{
		Scenarios: []ShotScenario{
			{
				Scene: "Opening scene: A detective arrives at a crime scene",
				Goal:  "Establish the setting and mood",
				Shots: []ShotOption{
					{ID: 1, Description: "Wide establishing shot of the entire scene", Correct: true, Reason: "Establishes location and context for the audience"},
					{ID: 2, Description: "Close-up of detective's face", Correct: false, Reason: "Too intimate for an opening - we need context first"},
					{ID: 3, Description: "Extreme close-up of a clue", Correct: false, Reason: "Spoils the mystery - save details for later"},
				},
			},
			{
				Scene: "Emotional moment: Character learns their loved one is safe",
				Goal:  "Capture the emotional release",
				Shots: []ShotOption{
					{ID: 1, Description: "Wide shot of the room", Correct: false, Reason: "Too distant - we need to feel the emotion"},
					{ID: 2, Description: "Close-up of character's face showing relief", Correct: true, Reason: "Captures the emotional moment intimately"},
					{ID: 3, Description: "Overhead shot looking down", Correct: false, Reason: "Creates distance from the emotion"},
				},
			},
			{
				Scene: "Action sequence: A chase through narrow streets",
				Goal:  "Create energy and urgency",
				Shots: []ShotOption{
					{ID: 1, Description: "Static wide shot", Correct: false, Reason: "Too static - action needs movement"},
					{ID: 2, Description: "Handheld medium shot following the action", Correct: true, Reason: "Creates immediacy and energy"},
					{ID: 3, Description: "Slow-motion close-up", Correct: false, Reason: "Kills the urgency of the chase"},
				},
			},
		},
	}
}

// CurrentScenario returns the scenario awaiting a decision.
func (sh *Shot) CurrentScenario() ShotScenario {
	return sh.Scenarios[sh.Current]
}

// PickOutcome describes the effect of a shot or dialogue choice.
type PickOutcome struct {
	Correct  bool
	RoundWon bool // the last scenario/challenge was cleared
}

// ChooseShot scores a correct pick and advances to the next scenario;
// clearing the last one levels up and restarts the cycle. Incorrect
// picks have no state effect.
func (s *Session) ChooseShot(optionID int) PickOutcome {
	sh := s.Shot
	if sh == nil {
		return PickOutcome{}
	}
	var picked *ShotOption
	scenario := sh.CurrentScenario()
	for i := range scenario.Shots {
		if scenario.Shots[i].ID == optionID {
			picked = &scenario.Shots[i]
		}
	}
	if picked == nil || !picked.Correct {
		return PickOutcome{}
	}
	s.Score += shotReward
	if sh.Current < len(sh.Scenarios)-1 {
		sh.Current++
		return PickOutcome{Correct: true}
	}
	s.Level++
	sh.Current = 0
	return PickOutcome{Correct: true, RoundWon: true}
}
