// Package quiz holds the static personality question bank and the
// quiz-taking session state. Scoring happens server-side; the client only
// collects responses and ships them in one batch.
package quiz

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var bankYAML []byte

// Question types. Likert questions are answered on a 1-5 scale;
// likert_reverse is scored inverted by the backend but is presented
// identically. Choice questions pick one option; text is free-form.
const (
	TypeLikert        = "likert"
	TypeLikertReverse = "likert_reverse"
	TypeChoice        = "choice"
	TypeText          = "text"
)

// Question is one entry of the bank.
type Question struct {
	ID       string
	Question string   `yaml:"question"`
	Type     string   `yaml:"type"`
	Trait    string   `yaml:"trait"`
	Options  []string `yaml:"options"`
}

// IsLikert reports whether the question is answered on the 1-5 scale.
func (q Question) IsLikert() bool {
	return q.Type == TypeLikert || q.Type == TypeLikertReverse
}

type bankFile struct {
	Questions map[string]Question `yaml:"questions"`
}

// LoadBank parses the embedded question bank, sorted by question ID.
func LoadBank() ([]Question, error) {
	var f bankFile
	if err := yaml.Unmarshal(bankYAML, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	ids := make([]string, 0, len(f.Questions))
	for id := range f.Questions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	questions := make([]Question, 0, len(ids))
	for _, id := range ids {
		q := f.Questions[id]
		q.ID = id
		questions = append(questions, q)
	}
	return questions, nil
}
