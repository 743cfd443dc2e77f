package quiz

import "careerspark/internal/api"

// Response is one recorded answer. Scale is set for likert questions
// (1-5, 0 = unanswered); Text for choice and free-form questions.
type Response struct {
	Scale int
	Text  string
}

// Empty reports whether nothing was recorded.
func (r Response) Empty() bool {
	return r.Scale == 0 && r.Text == ""
}

// value renders the answer for the submit payload: a number for likert,
// a string otherwise, "" when unanswered (skipping is allowed).
func (r Response) value() any {
	if r.Scale > 0 {
		return r.Scale
	}
	return r.Text
}

// Session tracks progress through the question bank. The index moves one
// step at a time, clamped to [0, len-1]; answers may be skipped.
type Session struct {
	questions []Question
	responses map[string]Response
	index     int
}

// NewSession starts a quiz over the given bank.
func NewSession(questions []Question) *Session {
	return &Session{
		questions: questions,
		responses: make(map[string]Response),
	}
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the current question position.
func (s *Session) Index() int { return s.index }

// Current returns the question at the current position.
func (s *Session) Current() Question { return s.questions[s.index] }

// AtLast reports whether the current question is the final one.
func (s *Session) AtLast() bool { return s.index == len(s.questions)-1 }

// Next advances one question, clamped at the end.
func (s *Session) Next() {
	if s.index < len(s.questions)-1 {
		s.index++
	}
}

// Prev moves back one question, clamped at the start.
func (s *Session) Prev() {
	if s.index > 0 {
		s.index--
	}
}

// Record stores the answer for a question ID, replacing any prior value.
func (s *Session) Record(id string, r Response) {
	s.responses[id] = r
}

// ResponseFor returns the recorded answer for a question ID.
func (s *Session) ResponseFor(id string) Response {
	return s.responses[id]
}

// Answered counts questions with a non-empty response.
func (s *Session) Answered() int {
	n := 0
	for _, r := range s.responses {
		if !r.Empty() {
			n++
		}
	}
	return n
}

// Payload builds the batch submission body. Unanswered questions are
// included with an empty response; the backend tolerates skips.
func (s *Session) Payload(userID string) api.SubmitQuestionsRequest {
	answers := make([]api.QuestionAnswer, 0, len(s.questions))
	for _, q := range s.questions {
		answers = append(answers, api.QuestionAnswer{
			ID:       q.ID,
			Question: q.Question,
			Response: s.responses[q.ID].value(),
		})
	}
	return api.SubmitQuestionsRequest{
		UserID:    userID,
		Questions: answers,
	}
}
