package api

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	Success bool     `json:"success"`
	S3Keys  []string `json:"s3Keys"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// QuestionAnswer is one quiz question/response pair in the submit payload.
// Response is a Likert score (number) or a choice/free-text answer (string);
// an unanswered question is submitted as "".
type QuestionAnswer struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Response any    `json:"response"`
}

// SubmitQuestionsRequest is the body of POST /api/submit-questions.
type SubmitQuestionsRequest struct {
	UserID            string           `json:"user_id"`
	Questions         []QuestionAnswer `json:"questions"`
	UserInputSummary  string           `json:"user_input_summary"`
	PredictedCategory string           `json:"predicted_category"`
}

type submitQuestionsResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Analysis is the profile computed by the backend from uploads + quiz.
type Analysis struct {
	PredictedCategory string
	UserInputSummary  string
}

type analysisResponse struct {
	Success           bool   `json:"success"`
	PredictedCategory string `json:"predicted_category"`
	Analysis          struct {
		UserInputSummary string `json:"user_input_summary"`
	} `json:"analysis"`
	Error string `json:"error,omitempty"`
}

// RoleResult is the final structured recommendation.
type RoleResult struct {
	RecommendedRole string   `json:"recommended_role"`
	Confidence      int      `json:"confidence"` // 1-10
	Reason          string   `json:"reason"`
	Pros            []string `json:"pros"`
	Considerations  []string `json:"considerations"`
	DebatedRoles    []string `json:"debated_roles"`
}

type findBestRoleResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	RoleResult
}

// Debate stream event types, as tagged by the backend.
const (
	EventStepHeader      = "step_header"
	EventStepInfo        = "step_info"
	EventInfo            = "info"
	EventStepSuccess     = "step_success"
	EventHeader          = "header"
	EventAgentArgument   = "agent_argument"
	EventRebuttal        = "rebuttal"
	EventModeratorReview = "moderator_review"
	EventConclusion      = "conclusion"
	EventFinalResult     = "final_result"
	EventError           = "error"
)

// DebateEvent is one record of the streamed debate transcript.
// Error events carry their message at the top level; everything else
// nests its payload under Data.
type DebateEvent struct {
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	Data    DebateEventData `json:"data,omitempty"`
}

// DebateEventData is the union of payload fields across event types.
type DebateEventData struct {
	Message      string `json:"message,omitempty"`
	AgentName    string `json:"agent_name,omitempty"`
	Role         string `json:"role,omitempty"`
	Argument     string `json:"argument,omitempty"`
	OpponentName string `json:"opponent_name,omitempty"`
	Rebuttal     string `json:"rebuttal,omitempty"`

	// conclusion payload
	RecommendedRole string   `json:"recommended_role,omitempty"`
	Confidence      int      `json:"confidence,omitempty"`
	Reason          string   `json:"reason,omitempty"`
	Pros            []string `json:"pros,omitempty"`
	Considerations  []string `json:"considerations,omitempty"`
	DebatedRoles    []string `json:"debated_roles,omitempty"`
}

// ChatRequest is the body of POST /api/chat-with-mentor.
type ChatRequest struct {
	JobTitle  string `json:"job_title"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
	Error   string `json:"error,omitempty"`
}

// PeerMentor is one recommendation from GET /api/peer-mentors/{category}.
type PeerMentor struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Category   string `json:"category"`
	Highlight  string `json:"highlight,omitempty"`
	ContactURL string `json:"contact_url,omitempty"`
}

type peerMentorsResponse struct {
	Success  bool         `json:"success"`
	Category string       `json:"category"`
	Mentors  []PeerMentor `json:"mentors"`
	Count    int          `json:"count"`
	Error    string       `json:"error,omitempty"`
}

// HealthStatus is the GET /api/health response.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
