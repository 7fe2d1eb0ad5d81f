package models

type FlowState string

const (
	FlowStateIdle           FlowState = "idle"
	FlowStateAskingQuestion FlowState = "asking_question"
	FlowStateAwaitingAnswer FlowState = "awaiting_answer"
	FlowStateSubmitting     FlowState = "submitting"
	FlowStateComplete       FlowState = "complete"
)

// FlowSnapshot is a point-in-time copy of an assessment flow.
type FlowSnapshot struct {
	State           FlowState   `json:"state"`
	QuestionIndex   int         `json:"question_index"`
	QuestionCount   int         `json:"question_count"`
	CurrentQuestion *Question   `json:"current_question,omitempty"`
	AwaitingAnswer  bool        `json:"awaiting_answer"`
	Transcript      []ChatEntry `json:"transcript"`
	RedirectTo      string      `json:"redirect_to,omitempty"`
	Mounted         bool        `json:"mounted"`
}
