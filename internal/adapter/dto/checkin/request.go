package checkin

// CreateCheckInRequest is one highs/lows answer posted by the client
type CreateCheckInRequest struct {
	ChatID       *string `json:"chat_id,omitempty" validate:"omitempty,max=255"`
	Kind         *string `json:"kind,omitempty" validate:"omitempty,oneof=high low"`
	StepIndex    *int    `json:"step_index,omitempty" validate:"omitempty,min=0"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=100"`
	QuestionID   *string `json:"question_id,omitempty" validate:"omitempty,max=255"`
	QuestionText *string `json:"question_text,omitempty"`
	Rating       *int    `json:"rating,omitempty"`
	UserMessage  *string `json:"user_message,omitempty"`
}
