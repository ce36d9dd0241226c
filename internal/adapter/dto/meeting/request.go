package meeting

// CreateMeetingRequest wraps the meeting attributes the way the web client posts them
type CreateMeetingRequest struct {
	Meeting MeetingParams `json:"meeting" validate:"required"`
}

// MeetingParams are the permitted meeting attributes
type MeetingParams struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	HumeLabel   string  `json:"hume_label" validate:"required,max=255"`
	HumeConfig  string  `json:"hume_config" validate:"required,max=255"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Query     string `query:"q"`
	Sort      string `query:"sort" validate:"omitempty,oneof=id title created_at updated_at"`
	Direction string `query:"direction"`
	Page      int    `query:"page" validate:"min=0"`
	PerPage   int    `query:"per_page" validate:"min=0"`
}
