package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrMissingClerkID    = errors.New("clerk id is required")

	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrInvalidTitle    = errors.New("title can't be blank")
	ErrInvalidHume     = errors.New("hume_label and hume_config can't be blank")

	// Session errors
	ErrHumeSessionNotFound = errors.New("hume session not found")
	ErrEnvelopeSealed      = errors.New("session summary already attached")

	// Chat errors
	ErrChatSessionNotFound = errors.New("chat session not found")
	ErrMissingChatID       = errors.New("chat_id is required")

	// Generic errors
	ErrForbidden = errors.New("forbidden")
)
