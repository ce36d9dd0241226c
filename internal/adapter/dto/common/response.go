package common

import (
	"github.com/peergrouptools/peergroup-api/errors"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	OK      bool              `json:"ok"`
	Error   string            `json:"error"`
	Code    errors.ErrorCode  `json:"code" swaggertype:"string"`
	Details map[string]string `json:"details,omitempty"`
}

// OKResponse acknowledges a request that returns no resource
type OKResponse struct {
	OK bool `json:"ok"`
}

// CreatedResponse acknowledges a created resource by id
type CreatedResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Data       interface{}         `json:"data"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}
