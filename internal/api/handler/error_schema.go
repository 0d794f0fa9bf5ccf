package handler

import "github.com/wdream/freelancer-platform/internal/core/domain"

// ErrorResponse is the envelope every failed request is rendered with.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
	Path    string              `json:"path,omitempty"`
}
