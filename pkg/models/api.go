package models

import "time"

// APIResponse is the envelope every successful API call answers with.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Query     string      `json:"query,omitempty"`
	Limit     int         `json:"limit,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError is the failure envelope.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
