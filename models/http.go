package models

import "net/http"

// Method is an HTTP method accepted by the API client.
type Method string

// Supported methods.
const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

// RequestDescriptor describes a single call to the backend.
type RequestDescriptor struct {
	// Endpoint is the path relative to the configured base URL
	// (e.g. "/auth/me").
	Endpoint string

	// Method is the HTTP method. Empty means GET.
	Method Method

	// Body is marshaled to JSON when non-nil.
	Body any

	// Headers are merged over the default headers. They never override the
	// computed Authorization header.
	Headers map[string]string

	// Public marks a request that must not carry the session credential.
	// The zero value means the request requires authentication.
	Public bool
}

// RequiresAuth reports whether the session credential should be attached.
func (d RequestDescriptor) RequiresAuth() bool {
	return !d.Public
}
