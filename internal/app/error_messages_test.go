package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-session-keeper/internal/adapter"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/validators"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "timeout", err: &adapter.NetworkError{Err: context.DeadlineExceeded}, want: MsgRequestTimedOut},
		{name: "invalid credentials", err: fmt.Errorf("%w: x", service.ErrInvalidCredentials), want: MsgInvalidLoginPassword},
		{name: "email taken", err: service.ErrEmailTaken, want: MsgLoginAlreadyExists},
		{name: "not signed in", err: service.ErrNotSignedIn, want: MsgSessionExpired},
		{name: "server unavailable", err: service.ErrServerUnavailable, want: MsgServerUnavailable},
		{name: "forbidden", err: &adapter.RequestFailedError{Status: http.StatusForbidden}, want: MsgAccessDenied},
		{name: "persist", err: errors.Join(session.ErrPersistSession, errors.New("disk")), want: MsgSessionNotSaved},
		{name: "clear", err: errors.Join(session.ErrClearSession, errors.New("disk")), want: MsgSessionNotCleared},
		{name: "invalid input without message", err: service.ErrInvalidInput, want: MsgInvalidDataProvided},
		{
			name: "invalid input with backend message",
			err:  fmt.Errorf("%w: %w", service.ErrInvalidInput, &adapter.RequestFailedError{Status: http.StatusBadRequest, Message: "password too short"}),
			want: "password too short",
		},
		{name: "invalid email", err: fmt.Errorf("%w: %w", service.ErrInvalidInput, validators.ErrInvalidEmail), want: MsgInvalidEmail},
		{name: "short password", err: fmt.Errorf("%w: %w", service.ErrInvalidInput, validators.ErrPasswordTooShort), want: MsgPasswordTooShort},
		{name: "unknown", err: errors.New("boom"), want: MsgUnexpectedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFor(tt.err))
		})
	}
}
