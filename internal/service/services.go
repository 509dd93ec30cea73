package service

import (
	"github.com/MKhiriev/go-session-keeper/internal/adapter"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/validators"
)

// ClientServices groups the use cases exposed to the front end.
type ClientServices struct {
	AuthService AuthService
}

func NewClientServices(api adapter.API, sessions session.Sessions, log *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService: NewAuthService(api, sessions, validators.NewCredentialsValidator(), log),
	}
}
