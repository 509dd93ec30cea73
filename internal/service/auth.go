package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/adapter"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/validators"
	"github.com/MKhiriev/go-session-keeper/models"
)

// Backend auth endpoints.
const (
	EndpointLogin    = "/auth/login"
	EndpointRegister = "/auth/register"
	EndpointLogout   = "/auth/logout"
	EndpointMe       = "/auth/me"
)

type authService struct {
	api       adapter.API
	sessions  session.Sessions
	validator validators.Validator

	logger *logger.Logger
}

// NewAuthService returns an [AuthService] calling api and committing results
// to sessions. Form input is checked by validator before any request.
func NewAuthService(api adapter.API, sessions session.Sessions, validator validators.Validator, log *logger.Logger) AuthService {
	return &authService{api: api, sessions: sessions, validator: validator, logger: log.WithComponent("auth")}
}

func (a *authService) SignIn(ctx context.Context, email, password string) error {
	credentials := models.Credentials{Email: email, Password: password}
	if err := a.validator.Validate(ctx, credentials, validators.FieldEmail, validators.FieldPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	resp, err := adapter.Request[models.AuthResponse](ctx, a.api, models.RequestDescriptor{
		Endpoint: EndpointLogin,
		Method:   models.MethodPost,
		Body:     credentials,
		Public:   true,
	})
	if err != nil {
		a.logger.Err(err).Str("func", "authService.SignIn").Msg("sign-in request failed")
		return mapAdapterError(err)
	}

	return a.commit(ctx, resp)
}

func (a *authService) SignUp(ctx context.Context, name, email, password string) error {
	credentials := models.Credentials{Name: name, Email: email, Password: password}
	if err := a.validator.Validate(ctx, credentials, validators.FieldName, validators.FieldEmail, validators.FieldNewPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	resp, err := adapter.Request[models.AuthResponse](ctx, a.api, models.RequestDescriptor{
		Endpoint: EndpointRegister,
		Method:   models.MethodPost,
		Body:     credentials,
		Public:   true,
	})
	if err != nil {
		a.logger.Err(err).Str("func", "authService.SignUp").Msg("sign-up request failed")
		return mapAdapterError(err)
	}

	return a.commit(ctx, resp)
}

func (a *authService) commit(ctx context.Context, resp models.AuthResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("%w: %w", ErrServerUnavailable, ErrEmptyToken)
	}

	if err := a.sessions.Login(ctx, resp.Token, resp.User); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

// SignOut never leaves the session logged in: the local logout runs even when
// the backend call fails.
func (a *authService) SignOut(ctx context.Context) error {
	if a.sessions.Current().Authenticated() {
		err := a.api.Do(ctx, models.RequestDescriptor{Endpoint: EndpointLogout, Method: models.MethodPost}, nil)
		if err != nil {
			a.logger.Warn().Err(err).Str("func", "authService.SignOut").Msg("backend logout failed, logging out locally")
		}
	}

	return a.sessions.Logout(ctx)
}

// RefreshProfile fetches the profile and stores it for the credential the
// request was sent for. A logout or credential change that lands while the
// request is in flight wins; the session manager checks this under its
// mutation lock.
func (a *authService) RefreshProfile(ctx context.Context) error {
	current := a.sessions.Current()
	if !current.Authenticated() {
		return ErrNotSignedIn
	}

	profile, err := adapter.Request[models.Profile](ctx, a.api, models.RequestDescriptor{Endpoint: EndpointMe})
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			// the adapter already invalidated the session
			return fmt.Errorf("%w: %w", ErrNotSignedIn, err)
		}
		return mapAdapterError(err)
	}

	if current.Profile != nil && *current.Profile == profile {
		return nil
	}

	return a.sessions.UpdateProfile(ctx, current.Credential, &profile)
}
