// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording shared by the client front
// end.
//
// All Msg* constants are human-readable strings shown in the status line of
// the terminal UI. Keeping them in one place keeps the wording consistent
// across screens.
package app

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-session-keeper/internal/adapter"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/validators"
)

const (
	// MsgInvalidDataProvided is shown when the backend rejected the form
	// contents.
	MsgInvalidDataProvided = "Некорректные данные"

	// MsgInvalidLoginPassword is shown when the email/password combination
	// was rejected.
	MsgInvalidLoginPassword = "Неверный email или пароль"

	// MsgLoginAlreadyExists is shown when sign-up is rejected because the
	// email is taken.
	MsgLoginAlreadyExists = "Пользователь с таким email уже зарегистрирован"

	MsgServerUnavailable = "Отсутствует сеть или Сервер недоступен"

	// MsgSessionExpired is shown after the backend rejected the stored
	// credential and the session was cleared.
	MsgSessionExpired = "Сессия истекла, войдите снова"

	MsgAccessDenied = "Доступ запрещен"

	MsgRequestTimedOut = "Превышено время ожидания ответа"

	// MsgSessionNotSaved is shown when signing in succeeded on the backend but
	// the credential could not be written locally.
	MsgSessionNotSaved = "Вход выполнен, но сессию не удалось сохранить"

	// MsgSessionNotCleared is shown when signing out left a stored record
	// behind. The in-memory session is logged out regardless.
	MsgSessionNotCleared = "Выход выполнен, но сохраненную сессию не удалось удалить"

	MsgEmptyFields = "Email и пароль обязательны"

	MsgInvalidEmail     = "Некорректный email"
	MsgPasswordTooShort = "Пароль слишком короткий"
	MsgPasswordTooLong  = "Пароль слишком длинный"

	MsgUnexpectedError = "Непредвиденная ошибка"
)

// MessageFor returns the message shown to the user for err, or "" when err
// is nil. Validation messages sent by the backend are passed through.
func MessageFor(err error) string {
	var reqErr *adapter.RequestFailedError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return MsgRequestTimedOut
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidLoginPassword
	case errors.Is(err, service.ErrEmailTaken):
		return MsgLoginAlreadyExists
	case errors.Is(err, service.ErrNotSignedIn):
		return MsgSessionExpired
	case errors.Is(err, validators.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, validators.ErrPasswordTooShort):
		return MsgPasswordTooShort
	case errors.Is(err, validators.ErrPasswordTooLong):
		return MsgPasswordTooLong
	case errors.Is(err, service.ErrInvalidInput):
		if errors.As(err, &reqErr) && reqErr.Message != "" {
			return reqErr.Message
		}
		return MsgInvalidDataProvided
	case errors.Is(err, service.ErrServerUnavailable):
		return MsgServerUnavailable
	case errors.Is(err, adapter.ErrForbidden):
		return MsgAccessDenied
	case errors.Is(err, session.ErrPersistSession):
		return MsgSessionNotSaved
	case errors.Is(err, session.ErrClearSession):
		return MsgSessionNotCleared
	}

	return MsgUnexpectedError
}
