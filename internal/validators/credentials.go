// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-session-keeper/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldName targets the display name given on sign-up.
	FieldName = "name"

	// FieldEmail targets the sign-in address.
	FieldEmail = "email"

	// FieldPassword only requires a non-empty password. Used on sign-in,
	// where the backend owns the password policy of existing accounts.
	FieldPassword = "password"

	// FieldNewPassword enforces the password policy for new accounts.
	FieldNewPassword = "new_password"
)

const (
	MaxNameLength     = 64
	MinPasswordLength = 6
	MaxPasswordLength = 256
)

// CredentialsValidator validates the sign-in and sign-up forms.
type CredentialsValidator struct{}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate validates a [models.Credentials] value. With no fields it checks
// email and the non-empty password rule.
func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(_ context.Context, c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = validateName(c.Name)
		case FieldEmail:
			err = validateEmail(c.Email)
		case FieldPassword:
			if c.Password == "" {
				err = ErrEmptyPassword
			}
		case FieldNewPassword:
			err = validateNewPassword(c.Password)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrEmptyName
	case utf8.RuneCountInString(name) > MaxNameLength:
		return ErrNameTooLong
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}

	// mail.ParseAddress also accepts "Name <addr>"; only a bare address is
	// allowed here
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func validateNewPassword(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n == 0:
		return ErrEmptyPassword
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	case strings.TrimSpace(password) != password:
		return ErrPasswordWhitespace
	}
	return nil
}
