// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var reqErr *adapter.RequestFailedError

	switch {
	case errors.Is(err, adapter.ErrNetwork),
		errors.Is(err, adapter.ErrMalformedResponse):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)

	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)

	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)

	case errors.As(err, &reqErr):
		switch {
		case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrUnprocessable):
			return fmt.Errorf("%w: %s: %w", ErrInvalidInput, reqErr.Message, err)
		case reqErr.Status >= 500:
			return fmt.Errorf("%w: %w", ErrServerUnavailable, err)
		}
	}

	return err
}
