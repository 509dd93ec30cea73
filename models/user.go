// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Profile is the cached identity of the signed-in user.
// It is persisted next to the credential so the front end can greet the user
// before the backend has been contacted.
type Profile struct {
	// ID is the backend identifier of the user. Kept as a string because the
	// backend is free to use numeric or UUID identifiers.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the address the user signs in with.
	Email string `json:"email"`
}

// MarshalProfile serializes p into the form stored under the user_data key.
func MarshalProfile(p Profile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("error marshaling profile: %w", err)
	}
	return string(data), nil
}

// UnmarshalProfile parses a stored user_data value.
// Returns an error for anything that is not a JSON object.
func UnmarshalProfile(raw string) (Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, fmt.Errorf("error unmarshaling profile: %w", err)
	}
	return p, nil
}

// Credentials is the sign-in form payload sent to the backend.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
