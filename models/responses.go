package models

// AuthResponse is the body returned by the sign-in and sign-up endpoints.
type AuthResponse struct {
	// Token is the bearer credential issued by the backend.
	Token string `json:"token"`

	// User is the identity of the signed-in user.
	User *Profile `json:"user,omitempty"`
}
