package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_StatusDerivation(t *testing.T) {
	profile := &Profile{ID: "1", Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name        string
		initialized bool
		credential  string
		profile     *Profile
		wantStatus  Status
		wantProfile bool
	}{
		{"not initialized", false, "", nil, StatusInitializing, false},
		{"not initialized with credential", false, "tok", profile, StatusInitializing, true},
		{"logged out", true, "", nil, StatusUnauthenticated, false},
		{"profile without credential is dropped", true, "", profile, StatusUnauthenticated, false},
		{"logged in without profile", true, "tok", nil, StatusAuthenticated, false},
		{"logged in with profile", true, "tok", profile, StatusAuthenticated, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.initialized, tt.credential, tt.profile)
			assert.Equal(t, tt.wantStatus, s.Status)
			assert.Equal(t, tt.wantProfile, s.Profile != nil)
		})
	}
}

func TestNewSession_CopiesProfile(t *testing.T) {
	p := &Profile{Name: "Alice"}
	s := NewSession(true, "tok", p)

	p.Name = "Mallory"
	require.NotNil(t, s.Profile)
	assert.Equal(t, "Alice", s.Profile.Name)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "initializing", StatusInitializing.String())
	assert.Equal(t, "unauthenticated", StatusUnauthenticated.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestUnmarshalProfile(t *testing.T) {
	p, err := UnmarshalProfile(`{"id":"7","name":"Bob","email":"bob@example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, Profile{ID: "7", Name: "Bob", Email: "bob@example.com"}, p)

	_, err = UnmarshalProfile("not json")
	assert.Error(t, err)

	_, err = UnmarshalProfile(`"a string"`)
	assert.Error(t, err)
}

func TestMarshalProfile_RoundTrip(t *testing.T) {
	raw, err := MarshalProfile(Profile{ID: "7", Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"7","name":"Bob","email":"bob@example.com"}`, raw)
}

func TestMethod_Valid(t *testing.T) {
	for _, m := range []Method{MethodGet, MethodPost, MethodPut, MethodDelete} {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, Method("PATCH").Valid())
	assert.False(t, Method("").Valid())
}

func TestRequestDescriptor_RequiresAuthByDefault(t *testing.T) {
	assert.True(t, RequestDescriptor{}.RequiresAuth())
	assert.False(t, RequestDescriptor{Public: true}.RequiresAuth())
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	c, err := ParseClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", c.Subject)
	assert.True(t, exp.Equal(c.ExpiresAt))
	assert.False(t, c.Expired(time.Now()))
	assert.True(t, c.Expired(exp.Add(time.Minute)))
}

func TestParseClaims_Opaque(t *testing.T) {
	_, err := ParseClaims("opaque-token")
	assert.ErrorIs(t, err, ErrCredentialNotJWT)
}

func TestNewAppBuildInfo_Defaults(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-01", "")
	assert.Equal(t, "N/A", info.Version)
	assert.Equal(t, "N/A", info.Commit)
	assert.Equal(t, "version N/A (N/A, 2026-01-01)", info.String())
}
