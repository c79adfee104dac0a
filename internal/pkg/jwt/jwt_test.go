package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret string) *Signer {
	t.Helper()
	s, err := NewSigner([]byte(secret), 0)
	require.NoError(t, err)
	return s
}

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner(nil, time.Hour)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssueAndVerify(t *testing.T) {
	s := newTestSigner(t, "secret")
	token, err := s.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(DefaultTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyRejectsExpired(t *testing.T) {
	s := newTestSigner(t, "secret")
	issuedAt := time.Now().Add(-25 * time.Hour)
	s.now = func() time.Time { return issuedAt }
	token, err := s.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := newTestSigner(t, "other").Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = newTestSigner(t, "secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	s := newTestSigner(t, "secret")
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = newTestSigner(t, "secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = newTestSigner(t, "secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromAuthorizationHeader(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "", ok: false},
		{header: "abc", ok: false},
		{header: "Basic abc", ok: false},
		{header: "Bearer ", ok: false},
	}
	for _, tt := range tests {
		token, ok := FromAuthorizationHeader(tt.header)
		require.Equal(t, tt.ok, ok, tt.header)
		require.Equal(t, tt.token, token, tt.header)
	}
}
