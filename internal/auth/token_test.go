package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, exp, err := svc.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, reason, err := svc.Verify(token)
	require.NoError(t, err)
	require.Empty(t, reason)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestTokenService_VerifyAbsent(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	claims, reason, err := svc.Verify("")
	require.ErrorIs(t, err, ErrTokenAbsent)
	require.Equal(t, ReasonAbsent, reason)
	require.Nil(t, claims)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, _, err := svc.Issue(42, "alice")
	require.NoError(t, err)

	claims, reason, err := svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.Equal(t, ReasonExpired, reason)
	require.Nil(t, claims)
}

func TestTokenService_VerifyTamperedPayload(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, _, err := svc.Issue(42, "alice")
	require.NoError(t, err)

	// Flip a byte inside the payload segment; the signature no longer matches.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	claims, reason, err := svc.Verify(tampered)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.NotEmpty(t, reason)
	require.Nil(t, claims)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, _, err := issuer.Issue(42, "alice")
	require.NoError(t, err)

	claims, reason, err := verifier.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.Equal(t, ReasonBadSignature, reason)
	require.Nil(t, claims)
}

func TestTokenService_VerifyGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	claims, reason, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.Equal(t, ReasonMalformed, reason)
	require.Nil(t, claims)
}
