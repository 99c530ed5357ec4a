package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-boardgame-service/token"
)

const (
	testSecret     = "0123456789abcdef0123456789abcdef"
	otherSecret    = "fedcba9876543210fedcba9876543210"
	testUserID     = int64(42)
	testUserEmail  = "john.doe@example.com"
	testAccessTTL  = time.Hour
	testRefreshTTL = 7 * 24 * time.Hour
)

func newTestCodec(t *testing.T, secret string, options ...token.CodecOption) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(secret, testAccessTTL, testRefreshTTL, options...)
	require.NoError(t, err)
	return codec
}

func TestNewCodecRejectsWeakSecrets(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{name: "empty secret", secret: ""},
		{name: "whitespace secret", secret: "   "},
		{name: "short secret", secret: "too-short"},
		{name: "31 bytes", secret: "0123456789abcdef0123456789abcde"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := token.NewCodec(tc.secret, testAccessTTL, testRefreshTTL)
			require.Error(t, err)
		})
	}
}

func TestNewCodecRejectsNonPositiveLifetimes(t *testing.T) {
	_, err := token.NewCodec(testSecret, 0, testRefreshTTL)
	require.Error(t, err)

	_, err = token.NewCodec(testSecret, testAccessTTL, -time.Hour)
	require.Error(t, err)
}

func TestIssueAccessTokenIsValidImmediately(t *testing.T) {
	codec := newTestCodec(t, testSecret)

	info, err := codec.IssueAccessToken(testUserID, testUserEmail)
	require.NoError(t, err)
	require.NotEmpty(t, info.Token)
	require.True(t, codec.IsValid(info.Token))

	claims, err := codec.Verify(info.Token)
	require.NoError(t, err)
	require.Equal(t, token.KindAccess, claims.Kind)
	require.Equal(t, testUserEmail, claims.Email)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, testUserID, userID)
	require.WithinDuration(t, info.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestRefreshTokenOmitsEmail(t *testing.T) {
	codec := newTestCodec(t, testSecret)

	info, err := codec.IssueRefreshToken(testUserID)
	require.NoError(t, err)

	claims, err := codec.Verify(info.Token)
	require.NoError(t, err)
	require.Equal(t, token.KindRefresh, claims.Kind)
	require.Empty(t, claims.Email)
}

func TestIsValidFailsOncePastExpiry(t *testing.T) {
	now := time.Now()
	codec := newTestCodec(t, testSecret, token.WithNowTime(func() time.Time { return now }))

	info, err := codec.IssueAccessToken(testUserID, testUserEmail)
	require.NoError(t, err)
	require.True(t, codec.IsValid(info.Token))

	// Advance the clock past the expiry.
	now = now.Add(testAccessTTL + time.Second)
	require.False(t, codec.IsValid(info.Token))

	// Verify still succeeds: expiry is IsValid's concern only.
	_, err = codec.Verify(info.Token)
	require.NoError(t, err)
}

func TestTokenSignedWithDifferentSecretIsInvalid(t *testing.T) {
	issuer := newTestCodec(t, testSecret)
	verifier := newTestCodec(t, otherSecret)

	info, err := issuer.IssueAccessToken(testUserID, testUserEmail)
	require.NoError(t, err)

	require.False(t, verifier.IsValid(info.Token))
	_, err = verifier.Verify(info.Token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t, testSecret)

	for _, encoded := range []string{"", "not.a.jwt", "a.b", "....."} {
		_, err := codec.Verify(encoded)
		require.Error(t, err, "input %q", encoded)
		require.False(t, codec.IsValid(encoded))
	}
}

func TestTamperedTokenIsInvalid(t *testing.T) {
	codec := newTestCodec(t, testSecret)

	info, err := codec.IssueAccessToken(testUserID, testUserEmail)
	require.NoError(t, err)

	tampered := info.Token[:len(info.Token)-2] + "xx"
	require.False(t, codec.IsValid(tampered))
}
