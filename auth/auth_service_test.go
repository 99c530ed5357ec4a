package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-boardgame-service/auth"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/token"
	"github.com/jrsteele09/go-boardgame-service/users"
	fakeuserrepo "github.com/jrsteele09/go-boardgame-service/users/repofake"
)

const (
	testSecret       = "0123456789abcdef0123456789abcdef"
	testUserEmail    = "alice@example.com"
	testUserName     = "Alice"
	testUserPassword = "Str0ngPassword"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo users.Repo
	codec    *token.Codec
	service  *auth.AuthenticationService
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	codec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	service, err := auth.NewAuthenticationService(ur, codec)
	require.NoError(t, err)

	return &testFixture{userRepo: ur, codec: codec, service: service}
}

func (f *testFixture) registerTestUser(t *testing.T) *auth.Session {
	t.Helper()

	session, err := f.service.Register(context.Background(), testUserEmail, testUserName, testUserPassword)
	require.NoError(t, err)
	return session
}

func TestRegister_IssuesTokenPair(t *testing.T) {
	f := setupTestFixture(t)

	session := f.registerTestUser(t)

	require.NotEmpty(t, session.Access.Token)
	require.NotEmpty(t, session.Refresh.Token)
	require.NotEqual(t, session.Access.Token, session.Refresh.Token)
	require.Equal(t, testUserEmail, session.User.Email)
	require.Equal(t, testUserName, session.User.Name)
	require.NotZero(t, session.User.ID)

	claims, err := f.codec.Verify(session.Access.Token)
	require.NoError(t, err)
	require.Equal(t, token.KindAccess, claims.Kind)
	require.Equal(t, testUserEmail, claims.Email)

	claims, err = f.codec.Verify(session.Refresh.Token)
	require.NoError(t, err)
	require.Equal(t, token.KindRefresh, claims.Kind)
	require.Empty(t, claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	_, err := f.service.Register(context.Background(), testUserEmail, "Someone Else", testUserPassword)

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestRegister_WeakPassword(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Register(context.Background(), testUserEmail, testUserName, "weak")

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidRequest))
}

func TestRegister_PasswordIsHashed(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	stored, err := f.userRepo.GetByEmail(context.Background(), testUserEmail)
	require.NoError(t, err)
	require.NotEqual(t, testUserPassword, stored.PasswordHash)
	require.True(t, users.CheckPasswordHash(testUserPassword, stored.PasswordHash))
}

func TestLogin_Success(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)

	require.NoError(t, err)
	require.NotEmpty(t, session.Access.Token)
	require.NotEmpty(t, session.Refresh.Token)
	require.Equal(t, testUserEmail, session.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	_, err := f.service.Login(context.Background(), testUserEmail, "WrongPassword1")

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(context.Background(), "nobody@example.com", testUserPassword)

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

// Unknown email and wrong password must produce the same error so callers
// cannot probe which emails are registered.
func TestLogin_FailuresIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	_, errWrongPassword := f.service.Login(context.Background(), testUserEmail, "WrongPassword1")
	_, errUnknownEmail := f.service.Login(context.Background(), "nobody@example.com", testUserPassword)

	require.True(t, apperrors.Is(errWrongPassword, apperrors.ErrInvalidCredentials))
	require.True(t, apperrors.Is(errUnknownEmail, apperrors.ErrInvalidCredentials))
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	f := setupTestFixture(t)
	session := f.registerTestUser(t)

	refreshed, err := f.service.Refresh(context.Background(), session.Refresh.Token)

	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Access.Token)
	require.NotEmpty(t, refreshed.Refresh.Token)
	require.Equal(t, session.User.ID, refreshed.User.ID)

	claims, err := f.codec.Verify(refreshed.Access.Token)
	require.NoError(t, err)
	require.Equal(t, token.KindAccess, claims.Kind)
	require.Equal(t, testUserEmail, claims.Email)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	session := f.registerTestUser(t)

	_, err := f.service.Refresh(context.Background(), session.Access.Token)

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrWrongTokenKind))
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "not-a-token")

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestRefresh_ExpiredToken(t *testing.T) {
	ur := fakeuserrepo.NewFakeUserRepo()

	pastTime := time.Now().Add(-30 * 24 * time.Hour)
	expiredCodec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour,
		token.WithNowTime(func() time.Time { return pastTime }))
	require.NoError(t, err)

	pastService, err := auth.NewAuthenticationService(ur, expiredCodec)
	require.NoError(t, err)
	session, err := pastService.Register(context.Background(), testUserEmail, testUserName, testUserPassword)
	require.NoError(t, err)

	currentCodec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	service, err := auth.NewAuthenticationService(ur, currentCodec)
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), session.Refresh.Token)

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestRefresh_DeletedUser(t *testing.T) {
	f := setupTestFixture(t)
	session := f.registerTestUser(t)

	require.NoError(t, f.userRepo.Delete(context.Background(), session.User.ID))

	_, err := f.service.Refresh(context.Background(), session.Refresh.Token)

	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestNewAuthenticationService_MissingDependencies(t *testing.T) {
	codec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	_, err = auth.NewAuthenticationService(nil, codec)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Users repo is required")

	_, err = auth.NewAuthenticationService(fakeuserrepo.NewFakeUserRepo(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "token codec is required")
}
