package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/token"
	"github.com/jrsteele09/go-boardgame-service/users"
)

// Session is the result of a successful register, login or refresh: a fresh
// access/refresh token pair and the user it identifies. Tokens are never
// mutated; every refresh produces an entirely new pair.
type Session struct {
	Access  token.Info
	Refresh token.Info
	User    *users.User
}

// AuthenticationService handles registration, login and token refresh.
type AuthenticationService struct {
	userRepo users.Repo
	codec    *token.Codec
	resolver *Resolver
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// AuthenticationServiceOption defines a function type to modify the
// AuthenticationService instance.
type AuthenticationServiceOption func(*AuthenticationService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		as.nowTime = nowFunc
	}
}

// NewAuthenticationService initializes a new AuthenticationService with
// required dependencies.
func NewAuthenticationService(userRepo users.Repo, codec *token.Codec, options ...AuthenticationServiceOption) (*AuthenticationService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewAuthenticationService] Users repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewAuthenticationService] token codec is required")
	}

	resolver, err := NewResolver(codec)
	if err != nil {
		return nil, errors.Wrap(err, "[NewAuthenticationService]")
	}

	as := &AuthenticationService{
		userRepo: userRepo,
		codec:    codec,
		resolver: resolver,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(as)
	}
	return as, nil
}

// Register creates a new account and logs it in. A duplicate email yields
// ErrConflict.
func (as *AuthenticationService) Register(ctx context.Context, email, name, password string) (*Session, error) {
	if err := users.ValidatePasswordStrength(password); err != nil {
		return nil, errors.Wrap(apperrors.ErrInvalidRequest, err.Error())
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthenticationService.Register] HashPassword")
	}

	user, err := as.userRepo.Create(ctx, &users.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    as.nowTime(),
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "[AuthenticationService.Register] create user %s", email)
	}

	return as.issueSession(user)
}

// Login checks the credentials and issues a fresh token pair. Unknown email
// and wrong password are indistinguishable to the caller.
func (as *AuthenticationService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := as.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[AuthenticationService.Login]")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[AuthenticationService.Login]")
	}

	return as.issueSession(user)
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
// An access token presented here is rejected as the wrong kind. The old
// refresh token stays usable until its natural expiry: the design is
// stateless and keeps no server-side revocation list.
func (as *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	identity, err := as.resolver.Resolve(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[AuthenticationService.Refresh]")
	}

	user, err := as.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		// The subject no longer exists; the token outlived the account.
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[AuthenticationService.Refresh]")
	}

	return as.issueSession(user)
}

func (as *AuthenticationService) issueSession(user *users.User) (*Session, error) {
	access, err := as.codec.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthenticationService.issueSession] access token")
	}

	refresh, err := as.codec.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthenticationService.issueSession] refresh token")
	}

	return &Session{Access: access, Refresh: refresh, User: user}, nil
}
