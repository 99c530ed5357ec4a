package token

import (
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

// Kind discriminates the two token flavours that share one encoding.
// An access token must never be accepted where a refresh token is
// required, and vice versa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// minSecretLength is the minimum signing secret size for HMAC-SHA256.
const minSecretLength = 32

// Claims is the signed token payload. Access tokens carry the user's email,
// refresh tokens omit it.
type Claims struct {
	jwtlib.RegisteredClaims
	Email string `json:"email,omitempty"`
	Kind  Kind   `json:"type"`
}

// UserID returns the subject claim as a numeric user ID.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(apperrors.ErrInvalidToken, "non-numeric subject")
	}
	return id, nil
}

// Info is an issued token together with its expiry, returned for caller
// convenience so clients do not need to decode the token themselves.
type Info struct {
	Token     string
	ExpiresAt time.Time
}

// Codec creates and verifies signed, self-contained identity tokens.
// It is a pure function of the secret and claims: safe for unsynchronised
// concurrent use, no I/O beyond reading the clock.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowFunc    func() time.Time
}

// CodecOption defines a function type to modify the Codec instance.
type CodecOption func(*Codec)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = nowFunc
	}
}

// NewCodec creates a Codec signing with HMAC-SHA256. The secret must be at
// least 32 bytes; shorter or absent secrets fail here, at construction,
// rather than at first use.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration, options ...CodecOption) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("[NewCodec] signing secret is required")
	}
	if len(secret) < minSecretLength {
		return nil, errors.Errorf("[NewCodec] signing secret must be at least %d bytes, got %d", minSecretLength, len(secret))
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("[NewCodec] token lifetimes must be positive")
	}

	c := &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		nowFunc:    time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// IssueAccessToken issues a short-lived token authorising ordinary API calls.
func (c *Codec) IssueAccessToken(userID int64, email string) (Info, error) {
	return c.issue(KindAccess, userID, email, c.accessTTL)
}

// IssueRefreshToken issues a long-lived token usable only to obtain a new
// access/refresh pair. It carries no email.
func (c *Codec) IssueRefreshToken(userID int64) (Info, error) {
	return c.issue(KindRefresh, userID, "", c.refreshTTL)
}

func (c *Codec) issue(kind Kind, userID int64, email string, ttl time.Duration) (Info, error) {
	now := c.nowFunc()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		Email: email,
		Kind:  kind,
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return Info{}, errors.Wrap(err, "[Codec.issue] failed to sign token")
	}
	return Info{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature and structure of an encoded token and returns
// its claims. It deliberately does NOT check expiry; use IsValid for that.
// All failure modes (bad signature, malformed encoding, missing fields)
// collapse into ErrInvalidToken so callers cannot tell them apart.
func (c *Codec) Verify(encoded string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(encoded, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}), jwtlib.WithoutClaimsValidation())
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrInvalidToken, err.Error())
	}
	if claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, errors.Wrap(apperrors.ErrInvalidToken, "missing required claims")
	}
	if claims.Kind != KindAccess && claims.Kind != KindRefresh {
		return nil, errors.Wrap(apperrors.ErrInvalidToken, "missing token type")
	}
	return claims, nil
}

// IsValid reports whether the token verifies AND its expiry is strictly in
// the future. Any error during verification means invalid (fail closed).
func (c *Codec) IsValid(encoded string) bool {
	claims, err := c.Verify(encoded)
	if err != nil {
		return false
	}
	return claims.ExpiresAt.After(c.nowFunc())
}
