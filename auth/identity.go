package auth

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/token"
)

// Identity is the authenticated caller, produced only by successful token
// verification. It is immutable and request-scoped; it is never persisted
// and never cached across requests.
type Identity struct {
	UserID int64
	Email  string
}

// Resolver turns inbound credential material into an Identity or a definite,
// typed rejection. It is stateless: the only shared data is the codec's
// read-only signing secret, so one Resolver serves concurrent requests.
type Resolver struct {
	codec *token.Codec
}

// NewResolver creates a Resolver over the given codec.
func NewResolver(codec *token.Codec) (*Resolver, error) {
	if codec == nil {
		return nil, errors.New("[NewResolver] token codec is required")
	}
	return &Resolver{codec: codec}, nil
}

// Resolve verifies the encoded credential and requires it to be of the given
// kind. Failure modes, in order: an invalid or expired token yields
// ErrInvalidToken; a valid token of the wrong kind yields ErrWrongTokenKind.
// Anything unexpected resolves to rejection, never to an identity.
func (r *Resolver) Resolve(encoded string, required token.Kind) (Identity, error) {
	if !r.codec.IsValid(encoded) {
		return Identity{}, errors.Wrap(apperrors.ErrInvalidToken, "[Resolver.Resolve]")
	}

	claims, err := r.codec.Verify(encoded)
	if err != nil {
		// IsValid passed but Verify failed: fail closed.
		return Identity{}, errors.Wrap(apperrors.ErrInvalidToken, "[Resolver.Resolve]")
	}

	if claims.Kind != required {
		return Identity{}, errors.Wrapf(apperrors.ErrWrongTokenKind, "[Resolver.Resolve] %s token required", required)
	}

	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, errors.Wrap(apperrors.ErrInvalidToken, "[Resolver.Resolve]")
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}
