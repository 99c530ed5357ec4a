package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-boardgame-service/auth"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
	"github.com/jrsteele09/go-boardgame-service/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the authenticated caller for the remainder of
// the request. Exactly one Identity is attached per request.
const ContextKeyIdentity ContextKey = "identity"

// Authenticate is the request authenticator: it runs the identity resolver
// once per request and publishes the result to downstream handlers.
//
// No credential: the request proceeds unauthenticated - handlers that need
// identity reject on their own ("optional auth at the gate"). A presented
// credential that fails validation, or that is not an access token, rejects
// the request here with a short plain-text reason; the handler never runs.
func (s *Server) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encoded, ok := bearerToken(r)
		if !ok {
			next(w, r)
			return
		}

		identity, err := s.resolver.Resolve(encoded, token.KindAccess)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrWrongTokenKind) {
				s.log.Warn().Str("remote", r.RemoteAddr).Msg("wrong token type presented")
				http.Error(w, "access token required", http.StatusUnauthorized)
				return
			}
			s.log.Warn().Str("remote", r.RemoteAddr).Msg("invalid token presented")
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
		next(w, r.WithContext(ctx))
	}
}

// IdentityFrom returns the Identity the authenticator attached, if any.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(auth.Identity)
	return identity, ok
}

// requireIdentity fetches the caller's Identity or rejects with 401 when
// the request reached an identity-requiring handler unauthenticated.
func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, apperrors.ErrUnauthorized)
		return auth.Identity{}, false
	}
	return identity, true
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", false
	}
	return tokenString, true
}
