package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/demesne/internal/platform/errors"
)

// roleGM is the claim value that grants game-master routes.
const roleGM = "gm"

type ctxKey int

const ctxKeySession ctxKey = iota

// Session is the validated identity attached to a request by the host
// platform's token.
type Session struct {
	ActorID string
	Role    string
}

// sessionClaims is the internal claims type used for JWT parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
}

// TokenVerifier validates host session tokens.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewTokenVerifier returns a verifier over an HS256 shared secret.
func NewTokenVerifier(secret []byte) *TokenVerifier {
	return &TokenVerifier{secret: secret, now: time.Now}
}

// Verify parses and validates a bearer token, returning the session it
// carries.
func (v *TokenVerifier) Verify(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, errors.New(errors.CodeAuthTokenInvalid, "session token is required")
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Session{}, errors.Wrap(errors.CodeAuthTokenInvalid, "invalid session token", err)
	}
	if parsed.ActorID == "" {
		return Session{}, errors.New(errors.CodeAuthTokenInvalid, "token is missing actor id")
	}
	return Session{ActorID: parsed.ActorID, Role: parsed.Role}, nil
}

// sessionMiddleware resolves the bearer token into a Session.
func sessionMiddleware(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			session, err := verifier.Verify(token)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// gmOnlyMiddleware rejects non-GM sessions.
func gmOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := requestSession(r)
		if session.Role != roleGM {
			writeServiceError(w, r, errors.New(errors.CodeAuthGMRequired, "game master role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestSession(r *http.Request) Session {
	session, _ := r.Context().Value(ctxKeySession).(Session)
	return session
}
