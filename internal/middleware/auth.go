package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

// SessionCookie is the HTTP-only cookie carrying the signed session token.
const SessionCookie = "session"

type tokenVerifier interface {
	Verify(token string) (int64, error)
}

type Middleware struct {
	Tokens          tokenVerifier
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(tokens tokenVerifier, rh response.ResponseHandler) *Middleware {
	return &Middleware{Tokens: tokens, ResponseHandler: rh}
}

// context key
type contextKey string

const UserIDKey contextKey = "user_id"

// SessionAuth accepts the session cookie or an Authorization bearer token
// and puts the user id in the request context.
func (m *Middleware) SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, errs.CodeUnauthorized, "missing session")
			return
		}

		userID, err := m.Tokens.Verify(token)
		if err != nil {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, errs.CodeUnauthorized, "invalid or expired session")
			return
		}

		// every later log line carries the user
		_, ctx := logger.With(r.Context(), "user_id", userID)
		next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
	})
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserID returns the authenticated user, 0 outside SessionAuth.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(UserIDKey).(int64)
	return id
}
