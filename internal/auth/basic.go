package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/rs/zerolog/hlog"
)

// Reasons a request failed authentication. They all match models.ErrUnauthorized
// and are only distinguished in logs.
var (
	ErrMissingCredentials = fmt.Errorf("%w: auth header not found", models.ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", models.ErrUnauthorized)
	ErrPasswordMismatch   = fmt.Errorf("%w: password mismatch", models.ErrUnauthorized)
)

// Realm is advertised in the WWW-Authenticate header of rejected requests.
const Realm = "courses"

type contextKey string

const currentUserKey = contextKey("currentUser")

// Authenticator resolves Basic credentials to a user.
type Authenticator interface {
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
}

// ErrorResponder writes an error response for a failed request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// WithUser returns a copy of ctx carrying user as the current identity.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(currentUserKey).(*models.User)
	return user
}

// BasicAuthMiddleware protects routes with HTTP Basic credentials. The name is
// the user's email address. Every request is authenticated from scratch.
func BasicAuthMiddleware(authn Authenticator, respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				reject(w, r, ErrMissingCredentials, respond)
				return
			}

			user, err := authn.AuthenticateUser(r.Context(), email, password)
			if err != nil {
				reject(w, r, err, respond)
				return
			}

			hlog.FromRequest(r).Debug().Str("user_id", user.ID).Msg("Authenticated user")
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, err error, respond ErrorResponder) {
	hlog.FromRequest(r).Warn().Err(err).Msg("Failed authentication attempt")
	w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`", charset="UTF-8"`)
	respond(w, r, err)
}
