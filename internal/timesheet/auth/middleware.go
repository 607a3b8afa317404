package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/httputil"
)

// UserLookup loads accounts while resolving tokens.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Middleware resolves a Bearer token into an actor on the request
// context. Requests without a token pass through unauthenticated; the
// gates decide per operation whether that is acceptable. A token that
// is present but invalid fails the request immediately.
func Middleware(manager *TokenManager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				httputil.ErrorLocalized(w, r, errors.TokenInvalid())
				return
			}

			claims, err := manager.Validate(tokenString)
			if err != nil {
				httputil.ErrorLocalized(w, r, err)
				return
			}

			user, err := users.GetByID(r.Context(), claims.Subject)
			if err != nil {
				httputil.ErrorLocalized(w, r, errors.TokenInvalid())
				return
			}

			ctx := actor.WithActor(r.Context(), &actor.Actor{
				ID:       user.ID,
				Name:     user.Name,
				Emails:   user.Emails,
				Admin:    user.Admin,
				Inactive: user.Inactive,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
