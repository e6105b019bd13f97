package middleware

import (
	"context"
	"net/http"
	"strings"

	"campus_connect/internal/common"
	"campus_connect/internal/common/security"
	"campus_connect/internal/domain/model"
	"campus_connect/internal/domain/repository"
	"campus_connect/internal/domain/roles"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userCtxKey contextKey = "user"

// Auth carries what the authenticated middleware chain needs: the user
// store for per-request re-fetch and the email rule for role resolution.
type Auth struct {
	userRepo  repository.UserRepository
	emailRule roles.EmailRule
}

func NewAuth(userRepo repository.UserRepository, emailRule roles.EmailRule) *Auth {
	return &Auth{userRepo: userRepo, emailRule: emailRule}
}

// Authenticator verifies the bearer token and loads the user fresh from
// the store. The token carries only the user ID on purpose: role and club
// membership are re-read every request, so an admin promote/demote is
// effective immediately rather than at token expiry.
func (a *Auth) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		user, err := a.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Account not found")
			return
		}
		user.HashedPassword = ""

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is the coarse gate: the resolved role must be one of the
// allowed roles.
func (a *Auth) RequireRole(allowed ...roles.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
				return
			}
			resolved := a.emailRule.Resolve(user.Snapshot())
			if !roles.HasRole(resolved, allowed...) {
				common.RespondWithError(w, http.StatusForbidden, "User role not authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission is the fine gate: the recomputed action set must
// contain the given action.
func RequirePermission(action roles.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
				return
			}
			if !roles.Permissions(user.Snapshot()).Has(action) {
				common.RespondWithError(w, http.StatusForbidden, "Action not permitted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the freshly-loaded user for this request.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}

// WithUser injects a user into the context; test helper for handlers.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}
