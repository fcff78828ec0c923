package middle

import (
	"net/http"
	"slices"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

// RequireRole lets the request through only for the listed roles.
// It must run after AuthMiddleware.Handle.
func RequireRole(roles ...security.Role) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqID := middleware.GetReqID(ctx)

			user, ok := UserFromContext(ctx)
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "user is unauthorised")
				return
			}

			if !slices.Contains(roles, user.Role) {
				utils.WriteError(w, http.StatusForbidden, reqID, apperror.Forbidden, "user do not have access")
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func AllowAdmin(next http.Handler) http.Handler {
	return RequireRole(security.RoleAdmin)(next)
}

func AllowEditors(next http.Handler) http.Handler {
	return RequireRole(security.RoleAdmin, security.RoleEditor)(next)
}
