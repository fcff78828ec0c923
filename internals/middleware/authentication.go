package middle

import (
	"context"
	"errors"
	"net/http"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
	"statuspage/pkg/utils"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type userCtxKeyType struct{}

var userCtxKey = userCtxKeyType{}

type AuthenticatedUser struct {
	UserID uuid.UUID
	Email  string
	OrgID  uuid.UUID
	Role   security.Role
}

// Access is the stored state of an account, read on every authenticated request.
type Access struct {
	OrgID  uuid.UUID
	Role   security.Role
	Status security.AccountStatus
}

type AccessLookup interface {
	CurrentAccess(ctx context.Context, userID uuid.UUID) (Access, error)
}

type TokenValidator interface {
	ValidateAccessToken(token string) (*security.RequestClaims, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
	access AccessLookup
}

func NewAuthMiddleware(tokens TokenValidator, access AccessLookup) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		access: access,
	}
}

func (a *AuthMiddleware) Handle(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := middleware.GetReqID(ctx)

		token, err := extractBearerToken(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, err.Error())
			return
		}

		claims, err := a.tokens.ValidateAccessToken(token)
		if err != nil {
			utils.FromAppError(w, reqID, err)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil || claims.Email == "" {
			utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "user is unauthorised")
			return
		}

		// role and approval can change after the token was issued
		acc, err := a.access.CurrentAccess(ctx, userID)
		if err != nil {
			if apperror.IsKind(err, apperror.NotFound) {
				utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "user no longer exists")
				return
			}
			utils.FromAppError(w, reqID, err)
			return
		}

		switch acc.Status {
		case security.StatusApproved:
		case security.StatusPending:
			utils.WriteError(w, http.StatusForbidden, reqID, apperror.Forbidden, "account pending admin approval")
			return
		default:
			utils.WriteError(w, http.StatusForbidden, reqID, apperror.Forbidden, "access revoked")
			return
		}

		authUser := &AuthenticatedUser{
			UserID: userID,
			Email:  claims.Email,
			OrgID:  acc.OrgID,
			Role:   acc.Role,
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, authUser)))
	}

	return http.HandlerFunc(fn)
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("invalid Authorization header")
	}

	return token, nil
}

func WithUser(ctx context.Context, u *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

func UserFromContext(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(userCtxKey).(*AuthenticatedUser)
	return user, ok
}

// CurrentUser fetches the authenticated user or writes a 401 and returns false.
func CurrentUser(w http.ResponseWriter, r *http.Request) (*AuthenticatedUser, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, middleware.GetReqID(r.Context()), apperror.Unauthorised, "user is unauthorised")
		return nil, false
	}
	return user, true
}
