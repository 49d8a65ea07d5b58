package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/jwt"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type userCtxKey struct{}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user stored by AuthRequired
func UserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(user.User)
	return u, ok
}

// AuthRequired verifies the bearer token and resolves the user behind it.
// A valid token whose user no longer exists is rejected like a bad token.
func AuthRequired(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwtService.ValidateAccessToken(jwtauth.TokenFromHeader(r))
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			current, err := authService.CurrentUser(r.Context(), claims.Email)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidToken) {
					slog.Error("AuthRequired user lookup error", "error", err)
				}
				response.HandleError(w, err)
				return
			}

			httplog.SetAttrs(r.Context(),
				slog.String("user.id", current.ID),
				slog.String("user.role", string(current.Role)),
			)

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), current)))
		}
		return http.HandlerFunc(hfn)
	}
}
