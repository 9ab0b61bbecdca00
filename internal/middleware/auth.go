package middleware

import (
	"context"
	"errors"
	"net/http"

	"parcel-delivery/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// ContextKeyEmail is the echo context key under which the credential stage
// stores the verified email claim for downstream stages and handlers.
const ContextKeyEmail = "userEmail"

// RoleLookup resolves the stored role for a verified email.
// Implemented by the users service.
type RoleLookup interface {
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}

// Auth bundles the three guard stages of the authorization chain:
// credential check, self-access check and admin-role check. Each stage
// either calls the next handler or terminates the request; the self and
// admin stages assume the credential stage already ran and fail closed
// with 401 when it has not.
type Auth struct {
	secret []byte
	roles  RoleLookup
}

// NewAuth creates the middleware set around the token signing secret and a
// role lookup.
func NewAuth(secret string, roles RoleLookup) *Auth {
	return &Auth{secret: []byte(secret), roles: roles}
}

// RequireCredential verifies the Authorization bearer token and attaches
// the decoded email claim to the context. Absent, malformed or rejected
// tokens terminate the request with 401.
func (a *Auth) RequireCredential() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: a.secret,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "unauthorized access"})
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}
			if email, ok := claims["email"].(string); ok {
				c.Set(ContextKeyEmail, email)
			}
		},
	})
}

// RequireSelf lets a request through only when its email query parameter
// matches the verified email claim. Used on listings that return a
// caller's own records.
func (a *Auth) RequireSelf() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get(ContextKeyEmail).(string)
			if !ok || email == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "unauthorized access"})
			}
			if c.QueryParam("email") != email {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "forbidden access"})
			}
			return next(c)
		}
	}
}

// RequireAdmin lets a request through only when the verified email belongs
// to a stored user with the admin role.
func (a *Auth) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get(ContextKeyEmail).(string)
			if !ok || email == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "unauthorized access"})
			}
			role, err := a.roles.GetRoleByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "forbidden access"})
				}
				c.Logger().Error("middleware.RequireAdmin: ", err)
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to verify role"})
			}
			if role != models.RoleAdmin {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "forbidden access"})
			}
			return next(c)
		}
	}
}
