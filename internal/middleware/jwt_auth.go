package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// ClaimsContextKey is where the verified claims are stored on the echo context.
const ClaimsContextKey = "user"

var errNoToken = errors.New("missing Authorization header")

// JWTAuthMiddleware checks for a valid JWT and extracts user claims. Requests without a
// valid token are rejected with 401.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware lets anonymous requests through but still rejects a malformed or
// invalid token, so a stale token never silently downgrades a caller to anonymous.
func OptionalJWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c.Request().Header.Get("Authorization"), secret)
			switch {
			case errors.Is(err, errNoToken):
			case err != nil:
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			default:
				c.Set(ClaimsContextKey, claims)
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user's ID, or 0 for anonymous requests.
func UserID(c echo.Context) uint {
	claims, ok := c.Get(ClaimsContextKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

func parseBearer(authHeader, secret string) (*models.JwtCustomClaims, error) {
	if authHeader == "" {
		return nil, errNoToken
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errors.New("Invalid Authorization header format")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("Invalid token signature")
		}
		return nil, errors.New("Invalid token")
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("Invalid token")
	}
	return claims, nil
}
