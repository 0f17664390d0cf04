package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/messmate/backend/internal/models"
	"github.com/messmate/backend/internal/service"
)

const ctxActor = "actor"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func claimsFromToken(tokenStr string, secret []byte) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, err
	}
	return &claims, nil
}

// MintToken issues an HS256 access token for a user. The identity
// provider that normally issues these lives outside this service; this
// helper backs tests and local tooling.
func MintToken(secret []byte, userID uint, role models.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Auth verifies the access token and stores the authenticated actor on
// the request context. Downstream code passes the actor explicitly into
// the service layer; nothing reads ambient session state.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := tokenFromRequest(c)
			if tokenStr == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			claims, err := claimsFromToken(tokenStr, secret)
			if err != nil || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}
			userID, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject")
			}

			c.Set(ctxActor, service.Actor{
				UserID: uint(userID),
				Role:   models.Role(claims.Role),
			})
			return next(c)
		}
	}
}

func RequireRole(required ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ctxActor).(service.Actor)
			if !ok || actor.Role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing role")
			}
			if !slices.Contains(required, actor.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient rights")
			}
			return next(c)
		}
	}
}

// ActorFromEchoContext returns the actor stored by Auth.
func ActorFromEchoContext(c echo.Context) (service.Actor, bool) {
	actor, ok := c.Get(ctxActor).(service.Actor)
	return actor, ok
}

// SetActor is a test hook for handler tests that bypass Auth.
func SetActor(c echo.Context, actor service.Actor) {
	c.Set(ctxActor, actor)
}
