package tokens

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/lib/responses"
)

type jwtCustomClaims struct {
	ID      int64 `json:"id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.StandardClaims
}

// GenerateAccessToken issues the bearer token carrying the caller identity
// consumed by the payment endpoints.
func GenerateAccessToken(secret []byte, expiryInSeconds int, m *models.Member) (string, error) {
	claims := &jwtCustomClaims{
		ID:      m.ID,
		IsAdmin: m.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(expiryInSeconds) * time.Second).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// Middleware authenticates the request and stores the member id and admin
// flag on the echo context.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}
			claims := &jwtCustomClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}
			c.Set("UserID", claims.ID)
			c.Set("IsAdmin", claims.IsAdmin)
			return next(c)
		}
	}
}
