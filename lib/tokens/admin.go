package tokens

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware guards operator endpoints with a static bearer token.
// With no token configured the middleware is a pass-through and the caller
// is expected to not register the guarded routes at all.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	if token == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return middleware.KeyAuth(func(auth string, c echo.Context) (bool, error) {
		ok := subtle.ConstantTimeCompare([]byte(auth), []byte(token)) == 1
		return ok, nil
	})
}
