package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var PaymentNotStartedError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "your payment could not be started. please try again or choose another payment method",
	HttpStatusCode: 502,
}

var PaymentNotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "payment not found",
	HttpStatusCode: 404,
}

var GatewayReferenceConflictError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "gateway reference already attached",
	HttpStatusCode: 409,
}

var NotAuthorizedError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "you are not authorized to perform this action",
	HttpStatusCode: 403,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}

// bad auth responses are request noise, not exceptions worth tracking
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	m, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	code, ok := m["code"].(int)
	if !ok {
		return true
	}
	return code != BadAuthError.Code
}
