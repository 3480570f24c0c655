package responses

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestBadAuthErrorsNotAllowedForSentry(t *testing.T) {
	badAuthErrResponse := echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
		"error":   true,
		"code":    BadAuthError.Code,
		"message": BadAuthError.Message,
	})

	isAllowed := isErrAllowedForSentry(badAuthErrResponse)
	assert.False(t, isAllowed)
}

func TestNotAuthorizedErrorsNotAllowedForSentry(t *testing.T) {
	// forbidden responses share the auth error code and are filtered as well
	notAuthorizedErrResponse := echo.NewHTTPError(http.StatusForbidden, echo.Map{
		"error":   true,
		"code":    NotAuthorizedError.Code,
		"message": NotAuthorizedError.Message,
	})

	isAllowed := isErrAllowedForSentry(notAuthorizedErrResponse)
	assert.False(t, isAllowed)
}

func TestNotBadAuthErrorsAllowedForSentry(t *testing.T) {
	notBadAuthErrResponse := echo.NewHTTPError(http.StatusBadRequest, echo.Map{
		"error":   true,
		"code":    BadArgumentsError.Code,
		"message": BadArgumentsError.Message,
	})

	isAllowed := isErrAllowedForSentry(notBadAuthErrResponse)
	assert.True(t, isAllowed)
}

func TestNonErrorResponseErrorsAllowedForSentry(t *testing.T) {
	err := errors.New("random error")

	isAllowed := isErrAllowedForSentry(err)
	assert.True(t, isAllowed)
}

func TestErrorResponseStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, PaymentNotFoundError.HttpStatusCode)
	assert.Equal(t, http.StatusConflict, GatewayReferenceConflictError.HttpStatusCode)
	assert.Equal(t, http.StatusBadGateway, PaymentNotStartedError.HttpStatusCode)
	assert.Equal(t, http.StatusForbidden, NotAuthorizedError.HttpStatusCode)
}
