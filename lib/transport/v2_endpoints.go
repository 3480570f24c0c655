package transport

import (
	"github.com/labstack/echo/v4"
	v2controllers "github.com/wazohub/memberpay/controllers_v2"
	"github.com/wazohub/memberpay/lib/service"
)

func RegisterV2Endpoints(svc *service.MemberPayService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	paymentCtrl := v2controllers.NewPaymentController(svc)
	captureCtrl := v2controllers.NewCaptureController(svc)
	webhookCtrl := v2controllers.NewWebhookController(svc)

	// operator report of gateway payments stuck in pending
	if svc.Config.AdminToken != "" {
		e.GET("/v2/admin/payments/stale", paymentCtrl.GetStalePayments, adminMw, logMw)
	}

	securedWithStrictRateLimit.POST("/v2/payments", paymentCtrl.SubmitPayment)
	secured.GET("/v2/payments", paymentCtrl.GetPayments)
	secured.GET("/v2/payments/:payment_id", paymentCtrl.GetPayment)
	securedWithStrictRateLimit.POST("/v2/payments/:gateway/capture", captureCtrl.Capture)

	// Gateway notifications carry no bearer token. Authenticity is decided by
	// matching the reference against a stored pending record.
	e.POST("/v2/payments/webhooks/:gateway", webhookCtrl.HandleNotification, strictRateLimitMiddleware, logMw)

	cacheClient := createCacheClient()
	secured.GET("/v2/membership-types", v2controllers.NewMembershipTypeController(svc).GetMembershipTypes, cacheClient.Middleware())

	e.GET("/health", v2controllers.NewHealthController(svc).Health)
}
