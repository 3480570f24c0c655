package v2controllers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wazohub/memberpay/lib/responses"
	"github.com/wazohub/memberpay/lib/service"
)

// WebhookController : Gateway webhook controller struct
type WebhookController struct {
	svc *service.MemberPayService
}

func NewWebhookController(svc *service.MemberPayService) *WebhookController {
	return &WebhookController{svc: svc}
}

type WebhookResponseBody struct {
	Result string `json:"result"`
}

// HandleNotification godoc
// @Summary      Receive a gateway notification
// @Description  Consume an asynchronous settlement callback from a payment gateway
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        gateway  path      string  true  "Gateway name"
// @Success      200      {object}  WebhookResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v2/payments/webhooks/{gateway} [post]
func (controller *WebhookController) HandleNotification(c echo.Context) error {
	gatewayName := c.Param("gateway")
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.Logger().Errorf("Failed to read %s notification body: %v", gatewayName, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	// Internal errors after a successful parse are logged server-side and
	// still acknowledged with a 200. A non-2xx response only makes the
	// gateway redeliver a notification we already know how to handle.
	err = controller.svc.HandleGatewayNotification(c.Request().Context(), gatewayName, payload)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	return c.JSON(http.StatusOK, &WebhookResponseBody{Result: "OK"})
}
