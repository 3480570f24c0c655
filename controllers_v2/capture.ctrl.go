package v2controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wazohub/memberpay/lib/responses"
	"github.com/wazohub/memberpay/lib/service"
)

// CaptureController : Capture controller struct
type CaptureController struct {
	svc *service.MemberPayService
}

func NewCaptureController(svc *service.MemberPayService) *CaptureController {
	return &CaptureController{svc: svc}
}

type CaptureRequestBody struct {
	PaymentID int64  `json:"payment_id" validate:"required,gt=0"`
	OrderID   string `json:"order_id" validate:"required"`
}

type CaptureResponseBody struct {
	Payment Payment `json:"payment"`
}

// Capture godoc
// @Summary      Capture an approved order
// @Description  Settle a redirect payment synchronously after the payer approved the order
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        gateway         path      string              true  "Gateway name"
// @Param        CaptureRequest  body      CaptureRequestBody  True  "Order to capture"
// @Success      200             {object}  CaptureResponseBody
// @Failure      400             {object}  responses.ErrorResponse
// @Failure      404             {object}  responses.ErrorResponse
// @Failure      502             {object}  responses.ErrorResponse
// @Router       /v2/payments/{gateway}/capture [post]
// @Security     OAuth2Password
func (controller *CaptureController) Capture(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	isAdmin, _ := c.Get("IsAdmin").(bool)
	reqBody := CaptureRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load capture request body: user_id:%v error: %v", userID, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid capture request body user_id:%v error: %v", userID, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payment, err := controller.svc.CapturePayment(c.Request().Context(), service.Caller{MemberID: userID, IsAdmin: isAdmin}, reqBody.PaymentID, reqBody.OrderID)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			c.Logger().Errorf("Capture of unknown order: user_id:%v payment_id:%v order_id:%s", userID, reqBody.PaymentID, reqBody.OrderID)
			return c.JSON(http.StatusNotFound, responses.PaymentNotFoundError)
		case errors.Is(err, service.ErrNotAuthorized):
			return c.JSON(http.StatusForbidden, responses.NotAuthorizedError)
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusBadRequest, &responses.ErrorResponse{
				Error:   true,
				Code:    responses.BadArgumentsError.Code,
				Message: validationErr.Message,
			})
		}
		c.Logger().Errorf("Capture failed: user_id:%v payment_id:%v order_id:%s error: %v", userID, reqBody.PaymentID, reqBody.OrderID, err)
		return c.JSON(http.StatusBadGateway, responses.PaymentNotStartedError)
	}

	return c.JSON(http.StatusOK, &CaptureResponseBody{Payment: convertPayment(payment)})
}
