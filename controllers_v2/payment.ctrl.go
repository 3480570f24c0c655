package v2controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/gateway"
	"github.com/wazohub/memberpay/lib/responses"
	"github.com/wazohub/memberpay/lib/service"
)

// PaymentController : Payment controller struct
type PaymentController struct {
	svc *service.MemberPayService
}

func NewPaymentController(svc *service.MemberPayService) *PaymentController {
	return &PaymentController{svc: svc}
}

type Payment struct {
	ID               int64     `json:"id"`
	MemberID         int64     `json:"member_id"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Method           string    `json:"method"`
	Purpose          string    `json:"purpose"`
	MembershipTypeID int64     `json:"membership_type_id,omitempty"`
	EventID          int64     `json:"event_id,omitempty"`
	Status           string    `json:"status"`
	GatewayReference string    `json:"gateway_reference,omitempty"`
	InvoiceNumber    string    `json:"invoice_number"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	SettledAt        time.Time `json:"settled_at,omitempty"`
}

func convertPayment(payment *models.Payment) Payment {
	return Payment{
		ID:               payment.ID,
		MemberID:         payment.MemberID,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Method:           payment.Method,
		Purpose:          payment.Purpose,
		MembershipTypeID: payment.MembershipTypeID,
		EventID:          payment.EventID,
		Status:           payment.Status,
		GatewayReference: payment.GatewayReference,
		InvoiceNumber:    payment.InvoiceNumber,
		ErrorMessage:     payment.ErrorMessage,
		CreatedAt:        payment.CreatedAt,
		SettledAt:        payment.SettledAt.Time,
	}
}

type SubmitPaymentRequestBody struct {
	MemberID         int64  `json:"member_id" validate:"omitempty,gt=0"`
	Amount           int64  `json:"amount" validate:"required,gt=0"`
	Currency         string `json:"currency" validate:"required"`
	Method           string `json:"method" validate:"required"`
	Purpose          string `json:"purpose" validate:"required"`
	MembershipTypeID int64  `json:"membership_type_id" validate:"omitempty,gt=0"`
	EventID          int64  `json:"event_id" validate:"omitempty,gt=0"`
	Phone            string `json:"phone"`
	ReturnURL        string `json:"return_url"`
	MarkCompleted    bool   `json:"mark_completed"`
}

type SubmitPaymentResponseBody struct {
	Payment      Payment `json:"payment"`
	Continuation string  `json:"continuation,omitempty"`
}

// SubmitPayment godoc
// @Summary      Submit a payment
// @Description  Create a payment record and dispatch it to the processor selected by the method
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        SubmitPaymentRequest  body      SubmitPaymentRequestBody  True  "Payment to submit"
// @Success      200                   {object}  SubmitPaymentResponseBody
// @Failure      400                   {object}  responses.ErrorResponse
// @Failure      409                   {object}  responses.ErrorResponse
// @Failure      500                   {object}  responses.ErrorResponse
// @Router       /v2/payments [post]
// @Security     OAuth2Password
func (controller *PaymentController) SubmitPayment(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	isAdmin, _ := c.Get("IsAdmin").(bool)
	reqBody := SubmitPaymentRequestBody{}
	if err := c.Bind(&reqBody); err != nil {
		c.Logger().Errorf("Failed to load submit payment request body: user_id:%v error: %v", userID, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&reqBody); err != nil {
		c.Logger().Errorf("Invalid submit payment request body user_id:%v error: %v", userID, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	result, err := controller.svc.SubmitPayment(c.Request().Context(), service.Caller{MemberID: userID, IsAdmin: isAdmin}, service.SubmitPaymentParams{
		MemberID:         reqBody.MemberID,
		Amount:           reqBody.Amount,
		Currency:         reqBody.Currency,
		Method:           reqBody.Method,
		Purpose:          reqBody.Purpose,
		MembershipTypeID: reqBody.MembershipTypeID,
		EventID:          reqBody.EventID,
		Phone:            reqBody.Phone,
		ReturnURL:        reqBody.ReturnURL,
		MarkCompleted:    reqBody.MarkCompleted,
	})
	if err != nil {
		var validationErr *service.ValidationError
		var gatewayErr *gateway.Error
		switch {
		case errors.As(err, &validationErr):
			c.Logger().Errorf("Rejected payment submission: user_id:%v %v", userID, err)
			return c.JSON(http.StatusBadRequest, &responses.ErrorResponse{
				Error:   true,
				Code:    responses.BadArgumentsError.Code,
				Message: validationErr.Message,
			})
		case errors.Is(err, service.ErrNotAuthorized):
			c.Logger().Errorf("Unauthorized payment submission: user_id:%v %v", userID, err)
			return c.JSON(http.StatusForbidden, responses.NotAuthorizedError)
		case errors.Is(err, service.ErrReferenceConflict):
			c.Logger().Errorf("Gateway reference conflict: user_id:%v %v", userID, err)
			return c.JSON(http.StatusConflict, responses.GatewayReferenceConflictError)
		case errors.As(err, &gatewayErr):
			// the record exists and is marked failed, the client may retry
			// a transient failure with a fresh submission
			c.Logger().Errorf("Payment not started: user_id:%v %v", userID, err)
			return c.JSON(http.StatusBadGateway, &responses.ErrorResponse{
				Error:   true,
				Code:    responses.PaymentNotStartedError.Code,
				Message: gatewayErr.Message,
			})
		}
		c.Logger().Errorf("Failed to submit payment: user_id:%v error: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &SubmitPaymentResponseBody{
		Payment:      convertPayment(result.Payment),
		Continuation: result.Continuation,
	})
}

type GetPaymentsResponseBody struct {
	Payments []Payment `json:"payments"`
}

// GetPayments godoc
// @Summary      Retrieve payments
// @Description  Returns a list of the caller's payments, newest first
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Success      200  {object}  GetPaymentsResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/payments [get]
// @Security     OAuth2Password
func (controller *PaymentController) GetPayments(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	payments, err := controller.svc.PaymentsFor(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := make([]Payment, len(payments))
	for i := range payments {
		response[i] = convertPayment(&payments[i])
	}
	return c.JSON(http.StatusOK, &GetPaymentsResponseBody{Payments: response})
}

// GetPayment godoc
// @Summary      Get a specific payment
// @Description  Retrieve one payment record by id, visible to the payer and to administrators
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        payment_id  path      int  true  "Payment id"
// @Success      200  {object}  Payment
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/payments/{payment_id} [get]
// @Security     OAuth2Password
func (controller *PaymentController) GetPayment(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	isAdmin, _ := c.Get("IsAdmin").(bool)
	paymentId, err := strconv.ParseInt(c.Param("payment_id"), 10, 64)
	if err != nil {
		c.Logger().Errorf("Invalid payment id: user_id:%v payment_id:%s", userID, c.Param("payment_id"))
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payment, err := controller.svc.FindPayment(c.Request().Context(), paymentId)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, responses.PaymentNotFoundError)
		}
		return err
	}
	if payment.MemberID != userID && !isAdmin {
		// do not leak existence of other members' payments
		return c.JSON(http.StatusNotFound, responses.PaymentNotFoundError)
	}

	responseBody := convertPayment(payment)
	return c.JSON(http.StatusOK, &responseBody)
}

// GetStalePayments godoc
// @Summary      Report stale pending payments
// @Description  Returns gateway payments that have been pending longer than the configured age
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Success      200  {object}  GetPaymentsResponseBody
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/admin/payments/stale [get]
func (controller *PaymentController) GetStalePayments(c echo.Context) error {
	age := time.Duration(controller.svc.Config.StalePaymentAge) * time.Second
	payments, err := controller.svc.FindStalePendingPayments(c.Request().Context(), age)
	if err != nil {
		return err
	}

	response := make([]Payment, len(payments))
	for i := range payments {
		response[i] = convertPayment(&payments[i])
	}
	return c.JSON(http.StatusOK, &GetPaymentsResponseBody{Payments: response})
}
