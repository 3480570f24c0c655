package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wazohub/memberpay/common"
	v2controllers "github.com/wazohub/memberpay/controllers_v2"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/gateway"
	"github.com/wazohub/memberpay/lib"
	"github.com/wazohub/memberpay/lib/responses"
	"github.com/wazohub/memberpay/lib/service"
	"github.com/wazohub/memberpay/lib/tokens"
)

type CaptureTestSuite struct {
	TestSuite
	service        *service.MemberPayService
	member         *models.Member
	memberToken    string
	membershipType *models.MembershipType
	orderCounter   int
	captureResults map[string]*gateway.CaptureResult
}

func (suite *CaptureTestSuite) SetupSuite() {
	suite.captureResults = map[string]*gateway.CaptureResult{}
	redirectGateway := &MockGateway{
		GatewayName: common.PaymentMethodRedirect,
		InitiateFunc: func(ctx context.Context, req gateway.InitiateRequest) (*gateway.Handle, error) {
			suite.orderCounter++
			orderId := fmt.Sprintf("order-%d", suite.orderCounter)
			return &gateway.Handle{
				Reference:    orderId,
				Continuation: "https://wallet.example.com/approve/" + orderId,
			}, nil
		},
		CaptureFunc: func(ctx context.Context, orderID string) (*gateway.CaptureResult, error) {
			result, ok := suite.captureResults[orderID]
			if !ok {
				return nil, &gateway.Error{Transient: false, Message: "no such order"}
			}
			return result, nil
		},
	}
	svc, err := MemberPayTestServiceInit(map[string]gateway.PaymentGateway{
		common.PaymentMethodRedirect: redirectGateway,
	})
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	member, memberToken, err := createTestMember(svc, "redirect-payer@example.com", false)
	if err != nil {
		log.Fatalf("Error creating test member: %v", err)
	}
	suite.member = member
	suite.memberToken = memberToken

	membershipType, err := createTestMembershipType(svc, "Monthly", 500, 1, common.DurationUnitMonths)
	if err != nil {
		log.Fatalf("Error creating test membership type: %v", err)
	}
	suite.membershipType = membershipType

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	secured := e.Group("", tokens.Middleware(svc.Config.JWTSecret))
	secured.POST("/v2/payments", v2controllers.NewPaymentController(svc).SubmitPayment)
	secured.POST("/v2/payments/:gateway/capture", v2controllers.NewCaptureController(svc).Capture)
	e.POST("/v2/payments/webhooks/:gateway", v2controllers.NewWebhookController(svc).HandleNotification)
}

func (suite *CaptureTestSuite) TearDownTest() {
	clearTable(suite.service, "payments")
	clearTable(suite.service, "invoice_sequences")
	suite.service.DB.NewUpdate().
		Model((*models.Member)(nil)).
		Set("status = ?", common.MemberStatusInactive).
		Set("membership_type_id = NULL").
		Set("expiry_date = NULL").
		Where("id = ?", suite.member.ID).
		Exec(context.Background())
}

func (suite *CaptureTestSuite) submitRedirectPayment() *v2controllers.SubmitPaymentResponseBody {
	response, rec := suite.submitPaymentReq(&v2controllers.SubmitPaymentRequestBody{
		Amount:           suite.membershipType.Amount,
		Currency:         "KES",
		Method:           common.PaymentMethodRedirect,
		Purpose:          common.PaymentPurposeMembership,
		MembershipTypeID: suite.membershipType.ID,
		ReturnURL:        "https://app.example.com/payments/return",
	}, suite.memberToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	return response
}

func (suite *CaptureTestSuite) TestCaptureSettlesPayment() {
	response := suite.submitRedirectPayment()
	orderId := response.Payment.GatewayReference
	assert.Contains(suite.T(), response.Continuation, orderId)
	suite.captureResults[orderId] = &gateway.CaptureResult{Reference: orderId, Succeeded: true}

	rec := suite.captureReq(common.PaymentMethodRedirect, &v2controllers.CaptureRequestBody{
		PaymentID: response.Payment.ID,
		OrderID:   orderId,
	}, suite.memberToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	captureResponse := &v2controllers.CaptureResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(captureResponse))
	assert.Equal(suite.T(), common.PaymentStatusCompleted, captureResponse.Payment.Status)

	member, err := suite.service.FindMember(context.Background(), suite.member.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.MemberStatusActive, member.Status)
}

func (suite *CaptureTestSuite) TestCaptureIsIdempotentAgainstWebhook() {
	response := suite.submitRedirectPayment()
	orderId := response.Payment.GatewayReference
	suite.captureResults[orderId] = &gateway.CaptureResult{Reference: orderId, Succeeded: true}

	// the order webhook wins the race, the capture call afterwards must
	// return the already settled record without re-running side effects
	webhookRec := suite.notifyWebhookReq(common.PaymentMethodRedirect, orderId, true, "")
	assert.Equal(suite.T(), http.StatusOK, webhookRec.Code)

	rec := suite.captureReq(common.PaymentMethodRedirect, &v2controllers.CaptureRequestBody{
		PaymentID: response.Payment.ID,
		OrderID:   orderId,
	}, suite.memberToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	captureResponse := &v2controllers.CaptureResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(captureResponse))
	assert.Equal(suite.T(), common.PaymentStatusCompleted, captureResponse.Payment.Status)
}

func (suite *CaptureTestSuite) TestCaptureDeniedMarksFailed() {
	response := suite.submitRedirectPayment()
	orderId := response.Payment.GatewayReference
	suite.captureResults[orderId] = &gateway.CaptureResult{Reference: orderId, Succeeded: false, Message: "payer denied the order"}

	rec := suite.captureReq(common.PaymentMethodRedirect, &v2controllers.CaptureRequestBody{
		PaymentID: response.Payment.ID,
		OrderID:   orderId,
	}, suite.memberToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	captureResponse := &v2controllers.CaptureResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(captureResponse))
	assert.Equal(suite.T(), common.PaymentStatusFailed, captureResponse.Payment.Status)
	assert.Equal(suite.T(), "payer denied the order", captureResponse.Payment.ErrorMessage)
}

func (suite *CaptureTestSuite) TestCaptureUnknownOrderIsNotFound() {
	response := suite.submitRedirectPayment()

	// an order id this system never initiated
	rec := suite.captureReq(common.PaymentMethodRedirect, &v2controllers.CaptureRequestBody{
		PaymentID: response.Payment.ID,
		OrderID:   "order-initiated-elsewhere",
	}, suite.memberToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	payment, err := suite.service.FindPayment(context.Background(), response.Payment.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.PaymentStatusPending, payment.Status)
}

func (suite *CaptureTestSuite) TestCaptureUnknownPaymentIsNotFound() {
	rec := suite.captureReq(common.PaymentMethodRedirect, &v2controllers.CaptureRequestBody{
		PaymentID: 424242,
		OrderID:   "order-1",
	}, suite.memberToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestCaptureSuite(t *testing.T) {
	suite.Run(t, new(CaptureTestSuite))
}
