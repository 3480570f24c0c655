package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/gateway"
	"github.com/wazohub/memberpay/lib/service"
)

type WebHookTestSuite struct {
	TestSuite
	service            *service.MemberPayService
	member             *models.Member
	webHookServer      *httptest.Server
	paymentChan        chan models.Payment
	webhookSubCancelFn context.CancelFunc
}

func (suite *WebHookTestSuite) SetupSuite() {
	suite.paymentChan = make(chan models.Payment)
	webhookServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payment := models.Payment{}
		err := json.NewDecoder(r.Body).Decode(&payment)
		if err != nil {
			close(suite.paymentChan)
			return
		}
		suite.paymentChan <- payment
	}))
	suite.webHookServer = webhookServer

	svc, err := MemberPayTestServiceInit(map[string]gateway.PaymentGateway{})
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	svc.Config.WebhookUrl = webhookServer.URL
	suite.service = svc

	member, _, err := createTestMember(svc, "webhook@example.com", false)
	if err != nil {
		log.Fatalf("Error creating test member: %v", err)
	}
	suite.member = member

	ctx, cancel := context.WithCancel(context.Background())
	suite.webhookSubCancelFn = cancel
	go svc.StartWebhookSubscription(ctx, svc.Config.WebhookUrl)
	// give the subscription a moment to register before tests publish
	time.Sleep(100 * time.Millisecond)
}

func (suite *WebHookTestSuite) TearDownSuite() {
	suite.webhookSubCancelFn()
	suite.webHookServer.Close()
}

func (suite *WebHookTestSuite) TearDownTest() {
	clearTable(suite.service, "payments")
	clearTable(suite.service, "invoice_sequences")
}

func (suite *WebHookTestSuite) TestSettledPaymentIsDelivered() {
	payment, err := suite.service.CreatePayment(context.Background(), service.CreatePaymentParams{
		MemberID: suite.member.ID,
		Amount:   250,
		Currency: "KES",
		Purpose:  common.PaymentPurposeDonation,
		Method:   common.PaymentMethodBankTransfer,
	})
	assert.NoError(suite.T(), err)

	settled, changed, err := suite.service.TransitionPayment(context.Background(), payment.ID, common.PaymentStatusCompleted, "")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), changed)
	suite.service.PaymentPubSub.Publish(settled.Status, *settled)

	delivered := <-suite.paymentChan
	assert.Equal(suite.T(), payment.ID, delivered.ID)
	assert.Equal(suite.T(), common.PaymentStatusCompleted, delivered.Status)
	assert.Equal(suite.T(), payment.InvoiceNumber, delivered.InvoiceNumber)
}

func TestWebHookSuite(t *testing.T) {
	suite.Run(t, new(WebHookTestSuite))
}
