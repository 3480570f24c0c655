package integration_tests

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/gateway"
	"github.com/wazohub/memberpay/lib/service"
)

type GatewayReferenceTestSuite struct {
	TestSuite
	service *service.MemberPayService
	member  *models.Member
}

func (suite *GatewayReferenceTestSuite) SetupSuite() {
	svc, err := MemberPayTestServiceInit(map[string]gateway.PaymentGateway{})
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	member, _, err := createTestMember(svc, "reference@example.com", false)
	if err != nil {
		log.Fatalf("Error creating test member: %v", err)
	}
	suite.member = member
}

func (suite *GatewayReferenceTestSuite) TearDownTest() {
	clearTable(suite.service, "payments")
	clearTable(suite.service, "invoice_sequences")
}

func (suite *GatewayReferenceTestSuite) createPendingPayment() *models.Payment {
	payment, err := suite.service.CreatePayment(context.Background(), service.CreatePaymentParams{
		MemberID: suite.member.ID,
		Amount:   2500,
		Currency: "KES",
		Method:   common.PaymentMethodBankTransfer,
		Purpose:  common.PaymentPurposeDonation,
	})
	assert.NoError(suite.T(), err)
	return payment
}

func (suite *GatewayReferenceTestSuite) TestReattachingSameReferenceIsANoOp() {
	payment := suite.createPendingPayment()

	attached, err := suite.service.AttachGatewayReference(context.Background(), payment.ID, "order-7001")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "order-7001", attached.GatewayReference)

	// a gateway retrying its response delivers the same reference again
	again, err := suite.service.AttachGatewayReference(context.Background(), payment.ID, "order-7001")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "order-7001", again.GatewayReference)
	assert.Equal(suite.T(), common.PaymentStatusPending, again.Status)
	assert.Equal(suite.T(), attached.InvoiceNumber, again.InvoiceNumber)
}

func (suite *GatewayReferenceTestSuite) TestAttachingDifferentReferenceIsAConflict() {
	payment := suite.createPendingPayment()

	_, err := suite.service.AttachGatewayReference(context.Background(), payment.ID, "order-7002")
	assert.NoError(suite.T(), err)

	conflicted, err := suite.service.AttachGatewayReference(context.Background(), payment.ID, "order-other")
	assert.ErrorIs(suite.T(), err, service.ErrReferenceConflict)
	// the stored reference survives the refused overwrite
	assert.Equal(suite.T(), "order-7002", conflicted.GatewayReference)

	stored, err := suite.service.FindPayment(context.Background(), payment.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "order-7002", stored.GatewayReference)
}

func TestGatewayReferenceSuite(t *testing.T) {
	suite.Run(t, new(GatewayReferenceTestSuite))
}
