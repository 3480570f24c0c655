package rabbitmq_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/rabbitmq"
	"github.com/wazohub/memberpay/rabbitmq/mock_rabbitmq"
)

func TestStartPublishPayments(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	amqpClient := mock_rabbitmq.NewMockAMQPClient(ctrl)

	client, err := rabbitmq.NewClient(amqpClient, rabbitmq.WithPaymentExchange("test_memberpay_payment"))
	assert.NoError(t, err)

	amqpClient.EXPECT().
		ExchangeDeclare("test_memberpay_payment", "topic", true, false, false, false, nil).
		Times(1).
		Return(nil)

	completed := make(chan models.Payment, 1)
	failed := make(chan models.Payment, 1)
	subscribeFunc := func() (chan models.Payment, chan models.Payment, error) {
		return completed, failed, nil
	}
	encodeFunc := func(ctx context.Context, w io.Writer, payment models.Payment) error {
		return json.NewEncoder(w).Encode(payment)
	}

	var mu sync.Mutex
	published := map[string]models.Payment{}
	amqpClient.EXPECT().
		PublishWithContext(gomock.Any(), "test_memberpay_payment", gomock.Any(), false, false, gomock.Any()).
		Times(2).
		DoAndReturn(func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
			payment := models.Payment{}
			err := json.Unmarshal(msg.Body, &payment)
			assert.NoError(t, err)
			assert.Equal(t, "application/json", msg.ContentType)
			mu.Lock()
			published[key] = payment
			mu.Unlock()
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := client.StartPublishPayments(ctx, subscribeFunc, encodeFunc)
		assert.ErrorIs(t, err, context.Canceled)
	}()

	completed <- models.Payment{
		ID:            1,
		InvoiceNumber: "INV202506-0001",
		Purpose:       common.PaymentPurposeMembership,
		Status:        common.PaymentStatusCompleted,
	}
	failed <- models.Payment{
		ID:            2,
		InvoiceNumber: "INV202506-0002",
		Purpose:       common.PaymentPurposeDonation,
		Status:        common.PaymentStatusFailed,
	}

	//wait a bit for payments to be processed
	time.Sleep(time.Second)
	cancel()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(1), published["payment.membership.completed"].ID)
	assert.Equal(t, int64(2), published["payment.donation.failed"].ID)
}
