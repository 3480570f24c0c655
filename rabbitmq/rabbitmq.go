package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wazohub/memberpay/db/models"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we need to encode the payments we
// reuse buffers from this buffer pool. If we consume events sequentially there will
// only be one buffer in this pool at all times, but when scaling to multiple go
// routines this memory pool will scale with it.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

//go:generate mockgen -destination=./mock_rabbitmq/rabbitmq.go github.com/wazohub/memberpay/rabbitmq AMQPClient

const (
	contentTypeJSON = "application/json"
)

type (
	SubscribeToPaymentsFunc = func() (completed chan models.Payment, failed chan models.Payment, err error)
	EncodePaymentFunc       = func(ctx context.Context, w io.Writer, payment models.Payment) error
)

type Client interface {
	StartPublishPayments(context.Context, SubscribeToPaymentsFunc, EncodePaymentFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	paymentExchange string
}

type ClientOption = func(client *DefaultClient)

func WithPaymentExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.paymentExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// NewClient returns a payment publishing client on top of an existing
// amqp connection
func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		paymentExchange: "memberpay_payment",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) StartPublishPayments(ctx context.Context, paymentsSubscribeFunc SubscribeToPaymentsFunc, payloadFunc EncodePaymentFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.paymentExchange,
		// topic is a type of exchange that allows routing messages to different queue's bases on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	completed, failed, err := paymentsSubscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case payment := <-completed:
			err = client.publishToPaymentExchange(ctx, payment, payloadFunc)

			if err != nil {
				captureErr(client.logger, err)
			}
		case payment := <-failed:
			err = client.publishToPaymentExchange(ctx, payment, payloadFunc)

			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToPaymentExchange(ctx context.Context, payment models.Payment, payloadFunc EncodePaymentFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := payloadFunc(ctx, payload, payment)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("payment.%s.%s", payment.Purpose, payment.Status)

	err = client.amqpClient.PublishWithContext(ctx,
		client.paymentExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published payment to rabbitmq with invoice %s", payment.InvoiceNumber)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
