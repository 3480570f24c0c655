package gateway

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -destination=./mock_gateway/gateway.go github.com/wazohub/memberpay/gateway PaymentGateway,Capturer

// Handle is what a gateway returns after it accepted an initiation request.
// Reference is the external identifier used as the reconciliation join key.
// Continuation is the client-facing data needed to finish the payment: empty
// for push prompts, an authorization URL for redirects, a client secret for
// intents.
type Handle struct {
	Reference    string `json:"reference"`
	Continuation string `json:"continuation,omitempty"`
}

// ErrIgnoreNotification marks a callback that parsed fine but carries a
// non-terminal event. Processors emit progress events alongside the
// settlement result; treating one as a failure would terminally close the
// record before the real result arrives, so these are acknowledged and
// dropped.
var ErrIgnoreNotification = errors.New("notification carries no settlement result")

// Notification is the normalized form of a gateway callback payload.
type Notification struct {
	Reference string
	Succeeded bool
	Message   string
}

type CaptureResult struct {
	Reference string
	Succeeded bool
	Message   string
}

type InitiateRequest struct {
	Amount        int64
	Currency      string
	InvoiceNumber string
	// Phone is required by the push variant, ignored by the others.
	Phone string
	// ReturnURL is where the redirect variant sends the payer afterwards.
	ReturnURL string
}

// PaymentGateway is the uniform contract over the three processor
// integrations. Initiate accepting a request never implies settlement, the
// result arrives later through ParseNotification (or Capture, where
// supported).
type PaymentGateway interface {
	Name() string
	Initiate(ctx context.Context, req InitiateRequest) (*Handle, error)
	ParseNotification(payload []byte) (*Notification, error)
}

// Capturer is implemented by gateways whose settlement requires an explicit
// second call after payer approval.
type Capturer interface {
	Capture(ctx context.Context, orderID string) (*CaptureResult, error)
}

// Error classifies a failed gateway call. Transient failures may be retried
// by the caller, permanent ones must not be.
type Error struct {
	Transient bool
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

func permanentError(format string, args ...interface{}) *Error {
	return &Error{Transient: false, Message: fmt.Sprintf(format, args...)}
}

func transientError(format string, args ...interface{}) *Error {
	return &Error{Transient: true, Message: fmt.Sprintf(format, args...)}
}
