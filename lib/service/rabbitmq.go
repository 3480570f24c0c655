package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
)

type PaymentEvent struct {
	ID               int64     `json:"id"`
	MemberID         int64     `json:"member_id"`
	InvoiceNumber    string    `json:"invoice_number"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Method           string    `json:"method"`
	Purpose          string    `json:"purpose"`
	Status           string    `json:"status"`
	GatewayReference string    `json:"gateway_reference,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	SettledAt        time.Time `json:"settled_at"`
}

func convertPayload(payment models.Payment) PaymentEvent {
	return PaymentEvent{
		ID:               payment.ID,
		MemberID:         payment.MemberID,
		InvoiceNumber:    payment.InvoiceNumber,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Method:           payment.Method,
		Purpose:          payment.Purpose,
		Status:           payment.Status,
		GatewayReference: payment.GatewayReference,
		ErrorMessage:     payment.ErrorMessage,
		SettledAt:        payment.SettledAt.Time,
	}
}

// SubscribeSettledPayments hands the rabbitmq publisher a channel per
// terminal status. Every payment that settles after subscription time is
// delivered on exactly one of the two channels.
func (svc *MemberPayService) SubscribeSettledPayments() (completed chan models.Payment, failed chan models.Payment, err error) {
	completed = make(chan models.Payment)
	failed = make(chan models.Payment)
	if _, err = svc.PaymentPubSub.Subscribe(common.PaymentStatusCompleted, completed); err != nil {
		return nil, nil, err
	}
	if _, err = svc.PaymentPubSub.Subscribe(common.PaymentStatusFailed, failed); err != nil {
		return nil, nil, err
	}
	return completed, failed, nil
}

func (svc *MemberPayService) EncodePaymentEvent(ctx context.Context, w io.Writer, payment models.Payment) error {
	return json.NewEncoder(w).Encode(convertPayload(payment))
}
