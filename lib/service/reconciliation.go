package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
	"github.com/wazohub/memberpay/gateway"
)

// HandleGatewayNotification consumes one asynchronous gateway callback.
// Gateways deliver at least once and in no particular order, so everything
// downstream of the parse must tolerate duplicates and stale results. An
// error is returned only when the payload is structurally unparseable; every
// other outcome is logged and swallowed so the HTTP layer can acknowledge
// with a 2xx and the gateway stops retrying.
func (svc *MemberPayService) HandleGatewayNotification(ctx context.Context, gatewayName string, payload []byte) error {
	gw, ok := svc.Gateways[gatewayName]
	if !ok {
		return fmt.Errorf("unknown gateway %q", gatewayName)
	}
	notification, err := gw.ParseNotification(payload)
	if err != nil {
		if errors.Is(err, gateway.ErrIgnoreNotification) {
			svc.Logger.Infof("Ignoring non-terminal %s notification", gatewayName)
			return nil
		}
		svc.Logger.Errorf("Unparseable %s notification: %v payload:%s", gatewayName, err, string(payload))
		return err
	}

	svc.Logger.Infof("Gateway notification: gateway:%s reference:%s succeeded:%v", gatewayName, notification.Reference, notification.Succeeded)

	payment, err := svc.FindPaymentByGatewayReference(ctx, notification.Reference)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			// a foreign or test notification, not ours to process
			svc.Logger.Infof("No payment for gateway reference. Ignoring. gateway:%s reference:%s", gatewayName, notification.Reference)
			return nil
		}
		svc.Logger.Errorf("Failed to look up payment: gateway:%s reference:%s %v", gatewayName, notification.Reference, err)
		sentry.CaptureException(err)
		return nil
	}

	_, err = svc.settlePayment(ctx, payment.ID, notification.Succeeded, notification.Message)
	if err != nil {
		svc.Logger.Errorf("Failed to settle payment: payment_id:%v reference:%s %v", payment.ID, notification.Reference, err)
		sentry.CaptureException(err)
	}
	return nil
}

// CapturePayment is the synchronous settlement path of the redirect variant:
// the client calls it after the payer approved the order, instead of waiting
// for the webhook. The same idempotent transition runs underneath, so a
// webhook racing this call settles the record exactly once.
func (svc *MemberPayService) CapturePayment(ctx context.Context, caller Caller, paymentId int64, orderId string) (*models.Payment, error) {
	payment, err := svc.FindPayment(ctx, paymentId)
	if err != nil {
		return nil, err
	}
	if payment.MemberID != caller.MemberID && !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if payment.GatewayReference == "" || payment.GatewayReference != orderId {
		return nil, ErrPaymentNotFound
	}
	gw, ok := svc.Gateways[payment.Method].(gateway.Capturer)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("payment method %q does not support capture", payment.Method)}
	}
	if payment.IsTerminal() {
		return payment, nil
	}

	result, err := gw.Capture(ctx, orderId)
	if err != nil {
		svc.Logger.Errorf("Capture call failed: payment_id:%v order_id:%s %v", paymentId, orderId, err)
		return nil, err
	}
	return svc.settlePayment(ctx, payment.ID, result.Succeeded, result.Message)
}

// settlePayment applies the terminal transition and, only when this call won
// the transition to completed, runs the membership side effect and publishes
// the event. Losing the race (or re-processing a duplicate) produces no
// side effects.
func (svc *MemberPayService) settlePayment(ctx context.Context, paymentId int64, succeeded bool, message string) (*models.Payment, error) {
	newStatus := common.PaymentStatusCompleted
	errorMessage := ""
	if !succeeded {
		newStatus = common.PaymentStatusFailed
		errorMessage = message
	}
	payment, changed, err := svc.TransitionPayment(ctx, paymentId, newStatus, errorMessage)
	if err != nil {
		return nil, err
	}
	if !changed {
		svc.Logger.Infof("Payment already terminal, skipping side effects: payment_id:%v status:%s", payment.ID, payment.Status)
		return payment, nil
	}

	svc.Logger.Infof("Payment settled: payment_id:%v invoice:%s status:%s", payment.ID, payment.InvoiceNumber, payment.Status)

	if payment.Status == common.PaymentStatusCompleted && payment.Purpose == common.PaymentPurposeMembership {
		err = svc.ActivateMembership(ctx, payment.MemberID, payment.MembershipTypeID)
		if err != nil {
			// the payment stays completed; activation is retried by support
			svc.Logger.Errorf("Membership activation failed: payment_id:%v member_id:%v %v", payment.ID, payment.MemberID, err)
			sentry.CaptureException(err)
		}
	}
	svc.publishPayment(payment)
	return payment, nil
}

func (svc *MemberPayService) publishPayment(payment *models.Payment) {
	if svc.PaymentPubSub == nil {
		return
	}
	svc.PaymentPubSub.Publish(payment.Status, *payment)
}
