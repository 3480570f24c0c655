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

// ErrNotAuthorized rejects a submission the caller may not make.
var ErrNotAuthorized = errors.New("caller is not authorized for this payment")

type SubmitPaymentParams struct {
	MemberID         int64
	Amount           int64
	Currency         string
	Method           string
	Purpose          string
	MembershipTypeID int64
	EventID          int64
	// Phone is required for the push method.
	Phone string
	// ReturnURL overrides the configured redirect return URL.
	ReturnURL string
	// MarkCompleted settles an offline payment immediately. Admin only.
	MarkCompleted bool
}

type SubmitPaymentResult struct {
	Payment *models.Payment
	// Continuation is what the client needs to finish the payment: empty for
	// push prompts, the approval URL for redirects, the client secret for
	// intents.
	Continuation string
}

// SubmitPayment runs the orchestration flow: validate, create the pending
// record, dispatch to the gateway selected by the method, attach the returned
// reference. A gateway failure marks the record failed and is surfaced to the
// caller; there is no automatic retry, a retried push checkout would prompt
// the payer's device again.
func (svc *MemberPayService) SubmitPayment(ctx context.Context, caller Caller, params SubmitPaymentParams) (*SubmitPaymentResult, error) {
	if params.MemberID == 0 {
		params.MemberID = caller.MemberID
	}
	// paying on behalf of another member and settling without a gateway are
	// operator actions
	if params.MemberID != caller.MemberID && !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if common.OfflineMethods[params.Method] && !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if params.Method == common.PaymentMethodPush && params.Phone == "" {
		return nil, &ValidationError{Message: "push payments require a phone number"}
	}
	if common.GatewayMethods[params.Method] {
		if _, ok := svc.Gateways[params.Method]; !ok {
			return nil, &ValidationError{Message: fmt.Sprintf("payment method %q is not enabled", params.Method)}
		}
	}

	payment, err := svc.CreatePayment(ctx, CreatePaymentParams{
		MemberID:         params.MemberID,
		Amount:           params.Amount,
		Currency:         params.Currency,
		Method:           params.Method,
		Purpose:          params.Purpose,
		MembershipTypeID: params.MembershipTypeID,
		EventID:          params.EventID,
	})
	if err != nil {
		return nil, err
	}
	svc.Logger.Infof("Created payment: payment_id:%v member_id:%v invoice:%s method:%s amount:%v %s",
		payment.ID, payment.MemberID, payment.InvoiceNumber, payment.Method, payment.Amount, payment.Currency)

	if common.OfflineMethods[params.Method] {
		if !params.MarkCompleted {
			return &SubmitPaymentResult{Payment: payment}, nil
		}
		// administrator-confirmed payment, no gateway involved
		payment, err = svc.settlePayment(ctx, payment.ID, true, "")
		if err != nil {
			return nil, err
		}
		return &SubmitPaymentResult{Payment: payment}, nil
	}

	gw := svc.Gateways[params.Method]
	handle, err := gw.Initiate(ctx, gateway.InitiateRequest{
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		InvoiceNumber: payment.InvoiceNumber,
		Phone:         params.Phone,
		ReturnURL:     params.ReturnURL,
	})
	if err != nil {
		svc.Logger.Errorf("Gateway initiation failed: payment_id:%v gateway:%s %v", payment.ID, gw.Name(), err)
		sentry.CaptureException(err)
		failed, _, terr := svc.TransitionPayment(ctx, payment.ID, common.PaymentStatusFailed, err.Error())
		if terr != nil {
			svc.Logger.Errorf("Could not mark payment failed: payment_id:%v %v", payment.ID, terr)
			return nil, terr
		}
		svc.publishPayment(failed)
		return nil, err
	}

	payment, err = svc.AttachGatewayReference(ctx, payment.ID, handle.Reference)
	if err != nil {
		return nil, err
	}
	svc.Logger.Infof("Gateway accepted payment: payment_id:%v gateway:%s reference:%s",
		payment.ID, gw.Name(), handle.Reference)

	return &SubmitPaymentResult{
		Payment:      payment,
		Continuation: handle.Continuation,
	}, nil
}
