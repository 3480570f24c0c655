package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
)

var (
	// ErrPaymentNotFound is returned for lookups of unknown payment ids.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrReferenceConflict is returned when a different gateway reference is
	// already attached to the record.
	ErrReferenceConflict = errors.New("gateway reference already attached")
)

// ValidationError rejects a malformed request before any record is created.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type CreatePaymentParams struct {
	MemberID         int64
	Amount           int64
	Currency         string
	Method           string
	Purpose          string
	MembershipTypeID int64
	EventID          int64
}

// CreatePayment inserts a pending record with a freshly assigned invoice
// number. It runs before any gateway is contacted so a gateway failure still
// leaves an auditable attempt.
func (svc *MemberPayService) CreatePayment(ctx context.Context, params CreatePaymentParams) (*models.Payment, error) {
	if params.Amount <= 0 {
		return nil, &ValidationError{Message: "amount must be greater than zero"}
	}
	if params.Currency == "" {
		return nil, &ValidationError{Message: "currency is required"}
	}
	switch params.Purpose {
	case common.PaymentPurposeMembership:
		if params.MembershipTypeID == 0 {
			return nil, &ValidationError{Message: "membership payments require a membership type"}
		}
	case common.PaymentPurposeEvent:
		if params.EventID == 0 {
			return nil, &ValidationError{Message: "event payments require an event reference"}
		}
	case common.PaymentPurposeDonation:
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unknown payment purpose %q", params.Purpose)}
	}
	if !common.GatewayMethods[params.Method] && !common.OfflineMethods[params.Method] {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown payment method %q", params.Method)}
	}

	invoiceNumber, err := svc.NextInvoiceNumber(ctx, InvoicePeriodPrefix(time.Now()))
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		MemberID:         params.MemberID,
		Amount:           params.Amount,
		Currency:         params.Currency,
		Method:           params.Method,
		Purpose:          params.Purpose,
		MembershipTypeID: params.MembershipTypeID,
		EventID:          params.EventID,
		Status:           common.PaymentStatusPending,
		InvoiceNumber:    invoiceNumber,
	}
	_, err = svc.DB.NewInsert().Model(&payment).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// AttachGatewayReference sets the reconciliation join key exactly once.
// Re-attaching the same value is a no-op, a different value is a conflict.
func (svc *MemberPayService) AttachGatewayReference(ctx context.Context, paymentId int64, reference string) (*models.Payment, error) {
	res, err := svc.DB.NewUpdate().
		Model((*models.Payment)(nil)).
		Set("gateway_reference = ?", reference).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND gateway_reference IS NULL", paymentId).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	payment, err := svc.FindPayment(ctx, paymentId)
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 && payment.GatewayReference != reference {
		svc.Logger.Errorf("Refusing to overwrite gateway reference payment_id:%v existing:%s attempted:%s", paymentId, payment.GatewayReference, reference)
		return payment, ErrReferenceConflict
	}
	return payment, nil
}

// TransitionPayment applies pending -> completed|failed as a single
// conditional update. When the record is already terminal the call is a no-op
// and the stored record is returned with changed=false; this is what makes
// duplicate notifications harmless.
func (svc *MemberPayService) TransitionPayment(ctx context.Context, paymentId int64, newStatus string, errorMessage string) (payment *models.Payment, changed bool, err error) {
	if newStatus != common.PaymentStatusCompleted && newStatus != common.PaymentStatusFailed {
		return nil, false, fmt.Errorf("invalid target status %q", newStatus)
	}
	res, err := svc.DB.NewUpdate().
		Model((*models.Payment)(nil)).
		Set("status = ?", newStatus).
		Set("settled_at = ?", time.Now()).
		Set("updated_at = ?", time.Now()).
		Set("error_message = ?", sql.NullString{String: errorMessage, Valid: errorMessage != ""}).
		Where("id = ? AND status = ?", paymentId, common.PaymentStatusPending).
		Exec(ctx)
	if err != nil {
		return nil, false, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	payment, err = svc.FindPayment(ctx, paymentId)
	if err != nil {
		return nil, false, err
	}
	return payment, rowsAffected == 1, nil
}

func (svc *MemberPayService) FindPayment(ctx context.Context, paymentId int64) (*models.Payment, error) {
	var payment models.Payment
	err := svc.DB.NewSelect().Model(&payment).Where("id = ?", paymentId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindPaymentByGatewayReference is the reconciliation lookup. The unique
// index on gateway_reference guarantees at most one record.
func (svc *MemberPayService) FindPaymentByGatewayReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := svc.DB.NewSelect().Model(&payment).Where("gateway_reference = ?", reference).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (svc *MemberPayService) PaymentsFor(ctx context.Context, memberId int64) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := svc.DB.NewSelect().Model(&payments).Where("member_id = ?", memberId).OrderExpr("id DESC").Scan(ctx)
	return payments, err
}

// FindStalePendingPayments returns gateway payments that have been pending
// longer than the given age. Reporting only: a late legitimate notification
// must still be honored, so nothing here transitions them.
func (svc *MemberPayService) FindStalePendingPayments(ctx context.Context, olderThan time.Duration) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := svc.DB.NewSelect().
		Model(&payments).
		Where("status = ?", common.PaymentStatusPending).
		Where("gateway_reference IS NOT NULL").
		Where("created_at < ?", time.Now().Add(-olderThan)).
		OrderExpr("id ASC").
		Scan(ctx)
	return payments, err
}
