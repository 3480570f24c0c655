package service

import (
	"context"
	"time"
)

// StartStalePaymentRoutine periodically reports gateway payments that have
// been pending longer than the configured age. Stale-pending detection is an
// operator reporting concern: the records are never failed automatically
// because a late legitimate notification must still settle them.
func (svc *MemberPayService) StartStalePaymentRoutine(ctx context.Context) error {
	interval := time.Duration(svc.Config.StaleCheckInterval) * time.Second
	age := time.Duration(svc.Config.StalePaymentAge) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := svc.CheckStalePendingPayments(ctx, age); err != nil {
				svc.Logger.Errorf("Stale payment check failed: %v", err)
			}
		}
	}
}

func (svc *MemberPayService) CheckStalePendingPayments(ctx context.Context, age time.Duration) error {
	stale, err := svc.FindStalePendingPayments(ctx, age)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	svc.Logger.Infof("Found %d stale pending payments", len(stale))
	for _, payment := range stale {
		svc.Logger.Infof("Stale pending payment: payment_id:%v invoice:%s method:%s reference:%s created_at:%v",
			payment.ID, payment.InvoiceNumber, payment.Method, payment.GatewayReference, payment.CreatedAt)
	}
	return nil
}

// StartPublishPaymentsRoutine feeds settled payments into the RabbitMQ
// publisher when one is configured.
func (svc *MemberPayService) StartPublishPaymentsRoutine(ctx context.Context) error {
	if svc.RabbitMQClient == nil {
		return nil
	}
	return svc.RabbitMQClient.StartPublishPayments(ctx, svc.SubscribeSettledPayments, svc.EncodePaymentEvent)
}
