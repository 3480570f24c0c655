package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
)

// InvoicePeriodPrefix returns the invoice scope for the given time,
// e.g. "INV202506-".
func InvoicePeriodPrefix(t time.Time) string {
	return fmt.Sprintf("%s%s-", common.InvoicePrefix, t.Format("200601"))
}

// NextInvoiceNumber returns the next identifier for the given period prefix.
// The per-prefix counter is bumped with a single upsert so two concurrent
// calls can never observe the same value, unlike a max()+1 read on the
// payments table.
func (svc *MemberPayService) NextInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	seq := models.InvoiceSequence{Prefix: prefix, Value: 1}
	_, err := svc.DB.NewInsert().
		Model(&seq).
		On("CONFLICT (prefix) DO UPDATE").
		Set("value = invoice_sequence.value + 1").
		Returning("value").
		Exec(ctx)
	if err != nil {
		return "", err
	}
	return FormatInvoiceNumber(prefix, seq.Value), nil
}

func FormatInvoiceNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s%04d", prefix, sequence)
}
