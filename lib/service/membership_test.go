package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wazohub/memberpay/common"
)

func TestComputeExpiryMonths(t *testing.T) {
	from := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	expiry, err := computeExpiry(from, 12, common.DurationUnitMonths)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC), expiry.Time)
}

func TestComputeExpiryDaysAndYears(t *testing.T) {
	from := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	expiry, err := computeExpiry(from, 30, common.DurationUnitDays)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC), expiry.Time)

	expiry, err = computeExpiry(from, 2, common.DurationUnitYears)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2027, 6, 10, 12, 0, 0, 0, time.UTC), expiry.Time)
}

func TestComputeExpiryLifetimeHasNoExpiry(t *testing.T) {
	expiry, err := computeExpiry(time.Now(), 0, common.DurationUnitLifetime)
	assert.NoError(t, err)
	assert.True(t, expiry.IsZero())
}

func TestComputeExpiryUnknownUnit(t *testing.T) {
	_, err := computeExpiry(time.Now(), 1, "fortnights")
	assert.Error(t, err)
}

func TestInvoicePeriodPrefix(t *testing.T) {
	prefix := InvoicePeriodPrefix(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "INV202506-", prefix)
	assert.Equal(t, "INV202506-0001", FormatInvoiceNumber(prefix, 1))
	assert.Equal(t, "INV202506-0123", FormatInvoiceNumber(prefix, 123))
	// the padding widens instead of truncating once a period outgrows it
	assert.Equal(t, "INV202506-10001", FormatInvoiceNumber(prefix, 10001))
}
