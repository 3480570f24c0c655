package common

const (
	PaymentMethodPush         = "push"
	PaymentMethodRedirect     = "redirect"
	PaymentMethodIntent       = "intent"
	PaymentMethodManual       = "manual"
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodImport       = "import"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	PaymentPurposeMembership = "membership"
	PaymentPurposeEvent      = "event"
	PaymentPurposeDonation   = "donation"

	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"

	DurationUnitDays     = "days"
	DurationUnitMonths   = "months"
	DurationUnitYears    = "years"
	DurationUnitLifetime = "lifetime"

	InvoicePrefix = "INV"
)

// GatewayMethods are the payment methods routed through an external processor.
var GatewayMethods = map[string]bool{
	PaymentMethodPush:     true,
	PaymentMethodRedirect: true,
	PaymentMethodIntent:   true,
}

// OfflineMethods are settled by an operator without any gateway interaction.
var OfflineMethods = map[string]bool{
	PaymentMethodManual:       true,
	PaymentMethodCash:         true,
	PaymentMethodBankTransfer: true,
	PaymentMethodImport:       true,
}
