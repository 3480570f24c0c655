package models

// InvoiceSequence backs the invoice number generator. One row per period
// prefix, bumped with a single upsert so concurrent calls can not read the
// same value.
type InvoiceSequence struct {
	Prefix string `bun:",pk"`
	Value  int64  `bun:",notnull,default:0"`
}
