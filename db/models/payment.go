package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Payment is one row per payment attempt. Records are never deleted, they are
// the financial audit trail.
type Payment struct {
	ID               int64           `json:"id" bun:",pk,autoincrement"`
	MemberID         int64           `json:"member_id" validate:"required"`
	Member           *Member         `json:"-" bun:"rel:belongs-to,join:member_id=id"`
	Amount           int64           `json:"amount" validate:"gt=0"`
	Currency         string          `json:"currency" validate:"required"`
	Method           string          `json:"method" validate:"required"`
	Purpose          string          `json:"purpose" validate:"required"`
	MembershipTypeID int64           `json:"membership_type_id,omitempty" bun:",nullzero"`
	MembershipType   *MembershipType `json:"-" bun:"rel:belongs-to,join:membership_type_id=id"`
	EventID          int64           `json:"event_id,omitempty" bun:",nullzero"`
	Status           string          `json:"status" bun:",default:'pending'"`
	GatewayReference string          `json:"gateway_reference,omitempty" bun:",nullzero"`
	InvoiceNumber    string          `json:"invoice_number" bun:",notnull"`
	ErrorMessage     string          `json:"error_message,omitempty" bun:",nullzero"`
	CreatedAt        time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt        bun.NullTime    `json:"updated_at"`
	SettledAt        bun.NullTime    `json:"settled_at"`
}

func (p *Payment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

func (p *Payment) IsTerminal() bool {
	return p.Status != "pending"
}

var _ bun.BeforeAppendModelHook = (*Payment)(nil)
