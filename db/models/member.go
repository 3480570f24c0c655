package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Member holds the slice of the member row this service reads and mutates.
// The full member profile is managed by the membership application.
type Member struct {
	ID               int64        `json:"id" bun:",pk,autoincrement"`
	Email            string       `json:"email" bun:",unique,notnull" validate:"required,email"`
	Name             string       `json:"name" bun:",notnull"`
	Phone            string       `json:"phone" bun:",nullzero"`
	Status           string       `json:"status" bun:",default:'inactive'"`
	MembershipTypeID int64        `json:"membership_type_id,omitempty" bun:",nullzero"`
	ExpiryDate       bun.NullTime `json:"expiry_date"`
	IsAdmin          bool         `json:"is_admin" bun:",default:false"`
	Deactivated      bool         `json:"deactivated,omitempty" bun:",nullzero"`
	CreatedAt        time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt        bun.NullTime `json:"updated_at"`
}

func (m *Member) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		m.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Member)(nil)
