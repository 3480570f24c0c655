package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MembershipType describes a purchasable membership and how long it runs.
// A duration_unit of "lifetime" never expires; duration is ignored then.
type MembershipType struct {
	ID           int64        `json:"id" bun:",pk,autoincrement"`
	Name         string       `json:"name" bun:",unique,notnull" validate:"required"`
	Amount       int64        `json:"amount" validate:"gte=0"`
	Currency     string       `json:"currency" bun:",notnull"`
	Duration     int          `json:"duration" validate:"gte=0"`
	DurationUnit string       `json:"duration_unit" bun:",notnull" validate:"required"`
	CreatedAt    time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    bun.NullTime `json:"updated_at"`
}
