package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/wazohub/memberpay/db/models"
)

/* This init reflects the latest model fields when run on a fresh db.
When adding/removing columns in subsequent migrations use IfNotExists/IfExists,
otherwise re-running against an existing deployment will error. */
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.Member)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.MembershipType)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Payment)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.InvoiceSequence)(nil)).Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
