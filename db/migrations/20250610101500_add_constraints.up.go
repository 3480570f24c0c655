package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- invoice numbers are assigned exactly once
				CREATE UNIQUE INDEX IF NOT EXISTS payments_invoice_number_idx
				ON payments (invoice_number);

			-- the gateway reference is the reconciliation join key, at most one record per reference
				CREATE UNIQUE INDEX IF NOT EXISTS payments_gateway_reference_idx
				ON payments (gateway_reference)
				WHERE gateway_reference IS NOT NULL;

			-- terminal states carry a settlement timestamp
				ALTER TABLE payments
				ADD CONSTRAINT check_settled_at_terminal
				CHECK (status = 'pending' OR settled_at IS NOT NULL);

			-- a payment can not be worth nothing
				ALTER TABLE payments
				ADD CONSTRAINT check_positive_amount
				CHECK (amount > 0);
		`
		_, err := db.Exec(sql)
		return err
	}, nil)
}
