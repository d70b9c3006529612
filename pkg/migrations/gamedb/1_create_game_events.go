package gamedb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/liptlabs/lipt-gateway/pkg/eventstore"
	"github.com/liptlabs/lipt-gateway/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		model := (*eventstore.GameEventDao)(nil)

		if err := migrations.CreateSchema(ctx, db, model); err != nil {
			return err
		}

		if err := migrations.CreateModelIndexes(ctx, db, model,
			"user_address", "event_type", "block_number"); err != nil {
			return err
		}

		// One row per on-chain log; re-indexing must be idempotent.
		_, err := db.NewCreateIndex().
			Model(model).
			Index("idx_game_events_tx_hash_log_index").
			Column("tx_hash", "log_index").
			Unique().
			IfNotExists().
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		return migrations.DropTables(ctx, db, (*eventstore.GameEventDao)(nil))
	})
}
