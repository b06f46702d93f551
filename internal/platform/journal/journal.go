// Package journal persists every dispatched store command to Postgres.
// The store reducer itself performs no I/O; journaling happens in an
// observer after the snapshot swap, so a journal outage never blocks or
// corrupts in-memory state.
package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinexa/backoffice/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS command_journal (
	id            BIGSERIAL PRIMARY KEY,
	correlation_id TEXT NOT NULL,
	collection    TEXT NOT NULL,
	op            TEXT NOT NULL,
	payload       JSONB,
	applied       BOOLEAN NOT NULL,
	reject_reason TEXT,
	recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Journal struct {
	pool    *pgxpool.Pool
	logger  zerolog.Logger
	timeout time.Duration
}

func New(pool *pgxpool.Pool, logger zerolog.Logger) *Journal {
	return &Journal{pool: pool, logger: logger, timeout: 5 * time.Second}
}

// EnsureSchema creates the journal table when missing.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	_, err := j.pool.Exec(ctx, schema)
	return err
}

// Observer returns the store observer recording dispatches. Write failures
// are logged and swallowed; the journal is an audit trail, not a
// transaction log.
func (j *Journal) Observer() store.Observer {
	return func(cmd store.Command, res store.Result, _ store.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		payload, err := json.Marshal(cmd.Payload)
		if err != nil {
			payload = nil
		}
		var reason *string
		if res.Err != nil {
			msg := res.Err.Error()
			reason = &msg
		}
		_, err = j.pool.Exec(ctx,
			`INSERT INTO command_journal (correlation_id, collection, op, payload, applied, reject_reason)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			cmd.CorrelationID, string(cmd.Collection), string(cmd.Op), payload, res.Err == nil, reason)
		if err != nil {
			j.logger.Error().Err(err).
				Str("correlation_id", cmd.CorrelationID).
				Str("collection", string(cmd.Collection)).
				Str("op", string(cmd.Op)).
				Msg("journal write failed")
		}
	}
}
