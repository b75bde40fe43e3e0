package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema creates the tables the engine reads and writes. Kept idempotent so
// the seed command and integration tests can apply it repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS subscriptions (
    id                UUID PRIMARY KEY,
    user_id           TEXT NOT NULL,
    name              TEXT NOT NULL,
    amount            NUMERIC(12,2) NOT NULL CHECK (amount > 0),
    currency          TEXT NOT NULL,
    cadence           TEXT NOT NULL CHECK (cadence IN ('weekly','monthly','yearly')),
    start_date        DATE NOT NULL,
    next_renewal_date DATE NOT NULL,
    status            TEXT NOT NULL CHECK (status IN ('active','paused','cancelled')),
    category          TEXT NOT NULL DEFAULT '',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions (user_id);
CREATE INDEX IF NOT EXISTS idx_subscriptions_renewal ON subscriptions (status, next_renewal_date);

CREATE TABLE IF NOT EXISTS reminder_log (
    id              TEXT PRIMARY KEY,
    subscription_id UUID NOT NULL REFERENCES subscriptions(id) ON DELETE CASCADE,
    user_id         TEXT NOT NULL,
    renewal_date    DATE NOT NULL,
    sent_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (subscription_id, renewal_date)
);
`

// EnsureSchema applies the schema against the given pool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
