package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/repository"
)

var _ repository.ReminderLogRepository = (*reminderLogRepo)(nil)

type reminderLogRepo struct {
	pool *pgxpool.Pool
}

func NewReminderLogRepo(pool *pgxpool.Pool) *reminderLogRepo {
	return &reminderLogRepo{pool: pool}
}

func (r *reminderLogRepo) Save(ctx context.Context, id, subscriptionID, userID string, renewalDate time.Time) error {
	const q = `
INSERT INTO reminder_log (id, subscription_id, user_id, renewal_date, sent_at)
VALUES ($1,$2,$3,$4,now())
ON CONFLICT (subscription_id, renewal_date) DO NOTHING;`
	if _, err := r.pool.Exec(ctx, q, id, subscriptionID, userID, model.DateOnly(renewalDate)); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *reminderLogRepo) Exists(ctx context.Context, subscriptionID string, renewalDate time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM reminder_log
   WHERE subscription_id=$1 AND renewal_date=$2
);`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, subscriptionID, model.DateOnly(renewalDate)).Scan(&exists); err != nil {
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}
