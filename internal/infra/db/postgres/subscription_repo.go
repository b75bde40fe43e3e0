package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/repository"
)

// Ensure subscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

const subColumns = `id, user_id, name, amount::text, currency, cadence, start_date, next_renewal_date, status, category, created_at, updated_at`

func (r *subscriptionRepo) Save(ctx context.Context, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (
  id, user_id, name, amount, currency, cadence, start_date, next_renewal_date, status, category, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  name=$3, amount=$4, currency=$5, cadence=$6, start_date=$7, next_renewal_date=$8, status=$9, category=$10, updated_at=$12;`

	_, err := r.pool.Exec(ctx, q,
		s.ID, s.UserID, s.Name, s.Amount.String(), string(s.Currency), string(s.Cadence),
		s.StartDate, s.NextRenewalDate, string(s.Status), s.Category, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return domain.ErrInvalidArgument
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) FindByID(ctx context.Context, id string) (*model.Subscription, error) {
	const q = `
SELECT ` + subColumns + `
  FROM subscriptions
 WHERE id=$1;`
	return r.queryOne(ctx, q, id)
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, userID string) ([]model.Subscription, error) {
	const q = `
SELECT ` + subColumns + `
  FROM subscriptions
 WHERE user_id=$1
 ORDER BY created_at ASC;`
	return r.queryMany(ctx, q, userID)
}

func (r *subscriptionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id=$1;`, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) ListStaleRenewals(ctx context.Context, now time.Time) ([]model.Subscription, error) {
	const q = `
SELECT ` + subColumns + `
  FROM subscriptions
 WHERE status='active' AND next_renewal_date <= $1
 ORDER BY next_renewal_date ASC;`
	return r.queryMany(ctx, q, model.DateOnly(now))
}

func (r *subscriptionRepo) ListRenewingOn(ctx context.Context, date time.Time) ([]model.Subscription, error) {
	const q = `
SELECT ` + subColumns + `
  FROM subscriptions
 WHERE status='active' AND next_renewal_date = $1
 ORDER BY created_at ASC;`
	return r.queryMany(ctx, q, model.DateOnly(date))
}

func (r *subscriptionRepo) UpdateNextRenewal(ctx context.Context, id string, next time.Time) error {
	const q = `
UPDATE subscriptions
   SET next_renewal_date=$2, updated_at=now()
 WHERE id=$1;`
	tag, err := r.pool.Exec(ctx, q, id, model.DateOnly(next))
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) queryOne(ctx context.Context, q string, args ...interface{}) (*model.Subscription, error) {
	row := r.pool.QueryRow(ctx, q, args...)
	s, err := scanSub(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *subscriptionRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]model.Subscription, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []model.Subscription
	for rows.Next() {
		s, err := scanSub(rows)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

// scanSub reads one subscription row. Amount is selected as text and parsed
// into a decimal to avoid float drift on numeric columns.
func scanSub(row pgx.Row) (*model.Subscription, error) {
	var (
		s        model.Subscription
		amount   string
		currency string
		cadence  string
		status   string
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &amount, &currency, &cadence,
		&s.StartDate, &s.NextRenewalDate, &status, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	s.Amount = amt
	s.Currency = model.Currency(currency)
	s.Cadence = model.Cadence(cadence)
	s.Status = model.Status(status)
	return &s, nil
}
