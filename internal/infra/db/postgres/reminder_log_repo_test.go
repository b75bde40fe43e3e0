//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"subsentry/internal/domain/model"
)

func TestReminderLogRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewReminderLogRepo(testPool)
	subRepo := NewSubscriptionRepo(testPool)
	renewal := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("should record a sent reminder exactly once per renewal date", func(t *testing.T) {
		cleanup(t)
		sub := newTestSub(t, "u1", model.CadenceMonthly, renewal)
		if err := subRepo.Save(ctx, sub); err != nil {
			t.Fatalf("failed to save subscription: %v", err)
		}

		exists, err := repo.Exists(ctx, sub.ID, renewal)
		if err != nil {
			t.Fatalf("failed to check: %v", err)
		}
		if exists {
			t.Fatal("expected no log entry before saving")
		}

		if err := repo.Save(ctx, ulid.Make().String(), sub.ID, sub.UserID, renewal); err != nil {
			t.Fatalf("failed to save log: %v", err)
		}
		// A second save for the same renewal date must be a silent no-op.
		if err := repo.Save(ctx, ulid.Make().String(), sub.ID, sub.UserID, renewal); err != nil {
			t.Fatalf("conflicting save must not error: %v", err)
		}

		exists, err = repo.Exists(ctx, sub.ID, renewal)
		if err != nil {
			t.Fatalf("failed to check: %v", err)
		}
		if !exists {
			t.Error("expected the log entry to exist")
		}
	})

	t.Run("should keep renewal dates independent", func(t *testing.T) {
		cleanup(t)
		sub := newTestSub(t, "u1", model.CadenceMonthly, renewal)
		if err := subRepo.Save(ctx, sub); err != nil {
			t.Fatalf("failed to save subscription: %v", err)
		}
		if err := repo.Save(ctx, ulid.Make().String(), sub.ID, sub.UserID, renewal); err != nil {
			t.Fatalf("failed to save log: %v", err)
		}

		nextMonth := renewal.AddDate(0, 1, 0)
		exists, err := repo.Exists(ctx, sub.ID, nextMonth)
		if err != nil {
			t.Fatalf("failed to check: %v", err)
		}
		if exists {
			t.Error("a reminder for one renewal date must not block the next")
		}
	})
}
