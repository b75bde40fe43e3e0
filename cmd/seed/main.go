package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/config"
	pg "subsentry/internal/infra/db/postgres"
	"subsentry/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	subRepo := pg.NewSubscriptionRepo(pool)
	logger := zerolog.Nop()
	subUC := usecase.NewSubscriptionUseCase(subRepo, &logger)

	const demoUser = "demo-user"
	existing, err := subUC.List(ctx, demoUser)
	if err != nil {
		log.Fatalf("list subscriptions: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d subscriptions already present. No changes.\n", len(existing))
		return
	}

	now := time.Now()
	seed := []usecase.SubscriptionInput{
		{Name: "Netflix", Amount: "15.99", Currency: "USD", Cadence: "monthly", StartDate: "2024-01-15", Category: "entertainment"},
		{Name: "Spotify", Amount: "9.99", Currency: "EUR", Cadence: "monthly", StartDate: "2023-11-03", Category: "entertainment"},
		{Name: "iCloud", Amount: "0.99", Currency: "USD", Cadence: "monthly", StartDate: "2022-06-30", Category: "storage"},
		{Name: "Gym", Amount: "12.50", Currency: "GBP", Cadence: "weekly", StartDate: "2024-03-01", Category: "health"},
		{Name: "Domain", Amount: "14.00", Currency: "USD", Cadence: "yearly", StartDate: "2021-08-20", Category: "tools"},
	}

	for _, in := range seed {
		sub, err := subUC.Create(ctx, demoUser, in, now)
		if err != nil {
			log.Fatalf("seed %s: %v", in.Name, err)
		}
		fmt.Printf("  - %s %s %s/%s, next renewal %s\n",
			sub.Name, sub.Amount.StringFixed(2), sub.Currency, sub.Cadence,
			sub.NextRenewalDate.Format("2006-01-02"))
	}
	fmt.Printf("Seeded %d subscriptions for %s.\n", len(seed), demoUser)
}
