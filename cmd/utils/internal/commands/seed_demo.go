package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/dinein/cmd/utils/internal/seeding"
	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
)

const demoTokenTTL = 7 * 24 * time.Hour

// SeedDemo creates the demo restaurant once and prints tokens for its users
// when a JWT secret is configured.
func SeedDemo(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Stop(ctx)

	applied, err := store.SeedApplied(ctx, seeding.DemoSeedID)
	if err != nil {
		return err
	}
	if applied {
		log.Info("demo seed already applied, skipping")
		return nil
	}

	demo, err := seeding.Seed(ctx, services(cfg, store, log))
	if err != nil {
		if demo != nil {
			log.Warn("demo seed failed half way, run clear-demo before retrying", "restaurant_id", demo.Restaurant.ID.String())
			_ = store.MarkSeed(ctx, seeding.DemoSeedID, "partial demo restaurant", demo.Restaurant.ID)
		}
		return err
	}

	if err := store.MarkSeed(ctx, seeding.DemoSeedID, "demo restaurant with staff, menu, tables, pips and orders", demo.Restaurant.ID); err != nil {
		log.Warn("cannot mark demo seed as applied", "error", err)
	}

	log.Info("demo restaurant seeded",
		"restaurant_id", demo.Restaurant.ID.String(),
		"number", demo.Restaurant.Number,
		"dishes", len(demo.Dishes),
		"tables", len(demo.Tables),
		"orders", len(demo.Orders),
	)

	secret := cfg.GetStringOrDef("auth.jwt.secret", "")
	if secret == "" {
		log.Info("auth.jwt.secret not set, skipping demo tokens")
		return nil
	}

	verifier := auth.NewVerifier(secret, cfg.GetStringOrDef("auth.jwt.issuer", ""))
	for _, sub := range []string{seeding.DemoOwnerID, seeding.DemoChefID, seeding.DemoServerID, seeding.DemoCustomerID} {
		token, err := verifier.Issue(sub, nil, demoTokenTTL)
		if err != nil {
			return fmt.Errorf("cannot issue token for %s: %w", sub, err)
		}
		fmt.Printf("%-14s %s\n", sub, token)
	}
	return nil
}
