package commands

import (
	"context"

	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
)

// ResetDB drops every collection of the configured database. USE WITH CAUTION.
func ResetDB(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Warn("dropping every collection", "database", cfg.GetStringOrDef("db.mongo.name", "dinein"))

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Stop(ctx)

	if err := store.Drop(ctx); err != nil {
		return err
	}

	log.Info("database reset")
	return nil
}
