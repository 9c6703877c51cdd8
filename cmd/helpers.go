package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/registry"
	"github.com/doclens/doclens/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "doclens.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.Pool.MaxConns,
			MinConns: cfg.Store.Pool.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if cfg.Categories.File != "" {
		if err := reg.LoadFile(cfg.Categories.File); err != nil {
			if os.IsNotExist(eris.Cause(err)) {
				zap.L().Debug("no category file", zap.String("path", cfg.Categories.File))
				return reg, nil
			}
			return nil, err
		}
	}
	return reg, nil
}

func initEngine() *classify.Engine {
	return classify.NewEngine(
		classify.WithRiskBands(cfg.Engine.RiskBands),
		classify.WithEntityLimit(cfg.Engine.EntityLimit),
	)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
