package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/recetario-api/internal/application/catalog"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
	"github.com/jhoicas/recetario-api/internal/infrastructure/memory"
	"github.com/jhoicas/recetario-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/recetario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recetario-api/pkg/config"
	"github.com/jhoicas/recetario-api/pkg/logger"
)

// storage repositorios y runner transaccional del backend elegido con DB_DRIVER.
type storage struct {
	categories repository.CategoryRepository
	recipes    repository.RecipeRepository
	users      repository.UserRepository
	tx         catalog.TxRunner
	close      func(context.Context)
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Str("driver", cfg.DB.Driver).Msg("almacenamiento listo")
		return &storage{
			categories: postgres.NewCategoryRepository(pool),
			recipes:    postgres.NewRecipeRepository(pool),
			users:      postgres.NewUserRepository(pool),
			tx:         postgres.NewTxRunner(pool),
			close:      func(context.Context) { pool.Close() },
		}, nil

	case config.DriverMongo:
		client, err := mongodb.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("driver", cfg.DB.Driver).Str("database", cfg.Mongo.Database).Msg("almacenamiento listo")
		return &storage{
			categories: mongodb.NewCategoryRepository(db),
			recipes:    mongodb.NewRecipeRepository(db),
			users:      mongodb.NewUserRepository(db),
			tx:         mongodb.NewTxRunner(client, db),
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.Error().Err(err).Msg("desconexión de MongoDB")
				}
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			categories: store.Categories(),
			recipes:    store.Recipes(),
			users:      store.Users(),
			tx:         store,
			close:      func(context.Context) {},
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER desconocido %q", cfg.DB.Driver)
}
