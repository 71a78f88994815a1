// Package app wires the MongoDB stores and the request services from config.
package app

import (
	"context"

	"customize-svc/internal/config"
	"customize-svc/internal/service"
	"customize-svc/internal/store"
)

type App struct {
	DB     *store.MongoDB
	Events *service.EventService
	Tours  *service.TourPackageService
}

// New connects to MongoDB, prepares both collections and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := store.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}

	// Stores create their indexes on startup
	eventStore, err := store.NewEventStore(ctx, db)
	if err != nil {
		db.Close(context.Background())
		return nil, err
	}
	tourStore, err := store.NewTourPackageStore(ctx, db)
	if err != nil {
		db.Close(context.Background())
		return nil, err
	}

	// Services
	return &App{
		DB:     db,
		Events: service.NewEventService(eventStore, cfg.ListLimit),
		Tours:  service.NewTourPackageService(tourStore, cfg.ListLimit),
	}, nil
}

func (a *App) Close(ctx context.Context) error {
	return a.DB.Close(ctx)
}
