package store

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"

	"malaria-intake/internal/config"
)

// Open cria o store do driver configurado. O close devolvido libera o client/conexão.
func Open(ctx context.Context, cfg *config.Config, app *firebase.App) (SubmissionStore, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverFirestore:
		if app == nil {
			return nil, nil, errors.New("firestore driver requires an initialized firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("get firestore client: %w", err)
		}
		s, err := NewFirestoreStore(client, cfg.CollectionPath())
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return s, client.Close, nil

	case config.DriverMySQL:
		db, err := config.ConnectDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get sql db: %w", err)
		}
		s := NewGormStore(db, cfg.CollectionPath())
		if err := s.AutoMigrate(); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate submissions table: %w", err)
		}
		return s, sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
