package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// ErrCredentialsNotFound: sem o arquivo da conta de serviço não dá pra conectar
var ErrCredentialsNotFound = errors.New("firebase credentials file not found")

// NewFirebaseApp inicializa o Firebase Admin SDK a partir do arquivo de credenciais
func NewFirebaseApp(ctx context.Context, cfg *Config) (*firebase.App, error) {
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, cfg.CredentialsFile)
		}
		return nil, fmt.Errorf("stat credentials file: %w", err)
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	return app, nil
}
