// Package store guarda os cadastros. Cada cadastro vira um documento cuja chave é o próprio uid.
package store

import (
	"context"
	"errors"

	"malaria-intake/internal/models"
)

var (
	ErrNotFound = errors.New("submission not found")
	ErrEmptyID  = errors.New("submission uid is empty")
)

// SubmissionStore é o que os handlers e o CLI enxergam do banco
type SubmissionStore interface {
	// Save grava o registro com o uid como chave, numa única chamada
	Save(ctx context.Context, sub *models.Submission) error
	Get(ctx context.Context, uid string) (*models.Submission, error)
	// List devolve os mais recentes primeiro
	List(ctx context.Context, limit int) ([]*models.Submission, error)
	CollectionPath() string
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
