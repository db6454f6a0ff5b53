// Package notify avisa sistemas externos quando um cadastro novo é salvo.
package notify

import (
	"context"
	"errors"

	"malaria-intake/internal/models"
)

type Notifier interface {
	NotifySubmission(ctx context.Context, sub *models.Submission) error
}

// Multi chama todos os notifiers e junta os erros; um falhar não impede os outros
type Multi []Notifier

func (m Multi) NotifySubmission(ctx context.Context, sub *models.Submission) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifySubmission(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
