package handlers

import (
	"context"
	"sync"

	"malaria-intake/internal/models"
	"malaria-intake/internal/store"
)

// fakeStore guarda em memória; SaveFunc permite simular falha do banco
type fakeStore struct {
	mu       sync.Mutex
	docs     map[string]*models.Submission
	keys     []string
	SaveFunc func(ctx context.Context, sub *models.Submission) error
	ListFunc func(ctx context.Context, limit int) ([]*models.Submission, error)
}

var _ store.SubmissionStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]*models.Submission{}}
}

func (f *fakeStore) Save(ctx context.Context, sub *models.Submission) error {
	if f.SaveFunc != nil {
		if err := f.SaveFunc(ctx, sub); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[sub.UID] = sub
	f.keys = append(f.keys, sub.UID)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, uid string) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.docs[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return sub, nil
}

func (f *fakeStore) List(ctx context.Context, limit int) ([]*models.Submission, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, limit)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Submission, 0, len(f.keys))
	for i := len(f.keys) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.docs[f.keys[i]])
	}
	return out, nil
}

func (f *fakeStore) CollectionPath() string {
	return "artifacts/testapp/users"
}

type notifierFunc func(ctx context.Context, sub *models.Submission) error

func (n notifierFunc) NotifySubmission(ctx context.Context, sub *models.Submission) error {
	return n(ctx, sub)
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (g generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return g(ctx, prompt)
}
