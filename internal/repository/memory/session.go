package memory

import (
	"context"
	"sync"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// SessionRepository implements repository.SessionRepository in process memory.
type SessionRepository struct {
	mu    sync.Mutex
	draft *domain.Draft
	theme domain.Theme
}

// NewSessionRepository creates an empty session repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// SaveDraft stores a copy of draft, replacing any previous one.
func (r *SessionRepository) SaveDraft(_ context.Context, draft *domain.Draft) error {
	d := *draft
	r.mu.Lock()
	r.draft = &d
	r.mu.Unlock()
	return nil
}

// LoadDraft returns the stored draft.
func (r *SessionRepository) LoadDraft(_ context.Context) (*domain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return nil, apperrors.NotFound("draft", domain.DraftStorageKey)
	}
	d := *r.draft
	return &d, nil
}

// DeleteDraft discards the stored draft.
func (r *SessionRepository) DeleteDraft(_ context.Context) error {
	r.mu.Lock()
	r.draft = nil
	r.mu.Unlock()
	return nil
}

// SaveTheme stores the theme preference.
func (r *SessionRepository) SaveTheme(_ context.Context, theme domain.Theme) error {
	r.mu.Lock()
	r.theme = theme
	r.mu.Unlock()
	return nil
}

// LoadTheme returns the stored theme preference.
func (r *SessionRepository) LoadTheme(_ context.Context) (domain.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.theme == "" {
		return "", apperrors.NotFound("setting", domain.ThemeStorageKey)
	}
	return r.theme, nil
}
