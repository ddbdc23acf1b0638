package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// SessionService keeps the unsaved product draft and the theme preference.
// Both are conveniences: storage failures are logged and never surface to
// the caller.
type SessionService struct {
	repo   repository.SessionRepository
	logger *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(repo repository.SessionRepository, logger *slog.Logger) *SessionService {
	return &SessionService{repo: repo, logger: logger}
}

// SaveDraft stores draft, replacing any previous one.
func (s *SessionService) SaveDraft(ctx context.Context, draft *domain.Draft) {
	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		s.logger.WarnContext(ctx, "failed to save draft", slog.String("error", err.Error()))
	}
}

// LoadDraft returns the stored draft. It reports false when there is none or
// when the draft holds nothing worth restoring.
func (s *SessionService) LoadDraft(ctx context.Context) (*domain.Draft, bool) {
	draft, err := s.repo.LoadDraft(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to load draft", slog.String("error", err.Error()))
		}
		return nil, false
	}
	if !draft.HasContent() {
		return nil, false
	}
	return draft, true
}

// DiscardDraft removes the stored draft.
func (s *SessionService) DiscardDraft(ctx context.Context) {
	if err := s.repo.DeleteDraft(ctx); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to discard draft", slog.String("error", err.Error()))
	}
}

// SetTheme stores the theme preference.
func (s *SessionService) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.IsValid() {
		return apperrors.InvalidInput("theme must be dark or light")
	}
	if err := s.repo.SaveTheme(ctx, theme); err != nil {
		s.logger.WarnContext(ctx, "failed to save theme", slog.String("error", err.Error()))
	}
	return nil
}

// Theme returns the stored theme, or the one matching the platform
// preference when none is stored.
func (s *SessionService) Theme(ctx context.Context, prefersDark bool) domain.Theme {
	theme, err := s.repo.LoadTheme(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to load theme", slog.String("error", err.Error()))
		}
		return domain.ThemeFor(prefersDark)
	}
	return theme
}
