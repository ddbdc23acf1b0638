package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/breaker"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

const keyPrefix = "inventory:console:"

// SessionRepository implements repository.SessionRepository using Redis. Every
// call goes through a circuit breaker so an unreachable Redis fails fast.
type SessionRepository struct {
	client   redis.UniversalClient
	breaker  *breaker.Breaker
	draftTTL time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository. Drafts
// expire after draftTTL; the theme preference does not expire.
func NewSessionRepository(client redis.UniversalClient, cb *breaker.Breaker, draftTTL time.Duration) *SessionRepository {
	return &SessionRepository{
		client:   client,
		breaker:  cb,
		draftTTL: draftTTL,
	}
}

// IsSuccessful classifies errors for the session breaker: a missing key is a
// normal answer, not a Redis failure.
func IsSuccessful(err error) bool {
	return err == nil || errors.Is(err, apperrors.ErrNotFound)
}

// SaveDraft persists the draft with the configured TTL.
func (r *SessionRepository) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	return r.run(func() error {
		if err := r.client.Set(ctx, keyPrefix+domain.DraftStorageKey, data, r.draftTTL).Err(); err != nil {
			return fmt.Errorf("redis set draft: %w", err)
		}
		return nil
	})
}

// LoadDraft retrieves the stored draft.
func (r *SessionRepository) LoadDraft(ctx context.Context) (*domain.Draft, error) {
	data, err := breaker.Do(r.breaker, func() ([]byte, error) {
		data, err := r.client.Get(ctx, keyPrefix+domain.DraftStorageKey).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, apperrors.NotFound("draft", domain.DraftStorageKey)
			}
			return nil, fmt.Errorf("redis get draft: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, r.unavailable(err)
	}

	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

// DeleteDraft removes the stored draft.
func (r *SessionRepository) DeleteDraft(ctx context.Context) error {
	return r.run(func() error {
		if err := r.client.Del(ctx, keyPrefix+domain.DraftStorageKey).Err(); err != nil {
			return fmt.Errorf("redis del draft: %w", err)
		}
		return nil
	})
}

// SaveTheme persists the theme preference.
func (r *SessionRepository) SaveTheme(ctx context.Context, theme domain.Theme) error {
	return r.run(func() error {
		if err := r.client.Set(ctx, keyPrefix+domain.ThemeStorageKey, string(theme), 0).Err(); err != nil {
			return fmt.Errorf("redis set theme: %w", err)
		}
		return nil
	})
}

// LoadTheme retrieves the theme preference.
func (r *SessionRepository) LoadTheme(ctx context.Context) (domain.Theme, error) {
	val, err := breaker.Do(r.breaker, func() (string, error) {
		val, err := r.client.Get(ctx, keyPrefix+domain.ThemeStorageKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return "", apperrors.NotFound("setting", domain.ThemeStorageKey)
			}
			return "", fmt.Errorf("redis get theme: %w", err)
		}
		return val, nil
	})
	if err != nil {
		return "", r.unavailable(err)
	}

	theme := domain.Theme(val)
	if !theme.IsValid() {
		return "", apperrors.NotFound("setting", domain.ThemeStorageKey)
	}
	return theme, nil
}

func (r *SessionRepository) run(fn func() error) error {
	if err := breaker.Run(r.breaker, fn); err != nil {
		return r.unavailable(err)
	}
	return nil
}

// unavailable maps a refused call to an Unavailable error and passes every
// other error through.
func (r *SessionRepository) unavailable(err error) error {
	if breaker.IsOpen(err) {
		return apperrors.Unavailable("session store "+r.breaker.Name()+" is unavailable", err)
	}
	return err
}
