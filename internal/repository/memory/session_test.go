package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

func TestSessionRepository_Draft(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	_, err := repo.LoadDraft(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	d := &domain.Draft{Name: "Lamp"}
	require.NoError(t, repo.SaveDraft(ctx, d))
	d.Name = "changed"

	got, err := repo.LoadDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)

	require.NoError(t, repo.DeleteDraft(ctx))
	_, err = repo.LoadDraft(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Theme(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	_, err := repo.LoadTheme(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.SaveTheme(ctx, domain.ThemeDark))
	got, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got)
}
