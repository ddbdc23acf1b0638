package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// CategoryService manages the category registry and keeps products and the
// console filter consistent with it.
type CategoryService struct {
	store    repository.Store
	session  *view.Session
	producer *event.Producer
	notifier *notify.Queue
	logger   *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	store repository.Store,
	session *view.Session,
	producer *event.Producer,
	notifier *notify.Queue,
	logger *slog.Logger,
) *CategoryService {
	return &CategoryService{
		store:    store,
		session:  session,
		producer: producer,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns every registered category with its product count, in registry
// order.
func (s *CategoryService) List(ctx context.Context) ([]domain.CategoryCount, error) {
	var out []domain.CategoryCount
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		names, err := tx.Categories().List(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		counts, err := tx.Products().CountByCategory(ctx)
		if err != nil {
			return fmt.Errorf("count products by category: %w", err)
		}
		out = make([]domain.CategoryCount, len(names))
		for i, name := range names {
			out[i] = domain.CategoryCount{Name: name, Count: counts[name]}
		}
		return nil
	})
	return out, err
}

// Names returns the registered category names in order.
func (s *CategoryService) Names(ctx context.Context) ([]string, error) {
	names, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// Add registers a new category. Names differing only in case are duplicates.
func (s *CategoryService) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.InvalidInput("category name is required")
	}

	if err := s.store.Categories().Add(ctx, name); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.notifier.Warning(fmt.Sprintf("Category \"%s\" already exists.", name))
		}
		return err
	}

	s.publish(ctx, event.CategoryChangedData{Change: event.CategoryAdded, Name: name})
	s.notifier.Success(fmt.Sprintf("Category \"%s\" added.", name))
	s.logger.InfoContext(ctx, "category added", slog.String("category", name))
	return nil
}

// Rename replaces oldName with newName in the registry and on every product
// filed under it. An active console filter on oldName follows the rename.
func (s *CategoryService) Rename(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.InvalidInput("category name is required")
	}

	var moved int
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		if err := tx.Categories().Rename(ctx, oldName, newName); err != nil {
			return err
		}
		var err error
		moved, err = tx.Products().ReassignCategory(ctx, oldName, newName)
		if err != nil {
			return fmt.Errorf("reassign products: %w", err)
		}
		s.session.RetargetCategory(oldName, newName)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.notifier.Warning(fmt.Sprintf("Category \"%s\" already exists.", newName))
		}
		return err
	}

	s.publish(ctx, event.CategoryChangedData{
		Change:           event.CategoryRenamed,
		Name:             newName,
		PreviousName:     oldName,
		ProductsAffected: moved,
	})
	s.notifier.Success(fmt.Sprintf("Category \"%s\" updated to \"%s\".", oldName, newName))
	s.logger.InfoContext(ctx, "category renamed",
		slog.String("from", oldName),
		slog.String("to", newName),
		slog.Int("products", moved),
	)
	return nil
}

// Remove deletes an unused category. A category that still has products is
// left alone and reported as a conflict.
func (s *CategoryService) Remove(ctx context.Context, name string) error {
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		counts, err := tx.Products().CountByCategory(ctx)
		if err != nil {
			return fmt.Errorf("count products by category: %w", err)
		}
		if n := counts[name]; n > 0 {
			return apperrors.Conflict(fmt.Sprintf("category %q is used by %d products", name, n))
		}
		if err := tx.Categories().Remove(ctx, name); err != nil {
			return err
		}
		s.session.ResetCategory(name)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.notifier.Error(fmt.Sprintf("Cannot delete \"%s\" as it's in use.", name))
		}
		return err
	}

	s.publish(ctx, event.CategoryChangedData{Change: event.CategoryRemoved, Name: name})
	s.notifier.Success(fmt.Sprintf("Category \"%s\" deleted.", name))
	s.logger.InfoContext(ctx, "category removed", slog.String("category", name))
	return nil
}

func (s *CategoryService) publish(ctx context.Context, data event.CategoryChangedData) {
	if err := s.producer.PublishCategoryChanged(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.changed event",
			slog.String("category", data.Name),
			slog.String("error", err.Error()),
		)
	}
}
