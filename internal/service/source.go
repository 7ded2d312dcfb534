package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/internal/repository"
	"github.com/larsreed/recipes-sub000/models"
)

// SourceStore is the persistence contract for sources.
type SourceStore interface {
	Get(ctx context.Context, id uint) (*models.Source, error)
	List(ctx context.Context) ([]models.Source, error)
	Save(ctx context.Context, source *models.Source) error
	Delete(ctx context.Context, id uint) error
	FindByName(ctx context.Context, name string) (*models.Source, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

// SourceService manages sources and keeps their names unique.
type SourceService struct {
	sources SourceStore
}

func NewSourceService(sources SourceStore) *SourceService {
	return &SourceService{sources: sources}
}

func (s *SourceService) List(ctx context.Context) ([]models.Source, error) {
	return s.sources.List(ctx)
}

func (s *SourceService) Get(ctx context.Context, id uint) (*models.Source, error) {
	return s.sources.Get(ctx, id)
}

func (s *SourceService) Create(ctx context.Context, source *models.Source) (*models.Source, error) {
	source.ID = 0
	normalizeSource(source)
	if err := s.validate(ctx, source, 0); err != nil {
		return nil, err
	}
	if err := s.sources.Save(ctx, source); err != nil {
		return nil, nameTaken(source.Name, err)
	}
	applog.Debug(ctx, "source created", "id", source.ID, "name", source.Name)
	return source, nil
}

// Update replaces name and authors of source id. A name already used by a
// different source is rejected and the stored source is left as it was.
func (s *SourceService) Update(ctx context.Context, id uint, incoming *models.Source) (*models.Source, error) {
	existing, err := s.sources.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalizeSource(incoming)
	if err := s.validate(ctx, incoming, id); err != nil {
		return nil, err
	}

	existing.Name = incoming.Name
	existing.Authors = incoming.Authors
	if err := s.sources.Save(ctx, existing); err != nil {
		return nil, nameTaken(existing.Name, err)
	}
	applog.Debug(ctx, "source updated", "id", id, "name", existing.Name)
	return existing, nil
}

// Delete removes only the source row. Recipes referencing it keep the now
// dangling id until RecipeService.NullifySource is called.
func (s *SourceService) Delete(ctx context.Context, id uint) error {
	if err := s.sources.Delete(ctx, id); err != nil {
		return err
	}
	applog.Debug(ctx, "source deleted", "id", id)
	return nil
}

// GetOrCreate returns the source called name, creating it when missing.
func (s *SourceService) GetOrCreate(ctx context.Context, name, authors string) (*models.Source, bool, error) {
	existing, err := s.sources.FindByName(ctx, strings.TrimSpace(name))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	created, err := s.Create(ctx, &models.Source{Name: name, Authors: authors})
	var validation *ValidationError
	if errors.As(err, &validation) && validation.Conflict {
		// created concurrently by someone else
		existing, findErr := s.sources.FindByName(ctx, strings.TrimSpace(name))
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *SourceService) validate(ctx context.Context, source *models.Source, selfID uint) error {
	if source.Name == "" {
		return invalid("name", "name is required")
	}
	taken, err := s.sources.ExistsByName(ctx, source.Name, selfID)
	if err != nil {
		return err
	}
	if taken {
		return nameTaken(source.Name, repository.ErrDuplicate)
	}
	return nil
}

// nameTaken turns a unique name violation from the store into a conflict.
// Two writers can both pass validate before either has saved.
func nameTaken(name string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("name", fmt.Sprintf("a source named %q already exists", name))
	}
	return err
}

func normalizeSource(source *models.Source) {
	source.Name = strings.TrimSpace(source.Name)
	source.Authors = strings.TrimSpace(source.Authors)
}
