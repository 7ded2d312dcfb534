package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/larsreed/recipes-sub000/models"
)

// SourceRepository stores recipe sources.
type SourceRepository struct {
	crud[models.Source]
}

func NewSourceRepository(db *gorm.DB) *SourceRepository {
	return &SourceRepository{crud: crud[models.Source]{db: db, name: "source", order: "name asc, id asc"}}
}

// FindByName returns the source with exactly the given name.
func (r *SourceRepository) FindByName(ctx context.Context, name string) (*models.Source, error) {
	var source models.Source
	err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: source %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("find source %q: %w", name, err)
	}
	return &source, nil
}

// ExistsByName reports whether a source other than excludeID already uses name.
// Pass 0 to check every source.
func (r *SourceRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Source{}).Where("name = ?", strings.TrimSpace(name))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count sources named %q: %w", name, err)
	}
	return count > 0, nil
}
