package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/larsreed/recipes-sub000/models"
)

// RecipeRepository stores recipes together with the child rows they own.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Source").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Subrecipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		})
}

func (r *RecipeRepository) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.withChildren(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.withChildren(ctx).Order("name asc, id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (r *RecipeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count recipes: %w", err)
	}
	return count > 0, nil
}

// FindBySourceID returns every recipe referencing sourceID, without children.
func (r *RecipeRepository) FindBySourceID(ctx context.Context, sourceID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Where("source_id = ?", sourceID).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("find recipes by source %d: %w", sourceID, err)
	}
	return recipes, nil
}

// Create inserts the recipe and all of its children in one transaction.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return syncChildren(tx, recipe)
	})
}

// Update overwrites the recipe's columns and makes each owned table match the
// recipe's collections exactly: rows no longer listed are deleted first, then
// listed rows are updated in place or inserted. Rows that survive keep their id.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe %d: %w", recipe.ID, err)
		}
		return syncChildren(tx, recipe)
	})
}

// SaveAll persists the columns of every recipe in a single transaction.
// Child collections are left untouched.
func (r *RecipeRepository) SaveAll(ctx context.Context, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range recipes {
			if err := tx.Omit(clause.Associations).Save(&recipes[i]).Error; err != nil {
				return fmt.Errorf("save recipe %d: %w", recipes[i].ID, err)
			}
		}
		return nil
	})
}

// Delete removes the recipe and every row it owns. Links from other recipes
// that use this one as a subrecipe are not touched.
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&models.Ingredient{}, &models.Attachment{}, &models.SubrecipeLink{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("delete children of recipe %d: %w", id, err)
			}
		}
		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete recipe %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: recipe %d", ErrNotFound, id)
		}
		return nil
	})
}

func syncChildren(tx *gorm.DB, recipe *models.Recipe) error {
	if err := syncOwned(tx, recipe.ID, recipe.Ingredients,
		func(i *models.Ingredient) *uint { return &i.ID },
		func(i *models.Ingredient) *uint { return &i.RecipeID },
	); err != nil {
		return fmt.Errorf("sync ingredients of recipe %d: %w", recipe.ID, err)
	}
	if err := syncOwned(tx, recipe.ID, recipe.Attachments,
		func(a *models.Attachment) *uint { return &a.ID },
		func(a *models.Attachment) *uint { return &a.RecipeID },
	); err != nil {
		return fmt.Errorf("sync attachments of recipe %d: %w", recipe.ID, err)
	}
	if err := syncOwned(tx, recipe.ID, recipe.Subrecipes,
		func(l *models.SubrecipeLink) *uint { return &l.ID },
		func(l *models.SubrecipeLink) *uint { return &l.RecipeID },
	); err != nil {
		return fmt.Errorf("sync subrecipes of recipe %d: %w", recipe.ID, err)
	}
	return nil
}

// syncOwned deletes the owner's rows missing from rows, then saves rows.
func syncOwned[T any](tx *gorm.DB, ownerID uint, rows []T, idOf, ownerOf func(*T) *uint) error {
	keep := make([]uint, 0, len(rows))
	for i := range rows {
		if id := *idOf(&rows[i]); id != 0 {
			keep = append(keep, id)
		}
	}

	stale := tx.Where("recipe_id = ?", ownerID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(new(T)).Error; err != nil {
		return err
	}

	for i := range rows {
		*ownerOf(&rows[i]) = ownerID
		if err := tx.Save(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
