// Package repository isolates every storage concern behind narrow, id-keyed
// contracts backed by gorm. Services never touch *gorm.DB directly.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row addressed by id or name does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// crud implements id-keyed get/list/save/delete for a single table.
type crud[T any] struct {
	db    *gorm.DB
	name  string
	order string
}

func (c crud[T]) Get(ctx context.Context, id uint) (*T, error) {
	var value T
	if err := c.db.WithContext(ctx).First(&value, id).Error; err != nil {
		return nil, c.translate(err, id)
	}
	return &value, nil
}

func (c crud[T]) List(ctx context.Context) ([]T, error) {
	var values []T
	if err := c.db.WithContext(ctx).Order(c.order).Find(&values).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return values, nil
}

// Save inserts value when its primary key is zero and updates every column otherwise.
func (c crud[T]) Save(ctx context.Context, value *T) error {
	if err := c.db.WithContext(ctx).Save(value).Error; err != nil {
		if duplicateKey(c.db, err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, c.name)
		}
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func (c crud[T]) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return fmt.Errorf("delete %s %d: %w", c.name, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, c.name, id)
	}
	return nil
}

func (c crud[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count %s: %w", c.name, err)
	}
	return count > 0, nil
}

func (c crud[T]) translate(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, c.name, id)
	}
	return fmt.Errorf("load %s %d: %w", c.name, id, err)
}

// duplicateKey reports whether err is a unique index violation. Connections
// opened without TranslateError still return the raw driver error, so it is
// run through the dialector's translator here.
func duplicateKey(db *gorm.DB, err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		return errors.Is(translator.Translate(err), gorm.ErrDuplicatedKey)
	}
	return false
}
