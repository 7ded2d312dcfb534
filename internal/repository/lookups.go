package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/larsreed/recipes-sub000/models"
)

// ConversionRepository stores measure conversions.
type ConversionRepository struct {
	crud[models.Conversion]
}

func NewConversionRepository(db *gorm.DB) *ConversionRepository {
	return &ConversionRepository{crud: crud[models.Conversion]{db: db, name: "conversion", order: "from_measure asc, to_measure asc"}}
}

// FindPair returns the conversion from one measure to another. Measures are
// compared case-insensitively.
func (r *ConversionRepository) FindPair(ctx context.Context, from, to string) (*models.Conversion, error) {
	var conversion models.Conversion
	err := r.db.WithContext(ctx).
		Where("lower(from_measure) = lower(?) AND lower(to_measure) = lower(?)", from, to).
		First(&conversion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: conversion %s -> %s", ErrNotFound, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("find conversion %s -> %s: %w", from, to, err)
	}
	return &conversion, nil
}

// TemperatureRepository stores reference core temperatures.
type TemperatureRepository struct {
	crud[models.Temperature]
}

func NewTemperatureRepository(db *gorm.DB) *TemperatureRepository {
	return &TemperatureRepository{crud: crud[models.Temperature]{db: db, name: "temperature", order: "meat asc, temp asc"}}
}

// AttachmentRepository stores recipe attachments.
type AttachmentRepository struct {
	crud[models.Attachment]
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{crud: crud[models.Attachment]{db: db, name: "attachment", order: "recipe_id asc, id asc"}}
}
