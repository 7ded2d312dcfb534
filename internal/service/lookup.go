package service

import (
	"context"
	"errors"
	"strings"

	"github.com/larsreed/recipes-sub000/models"
)

// ConversionStore is the persistence contract for conversions.
type ConversionStore interface {
	Get(ctx context.Context, id uint) (*models.Conversion, error)
	List(ctx context.Context) ([]models.Conversion, error)
	Save(ctx context.Context, conversion *models.Conversion) error
	Delete(ctx context.Context, id uint) error
	FindPair(ctx context.Context, from, to string) (*models.Conversion, error)
}

// TemperatureStore is the persistence contract for temperatures.
type TemperatureStore interface {
	Get(ctx context.Context, id uint) (*models.Temperature, error)
	List(ctx context.Context) ([]models.Temperature, error)
	Save(ctx context.Context, temperature *models.Temperature) error
	Delete(ctx context.Context, id uint) error
}

type ConversionService struct {
	conversions ConversionStore
}

func NewConversionService(conversions ConversionStore) *ConversionService {
	return &ConversionService{conversions: conversions}
}

func (s *ConversionService) List(ctx context.Context) ([]models.Conversion, error) {
	return s.conversions.List(ctx)
}

func (s *ConversionService) Get(ctx context.Context, id uint) (*models.Conversion, error) {
	return s.conversions.Get(ctx, id)
}

func (s *ConversionService) Create(ctx context.Context, conversion *models.Conversion) (*models.Conversion, error) {
	conversion.ID = 0
	if err := validateConversion(conversion); err != nil {
		return nil, err
	}
	if err := s.conversions.Save(ctx, conversion); err != nil {
		return nil, err
	}
	return conversion, nil
}

func (s *ConversionService) Update(ctx context.Context, id uint, incoming *models.Conversion) (*models.Conversion, error) {
	existing, err := s.conversions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateConversion(incoming); err != nil {
		return nil, err
	}
	existing.FromMeasure = incoming.FromMeasure
	existing.ToMeasure = incoming.ToMeasure
	existing.Factor = incoming.Factor
	existing.Description = incoming.Description
	if err := s.conversions.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ConversionService) Delete(ctx context.Context, id uint) error {
	return s.conversions.Delete(ctx, id)
}

// Convert expresses amount, given in measure from, in measure to. A row
// stored in the opposite direction is used with the inverted factor.
func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return 0, invalid("measure", "from and to are required")
	}
	if strings.EqualFold(from, to) {
		return amount, nil
	}

	conversion, err := s.conversions.FindPair(ctx, from, to)
	if err == nil {
		return amount * conversion.Factor, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	reverse, err := s.conversions.FindPair(ctx, to, from)
	if err != nil {
		return 0, err
	}
	return amount / reverse.Factor, nil
}

func validateConversion(conversion *models.Conversion) error {
	conversion.FromMeasure = strings.TrimSpace(conversion.FromMeasure)
	conversion.ToMeasure = strings.TrimSpace(conversion.ToMeasure)
	conversion.Description = strings.TrimSpace(conversion.Description)
	if conversion.FromMeasure == "" {
		return invalid("fromMeasure", "fromMeasure is required")
	}
	if conversion.ToMeasure == "" {
		return invalid("toMeasure", "toMeasure is required")
	}
	if conversion.Factor <= 0 {
		return invalid("factor", "factor must be greater than zero")
	}
	return nil
}

type TemperatureService struct {
	temperatures TemperatureStore
}

func NewTemperatureService(temperatures TemperatureStore) *TemperatureService {
	return &TemperatureService{temperatures: temperatures}
}

func (s *TemperatureService) List(ctx context.Context) ([]models.Temperature, error) {
	return s.temperatures.List(ctx)
}

func (s *TemperatureService) Get(ctx context.Context, id uint) (*models.Temperature, error) {
	return s.temperatures.Get(ctx, id)
}

func (s *TemperatureService) Create(ctx context.Context, temperature *models.Temperature) (*models.Temperature, error) {
	temperature.ID = 0
	if err := validateTemperature(temperature); err != nil {
		return nil, err
	}
	if err := s.temperatures.Save(ctx, temperature); err != nil {
		return nil, err
	}
	return temperature, nil
}

func (s *TemperatureService) Update(ctx context.Context, id uint, incoming *models.Temperature) (*models.Temperature, error) {
	existing, err := s.temperatures.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTemperature(incoming); err != nil {
		return nil, err
	}
	existing.Meat = incoming.Meat
	existing.Temp = incoming.Temp
	existing.Description = incoming.Description
	if err := s.temperatures.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TemperatureService) Delete(ctx context.Context, id uint) error {
	return s.temperatures.Delete(ctx, id)
}

func validateTemperature(temperature *models.Temperature) error {
	temperature.Meat = strings.TrimSpace(temperature.Meat)
	temperature.Description = strings.TrimSpace(temperature.Description)
	if temperature.Meat == "" {
		return invalid("meat", "meat is required")
	}
	return nil
}
