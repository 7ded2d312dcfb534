package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/internal/repository"
	"github.com/larsreed/recipes-sub000/internal/service"
	"github.com/larsreed/recipes-sub000/models"
)

type importReport struct {
	Sources      int
	Recipes      int
	Conversions  int
	Temperatures int
	Skipped      int
	Warnings     []string
}

func (r importReport) String() string {
	return fmt.Sprintf("Imported %d sources, %d recipes, %d conversions and %d temperatures (%d skipped)",
		r.Sources, r.Recipes, r.Conversions, r.Temperatures, r.Skipped)
}

func (r *importReport) warn(format string, args ...any) {
	r.Skipped++
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type importer struct {
	sources      *service.SourceService
	recipes      *service.RecipeService
	conversions  *service.ConversionService
	conversionDB *repository.ConversionRepository
	temperatures *service.TemperatureService
}

func newImporter(database *gorm.DB) *importer {
	sourceRepo := repository.NewSourceRepository(database)
	conversionRepo := repository.NewConversionRepository(database)
	return &importer{
		sources:      service.NewSourceService(sourceRepo),
		recipes:      service.NewRecipeService(repository.NewRecipeRepository(database), sourceRepo),
		conversions:  service.NewConversionService(conversionRepo),
		conversionDB: conversionRepo,
		temperatures: service.NewTemperatureService(repository.NewTemperatureRepository(database)),
	}
}

// Import stores everything in doc that is not already present. Validation
// failures on single records are reported as warnings; storage errors abort.
func (im *importer) Import(ctx context.Context, doc document) (importReport, error) {
	var report importReport

	for _, record := range doc.Sources {
		name := normalizeText(record.Name)
		if name == "" {
			report.warn("skipping source without name")
			continue
		}
		_, created, err := im.sources.GetOrCreate(ctx, name, normalizeText(record.Authors))
		if err != nil {
			return report, fmt.Errorf("import source %q: %w", name, err)
		}
		if created {
			report.Sources++
		}
	}

	if err := im.importRecipes(ctx, doc.Recipes, &report); err != nil {
		return report, err
	}

	for _, record := range doc.Conversions {
		if _, err := im.conversionDB.FindPair(ctx, record.From, record.To); err == nil {
			report.warn("conversion %s -> %s already exists", record.From, record.To)
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return report, fmt.Errorf("look up conversion %s -> %s: %w", record.From, record.To, err)
		}
		_, err := im.conversions.Create(ctx, &models.Conversion{
			FromMeasure: record.From,
			ToMeasure:   record.To,
			Factor:      record.Factor,
			Description: record.Description,
		})
		if errors.Is(err, service.ErrValidation) {
			report.warn("conversion %s -> %s: %v", record.From, record.To, err)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("import conversion %s -> %s: %w", record.From, record.To, err)
		}
		report.Conversions++
	}

	existingTemps, err := im.temperatures.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list temperatures: %w", err)
	}
	meats := make(map[string]bool, len(existingTemps))
	for _, t := range existingTemps {
		meats[strings.ToLower(t.Meat)] = true
	}
	for _, record := range doc.Temperatures {
		meat := normalizeText(record.Meat)
		if meats[strings.ToLower(meat)] {
			report.warn("temperature for %q already exists", meat)
			continue
		}
		_, err := im.temperatures.Create(ctx, &models.Temperature{Meat: meat, Temp: record.Temp, Description: record.Description})
		if errors.Is(err, service.ErrValidation) {
			report.warn("temperature %q: %v", meat, err)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("import temperature %q: %w", meat, err)
		}
		meats[strings.ToLower(meat)] = true
		report.Temperatures++
	}

	applog.Info(ctx, "import finished",
		"sources", report.Sources,
		"recipes", report.Recipes,
		"conversions", report.Conversions,
		"temperatures", report.Temperatures,
		"skipped", report.Skipped,
	)
	return report, nil
}

// importRecipes stores recipes in file order, so a subrecipe must be listed
// before the recipes using it unless it already exists.
func (im *importer) importRecipes(ctx context.Context, records []recipeRecord, report *importReport) error {
	existing, err := im.recipes.List(ctx)
	if err != nil {
		return fmt.Errorf("list recipes: %w", err)
	}
	byName := make(map[string]uint, len(existing))
	for _, recipe := range existing {
		byName[strings.ToLower(recipe.Name)] = recipe.ID
	}

	for _, record := range records {
		name := normalizeText(record.Name)
		if name == "" {
			report.warn("skipping recipe without name")
			continue
		}
		if _, ok := byName[strings.ToLower(name)]; ok {
			report.warn("recipe %q already exists", name)
			continue
		}

		recipe := &models.Recipe{
			Name:         name,
			Subrecipe:    record.Subrecipe,
			People:       record.People,
			PageRef:      record.PageRef,
			Rating:       record.Rating,
			Served:       record.Served,
			Instructions: record.Instructions,
			Notes:        record.Notes,
		}

		if sourceName := normalizeText(record.Source); sourceName != "" {
			source, created, err := im.sources.GetOrCreate(ctx, sourceName, "")
			if err != nil {
				return fmt.Errorf("resolve source %q for recipe %q: %w", sourceName, name, err)
			}
			if created {
				report.Sources++
			}
			sourceID := source.ID
			recipe.SourceID = &sourceID
		}

		for i, ing := range record.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
				Prefix:      ing.Prefix,
				Amount:      ing.Amount,
				Measure:     ing.Measure,
				Name:        ing.Name,
				Instruction: ing.Instruction,
				SortOrder:   i + 1,
			})
		}

		missing := ""
		for i, sub := range record.Subrecipes {
			id, ok := byName[strings.ToLower(normalizeText(sub.Recipe))]
			if !ok {
				missing = sub.Recipe
				break
			}
			recipe.Subrecipes = append(recipe.Subrecipes, models.SubrecipeLink{
				SubrecipeID: id,
				Amount:      sub.Amount,
				Measure:     sub.Measure,
				SortOrder:   i + 1,
			})
		}
		if missing != "" {
			report.warn("recipe %q uses unknown subrecipe %q", name, missing)
			continue
		}

		created, err := im.recipes.Create(ctx, recipe)
		if errors.Is(err, service.ErrValidation) {
			report.warn("recipe %q: %v", name, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("import recipe %q: %w", name, err)
		}
		byName[strings.ToLower(created.Name)] = created.ID
		report.Recipes++
	}
	return nil
}
