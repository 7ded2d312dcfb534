package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "github.com/larsreed/recipes-sub000/internal/db"
	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/internal/repository"
	"github.com/larsreed/recipes-sub000/internal/service"
	"github.com/larsreed/recipes-sub000/models"
)

// New returns an in-memory sqlite database seeded with a small cookbook.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:recipes-mock-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := appdb.AutoMigrate(db); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func amount(v float64) *float64 { return &v }

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	recipeRepo := repository.NewRecipeRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	sources := service.NewSourceService(sourceRepo)
	recipes := service.NewRecipeService(recipeRepo, sourceRepo)
	conversions := service.NewConversionService(repository.NewConversionRepository(db))
	temperatures := service.NewTemperatureService(repository.NewTemperatureRepository(db))

	grandma, _, err := sources.GetOrCreate(ctx, "Grandma's notebook", "Ingrid")
	if err != nil {
		return err
	}
	italian, _, err := sources.GetOrCreate(ctx, "The Silver Spoon", "Phaidon")
	if err != nil {
		return err
	}

	sauce, err := recipes.Create(ctx, &models.Recipe{
		Name:         "Tomato sauce",
		Subrecipe:    true,
		People:       4,
		Instructions: "Soften onion and garlic in oil, add tomatoes and simmer for 30 minutes.",
		SourceID:     &italian.ID,
		Rating:       4,
		Ingredients: []models.Ingredient{
			{Amount: amount(1), Measure: "pcs", Name: "onion", Instruction: "finely chopped", SortOrder: 1},
			{Amount: amount(2), Measure: "cloves", Name: "garlic", SortOrder: 2},
			{Amount: amount(800), Measure: "g", Name: "canned tomatoes", SortOrder: 3},
			{Amount: amount(2), Measure: "tbsp", Name: "olive oil", SortOrder: 4},
		},
	})
	if err != nil {
		return err
	}

	seeds := []models.Recipe{
		{
			Name:         "Pasta al pomodoro",
			People:       4,
			Instructions: "Boil the pasta al dente and toss with the sauce.",
			Served:       "with grated parmesan",
			SourceID:     &italian.ID,
			PageRef:      "p. 212",
			Rating:       5,
			Ingredients: []models.Ingredient{
				{Amount: amount(400), Measure: "g", Name: "spaghetti", SortOrder: 1},
				{Prefix: "some", Name: "basil", SortOrder: 2},
			},
			Subrecipes: []models.SubrecipeLink{{SubrecipeID: sauce.ID, Amount: amount(5), Measure: "dl", SortOrder: 1}},
		},
		{
			Name:         "Cinnamon buns",
			People:       24,
			Instructions: "Make the dough, let it rise, roll out with butter, sugar and cinnamon, bake at 225°C.",
			SourceID:     &grandma.ID,
			Rating:       6,
			Notes:        "Freeze half the batch.",
			Ingredients: []models.Ingredient{
				{Amount: amount(5), Measure: "dl", Name: "milk", SortOrder: 1},
				{Amount: amount(50), Measure: "g", Name: "yeast", SortOrder: 2},
				{Amount: amount(150), Measure: "g", Name: "butter", SortOrder: 3},
				{Amount: amount(14), Measure: "dl", Name: "wheat flour", SortOrder: 4},
				{Amount: amount(2), Measure: "tsp", Name: "cinnamon", SortOrder: 5},
			},
		},
	}
	for i := range seeds {
		if _, err := recipes.Create(ctx, &seeds[i]); err != nil {
			return err
		}
	}

	for _, conversion := range []models.Conversion{
		{FromMeasure: "cup", ToMeasure: "dl", Factor: 2.37, Description: "US cup"},
		{FromMeasure: "tbsp", ToMeasure: "ml", Factor: 15},
		{FromMeasure: "tsp", ToMeasure: "ml", Factor: 5},
		{FromMeasure: "lb", ToMeasure: "g", Factor: 453.6},
	} {
		if _, err := conversions.Create(ctx, &conversion); err != nil {
			return err
		}
	}

	for _, temperature := range []models.Temperature{
		{Meat: "Beef", Temp: 55, Description: "medium rare"},
		{Meat: "Pork", Temp: 65},
		{Meat: "Chicken", Temp: 74},
		{Meat: "Lamb", Temp: 60, Description: "pink"},
	} {
		if _, err := temperatures.Create(ctx, &temperature); err != nil {
			return err
		}
	}

	return nil
}
