package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/larsreed/recipes-sub000/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Source{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Attachment{},
		&models.SubrecipeLink{},
		&models.Conversion{},
		&models.Temperature{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func amount(v float64) *float64 { return &v }

func countRows(t *testing.T, db *gorm.DB, model any, recipeID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Where("recipe_id = ?", recipeID).Count(&count).Error)
	return count
}

func TestSourceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSourceRepository(openTestDB(t))

	first := &models.Source{Name: "Joy of Cooking", Authors: "Rombauer"}
	second := &models.Source{Name: "Larousse"}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NotZero(t, first.ID)

	t.Run("find by name", func(t *testing.T) {
		got, err := repo.FindByName(ctx, "Joy of Cooking")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		_, err = repo.FindByName(ctx, "Missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("exists by name excludes self", func(t *testing.T) {
		exists, err := repo.ExistsByName(ctx, "Larousse", second.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByName(ctx, "Larousse", first.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, "Larousse", 0)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate name violates unique index", func(t *testing.T) {
		err := repo.Save(ctx, &models.Source{Name: "Larousse"})
		assert.ErrorIs(t, err, ErrDuplicate)

		second.Name = "Joy of Cooking"
		assert.ErrorIs(t, repo.Save(ctx, second), ErrDuplicate)
		second.Name = "Larousse"
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Joy of Cooking", all[0].Name)
	})

	t.Run("delete missing reports not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 999), ErrNotFound)
		_, err := repo.Get(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConversionRepositoryFindPair(t *testing.T) {
	ctx := context.Background()
	repo := NewConversionRepository(openTestDB(t))

	require.NoError(t, repo.Save(ctx, &models.Conversion{FromMeasure: "cup", ToMeasure: "dl", Factor: 2.37}))

	got, err := repo.FindPair(ctx, "CUP", "dl")
	require.NoError(t, err)
	assert.InDelta(t, 2.37, got.Factor, 0.0001)

	_, err = repo.FindPair(ctx, "dl", "cup")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRecipeRepository(db)

	recipe := &models.Recipe{
		Name: "Pancakes",
		Ingredients: []models.Ingredient{
			{Name: "milk", Amount: amount(5), Measure: "dl", SortOrder: 2},
			{Name: "flour", Amount: amount(2.5), Measure: "dl", SortOrder: 1},
		},
		Attachments: []models.Attachment{{FileName: "photo.png", FileType: "image/png", Content: []byte{0x89, 0x50}}},
	}
	require.NoError(t, repo.Create(ctx, recipe))
	require.NotZero(t, recipe.ID)

	got, err := repo.Get(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "flour", got.Ingredients[0].Name, "ingredients are ordered by sort order")
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, []byte{0x89, 0x50}, got.Attachments[0].Content)
	assert.Nil(t, got.Source)
}

func TestRecipeRepositoryUpdateKeepsSurvivingRows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRecipeRepository(db)

	recipe := &models.Recipe{
		Name: "Bread",
		Ingredients: []models.Ingredient{
			{Name: "flour", SortOrder: 1},
			{Name: "water", SortOrder: 2},
			{Name: "sugar", SortOrder: 3},
		},
	}
	require.NoError(t, repo.Create(ctx, recipe))

	loaded, err := repo.Get(ctx, recipe.ID)
	require.NoError(t, err)
	flourID := loaded.Ingredients[0].ID
	waterID := loaded.Ingredients[1].ID

	loaded.Name = "Sourdough bread"
	loaded.Ingredients = []models.Ingredient{
		loaded.Ingredients[0],
		loaded.Ingredients[1],
		{Name: "salt", SortOrder: 4},
	}
	require.NoError(t, repo.Update(ctx, loaded))

	got, err := repo.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sourdough bread", got.Name)
	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, flourID, got.Ingredients[0].ID)
	assert.Equal(t, waterID, got.Ingredients[1].ID)
	assert.Equal(t, "salt", got.Ingredients[2].Name)
	assert.Equal(t, int64(3), countRows(t, db, &models.Ingredient{}, recipe.ID))
}

func TestRecipeRepositoryDeleteRemovesOwnedRows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRecipeRepository(db)

	sauce := &models.Recipe{Name: "Tomato sauce", Subrecipe: true}
	require.NoError(t, repo.Create(ctx, sauce))

	pasta := &models.Recipe{
		Name:        "Pasta",
		Ingredients: []models.Ingredient{{Name: "spaghetti"}},
		Attachments: []models.Attachment{{FileName: "notes.txt", Content: []byte("al dente")}},
		Subrecipes:  []models.SubrecipeLink{{SubrecipeID: sauce.ID}},
	}
	require.NoError(t, repo.Create(ctx, pasta))

	require.NoError(t, repo.Delete(ctx, pasta.ID))

	assert.Zero(t, countRows(t, db, &models.Ingredient{}, pasta.ID))
	assert.Zero(t, countRows(t, db, &models.Attachment{}, pasta.ID))
	assert.Zero(t, countRows(t, db, &models.SubrecipeLink{}, pasta.ID))

	_, err := repo.Get(ctx, pasta.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, pasta.ID), ErrNotFound)

	exists, err := repo.Exists(ctx, sauce.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecipeRepositorySaveAllAndFindBySource(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	sources := NewSourceRepository(db)
	repo := NewRecipeRepository(db)

	source := &models.Source{Name: "Grandma"}
	require.NoError(t, sources.Save(ctx, source))

	for _, name := range []string{"Waffles", "Buns"} {
		require.NoError(t, repo.Create(ctx, &models.Recipe{Name: name, SourceID: &source.ID, Ingredients: []models.Ingredient{{Name: "egg"}}}))
	}
	require.NoError(t, repo.Create(ctx, &models.Recipe{Name: "Soup"}))

	referencing, err := repo.FindBySourceID(ctx, source.ID)
	require.NoError(t, err)
	require.Len(t, referencing, 2)

	for i := range referencing {
		referencing[i].SourceID = nil
	}
	require.NoError(t, repo.SaveAll(ctx, referencing))

	remaining, err := repo.FindBySourceID(ctx, source.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	got, err := repo.Get(ctx, referencing[0].ID)
	require.NoError(t, err)
	assert.Len(t, got.Ingredients, 1, "saving columns must not touch children")
}
