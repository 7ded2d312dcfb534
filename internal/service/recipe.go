package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/models"
)

const maxRating = 6

// RecipeStore is the persistence contract the recipe service relies on.
type RecipeStore interface {
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindBySourceID(ctx context.Context, sourceID uint) ([]models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	SaveAll(ctx context.Context, recipes []models.Recipe) error
	Delete(ctx context.Context, id uint) error
}

// SourceLookup resolves sources by id.
type SourceLookup interface {
	Get(ctx context.Context, id uint) (*models.Source, error)
}

var (
	ingredientKey = childKey[models.Ingredient]{
		id:      func(i models.Ingredient) uint { return i.ID },
		clearID: func(i *models.Ingredient) { i.ID = 0 },
		same:    models.Ingredient.SameValue,
	}
	attachmentKey = childKey[models.Attachment]{
		id:      func(a models.Attachment) uint { return a.ID },
		clearID: func(a *models.Attachment) { a.ID = 0 },
		same:    models.Attachment.SameValue,
	}
	subrecipeKey = childKey[models.SubrecipeLink]{
		id:      func(l models.SubrecipeLink) uint { return l.ID },
		clearID: func(l *models.SubrecipeLink) { l.ID = 0 },
		same:    models.SubrecipeLink.SameValue,
	}
)

// RecipeService enforces the recipe aggregate's create/update semantics and
// its link to sources.
type RecipeService struct {
	recipes RecipeStore
	sources SourceLookup
}

func NewRecipeService(recipes RecipeStore, sources SourceLookup) *RecipeService {
	return &RecipeService{recipes: recipes, sources: sources}
}

func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.List(ctx)
}

func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipes.Get(ctx, id)
}

// Create stores a new recipe. Ids and timestamps on the recipe and its
// children are ignored.
func (s *RecipeService) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.ID = 0
	recipe.CreatedAt = time.Time{}
	recipe.UpdatedAt = time.Time{}
	normalizeRecipe(recipe)
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].ID = 0
	}
	for i := range recipe.Attachments {
		recipe.Attachments[i].ID = 0
	}
	for i := range recipe.Subrecipes {
		recipe.Subrecipes[i].ID = 0
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}
	if err := s.checkSubrecipes(ctx, 0, recipe.Subrecipes); err != nil {
		return nil, err
	}

	recipe.Source = nil
	if recipe.HasSource() {
		source, err := s.sources.Get(ctx, *recipe.SourceID)
		if err != nil {
			return nil, err
		}
		recipe.Source = source
	} else {
		recipe.SourceID = nil
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	applog.Debug(ctx, "recipe created", "id", recipe.ID, "ingredients", len(recipe.Ingredients))
	return s.recipes.Get(ctx, recipe.ID)
}

// Update overwrites every scalar field of recipe id with the incoming values
// and reconciles its owned collections against the incoming lists.
func (s *RecipeService) Update(ctx context.Context, id uint, incoming *models.Recipe) (*models.Recipe, error) {
	existing, err := s.recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalizeRecipe(incoming)
	if err := validateRecipe(incoming); err != nil {
		return nil, err
	}
	if err := s.checkSubrecipes(ctx, id, incoming.Subrecipes); err != nil {
		return nil, err
	}

	existing.Name = incoming.Name
	existing.Subrecipe = incoming.Subrecipe
	existing.People = incoming.People
	existing.Instructions = incoming.Instructions
	existing.Served = incoming.Served
	existing.PageRef = incoming.PageRef
	existing.Rating = incoming.Rating
	existing.Notes = incoming.Notes

	switch {
	case !incoming.HasSource():
		existing.SourceID = nil
		existing.Source = nil
	case !existing.HasSource() || *existing.SourceID != *incoming.SourceID:
		source, err := s.sources.Get(ctx, *incoming.SourceID)
		if err != nil {
			return nil, err
		}
		sourceID := source.ID
		existing.SourceID = &sourceID
		existing.Source = source
	}

	ingredients := reconcile(existing.Ingredients, incoming.Ingredients, ingredientKey)
	attachments := reconcile(existing.Attachments, incoming.Attachments, attachmentKey)
	subrecipes := reconcile(existing.Subrecipes, incoming.Subrecipes, subrecipeKey)
	existing.Ingredients = ingredients.Result
	existing.Attachments = attachments.Result
	existing.Subrecipes = subrecipes.Result

	if err := s.recipes.Update(ctx, existing); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "recipe updated",
		"id", id,
		"ingredientsAdded", ingredients.Added,
		"ingredientsRemoved", ingredients.Removed,
		"ingredientsChanged", ingredients.Changed,
		"attachmentsAdded", attachments.Added,
		"attachmentsRemoved", attachments.Removed,
		"subrecipesAdded", subrecipes.Added,
		"subrecipesRemoved", subrecipes.Removed,
	)
	return s.recipes.Get(ctx, id)
}

// Delete removes the recipe with its ingredients, attachments and subrecipe
// links. Other recipes linking to it as a subrecipe keep their links.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	applog.Debug(ctx, "recipe deleted", "id", id)
	return nil
}

// NullifySource clears the source reference of every recipe pointing at
// sourceID and saves them in one batch. It returns the number of recipes changed.
func (s *RecipeService) NullifySource(ctx context.Context, sourceID uint) (int, error) {
	recipes, err := s.recipes.FindBySourceID(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	for i := range recipes {
		recipes[i].SourceID = nil
		recipes[i].Source = nil
	}
	if err := s.recipes.SaveAll(ctx, recipes); err != nil {
		return 0, err
	}
	applog.Debug(ctx, "source cleared from recipes", "sourceID", sourceID, "recipes", len(recipes))
	return len(recipes), nil
}

// Search returns every recipe whose name, instructions, served text or any
// ingredient name or instruction matches query as a case-insensitive regular
// expression. It scans all recipes.
func (s *RecipeService) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	pattern, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]models.Recipe, 0)
	for _, recipe := range recipes {
		if recipeMatches(pattern, recipe) {
			matches = append(matches, recipe)
		}
	}
	applog.Debug(ctx, "recipe search", "query", query, "scanned", len(recipes), "matches", len(matches))
	return matches, nil
}

func recipeMatches(pattern *regexp.Regexp, recipe models.Recipe) bool {
	if pattern.MatchString(recipe.Name) ||
		pattern.MatchString(recipe.Instructions) ||
		pattern.MatchString(recipe.Served) {
		return true
	}
	for _, ingredient := range recipe.Ingredients {
		if pattern.MatchString(ingredient.Name) || pattern.MatchString(ingredient.Instruction) {
			return true
		}
	}
	return false
}

func (s *RecipeService) checkSubrecipes(ctx context.Context, ownerID uint, links []models.SubrecipeLink) error {
	for _, link := range links {
		if link.SubrecipeID == 0 {
			return invalid("subrecipes", "subrecipeId is required")
		}
		if ownerID != 0 && link.SubrecipeID == ownerID {
			return invalid("subrecipes", "a recipe cannot be its own subrecipe")
		}
		exists, err := s.recipes.Exists(ctx, link.SubrecipeID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: recipe %d", ErrNotFound, link.SubrecipeID)
		}
	}
	return nil
}

func normalizeRecipe(recipe *models.Recipe) {
	recipe.Name = strings.TrimSpace(recipe.Name)
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Name = strings.TrimSpace(recipe.Ingredients[i].Name)
	}
	for i := range recipe.Attachments {
		attachment := &recipe.Attachments[i]
		attachment.FileName = strings.TrimSpace(attachment.FileName)
		if strings.TrimSpace(attachment.FileType) == "" {
			attachment.FileType = fileTypeFromName(attachment.FileName)
		}
	}
}

func validateRecipe(recipe *models.Recipe) error {
	if recipe.Name == "" {
		return invalid("name", "name is required")
	}
	if recipe.People < 0 {
		return invalid("people", "people must not be negative")
	}
	if recipe.Rating < 0 || recipe.Rating > maxRating {
		return invalid("rating", fmt.Sprintf("rating must be between 0 and %d", maxRating))
	}
	for i, ingredient := range recipe.Ingredients {
		if ingredient.Name == "" {
			return invalid(fmt.Sprintf("ingredients[%d].name", i), "name is required")
		}
		if ingredient.Amount != nil && *ingredient.Amount < 0 {
			return invalid(fmt.Sprintf("ingredients[%d].amount", i), "amount must not be negative")
		}
	}
	for i, attachment := range recipe.Attachments {
		if attachment.FileName == "" {
			return invalid(fmt.Sprintf("attachments[%d].fileName", i), "fileName is required")
		}
	}
	return nil
}
