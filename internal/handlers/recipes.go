package handlers

import (
	"fmt"
	"net/http"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/models"
)

// recipePayload is the wire form of a recipe. Attachment content travels as
// base64 text.
type recipePayload struct {
	models.Recipe
	Attachments []attachmentPayload `json:"attachments"`
}

type nullifyResponse struct {
	Updated int `json:"updated"`
}

func projectRecipe(recipe models.Recipe) recipePayload {
	payload := recipePayload{Recipe: recipe, Attachments: make([]attachmentPayload, 0, len(recipe.Attachments))}
	payload.Recipe.Attachments = nil
	if payload.Recipe.Ingredients == nil {
		payload.Recipe.Ingredients = []models.Ingredient{}
	}
	if payload.Recipe.Subrecipes == nil {
		payload.Recipe.Subrecipes = []models.SubrecipeLink{}
	}
	for _, attachment := range recipe.Attachments {
		payload.Attachments = append(payload.Attachments, projectAttachment(attachment))
	}
	return payload
}

func (p recipePayload) model() (*models.Recipe, error) {
	recipe := p.Recipe
	recipe.Attachments = make([]models.Attachment, 0, len(p.Attachments))
	for i, attachment := range p.Attachments {
		decoded, err := attachment.model()
		if err != nil {
			return nil, fmt.Errorf("attachments[%d]: %w", i, err)
		}
		recipe.Attachments = append(recipe.Attachments, *decoded)
	}
	return &recipe, nil
}

// RecipeResource handles REST-style interactions for recipes.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if recipeService == nil {
		serviceUnavailable(w, r)
		return
	}

	segments := resourcePath(r, "/recipes")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch segments[0] {
	case "search":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		searchRecipes(w, r)
		return
	case "nullify-source":
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if len(segments) != 2 {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		sourceID, ok := parseID(w, r, segments[1])
		if !ok {
			return
		}
		nullifySource(w, r, sourceID)
		return
	}

	if len(segments) > 1 {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	recipeID, ok := parseID(w, r, segments[0])
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, recipeID)
	case http.MethodPut:
		updateRecipe(w, r, recipeID)
	case http.MethodDelete:
		deleteRecipe(w, r, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeRecipes(w http.ResponseWriter, recipes []models.Recipe) {
	responses := make([]recipePayload, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, projectRecipe(recipe))
	}
	writeJSON(w, http.StatusOK, responses)
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := recipeService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "load recipes")
		return
	}
	writeRecipes(w, recipes)
}

func searchRecipes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	recipes, err := recipeService.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, "search recipes")
		return
	}
	writeRecipes(w, recipes)
}

func showRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	recipe, err := recipeService.Get(r.Context(), recipeID)
	if err != nil {
		writeServiceError(w, r, err, "load recipe")
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*recipe))
}

func decodeRecipe(w http.ResponseWriter, r *http.Request) (*models.Recipe, bool) {
	limitBody(w, r)
	var payload recipePayload
	if !decodeJSON(w, r, &payload) {
		return nil, false
	}
	recipe, err := payload.model()
	if err != nil {
		writeServiceError(w, r, err, "decode recipe")
		return nil, false
	}
	return recipe, true
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, ok := decodeRecipe(w, r)
	if !ok {
		return
	}
	created, err := recipeService.Create(r.Context(), recipe)
	if err != nil {
		writeServiceError(w, r, err, "create recipe")
		return
	}
	applog.Info(r.Context(), "recipe created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, projectRecipe(*created))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	recipe, ok := decodeRecipe(w, r)
	if !ok {
		return
	}
	updated, err := recipeService.Update(r.Context(), recipeID, recipe)
	if err != nil {
		writeServiceError(w, r, err, "update recipe")
		return
	}
	applog.Info(r.Context(), "recipe updated", "id", updated.ID)
	writeJSON(w, http.StatusOK, projectRecipe(*updated))
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	if err := recipeService.Delete(r.Context(), recipeID); err != nil {
		writeServiceError(w, r, err, "delete recipe")
		return
	}
	applog.Info(r.Context(), "recipe deleted", "id", recipeID)
	w.WriteHeader(http.StatusNoContent)
}

func nullifySource(w http.ResponseWriter, r *http.Request, sourceID uint) {
	updated, err := recipeService.NullifySource(r.Context(), sourceID)
	if err != nil {
		writeServiceError(w, r, err, "clear source from recipes")
		return
	}
	applog.Info(r.Context(), "source cleared from recipes", "sourceID", sourceID, "updated", updated)
	writeJSON(w, http.StatusOK, nullifyResponse{Updated: updated})
}

