package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/larsreed/recipes-sub000/internal/service"
	"github.com/larsreed/recipes-sub000/models"
)

func TestRecipeLifecycle(t *testing.T) {
	withTestServices(t)

	create := map[string]any{
		"name":   "Pancakes",
		"people": 4,
		"rating": 5,
		"ingredients": []map[string]any{
			{"name": "flour", "amount": 2.5, "measure": "dl", "sortOrder": 1},
			{"name": "milk", "amount": 5, "measure": "dl", "sortOrder": 2},
		},
		"attachments": []map[string]any{
			{"fileName": "note.txt", "content": service.EncodePayload([]byte("use butter"))},
		},
	}
	w := call(t, RecipeResource, http.MethodPost, "/recipes", create)
	expectStatus(t, w, http.StatusCreated)
	created := decode[recipePayload](t, w)
	if created.ID == 0 {
		t.Fatal("expected created recipe to have an id")
	}
	if len(created.Ingredients) != 2 || created.Ingredients[0].Name != "flour" {
		t.Fatalf("unexpected ingredients: %+v", created.Ingredients)
	}
	if len(created.Attachments) != 1 || created.Attachments[0].FileType != "text/plain" {
		t.Fatalf("unexpected attachments: %+v", created.Attachments)
	}

	path := fmt.Sprintf("/recipes/%d", created.ID)
	w = call(t, RecipeResource, http.MethodGet, path, nil)
	expectStatus(t, w, http.StatusOK)
	shown := decode[recipePayload](t, w)
	content, err := service.DecodePayload(shown.Attachments[0].Content)
	if err != nil || string(content) != "use butter" {
		t.Fatalf("expected attachment content to round-trip, got %q (%v)", content, err)
	}

	// Full overwrite: omitted scalars are cleared, the ingredient list is replaced.
	shown.People = 0
	shown.Rating = 0
	shown.Name = "Thin pancakes"
	flourID := shown.Ingredients[0].ID
	shown.Ingredients = []models.Ingredient{shown.Ingredients[0], {Name: "egg", SortOrder: 3}}
	w = call(t, RecipeResource, http.MethodPut, path, shown)
	expectStatus(t, w, http.StatusOK)
	updated := decode[recipePayload](t, w)
	if updated.Name != "Thin pancakes" || updated.Rating != 0 || updated.People != 0 {
		t.Fatalf("expected scalars to be overwritten: %+v", updated.Recipe)
	}
	if len(updated.Ingredients) != 2 || updated.Ingredients[0].ID != flourID || updated.Ingredients[1].Name != "egg" {
		t.Fatalf("unexpected reconciled ingredients: %+v", updated.Ingredients)
	}
	if len(updated.Attachments) != 1 {
		t.Fatalf("expected attachment to survive update: %+v", updated.Attachments)
	}

	w = call(t, RecipeResource, http.MethodGet, "/recipes", nil)
	expectStatus(t, w, http.StatusOK)
	if list := decode[[]recipePayload](t, w); len(list) != 1 {
		t.Fatalf("expected one recipe, got %d", len(list))
	}

	w = call(t, RecipeResource, http.MethodDelete, path, nil)
	expectStatus(t, w, http.StatusNoContent)
	w = call(t, RecipeResource, http.MethodGet, path, nil)
	expectStatus(t, w, http.StatusNotFound)
	w = call(t, RecipeResource, http.MethodDelete, path, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestRecipeRequestErrors(t *testing.T) {
	withTestServices(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{name: "missing name", method: http.MethodPost, path: "/recipes", body: map[string]any{"name": ""}, status: http.StatusBadRequest},
		{name: "rating out of range", method: http.MethodPost, path: "/recipes", body: map[string]any{"name": "Soup", "rating": 9}, status: http.StatusBadRequest},
		{name: "broken json", method: http.MethodPost, path: "/recipes", body: "{", status: http.StatusBadRequest},
		{name: "bad base64", method: http.MethodPost, path: "/recipes", body: map[string]any{"name": "Soup", "attachments": []map[string]any{{"fileName": "a.png", "content": "%%%"}}}, status: http.StatusBadRequest},
		{name: "unknown source", method: http.MethodPost, path: "/recipes", body: map[string]any{"name": "Soup", "sourceId": 77}, status: http.StatusNotFound},
		{name: "update missing recipe", method: http.MethodPut, path: "/recipes/99", body: map[string]any{"name": "Soup"}, status: http.StatusNotFound},
		{name: "non numeric id", method: http.MethodGet, path: "/recipes/abc", status: http.StatusNotFound},
		{name: "unsupported method", method: http.MethodPatch, path: "/recipes", status: http.StatusMethodNotAllowed},
		{name: "invalid search pattern", method: http.MethodGet, path: "/recipes/search?query=%28", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(t, RecipeResource, tt.method, tt.path, tt.body)
			expectStatus(t, w, tt.status)
			if tt.status != http.StatusMethodNotAllowed {
				if body := decode[map[string]string](t, w); body["error"] == "" {
					t.Fatalf("expected error message in body: %s", w.Body.String())
				}
			}
		})
	}
}

func TestRecipeSearch(t *testing.T) {
	withTestServices(t)

	for _, body := range []map[string]any{
		{"name": "Pasta carbonara"},
		{"name": "Minestrone", "ingredients": []map[string]any{{"name": "small pasta"}}},
		{"name": "Steak"},
	} {
		expectStatus(t, call(t, RecipeResource, http.MethodPost, "/recipes", body), http.StatusCreated)
	}

	w := call(t, RecipeResource, http.MethodGet, "/recipes/search?query=PASTA", nil)
	expectStatus(t, w, http.StatusOK)
	found := decode[[]recipePayload](t, w)
	if len(found) != 2 || found[0].Name != "Minestrone" || found[1].Name != "Pasta carbonara" {
		t.Fatalf("unexpected search result: %+v", found)
	}
}

func TestNullifySourceAndDanglingReference(t *testing.T) {
	withTestServices(t)

	w := call(t, SourceResource, http.MethodPost, "/sources", map[string]any{"name": "Grandma"})
	expectStatus(t, w, http.StatusCreated)
	source := decode[models.Source](t, w)

	w = call(t, RecipeResource, http.MethodPost, "/recipes", map[string]any{"name": "Buns", "sourceId": source.ID})
	expectStatus(t, w, http.StatusCreated)
	recipe := decode[recipePayload](t, w)
	if recipe.Source == nil || recipe.Source.Name != "Grandma" {
		t.Fatalf("expected source to be resolved: %+v", recipe.Recipe)
	}

	w = call(t, RecipeResource, http.MethodPut, fmt.Sprintf("/recipes/nullify-source/%d", source.ID), nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[nullifyResponse](t, w); got.Updated != 1 {
		t.Fatalf("expected one recipe updated, got %d", got.Updated)
	}

	expectStatus(t, call(t, SourceResource, http.MethodDelete, fmt.Sprintf("/sources/%d", source.ID), nil), http.StatusNoContent)

	w = call(t, RecipeResource, http.MethodGet, fmt.Sprintf("/recipes/%d", recipe.ID), nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[recipePayload](t, w); got.SourceID != nil || got.Source != nil {
		t.Fatalf("expected source to be cleared: %+v", got.Recipe)
	}
}
