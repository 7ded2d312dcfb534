package pages

import (
	"strings"

	"github.com/larsreed/recipes-sub000/internal/views/components"
)

const defaultSection = "recipes"

var sections = []components.Section{
	{
		Key:        "recipes",
		Label:      "Recipes",
		Columns:    []string{"Name", "People", "Source", "Rating", "Served"},
		Searchable: true,
		Fields: []components.Field{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "subrecipe", Label: "Subrecipe", Type: "checkbox"},
			{Name: "people", Label: "People", Type: "number", Min: "0"},
			{Name: "sourceId", Label: "Source", Type: "select"},
			{Name: "pageRef", Label: "Page", Type: "text"},
			{Name: "rating", Label: "Rating", Type: "number", Min: "0", Max: "6"},
			{Name: "served", Label: "Served with", Type: "text"},
			{Name: "ingredients", Label: "Ingredients", Type: "list"},
			{Name: "subrecipes", Label: "Subrecipes", Type: "list"},
			{Name: "instructions", Label: "Instructions", Type: "textarea"},
			{Name: "notes", Label: "Notes", Type: "textarea"},
			{Name: "attachments", Label: "Attachments", Type: "list"},
		},
	},
	{
		Key:     "sources",
		Label:   "Sources",
		Columns: []string{"Name", "Authors"},
		Fields: []components.Field{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "authors", Label: "Authors", Type: "text"},
		},
	},
	{
		Key:     "conversions",
		Label:   "Conversions",
		Columns: []string{"From", "To", "Factor", "Description"},
		Fields: []components.Field{
			{Name: "fromMeasure", Label: "From", Type: "text", Required: true},
			{Name: "toMeasure", Label: "To", Type: "text", Required: true},
			{Name: "factor", Label: "Factor", Type: "number", Required: true},
			{Name: "description", Label: "Description", Type: "text"},
		},
	},
	{
		Key:     "temperatures",
		Label:   "Temperatures",
		Columns: []string{"Meat", "Temperature", "Description"},
		Fields: []components.Field{
			{Name: "meat", Label: "Meat", Type: "text", Required: true},
			{Name: "temp", Label: "Temperature (°C)", Type: "number"},
			{Name: "description", Label: "Description", Type: "text"},
		},
	},
}

// Sections lists the client sections in navigation order.
func Sections() []components.Section {
	return sections
}

// NormalizeSection lower-cases key and falls back to the default section
// when it is unknown.
func NormalizeSection(key string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if ValidSection(normalized) {
		return normalized
	}
	return defaultSection
}

func ValidSection(key string) bool {
	for _, section := range sections {
		if section.Key == key {
			return true
		}
	}
	return false
}

func DefaultSection() string {
	return defaultSection
}
