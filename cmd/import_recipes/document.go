package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	numberPattern   = regexp.MustCompile(`^[-+]?\d*[.,]?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// document is the import file layout shared by YAML and JSON.
type document struct {
	Sources      []sourceRecord      `yaml:"sources" json:"sources"`
	Recipes      []recipeRecord      `yaml:"recipes" json:"recipes"`
	Conversions  []conversionRecord  `yaml:"conversions" json:"conversions"`
	Temperatures []temperatureRecord `yaml:"temperatures" json:"temperatures"`
}

type sourceRecord struct {
	Name    string `yaml:"name" json:"name"`
	Authors string `yaml:"authors" json:"authors"`
}

type recipeRecord struct {
	Name         string             `yaml:"name" json:"name"`
	Subrecipe    bool               `yaml:"subrecipe" json:"subrecipe"`
	People       int                `yaml:"people" json:"people"`
	Source       string             `yaml:"source" json:"source"`
	PageRef      string             `yaml:"pageRef" json:"pageRef"`
	Rating       int                `yaml:"rating" json:"rating"`
	Served       string             `yaml:"served" json:"served"`
	Instructions string             `yaml:"instructions" json:"instructions"`
	Notes        string             `yaml:"notes" json:"notes"`
	Ingredients  []ingredientRecord `yaml:"ingredients" json:"ingredients"`
	Subrecipes   []subrecipeRecord  `yaml:"subrecipes" json:"subrecipes"`
}

type ingredientRecord struct {
	Prefix      string   `yaml:"prefix" json:"prefix"`
	Amount      *float64 `yaml:"amount" json:"amount"`
	Measure     string   `yaml:"measure" json:"measure"`
	Name        string   `yaml:"name" json:"name"`
	Instruction string   `yaml:"instruction" json:"instruction"`
}

// subrecipeRecord references another recipe of the same import, or an
// existing one, by name.
type subrecipeRecord struct {
	Recipe  string   `yaml:"recipe" json:"recipe"`
	Amount  *float64 `yaml:"amount" json:"amount"`
	Measure string   `yaml:"measure" json:"measure"`
}

type conversionRecord struct {
	From        string  `yaml:"from" json:"from"`
	To          string  `yaml:"to" json:"to"`
	Factor      float64 `yaml:"factor" json:"factor"`
	Description string  `yaml:"description" json:"description"`
}

type temperatureRecord struct {
	Meat        string `yaml:"meat" json:"meat"`
	Temp        int    `yaml:"temp" json:"temp"`
	Description string `yaml:"description" json:"description"`
}

func readDocument(path, format string) (document, error) {
	if strings.TrimSpace(path) == "" {
		return document{}, errors.New("input path must not be empty")
	}
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		return decodeFile(path, yaml.Unmarshal)
	case "json":
		return decodeFile(path, json.Unmarshal)
	case "csv":
		records, err := readCSV(path)
		if err != nil {
			return document{}, fmt.Errorf("read csv: %w", err)
		}
		return documentFromCSV(records), nil
	default:
		return document{}, fmt.Errorf("unsupported input format %q", format)
	}
}

func decodeFile(path string, unmarshal func([]byte, any) error) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var doc document
	if err := unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

// documentFromCSV reads one recipe per row. The ingredients column lists
// "amount measure name" entries separated by semicolons.
func documentFromCSV(records []map[string]string) document {
	var doc document
	for _, row := range records {
		name := normalizeText(row["name"])
		if name == "" {
			continue
		}
		recipe := recipeRecord{
			Name:         name,
			Source:       normalizeValue(row["source"]),
			PageRef:      normalizeValue(row["page"]),
			Served:       normalizeText(row["served"]),
			Instructions: normalizeValue(row["instructions"]),
			Notes:        normalizeValue(row["notes"]),
			People:       parseInt(row["people"]),
			Rating:       parseInt(row["rating"]),
		}
		for _, entry := range strings.Split(row["ingredients"], ";") {
			if ingredient, ok := parseIngredient(entry); ok {
				recipe.Ingredients = append(recipe.Ingredients, ingredient)
			}
		}
		doc.Recipes = append(doc.Recipes, recipe)
	}
	return doc
}

// parseIngredient splits "2.5 dl wheat flour" into amount, measure and name.
// Entries without a leading number are taken as a bare name.
func parseIngredient(entry string) (ingredientRecord, bool) {
	entry = normalizeText(entry)
	if entry == "" {
		return ingredientRecord{}, false
	}

	match := numberPattern.FindString(entry)
	if match == "" {
		return ingredientRecord{Name: entry}, true
	}
	value, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return ingredientRecord{Name: entry}, true
	}

	rest := strings.Fields(strings.TrimSpace(entry[len(match):]))
	ingredient := ingredientRecord{Amount: &value}
	switch len(rest) {
	case 0:
		return ingredientRecord{}, false
	case 1:
		ingredient.Name = rest[0]
	default:
		ingredient.Measure = rest[0]
		ingredient.Name = strings.Join(rest[1:], " ")
	}
	return ingredient, true
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	value = cleanWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

func parseInt(value string) int {
	parsed, err := strconv.Atoi(normalizeValue(value))
	if err != nil {
		return 0
	}
	return parsed
}
