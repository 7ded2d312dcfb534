package models

import (
	"time"
)

type Recipe struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null;index" json:"name"`
	Subrecipe    bool    `gorm:"not null;default:false" json:"subrecipe"`
	People       int     `json:"people"`
	Instructions string  `gorm:"type:text" json:"instructions"`
	Served       string  `json:"served"`
	SourceID     *uint   `gorm:"index" json:"sourceId,omitempty"`
	PageRef      string  `json:"pageRef"`
	Rating       int     `json:"rating"`
	Notes        string  `gorm:"type:text" json:"notes"`
	Source       *Source `gorm:"foreignKey:SourceID" json:"source,omitempty"`

	// --- Owned collections ---
	// Rows only live as long as the recipe that owns them; the repository
	// removes orphans explicitly instead of relying on FK cascades.
	Ingredients []Ingredient    `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Attachments []Attachment    `gorm:"foreignKey:RecipeID" json:"attachments"`
	Subrecipes  []SubrecipeLink `gorm:"foreignKey:RecipeID" json:"subrecipes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasSource reports whether the recipe points at a source row.
func (r Recipe) HasSource() bool {
	return r.SourceID != nil && *r.SourceID != 0
}
