package models

// Source is a cookbook, website or person a recipe was taken from.
type Source struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Authors string `json:"authors"`
}
