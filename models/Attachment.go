package models

import "bytes"

// Attachment is a binary file (photo, scanned page, PDF) owned by a recipe.
// Content is kept as raw bytes; the HTTP layer converts it to base64.
type Attachment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"not null;index" json:"recipeId"`
	FileName string `gorm:"not null" json:"fileName"`
	FileType string `json:"fileType"`
	Content  []byte `json:"-"`
}

// SameValue compares every field except the row identity.
func (a Attachment) SameValue(other Attachment) bool {
	return a.FileName == other.FileName &&
		a.FileType == other.FileType &&
		bytes.Equal(a.Content, other.Content)
}
