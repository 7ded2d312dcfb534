package models

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	RecipeID    uint     `gorm:"not null;index" json:"-"`
	Prefix      string   `json:"prefix,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Measure     string   `json:"measure,omitempty"`
	Name        string   `gorm:"not null" json:"name"`
	Instruction string   `json:"instruction,omitempty"`
	SortOrder   int      `gorm:"not null;default:0" json:"sortOrder"`
}

// SameValue compares every field except the row identity.
func (i Ingredient) SameValue(other Ingredient) bool {
	return i.Prefix == other.Prefix &&
		equalAmount(i.Amount, other.Amount) &&
		i.Measure == other.Measure &&
		i.Name == other.Name &&
		i.Instruction == other.Instruction &&
		i.SortOrder == other.SortOrder
}

func equalAmount(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
