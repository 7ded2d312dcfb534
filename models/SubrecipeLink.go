package models

// SubrecipeLink references another recipe used as a component of the owner,
// e.g. a sauce or a dough. The referenced recipe is resolved by id only.
type SubrecipeLink struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	RecipeID    uint     `gorm:"not null;index" json:"-"`
	SubrecipeID uint     `gorm:"not null;index" json:"subrecipeId"`
	Amount      *float64 `json:"amount,omitempty"`
	Measure     string   `json:"measure,omitempty"`
	SortOrder   int      `gorm:"not null;default:0" json:"sortOrder"`
}

// SameValue compares every field except the row identity.
func (l SubrecipeLink) SameValue(other SubrecipeLink) bool {
	return l.SubrecipeID == other.SubrecipeID &&
		equalAmount(l.Amount, other.Amount) &&
		l.Measure == other.Measure &&
		l.SortOrder == other.SortOrder
}
