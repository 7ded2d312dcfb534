package models

// Conversion translates an amount in one measure into another,
// e.g. 1 cup = 2.37 dl.
type Conversion struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	FromMeasure string  `gorm:"not null;index" json:"fromMeasure"`
	ToMeasure   string  `gorm:"not null" json:"toMeasure"`
	Factor      float64 `gorm:"not null" json:"factor"`
	Description string  `json:"description"`
}
