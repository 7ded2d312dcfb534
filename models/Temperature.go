package models

// Temperature is a reference core temperature for a kind of meat.
type Temperature struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Meat        string `gorm:"not null" json:"meat"`
	Temp        int    `json:"temp"`
	Description string `json:"description"`
}
