package models

// Tag classifica receitas (café da manhã, almoço...). Color é um hex #RRGGBB.
type Tag struct {
	ID    int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name  string `gorm:"not null;default:''" json:"name"`
	Color string `gorm:"unique_index" json:"color"`
	Slug  string `gorm:"not null;unique_index" json:"slug"`
}
