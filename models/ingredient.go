package models

// Ingredient é dado de referência: carregado por seed ou pelo admin, nunca alterado pelas receitas.
type Ingredient struct {
	ID              int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name            string `gorm:"not null;index;unique_index:ux_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"not null;unique_index:ux_ingredient_name_unit" json:"measurement_unit"`
}
