package models

import "time"

// Recipe pertence ao autor. Ingredientes e tags ficam nas tabelas de ligação
// RecipeIngredient e RecipeTag e são substituídos por inteiro na edição.
type Recipe struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	AuthorID    int64      `gorm:"not null;index" json:"author_id"`
	Name        string     `gorm:"not null" json:"name"`
	Image       string     `gorm:"type:text" json:"image"`
	Text        string     `gorm:"type:text" json:"text"`
	CookingTime int        `gorm:"not null" json:"cooking_time"`
	CreatedAt   *time.Time `gorm:"index" json:"-"`
	UpdatedAt   *time.Time `json:"-"`
}

// RecipeIngredient é a quantidade de um ingrediente dentro de uma receita.
type RecipeIngredient struct {
	ID           int64 `gorm:"primary_key;AUTO_INCREMENT" json:"-"`
	RecipeID     int64 `gorm:"not null;index;unique_index:ux_recipe_ingredient" json:"-"`
	IngredientID int64 `gorm:"not null;index;unique_index:ux_recipe_ingredient" json:"id"`
	Amount       int64 `gorm:"not null" json:"amount"`
}

// RecipeTag liga tags a receitas (N:N).
type RecipeTag struct {
	ID       int64 `gorm:"primary_key;AUTO_INCREMENT"`
	RecipeID int64 `gorm:"not null;index;unique_index:ux_recipe_tag"`
	TagID    int64 `gorm:"not null;index;unique_index:ux_recipe_tag"`
}
