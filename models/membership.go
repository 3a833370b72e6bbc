package models

import "time"

// Favorite e ShoppingCart têm o mesmo formato: um par (usuário, receita) único.
// A unicidade fica no índice do banco, não só no código.

type Favorite struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_favorite_user_recipe" json:"user_id"`
	RecipeID  int64      `gorm:"not null;index;unique_index:ux_favorite_user_recipe" json:"recipe_id"`
	CreatedAt *time.Time `json:"created_at"`
}

type ShoppingCart struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_cart_user_recipe" json:"user_id"`
	RecipeID  int64      `gorm:"not null;index;unique_index:ux_cart_user_recipe" json:"recipe_id"`
	CreatedAt *time.Time `json:"created_at"`
}

// Subscription é a relação direcionada seguidor (UserID) -> autor (AuthorID).
type Subscription struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_subscription_user_author" json:"user_id"`
	AuthorID  int64      `gorm:"not null;index;unique_index:ux_subscription_user_author" json:"author_id"`
	CreatedAt *time.Time `json:"created_at"`
}
