package services

import "foodgram/models"

// CanModifyRecipe: admin ou autor da receita.
func CanModifyRecipe(actor models.User, recipe models.Recipe) bool {
	if actor.ID == 0 {
		return false
	}
	return actor.Admin || recipe.AuthorID == actor.ID
}
