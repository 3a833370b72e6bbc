package services

import (
	"fmt"

	"foodgram/models"

	"github.com/jinzhu/gorm"
)

// CreateRecipe valida o payload completo e grava receita, ingredientes e tags
// numa única transação.
func CreateRecipe(db *gorm.DB, author models.User, in RecipeInput, policy Policy) (models.Recipe, error) {
	valid, err := ValidateRecipe(db, in, policy, true)
	if err != nil {
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		AuthorID:    author.ID,
		Name:        *valid.Name,
		Text:        *valid.Text,
		CookingTime: *valid.CookingTime,
	}
	if valid.Image != nil {
		recipe.Image = *valid.Image
	}

	tx := db.Begin()
	if tx.Error != nil {
		return models.Recipe{}, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Create(&recipe).Error; err != nil {
		tx.Rollback()
		return models.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}
	if err := replaceIngredients(tx, recipe.ID, valid.Ingredients); err != nil {
		tx.Rollback()
		return models.Recipe{}, err
	}
	if err := replaceTags(tx, recipe.ID, valid.Tags); err != nil {
		tx.Rollback()
		return models.Recipe{}, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Recipe{}, err
	}
	return recipe, nil
}

// UpdateRecipe aplica uma edição parcial: campos escalares ausentes ficam como
// estavam; ingredients e tags, quando presentes, substituem o conjunto inteiro.
// Tudo numa transação: se algo falhar, o conjunto anterior continua intacto.
func UpdateRecipe(db *gorm.DB, actor models.User, recipeID int64, in RecipeInput, policy Policy) (models.Recipe, error) {
	recipe, err := findRecipe(db, recipeID)
	if err != nil {
		return models.Recipe{}, err
	}
	if !CanModifyRecipe(actor, recipe) {
		return models.Recipe{}, &ForbiddenError{Action: "edit this recipe"}
	}

	valid, err := ValidateRecipe(db, in, policy, false)
	if err != nil {
		return models.Recipe{}, err
	}

	if valid.Name != nil {
		recipe.Name = *valid.Name
	}
	if valid.Text != nil {
		recipe.Text = *valid.Text
	}
	if valid.Image != nil {
		recipe.Image = *valid.Image
	}
	if valid.CookingTime != nil {
		recipe.CookingTime = *valid.CookingTime
	}

	tx := db.Begin()
	if tx.Error != nil {
		return models.Recipe{}, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Save(&recipe).Error; err != nil {
		tx.Rollback()
		return models.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}
	if valid.Ingredients != nil {
		if err := replaceIngredients(tx, recipe.ID, valid.Ingredients); err != nil {
			tx.Rollback()
			return models.Recipe{}, err
		}
	}
	if valid.Tags != nil {
		if err := replaceTags(tx, recipe.ID, valid.Tags); err != nil {
			tx.Rollback()
			return models.Recipe{}, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Recipe{}, err
	}
	return recipe, nil
}

// DeleteRecipe apaga a receita e tudo que aponta para ela.
func DeleteRecipe(db *gorm.DB, actor models.User, recipeID int64) error {
	recipe, err := findRecipe(db, recipeID)
	if err != nil {
		return err
	}
	if !CanModifyRecipe(actor, recipe) {
		return &ForbiddenError{Action: "delete this recipe"}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	dependents := []interface{}{
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.Favorite{},
		&models.ShoppingCart{},
	}
	for _, model := range dependents {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(model).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
	}
	if err := tx.Delete(&recipe).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return tx.Commit().Error
}

// GetRecipe busca uma receita por id.
func GetRecipe(db *gorm.DB, recipeID int64) (models.Recipe, error) {
	return findRecipe(db, recipeID)
}

// replaceIngredients apaga as linhas atuais e recria a partir do payload.
func replaceIngredients(tx *gorm.DB, recipeID int64, rows []models.RecipeIngredient) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}
	for _, row := range rows {
		row.ID = 0
		row.RecipeID = recipeID
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to add ingredient %d: %w", row.IngredientID, err)
		}
	}
	return nil
}

func replaceTags(tx *gorm.DB, recipeID int64, tagIDs []int64) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}
	for _, tagID := range tagIDs {
		link := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to add tag %d: %w", tagID, err)
		}
	}
	return nil
}
