package services

import (
	"fmt"
	"time"

	dbpkg "foodgram/db"
	"foodgram/models"

	"github.com/jinzhu/gorm"
)

// CollectionKind identifica a coleção (usuário, receita) manipulada pelo toggle.
type CollectionKind int

const (
	Favorites CollectionKind = iota
	Cart
)

func (k CollectionKind) String() string {
	switch k {
	case Favorites:
		return "favorite"
	case Cart:
		return "shopping cart entry"
	default:
		return fmt.Sprintf("collection(%d)", int(k))
	}
}

func (k CollectionKind) table() string {
	if k == Cart {
		return "shopping_carts"
	}
	return "favorites"
}

func (k CollectionKind) newRow(userID, recipeID int64) interface{} {
	if k == Cart {
		return &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	}
	return &models.Favorite{UserID: userID, RecipeID: recipeID}
}

func (k CollectionKind) emptyRow() interface{} {
	if k == Cart {
		return &models.ShoppingCart{}
	}
	return &models.Favorite{}
}

// Entry é o vínculo criado por AddToCollection.
type Entry struct {
	Kind      CollectionKind
	UserID    int64
	Recipe    models.Recipe
	CreatedAt time.Time
}

// AddToCollection cria o vínculo (usuário, receita). Se ele já existe devolve
// DuplicateError, inclusive quando outra request ganhou a corrida e o índice
// único rejeitou o insert.
func AddToCollection(db *gorm.DB, kind CollectionKind, userID, recipeID int64) (Entry, error) {
	recipe, err := findRecipe(db, recipeID)
	if err != nil {
		return Entry{}, err
	}

	exists, err := IsInCollection(db, kind, userID, recipeID)
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, &DuplicateError{What: kind.String()}
	}

	if err := insertCollectionRow(db, kind, userID, recipeID); err != nil {
		return Entry{}, err
	}

	return Entry{Kind: kind, UserID: userID, Recipe: recipe, CreatedAt: time.Now()}, nil
}

// insertCollectionRow grava o vínculo; o índice único vira DuplicateError.
func insertCollectionRow(db *gorm.DB, kind CollectionKind, userID, recipeID int64) error {
	if err := db.Create(kind.newRow(userID, recipeID)).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return &DuplicateError{What: kind.String()}
		}
		return fmt.Errorf("failed to add %s: %w", kind, err)
	}
	return nil
}

// RemoveFromCollection apaga o vínculo ou devolve NotFoundError se ele não existe.
func RemoveFromCollection(db *gorm.DB, kind CollectionKind, userID, recipeID int64) error {
	res := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(kind.emptyRow())
	if res.Error != nil {
		return fmt.Errorf("failed to remove %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{What: kind.String(), Entry: true}
	}
	return nil
}

func IsInCollection(db *gorm.DB, kind CollectionKind, userID, recipeID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int
	err := db.Table(kind.table()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// collectionRecipeIDs devolve os ids das receitas na coleção do usuário.
func collectionRecipeIDs(db *gorm.DB, kind CollectionKind, userID int64) ([]int64, error) {
	var ids []int64
	err := db.Table(kind.table()).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	return ids, err
}

func findRecipe(db *gorm.DB, recipeID int64) (models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return models.Recipe{}, &NotFoundError{What: "recipe"}
		}
		return models.Recipe{}, err
	}
	return recipe, nil
}
