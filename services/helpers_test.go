package services

import (
	"fmt"
	"testing"

	dbpkg "foodgram/db"
	"foodgram/models"

	"github.com/jinzhu/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := dbpkg.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}

func newUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{Email: name + "@example.com", Username: name, Password: "x"}
	mustCreate(t, db, &u)
	return u
}

func newIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	i := models.Ingredient{Name: name, MeasurementUnit: unit}
	mustCreate(t, db, &i)
	return i
}

var tagColors int

func newTag(t *testing.T, db *gorm.DB, slug string) models.Tag {
	t.Helper()
	tagColors++
	tag := models.Tag{Name: slug, Slug: slug, Color: fmt.Sprintf("#%06x", tagColors)}
	mustCreate(t, db, &tag)
	return tag
}

func strPtr(s string) *string { return &s }

func numPtr(s string) *Number {
	n := Number(s)
	return &n
}

type amount struct {
	id     int64
	amount string
}

func recipeInput(name string, tags []int64, items ...amount) RecipeInput {
	ingredients := make([]IngredientAmountInput, 0, len(items))
	for _, it := range items {
		ingredients = append(ingredients, IngredientAmountInput{ID: it.id, Amount: Number(it.amount)})
	}
	return RecipeInput{
		Name:        strPtr(name),
		Text:        strPtr("mix and bake"),
		CookingTime: numPtr("30"),
		Ingredients: &ingredients,
		Tags:        &tags,
	}
}

func newRecipe(t *testing.T, db *gorm.DB, author models.User, in RecipeInput) models.Recipe {
	t.Helper()
	recipe, err := CreateRecipe(db, author, in, Policy{MaxCookingTime: 600})
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}
