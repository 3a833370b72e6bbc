package services

import (
	"encoding/json"
	"errors"
	"testing"

	"foodgram/models"

	"github.com/jinzhu/gorm"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{`5`, 5, false},
		{`"5"`, 5, false},
		{`" 7 "`, 7, false},
		{`"abc"`, 0, true},
		{`1.5`, 0, true},
		{`null`, 0, true},
	}
	for _, tt := range tests {
		var n Number
		if err := json.Unmarshal([]byte(tt.raw), &n); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		got, err := n.Int64()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestValidateRecipe(t *testing.T) {
	db := openTestDB(t)
	tag := newTag(t, db, "dinner")
	tag2 := newTag(t, db, "lunch")
	flour := newIngredient(t, db, "flour", "g")
	egg := newIngredient(t, db, "egg", "pcs")
	policy := Policy{MaxCookingTime: 600}

	tests := []struct {
		name      string
		in        RecipeInput
		wantField string
	}{
		{"valid", recipeInput("ok", []int64{tag.ID}, amount{flour.ID, "1"}), ""},
		{"amount zero", recipeInput("x", []int64{tag.ID}, amount{flour.ID, "0"}), "ingredients"},
		{"amount negative", recipeInput("x", []int64{tag.ID}, amount{flour.ID, "-3"}), "ingredients"},
		{"amount not numeric", recipeInput("x", []int64{tag.ID}, amount{flour.ID, "abc"}), "ingredients"},
		{"no ingredients", recipeInput("x", []int64{tag.ID}), "ingredients"},
		{"unknown ingredient", recipeInput("x", []int64{tag.ID}, amount{flour.ID, "1"}, amount{999, "1"}), "ingredients"},
		{"repeated ingredient", recipeInput("x", []int64{tag.ID}, amount{egg.ID, "1"}, amount{egg.ID, "2"}), "ingredients"},
		{"no tags", recipeInput("x", []int64{}, amount{flour.ID, "1"}), "tags"},
		{"repeated tag", recipeInput("x", []int64{tag.ID, tag2.ID, tag.ID}, amount{flour.ID, "1"}), "tags"},
		{"unknown tag", recipeInput("x", []int64{tag.ID, 999}, amount{flour.ID, "1"}), "tags"},
		{"blank name", recipeInput("  ", []int64{tag.ID}, amount{flour.ID, "1"}), "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRecipe(db, tt.in, policy, true)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q (%s)", tt.wantField, verr.Field, verr.Message)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("ValidationError should match ErrValidation")
			}
		})
	}
}

func TestValidateCookingTime(t *testing.T) {
	db := openTestDB(t)
	tag := newTag(t, db, "dinner")
	flour := newIngredient(t, db, "flour", "g")

	tests := []struct {
		name    string
		raw     string
		policy  Policy
		wantErr bool
	}{
		{"one", "1", Policy{MaxCookingTime: 600}, false},
		{"upper bound", "600", Policy{MaxCookingTime: 600}, false},
		{"above bound", "601", Policy{MaxCookingTime: 600}, true},
		{"bound disabled", "5000", Policy{}, false},
		{"zero", "0", Policy{}, true},
		{"text", "soon", Policy{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := recipeInput("x", []int64{tag.ID}, amount{flour.ID, "1"})
			in.CookingTime = numPtr(tt.raw)
			_, err := ValidateRecipe(db, in, tt.policy, true)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if err != nil && (!errors.As(err, &verr) || verr.Field != "cooking_time") {
				t.Errorf("expected cooking_time error, got %v", err)
			}
		})
	}
}

func TestCreateRecipeRequiresAllFields(t *testing.T) {
	db := openTestDB(t)
	author := newUser(t, db, "bob")

	_, err := CreateRecipe(db, author, RecipeInput{Name: strPtr("only a name")}, Policy{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var count int
	db.Model(&models.Recipe{}).Count(&count)
	if count != 0 {
		t.Errorf("nothing should be stored, got %d recipes", count)
	}
}

func ingredientAmounts(t *testing.T, view RecipeView) map[string]int64 {
	t.Helper()
	out := make(map[string]int64, len(view.Ingredients))
	for _, i := range view.Ingredients {
		out[i.Name] = i.Amount
	}
	return out
}

func TestUpdateRecipe(t *testing.T) {
	db := openTestDB(t)
	author := newUser(t, db, "bob")
	stranger := newUser(t, db, "eve")
	admin := models.User{Email: "root@example.com", Username: "root", Password: "x", Admin: true}
	mustCreate(t, db, &admin)

	dinner := newTag(t, db, "dinner")
	lunch := newTag(t, db, "lunch")
	flour := newIngredient(t, db, "flour", "g")
	egg := newIngredient(t, db, "egg", "pcs")
	milk := newIngredient(t, db, "milk", "ml")

	recipe := newRecipe(t, db, author, recipeInput("pancakes", []int64{dinner.ID}, amount{flour.ID, "200"}, amount{egg.ID, "2"}))

	t.Run("PartialScalar", func(t *testing.T) {
		updated, err := UpdateRecipe(db, author, recipe.ID, RecipeInput{Name: strPtr("crepes")}, Policy{})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.Name != "crepes" || updated.Text != "mix and bake" || updated.CookingTime != 30 {
			t.Errorf("unexpected recipe after partial update: %+v", updated)
		}

		view, err := ViewRecipe(db, 0, updated)
		if err != nil {
			t.Fatalf("ViewRecipe failed: %v", err)
		}
		if got := ingredientAmounts(t, view); len(got) != 2 || got["flour"] != 200 {
			t.Errorf("ingredients must be kept when absent, got %v", got)
		}
		if len(view.Tags) != 1 || view.Tags[0].ID != dinner.ID {
			t.Errorf("tags must be kept when absent, got %+v", view.Tags)
		}
	})

	t.Run("ReplaceCollections", func(t *testing.T) {
		ingredients := []IngredientAmountInput{{ID: milk.ID, Amount: "300"}}
		tags := []int64{lunch.ID}
		updated, err := UpdateRecipe(db, author, recipe.ID, RecipeInput{Ingredients: &ingredients, Tags: &tags}, Policy{})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}

		view, err := ViewRecipe(db, 0, updated)
		if err != nil {
			t.Fatalf("ViewRecipe failed: %v", err)
		}
		got := ingredientAmounts(t, view)
		if len(got) != 1 || got["milk"] != 300 {
			t.Errorf("ingredients must be replaced wholesale, got %v", got)
		}
		if len(view.Tags) != 1 || view.Tags[0].ID != lunch.ID {
			t.Errorf("tags must be replaced, got %+v", view.Tags)
		}
	})

	t.Run("InvalidPayloadChangesNothing", func(t *testing.T) {
		ingredients := []IngredientAmountInput{{ID: flour.ID, Amount: "0"}}
		_, err := UpdateRecipe(db, author, recipe.ID, RecipeInput{Name: strPtr("nope"), Ingredients: &ingredients}, Policy{})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		current, _ := GetRecipe(db, recipe.ID)
		if current.Name != "crepes" {
			t.Errorf("name must not change on a rejected update, got %q", current.Name)
		}
	})

	t.Run("Forbidden", func(t *testing.T) {
		_, err := UpdateRecipe(db, stranger, recipe.ID, RecipeInput{Name: strPtr("mine")}, Policy{})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ForbiddenError, got %v", err)
		}
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		if _, err := UpdateRecipe(db, admin, recipe.ID, RecipeInput{Text: strPtr("edited by admin")}, Policy{}); err != nil {
			t.Fatalf("admin update failed: %v", err)
		}
	})

	t.Run("UnknownRecipe", func(t *testing.T) {
		_, err := UpdateRecipe(db, author, 999, RecipeInput{}, Policy{})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestUpdateRecipeIsAtomic(t *testing.T) {
	db := openTestDB(t)
	author := newUser(t, db, "bob")
	tag := newTag(t, db, "dinner")
	flour := newIngredient(t, db, "flour", "g")
	egg := newIngredient(t, db, "egg", "pcs")
	recipe := newRecipe(t, db, author, recipeInput("bread", []int64{tag.ID}, amount{flour.ID, "500"}))

	// breaks the tag step, which runs after the ingredient rows were replaced
	if err := db.DropTable(&models.RecipeTag{}).Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}

	ingredients := []IngredientAmountInput{{ID: egg.ID, Amount: "3"}}
	tags := []int64{tag.ID}
	_, err := UpdateRecipe(db, author, recipe.ID, RecipeInput{Name: strPtr("changed"), Ingredients: &ingredients, Tags: &tags}, Policy{})
	if err == nil {
		t.Fatal("expected the update to fail")
	}

	var rows []models.RecipeIngredient
	db.Where("recipe_id = ?", recipe.ID).Find(&rows)
	if len(rows) != 1 || rows[0].IngredientID != flour.ID || rows[0].Amount != 500 {
		t.Errorf("previous ingredient set must survive, got %+v", rows)
	}
	current, _ := GetRecipe(db, recipe.ID)
	if current.Name != "bread" {
		t.Errorf("name must be rolled back, got %q", current.Name)
	}
}

func TestDeleteRecipe(t *testing.T) {
	db := openTestDB(t)
	author := newUser(t, db, "bob")
	fan := newUser(t, db, "alice")
	tag := newTag(t, db, "dinner")
	flour := newIngredient(t, db, "flour", "g")
	recipe := newRecipe(t, db, author, recipeInput("bread", []int64{tag.ID}, amount{flour.ID, "500"}))

	if _, err := AddToCollection(db, Cart, fan.ID, recipe.ID); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if err := DeleteRecipe(db, fan, recipe.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if err := DeleteRecipe(db, author, recipe.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := GetRecipe(db, recipe.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected recipe to be gone, got %v", err)
	}

	list, err := BuildShoppingList(db, fan.ID)
	if err != nil {
		t.Fatalf("BuildShoppingList: %v", err)
	}
	if !list.Empty() {
		t.Errorf("cart entries of a deleted recipe must go away, got %+v", list)
	}
}

func TestListRecipes(t *testing.T) {
	db := openTestDB(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	dinner := newTag(t, db, "dinner")
	lunch := newTag(t, db, "lunch")
	flour := newIngredient(t, db, "flour", "g")

	r1 := newRecipe(t, db, alice, recipeInput("one", []int64{dinner.ID}, amount{flour.ID, "1"}))
	r2 := newRecipe(t, db, bob, recipeInput("two", []int64{lunch.ID}, amount{flour.ID, "1"}))
	r3 := newRecipe(t, db, bob, recipeInput("three", []int64{dinner.ID, lunch.ID}, amount{flour.ID, "1"}))

	if _, err := AddToCollection(db, Favorites, alice.ID, r2.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := AddToCollection(db, Cart, alice.ID, r3.ID); err != nil {
		t.Fatal(err)
	}

	ids := func(recipes []models.Recipe) []int64 {
		out := make([]int64, 0, len(recipes))
		for _, r := range recipes {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter RecipeFilter
		want   []int64
	}{
		{"all newest first", RecipeFilter{}, []int64{r3.ID, r2.ID, r1.ID}},
		{"by author", RecipeFilter{AuthorID: bob.ID}, []int64{r3.ID, r2.ID}},
		{"by tag", RecipeFilter{TagSlugs: []string{"dinner"}}, []int64{r3.ID, r1.ID}},
		{"any of tags", RecipeFilter{TagSlugs: []string{"dinner", "lunch"}}, []int64{r3.ID, r2.ID, r1.ID}},
		{"unknown tag", RecipeFilter{TagSlugs: []string{"brunch"}}, []int64{}},
		{"favorited", RecipeFilter{FavoritedBy: alice.ID}, []int64{r2.ID}},
		{"in cart", RecipeFilter{InCartOf: alice.ID}, []int64{r3.ID}},
		{"favorited and in cart", RecipeFilter{FavoritedBy: alice.ID, InCartOf: alice.ID}, []int64{}},
		{"empty favorites", RecipeFilter{FavoritedBy: bob.ID}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := ListRecipes(db, tt.filter)
			if err != nil {
				t.Fatalf("ListRecipes failed: %v", err)
			}
			got := ids(recipes)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestViewRecipeFlags(t *testing.T) {
	db := openTestDB(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	tag := newTag(t, db, "dinner")
	flour := newIngredient(t, db, "flour", "g")
	recipe := newRecipe(t, db, bob, recipeInput("bread", []int64{tag.ID}, amount{flour.ID, "500"}))

	if _, err := AddToCollection(db, Favorites, alice.ID, recipe.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := Subscribe(db, alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	view, err := ViewRecipe(db, alice.ID, recipe)
	if err != nil {
		t.Fatalf("ViewRecipe failed: %v", err)
	}
	if !view.IsFavorited || view.IsInShoppingCart {
		t.Errorf("unexpected flags favorited=%v cart=%v", view.IsFavorited, view.IsInShoppingCart)
	}
	if !view.Author.IsSubscribed {
		t.Error("expected author.is_subscribed for alice")
	}
	if len(view.Ingredients) != 1 || view.Ingredients[0].MeasurementUnit != "g" || view.Ingredients[0].ID != flour.ID {
		t.Errorf("unexpected ingredients %+v", view.Ingredients)
	}

	anon, err := ViewRecipe(db, 0, recipe)
	if err != nil {
		t.Fatalf("ViewRecipe failed: %v", err)
	}
	if anon.IsFavorited || anon.Author.IsSubscribed {
		t.Error("anonymous viewer must see false flags")
	}
}

func TestViewSubscription(t *testing.T) {
	db := openTestDB(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	tag := newTag(t, db, "dinner")
	flour := newIngredient(t, db, "flour", "g")
	for _, name := range []string{"a", "b", "c"} {
		newRecipe(t, db, bob, recipeInput(name, []int64{tag.ID}, amount{flour.ID, "1"}))
	}

	view, err := ViewSubscription(db, alice.ID, bob, 2)
	if err != nil {
		t.Fatalf("ViewSubscription failed: %v", err)
	}
	if view.RecipesCount != 3 {
		t.Errorf("expected recipes_count 3, got %d", view.RecipesCount)
	}
	if len(view.Recipes) != 2 || view.Recipes[0].Name != "c" {
		t.Errorf("expected the 2 newest recipes, got %+v", view.Recipes)
	}
}

func TestCanModifyRecipe(t *testing.T) {
	recipe := models.Recipe{ID: 1, AuthorID: 10}
	tests := []struct {
		name  string
		actor models.User
		want  bool
	}{
		{"author", models.User{ID: 10}, true},
		{"stranger", models.User{ID: 11}, false},
		{"admin", models.User{ID: 12, Admin: true}, true},
		{"anonymous", models.User{}, false},
	}
	for _, tt := range tests {
		if got := CanModifyRecipe(tt.actor, recipe); got != tt.want {
			t.Errorf("%s: CanModifyRecipe = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// Um handle que já é transação não abre outra: o erro do Begin tem que chegar ao chamador.
func TestRecipeWritesReportBeginFailure(t *testing.T) {
	db := openTestDB(t)
	author := newUser(t, db, "bob")
	tag := newTag(t, db, "dinner")
	flour := newIngredient(t, db, "flour", "g")
	recipe := newRecipe(t, db, author, recipeInput("bread", []int64{tag.ID}, amount{flour.ID, "500"}))

	outer := db.Begin()
	if outer.Error != nil {
		t.Fatalf("failed to begin: %v", outer.Error)
	}
	defer outer.Rollback()

	policy := Policy{MaxCookingTime: 600}

	_, err := CreateRecipe(outer, author, recipeInput("cake", []int64{tag.ID}, amount{flour.ID, "100"}), policy)
	if !errors.Is(err, gorm.ErrCantStartTransaction) {
		t.Errorf("CreateRecipe: expected ErrCantStartTransaction, got %v", err)
	}

	_, err = UpdateRecipe(outer, author, recipe.ID, RecipeInput{Name: strPtr("rye bread")}, policy)
	if !errors.Is(err, gorm.ErrCantStartTransaction) {
		t.Errorf("UpdateRecipe: expected ErrCantStartTransaction, got %v", err)
	}

	err = DeleteRecipe(outer, author, recipe.ID)
	if !errors.Is(err, gorm.ErrCantStartTransaction) {
		t.Errorf("DeleteRecipe: expected ErrCantStartTransaction, got %v", err)
	}
}
