package services

import (
	"foodgram/models"

	"github.com/jinzhu/gorm"
)

// UserView é a representação pública de um usuário para quem está vendo (viewer).
type UserView struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientView junta a quantidade com o nome e a unidade do ingrediente.
type RecipeIngredientView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

type RecipeView struct {
	ID               int64                  `json:"id"`
	Tags             []models.Tag           `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// ShortRecipe é a forma resumida usada em favoritos, carrinho e assinaturas.
type ShortRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView é um autor seguido, com parte das receitas dele.
type SubscriptionView struct {
	UserView
	Recipes      []ShortRecipe `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

func NewShortRecipe(r models.Recipe) ShortRecipe {
	return ShortRecipe{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// ViewUser monta a representação de user para viewerID (0 = anônimo).
func ViewUser(db *gorm.DB, viewerID int64, user models.User) (UserView, error) {
	subscribed, err := IsSubscribed(db, viewerID, user.ID)
	if err != nil {
		return UserView{}, err
	}
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}, nil
}

// ViewSubscription inclui até recipesLimit receitas do autor (0 = todas).
func ViewSubscription(db *gorm.DB, viewerID int64, author models.User, recipesLimit int) (SubscriptionView, error) {
	user, err := ViewUser(db, viewerID, author)
	if err != nil {
		return SubscriptionView{}, err
	}

	var count int
	if err := db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&count).Error; err != nil {
		return SubscriptionView{}, err
	}

	q := db.Where("author_id = ?", author.ID).Order("created_at desc, id desc")
	if recipesLimit > 0 {
		q = q.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return SubscriptionView{}, err
	}

	short := make([]ShortRecipe, 0, len(recipes))
	for _, r := range recipes {
		short = append(short, NewShortRecipe(r))
	}
	return SubscriptionView{UserView: user, Recipes: short, RecipesCount: count}, nil
}

// ViewRecipe monta a representação completa da receita para viewerID.
func ViewRecipe(db *gorm.DB, viewerID int64, recipe models.Recipe) (RecipeView, error) {
	author, err := findUser(db, recipe.AuthorID)
	if err != nil {
		return RecipeView{}, err
	}
	authorView, err := ViewUser(db, viewerID, author)
	if err != nil {
		return RecipeView{}, err
	}

	tags := []models.Tag{}
	err = db.Table("tags").
		Select("tags.*").
		Joins("join recipe_tags on recipe_tags.tag_id = tags.id").
		Where("recipe_tags.recipe_id = ?", recipe.ID).
		Order("recipe_tags.id asc").
		Find(&tags).Error
	if err != nil {
		return RecipeView{}, err
	}

	ingredients := []RecipeIngredientView{}
	err = db.Table("recipe_ingredients").
		Select("ingredients.id as id, ingredients.name as name, ingredients.measurement_unit as measurement_unit, recipe_ingredients.amount as amount").
		Joins("join ingredients on ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipe.ID).
		Order("recipe_ingredients.id asc").
		Scan(&ingredients).Error
	if err != nil {
		return RecipeView{}, err
	}

	favorited, err := IsInCollection(db, Favorites, viewerID, recipe.ID)
	if err != nil {
		return RecipeView{}, err
	}
	inCart, err := IsInCollection(db, Cart, viewerID, recipe.ID)
	if err != nil {
		return RecipeView{}, err
	}

	return RecipeView{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           authorView,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}, nil
}

// RecipeFilter espelha os filtros da listagem de receitas.
type RecipeFilter struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
}

// ListRecipes devolve as receitas mais novas primeiro.
func ListRecipes(db *gorm.DB, filter RecipeFilter) ([]models.Recipe, error) {
	q := db.Model(&models.Recipe{})

	if filter.AuthorID > 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		var ids []int64
		err := db.Table("recipe_tags").
			Joins("join tags on tags.id = recipe_tags.tag_id").
			Where("tags.slug IN (?)", filter.TagSlugs).
			Pluck("DISTINCT recipe_tags.recipe_id", &ids).Error
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Recipe{}, nil
		}
		q = q.Where("id IN (?)", ids)
	}

	for _, restrict := range []struct {
		kind   CollectionKind
		userID int64
	}{{Favorites, filter.FavoritedBy}, {Cart, filter.InCartOf}} {
		if restrict.userID == 0 {
			continue
		}
		ids, err := collectionRecipeIDs(db, restrict.kind, restrict.userID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Recipe{}, nil
		}
		q = q.Where("id IN (?)", ids)
	}

	recipes := []models.Recipe{}
	if err := q.Order("created_at desc, id desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
