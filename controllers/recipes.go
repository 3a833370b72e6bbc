package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"foodgram/logging"
	"foodgram/models"
	"foodgram/services"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// GetRecipes: GET /api/recipes?author=&tags=&is_favorited=1&is_in_shopping_cart=1
// Os filtros de favorito e carrinho só valem para usuário autenticado.
func GetRecipes(c *gin.Context) {
	db, ok := mustDB(c)
	if !ok {
		return
	}

	viewer := viewerID(c)
	var filter services.RecipeFilter
	if v := c.Query("author"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, "author is invalid", http.StatusBadRequest)
			return
		}
		filter.AuthorID = id
	}
	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}
	if viewer != 0 && queryFlag(c, "is_favorited") {
		filter.FavoritedBy = viewer
	}
	if viewer != 0 && queryFlag(c, "is_in_shopping_cart") {
		filter.InCartOf = viewer
	}

	recipes, err := services.ListRecipes(db, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]services.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		view, err := services.ViewRecipe(db, viewer, r)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		out = append(out, view)
	}
	RespondSuccess(c, out)
}

func GetRecipeByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}
	recipe, err := services.GetRecipe(db, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondRecipe(c, db, http.StatusOK, recipe)
}

// CreateRecipe: POST /api/recipes
func CreateRecipe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	var in services.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	recipe, err := services.CreateRecipe(db, user, in, recipePolicy())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logging.Info().Int64("recipe_id", recipe.ID).Int64("author_id", user.ID).Msg("recipe created")
	respondRecipe(c, db, http.StatusCreated, recipe)
}

// UpdateRecipe: PATCH /api/recipes/:id (autor ou admin)
func UpdateRecipe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	recipe, err := services.UpdateRecipe(db, user, id, in, recipePolicy())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondRecipe(c, db, http.StatusOK, recipe)
}

// DeleteRecipe: DELETE /api/recipes/:id (autor ou admin)
func DeleteRecipe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	if err := services.DeleteRecipe(db, user, id); err != nil {
		respondServiceError(c, err)
		return
	}
	logging.Info().Int64("recipe_id", id).Int64("user_id", user.ID).Msg("recipe deleted")
	RespondNoContent(c)
}

func respondRecipe(c *gin.Context, db *gorm.DB, status int, recipe models.Recipe) {
	view, err := services.ViewRecipe(db, viewerID(c), recipe)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(status, view)
}
