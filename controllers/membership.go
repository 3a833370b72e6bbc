package controllers

import (
	"net/http"

	"foodgram/metrics"
	"foodgram/services"

	"github.com/gin-gonic/gin"
)

// POST/DELETE /api/recipes/:id/favorite
func AddFavorite(c *gin.Context)    { addToCollection(c, services.Favorites) }
func RemoveFavorite(c *gin.Context) { removeFromCollection(c, services.Favorites) }

// POST/DELETE /api/recipes/:id/shopping_cart
func AddToShoppingCart(c *gin.Context)      { addToCollection(c, services.Cart) }
func RemoveFromShoppingCart(c *gin.Context) { removeFromCollection(c, services.Cart) }

func metricKind(kind services.CollectionKind) string {
	if kind == services.Cart {
		return "shopping_cart"
	}
	return "favorite"
}

func addToCollection(c *gin.Context, kind services.CollectionKind) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	recipeID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	entry, err := services.AddToCollection(db, kind, user.ID, recipeID)
	metrics.RecordMembershipChange(metricKind(kind), "add", errorResult(err))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondCreated(c, services.NewShortRecipe(entry.Recipe))
}

func removeFromCollection(c *gin.Context, kind services.CollectionKind) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	recipeID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	err := services.RemoveFromCollection(db, kind, user.ID, recipeID)
	metrics.RecordMembershipChange(metricKind(kind), "remove", errorResult(err))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
