package controllers

import (
	"net/http"

	"foodgram/metrics"
	"foodgram/services"

	"github.com/gin-gonic/gin"
)

// Subscribe: POST /api/users/:id/subscribe
func Subscribe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	authorID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	author, err := services.Subscribe(db, user.ID, authorID)
	metrics.RecordMembershipChange("subscription", "add", errorResult(err))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view, err := services.ViewSubscription(db, user.ID, author, queryInt(c, "recipes_limit", configuration.Recipes.RecipesLimit))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondCreated(c, view)
}

// Unsubscribe: DELETE /api/users/:id/subscribe
func Unsubscribe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	authorID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	err := services.Unsubscribe(db, user.ID, authorID)
	metrics.RecordMembershipChange("subscription", "remove", errorResult(err))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}

// GetSubscriptions: GET /api/users/subscriptions?recipes_limit=N
func GetSubscriptions(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	authors, err := services.Subscriptions(db, user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	limit := queryInt(c, "recipes_limit", configuration.Recipes.RecipesLimit)
	out := make([]services.SubscriptionView, 0, len(authors))
	for _, author := range authors {
		view, err := services.ViewSubscription(db, user.ID, author, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		out = append(out, view)
	}
	RespondSuccess(c, out)
}
