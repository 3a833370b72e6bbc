package controllers

import (
	"net/http"

	"foodgram/services"

	"github.com/gin-gonic/gin"
)

func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}
	view, err := services.ViewUser(db, user.ID, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondSuccess(c, view)
}
