package controllers

import (
	"net/http"
	"time"

	dbpkg "foodgram/db"
	"foodgram/models"
	"foodgram/services"
	"foodgram/tools"

	"github.com/gin-gonic/gin"
)

// UpdateUserRequest: campos ausentes ficam como estão.
// email, password, admin e status não são editáveis por aqui.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

// UpdateCurrentUser edita o próprio usuário.
// Route: PATCH /api/users/me
func UpdateCurrentUser(c *gin.Context) {
	logged, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db, ok := mustDB(c)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}

	if len(updates) > 0 {
		if err := db.Model(&models.User{}).Where("id = ?", logged.ID).Updates(updates).Error; err != nil {
			if dbpkg.IsUniqueViolation(err) {
				RespondError(c, "a user with this username already exists", http.StatusBadRequest)
				return
			}
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	var updated models.User
	if err := db.First(&updated, logged.ID).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	view, err := services.ViewUser(db, updated.ID, updated)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondSuccess(c, view)
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6,max=150"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// SetPassword troca a senha e derruba as sessões de refresh abertas.
func SetPassword(c *gin.Context) {
	logged, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !tools.PasswordMatches(logged.Password, req.CurrentPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"current_password": []string{"invalid password"}})
		return
	}

	db, ok := mustDB(c)
	if !ok {
		return
	}

	hash, err := tools.HashPassword(req.NewPassword, configuration.Security.BcryptCost)
	if err != nil {
		RespondError(c, "failed to hash password", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		RespondError(c, tx.Error.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Model(&models.User{}).Where("id = ?", logged.ID).Update("password", hash).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := revokeAllUserRefreshTokens(tx, logged.ID, time.Now()); err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondNoContent(c)
}
