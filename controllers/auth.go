package controllers

import (
	"net/http"
	"time"

	"foodgram/logging"
	"foodgram/models"
	"foodgram/services"
	"foodgram/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token           string            `json:"auth_token"`
	AccessExpiresAt int64             `json:"access_expires_at"` // unix seconds
	RefreshToken    string            `json:"refresh_token"`
	User            services.UserView `json:"user"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db, ok := mustDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "invalid email or password", http.StatusBadRequest)
		return
	}
	if !tools.PasswordMatches(user.Password, req.Password) {
		RespondError(c, "invalid email or password", http.StatusBadRequest)
		return
	}
	if user.IsBlocked() {
		RespondError(c, "user is blocked", http.StatusForbidden)
		return
	}

	now := time.Now()
	access, expiresAt, err := issueAccessToken(user, now)
	if err != nil {
		logging.Error().Err(err).Int64("user_id", user.ID).Msg("failed to sign access token")
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	// sessão única: um login novo derruba os refresh tokens anteriores
	refresh, err := replaceRefreshTokens(db, user.ID, now)
	if err != nil {
		logging.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue refresh token")
		RespondError(c, "failed to issue refresh token", http.StatusInternalServerError)
		return
	}

	view, err := services.ViewUser(db, user.ID, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logging.Info().Int64("user_id", user.ID).Msg("user logged in")
	RespondSuccess(c, LoginResponse{
		Token:           access,
		AccessExpiresAt: expiresAt.Unix(),
		RefreshToken:    refresh,
		User:            view,
	})
}

// Logout revoga todos os refresh tokens do usuário. O access token segue
// válido até expirar.
func Logout(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}
	if err := revokeAllUserRefreshTokens(db, user.ID, time.Now()); err != nil {
		RespondError(c, "failed to revoke sessions", http.StatusInternalServerError)
		return
	}
	RespondNoContent(c)
}

func issueAccessToken(user models.User, now time.Time) (string, time.Time, error) {
	ttl := time.Duration(configuration.Security.AccessTTLMinutes) * time.Minute
	return tools.IssueAccessToken(configuration.Security.JwtSecret, user.ID, user.Email, now, ttl)
}
