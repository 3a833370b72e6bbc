package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"foodgram/logging"
	"foodgram/models"
	"foodgram/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
}

type RefreshResponse struct {
	AccessToken        string `json:"auth_token"`
	AccessExpiresAt    int64  `json:"access_expires_at"`     // unix seconds
	AccessExpiresAtISO string `json:"access_expires_at_iso"` // RFC3339
	RefreshToken       string `json:"refresh_token"`
}

// Refresh troca um refresh token válido por um novo par (access+refresh).
// Só o hash fica no banco; ao usar, todos os tokens do usuário são revogados
// e um novo é emitido, tudo na mesma transação.
func Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db, ok := mustDB(c)
	if !ok {
		return
	}

	now := time.Now()
	hash := tools.EncryptTextSHA512(req.RefreshToken)

	var stored models.RefreshToken
	if err := db.Where("token_hash = ?", hash).First(&stored).Error; err != nil {
		RespondError(c, "invalid refresh token", http.StatusUnauthorized)
		return
	}
	if !stored.Usable(now) {
		RespondError(c, "refresh token expired", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := db.First(&user, stored.UserID).Error; err != nil {
		RespondError(c, "user not found", http.StatusUnauthorized)
		return
	}
	if user.IsBlocked() {
		RespondError(c, "user is blocked", http.StatusForbidden)
		return
	}

	accessToken, accessExp, err := issueAccessToken(user, now)
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	newRefresh, err := rotateRefreshToken(db, stored, now)
	if errors.Is(err, errRefreshTokenUsed) {
		RespondError(c, "refresh token expired", http.StatusUnauthorized)
		return
	}
	if err != nil {
		logging.Error().Err(err).Int64("user_id", user.ID).Msg("failed to rotate refresh token")
		RespondError(c, "failed to issue refresh token", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, RefreshResponse{
		AccessToken:        accessToken,
		AccessExpiresAt:    accessExp.Unix(),
		AccessExpiresAtISO: accessExp.UTC().Format(time.RFC3339),
		RefreshToken:       newRefresh,
	})
}

// errRefreshTokenUsed indica que outra request já consumiu o token.
var errRefreshTokenUsed = errors.New("refresh token already used")

// rotateRefreshToken consome stored e emite um novo token numa única transação.
// O UPDATE condicional garante que só uma request consome o mesmo token.
func rotateRefreshToken(db *gorm.DB, stored models.RefreshToken, now time.Time) (string, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return "", tx.Error
	}

	res := tx.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", stored.ID).
		Update("revoked_at", now)
	if res.Error != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to revoke refresh token: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		tx.Rollback()
		return "", errRefreshTokenUsed
	}

	if err := revokeAllUserRefreshTokens(tx, stored.UserID, now); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to revoke previous sessions: %w", err)
	}

	raw, err := issueRefreshToken(tx, stored.UserID, now)
	if err != nil {
		tx.Rollback()
		return "", err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return "", err
	}
	return raw, nil
}

// replaceRefreshTokens revoga os tokens do usuário e emite um novo na mesma transação.
func replaceRefreshTokens(db *gorm.DB, userID int64, now time.Time) (string, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return "", tx.Error
	}
	if err := revokeAllUserRefreshTokens(tx, userID, now); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to revoke previous sessions: %w", err)
	}
	raw, err := issueRefreshToken(tx, userID, now)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return "", err
	}
	return raw, nil
}

// issueRefreshToken grava o hash e devolve o token em texto (mostrado uma vez).
func issueRefreshToken(db *gorm.DB, userID int64, now time.Time) (string, error) {
	raw, err := tools.RandomString(configuration.Security.RefreshCodeLen)
	if err != nil {
		return "", err
	}
	expiresAt := now.AddDate(0, 0, configuration.Security.RefreshCodeMaxValid)
	token := models.RefreshToken{
		UserID:    userID,
		TokenHash: tools.EncryptTextSHA512(raw),
		ExpiresAt: &expiresAt,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if err := db.Create(&token).Error; err != nil {
		return "", err
	}
	return raw, nil
}

func revokeAllUserRefreshTokens(db *gorm.DB, userID int64, now time.Time) error {
	return db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}
