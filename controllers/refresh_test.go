package controllers

import (
	"errors"
	"testing"
	"time"

	dbpkg "foodgram/db"
	"foodgram/models"
	"foodgram/tools"
)

func TestRotateRefreshToken(t *testing.T) {
	database, err := dbpkg.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	user := models.User{Email: "ana@example.com", Username: "ana", Password: "x"}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	now := time.Now()
	raw, err := replaceRefreshTokens(database, user.ID, now)
	if err != nil {
		t.Fatalf("replaceRefreshTokens failed: %v", err)
	}

	var stored models.RefreshToken
	if err := database.Where("token_hash = ?", tools.EncryptTextSHA512(raw)).First(&stored).Error; err != nil {
		t.Fatalf("stored token not found: %v", err)
	}

	rotated, err := rotateRefreshToken(database, stored, now)
	if err != nil {
		t.Fatalf("first rotation failed: %v", err)
	}
	if rotated == raw {
		t.Error("expected a new token")
	}

	// mesma linha lida antes da primeira rotação: ainda parece utilizável
	if !stored.Usable(now) {
		t.Fatal("stale copy should still look usable")
	}
	_, err = rotateRefreshToken(database, stored, now)
	if !errors.Is(err, errRefreshTokenUsed) {
		t.Fatalf("second rotation: expected errRefreshTokenUsed, got %v", err)
	}

	// a rotação recusada não derruba o token emitido pela primeira
	var active []models.RefreshToken
	database.Where("user_id = ? AND revoked_at IS NULL", user.ID).Find(&active)
	if len(active) != 1 {
		t.Fatalf("expected exactly one active token, got %d", len(active))
	}
	if active[0].TokenHash != tools.EncryptTextSHA512(rotated) {
		t.Error("active token is not the one issued by the first rotation")
	}
}

func TestReplaceRefreshTokensRevokesPrevious(t *testing.T) {
	database, err := dbpkg.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	now := time.Now()
	first, err := replaceRefreshTokens(database, 7, now)
	if err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	second, err := replaceRefreshTokens(database, 7, now)
	if err != nil {
		t.Fatalf("second issue failed: %v", err)
	}

	var old models.RefreshToken
	database.Where("token_hash = ?", tools.EncryptTextSHA512(first)).First(&old)
	if old.Usable(now) {
		t.Error("previous token should be revoked")
	}
	var current models.RefreshToken
	database.Where("token_hash = ?", tools.EncryptTextSHA512(second)).First(&current)
	if !current.Usable(now) {
		t.Error("new token should be usable")
	}
}
