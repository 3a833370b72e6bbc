package controllers

import (
	"net/http"
	"strings"

	"foodgram/models"
	"foodgram/tools"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// AuthRequired valida o Bearer token e carrega o usuário no contexto.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			RespondError(c, "authentication credentials were not provided", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !loadUser(c, raw) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth carrega o usuário quando há token; sem header segue anônimo.
// Token presente mas inválido continua sendo 401.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if ok && !loadUser(c, raw) {
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[len("Bearer "):])
	return token, token != ""
}

func loadUser(c *gin.Context, raw string) bool {
	claims, err := tools.ParseAccessToken(configuration.Security.JwtSecret, raw)
	if err != nil {
		RespondError(c, "invalid token", http.StatusUnauthorized)
		return false
	}
	userID, err := claims.UserID()
	if err != nil {
		RespondError(c, "invalid token", http.StatusUnauthorized)
		return false
	}

	db, ok := mustDB(c)
	if !ok {
		return false
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		RespondError(c, "user not found", http.StatusUnauthorized)
		return false
	}

	c.Set(ctxUserKey, user)
	return true
}

// GetUserLogged devolve o usuário carregado por AuthRequired/OptionalAuth.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// viewerID é 0 para requests anônimas.
func viewerID(c *gin.Context) int64 {
	if user, ok := GetUserLogged(c); ok {
		return user.ID
	}
	return 0
}
