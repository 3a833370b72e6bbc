package router

import (
	"net/http"

	"foodgram/controllers"

	"github.com/gin-gonic/gin"
)

// Authorizer bloqueia usuários com status bloqueado nas rotas protegidas.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			c.Next()
			return
		}
		if user.IsBlocked() {
			controllers.RespondError(c, "user is blocked", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
