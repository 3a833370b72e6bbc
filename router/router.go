package router

import (
	"foodgram/config"
	"foodgram/controllers"
	dbpkg "foodgram/db"
	"foodgram/logging"
	"foodgram/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Initialize liga middlewares e rotas.
// Leitura pública (com usuário opcional), escrita autenticada, cadastro de
// tags e ingredientes só para admin.
func Initialize(r *gin.Engine, cfg config.Configuration, database *gorm.DB) {
	controllers.SetConfigurations(cfg)
	controllers.RegisterValidators()

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(Logger())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(dbpkg.SetDBtoContext(database))

	// Public (no auth)
	api.POST("/users", controllers.CreateUser)
	api.POST("/auth/token/login", controllers.Login)
	api.POST("/auth/token/refresh", controllers.Refresh)

	// Leitura: token opcional, usado para is_subscribed/is_favorited/is_in_shopping_cart
	public := api.Group("")
	public.Use(controllers.OptionalAuth(), Authorizer())
	public.GET("/users", controllers.GetUsers)
	public.GET("/users/:id", controllers.GetUserByID)
	public.GET("/tags", controllers.GetTags)
	public.GET("/tags/:id", controllers.GetTagByID)
	public.GET("/ingredients", controllers.GetIngredients)
	public.GET("/ingredients/:id", controllers.GetIngredientByID)
	public.GET("/recipes", controllers.GetRecipes)
	public.GET("/recipes/:id", controllers.GetRecipeByID)

	// Authenticated routes (token required + active user)
	validated := api.Group("")
	validated.Use(controllers.AuthRequired(), Authorizer())
	validated.POST("/auth/token/logout", controllers.Logout)

	validated.GET("/users/me", controllers.Me)
	validated.PATCH("/users/me", controllers.UpdateCurrentUser)
	validated.POST("/users/set_password", controllers.SetPassword)
	validated.GET("/users/subscriptions", controllers.GetSubscriptions)
	validated.POST("/users/:id/subscribe", controllers.Subscribe)
	validated.DELETE("/users/:id/subscribe", controllers.Unsubscribe)

	validated.POST("/recipes", controllers.CreateRecipe)
	validated.PATCH("/recipes/:id", controllers.UpdateRecipe)
	validated.DELETE("/recipes/:id", controllers.DeleteRecipe)
	validated.POST("/recipes/:id/favorite", controllers.AddFavorite)
	validated.DELETE("/recipes/:id/favorite", controllers.RemoveFavorite)
	validated.POST("/recipes/:id/shopping_cart", controllers.AddToShoppingCart)
	validated.DELETE("/recipes/:id/shopping_cart", controllers.RemoveFromShoppingCart)
	validated.GET("/recipes/download_shopping_cart", controllers.DownloadShoppingCart)

	// Admin routes
	admin := validated.Group("")
	admin.Use(Adminizer())
	admin.POST("/tags", controllers.CreateTag)
	admin.POST("/ingredients", controllers.CreateIngredient)

	logging.Info().Msg("routes initialized")
}
