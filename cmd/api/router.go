package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebook-backend/internal/shared/middleware"
	"recipebook-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupRecipeRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("", middleware.OptionalAuth(c.JWTManager), c.UserHandler.ListUsers)
		users.GET("/me", middleware.RequireAuth(c.JWTManager), c.UserHandler.GetProfile)
		users.GET("/subscriptions", middleware.RequireAuth(c.JWTManager), c.RelationHandler.ListSubscriptions)
		users.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.UserHandler.GetUser)
		users.POST("/:id/subscribe", middleware.RequireAuth(c.JWTManager), c.RelationHandler.Subscribe)
		users.DELETE("/:id/subscribe", middleware.RequireAuth(c.JWTManager), c.RelationHandler.Unsubscribe)
	}
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tags := v1.Group("/tags")
	{
		tags.POST("", middleware.RequireAuth(c.JWTManager), middleware.RequireAdmin(), c.CatalogHandler.CreateTag)
		tags.GET("", c.CatalogHandler.ListTags)
		tags.GET("/:id", c.CatalogHandler.GetTag)
	}

	ingredients := v1.Group("/ingredients")
	{
		ingredients.POST("", middleware.RequireAuth(c.JWTManager), middleware.RequireAdmin(), c.CatalogHandler.CreateIngredient)
		ingredients.GET("", c.CatalogHandler.ListIngredients)
		ingredients.GET("/:id", c.CatalogHandler.GetIngredient)
	}
}

func setupRecipeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	recipes := v1.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(c.JWTManager), c.RecipeHandler.ListRecipes)
		recipes.POST("", middleware.RequireAuth(c.JWTManager), c.RecipeHandler.CreateRecipe)

		recipes.GET("/shopping_list", middleware.RequireAuth(c.JWTManager), c.ShoppingListHandler.GetShoppingList)
		recipes.GET("/download_shopping_cart", middleware.RequireAuth(c.JWTManager), c.ShoppingListHandler.DownloadShoppingList)

		recipes.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.RecipeHandler.GetRecipe)
		recipes.PATCH("/:id", middleware.RequireAuth(c.JWTManager), c.RecipeHandler.UpdateRecipe)
		recipes.DELETE("/:id", middleware.RequireAuth(c.JWTManager), c.RecipeHandler.DeleteRecipe)

		recipes.POST("/:id/favorite", middleware.RequireAuth(c.JWTManager), c.RelationHandler.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.RequireAuth(c.JWTManager), c.RelationHandler.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.RequireAuth(c.JWTManager), c.RelationHandler.AddCartItem)
		recipes.DELETE("/:id/shopping_cart", middleware.RequireAuth(c.JWTManager), c.RelationHandler.RemoveCartItem)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "healthy"
		code := http.StatusOK

		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		ctx.JSON(code, gin.H{
			"status":  status,
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	}
}
