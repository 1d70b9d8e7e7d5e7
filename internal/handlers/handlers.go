package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wishwell/internal/access"
	"wishwell/internal/config"
	"wishwell/internal/database"
	"wishwell/internal/httperr"
	"wishwell/internal/middleware"
	"wishwell/internal/models"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.AddDBContext(db))
	r.Use(addConfigContext(cfg))

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("/signup", handleSignup)
		users.POST("/signin", handleSignin)
		users.GET("/me", middleware.AuthRequired(db, cfg), handleMe)
	}

	wishlists := v1.Group("/wishlists")
	{
		// Public routes. Callers may be anonymous, but a valid bearer token
		// still resolves the requesting user so responses can report their role.
		public := wishlists.Group("")
		public.Use(middleware.AuthOptional(db, cfg))
		{
			public.GET("/all/public", handlePublicWishlists)
			public.GET("/public/:publicId", handleWishlistByPublicID)
		}

		protected := wishlists.Group("")
		protected.Use(middleware.AuthRequired(db, cfg))
		{
			protected.GET("", handleListWishlists)
			protected.POST("", handleCreateWishlist)
			protected.POST("/add-by-public-id", handleAddByPublicID)

			protected.GET("/:id", handleGetWishlist)
			protected.PATCH("/:id", handleUpdateWishlist)
			protected.DELETE("/:id", handleDeleteWishlist)

			protected.POST("/:id/items", handleCreateItem)
			protected.PATCH("/:id/items/:itemId", handleUpdateItem)
			protected.DELETE("/:id/items/:itemId", handleDeleteItem)

			protected.GET("/:id/collaborators", handleListCollaborators)
			protected.POST("/:id/collaborators", handleAddCollaborator)
			protected.PATCH("/:id/collaborators/:userId", handleUpdateCollaborator)
			protected.DELETE("/:id/collaborators/:userId", handleRemoveCollaborator)
		}
	}
}

func addConfigContext(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("cfg", cfg)
		c.Next()
	}
}

func getDB(c *gin.Context) *gorm.DB {
	return c.MustGet("db").(*gorm.DB)
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

// loadWishlist fetches the target wishlist and evaluates the requesting user's
// access level in one place. A missing wishlist and an inaccessible one both
// come back as the same httperr.NotFound, so callers cannot discover whether
// a private wishlist exists.
func loadWishlist(c *gin.Context, required func(access.Level) bool) (*models.Wishlist, access.Level, error) {
	db := getDB(c)
	user := currentUser(c)

	wishlist, err := database.GetWishlist(db, c.Param("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return nil, access.NoAccess, httperr.NotFound("wishlist not found")
		}
		return nil, access.NoAccess, err
	}

	level := access.Decide(wishlist, user.ID)
	if !required(level) {
		return nil, access.NoAccess, httperr.NotFound("wishlist not found")
	}

	return wishlist, level, nil
}
