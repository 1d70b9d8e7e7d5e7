package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wishwell/internal/access"
	"wishwell/internal/database"
	"wishwell/internal/httperr"
	"wishwell/internal/logger"
)

type wishlistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// wishlistUpdateRequest uses pointers for the optional fields so a PATCH that
// omits them leaves the stored values alone.
type wishlistUpdateRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsPublic    *bool   `json:"isPublic"`
}

func handleListWishlists(c *gin.Context) {
	db := getDB(c)
	user := currentUser(c)

	wishlists, err := database.GetUserWishlists(db, user.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlists": wishlists})
}

func handleCreateWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("name is required and must be at most 100 characters"))
		return
	}

	db := getDB(c)
	user := currentUser(c)

	wishlist, err := database.CreateWishlist(db, user.ID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	wishlist.Owner = user

	logger.Info("wishlist created", logrus.Fields{
		"wishlist_id": wishlist.ID,
		"public":      wishlist.IsPublic,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "wishlist created successfully",
		"wishlist": wishlist,
	})
}

func handleGetWishlist(c *gin.Context) {
	wishlist, level, err := loadWishlist(c, access.CanView)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": wishlist,
		"role":     level.String(),
	})
}

func handleUpdateWishlist(c *gin.Context) {
	var req wishlistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("name is required and must be at most 100 characters"))
		return
	}

	wishlist, _, err := loadWishlist(c, access.CanEdit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	user := currentUser(c)

	updated, err := database.UpdateWishlist(db, wishlist, database.WishlistUpdate{
		Name:        &req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}, user.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "wishlist updated successfully",
		"wishlist": updated,
	})
}

func handleDeleteWishlist(c *gin.Context) {
	wishlist, _, err := loadWishlist(c, access.IsOwner)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	if err := database.DeleteWishlist(db, wishlist.ID); err != nil {
		// A concurrent delete may have won the race between load and delete.
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("wishlist not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	logger.Info("wishlist deleted", logrus.Fields{"wishlist_id": wishlist.ID})

	c.JSON(http.StatusOK, gin.H{"message": "wishlist deleted successfully"})
}
