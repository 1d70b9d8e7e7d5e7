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

type addByPublicIDRequest struct {
	PublicID string `json:"publicId" binding:"required"`
}

func handlePublicWishlists(c *gin.Context) {
	db := getDB(c)

	wishlists, err := database.GetPublicWishlists(db)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlists": wishlists})
}

// handleWishlistByPublicID resolves a wishlist through its sharing token, no
// authentication required. A wishlist that went private after the token was
// handed out answers with a distinct "private" signal rather than 404. When a
// valid bearer token accompanies the request, the response reports the
// caller's actual role; anonymous callers are plain viewers.
func handleWishlistByPublicID(c *gin.Context) {
	db := getDB(c)

	wishlist, err := database.GetWishlistByPublicID(db, c.Param("publicId"))
	if err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("wishlist not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !wishlist.IsPublic {
		httperr.Respond(c, httperr.Forbidden("this wishlist is private"))
		return
	}

	userID := ""
	if v, ok := c.Get("user_id"); ok {
		userID = v.(string)
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": wishlist,
		"role":     access.Decide(wishlist, userID).String(),
	})
}

// handleAddByPublicID adopts a publicly shared wishlist into the requesting
// user's dashboard as a read-only collaborator. Edit rights must be granted
// separately by the owner.
func handleAddByPublicID(c *gin.Context) {
	var req addByPublicIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("publicId is required"))
		return
	}

	db := getDB(c)
	user := currentUser(c)

	wishlist, err := database.GetWishlistByPublicID(db, req.PublicID)
	if err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("wishlist not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	if wishlist.UserID == user.ID {
		httperr.Respond(c, httperr.Conflict("you already own this wishlist"))
		return
	}

	if _, err := database.GetCollaborator(db, wishlist.ID, user.ID); err == nil {
		httperr.Respond(c, httperr.Conflict("you are already a collaborator on this wishlist"))
		return
	} else if err != database.ErrNotFound {
		httperr.Respond(c, err)
		return
	}

	if _, err := database.CreateCollaborator(db, wishlist.ID, user.ID, false); err != nil {
		// Lost a race against the owner adding us at the same moment.
		if err == database.ErrDuplicateGrant {
			httperr.Respond(c, httperr.Conflict("you are already a collaborator on this wishlist"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	logger.Info("wishlist adopted", logrus.Fields{"wishlist_id": wishlist.ID})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "wishlist added to your dashboard successfully",
		"wishlist": wishlist,
	})
}
