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

type collaboratorRequest struct {
	UserID  string `json:"userId" binding:"required,uuid"`
	CanEdit bool   `json:"canEdit"`
}

type collaboratorUpdateRequest struct {
	CanEdit bool `json:"canEdit"`
}

func handleListCollaborators(c *gin.Context) {
	wishlist, _, err := loadWishlist(c, access.CanView)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	collaborators, err := database.GetCollaborators(db, wishlist.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborators": collaborators})
}

// handleAddCollaborator adds a collaborator or, if one already exists for the
// same user, updates the existing grant's permission. The upsert is
// deliberate: re-adding is how owners change permissions, not an error.
func handleAddCollaborator(c *gin.Context) {
	var req collaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("userId is required"))
		return
	}

	wishlist, _, err := loadWishlist(c, access.IsOwner)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)

	if _, err := database.GetUserByID(db, req.UserID); err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("user not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	// The owner already holds full rights; a self-grant would violate the
	// owner/collaborator disjointness the listing endpoint relies on.
	if req.UserID == wishlist.UserID {
		httperr.Respond(c, httperr.Conflict("owner cannot be added as a collaborator"))
		return
	}

	collaborator, created, err := database.UpsertCollaborator(db, wishlist.ID, req.UserID, req.CanEdit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	logger.Info("collaborator upserted", logrus.Fields{
		"wishlist_id": wishlist.ID,
		"can_edit":    collaborator.CanEdit,
	})

	if created {
		c.JSON(http.StatusCreated, gin.H{
			"message":      "collaborator added successfully",
			"collaborator": collaborator,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "collaborator permissions updated successfully",
		"collaborator": collaborator,
	})
}

func handleUpdateCollaborator(c *gin.Context) {
	var req collaboratorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("canEdit must be a boolean"))
		return
	}

	wishlist, _, err := loadWishlist(c, access.IsOwner)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	collaborator, err := database.UpdateCollaborator(db, wishlist.ID, c.Param("userId"), req.CanEdit)
	if err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("collaborator not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "collaborator permissions updated successfully",
		"collaborator": collaborator,
	})
}

func handleRemoveCollaborator(c *gin.Context) {
	wishlist, _, err := loadWishlist(c, access.IsOwner)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	if err := database.DeleteCollaborator(db, wishlist.ID, c.Param("userId")); err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("collaborator not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collaborator removed successfully"})
}
