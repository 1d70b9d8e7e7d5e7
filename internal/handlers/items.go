package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wishwell/internal/access"
	"wishwell/internal/database"
	"wishwell/internal/httperr"
)

type itemRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Description string   `json:"description" binding:"max=500"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	URL         string   `json:"url" binding:"omitempty,url"`
	ImageURL    string   `json:"imageUrl" binding:"omitempty,url"`
}

func (r itemRequest) input() database.ItemInput {
	return database.ItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		URL:         r.URL,
		ImageURL:    r.ImageURL,
	}
}

// itemUpdateRequest uses pointers for the optional fields so a PATCH that
// omits them leaves the stored values alone.
type itemUpdateRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	URL         *string  `json:"url" binding:"omitempty,url"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
}

func handleCreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("item name is required; price and urls must be valid"))
		return
	}

	wishlist, _, err := loadWishlist(c, access.CanEdit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	user := currentUser(c)

	item, err := database.CreateItem(db, wishlist.ID, user.ID, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "item added to wishlist successfully",
		"item":    item,
	})
}

func handleUpdateItem(c *gin.Context) {
	var req itemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("item name is required; price and urls must be valid"))
		return
	}

	wishlist, _, err := loadWishlist(c, access.CanEdit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	user := currentUser(c)

	item, err := database.GetItem(db, wishlist.ID, c.Param("itemId"))
	if err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("item not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	updated, err := database.UpdateItem(db, item, user.ID, database.ItemUpdate{
		Name:        &req.Name,
		Description: req.Description,
		Price:       req.Price,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "item updated successfully",
		"item":    updated,
	})
}

func handleDeleteItem(c *gin.Context) {
	wishlist, _, err := loadWishlist(c, access.CanEdit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := getDB(c)
	if err := database.DeleteItem(db, wishlist.ID, c.Param("itemId")); err != nil {
		if err == database.ErrNotFound {
			httperr.Respond(c, httperr.NotFound("item not found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed from wishlist successfully"})
}
