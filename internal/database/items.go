package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wishwell/internal/models"
)

// ItemInput carries the caller-settable item fields. The caller must have
// passed the wishlist access check before any of these functions run.
type ItemInput struct {
	Name        string
	Description string
	Price       *float64
	URL         string
	ImageURL    string
}

func CreateItem(db *gorm.DB, wishlistID, actorID string, in ItemInput) (*models.Item, error) {
	item := &models.Item{
		ID:          uuid.New().String(),
		WishlistID:  wishlistID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		URL:         in.URL,
		ImageURL:    in.ImageURL,
		CreatedByID: actorID,
		UpdatedByID: actorID,
	}

	if err := db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	if err := db.Preload("CreatedBy").Preload("UpdatedBy").First(item, "id = ?", item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload item: %w", err)
	}

	return item, nil
}

// GetItem fetches an item scoped to its wishlist so an item id from another
// wishlist can never be addressed through the wrong parent.
func GetItem(db *gorm.DB, wishlistID, itemID string) (*models.Item, error) {
	item := &models.Item{}
	err := db.Where("id = ? AND wishlist_id = ?", itemID, wishlistID).First(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query item: %w", err)
	}
	return item, nil
}

// ItemUpdate carries the item fields a PATCH may change. Nil fields were
// absent from the request and must be left untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	URL         *string
	ImageURL    *string
}

// UpdateItem applies the provided field changes and stamps the acting user;
// omitted fields keep their stored values.
func UpdateItem(db *gorm.DB, item *models.Item, actorID string, upd ItemUpdate) (*models.Item, error) {
	fields := []string{"UpdatedByID", "UpdatedAt"}

	if upd.Name != nil {
		item.Name = *upd.Name
		fields = append(fields, "Name")
	}
	if upd.Description != nil {
		item.Description = *upd.Description
		fields = append(fields, "Description")
	}
	if upd.Price != nil {
		item.Price = upd.Price
		fields = append(fields, "Price")
	}
	if upd.URL != nil {
		item.URL = *upd.URL
		fields = append(fields, "URL")
	}
	if upd.ImageURL != nil {
		item.ImageURL = *upd.ImageURL
		fields = append(fields, "ImageURL")
	}
	item.UpdatedByID = actorID

	if err := db.Model(item).Select(fields).Updates(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := db.Preload("CreatedBy").Preload("UpdatedBy").First(item, "id = ?", item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload item: %w", err)
	}

	return item, nil
}

func DeleteItem(db *gorm.DB, wishlistID, itemID string) error {
	res := db.Where("id = ? AND wishlist_id = ?", itemID, wishlistID).Delete(&models.Item{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
