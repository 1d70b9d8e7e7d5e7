package database

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wishwell/internal/models"
)

func CreateWishlist(db *gorm.DB, userID, name, description string, isPublic bool) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
		UserID:      userID,
		CreatedByID: userID,
		UpdatedByID: userID,
	}

	if isPublic {
		publicID := uuid.New().String()
		wishlist.PublicID = &publicID
	}

	if err := db.Create(wishlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	return wishlist, nil
}

// GetWishlist loads a wishlist with its collaborator grants, which the access
// decision needs, plus owner and item details for the response.
func GetWishlist(db *gorm.DB, wishlistID string) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{}
	err := db.
		Preload("Owner").
		Preload("Collaborators").
		Preload("Collaborators.User").
		Preload("Items").
		Preload("Items.CreatedBy").
		Preload("Items.UpdatedBy").
		First(wishlist, "id = ?", wishlistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	return wishlist, nil
}

func GetWishlistByPublicID(db *gorm.DB, publicID string) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{}
	err := db.
		Preload("Owner").
		Preload("Collaborators").
		Preload("Items").
		Preload("Items.CreatedBy").
		Preload("Items.UpdatedBy").
		First(wishlist, "public_id = ?", publicID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query wishlist by public id: %w", err)
	}

	return wishlist, nil
}

// GetUserWishlists returns the union of wishlists the user owns and wishlists
// where the user holds a collaborator grant, most recently updated first. The
// two sets are disjoint as long as owners never hold grants on their own
// wishlists; results are still de-duplicated by id in case that invariant is
// ever violated.
func GetUserWishlists(db *gorm.DB, userID string) ([]models.Wishlist, error) {
	var owned []models.Wishlist
	err := db.
		Preload("Owner").
		Preload("Items").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&owned).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query owned wishlists: %w", err)
	}

	var collaborative []models.Wishlist
	err = db.
		Preload("Owner").
		Preload("Items").
		Joins("JOIN collaborators ON collaborators.wishlist_id = wishlists.id").
		Where("collaborators.user_id = ?", userID).
		Order("wishlists.updated_at DESC").
		Find(&collaborative).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query collaborative wishlists: %w", err)
	}

	seen := make(map[string]bool, len(owned))
	wishlists := make([]models.Wishlist, 0, len(owned)+len(collaborative))
	for _, w := range append(owned, collaborative...) {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		wishlists = append(wishlists, w)
	}

	sort.SliceStable(wishlists, func(i, j int) bool {
		return wishlists[i].UpdatedAt.After(wishlists[j].UpdatedAt)
	})

	return wishlists, nil
}

func GetPublicWishlists(db *gorm.DB) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	err := db.
		Preload("Owner").
		Preload("Items").
		Where("is_public = ?", true).
		Order("updated_at DESC").
		Find(&wishlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query public wishlists: %w", err)
	}
	return wishlists, nil
}

// WishlistUpdate carries the metadata fields a PATCH may change. Nil fields
// were absent from the request and must be left untouched.
type WishlistUpdate struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// UpdateWishlist applies the provided metadata changes and stamps the acting
// user; omitted fields keep their stored values. A public id is assigned the
// first time the wishlist is made public; once assigned it is permanently
// reserved, even across later private toggles.
func UpdateWishlist(db *gorm.DB, wishlist *models.Wishlist, upd WishlistUpdate, actorID string) (*models.Wishlist, error) {
	fields := []string{"UpdatedByID", "UpdatedAt"}

	if upd.Name != nil {
		wishlist.Name = *upd.Name
		fields = append(fields, "Name")
	}
	if upd.Description != nil {
		wishlist.Description = *upd.Description
		fields = append(fields, "Description")
	}
	if upd.IsPublic != nil {
		wishlist.IsPublic = *upd.IsPublic
		fields = append(fields, "IsPublic")
		if wishlist.IsPublic && wishlist.PublicID == nil {
			publicID := uuid.New().String()
			wishlist.PublicID = &publicID
			fields = append(fields, "PublicID")
		}
	}
	wishlist.UpdatedByID = actorID

	if err := db.Model(wishlist).Select(fields).Updates(wishlist).Error; err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}

	return wishlist, nil
}

// DeleteWishlist removes the wishlist, its items and its collaborator grants
// in a single transaction. Returns ErrNotFound if the wishlist is already
// gone, so concurrent deletes degrade to a clean 404 for the loser.
func DeleteWishlist(db *gorm.DB, wishlistID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", wishlistID).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete wishlist items: %w", err)
		}
		if err := tx.Where("wishlist_id = ?", wishlistID).Delete(&models.Collaborator{}).Error; err != nil {
			return fmt.Errorf("failed to delete collaborator grants: %w", err)
		}

		res := tx.Delete(&models.Wishlist{}, "id = ?", wishlistID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete wishlist: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
