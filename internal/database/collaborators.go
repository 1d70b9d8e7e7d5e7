package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishwell/internal/models"
)

func GetCollaborators(db *gorm.DB, wishlistID string) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	err := db.
		Preload("User").
		Where("wishlist_id = ?", wishlistID).
		Order("created_at ASC").
		Find(&collaborators).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query collaborators: %w", err)
	}
	return collaborators, nil
}

func GetCollaborator(db *gorm.DB, wishlistID, userID string) (*models.Collaborator, error) {
	collaborator := &models.Collaborator{}
	err := db.Where("wishlist_id = ? AND user_id = ?", wishlistID, userID).First(collaborator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query collaborator: %w", err)
	}
	return collaborator, nil
}

// UpsertCollaborator inserts a grant or, if one already exists for the
// (wishlist, user) pair, updates its can_edit flag in place. The ON CONFLICT
// clause rides on the composite primary key, so a concurrent insert for the
// same pair can never produce a second row. Returns whether a new grant was
// created.
func UpsertCollaborator(db *gorm.DB, wishlistID, userID string, canEdit bool) (*models.Collaborator, bool, error) {
	existing, err := GetCollaborator(db, wishlistID, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	created := existing == nil

	collaborator := &models.Collaborator{
		WishlistID: wishlistID,
		UserID:     userID,
		CanEdit:    canEdit,
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wishlist_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"can_edit", "updated_at"}),
	}).Create(collaborator).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert collaborator: %w", err)
	}

	if err := db.Preload("User").First(collaborator, "wishlist_id = ? AND user_id = ?", wishlistID, userID).Error; err != nil {
		return nil, false, fmt.Errorf("failed to reload collaborator: %w", err)
	}

	return collaborator, created, nil
}

// CreateCollaborator is the strict insert used by adoption: an existing grant
// is an error, not an update. A unique-constraint failure from a concurrent
// insert surfaces as ErrDuplicateGrant.
func CreateCollaborator(db *gorm.DB, wishlistID, userID string, canEdit bool) (*models.Collaborator, error) {
	collaborator := &models.Collaborator{
		WishlistID: wishlistID,
		UserID:     userID,
		CanEdit:    canEdit,
	}

	if err := db.Create(collaborator).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateGrant
		}
		return nil, fmt.Errorf("failed to create collaborator: %w", err)
	}

	return collaborator, nil
}

func UpdateCollaborator(db *gorm.DB, wishlistID, userID string, canEdit bool) (*models.Collaborator, error) {
	collaborator, err := GetCollaborator(db, wishlistID, userID)
	if err != nil {
		return nil, err
	}

	collaborator.CanEdit = canEdit
	err = db.Model(collaborator).
		Where("wishlist_id = ? AND user_id = ?", wishlistID, userID).
		Update("can_edit", canEdit).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update collaborator: %w", err)
	}

	if err := db.Preload("User").First(collaborator, "wishlist_id = ? AND user_id = ?", wishlistID, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload collaborator: %w", err)
	}

	return collaborator, nil
}

func DeleteCollaborator(db *gorm.DB, wishlistID, userID string) error {
	res := db.Where("wishlist_id = ? AND user_id = ?", wishlistID, userID).Delete(&models.Collaborator{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete collaborator: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
