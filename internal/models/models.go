package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"fullName" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the safe projection embedded in wishlist and collaborator
// responses. It never carries the password hash.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

type Wishlist struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic" gorm:"not null;default:false"`
	// PublicID is assigned the first time the wishlist is made public and is
	// never cleared or reused afterwards, even if the wishlist goes private
	// again.
	PublicID *string `json:"publicId,omitempty" gorm:"type:uuid;uniqueIndex"`

	UserID      string `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedByID string `json:"createdById" gorm:"type:uuid;not null"`
	UpdatedByID string `json:"updatedById" gorm:"type:uuid;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner         *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items         []Item         `json:"items,omitempty" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
	Collaborators []Collaborator `json:"collaborators,omitempty" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

type Item struct {
	ID          string   `json:"id" gorm:"type:uuid;primaryKey"`
	WishlistID  string   `json:"wishlistId" gorm:"type:uuid;not null;index"`
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description"`
	Price       *float64 `json:"price,omitempty"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"imageUrl"`

	// Attribution only, not ownership: access to an item is decided entirely
	// by the parent wishlist.
	CreatedByID string `json:"createdById" gorm:"type:uuid;not null"`
	UpdatedByID string `json:"updatedById" gorm:"type:uuid;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CreatedBy *User `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedBy *User `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`
}

// Collaborator grants a non-owner Viewer (CanEdit=false) or Editor
// (CanEdit=true) access to a wishlist. The composite primary key guarantees at
// most one grant per (wishlist, user) pair.
type Collaborator struct {
	WishlistID string    `json:"wishlistId" gorm:"type:uuid;primaryKey"`
	UserID     string    `json:"userId" gorm:"type:uuid;primaryKey"`
	CanEdit    bool      `json:"canEdit" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
