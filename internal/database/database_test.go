package database

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wishwell/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	return db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestInitializeWithQueryDSN(t *testing.T) {
	// A DSN that already carries query parameters must still open cleanly.
	db, err := Initialize("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal("Failed to initialize database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	if _, err := CreateUser(db, "test@example.com", "Test User", "password123"); err != nil {
		t.Fatal("Failed to create user:", err)
	}
}

func TestUserCreationAndAuthentication(t *testing.T) {
	db := setupTestDB(t)

	user, err := CreateUser(db, "test@example.com", "Test User", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email 'test@example.com', got %s", user.Email)
	}

	if user.Password == "password123" {
		t.Error("Password must be stored hashed")
	}

	authUser, err := AuthenticateUser(db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to authenticate user:", err)
	}

	if authUser.ID != user.ID {
		t.Errorf("Expected user ID %s, got %s", user.ID, authUser.ID)
	}

	if _, err = AuthenticateUser(db, "test@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("Expected authentication to fail with wrong password")
	}

	if _, err = CreateUser(db, "test@example.com", "Other User", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Error("Expected duplicate email to be rejected")
	}
}

func TestWishlistPublicIDLifecycle(t *testing.T) {
	db := setupTestDB(t)

	owner, err := CreateUser(db, "owner@example.com", "Owner", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	private, err := CreateWishlist(db, owner.ID, "Birthday", "", false)
	if err != nil {
		t.Fatal("Failed to create wishlist:", err)
	}
	if private.PublicID != nil {
		t.Error("Private wishlist must not get a public id at creation")
	}

	public, err := CreateWishlist(db, owner.ID, "Christmas", "", true)
	if err != nil {
		t.Fatal("Failed to create wishlist:", err)
	}
	if public.PublicID == nil || *public.PublicID == "" {
		t.Fatal("Public wishlist must get a non-empty public id")
	}

	// Round-trip: the sharing token resolves back to the same wishlist.
	resolved, err := GetWishlistByPublicID(db, *public.PublicID)
	if err != nil {
		t.Fatal("Failed to resolve wishlist by public id:", err)
	}
	if resolved.ID != public.ID {
		t.Errorf("Expected wishlist %s, got %s", public.ID, resolved.ID)
	}

	// Making a private wishlist public assigns a token.
	updated, err := UpdateWishlist(db, private, WishlistUpdate{IsPublic: boolPtr(true)}, owner.ID)
	if err != nil {
		t.Fatal("Failed to update wishlist:", err)
	}
	if updated.PublicID == nil {
		t.Fatal("Going public must assign a public id")
	}
	firstToken := *updated.PublicID

	// Going private again keeps the token reserved; going public once more
	// must not reissue it.
	updated, err = UpdateWishlist(db, updated, WishlistUpdate{IsPublic: boolPtr(false)}, owner.ID)
	if err != nil {
		t.Fatal("Failed to update wishlist:", err)
	}
	if updated.PublicID == nil || *updated.PublicID != firstToken {
		t.Error("Public id must survive the wishlist going private")
	}

	updated, err = UpdateWishlist(db, updated, WishlistUpdate{IsPublic: boolPtr(true)}, owner.ID)
	if err != nil {
		t.Fatal("Failed to update wishlist:", err)
	}
	if *updated.PublicID != firstToken {
		t.Error("Re-publishing must keep the original public id")
	}
}

func TestUpdateWishlistOmittedFieldsUnchanged(t *testing.T) {
	db := setupTestDB(t)

	owner, _ := CreateUser(db, "owner@example.com", "Owner", "password123")
	wishlist, err := CreateWishlist(db, owner.ID, "Birthday", "Gift ideas", true)
	if err != nil {
		t.Fatal("Failed to create wishlist:", err)
	}
	token := *wishlist.PublicID

	// A rename must not touch description, visibility, or the sharing token.
	if _, err := UpdateWishlist(db, wishlist, WishlistUpdate{Name: strPtr("Birthday 2026")}, owner.ID); err != nil {
		t.Fatal("Failed to update wishlist:", err)
	}

	stored, err := GetWishlist(db, wishlist.ID)
	if err != nil {
		t.Fatal("Failed to reload wishlist:", err)
	}
	if stored.Name != "Birthday 2026" {
		t.Errorf("Expected name 'Birthday 2026', got %s", stored.Name)
	}
	if !stored.IsPublic {
		t.Error("Rename must not flip the wishlist private")
	}
	if stored.Description != "Gift ideas" {
		t.Errorf("Rename must not clear the description, got %q", stored.Description)
	}
	if stored.PublicID == nil || *stored.PublicID != token {
		t.Error("Rename must not touch the public id")
	}
}

func TestUpdateItemOmittedFieldsUnchanged(t *testing.T) {
	db := setupTestDB(t)

	owner, _ := CreateUser(db, "owner@example.com", "Owner", "password123")
	wishlist, _ := CreateWishlist(db, owner.ID, "Birthday", "", false)

	price := 120.0
	item, err := CreateItem(db, wishlist.ID, owner.ID, ItemInput{
		Name:        "Bike",
		Description: "Red one",
		Price:       &price,
		URL:         "https://example.com/bike",
	})
	if err != nil {
		t.Fatal("Failed to create item:", err)
	}

	if _, err := UpdateItem(db, item, owner.ID, ItemUpdate{Name: strPtr("Mountain Bike")}); err != nil {
		t.Fatal("Failed to update item:", err)
	}

	stored, err := GetItem(db, wishlist.ID, item.ID)
	if err != nil {
		t.Fatal("Failed to reload item:", err)
	}
	if stored.Name != "Mountain Bike" {
		t.Errorf("Expected name 'Mountain Bike', got %s", stored.Name)
	}
	if stored.Description != "Red one" {
		t.Errorf("Rename must not clear the description, got %q", stored.Description)
	}
	if stored.Price == nil || *stored.Price != price {
		t.Error("Rename must not touch the price")
	}
	if stored.URL != "https://example.com/bike" {
		t.Errorf("Rename must not clear the url, got %q", stored.URL)
	}
}

func TestCollaboratorUpsertIdempotence(t *testing.T) {
	db := setupTestDB(t)

	owner, _ := CreateUser(db, "owner@example.com", "Owner", "password123")
	collab, _ := CreateUser(db, "collab@example.com", "Collab", "password123")
	wishlist, err := CreateWishlist(db, owner.ID, "Birthday", "", false)
	if err != nil {
		t.Fatal("Failed to create wishlist:", err)
	}

	first, created, err := UpsertCollaborator(db, wishlist.ID, collab.ID, false)
	if err != nil {
		t.Fatal("Failed to upsert collaborator:", err)
	}
	if !created {
		t.Error("First upsert should report a new grant")
	}
	if first.CanEdit {
		t.Error("Expected can_edit=false")
	}

	// Same grant again: no second row, permission updated in place.
	second, created, err := UpsertCollaborator(db, wishlist.ID, collab.ID, true)
	if err != nil {
		t.Fatal("Failed to upsert collaborator:", err)
	}
	if created {
		t.Error("Second upsert must update, not create")
	}
	if !second.CanEdit {
		t.Error("Expected can_edit=true after upsert")
	}

	var count int64
	if err := db.Model(&models.Collaborator{}).Where("wishlist_id = ?", wishlist.ID).Count(&count).Error; err != nil {
		t.Fatal("Failed to count grants:", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one grant row, got %d", count)
	}
}

func TestCreateCollaboratorRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)

	owner, _ := CreateUser(db, "owner@example.com", "Owner", "password123")
	collab, _ := CreateUser(db, "collab@example.com", "Collab", "password123")
	wishlist, _ := CreateWishlist(db, owner.ID, "Birthday", "", true)

	if _, err := CreateCollaborator(db, wishlist.ID, collab.ID, false); err != nil {
		t.Fatal("Failed to create collaborator:", err)
	}

	if _, err := CreateCollaborator(db, wishlist.ID, collab.ID, false); !errors.Is(err, ErrDuplicateGrant) {
		t.Errorf("Expected ErrDuplicateGrant, got %v", err)
	}
}

func TestDeleteWishlistCascades(t *testing.T) {
	db := setupTestDB(t)

	owner, _ := CreateUser(db, "owner@example.com", "Owner", "password123")
	collab, _ := CreateUser(db, "collab@example.com", "Collab", "password123")
	wishlist, _ := CreateWishlist(db, owner.ID, "Birthday", "", false)

	if _, err := CreateItem(db, wishlist.ID, owner.ID, ItemInput{Name: "Bike"}); err != nil {
		t.Fatal("Failed to create item:", err)
	}
	if _, err := CreateCollaborator(db, wishlist.ID, collab.ID, true); err != nil {
		t.Fatal("Failed to create collaborator:", err)
	}

	if err := DeleteWishlist(db, wishlist.ID); err != nil {
		t.Fatal("Failed to delete wishlist:", err)
	}

	var items, grants int64
	db.Model(&models.Item{}).Where("wishlist_id = ?", wishlist.ID).Count(&items)
	db.Model(&models.Collaborator{}).Where("wishlist_id = ?", wishlist.ID).Count(&grants)
	if items != 0 || grants != 0 {
		t.Errorf("Expected cascade delete, found %d items and %d grants", items, grants)
	}

	// The losing side of a concurrent delete sees a clean not-found.
	if err := DeleteWishlist(db, wishlist.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGetUserWishlistsUnion(t *testing.T) {
	db := setupTestDB(t)

	alice, _ := CreateUser(db, "alice@example.com", "Alice", "password123")
	bob, _ := CreateUser(db, "bob@example.com", "Bob", "password123")

	owned, _ := CreateWishlist(db, alice.ID, "Mine", "", false)
	shared, _ := CreateWishlist(db, bob.ID, "Bobs", "", false)
	if _, err := CreateCollaborator(db, shared.ID, alice.ID, false); err != nil {
		t.Fatal("Failed to create collaborator:", err)
	}

	// A wishlist Alice has nothing to do with must not show up.
	if _, err := CreateWishlist(db, bob.ID, "Unrelated", "", true); err != nil {
		t.Fatal("Failed to create wishlist:", err)
	}

	wishlists, err := GetUserWishlists(db, alice.ID)
	if err != nil {
		t.Fatal("Failed to list wishlists:", err)
	}

	if len(wishlists) != 2 {
		t.Fatalf("Expected 2 wishlists, got %d", len(wishlists))
	}
	found := map[string]bool{}
	for _, w := range wishlists {
		found[w.ID] = true
	}
	if !found[owned.ID] || !found[shared.ID] {
		t.Error("Expected both the owned and the collaborative wishlist")
	}

	// Recency ordering holds across both segments: the owned wishlist was
	// touched last, so it must come first even though Bob's was created later.
	if _, err := UpdateWishlist(db, owned, WishlistUpdate{Name: strPtr("Mine, renamed")}, alice.ID); err != nil {
		t.Fatal("Failed to update wishlist:", err)
	}
	wishlists, err = GetUserWishlists(db, alice.ID)
	if err != nil {
		t.Fatal("Failed to list wishlists:", err)
	}
	if wishlists[0].ID != owned.ID {
		t.Errorf("Expected most recently updated wishlist first, got %s", wishlists[0].Name)
	}

	// And the other way round: touching the collaborative one moves it up.
	if _, err := UpdateWishlist(db, shared, WishlistUpdate{Name: strPtr("Bobs, renamed")}, bob.ID); err != nil {
		t.Fatal("Failed to update wishlist:", err)
	}
	wishlists, err = GetUserWishlists(db, alice.ID)
	if err != nil {
		t.Fatal("Failed to list wishlists:", err)
	}
	if wishlists[0].ID != shared.ID {
		t.Errorf("Expected most recently updated wishlist first, got %s", wishlists[0].Name)
	}
}

func TestGetItemScopedToWishlist(t *testing.T) {
	db := setupTestDB(t)

	owner, _ := CreateUser(db, "owner@example.com", "Owner", "password123")
	first, _ := CreateWishlist(db, owner.ID, "First", "", false)
	second, _ := CreateWishlist(db, owner.ID, "Second", "", false)

	item, err := CreateItem(db, first.ID, owner.ID, ItemInput{Name: "Bike"})
	if err != nil {
		t.Fatal("Failed to create item:", err)
	}

	if _, err := GetItem(db, first.ID, item.ID); err != nil {
		t.Error("Item should be reachable through its own wishlist:", err)
	}

	if _, err := GetItem(db, second.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Error("Item must not be addressable through another wishlist")
	}
}
