package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wishwell/internal/models"
)

func wishlist(ownerID string, isPublic bool, grants ...models.Collaborator) *models.Wishlist {
	return &models.Wishlist{
		ID:            "wl-1",
		UserID:        ownerID,
		IsPublic:      isPublic,
		Collaborators: grants,
	}
}

func grant(userID string, canEdit bool) models.Collaborator {
	return models.Collaborator{WishlistID: "wl-1", UserID: userID, CanEdit: canEdit}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		wishlist *models.Wishlist
		userID   string
		want     Level
	}{
		{
			name:     "owner of private wishlist",
			wishlist: wishlist("alice", false),
			userID:   "alice",
			want:     Owner,
		},
		{
			name:     "owner of public wishlist stays owner",
			wishlist: wishlist("alice", true),
			userID:   "alice",
			want:     Owner,
		},
		{
			name:     "editor grant on private wishlist",
			wishlist: wishlist("alice", false, grant("bob", true)),
			userID:   "bob",
			want:     Editor,
		},
		{
			name:     "editor grant survives wishlist being public",
			wishlist: wishlist("alice", true, grant("bob", true)),
			userID:   "bob",
			want:     Editor,
		},
		{
			name:     "viewer grant on private wishlist",
			wishlist: wishlist("alice", false, grant("bob", false)),
			userID:   "bob",
			want:     Viewer,
		},
		{
			name:     "viewer grant does not upgrade on public wishlist",
			wishlist: wishlist("alice", true, grant("bob", false)),
			userID:   "bob",
			want:     Viewer,
		},
		{
			name:     "stranger on public wishlist",
			wishlist: wishlist("alice", true),
			userID:   "carol",
			want:     Viewer,
		},
		{
			name:     "stranger on private wishlist",
			wishlist: wishlist("alice", false),
			userID:   "carol",
			want:     NoAccess,
		},
		{
			name:     "anonymous on public wishlist",
			wishlist: wishlist("alice", true),
			userID:   "",
			want:     Viewer,
		},
		{
			name:     "anonymous on private wishlist",
			wishlist: wishlist("alice", false),
			userID:   "",
			want:     NoAccess,
		},
		{
			name:     "nil wishlist",
			wishlist: nil,
			userID:   "alice",
			want:     NoAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.wishlist, tt.userID))
		})
	}
}

func TestOwnerOnlyWhenIDMatches(t *testing.T) {
	// Owner level must be exactly "requester id equals owner id", never via a
	// grant or the public flag.
	w := wishlist("alice", true, grant("bob", true))
	assert.Equal(t, Owner, Decide(w, "alice"))
	assert.NotEqual(t, Owner, Decide(w, "bob"))
	assert.NotEqual(t, Owner, Decide(w, "carol"))
}

func TestCapabilityHelpers(t *testing.T) {
	assert.False(t, CanView(NoAccess))
	assert.True(t, CanView(Viewer))
	assert.True(t, CanView(Editor))
	assert.True(t, CanView(Owner))

	assert.False(t, CanEdit(NoAccess))
	assert.False(t, CanEdit(Viewer))
	assert.True(t, CanEdit(Editor))
	assert.True(t, CanEdit(Owner))

	assert.False(t, IsOwner(Editor))
	assert.True(t, IsOwner(Owner))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "owner", Owner.String())
	assert.Equal(t, "editor", Editor.String())
	assert.Equal(t, "viewer", Viewer.String())
	assert.Equal(t, "none", NoAccess.String())
}
