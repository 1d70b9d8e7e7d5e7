// Package access holds the single place where wishlist roles are computed.
// Handlers never re-derive owner or collaborator checks on their own.
package access

import (
	"wishwell/internal/models"
)

// Level is the outcome of an access decision, ordered by capability.
type Level int

const (
	// NoAccess requests must be rejected with the same error as a missing
	// wishlist so the existence of private wishlists stays hidden.
	NoAccess Level = iota
	// Viewer can read the wishlist, its items and its collaborator list.
	Viewer
	// Editor can additionally change wishlist metadata and manage items.
	Editor
	// Owner can additionally delete the wishlist and manage collaborators.
	Owner
)

func (l Level) String() string {
	switch l {
	case Owner:
		return "owner"
	case Editor:
		return "editor"
	case Viewer:
		return "viewer"
	default:
		return "none"
	}
}

// Decide computes the requesting user's level on a wishlist. The wishlist must
// be loaded with its collaborator grants. userID may be empty for anonymous
// requests.
//
// The ordering is deliberate: ownership and explicit grants win over the
// public flag, so making a wishlist public never downgrades a collaborator's
// edit rights, and a grant survives the wishlist going private again.
func Decide(w *models.Wishlist, userID string) Level {
	if w == nil {
		return NoAccess
	}

	if userID != "" && userID == w.UserID {
		return Owner
	}

	if userID != "" {
		for _, collab := range w.Collaborators {
			if collab.UserID == userID {
				if collab.CanEdit {
					return Editor
				}
				return Viewer
			}
		}
	}

	if w.IsPublic {
		return Viewer
	}

	return NoAccess
}

// CanView reports whether the level allows reading the wishlist by internal id.
func CanView(l Level) bool {
	return l > NoAccess
}

// CanEdit reports whether the level allows changing wishlist metadata and
// creating, updating or deleting items.
func CanEdit(l Level) bool {
	return l >= Editor
}

// IsOwner reports whether the level allows deleting the wishlist and managing
// its collaborators.
func IsOwner(l Level) bool {
	return l == Owner
}
