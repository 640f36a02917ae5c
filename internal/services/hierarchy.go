// Package services holds the two authorization engines and the role
// hierarchy rules they share. The hierarchy rules are pure predicates over
// roles and user records; they never touch storage.
package services

import (
	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
)

// CanCreate reports whether a user with creatorRole may create a user with
// targetRole. Admins create parents and kids, parents create kids only, kids
// create nobody.
func CanCreate(creatorRole, targetRole models.Role) bool {
	switch creatorRole {
	case models.RoleAdmin:
		return targetRole == models.RoleParent || targetRole == models.RoleKid
	case models.RoleParent:
		return targetRole == models.RoleKid
	default:
		return false
	}
}

// CanCreateKidUnder restricts parents to attaching kids to themselves.
// Admins may attach a kid to any parent.
func CanCreateKidUnder(creatorRole models.Role, creatorID, parentID uuid.UUID) bool {
	if creatorRole == models.RoleParent {
		return creatorID == parentID
	}
	return creatorRole == models.RoleAdmin
}

// CanView reports whether viewer may see target. Kids see every kid across
// all families; that flat kid pool is intentional, in contrast with the
// parent-scoped isolation of the parent rule.
func CanView(viewer, target *models.User) bool {
	switch viewer.Role {
	case models.RoleAdmin:
		return true
	case models.RoleParent:
		if target.Role == models.RoleAdmin || target.Role == models.RoleParent {
			return true
		}
		return target.ParentID != nil && *target.ParentID == viewer.ID
	case models.RoleKid:
		if target.ID == viewer.ID {
			return true
		}
		if viewer.ParentID != nil && target.ID == *viewer.ParentID {
			return true
		}
		return target.Role == models.RoleKid
	default:
		return false
	}
}

// CanShareWith reports whether sharer may add target to a file's shared set.
func CanShareWith(sharer, target *models.User) bool {
	switch sharer.Role {
	case models.RoleAdmin:
		return true
	case models.RoleParent:
		if target.Role == models.RoleParent {
			return true
		}
		return target.Role == models.RoleKid && target.ParentID != nil && *target.ParentID == sharer.ID
	case models.RoleKid:
		return target.Role == models.RoleKid
	default:
		return false
	}
}

// CanAccessFile reports whether user may read file. owner is the file's owner
// record, or nil when it no longer resolves; only the parent branch needs it.
func CanAccessFile(user *models.User, file *models.File, owner *models.User) bool {
	if file.OwnerID == user.ID {
		return true
	}
	if file.SharedWith.Contains(user.ID) {
		return true
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	if user.Role == models.RoleParent && owner != nil && owner.Role == models.RoleKid {
		return owner.ParentID != nil && *owner.ParentID == user.ID
	}
	return false
}
