package models

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleParent Role = "parent"
	RoleKid    Role = "kid"
)

func IsValidRole(value string) bool {
	switch Role(value) {
	case RoleAdmin, RoleParent, RoleKid:
		return true
	default:
		return false
	}
}

// User is an identity record. Usernames are unique case-insensitively; the
// creation engine enforces that, the index only backs the exact-case form.
// ParentID is set iff the role is kid, and ChildrenIDs is maintained
// bidirectionally when a kid is created under a parent.
type User struct {
	BaseModel
	Username    string     `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName string     `json:"displayName" gorm:"type:varchar(255);not null"`
	Role        Role       `json:"role" gorm:"type:varchar(20);not null;index"`
	ParentID    *uuid.UUID `json:"parentID,omitempty" gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `json:"createdBy" gorm:"type:uuid"`
	ChildrenIDs UUIDList   `json:"childrenIDs" gorm:"type:text"`
}
