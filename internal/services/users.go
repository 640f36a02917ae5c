package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
	"github.com/radaiko/ReadRiser/internal/store"
	"github.com/radaiko/ReadRiser/pkg/apperr"
	"github.com/radaiko/ReadRiser/pkg/logger"
)

// UserService is the user visibility and creation engine.
type UserService struct {
	Users store.Users
}

func NewUserService(users store.Users) *UserService {
	return &UserService{Users: users}
}

type CreateUserRequest struct {
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Role        string     `json:"role"`
	ParentID    *uuid.UUID `json:"parentID"`
}

// Create validates the request against the role hierarchy and persists the
// new user. Creating a kid is a two-phase write: the kid is saved first
// (the write that can still fail on the username index), then the parent's
// children list is appended and saved. The two saves are not atomic; a crash
// between them leaves a kid whose parent does not list it.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, creatorID uuid.UUID) (*models.User, error) {
	creator, err := s.Users.ByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("loading creator: %w", err)
	}
	if creator == nil {
		return nil, apperr.ActorNotFound()
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperr.InvalidRequest("username is required")
	}
	if !models.IsValidRole(req.Role) {
		return nil, apperr.InvalidRequest("invalid role")
	}
	role := models.Role(req.Role)

	if !CanCreate(creator.Role, role) {
		return nil, apperr.PermissionDenied("not allowed to create this role")
	}

	var parent *models.User
	if role == models.RoleKid {
		if req.ParentID == nil {
			return nil, apperr.InvalidRequest("parentID is required for kid accounts")
		}
		parent, err = s.Users.ByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("loading parent: %w", err)
		}
		if parent == nil || parent.Role != models.RoleParent {
			return nil, apperr.InvalidRequest("parentID must reference an existing parent")
		}
		if !CanCreateKidUnder(creator.Role, creator.ID, parent.ID) {
			return nil, apperr.PermissionDenied("parents may only create kids under themselves")
		}
	} else if req.ParentID != nil {
		return nil, apperr.InvalidRequest("parentID is only valid for kid accounts")
	}

	existing, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("username already taken")
	}

	user := &models.User{
		Username:    username,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Role:        role,
		CreatedBy:   creator.ID,
	}
	if parent != nil {
		user.ParentID = &parent.ID
	}

	if err := s.Users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	if parent != nil {
		parent.ChildrenIDs = append(parent.ChildrenIDs, user.ID)
		if err := s.Users.Save(ctx, parent); err != nil {
			logger.Error("parent_children_update_failed", err, map[string]interface{}{
				"parent_id": parent.ID.String(),
				"kid_id":    user.ID.String(),
			})
			return nil, fmt.Errorf("updating parent children: %w", err)
		}
	}

	logger.InfoWithActor(creator.ID.String(), "user_created", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
	})

	return user, nil
}

// ListVisible returns every user the actor may see, in repository order.
func (s *UserService) ListVisible(ctx context.Context, actorID uuid.UUID) ([]models.User, error) {
	actor, err := s.Users.ByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("loading actor: %w", err)
	}
	if actor == nil {
		return nil, apperr.ActorNotFound()
	}

	all, err := s.Users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	visible := make([]models.User, 0, len(all))
	for _, candidate := range all {
		candidate := candidate
		if CanView(actor, &candidate) {
			visible = append(visible, candidate)
		}
	}
	return visible, nil
}

// GetByID returns the target user, NotFound when the id does not resolve
// (a benign miss, checked before any visibility rule), or PermissionDenied
// when the requester may not see it.
func (s *UserService) GetByID(ctx context.Context, targetID, requesterID uuid.UUID) (*models.User, error) {
	requester, err := s.Users.ByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("loading requester: %w", err)
	}
	if requester == nil {
		return nil, apperr.ActorNotFound()
	}

	target, err := s.Users.ByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("loading target: %w", err)
	}
	if target == nil {
		return nil, apperr.NotFound("user not found")
	}
	if !CanView(requester, target) {
		return nil, apperr.PermissionDenied("insufficient permissions")
	}
	return target, nil
}
