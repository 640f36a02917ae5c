// Package store is the persistence boundary of the engines. The engines only
// ever see these interfaces; each Save is atomic with respect to other Saves
// on the same collection, but nothing holds a lock across a read-decide-write
// sequence, so concurrent writers race last-write-wins by design.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
)

// Users is the user collection. Lookups return (nil, nil) when the record
// does not exist; errors are reserved for storage failures.
type Users interface {
	All(ctx context.Context) ([]models.User, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ByUsername matches case-insensitively.
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Files is the file metadata collection. All and ByID return records with
// their sharing history loaded in sharedAt order.
type Files interface {
	All(ctx context.Context) ([]models.File, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	Save(ctx context.Context, file *models.File) error
	Delete(ctx context.Context, id uuid.UUID) error
}
