package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
	"github.com/radaiko/ReadRiser/internal/storage"
	"github.com/radaiko/ReadRiser/internal/store"
	"github.com/radaiko/ReadRiser/pkg/apperr"
	"github.com/radaiko/ReadRiser/pkg/logger"
)

// FileService is the file access and sharing engine.
type FileService struct {
	Users store.Users
	Files store.Files
	Blob  storage.Blob
}

func NewFileService(users store.Users, files store.Files, blob storage.Blob) *FileService {
	return &FileService{Users: users, Files: files, Blob: blob}
}

// canAccess resolves the file owner and evaluates the access predicate.
// Access means: owner, in the shared set, admin, or parent of the kid owner.
func (s *FileService) canAccess(ctx context.Context, user *models.User, file *models.File) (bool, error) {
	var owner *models.User
	if user.Role == models.RoleParent && file.OwnerID != user.ID {
		var err error
		owner, err = s.Users.ByID(ctx, file.OwnerID)
		if err != nil {
			return false, fmt.Errorf("loading file owner: %w", err)
		}
	}
	return CanAccessFile(user, file, owner), nil
}

// Upload stores the payload under a freshly minted id and persists the
// metadata record. Retrying a failed upload mints a new id, so caller-side
// retries duplicate rather than overwrite.
func (s *FileService) Upload(ctx context.Context, uploaderID uuid.UUID, fileName, contentType string, size int64, payload io.Reader) (*models.File, error) {
	uploader, err := s.Users.ByID(ctx, uploaderID)
	if err != nil {
		return nil, fmt.Errorf("loading uploader: %w", err)
	}
	if uploader == nil {
		return nil, apperr.ActorNotFound()
	}
	if size <= 0 {
		return nil, apperr.InvalidRequest("file payload is empty")
	}

	id := uuid.New()
	storagePath := fmt.Sprintf("%s/%s/%s", uploader.ID.String(), id.String(), fileName)
	if err := s.Blob.Save(ctx, storagePath, payload, size, contentType); err != nil {
		return nil, fmt.Errorf("storing file payload: %w", err)
	}

	now := time.Now().UTC()
	file := &models.File{
		ID:           id,
		FileName:     fileName,
		ContentType:  contentType,
		Size:         size,
		UploaderID:   uploader.ID,
		OwnerID:      uploader.ID,
		SharedWith:   models.UUIDList{},
		StoragePath:  storagePath,
		UploadedAt:   now,
		LastModified: now,
	}
	if err := s.Files.Save(ctx, file); err != nil {
		// best effort: don't leave an orphaned blob behind
		if cleanupErr := s.Blob.Delete(ctx, storagePath); cleanupErr != nil {
			logger.Error("upload_cleanup_failed", cleanupErr, map[string]interface{}{
				"storage_path": storagePath,
			})
		}
		return nil, fmt.Errorf("saving file record: %w", err)
	}

	logger.InfoWithActor(uploader.ID.String(), "file_uploaded", map[string]interface{}{
		"file_id":      file.ID.String(),
		"file_name":    fileName,
		"file_size":    size,
		"content_type": contentType,
	})

	return file, nil
}

// GetContent streams the file's bytes to a caller that passed the access
// check. The caller owns the returned reader.
func (s *FileService) GetContent(ctx context.Context, fileID, requesterID uuid.UUID) (io.ReadCloser, *models.File, error) {
	requester, err := s.Users.ByID(ctx, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading requester: %w", err)
	}
	if requester == nil {
		return nil, nil, apperr.ActorNotFound()
	}

	file, err := s.Files.ByID(ctx, fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading file: %w", err)
	}
	if file == nil {
		return nil, nil, apperr.NotFound("file not found")
	}

	allowed, err := s.canAccess(ctx, requester, file)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, apperr.PermissionDenied("insufficient permissions")
	}

	reader, err := s.Blob.Open(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file payload: %w", err)
	}
	return reader, file, nil
}

// GetMetadata returns one file's metadata, history included, access-gated
// the same way as the content.
func (s *FileService) GetMetadata(ctx context.Context, fileID, requesterID uuid.UUID) (*models.File, error) {
	requester, err := s.Users.ByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("loading requester: %w", err)
	}
	if requester == nil {
		return nil, apperr.ActorNotFound()
	}

	file, err := s.Files.ByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}
	if file == nil {
		return nil, apperr.NotFound("file not found")
	}

	allowed, err := s.canAccess(ctx, requester, file)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.PermissionDenied("insufficient permissions")
	}
	return file, nil
}

// ListAccessible returns every file the requester can access, with the full
// sharing history (the history is audit-visible to anyone with access).
func (s *FileService) ListAccessible(ctx context.Context, requesterID uuid.UUID) ([]models.File, error) {
	requester, err := s.Users.ByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("loading requester: %w", err)
	}
	if requester == nil {
		return nil, apperr.ActorNotFound()
	}

	all, err := s.Files.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	accessible := make([]models.File, 0, len(all))
	for _, file := range all {
		file := file
		allowed, err := s.canAccess(ctx, requester, &file)
		if err != nil {
			return nil, err
		}
		if allowed {
			accessible = append(accessible, file)
		}
	}
	return accessible, nil
}

type ShareResult struct {
	FileID     uuid.UUID   `json:"fileID"`
	SharedWith []uuid.UUID `json:"sharedWith"`
	SharedAt   time.Time   `json:"sharedAt"`
}

// Share grants the targets access to the file. Access, not ownership, gates
// sharing: anyone the file was shared with may re-share it. Targets that do
// not exist or fail the share rule are dropped silently; the result lists
// only the ids that passed. The shared set is idempotent but every passed
// share appends a history entry, so redundant re-shares still leave a trail.
func (s *FileService) Share(ctx context.Context, fileID uuid.UUID, targetIDs []uuid.UUID, sharerID uuid.UUID) (*ShareResult, error) {
	sharer, err := s.Users.ByID(ctx, sharerID)
	if err != nil {
		return nil, fmt.Errorf("loading sharer: %w", err)
	}
	if sharer == nil {
		return nil, apperr.ActorNotFound()
	}

	file, err := s.Files.ByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}
	if file == nil {
		return nil, apperr.NotFound("file not found")
	}

	allowed, err := s.canAccess(ctx, sharer, file)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.PermissionDenied("insufficient permissions")
	}

	// A re-share links back to the history entry that let the sharer in.
	parentShareID := latestGrantTo(file, sharer.ID)

	now := time.Now().UTC()
	granted := make([]uuid.UUID, 0, len(targetIDs))
	for _, targetID := range targetIDs {
		target, err := s.Users.ByID(ctx, targetID)
		if err != nil {
			return nil, fmt.Errorf("loading share target: %w", err)
		}
		if target == nil {
			continue
		}
		if !CanShareWith(sharer, target) {
			continue
		}

		granted = append(granted, target.ID)
		if !file.SharedWith.Contains(target.ID) {
			file.SharedWith = append(file.SharedWith, target.ID)
		}
		file.SharingHistory = append(file.SharingHistory, models.ShareEvent{
			FileID:        file.ID,
			SharedBy:      sharer.ID,
			SharedWith:    target.ID,
			ParentShareID: parentShareID,
			SharedAt:      now,
		})
	}

	if len(granted) > 0 {
		file.LastModified = now
		if err := s.Files.Save(ctx, file); err != nil {
			return nil, fmt.Errorf("saving file: %w", err)
		}
		logger.InfoWithActor(sharer.ID.String(), "file_shared", map[string]interface{}{
			"file_id":     file.ID.String(),
			"granted":     len(granted),
			"requested":   len(targetIDs),
			"shared_with": uuidStrings(granted),
		})
	}

	return &ShareResult{FileID: file.ID, SharedWith: granted, SharedAt: now}, nil
}

// latestGrantTo returns the id of the most recent history entry naming
// userID as recipient, or nil when the user's access does not derive from a
// share (owner, admin, parent).
func latestGrantTo(file *models.File, userID uuid.UUID) *uuid.UUID {
	for i := len(file.SharingHistory) - 1; i >= 0; i-- {
		if file.SharingHistory[i].SharedWith == userID {
			id := file.SharingHistory[i].ID
			return &id
		}
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	return values
}
