package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is the metadata record for one uploaded blob. UploaderID and OwnerID
// are set once at upload and never change; SharedWith only grows, and
// SharingHistory is append-only.
type File struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	FileName       string       `json:"fileName" gorm:"type:varchar(255);not null"`
	ContentType    string       `json:"contentType" gorm:"type:varchar(255);not null"`
	Size           int64        `json:"size" gorm:"not null;default:0"`
	UploaderID     uuid.UUID    `json:"uploaderID" gorm:"type:uuid;not null"`
	OwnerID        uuid.UUID    `json:"ownerID" gorm:"type:uuid;not null;index"`
	SharedWith     UUIDList     `json:"sharedWith" gorm:"type:text"`
	StoragePath    string       `json:"-" gorm:"type:text;not null"`
	UploadedAt     time.Time    `json:"uploadedAt"`
	LastModified   time.Time    `json:"lastModified"`
	SharingHistory []ShareEvent `json:"sharingHistory" gorm:"foreignKey:FileID"`
}

func (f *File) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	now := time.Now().UTC()
	if f.UploadedAt.IsZero() {
		f.UploadedAt = now
	}
	if f.LastModified.IsZero() {
		f.LastModified = now
	}
	return nil
}

// ShareEvent is one entry in a file's sharing history. Every share attempt
// that passes the permission check appends an entry, including redundant
// re-shares; entries are never edited or removed.
type ShareEvent struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FileID        uuid.UUID  `json:"fileID" gorm:"type:uuid;not null;index"`
	SharedBy      uuid.UUID  `json:"sharedBy" gorm:"type:uuid;not null"`
	SharedWith    uuid.UUID  `json:"sharedWith" gorm:"type:uuid;not null"`
	ParentShareID *uuid.UUID `json:"parentShareID,omitempty" gorm:"type:uuid"`
	SharedAt      time.Time  `json:"sharedAt"`
}

func (ShareEvent) TableName() string {
	return "share_events"
}

func (e *ShareEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SharedAt.IsZero() {
		e.SharedAt = time.Now().UTC()
	}
	return nil
}
