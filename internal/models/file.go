package models

import (
	"time"

	"github.com/google/uuid"
)

type StoredFile struct {
	ID        int64      `json:"id"`
	ContextID int64      `json:"context_id"`
	Component string     `json:"component"`
	FileArea  string     `json:"file_area"`
	ItemID    int64      `json:"item_id"`
	FilePath  string     `json:"file_path"`
	FileName  string     `json:"file_name"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	MimeType  string     `json:"mime_type"`
	Size      int64      `json:"size"`
	Content   []byte     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}
