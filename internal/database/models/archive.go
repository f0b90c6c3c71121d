package models

import (
	"time"
)

// Archive records one processed email archive. Only batch-level history is
// persisted; the extracted records themselves live for a single
// request/response cycle and are never stored.
type Archive struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	SourceKind   string    `gorm:"size:20;default:'mbox'" json:"source_kind"` // mbox, upload, imap
	MessageCount int       `json:"message_count"`
	RecordCount  int       `json:"record_count"`
	DurationMs   int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// SourceKind values for Archive rows
const (
	SourceKindMbox   = "mbox"
	SourceKindUpload = "upload"
	SourceKindIMAP   = "imap"
)
