package source

import "errors"

var (
	// ErrArchiveNotFound indicates the archive path does not exist
	ErrArchiveNotFound = errors.New("archive not found")
	// ErrEmptyArchive indicates the archive contained no messages
	ErrEmptyArchive = errors.New("archive contains no messages")
)

// RawMessage is one email record as read from an archive. Every field is
// optional text; the extraction pipeline treats empty strings as absent.
// A RawMessage is immutable once ingested.
type RawMessage struct {
	Subject string
	From    string
	To      string
	Date    string
	Body    string
}

// Source yields raw messages from an archive or mailbox in arrival order.
// Format correctness is the source's responsibility; downstream extraction
// is best-effort on whatever bodies come out.
type Source interface {
	Read() ([]RawMessage, error)
}
