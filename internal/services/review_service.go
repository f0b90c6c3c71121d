package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/staylens/core/internal/database/models"
	"github.com/staylens/core/internal/pipeline"
	"github.com/staylens/core/internal/source"
	"gorm.io/gorm"
)

var (
	// ErrArchiveNotFound indicates the requested archive path does not exist
	ErrArchiveNotFound = errors.New("archive not found")
	// ErrParseFailed indicates the archive could not be parsed
	ErrParseFailed = errors.New("archive parse failed")
)

// ReviewService runs the extraction pipeline over an archive and records
// batch history. Extracted records are returned, never persisted.
type ReviewService struct {
	db        *gorm.DB
	processor *pipeline.Processor
	logs      *LogService
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(db *gorm.DB, processor *pipeline.Processor, logs *LogService) *ReviewService {
	return &ReviewService{
		db:        db,
		processor: processor,
		logs:      logs,
	}
}

// ParseArchive reads an mbox archive from a local path and returns the
// assembled records in archive order. Input-access failures abort the whole
// batch; there is no per-message recovery.
func (s *ReviewService) ParseArchive(path, sourceKind string) ([]pipeline.Record, error) {
	return s.ParseSource(filepath.Base(path), sourceKind, source.NewMboxSource(path))
}

// ParseSource runs the pipeline over any message source under the given
// archive name.
func (s *ReviewService) ParseSource(name, sourceKind string, src source.Source) ([]pipeline.Record, error) {
	start := time.Now()

	msgs, err := src.Read()
	if err != nil {
		s.logs.LogParse(name, sourceKind, 0, 0, time.Since(start).Milliseconds(), err)
		if errors.Is(err, source.ErrArchiveNotFound) {
			return nil, ErrArchiveNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	records := s.processor.ProcessAll(msgs)
	duration := time.Since(start).Milliseconds()

	// History row and log are best-effort; the batch result stands even
	// if bookkeeping fails.
	s.db.Create(&models.Archive{
		Name:         name,
		SourceKind:   sourceKind,
		MessageCount: len(msgs),
		RecordCount:  len(records),
		DurationMs:   duration,
	})
	s.logs.LogParse(name, sourceKind, len(msgs), len(records), duration, nil)

	return records, nil
}

// ListArchives returns parse history, newest first
func (s *ReviewService) ListArchives(limit int) ([]models.Archive, error) {
	if limit <= 0 {
		limit = 50
	}

	var archives []models.Archive
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&archives).Error; err != nil {
		return nil, err
	}
	return archives, nil
}
