package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/staylens/core/internal/database/models"
	"github.com/staylens/core/internal/pipeline"
	"github.com/staylens/core/internal/source"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	tmpFile, err := os.CreateTemp("", "review_test_*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&models.Archive{}, &models.Log{}); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("Failed to migrate: %v", err)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile.Name())
	}

	return db, cleanup
}

func newTestReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(db, pipeline.NewProcessor(nil, 0), NewLogService(db))
}

const testMbox = "From alice@example.com Mon Jun 10 12:00:00 2024\n" +
	"From: Airbnb <automated@airbnb.com>\n" +
	"To: host@example.net\n" +
	"Subject: Alice wrote you a review\n" +
	"\n" +
	"Alice left a 5-star review\n"

func writeTestMbox(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.mbox")
	if err := os.WriteFile(path, []byte(testMbox), 0o644); err != nil {
		t.Fatalf("write mbox: %v", err)
	}
	return path
}

func TestParseArchive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	service := newTestReviewService(db)

	records, err := service.ParseArchive(writeTestMbox(t), models.SourceKindMbox)
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].CustomerName == nil || *records[0].CustomerName != "Alice" {
		t.Errorf("CustomerName = %v", records[0].CustomerName)
	}
	if records[0].Rating == nil || *records[0].Rating != "5" {
		t.Errorf("Rating = %v", records[0].Rating)
	}

	// A history row is recorded; the extracted records themselves never
	// touch the database.
	var archives []models.Archive
	if err := db.Find(&archives).Error; err != nil {
		t.Fatalf("query archives: %v", err)
	}
	if len(archives) != 1 {
		t.Fatalf("got %d archive rows, want 1", len(archives))
	}
	if archives[0].Name != "reviews.mbox" || archives[0].SourceKind != models.SourceKindMbox {
		t.Errorf("archive row = %+v", archives[0])
	}
	if archives[0].MessageCount != 1 || archives[0].RecordCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", archives[0].MessageCount, archives[0].RecordCount)
	}

	var logs []models.Log
	if err := db.Where("module = ?", string(models.LogModuleParse)).Find(&logs).Error; err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("got %d parse logs, want 1", len(logs))
	}
}

func TestParseArchiveMissingFile(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	service := newTestReviewService(db)

	_, err := service.ParseArchive(filepath.Join(t.TempDir(), "nope.mbox"), models.SourceKindMbox)
	if !errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("err = %v, want ErrArchiveNotFound", err)
	}

	// Failures are logged but leave no history row.
	var count int64
	db.Model(&models.Archive{}).Count(&count)
	if count != 0 {
		t.Errorf("got %d archive rows, want 0", count)
	}
}

func TestParseArchiveEmptyFile(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	service := newTestReviewService(db)

	path := filepath.Join(t.TempDir(), "empty.mbox")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write mbox: %v", err)
	}

	_, err := service.ParseArchive(path, models.SourceKindMbox)
	if !errors.Is(err, ErrParseFailed) {
		t.Errorf("err = %v, want ErrParseFailed", err)
	}
}

type stubSource struct {
	msgs []source.RawMessage
	err  error
}

func (s *stubSource) Read() ([]source.RawMessage, error) {
	return s.msgs, s.err
}

func TestParseSource(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	service := newTestReviewService(db)

	src := &stubSource{msgs: []source.RawMessage{
		{Subject: "Bob wrote you a review", Body: "Bob left a 4-star review"},
		{Subject: "unrelated", Body: "nothing to extract"},
	}}
	records, err := service.ParseSource("inbox", models.SourceKindIMAP, src)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if *records[0].CustomerName != "Bob" {
		t.Errorf("CustomerName = %v", *records[0].CustomerName)
	}
	if records[1].CustomerName != nil {
		t.Errorf("records[1].CustomerName = %v, want nil", *records[1].CustomerName)
	}
}

func TestListArchives(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	service := newTestReviewService(db)

	for i := 0; i < 3; i++ {
		if _, err := service.ParseArchive(writeTestMbox(t), models.SourceKindMbox); err != nil {
			t.Fatalf("ParseArchive: %v", err)
		}
	}

	archives, err := service.ListArchives(2)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(archives) != 2 {
		t.Errorf("got %d archives, want 2", len(archives))
	}

	archives, err = service.ListArchives(0)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(archives) != 3 {
		t.Errorf("default limit returned %d archives, want 3", len(archives))
	}
}
