package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staylens/core/internal/database/models"
	"github.com/staylens/core/internal/services"
	"github.com/staylens/core/internal/source"
)

// uploadSource reads a spooled upload as an mbox archive while history rows
// keep the original upload filename.
type uploadSource struct {
	path string
}

func (u uploadSource) Read() ([]source.RawMessage, error) {
	return source.NewMboxSource(u.path).Read()
}

// ReviewHandler serves parsed review records over HTTP. Both endpoints
// return the full ordered record array as JSON, or a single structured
// error object with a non-2xx status; there is no partial-batch output.
type ReviewHandler struct {
	reviewService *services.ReviewService
	logService    *services.LogService
	uploadDir     string
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(reviewService *services.ReviewService, logService *services.LogService, uploadDir string) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logService:    logService,
		uploadDir:     uploadDir,
	}
}

// Data parses a server-side archive path and returns its records
// GET /api/data?file=archive.mbox
func (h *ReviewHandler) Data(c *gin.Context) {
	path := c.Query("file")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No file path provided. Use ?file=archive.mbox",
		})
		return
	}

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "File not found: " + path,
		})
		return
	}

	records, err := h.reviewService.ParseArchive(path, models.SourceKindMbox)
	if err != nil {
		h.writeParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Upload accepts a multipart archive upload, spools it to a temp file and
// returns its records
// POST /api/upload
func (h *ReviewHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No file part",
		})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No selected file",
		})
		return
	}

	tmp, err := os.CreateTemp(h.uploadDir, "upload-*.mbox")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to spool upload: " + err.Error(),
		})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save upload: " + err.Error(),
		})
		return
	}

	records, err := h.reviewService.ParseSource(filepath.Base(file.Filename), models.SourceKindUpload, uploadSource{path: tmpPath})
	if err != nil {
		h.writeParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Archives returns parse history
// GET /api/archives
func (h *ReviewHandler) Archives(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	archives, err := h.reviewService.ListArchives(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list archives",
		})
		return
	}

	c.JSON(http.StatusOK, archives)
}

// Logs returns recent operation logs, optionally filtered by module
// GET /api/logs?module=parse
func (h *ReviewHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var logs []models.Log
	var err error
	if module := c.Query("module"); module != "" {
		logs, err = h.logService.GetLogsByModule(models.LogModule(module), limit)
	} else {
		logs, err = h.logService.GetRecentLogs(limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to query logs",
		})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// writeParseError maps service errors to the single error payload
func (h *ReviewHandler) writeParseError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrArchiveNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
