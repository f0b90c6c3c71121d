package services

import (
	"testing"

	"github.com/staylens/core/internal/database/models"
)

func TestGetLogsByModule(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	service := NewLogService(db)

	if err := service.LogWarn(models.LogModuleCLI, "key_reset", "API key reset from the command line", nil); err != nil {
		t.Fatalf("LogWarn: %v", err)
	}
	if err := service.LogInfo(models.LogModuleParse, "parse", "Archive parsed successfully", nil); err != nil {
		t.Fatalf("LogInfo: %v", err)
	}

	logs, err := service.GetLogsByModule(models.LogModuleCLI, 10)
	if err != nil {
		t.Fatalf("GetLogsByModule: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d cli logs, want 1", len(logs))
	}
	if logs[0].Level != string(models.LogLevelWarn) || logs[0].Action != "key_reset" {
		t.Errorf("log = %+v", logs[0])
	}

	logs, err = service.GetLogsByModule(models.LogModuleAPI, 10)
	if err != nil {
		t.Fatalf("GetLogsByModule: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("got %d api logs, want 0", len(logs))
	}
}
