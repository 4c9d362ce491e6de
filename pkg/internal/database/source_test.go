package database

import (
	"path/filepath"
	"testing"

	"github.com/alpixn/site/pkg/internal/config"
)

func TestSqliteFoldsUnicode(t *testing.T) {
	db, err := NewGorm(config.Database{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "site.db"),
	}, false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	var folded string
	if err := db.Raw("SELECT "+FoldFunc+"(?)", "ÜBER Design").Scan(&folded).Error; err != nil {
		t.Fatalf("fold: %v", err)
	}
	if folded != "über design" {
		t.Errorf("folded = %q, want %q", folded, "über design")
	}
}

func TestNewGormRejectsUnknownDriver(t *testing.T) {
	if _, err := NewGorm(config.Database{Driver: "oracle"}, false); err == nil {
		t.Error("NewGorm accepted an unknown driver")
	}
}
