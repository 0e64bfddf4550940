package database

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"debug": gormlogger.Info,
		"info":  gormlogger.Warn,
		"warn":  gormlogger.Warn,
		"error": gormlogger.Error,
		"":      gormlogger.Error,
	}
	for in, want := range cases {
		if got := GormLogLevel(in); got != want {
			t.Errorf("GormLogLevel(%q) 期望 %v，实际 %v", in, want, got)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("读取内嵌迁移失败: %v", err)
	}
	if len(entries) == 0 || len(entries)%2 != 0 {
		t.Fatalf("迁移文件应成对出现（up/down），实际数量=%d", len(entries))
	}
}

func TestLatestVersion(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("加载内嵌迁移失败: %v", err)
	}
	v, err := latestVersion(src)
	if err != nil {
		t.Fatalf("latestVersion 失败: %v", err)
	}
	if v != 1 {
		t.Errorf("期望最新迁移版本为 1，实际=%d", v)
	}
}
