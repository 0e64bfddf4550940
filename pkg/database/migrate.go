package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将 schedule-arranger 的表结构迁移到内嵌的最新版本
// 库处于 dirty 状态（上次迁移中途失败）时拒绝启动，需人工修复
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}
	latest, err := latestVersion(src)
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "schema_migrations"})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	from, dirty, err := currentVersion(m)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("数据库迁移处于 dirty 状态（version=%d），请修复后重启", from)
	}
	if from > latest {
		return fmt.Errorf("数据库版本 %d 高于程序内嵌的迁移版本 %d", from, latest)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	to, _, err := currentVersion(m)
	if err != nil {
		return err
	}
	logger.Info("数据库迁移完成",
		zap.Uint("from_version", from),
		zap.Uint("to_version", to),
		zap.Uint("applied", to-from),
	)
	return nil
}

// currentVersion 读取当前版本，空库视为 0
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("读取迁移版本失败: %w", err)
	}
	return v, dirty, nil
}

// latestVersion 内嵌迁移中的最高版本号
func latestVersion(src source.Driver) (uint, error) {
	v, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("读取首个迁移失败: %w", err)
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, fmt.Errorf("遍历迁移失败: %w", err)
		}
		v = next
	}
}
