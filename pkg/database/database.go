package database

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"

	"video-share/pkg/models"
	"video-share/pkg/repository"
)

const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Open connects to the database. SQLite is limited to one connection so that
// per-connection pragmas hold and ":memory:" databases are shared.
func Open(driver, dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if log != nil {
		db.SetLogger(log.WithField("component", "gorm"))
		db.LogMode(log.IsLevelEnabled(logrus.DebugLevel))
	}

	if driver == DriverSQLite {
		db.DB().SetMaxOpenConns(1)
		pragmas := []string{
			"PRAGMA foreign_keys = ON",
			"PRAGMA busy_timeout = 5000",
		}
		for _, pragma := range pragmas {
			if err := db.Exec(pragma).Error; err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
			}
		}
	}
	return db, nil
}

// Migrate creates or extends the users and videos tables. On servers that
// support it a foreign key from videos.user_id to users.id is added once.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Video{}).Error; err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	dialect := db.Dialect()
	if dialect.GetName() == DriverSQLite {
		return nil
	}
	keyName := dialect.BuildKeyName("videos", "user_id", "users(id)", "foreign")
	if dialect.HasForeignKey("videos", keyName) {
		return nil
	}
	if err := db.Model(&models.Video{}).AddForeignKey("user_id", "users(id)", "RESTRICT", "RESTRICT").Error; err != nil {
		return fmt.Errorf("add videos.user_id foreign key: %w", err)
	}
	return nil
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case gorm.IsRecordNotFoundError(err):
		return repository.ErrNotFound
	case isDuplicateEntryError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	default:
		return err
	}
}

func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
