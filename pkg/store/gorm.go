package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is one row of the kv_entries table.
type kvEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// GormKV stores values in a SQL table through gorm.
type GormKV struct {
	db *gorm.DB
}

// Open connects to driver ("sqlite", "mysql" or "postgres") and migrates the
// kv_entries table.
func Open(driver, dsn string) (*GormKV, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("store: unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect database: %w", err)
	}
	return NewGormKV(db)
}

// NewGormKV wraps an existing connection and migrates the kv_entries table.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if db == nil {
		return nil, errors.New("store: gorm db is nil")
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("store: migrate kv_entries: %w", err)
	}
	return &GormKV{db: db}, nil
}

// Load returns the stored value or nil when the key has no row.
func (g *GormKV) Load(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := g.db.WithContext(ctx).Where(&kvEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Save upserts the value for key.
func (g *GormKV) Save(ctx context.Context, key string, data []byte) error {
	entry := kvEntry{Key: key, Value: string(data), UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	return nil
}
