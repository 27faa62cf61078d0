package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	blogRepo BlogRepository
	ping     func(ctx context.Context) error
}

// New initializes a new Database struct backed by a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogRepo: NewGormBlogRepo(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

// NewInMemory returns a Database whose repositories live in process memory.
// Nothing survives a restart.
func NewInMemory() Database {
	return Database{
		blogRepo: NewMemoryBlogRepo(),
		ping:     func(context.Context) error { return nil },
	}
}

func (d Database) BlogRepo() BlogRepository {
	return d.blogRepo
}

// Ping reports whether the backing store is reachable.
func (d Database) Ping(ctx context.Context) error {
	if d.ping == nil {
		return nil
	}
	return d.ping(ctx)
}
