package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookstore-service/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	BookCachePrefix   = "book:detail:"
	BookVersionPrefix = "book:version:"

	// NoVersion is returned by Get when the version could not be read; Set
	// ignores it.
	NoVersion int64 = -1

	writeTimeout = 500 * time.Millisecond
)

// BookCache stores book responses in Redis. Every failure is treated as a
// miss; the database stays the source of truth.
//
// Entries are keyed by a per-book version that Invalidate bumps. A reader
// that missed before an update can only write under the old version, which
// is never read again.
type BookCache struct {
	redis  redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

func NewBookCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *BookCache {
	return &BookCache{redis: client, ttl: ttl, logger: logger}
}

func bookKey(id uuid.UUID, version int64) string {
	return fmt.Sprintf("%s%s:v%d", BookCachePrefix, id, version)
}

func versionKey(id uuid.UUID) string {
	return BookVersionPrefix + id.String()
}

// Get returns the cached book and the version it was looked up under. On a
// miss the version is what Set must be given.
func (c *BookCache) Get(ctx context.Context, id uuid.UUID) (*models.BookResponse, int64, bool) {
	version, err := c.redis.Get(ctx, versionKey(id)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		version = 0
	case err != nil:
		c.logger.Warn("Book cache version read failed", zap.String("book_id", id.String()), zap.Error(err))
		return nil, NoVersion, false
	}

	data, err := c.redis.Get(ctx, bookKey(id, version)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Book cache read failed", zap.String("book_id", id.String()), zap.Error(err))
		}
		return nil, version, false
	}

	var book models.BookResponse
	if err := json.Unmarshal(data, &book); err != nil {
		c.logger.Warn("Failed to unmarshal cached book", zap.String("book_id", id.String()), zap.Error(err))
		return nil, version, false
	}
	return &book, version, true
}

// Set caches the book under the version returned by the Get that missed.
func (c *BookCache) Set(ctx context.Context, book *models.BookResponse, version int64) {
	if version == NoVersion {
		return
	}
	data, err := json.Marshal(book)
	if err != nil {
		c.logger.Warn("Failed to marshal book for cache", zap.Error(err))
		return
	}
	key := bookKey(book.ID, version)

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache book", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate moves the book to a new version. Entries under older versions
// are left to expire.
func (c *BookCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.redis.Incr(ctx, versionKey(id)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached book", zap.String("book_id", id.String()), zap.Error(err))
	}
}
