package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

const (
	fieldQuiz  = "quiz"
	fieldBands = "bands"
)

// ContentCache caches quiz content in Redis (one hash per quiz) and falls back to a
// source on cache miss. Content is stored as:
//
//	HSET quiz:{namespace}:content quiz  {quiz JSON}
//	HSET quiz:{namespace}:content bands {bands JSON}
type ContentCache struct {
	client    *redis.Client
	source    app.ContentSource
	namespace string
	ttl       time.Duration
	sf        singleflight.Group
	rndMu     sync.Mutex
	rnd       *rand.Rand
}

func NewContentCache(client *redis.Client, source app.ContentSource, namespace string, ttl time.Duration) *ContentCache {
	return &ContentCache{
		client:    client,
		source:    source,
		namespace: namespace,
		ttl:       ttl,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ContentCache) LoadQuiz(ctx context.Context) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := c.load(ctx, fieldQuiz, &quiz, func() (any, error) {
		return c.source.LoadQuiz(ctx)
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (c *ContentCache) LoadResultBands(ctx context.Context) ([]domain.ResultBand, error) {
	var bands []domain.ResultBand
	err := c.load(ctx, fieldBands, &bands, func() (any, error) {
		return c.source.LoadResultBands(ctx)
	})
	if err != nil {
		return nil, err
	}
	return bands, nil
}

// load reads field into dst, filling it from fetch on a miss. Redis errors degrade to
// a direct fetch.
func (c *ContentCache) load(ctx context.Context, field string, dst any, fetch func() (any, error)) error {
	key := c.contentKey()

	if raw, err := c.client.HGet(ctx, key, field).Bytes(); err == nil {
		if err := json.Unmarshal(raw, dst); err == nil {
			return nil
		}
	}

	result, err, _ := c.sf.Do(field, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.HGet(ctx, key, field).Bytes(); err == nil {
			return raw, nil
		}

		value, err := fetch()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", field, err)
		}

		pipe := c.client.Pipeline()
		pipe.HSet(ctx, key, field, raw)
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)
		return raw, nil
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(result.([]byte), dst); err != nil {
		return fmt.Errorf("decode cached %s: %w", field, err)
	}
	return nil
}

// Invalidate drops cached content so the next load hits the source.
func (c *ContentCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.contentKey()).Err()
}

func (c *ContentCache) contentKey() string {
	return "quiz:" + c.namespace + ":content"
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
