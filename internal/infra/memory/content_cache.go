package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

const (
	quizKey  = "quiz"
	bandsKey = "bands"
)

// CachedSource caches quiz content with TTL to avoid repeated remote fetches.
type CachedSource struct {
	source app.ContentSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	quiz  cachedEntry[domain.Quiz]
	bands cachedEntry[[]domain.ResultBand]
}

type cachedEntry[T any] struct {
	value     T
	expiresAt time.Time
	set       bool
}

func (c cachedEntry[T]) fresh(now time.Time) bool {
	return c.set && c.expiresAt.After(now)
}

func NewCachedSource(source app.ContentSource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CachedSource) LoadQuiz(ctx context.Context) (domain.Quiz, error) {
	c.mu.RLock()
	if entry := c.quiz; entry.fresh(c.clock()) {
		c.mu.RUnlock()
		return entry.value, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(quizKey, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry := c.quiz; entry.fresh(now) {
			c.mu.RUnlock()
			return entry.value, nil
		}
		c.mu.RUnlock()

		quiz, err := c.source.LoadQuiz(ctx)
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.quiz = cachedEntry[domain.Quiz]{value: quiz, expiresAt: now.Add(c.ttlWithJitter()), set: true}
		c.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *CachedSource) LoadResultBands(ctx context.Context) ([]domain.ResultBand, error) {
	c.mu.RLock()
	if entry := c.bands; entry.fresh(c.clock()) {
		c.mu.RUnlock()
		return entry.value, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(bandsKey, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry := c.bands; entry.fresh(now) {
			c.mu.RUnlock()
			return entry.value, nil
		}
		c.mu.RUnlock()

		bands, err := c.source.LoadResultBands(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.bands = cachedEntry[[]domain.ResultBand]{value: bands, expiresAt: now.Add(c.ttlWithJitter()), set: true}
		c.mu.Unlock()
		return bands, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.ResultBand), nil
}

// StaticSource is a simple source backed by fixed content (useful for tests/demos).
type StaticSource struct {
	content domain.Content
}

func NewStaticSource(content domain.Content) *StaticSource {
	return &StaticSource{content: content}
}

func (s *StaticSource) LoadQuiz(_ context.Context) (domain.Quiz, error) {
	if len(s.content.Quiz.Questions) == 0 && s.content.Quiz.Title == "" {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return s.content.Quiz, nil
}

func (s *StaticSource) LoadResultBands(_ context.Context) ([]domain.ResultBand, error) {
	if len(s.content.Bands) == 0 {
		return nil, domain.ErrResultsNotFound
	}
	return s.content.Bands, nil
}

func (c *CachedSource) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
