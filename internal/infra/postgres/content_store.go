package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quiz-player/internal/content"
	"quiz-player/internal/domain"
)

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID        string          `bun:"id,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type resultSetRow struct {
	bun.BaseModel `bun:"table:result_sets"`

	QuizID    string          `bun:"quiz_id,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ContentStore writes quiz and result documents for ContentLoader to read.
type ContentStore struct {
	db *bun.DB
}

func NewContentStore(db *bun.DB) *ContentStore {
	return &ContentStore{db: db}
}

// Save validates both documents as one playable unit and upserts them in a single
// transaction.
func (s *ContentStore) Save(ctx context.Context, quizID string, quizRaw, resultsRaw []byte) (domain.Content, error) {
	quiz, err := content.DecodeQuiz(quizRaw)
	if err != nil {
		return domain.Content{}, err
	}
	bands, err := content.DecodeResults(resultsRaw)
	if err != nil {
		return domain.Content{}, err
	}
	loaded := domain.Content{Quiz: quiz, Bands: bands}
	if err := domain.ValidateContent(loaded); err != nil {
		return domain.Content{}, err
	}

	now := time.Now().UTC()
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := &quizRow{ID: quizID, Data: json.RawMessage(quizRaw), UpdatedAt: now}
		if _, err := tx.NewInsert().Model(q).
			On("CONFLICT (id) DO UPDATE").
			Set("data = EXCLUDED.data").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("upsert quiz: %w", err)
		}

		r := &resultSetRow{QuizID: quizID, Data: json.RawMessage(resultsRaw), UpdatedAt: now}
		if _, err := tx.NewInsert().Model(r).
			On("CONFLICT (quiz_id) DO UPDATE").
			Set("data = EXCLUDED.data").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("upsert result set: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Content{}, err
	}
	return loaded, nil
}
