package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-player/internal/content"
	"quiz-player/internal/domain"
)

// ContentLoader loads quiz and result documents stored as JSONB in Postgres.
type ContentLoader struct {
	pool   *pgxpool.Pool
	quizID string
}

func NewContentLoader(pool *pgxpool.Pool, quizID string) *ContentLoader {
	return &ContentLoader{pool: pool, quizID: quizID}
}

func (l *ContentLoader) LoadQuiz(ctx context.Context) (domain.Quiz, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, l.quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	quiz, err := content.DecodeQuiz(raw)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz %s: %w", l.quizID, err)
	}
	if quiz.ID == "" {
		quiz.ID = l.quizID
	}
	return quiz, nil
}

func (l *ContentLoader) LoadResultBands(ctx context.Context) ([]domain.ResultBand, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM result_sets WHERE quiz_id=$1`, l.quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrResultsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result bands: %w", err)
	}
	bands, err := content.DecodeResults(raw)
	if err != nil {
		return nil, fmt.Errorf("decode result bands %s: %w", l.quizID, err)
	}
	return bands, nil
}
