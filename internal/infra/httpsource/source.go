package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"quiz-player/internal/content"
	"quiz-player/internal/domain"
)

// maxDocumentSize bounds a downloaded quiz or results document.
const maxDocumentSize = 4 << 20

// Source fetches the quiz and results documents over HTTP.
type Source struct {
	client     *http.Client
	quizURL    string
	resultsURL string
}

func NewSource(client *http.Client, quizURL, resultsURL string) *Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Source{client: client, quizURL: quizURL, resultsURL: resultsURL}
}

func (s *Source) LoadQuiz(ctx context.Context) (domain.Quiz, error) {
	raw, err := s.fetch(ctx, s.quizURL)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz, err := content.DecodeQuiz(raw)
	if err != nil {
		return domain.Quiz{}, &domain.LoadError{Resource: s.quizURL, Err: err}
	}
	return quiz, nil
}

func (s *Source) LoadResultBands(ctx context.Context) ([]domain.ResultBand, error) {
	raw, err := s.fetch(ctx, s.resultsURL)
	if err != nil {
		return nil, err
	}
	bands, err := content.DecodeResults(raw)
	if err != nil {
		return nil, &domain.LoadError{Resource: s.resultsURL, Err: err}
	}
	return bands, nil
}

// FetchRaw returns the undecoded document at url, for importers that store it as is.
func (s *Source) FetchRaw(ctx context.Context, url string) ([]byte, error) {
	return s.fetch(ctx, url)
}

func (s *Source) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.LoadError{Resource: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.LoadError{Resource: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.LoadError{Resource: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &domain.LoadError{Resource: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return raw, nil
}
