package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quiz-player/internal/config"
	"quiz-player/internal/infra/httpsource"
	pgstore "quiz-player/internal/infra/postgres"
)

type seedOptions struct {
	quizFile    string
	resultsFile string
	quizID      string
}

// NewSeedCmd imports a quiz document and its result bands into Postgres. Without
// files the documents are fetched from the configured content URLs.
func NewSeedCmd(configPath *string) *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import quiz and result documents into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, opts)
		},
	}
	cmd.Flags().StringVar(&opts.quizFile, "quiz-file", "", "path to quiz.json (default: fetch content.quiz_url)")
	cmd.Flags().StringVar(&opts.resultsFile, "results-file", "", "path to result.json (default: fetch content.results_url)")
	cmd.Flags().StringVar(&opts.quizID, "quiz-id", "", "id to store the quiz under (default: content.quiz_id)")
	return cmd
}

func runSeed(ctx context.Context, cfg config.Config, opts seedOptions) error {
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	fetcher := httpsource.NewSource(&http.Client{Timeout: config.Duration(cfg.Content.Timeout, 10*time.Second)}, cfg.Content.QuizURL, cfg.Content.ResultsURL)
	quizRaw, err := readDocument(ctx, fetcher, opts.quizFile, cfg.Content.QuizURL)
	if err != nil {
		return err
	}
	resultsRaw, err := readDocument(ctx, fetcher, opts.resultsFile, cfg.Content.ResultsURL)
	if err != nil {
		return err
	}

	quizID := opts.quizID
	if quizID == "" {
		quizID = cfg.Content.QuizID
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	saved, err := pgstore.NewContentStore(db).Save(ctx, quizID, quizRaw, resultsRaw)
	if err != nil {
		return err
	}
	log.Printf("seeded quiz %q: %d questions, %d result bands", quizID, len(saved.Quiz.Questions), len(saved.Bands))
	return nil
}

func readDocument(ctx context.Context, fetcher *httpsource.Source, path, url string) ([]byte, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return raw, nil
	}
	return fetcher.FetchRaw(ctx, url)
}
