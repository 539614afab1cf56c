package bootstrap

import (
	"context"
	"fmt"

	"github.com/EHWIYA/adsp-quiz-back/internal/ai"
	"github.com/EHWIYA/adsp-quiz-back/internal/api"
	"github.com/EHWIYA/adsp-quiz-back/internal/classifier"
	"github.com/EHWIYA/adsp-quiz-back/internal/config"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/service"
	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
	"github.com/EHWIYA/adsp-quiz-back/internal/youtube"
)

// App is the assembled application.
type App struct {
	Server    *api.Server
	Telemetry *telemetry.Provider

	db *DatabaseComponents
}

// NewApp wires configuration into a runnable application.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := SetupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database setup: %w", err)
	}

	tp := telemetry.NewProvider()

	transcripts := youtube.NewClient(cfg.Youtube.Timeout, cfg.Youtube.Language, log)

	generator := ai.NewClient(ai.Config{
		APIKey:         cfg.AI.APIKey,
		Model:          cfg.AI.Model,
		MaxTokens:      cfg.AI.MaxTokens,
		RequestsPerMin: cfg.AI.RequestsPerMin,
	}, log)

	engine := classifier.NewEngine(log, tp)

	coreContent := service.NewCoreContentService(
		db.Taxonomy,
		db.Rules,
		db.Settings,
		db.Runs,
		db.Overrides,
		transcripts,
		engine,
		tp,
		log,
	)

	quiz := service.NewQuizService(
		db.Quizzes,
		db.Exams,
		db.WrongAnswers,
		db.Taxonomy,
		generator,
		transcripts,
		tp,
		log,
	)

	handler := api.NewHandler(coreContent, quiz, log)
	server := api.NewServer(handler, cfg.Service, tp, log)

	return &App{
		Server:    server,
		Telemetry: tp,
		db:        db,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.db.DB.Close()
}
