// Package bootstrap assembles the application from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/config"
	"github.com/EHWIYA/adsp-quiz-back/internal/database"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

// DatabaseComponents holds the database connection and repositories.
type DatabaseComponents struct {
	DB           *sqlx.DB
	Taxonomy     *database.TaxonomyRepository
	Rules        *database.RulesRepository
	Settings     *database.SettingsRepository
	Runs         *database.RunsRepository
	Overrides    *database.OverridesRepository
	Quizzes      *database.QuizRepository
	Exams        *database.ExamRepository
	WrongAnswers *database.WrongAnswersRepository
}

// SetupDatabase connects to PostgreSQL, applies the schema and builds
// the repositories.
func SetupDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) (*DatabaseComponents, error) {
	dbConfig := database.Config{
		Host:            cfg.Database.Host,
		Port:            strconv.Itoa(cfg.Database.Port),
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConnections,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	log.Info("connecting to postgresql",
		logger.String("host", dbConfig.Host),
		logger.String("port", dbConfig.Port),
		logger.String("database", dbConfig.DBName))

	db, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database ready")

	return &DatabaseComponents{
		DB:           db,
		Taxonomy:     database.NewTaxonomyRepository(db),
		Rules:        database.NewRulesRepository(db),
		Settings:     database.NewSettingsRepository(db),
		Runs:         database.NewRunsRepository(db),
		Overrides:    database.NewOverridesRepository(db),
		Quizzes:      database.NewQuizRepository(db),
		Exams:        database.NewExamRepository(db),
		WrongAnswers: database.NewWrongAnswersRepository(db),
	}, nil
}
