package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied at startup. Statements are idempotent so repeated
// boots are safe.
const schema = `
CREATE TABLE IF NOT EXISTS subjects (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS main_topics (
	id          SERIAL PRIMARY KEY,
	subject_id  INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sub_topics (
	id            SERIAL PRIMARY KEY,
	main_topic_id INTEGER NOT NULL REFERENCES main_topics(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	core_content  TEXT,
	source_type   TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS auto_settings (
	id                  SERIAL PRIMARY KEY,
	min_confidence      DOUBLE PRECISION NOT NULL DEFAULT 0.3,
	strategy            TEXT NOT NULL DEFAULT 'hybrid',
	keyword_weight      DOUBLE PRECISION NOT NULL DEFAULT 0.5,
	similarity_weight   DOUBLE PRECISION NOT NULL DEFAULT 0.5,
	max_candidates      INTEGER NOT NULL DEFAULT 3,
	text_preview_length INTEGER NOT NULL DEFAULT 200,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS category_rules (
	id           SERIAL PRIMARY KEY,
	sub_topic_id INTEGER NOT NULL UNIQUE REFERENCES sub_topics(id) ON DELETE CASCADE,
	weight       DOUBLE PRECISION NOT NULL DEFAULT 1.0,
	priority     INTEGER NOT NULL DEFAULT 0,
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS auto_runs (
	id                 SERIAL PRIMARY KEY,
	request_content    TEXT NOT NULL,
	source_type        TEXT NOT NULL,
	text_preview       TEXT NOT NULL,
	text_hash          TEXT NOT NULL,
	auto_sub_topic_id  INTEGER REFERENCES sub_topics(id),
	auto_confidence    DOUBLE PRECISION NOT NULL,
	final_sub_topic_id INTEGER REFERENCES sub_topics(id),
	status             TEXT NOT NULL,
	strategy           TEXT NOT NULL,
	min_confidence     DOUBLE PRECISION NOT NULL,
	keyword_weight     DOUBLE PRECISION NOT NULL,
	similarity_weight  DOUBLE PRECISION NOT NULL,
	max_candidates     INTEGER NOT NULL,
	candidate_count    INTEGER NOT NULL,
	rejection_reason   TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_auto_runs_status ON auto_runs(status);

CREATE TABLE IF NOT EXISTS auto_candidates (
	id            SERIAL PRIMARY KEY,
	run_id        INTEGER NOT NULL REFERENCES auto_runs(id) ON DELETE CASCADE,
	sub_topic_id  INTEGER NOT NULL REFERENCES sub_topics(id),
	score         DOUBLE PRECISION NOT NULL,
	rank          INTEGER NOT NULL,
	category_path TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_auto_candidates_run_id ON auto_candidates(run_id);

CREATE TABLE IF NOT EXISTS auto_overrides (
	id                 SERIAL PRIMARY KEY,
	run_id             INTEGER NOT NULL REFERENCES auto_runs(id) ON DELETE CASCADE,
	auto_sub_topic_id  INTEGER REFERENCES sub_topics(id),
	final_sub_topic_id INTEGER NOT NULL REFERENCES sub_topics(id),
	reason             TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS quizzes (
	id             SERIAL PRIMARY KEY,
	subject_id     INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
	sub_topic_id   INTEGER REFERENCES sub_topics(id) ON DELETE SET NULL,
	question       TEXT NOT NULL,
	options        JSONB NOT NULL,
	correct_answer INTEGER NOT NULL,
	explanation    TEXT NOT NULL DEFAULT '',
	source_hash    TEXT NOT NULL UNIQUE,
	source_url     TEXT,
	source_text    TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_quizzes_sub_topic_id ON quizzes(sub_topic_id);

CREATE TABLE IF NOT EXISTS exam_records (
	id              SERIAL PRIMARY KEY,
	quiz_id         INTEGER NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
	user_answer     INTEGER,
	is_correct      BOOLEAN,
	exam_session_id TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_exam_records_session ON exam_records(exam_session_id);

CREATE TABLE IF NOT EXISTS wrong_answers (
	id              SERIAL PRIMARY KEY,
	quiz_id         INTEGER NOT NULL UNIQUE,
	question        TEXT NOT NULL,
	options         JSONB NOT NULL,
	selected_answer INTEGER NOT NULL,
	correct_answer  INTEGER NOT NULL,
	explanation     TEXT,
	subject_id      INTEGER REFERENCES subjects(id) ON DELETE SET NULL,
	sub_topic_id    INTEGER REFERENCES sub_topics(id) ON DELETE SET NULL,
	saved_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_wrong_answers_saved_at ON wrong_answers(saved_at DESC);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
