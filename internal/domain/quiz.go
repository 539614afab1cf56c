package domain

import "time"

// Quiz is one generated multiple-choice question. Options are stored as
// a JSON array in a single column; CorrectAnswer is a 0-based index into
// it. SourceHash deduplicates generations from identical source text.
type Quiz struct {
	ID            int       `db:"id"             json:"id"`
	SubjectID     int       `db:"subject_id"     json:"subject_id"`
	SubTopicID    *int      `db:"sub_topic_id"   json:"sub_topic_id,omitempty"`
	Question      string    `db:"question"       json:"question"`
	Options       []string  `db:"-"              json:"options"`
	CorrectAnswer int       `db:"correct_answer" json:"correct_answer"`
	Explanation   string    `db:"explanation"    json:"explanation"`
	SourceHash    string    `db:"source_hash"    json:"-"`
	SourceURL     *string   `db:"source_url"     json:"source_url,omitempty"`
	SourceText    *string   `db:"source_text"    json:"-"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// ExamRecord is one answered question within an exam session.
type ExamRecord struct {
	ID            int       `db:"id"              json:"id"`
	QuizID        int       `db:"quiz_id"         json:"quiz_id"`
	UserAnswer    *int      `db:"user_answer"     json:"user_answer,omitempty"`
	IsCorrect     *bool     `db:"is_correct"      json:"is_correct,omitempty"`
	ExamSessionID string    `db:"exam_session_id" json:"exam_session_id"`
	CreatedAt     time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"      json:"updated_at"`
}

// WrongAnswer is a review-note copy of a quiz the user missed, keyed
// uniquely by quiz id so re-saving replaces the previous note.
type WrongAnswer struct {
	ID             int       `db:"id"              json:"id"`
	QuizID         int       `db:"quiz_id"         json:"quiz_id"`
	Question       string    `db:"question"        json:"question"`
	Options        []string  `db:"-"               json:"options"`
	SelectedAnswer int       `db:"selected_answer" json:"selected_answer"`
	CorrectAnswer  int       `db:"correct_answer"  json:"correct_answer"`
	Explanation    *string   `db:"explanation"     json:"explanation,omitempty"`
	SubjectID      *int      `db:"subject_id"      json:"subject_id,omitempty"`
	SubTopicID     *int      `db:"sub_topic_id"    json:"sub_topic_id,omitempty"`
	SavedAt        time.Time `db:"saved_at"        json:"saved_at"`
}
