package domain

import "time"

// Run status values. Transitions after creation are the only mutation.
const (
	RunStatusPending    = "pending"
	RunStatusApplied    = "applied"
	RunStatusRejected   = "rejected"
	RunStatusFailed     = "failed"
	RunStatusOverridden = "overridden"
)

// Source types accepted by the classification endpoint.
const (
	SourceTypeText    = "text"
	SourceTypeYoutube = "youtube_url"
)

// AutoSettings is the singleton tuning row for the classification engine,
// lazily created with defaults on first read.
type AutoSettings struct {
	ID                int       `db:"id"                  json:"id"`
	MinConfidence     float64   `db:"min_confidence"      json:"min_confidence"`
	Strategy          string    `db:"strategy"            json:"strategy"`
	KeywordWeight     float64   `db:"keyword_weight"      json:"keyword_weight"`
	SimilarityWeight  float64   `db:"similarity_weight"   json:"similarity_weight"`
	MaxCandidates     int       `db:"max_candidates"      json:"max_candidates"`
	TextPreviewLength int       `db:"text_preview_length" json:"text_preview_length"`
	CreatedAt         time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"          json:"updated_at"`
}

// DefaultAutoSettings returns the settings used when no row exists yet.
func DefaultAutoSettings() AutoSettings {
	return AutoSettings{
		MinConfidence:     0.3,
		Strategy:          "hybrid",
		KeywordWeight:     0.5,
		SimilarityWeight:  0.5,
		MaxCandidates:     3,
		TextPreviewLength: 200,
	}
}

// SettingsUpdate carries a partial settings change. Nil fields are left
// untouched. Category rules may ride along in the same update; they are
// validated as a whole before any of them is written.
type SettingsUpdate struct {
	MinConfidence     *float64     `json:"min_confidence,omitempty"`
	Strategy          *string      `json:"strategy,omitempty"`
	KeywordWeight     *float64     `json:"keyword_weight,omitempty"`
	SimilarityWeight  *float64     `json:"similarity_weight,omitempty"`
	MaxCandidates     *int         `json:"max_candidates,omitempty"`
	TextPreviewLength *int         `json:"text_preview_length,omitempty"`
	CategoryRules     []RuleUpdate `json:"category_rules,omitempty"`
}

// RuleUpdate is one category rule inside a settings update. Weight
// defaults to 1.0 and is_active to true when omitted.
type RuleUpdate struct {
	SubTopicID int      `json:"sub_topic_id"`
	Weight     *float64 `json:"weight,omitempty"`
	Priority   int      `json:"priority"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

// CategoryRule biases the ranker for one sub topic.
type CategoryRule struct {
	ID         int       `db:"id"           json:"id"`
	SubTopicID int       `db:"sub_topic_id" json:"sub_topic_id"`
	Weight     float64   `db:"weight"       json:"weight"`
	Priority   int       `db:"priority"     json:"priority"`
	IsActive   bool      `db:"is_active"    json:"is_active"`
	CreatedAt  time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"   json:"updated_at"`
}

// AutoRun records one classification attempt with a frozen copy of the
// settings in effect at decision time.
type AutoRun struct {
	ID               int       `db:"id"                 json:"id"`
	RequestContent   string    `db:"request_content"    json:"request_content"`
	SourceType       string    `db:"source_type"        json:"source_type"`
	TextPreview      string    `db:"text_preview"       json:"text_preview"`
	TextHash         string    `db:"text_hash"          json:"text_hash"`
	AutoSubTopicID   *int      `db:"auto_sub_topic_id"  json:"auto_sub_topic_id,omitempty"`
	AutoConfidence   float64   `db:"auto_confidence"    json:"auto_confidence"`
	FinalSubTopicID  *int      `db:"final_sub_topic_id" json:"final_sub_topic_id,omitempty"`
	Status           string    `db:"status"             json:"status"`
	Strategy         string    `db:"strategy"           json:"strategy"`
	MinConfidence    float64   `db:"min_confidence"     json:"min_confidence"`
	KeywordWeight    float64   `db:"keyword_weight"     json:"keyword_weight"`
	SimilarityWeight float64   `db:"similarity_weight"  json:"similarity_weight"`
	MaxCandidates    int       `db:"max_candidates"     json:"max_candidates"`
	CandidateCount   int       `db:"candidate_count"    json:"candidate_count"`
	RejectionReason  *string   `db:"rejection_reason"   json:"rejection_reason,omitempty"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"         json:"updated_at"`
}

// AutoCandidate is one ranked category for a run.
type AutoCandidate struct {
	ID           int       `db:"id"            json:"id"`
	RunID        int       `db:"run_id"        json:"run_id"`
	SubTopicID   int       `db:"sub_topic_id"  json:"sub_topic_id"`
	Score        float64   `db:"score"         json:"score"`
	Rank         int       `db:"rank"          json:"rank"`
	CategoryPath string    `db:"category_path" json:"category_path"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

// AutoOverride is the append-only audit record of an operator picking a
// category other than the automatic top pick.
type AutoOverride struct {
	ID              int       `db:"id"                 json:"id"`
	RunID           int       `db:"run_id"             json:"run_id"`
	AutoSubTopicID  *int      `db:"auto_sub_topic_id"  json:"auto_sub_topic_id,omitempty"`
	FinalSubTopicID int       `db:"final_sub_topic_id" json:"final_sub_topic_id"`
	Reason          *string   `db:"reason"             json:"reason,omitempty"`
	CreatedAt       time.Time `db:"created_at"         json:"created_at"`
}
