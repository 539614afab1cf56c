package domain

import (
	"fmt"
	"strings"
	"time"
)

// Subject is the top level of the three-level taxonomy.
type Subject struct {
	ID          int       `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// MainTopic groups sub topics under a subject.
type MainTopic struct {
	ID          int       `db:"id"          json:"id"`
	SubjectID   int       `db:"subject_id"  json:"subject_id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// SubTopic is the taxonomy leaf and the classification target. Its
// CoreContent column accumulates appended study material.
type SubTopic struct {
	ID          int       `db:"id"            json:"id"`
	MainTopicID int       `db:"main_topic_id" json:"main_topic_id"`
	Name        string    `db:"name"          json:"name"`
	Description string    `db:"description"   json:"description,omitempty"`
	CoreContent *string   `db:"core_content"  json:"core_content,omitempty"`
	SourceType  *string   `db:"source_type"   json:"source_type,omitempty"`
	CreatedAt   time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"    json:"updated_at"`

	// Populated by list_with_relations style queries.
	SubjectID     int    `db:"subject_id"      json:"-"`
	MainTopicName string `db:"main_topic_name" json:"-"`
	SubjectName   string `db:"subject_name"    json:"-"`
}

// CategoryPath renders the display path "Subject > MainTopic > SubTopic".
func (s *SubTopic) CategoryPath() string {
	subject := s.SubjectName
	if subject == "" {
		subject = "ADsP"
	}
	mainTopic := s.MainTopicName
	if mainTopic == "" {
		mainTopic = "알 수 없음"
	}
	return fmt.Sprintf("%s > %s > %s", subject, mainTopic, s.Name)
}

// CategoryText builds the text a classification request is scored against.
func (s *SubTopic) CategoryText() string {
	subject := s.SubjectName
	if subject == "" {
		subject = "ADsP"
	}
	mainTopic := s.MainTopicName
	if mainTopic == "" {
		mainTopic = "알 수 없음"
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s %s", subject, mainTopic, s.Name, s.Description))
}
