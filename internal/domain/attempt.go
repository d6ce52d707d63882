package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// AssessmentAttempt is one learner's pass through an assessment. At most one
// in_progress row exists per (user, assessment); completion is terminal.
type AssessmentAttempt struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_assessment" json:"user_id"`
	AssessmentID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_assessment" json:"assessment_id"`
	Assessment    *Assessment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	AttemptNumber int            `gorm:"column:attempt_number;not null;default:1" json:"attempt_number"`
	Status        AttemptStatus  `gorm:"column:status;not null;default:'in_progress';index" json:"status"`
	ScorePct      *float64       `gorm:"column:score_pct" json:"score_pct,omitempty"`
	StartedAt     time.Time      `gorm:"column:started_at;not null;default:now()" json:"started_at"`
	CompletedAt   *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Metadata      datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AssessmentAttempt) TableName() string { return "assessment_attempts" }

// AttemptResponse records a learner's answer to one question within an
// attempt. Unique per (attempt, question): revisiting a question overwrites
// the row. A nil OptionID means the question was skipped.
type AttemptResponse struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_attempt_question,unique" json:"attempt_id"`
	Attempt      *AssessmentAttempt `gorm:"constraint:OnDelete:CASCADE;foreignKey:AttemptID;references:ID" json:"attempt,omitempty"`
	QuestionID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_attempt_question,unique" json:"question_id"`
	Question     *Question          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	OptionID     *uuid.UUID         `gorm:"type:uuid;column:option_id" json:"option_id,omitempty"`
	Correct      bool               `gorm:"column:correct;not null;default:false" json:"correct"`
	ScoreValue   float64            `gorm:"column:score_value;not null;default:0" json:"score_value"`
	TimeSpentSec int                `gorm:"column:time_spent_sec;not null;default:1" json:"time_spent_sec"`
	CreatedAt    time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (AttemptResponse) TableName() string { return "attempt_responses" }
