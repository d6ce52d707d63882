package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionKind string

const (
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionTrueFalse      QuestionKind = "true_false"
	QuestionShortAnswer    QuestionKind = "short_answer"
	QuestionFillBlank      QuestionKind = "fill_blank"
)

type Question struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Prompt     string         `gorm:"column:prompt;not null" json:"prompt"`
	Kind       QuestionKind   `gorm:"column:kind;not null;default:'multiple_choice'" json:"kind"`
	Difficulty float64        `gorm:"column:difficulty;not null;default:0" json:"difficulty"`
	Tags       datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "questions" }

type QuestionOption struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   *Question      `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Body       string         `gorm:"column:body;not null" json:"body"`
	Correct    bool           `gorm:"column:correct;not null;default:false" json:"correct"`
	Feedback   *string        `gorm:"column:feedback" json:"feedback,omitempty"`
	Position   int            `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuestionOption) TableName() string { return "question_options" }

type QuestionSkill struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID      `gorm:"type:uuid;not null;index:idx_question_skill,unique" json:"question_id"`
	Question   *Question      `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	SkillID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_question_skill,unique" json:"skill_id"`
	Skill      *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuestionSkill) TableName() string { return "question_skills" }
