package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentPurpose classifies what an assessment is for. The loader's
// selection policy prefers diagnostic over baseline over unspecified.
type AssessmentPurpose string

const (
	PurposeDiagnostic  AssessmentPurpose = "diagnostic"
	PurposeBaseline    AssessmentPurpose = "baseline"
	PurposeUnspecified AssessmentPurpose = ""
)

type Assessment struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string            `gorm:"column:title;not null" json:"title"`
	Subject   *string           `gorm:"column:subject" json:"subject,omitempty"`
	Purpose   AssessmentPurpose `gorm:"column:purpose;not null;default:'';index" json:"purpose"`
	Metadata  datatypes.JSON    `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Assessment) TableName() string { return "assessments" }

type AssessmentSection struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Assessment   *Assessment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Position     int            `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AssessmentSection) TableName() string { return "assessment_sections" }

// SectionQuestion links a bank question into a section. Position is the
// authoritative presentation order, not row insertion order.
type SectionQuestion struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"section_id"`
	Section    *AssessmentSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	QuestionID uuid.UUID          `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   *Question          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Weight     float64            `gorm:"column:weight;not null;default:1" json:"weight"`
	Position   int                `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt  time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time          `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (SectionQuestion) TableName() string { return "section_questions" }
