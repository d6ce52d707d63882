package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ModuleVisibility string

const (
	VisibilityPublic  ModuleVisibility = "public"
	VisibilityPrivate ModuleVisibility = "private"
)

// Module is a catalog entity. Read-only to this core; owned by the content
// management side of the platform.
type Module struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title      string           `gorm:"column:title;not null" json:"title"`
	Slug       string           `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Subject    string           `gorm:"column:subject;not null;index" json:"subject"`
	GradeBand  string           `gorm:"column:grade_band;not null;default:''" json:"grade_band"`
	Strand     string           `gorm:"column:strand;not null;default:''" json:"strand"`
	Topic      string           `gorm:"column:topic;not null;default:''" json:"topic"`
	Visibility ModuleVisibility `gorm:"column:visibility;not null;default:'private';index" json:"visibility"`
	Metadata   datatypes.JSON   `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt  time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Module) TableName() string { return "modules" }

type Standard struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Framework string         `gorm:"column:framework;not null" json:"framework"`
	Code      string         `gorm:"column:code;not null;index" json:"code"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Standard) TableName() string { return "standards" }

type ModuleStandard struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ModuleID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_module_standard,unique" json:"module_id"`
	Module     *Module        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	StandardID uuid.UUID      `gorm:"type:uuid;not null;index:idx_module_standard,unique" json:"standard_id"`
	Standard   *Standard      `gorm:"constraint:OnDelete:CASCADE;foreignKey:StandardID;references:ID" json:"standard,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ModuleStandard) TableName() string { return "module_standards" }

// ModuleAssessment ties a module to its baseline assessment, if any. Its
// attempt statistics feed the recommendation scorer's baseline signal.
type ModuleAssessment struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ModuleID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_module_assessment,unique" json:"module_id"`
	Module       *Module        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	AssessmentID uuid.UUID      `gorm:"type:uuid;not null;index:idx_module_assessment,unique" json:"assessment_id"`
	Assessment   *Assessment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ModuleAssessment) TableName() string { return "module_assessments" }
