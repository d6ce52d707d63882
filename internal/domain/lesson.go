package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lesson struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ModuleID  *uuid.UUID     `gorm:"type:uuid;column:module_id;index" json:"module_id,omitempty"`
	Module    *Module        `gorm:"constraint:OnDelete:SET NULL;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	Position  int            `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Lesson) TableName() string { return "lessons" }

// LessonSkill links a lesson to a skill it teaches; many-to-many.
type LessonSkill struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_lesson_skill,unique" json:"lesson_id"`
	Lesson    *Lesson        `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	SkillID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_lesson_skill,unique" json:"skill_id"`
	Skill     *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LessonSkill) TableName() string { return "lesson_skills" }

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// LessonProgress is the per (user, lesson) rollup fed by mastery
// propagation. Mastery only rises and a completed status never regresses.
type LessonProgress struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"user_id"`
	LessonID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"lesson_id"`
	Lesson         *Lesson        `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	MasteryPct     float64        `gorm:"column:mastery_pct;not null;default:0" json:"mastery_pct"`
	Attempts       int            `gorm:"column:attempts;not null;default:0" json:"attempts"`
	Status         ProgressStatus `gorm:"column:status;not null;default:'not_started'" json:"status"`
	LastActivityAt time.Time      `gorm:"column:last_activity_at;not null;default:now()" json:"last_activity_at"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
