package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Skill struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Key       string         `gorm:"column:key;not null;uniqueIndex" json:"key"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Skill) TableName() string { return "skills" }

// SkillMastery is the durable per (user, skill) proficiency estimate,
// bounded to [0,100]. Only the blending step mutates it.
type SkillMastery struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_skill,unique" json:"user_id"`
	SkillID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_skill,unique" json:"skill_id"`
	Skill        *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	MasteryPct   float64        `gorm:"column:mastery_pct;not null;default:0" json:"mastery_pct"`
	LastEvidence time.Time      `gorm:"column:last_evidence;not null;default:now()" json:"last_evidence"`
	Note         string         `gorm:"column:note;not null;default:''" json:"note"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SkillMastery) TableName() string { return "skill_mastery" }

// MasteryEvent is an append-only audit row written alongside each blend so
// trend views can replay how an estimate moved.
type MasteryEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_skill_event" json:"user_id"`
	SkillID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_skill_event" json:"skill_id"`
	PriorPct    float64   `gorm:"column:prior_pct;not null" json:"prior_pct"`
	ObservedPct float64   `gorm:"column:observed_pct;not null" json:"observed_pct"`
	BlendedPct  float64   `gorm:"column:blended_pct;not null" json:"blended_pct"`
	Delta       float64   `gorm:"column:delta;not null" json:"delta"`
	Source      string    `gorm:"column:source;not null;default:''" json:"source"`
	CreatedAt   time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (MasteryEvent) TableName() string { return "mastery_events" }
