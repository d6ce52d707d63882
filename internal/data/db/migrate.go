package db

import (
	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Content catalog
		// =========================
		&types.Module{},
		&types.Standard{},
		&types.ModuleStandard{},
		&types.ModuleAssessment{},
		&types.Lesson{},
		&types.Skill{},
		&types.LessonSkill{},

		// =========================
		// Assessment definitions
		// =========================
		&types.Assessment{},
		&types.AssessmentSection{},
		&types.SectionQuestion{},
		&types.Question{},
		&types.QuestionOption{},
		&types.QuestionSkill{},

		// =========================
		// Learner state
		// =========================
		&types.AssessmentAttempt{},
		&types.AttemptResponse{},
		&types.SkillMastery{},
		&types.MasteryEvent{},
		&types.LessonProgress{},
	)
}
