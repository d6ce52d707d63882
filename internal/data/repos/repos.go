package repos

import (
	"gorm.io/gorm"

	"github.com/nexlearn/nexlearn-backend/internal/data/repos/assessment"
	"github.com/nexlearn/nexlearn-backend/internal/data/repos/catalog"
	"github.com/nexlearn/nexlearn-backend/internal/data/repos/progress"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type AssessmentRepo = assessment.AssessmentRepo
type SectionRepo = assessment.SectionRepo
type SectionQuestionRepo = assessment.SectionQuestionRepo
type QuestionRepo = assessment.QuestionRepo
type QuestionOptionRepo = assessment.QuestionOptionRepo
type QuestionSkillRepo = assessment.QuestionSkillRepo
type AttemptRepo = assessment.AttemptRepo
type AttemptStats = assessment.AttemptStats
type ResponseRepo = assessment.ResponseRepo

type SkillMasteryRepo = progress.SkillMasteryRepo
type MasteryEventRepo = progress.MasteryEventRepo
type LessonSkillRepo = progress.LessonSkillRepo
type LessonProgressRepo = progress.LessonProgressRepo

type ModuleRepo = catalog.ModuleRepo
type ModuleStandardRepo = catalog.ModuleStandardRepo
type StandardRepo = catalog.StandardRepo
type ModuleAssessmentRepo = catalog.ModuleAssessmentRepo

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return assessment.NewAssessmentRepo(db, baseLog)
}
func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return assessment.NewSectionRepo(db, baseLog)
}
func NewSectionQuestionRepo(db *gorm.DB, baseLog *logger.Logger) SectionQuestionRepo {
	return assessment.NewSectionQuestionRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return assessment.NewQuestionRepo(db, baseLog)
}
func NewQuestionOptionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionOptionRepo {
	return assessment.NewQuestionOptionRepo(db, baseLog)
}
func NewQuestionSkillRepo(db *gorm.DB, baseLog *logger.Logger) QuestionSkillRepo {
	return assessment.NewQuestionSkillRepo(db, baseLog)
}
func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	return assessment.NewAttemptRepo(db, baseLog)
}
func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return assessment.NewResponseRepo(db, baseLog)
}

func NewSkillMasteryRepo(db *gorm.DB, baseLog *logger.Logger) SkillMasteryRepo {
	return progress.NewSkillMasteryRepo(db, baseLog)
}
func NewMasteryEventRepo(db *gorm.DB, baseLog *logger.Logger) MasteryEventRepo {
	return progress.NewMasteryEventRepo(db, baseLog)
}
func NewLessonSkillRepo(db *gorm.DB, baseLog *logger.Logger) LessonSkillRepo {
	return progress.NewLessonSkillRepo(db, baseLog)
}
func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return progress.NewLessonProgressRepo(db, baseLog)
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return catalog.NewModuleRepo(db, baseLog)
}
func NewModuleStandardRepo(db *gorm.DB, baseLog *logger.Logger) ModuleStandardRepo {
	return catalog.NewModuleStandardRepo(db, baseLog)
}
func NewStandardRepo(db *gorm.DB, baseLog *logger.Logger) StandardRepo {
	return catalog.NewStandardRepo(db, baseLog)
}
func NewModuleAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) ModuleAssessmentRepo {
	return catalog.NewModuleAssessmentRepo(db, baseLog)
}
