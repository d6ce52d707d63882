package assessment

import (
	"time"

	"gorm.io/gorm"

	"github.com/nexlearn/nexlearn-backend/internal/data/repos"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
	"github.com/nexlearn/nexlearn-backend/internal/services"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Assessments      repos.AssessmentRepo
	Sections         repos.SectionRepo
	SectionQuestions repos.SectionQuestionRepo
	Questions        repos.QuestionRepo
	Options          repos.QuestionOptionRepo
	QuestionSkills   repos.QuestionSkillRepo
	Attempts         repos.AttemptRepo
	Responses        repos.ResponseRepo

	SkillMastery   repos.SkillMasteryRepo
	MasteryEvents  repos.MasteryEventRepo
	LessonSkills   repos.LessonSkillRepo
	LessonProgress repos.LessonProgressRepo

	Paths   services.LearningPathService
	Profile services.ProfileService

	// Now is injected so tests control timestamps. Defaults to time.Now UTC.
	Now func() time.Time
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}
