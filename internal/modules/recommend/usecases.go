package recommend

import (
	"gorm.io/gorm"

	"github.com/nexlearn/nexlearn-backend/internal/data/repos"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Modules           repos.ModuleRepo
	ModuleStandards   repos.ModuleStandardRepo
	Standards         repos.StandardRepo
	ModuleAssessments repos.ModuleAssessmentRepo
	SectionQuestions  repos.SectionQuestionRepo
	Attempts          repos.AttemptRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}
