package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexlearn/nexlearn-backend/internal/data/repos"
	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

// In-memory catalog fakes. The scorer is a pure read path, so these only
// need lookup behavior.

type fakeCatalog struct {
	modules    []*types.Module
	standards  []*types.Standard
	modStds    []*types.ModuleStandard
	baselines  []*types.ModuleAssessment
	questions  map[uuid.UUID]int
	stats      map[uuid.UUID]repos.AttemptStats
	modulesErr error
}

func (f *fakeCatalog) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Module, error) {
	if f.modulesErr != nil {
		return nil, f.modulesErr
	}
	for _, m := range f.modules {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) GetPublicSiblings(ctx context.Context, tx *gorm.DB, subject string, excludeIDs []uuid.UUID) ([]*types.Module, error) {
	skip := make(map[uuid.UUID]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		skip[id] = struct{}{}
	}
	out := make([]*types.Module, 0, len(f.modules))
	for _, m := range f.modules {
		if m.Subject != subject || m.Visibility != types.VisibilityPublic {
			continue
		}
		if _, ok := skip[m.ID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeModuleStandards struct{ c *fakeCatalog }

func (f fakeModuleStandards) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.ModuleStandard, error) {
	want := make(map[uuid.UUID]struct{}, len(moduleIDs))
	for _, id := range moduleIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.ModuleStandard, 0, len(f.c.modStds))
	for _, l := range f.c.modStds {
		if _, ok := want[l.ModuleID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeStandards struct{ c *fakeCatalog }

func (f fakeStandards) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Standard, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]*types.Standard, 0, len(f.c.standards))
	for _, s := range f.c.standards {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeModuleAssessments struct{ c *fakeCatalog }

func (f fakeModuleAssessments) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.ModuleAssessment, error) {
	want := make(map[uuid.UUID]struct{}, len(moduleIDs))
	for _, id := range moduleIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.ModuleAssessment, 0, len(f.c.baselines))
	for _, b := range f.c.baselines {
		if _, ok := want[b.ModuleID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSectionQuestions struct{ c *fakeCatalog }

func (f fakeSectionQuestions) GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionQuestion, error) {
	return nil, nil
}

func (f fakeSectionQuestions) CountByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(assessmentIDs))
	for _, id := range assessmentIDs {
		if n, ok := f.c.questions[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeBaselineAttempts struct{ c *fakeCatalog }

func (f fakeBaselineAttempts) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentAttempt, error) {
	return nil, nil
}

func (f fakeBaselineAttempts) GetInProgress(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (*types.AssessmentAttempt, error) {
	return nil, nil
}

func (f fakeBaselineAttempts) MaxAttemptNumber(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (int, error) {
	return 0, nil
}

func (f fakeBaselineAttempts) Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentAttempt) (*types.AssessmentAttempt, error) {
	return row, nil
}

func (f fakeBaselineAttempts) Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, scorePct float64, completedAt time.Time, metadata datatypes.JSON) (bool, error) {
	return false, nil
}

func (f fakeBaselineAttempts) UpdateMetadata(ctx context.Context, tx *gorm.DB, id uuid.UUID, metadata datatypes.JSON) error {
	return nil
}

func (f fakeBaselineAttempts) GetCompletedByUser(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) ([]*types.AssessmentAttempt, error) {
	return nil, nil
}

func (f fakeBaselineAttempts) StatsByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]repos.AttemptStats, error) {
	out := make(map[uuid.UUID]repos.AttemptStats, len(assessmentIDs))
	for _, id := range assessmentIDs {
		if s, ok := f.c.stats[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{
		questions: make(map[uuid.UUID]int),
		stats:     make(map[uuid.UUID]repos.AttemptStats),
	}
}

func (c *fakeCatalog) usecases(t *testing.T) Usecases {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return New(UsecasesDeps{
		Log:               log,
		Modules:           c,
		ModuleStandards:   fakeModuleStandards{c},
		Standards:         fakeStandards{c},
		ModuleAssessments: fakeModuleAssessments{c},
		SectionQuestions:  fakeSectionQuestions{c},
		Attempts:          fakeBaselineAttempts{c},
	})
}

// addModule registers a public module with the given standard codes,
// creating standard rows as needed.
func (c *fakeCatalog) addModule(title, subject, gradeBand, strand string, codes ...string) *types.Module {
	m := &types.Module{
		ID:         uuid.New(),
		Title:      title,
		Slug:       title,
		Subject:    subject,
		GradeBand:  gradeBand,
		Strand:     strand,
		Visibility: types.VisibilityPublic,
	}
	c.modules = append(c.modules, m)
	for _, code := range codes {
		var std *types.Standard
		for _, s := range c.standards {
			if s.Code == code {
				std = s
				break
			}
		}
		if std == nil {
			std = &types.Standard{ID: uuid.New(), Framework: "CCSS", Code: code}
			c.standards = append(c.standards, std)
		}
		c.modStds = append(c.modStds, &types.ModuleStandard{
			ID: uuid.New(), ModuleID: m.ID, StandardID: std.ID,
		})
	}
	return m
}

// addBaseline links a baseline assessment to the module with the given
// question count and attempt stats.
func (c *fakeCatalog) addBaseline(moduleID uuid.UUID, questions, attempts, completed int, avgScore *float64) uuid.UUID {
	assessmentID := uuid.New()
	c.baselines = append(c.baselines, &types.ModuleAssessment{
		ID: uuid.New(), ModuleID: moduleID, AssessmentID: assessmentID,
	})
	c.questions[assessmentID] = questions
	c.stats[assessmentID] = repos.AttemptStats{
		AttemptCount:   attempts,
		CompletedCount: completed,
		AvgScorePct:    avgScore,
	}
	return assessmentID
}
