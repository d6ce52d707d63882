package assessment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexlearn/nexlearn-backend/internal/data/repos"
	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

// In-memory fakes for the persistence interfaces, so usecase behavior is
// testable without a database. Each fake carries optional injected errors.

type fakeAssessments struct {
	def *types.Assessment
	err error
}

func (f *fakeAssessments) PickDiagnostic(ctx context.Context, tx *gorm.DB) (*types.Assessment, error) {
	return f.def, f.err
}

func (f *fakeAssessments) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error) {
	if f.def == nil {
		return nil, nil
	}
	for _, id := range ids {
		if id == f.def.ID {
			return []*types.Assessment{f.def}, nil
		}
	}
	return nil, nil
}

type fakeSections struct {
	rows []*types.AssessmentSection
	err  error
}

func (f *fakeSections) GetByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentSection, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.AssessmentSection, 0, len(f.rows))
	for _, s := range f.rows {
		if s.AssessmentID == assessmentID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type fakeLinks struct {
	rows []*types.SectionQuestion
}

func (f *fakeLinks) GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionQuestion, error) {
	want := make(map[uuid.UUID]struct{}, len(sectionIDs))
	for _, id := range sectionIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.SectionQuestion, 0, len(f.rows))
	for _, l := range f.rows {
		if _, ok := want[l.SectionID]; ok {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeLinks) CountByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return map[uuid.UUID]int{}, nil
}

type fakeQuestions struct {
	rows []*types.Question
}

func (f *fakeQuestions) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Question, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]*types.Question, 0, len(ids))
	for _, q := range f.rows {
		if _, ok := want[q.ID]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeOptions struct {
	rows []*types.QuestionOption
}

func (f *fakeOptions) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionOption, error) {
	want := make(map[uuid.UUID]struct{}, len(questionIDs))
	for _, id := range questionIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.QuestionOption, 0, len(f.rows))
	for _, o := range f.rows {
		if _, ok := want[o.QuestionID]; ok {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type fakeQuestionSkills struct {
	rows []*types.QuestionSkill
}

func (f *fakeQuestionSkills) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionSkill, error) {
	want := make(map[uuid.UUID]struct{}, len(questionIDs))
	for _, id := range questionIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.QuestionSkill, 0, len(f.rows))
	for _, l := range f.rows {
		if _, ok := want[l.QuestionID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeAttempts struct {
	mu   sync.Mutex
	rows []*types.AssessmentAttempt

	metadataErr error
	created     int
}

func (f *fakeAttempts) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttempts) GetInProgress(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (*types.AssessmentAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.UserID == userID && a.AssessmentID == assessmentID && a.Status == types.AttemptInProgress {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttempts) MaxAttemptNumber(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, a := range f.rows {
		if a.UserID == userID && a.AssessmentID == assessmentID && a.AttemptNumber > max {
			max = a.AttemptNumber
		}
	}
	return max, nil
}

func (f *fakeAttempts) Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentAttempt) (*types.AssessmentAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, row)
	f.created++
	return row, nil
}

func (f *fakeAttempts) Complete(ctx context.Context, tx *gorm.DB, id uuid.UUID, scorePct float64, completedAt time.Time, metadata datatypes.JSON) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.ID != id {
			continue
		}
		if a.Status != types.AttemptInProgress {
			return false, nil
		}
		a.Status = types.AttemptCompleted
		a.ScorePct = &scorePct
		a.CompletedAt = &completedAt
		a.Metadata = metadata
		return true, nil
	}
	return false, nil
}

func (f *fakeAttempts) UpdateMetadata(ctx context.Context, tx *gorm.DB, id uuid.UUID, metadata datatypes.JSON) error {
	if f.metadataErr != nil {
		return f.metadataErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.ID == id {
			a.Metadata = metadata
			return nil
		}
	}
	return nil
}

func (f *fakeAttempts) GetCompletedByUser(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) ([]*types.AssessmentAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.AssessmentAttempt, 0, len(f.rows))
	for _, a := range f.rows {
		if a.UserID != userID || a.Status != types.AttemptCompleted {
			continue
		}
		if assessmentID != uuid.Nil && a.AssessmentID != assessmentID {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AttemptNumber < out[j].AttemptNumber })
	return out, nil
}

func (f *fakeAttempts) StatsByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (map[uuid.UUID]repos.AttemptStats, error) {
	return nil, nil
}

type fakeResponses struct {
	mu        sync.Mutex
	rows      map[[2]uuid.UUID]*types.AttemptResponse
	upsertErr error
}

func newFakeResponses() *fakeResponses {
	return &fakeResponses{rows: make(map[[2]uuid.UUID]*types.AttemptResponse)}
}

func (f *fakeResponses) GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.AttemptResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.AttemptResponse, 0, len(f.rows))
	for _, r := range f.rows {
		if r.AttemptID == attemptID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponses) Upsert(ctx context.Context, tx *gorm.DB, row *types.AttemptResponse) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[[2]uuid.UUID{row.AttemptID, row.QuestionID}] = row
	return nil
}

type fakeSkillMastery struct {
	mu        sync.Mutex
	rows      map[[2]uuid.UUID]*types.SkillMastery
	readErr   error
	upsertErr map[uuid.UUID]error
}

func newFakeSkillMastery() *fakeSkillMastery {
	return &fakeSkillMastery{
		rows:      make(map[[2]uuid.UUID]*types.SkillMastery),
		upsertErr: make(map[uuid.UUID]error),
	}
}

func (f *fakeSkillMastery) seed(userID, skillID uuid.UUID, pct float64) {
	f.rows[[2]uuid.UUID{userID, skillID}] = &types.SkillMastery{UserID: userID, SkillID: skillID, MasteryPct: pct}
}

func (f *fakeSkillMastery) GetByUserAndSkillIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skillIDs []uuid.UUID) ([]*types.SkillMastery, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.SkillMastery, 0, len(skillIDs))
	for _, sid := range skillIDs {
		if r, ok := f.rows[[2]uuid.UUID{userID, sid}]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSkillMastery) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillMastery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.SkillMastery, 0, len(f.rows))
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSkillMastery) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillMastery) error {
	if err := f.upsertErr[row.SkillID]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[[2]uuid.UUID{row.UserID, row.SkillID}] = row
	return nil
}

type fakeMasteryEvents struct {
	mu        sync.Mutex
	rows      []*types.MasteryEvent
	createErr error
}

func (f *fakeMasteryEvents) Create(ctx context.Context, tx *gorm.DB, rows []*types.MasteryEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeMasteryEvents) GetByUserAndSkill(ctx context.Context, tx *gorm.DB, userID, skillID uuid.UUID, limit int) ([]*types.MasteryEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.MasteryEvent, 0, len(f.rows))
	for i := len(f.rows) - 1; i >= 0; i-- {
		r := f.rows[i]
		if r.UserID == userID && r.SkillID == skillID {
			out = append(out, r)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeLessonSkills struct {
	rows []*types.LessonSkill
	err  error
}

func (f *fakeLessonSkills) GetBySkillIDs(ctx context.Context, tx *gorm.DB, skillIDs []uuid.UUID) ([]*types.LessonSkill, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[uuid.UUID]struct{}, len(skillIDs))
	for _, id := range skillIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.LessonSkill, 0, len(f.rows))
	for _, l := range f.rows {
		if _, ok := want[l.SkillID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonSkills) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonSkill, error) {
	want := make(map[uuid.UUID]struct{}, len(lessonIDs))
	for _, id := range lessonIDs {
		want[id] = struct{}{}
	}
	out := make([]*types.LessonSkill, 0, len(f.rows))
	for _, l := range f.rows {
		if _, ok := want[l.LessonID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeLessonProgress struct {
	mu        sync.Mutex
	rows      map[[2]uuid.UUID]*types.LessonProgress
	upsertErr error
}

func newFakeLessonProgress() *fakeLessonProgress {
	return &fakeLessonProgress{rows: make(map[[2]uuid.UUID]*types.LessonProgress)}
}

func (f *fakeLessonProgress) GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.LessonProgress, 0, len(lessonIDs))
	for _, lid := range lessonIDs {
		if r, ok := f.rows[[2]uuid.UUID{userID, lid}]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// ApplyPropagation mirrors the store's conflict semantics: mastery only
// rises, attempts increment, completed never regresses.
func (f *fakeLessonProgress) ApplyPropagation(ctx context.Context, tx *gorm.DB, row *types.LessonProgress) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uuid.UUID{row.UserID, row.LessonID}
	cur, ok := f.rows[key]
	if !ok {
		f.rows[key] = row
		return nil
	}
	if row.MasteryPct > cur.MasteryPct {
		cur.MasteryPct = row.MasteryPct
	}
	cur.Attempts++
	if cur.Status != types.ProgressCompleted {
		cur.Status = row.Status
	}
	cur.LastActivityAt = row.LastActivityAt
	return nil
}

type fakePaths struct {
	messages []string
	err      error
	calls    int
}

func (f *fakePaths) RefreshFromSuggestions(ctx context.Context, userID uuid.UUID, suggestionCount int) ([]string, error) {
	f.calls++
	return f.messages, f.err
}

type fakeProfile struct {
	err   error
	calls int
}

func (f *fakeProfile) MarkDiagnosticCompleted(ctx context.Context, userID uuid.UUID) error {
	f.calls++
	return f.err
}

// fixture bundles the fakes and builds a Usecases wired to them with a
// deterministic clock.
type fixture struct {
	assessments  *fakeAssessments
	sections     *fakeSections
	links        *fakeLinks
	questions    *fakeQuestions
	options      *fakeOptions
	qskills      *fakeQuestionSkills
	attempts     *fakeAttempts
	responses    *fakeResponses
	mastery      *fakeSkillMastery
	events       *fakeMasteryEvents
	lessonSkills *fakeLessonSkills
	progress     *fakeLessonProgress
	paths        *fakePaths
	profile      *fakeProfile
	now          time.Time
}

func newFixture() *fixture {
	return &fixture{
		assessments:  &fakeAssessments{},
		sections:     &fakeSections{},
		links:        &fakeLinks{},
		questions:    &fakeQuestions{},
		options:      &fakeOptions{},
		qskills:      &fakeQuestionSkills{},
		attempts:     &fakeAttempts{},
		responses:    newFakeResponses(),
		mastery:      newFakeSkillMastery(),
		events:       &fakeMasteryEvents{},
		lessonSkills: &fakeLessonSkills{},
		progress:     newFakeLessonProgress(),
		paths:        &fakePaths{},
		profile:      &fakeProfile{},
		now:          time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) usecases(t *testing.T) Usecases {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return New(UsecasesDeps{
		Log:              log,
		Assessments:      f.assessments,
		Sections:         f.sections,
		SectionQuestions: f.links,
		Questions:        f.questions,
		Options:          f.options,
		QuestionSkills:   f.qskills,
		Attempts:         f.attempts,
		Responses:        f.responses,
		SkillMastery:     f.mastery,
		MasteryEvents:    f.events,
		LessonSkills:     f.lessonSkills,
		LessonProgress:   f.progress,
		Paths:            f.paths,
		Profile:          f.profile,
		Now:              func() time.Time { return f.now },
	})
}
