package assessment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/apierr"
)

// LoadedQuestion is a fully hydrated question ready to present: bank fields,
// link weight, ordered options, resolved skills, and the derived concept
// label the outcome summary groups by.
type LoadedQuestion struct {
	ID           uuid.UUID
	SectionID    uuid.UUID
	SectionTitle string
	Prompt       string
	Kind         types.QuestionKind
	Difficulty   float64
	Weight       float64
	Concept      string
	SkillIDs     []uuid.UUID
	Options      []*types.QuestionOption
}

// ExistingResponse surfaces an answer already recorded on the attempt so a
// resumed learner is not re-asked.
type ExistingResponse struct {
	OptionID *uuid.UUID
	Correct  bool
}

type LoadedAssessment struct {
	Assessment        *types.Assessment
	AttemptID         uuid.UUID
	AttemptNumber     int
	Questions         []LoadedQuestion
	ExistingResponses map[uuid.UUID]ExistingResponse
}

// LoadDiagnostic resolves the assessment a learner should take, hydrates its
// ordered question list, and finds or creates the learner's attempt.
func (u Usecases) LoadDiagnostic(ctx context.Context, userID uuid.UUID) (*LoadedAssessment, error) {
	if userID == uuid.Nil {
		return nil, apierr.BadRequest("missing_user_id", nil)
	}

	def, err := u.deps.Assessments.PickDiagnostic(ctx, nil)
	if err != nil {
		return nil, apierr.Internal("assessment_unavailable", fmt.Errorf("pick assessment: %w", err))
	}
	if def == nil {
		return nil, apierr.NotFound("assessment_unavailable", ErrNoAssessmentConfigured)
	}

	sections, err := u.deps.Sections.GetByAssessmentID(ctx, nil, def.ID)
	if err != nil {
		return nil, apierr.Internal("assessment_unavailable", fmt.Errorf("load sections: %w", err))
	}
	if len(sections) == 0 {
		return nil, apierr.Internal("assessment_misconfigured", ErrAssessmentMisconfigured)
	}

	sectionIDs := make([]uuid.UUID, 0, len(sections))
	sectionTitles := make(map[uuid.UUID]string, len(sections))
	for _, s := range sections {
		sectionIDs = append(sectionIDs, s.ID)
		sectionTitles[s.ID] = s.Title
	}

	// Sections come back in position order, and links in position order
	// within each section; the flattened link slice preserves both.
	links, err := u.deps.SectionQuestions.GetBySectionIDs(ctx, nil, sectionIDs)
	if err != nil {
		return nil, apierr.Internal("assessment_unavailable", fmt.Errorf("load question links: %w", err))
	}
	if len(links) == 0 {
		return nil, apierr.Internal("assessment_misconfigured", ErrAssessmentMisconfigured)
	}
	ordered := orderLinks(sectionIDs, links)

	questionIDs := make([]uuid.UUID, 0, len(ordered))
	for _, l := range ordered {
		questionIDs = append(questionIDs, l.QuestionID)
	}

	// Bank rows, options, and skill links do not depend on each other;
	// fetch them concurrently.
	var (
		bank       []*types.Question
		options    []*types.QuestionOption
		skillLinks []*types.QuestionSkill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bank, err = u.deps.Questions.GetByIDs(gctx, nil, questionIDs)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		options, err = u.deps.Options.GetByQuestionIDs(gctx, nil, questionIDs)
		if err != nil {
			return fmt.Errorf("load options: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		skillLinks, err = u.deps.QuestionSkills.GetByQuestionIDs(gctx, nil, questionIDs)
		if err != nil {
			return fmt.Errorf("load skill links: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Internal("assessment_unavailable", err)
	}

	bankByID := make(map[uuid.UUID]*types.Question, len(bank))
	for _, q := range bank {
		bankByID[q.ID] = q
	}
	optionsByQuestion := make(map[uuid.UUID][]*types.QuestionOption)
	for _, o := range options {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], o)
	}
	skillsByQuestion := make(map[uuid.UUID][]uuid.UUID)
	for _, l := range skillLinks {
		skillsByQuestion[l.QuestionID] = append(skillsByQuestion[l.QuestionID], l.SkillID)
	}

	questions := make([]LoadedQuestion, 0, len(ordered))
	for _, link := range ordered {
		q, ok := bankByID[link.QuestionID]
		if !ok {
			// A link pointing at a missing bank row is a data integrity
			// violation, not a skippable gap.
			return nil, apierr.Internal("question_bank_integrity",
				fmt.Errorf("question %s referenced by section %s not found in bank", link.QuestionID, link.SectionID))
		}
		weight := link.Weight
		if weight <= 0 {
			weight = 1
		}
		questions = append(questions, LoadedQuestion{
			ID:           q.ID,
			SectionID:    link.SectionID,
			SectionTitle: sectionTitles[link.SectionID],
			Prompt:       q.Prompt,
			Kind:         q.Kind,
			Difficulty:   q.Difficulty,
			Weight:       weight,
			Concept:      conceptLabel(q),
			SkillIDs:     skillsByQuestion[q.ID],
			Options:      optionsByQuestion[q.ID],
		})
	}

	attempt, err := u.findOrCreateAttempt(ctx, userID, def.ID)
	if err != nil {
		return nil, apierr.Internal("assessment_unavailable", err)
	}

	existing := make(map[uuid.UUID]ExistingResponse)
	responses, err := u.deps.Responses.GetByAttemptID(ctx, nil, attempt.ID)
	if err != nil {
		return nil, apierr.Internal("assessment_unavailable", fmt.Errorf("load responses: %w", err))
	}
	for _, resp := range responses {
		existing[resp.QuestionID] = ExistingResponse{OptionID: resp.OptionID, Correct: resp.Correct}
	}

	u.deps.Log.Debug("diagnostic loaded",
		"user_id", userID,
		"assessment_id", def.ID,
		"attempt_id", attempt.ID,
		"questions", len(questions),
		"resumed_responses", len(existing),
	)

	return &LoadedAssessment{
		Assessment:        def,
		AttemptID:         attempt.ID,
		AttemptNumber:     attempt.AttemptNumber,
		Questions:         questions,
		ExistingResponses: existing,
	}, nil
}

// orderLinks flattens per-section link rows into one presentation-ordered
// slice: sections in their explicit order, links by position within each.
func orderLinks(sectionIDs []uuid.UUID, links []*types.SectionQuestion) []*types.SectionQuestion {
	bySection := make(map[uuid.UUID][]*types.SectionQuestion)
	for _, l := range links {
		bySection[l.SectionID] = append(bySection[l.SectionID], l)
	}
	out := make([]*types.SectionQuestion, 0, len(links))
	for _, sid := range sectionIDs {
		out = append(out, bySection[sid]...)
	}
	return out
}

func (u Usecases) findOrCreateAttempt(ctx context.Context, userID, assessmentID uuid.UUID) (*types.AssessmentAttempt, error) {
	attempt, err := u.deps.Attempts.GetInProgress(ctx, nil, userID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("find attempt: %w", err)
	}
	if attempt != nil {
		return attempt, nil
	}

	prev, err := u.deps.Attempts.MaxAttemptNumber(ctx, nil, userID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("resolve attempt number: %w", err)
	}
	row := &types.AssessmentAttempt{
		ID:            uuid.New(),
		UserID:        userID,
		AssessmentID:  assessmentID,
		AttemptNumber: prev + 1,
		Status:        types.AttemptInProgress,
		StartedAt:     u.deps.Now(),
	}
	if _, err := u.deps.Attempts.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}
	return row, nil
}
