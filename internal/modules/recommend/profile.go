package recommend

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/apierr"
)

// BaselineProfile summarizes a module's baseline assessment usage: how big
// the quiz is, how many learners tried it, and how they did.
type BaselineProfile struct {
	AssessmentID   uuid.UUID
	QuestionCount  int
	AttemptCount   int
	CompletionRate float64
	AvgScorePct    *float64
}

// ModuleProfile is the recommendation scorer's view of one module: the
// standard codes it covers plus its baseline signal, if any.
type ModuleProfile struct {
	Module    *types.Module
	Standards map[string]struct{}
	Baseline  *BaselineProfile
}

// buildProfiles assembles ModuleProfiles for the given modules in bulk:
// standards via the module-standard join, baseline stats via the module's
// baseline assessment link.
func (u Usecases) buildProfiles(ctx context.Context, modules []*types.Module) (map[uuid.UUID]*ModuleProfile, error) {
	profiles := make(map[uuid.UUID]*ModuleProfile, len(modules))
	moduleIDs := make([]uuid.UUID, 0, len(modules))
	for _, m := range modules {
		profiles[m.ID] = &ModuleProfile{Module: m, Standards: make(map[string]struct{})}
		moduleIDs = append(moduleIDs, m.ID)
	}

	links, err := u.deps.ModuleStandards.GetByModuleIDs(ctx, nil, moduleIDs)
	if err != nil {
		return nil, fmt.Errorf("load module standards: %w", err)
	}
	standardIDs := make([]uuid.UUID, 0, len(links))
	seen := make(map[uuid.UUID]struct{}, len(links))
	for _, link := range links {
		if _, ok := seen[link.StandardID]; ok {
			continue
		}
		seen[link.StandardID] = struct{}{}
		standardIDs = append(standardIDs, link.StandardID)
	}
	standards, err := u.deps.Standards.GetByIDs(ctx, nil, standardIDs)
	if err != nil {
		return nil, fmt.Errorf("load standards: %w", err)
	}
	codeByID := make(map[uuid.UUID]string, len(standards))
	for _, s := range standards {
		codeByID[s.ID] = s.Code
	}
	for _, link := range links {
		p, ok := profiles[link.ModuleID]
		if !ok {
			continue
		}
		if code := codeByID[link.StandardID]; code != "" {
			p.Standards[code] = struct{}{}
		}
	}

	baselines, err := u.deps.ModuleAssessments.GetByModuleIDs(ctx, nil, moduleIDs)
	if err != nil {
		return nil, fmt.Errorf("load baseline links: %w", err)
	}
	if len(baselines) == 0 {
		return profiles, nil
	}

	assessmentIDs := make([]uuid.UUID, 0, len(baselines))
	for _, b := range baselines {
		assessmentIDs = append(assessmentIDs, b.AssessmentID)
	}
	questionCounts, err := u.deps.SectionQuestions.CountByAssessmentIDs(ctx, nil, assessmentIDs)
	if err != nil {
		return nil, fmt.Errorf("count baseline questions: %w", err)
	}
	stats, err := u.deps.Attempts.StatsByAssessmentIDs(ctx, nil, assessmentIDs)
	if err != nil {
		return nil, fmt.Errorf("load baseline attempt stats: %w", err)
	}

	for _, b := range baselines {
		p, ok := profiles[b.ModuleID]
		if !ok {
			continue
		}
		bp := &BaselineProfile{
			AssessmentID:  b.AssessmentID,
			QuestionCount: questionCounts[b.AssessmentID],
		}
		if s, ok := stats[b.AssessmentID]; ok {
			bp.AttemptCount = s.AttemptCount
			if s.AttemptCount > 0 {
				bp.CompletionRate = float64(s.CompletedCount) / float64(s.AttemptCount)
			}
			bp.AvgScorePct = s.AvgScorePct
		}
		p.Baseline = bp
	}
	return profiles, nil
}

// ModuleBaseline exposes one module's baseline profile on its own; dashboard
// views consume it outside the recommendation flow.
func (u Usecases) ModuleBaseline(ctx context.Context, moduleID uuid.UUID) (*BaselineProfile, error) {
	module, err := u.deps.Modules.GetByID(ctx, nil, moduleID)
	if err != nil {
		return nil, apierr.Internal("module_read_failed", fmt.Errorf("load module: %w", err))
	}
	if module == nil {
		return nil, nil
	}
	profiles, err := u.buildProfiles(ctx, []*types.Module{module})
	if err != nil {
		return nil, apierr.Internal("baseline_read_failed", err)
	}
	return profiles[module.ID].Baseline, nil
}
