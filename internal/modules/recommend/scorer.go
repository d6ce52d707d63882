package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	types "github.com/nexlearn/nexlearn-backend/internal/domain"
	"github.com/nexlearn/nexlearn-backend/internal/platform/apierr"
)

const (
	maxRecommendations = 3
	minViableScore     = -2.0
	reasonSeparator    = " · "
	defaultReason      = "Explore related learning"
	fallbackPrefix     = "More from this subject"
)

type Recommendation struct {
	ModuleID uuid.UUID `json:"module_id"`
	Title    string    `json:"title"`
	Reason   string    `json:"reason"`
	Fallback bool      `json:"fallback"`
}

type scoredCandidate struct {
	profile *ModuleProfile
	score   float64
	reasons []string
}

// Recommend ranks sibling modules for a learner finishing moduleID with
// lastScore (nil when unknown) and returns up to three suggestions,
// topping up with grade-ordered fallbacks when too few score well. Pure
// read; an unknown or non-public module yields an empty list, not an error.
func (u Usecases) Recommend(ctx context.Context, moduleID uuid.UUID, lastScore *float64) ([]Recommendation, error) {
	current, err := u.deps.Modules.GetByID(ctx, nil, moduleID)
	if err != nil {
		return nil, apierr.Internal("recommendation_read_failed", fmt.Errorf("load module: %w", err))
	}
	if current == nil || current.Visibility != types.VisibilityPublic {
		return []Recommendation{}, nil
	}

	siblings, err := u.deps.Modules.GetPublicSiblings(ctx, nil, current.Subject, []uuid.UUID{current.ID})
	if err != nil {
		return nil, apierr.Internal("recommendation_read_failed", fmt.Errorf("load siblings: %w", err))
	}
	if len(siblings) == 0 {
		return []Recommendation{}, nil
	}

	profiles, err := u.buildProfiles(ctx, append([]*types.Module{current}, siblings...))
	if err != nil {
		return nil, apierr.Internal("recommendation_read_failed", err)
	}
	currentProfile := profiles[current.ID]

	scored := make([]scoredCandidate, 0, len(siblings))
	for _, sibling := range siblings {
		scored = append(scored, scoreCandidate(currentProfile, profiles[sibling.ID], lastScore))
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	out := make([]Recommendation, 0, maxRecommendations)
	chosen := map[uuid.UUID]struct{}{current.ID: {}}
	for _, c := range scored {
		if len(out) == maxRecommendations {
			break
		}
		if c.score <= minViableScore {
			continue
		}
		reason := defaultReason
		if len(c.reasons) > 0 {
			reason = strings.Join(c.reasons, reasonSeparator)
		}
		out = append(out, Recommendation{
			ModuleID: c.profile.Module.ID,
			Title:    c.profile.Module.Title,
			Reason:   reason,
		})
		chosen[c.profile.Module.ID] = struct{}{}
	}

	if len(out) < maxRecommendations {
		fallbacks := fallbackByGrade(siblings, chosen, maxRecommendations-len(out))
		out = append(out, fallbacks...)
	}
	return out, nil
}

func scoreCandidate(current, candidate *ModuleProfile, lastScore *float64) scoredCandidate {
	c := scoredCandidate{profile: candidate}

	if candidate.Module.Strand != "" && candidate.Module.Strand == current.Module.Strand {
		c.score += 2.5
		c.reasons = append(c.reasons, fmt.Sprintf("Continues the %s strand", candidate.Module.Strand))
	} else {
		c.score += 1.5
		c.reasons = append(c.reasons, fmt.Sprintf("More %s practice", candidate.Module.Subject))
	}

	gradeDiff := gradeOrdinal(candidate.Module.GradeBand) - gradeOrdinal(current.Module.GradeBand)
	if math.Abs(gradeDiff) <= 1 {
		c.score += 0.5
	} else {
		c.score -= 0.2 * math.Abs(gradeDiff)
	}

	shared, novel := standardsOverlap(current.Standards, candidate.Standards)
	if len(shared) > 0 {
		c.score += 1.5
		c.reasons = append(c.reasons, "Covers standards you just worked on")
	} else if len(novel) > 0 {
		c.reasons = append(c.reasons, fmt.Sprintf("Introduces %s", strings.Join(novel, ", ")))
	}

	switch {
	case lastScore != nil && *lastScore < 70:
		if len(shared) > 0 {
			c.score += 2
			c.reasons = append(c.reasons, "Reinforces the gaps from your last attempt")
		}
		if gradeDiff > 1 {
			c.score -= 1
		}
	case lastScore != nil && *lastScore >= 90:
		if len(novel) > 0 {
			c.score += 2
			c.reasons = append(c.reasons, "A stretch into new standards")
		}
		if gradeDiff < -1 {
			c.score -= 0.5
		}
	default:
		if len(candidate.Standards) > 0 {
			c.score += 0.5
		}
	}

	if candidate.Baseline != nil {
		c.score += 1
		if candidate.Baseline.AttemptCount == 0 {
			c.reasons = append(c.reasons, "Calibrate with a quick baseline quiz")
		} else if candidate.Baseline.AvgScorePct != nil {
			c.reasons = append(c.reasons, fmt.Sprintf("Learners average %.0f%% on its baseline", *candidate.Baseline.AvgScorePct))
		}
	} else {
		c.score -= 0.3
	}

	return c
}

// standardsOverlap splits the candidate's standards into those shared with
// the current module and those the current module does not cover. Novel
// codes come back sorted for stable reason text.
func standardsOverlap(current, candidate map[string]struct{}) (shared, novel []string) {
	for code := range candidate {
		if _, ok := current[code]; ok {
			shared = append(shared, code)
		} else {
			novel = append(novel, code)
		}
	}
	sort.Strings(shared)
	sort.Strings(novel)
	return shared, novel
}

// fallbackByGrade fills the tail of a short recommendation list with
// same-subject modules in ascending grade order, flagged as fallbacks.
func fallbackByGrade(siblings []*types.Module, chosen map[uuid.UUID]struct{}, want int) []Recommendation {
	remaining := make([]*types.Module, 0, len(siblings))
	for _, m := range siblings {
		if _, ok := chosen[m.ID]; ok {
			continue
		}
		remaining = append(remaining, m)
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return gradeOrdinal(remaining[i].GradeBand) < gradeOrdinal(remaining[j].GradeBand)
	})

	out := make([]Recommendation, 0, want)
	for _, m := range remaining {
		if len(out) == want {
			break
		}
		out = append(out, Recommendation{
			ModuleID: m.ID,
			Title:    m.Title,
			Reason:   fallbackPrefix + reasonSeparator + defaultReason,
			Fallback: true,
		})
	}
	return out
}
