package assessment

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Answer is one scored response handed to finalization, carrying the
// question facts mastery math needs.
type Answer struct {
	QuestionID uuid.UUID
	Concept    string
	Weight     float64
	Correct    bool
	SkillIDs   []uuid.UUID
}

// blendMastery folds a fresh observation into the established estimate.
// Both inputs and the result are percentages in [0,100].
func blendMastery(prior, observed float64) float64 {
	blended := prior*priorWeight + observed*observedWeight
	if blended < 0 {
		blended = 0
	}
	if blended > 100 {
		blended = 100
	}
	return math.Round(blended)
}

func aggregateScore(answers []Answer) (scorePct int, correctCount int) {
	var correctWeight, totalWeight float64
	for _, a := range answers {
		w := a.Weight
		if w <= 0 {
			w = 1
		}
		totalWeight += w
		if a.Correct {
			correctWeight += w
			correctCount++
		}
	}
	if totalWeight == 0 {
		return 0, correctCount
	}
	return int(math.Round(100 * correctWeight / totalWeight)), correctCount
}

// conceptSummary groups answers by concept label and splits concepts into
// strengths and weaknesses by unweighted accuracy. Concepts strictly between
// the thresholds are reported as neither.
func conceptSummary(answers []Answer) (strengths, weaknesses []string) {
	type tally struct{ correct, total int }
	byConcept := make(map[string]*tally)
	for _, a := range answers {
		concept := a.Concept
		if concept == "" {
			concept = fallbackConcept
		}
		t, ok := byConcept[concept]
		if !ok {
			t = &tally{}
			byConcept[concept] = t
		}
		t.total++
		if a.Correct {
			t.correct++
		}
	}

	for concept, t := range byConcept {
		accuracy := float64(t.correct) / float64(t.total)
		switch {
		case accuracy >= strengthThreshold:
			strengths = append(strengths, concept)
		case accuracy <= weaknessThreshold:
			weaknesses = append(weaknesses, concept)
		}
	}
	sort.Strings(strengths)
	sort.Strings(weaknesses)
	return strengths, weaknesses
}

// skillObservations accumulates weighted evidence per skill across all
// answers tagged with that skill, as an observed percentage.
func skillObservations(answers []Answer) map[uuid.UUID]float64 {
	type agg struct{ correct, total float64 }
	bySkill := make(map[uuid.UUID]*agg)
	for _, a := range answers {
		w := a.Weight
		if w <= 0 {
			w = 1
		}
		for _, skillID := range a.SkillIDs {
			s, ok := bySkill[skillID]
			if !ok {
				s = &agg{}
				bySkill[skillID] = s
			}
			s.total += w
			if a.Correct {
				s.correct += w
			}
		}
	}

	out := make(map[uuid.UUID]float64, len(bySkill))
	for skillID, s := range bySkill {
		if s.total == 0 {
			continue
		}
		out[skillID] = math.Round(100 * s.correct / s.total)
	}
	return out
}
