package assessment

// Policy constants for mastery blending and outcome labeling. The weights
// and thresholds are product-owned values; changing them changes what
// learners are told about themselves, so they live here and nowhere else.
const (
	// Blended mastery = prior*priorWeight + observed*observedWeight. History
	// dominates a single attempt so one lucky or unlucky run cannot swing
	// the estimate to an extreme.
	priorWeight    = 0.6
	observedWeight = 0.4

	// Per-concept accuracy cutoffs for the strengths/weaknesses summary.
	// Accuracy strictly between the two is reported as neither.
	strengthThreshold = 0.75
	weaknessThreshold = 0.50

	// Minimum recorded time per response; protects downstream rate math
	// from zero division.
	minTimeSpentSec = 1

	// How many suggestions the external planner is asked for after a
	// finalized attempt.
	planSuggestionCount = 3
)
