package assessment

import "errors"

var (
	// ErrNoAssessmentConfigured means the catalog holds no assessment at all.
	ErrNoAssessmentConfigured = errors.New("no assessment configured")
	// ErrAssessmentMisconfigured means the selected assessment resolves to
	// zero sections or zero questions.
	ErrAssessmentMisconfigured = errors.New("assessment has no resolvable questions")
	// ErrEmptyAttempt means finalize was called with no answers; the caller
	// is expected to guarantee at least one.
	ErrEmptyAttempt = errors.New("attempt has no answers")
	// ErrAttemptCompleted means the attempt was already finalized; a second
	// finalize must not double-apply mastery blending.
	ErrAttemptCompleted = errors.New("attempt already completed")
)
