package services

import (
	"context"

	"github.com/google/uuid"
)

// ProfileService flags learner-profile facts owned by the account side of
// the platform.
type ProfileService interface {
	MarkDiagnosticCompleted(ctx context.Context, userID uuid.UUID) error
}
