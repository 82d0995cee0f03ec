package port

import (
	"context"

	"github.com/google/uuid"

	"flowcase/internal/domain"
)

// RunRepository persists extraction runs and their scenarios.
type RunRepository interface {
	CreateRun(ctx context.Context, run *domain.ExtractionRun) error
	UpdateRun(ctx context.Context, run *domain.ExtractionRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error)
	ListRuns(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error)
	CreateScenarios(ctx context.Context, scenarios []domain.Scenario) error
	ListScenarios(ctx context.Context, runID uuid.UUID) ([]domain.Scenario, error)
}
