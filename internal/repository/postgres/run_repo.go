package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flowcase/internal/domain"
	"flowcase/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) CreateRun(ctx context.Context, run *domain.ExtractionRun) error {
	run.CreatedAt = time.Now().UTC()

	query := `INSERT INTO extraction_runs (
		id, document_name, document_size, content_type,
		s3_bucket, s3_key, model_used, status, error_message,
		scenario_count, tokens_used, created_at, completed_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8, $9,
		$10, $11, $12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.DocumentName, run.DocumentSize, run.ContentType,
		run.S3Bucket, run.S3Key, run.ModelUsed, run.Status, run.ErrorMessage,
		run.ScenarioCount, run.TokensUsed, run.CreatedAt, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("runRepo.CreateRun: %w", err)
	}
	return nil
}

func (r *runRepo) UpdateRun(ctx context.Context, run *domain.ExtractionRun) error {
	query := `UPDATE extraction_runs SET
		s3_bucket = $2, s3_key = $3, model_used = $4, status = $5,
		error_message = $6, scenario_count = $7, tokens_used = $8,
		completed_at = $9
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		run.ID, run.S3Bucket, run.S3Key, run.ModelUsed, run.Status,
		run.ErrorMessage, run.ScenarioCount, run.TokensUsed, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("runRepo.UpdateRun: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("runRepo.UpdateRun: %w", err)
	}
	if rows == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *runRepo) GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	var run domain.ExtractionRun
	err := r.db.GetContext(ctx, &run,
		"SELECT * FROM extraction_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("runRepo.GetRun: %w", err)
	}
	return &run, nil
}

func (r *runRepo) ListRuns(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extraction_runs")
	if err != nil {
		return nil, 0, fmt.Errorf("runRepo.ListRuns count: %w", err)
	}

	runs := []domain.ExtractionRun{}
	err = r.db.SelectContext(ctx, &runs,
		"SELECT * FROM extraction_runs ORDER BY created_at DESC OFFSET $1 LIMIT $2",
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("runRepo.ListRuns: %w", err)
	}
	return runs, total, nil
}

func (r *runRepo) CreateScenarios(ctx context.Context, scenarios []domain.Scenario) error {
	if len(scenarios) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range scenarios {
		scenarios[i].CreatedAt = now
	}

	query := `INSERT INTO scenarios (
		id, run_id, position, requirement_location, flow_summary,
		modules, test_scenario, flow_type, created_at
	) VALUES (
		:id, :run_id, :position, :requirement_location, :flow_summary,
		:modules, :test_scenario, :flow_type, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, scenarios); err != nil {
		return fmt.Errorf("runRepo.CreateScenarios: %w", err)
	}
	return nil
}

func (r *runRepo) ListScenarios(ctx context.Context, runID uuid.UUID) ([]domain.Scenario, error) {
	scenarios := []domain.Scenario{}
	err := r.db.SelectContext(ctx, &scenarios,
		"SELECT * FROM scenarios WHERE run_id = $1 ORDER BY position ASC", runID)
	if err != nil {
		return nil, fmt.Errorf("runRepo.ListScenarios: %w", err)
	}
	return scenarios, nil
}
