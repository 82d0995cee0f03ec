package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"flowcase/internal/config"
	"flowcase/internal/docloader"
	"flowcase/internal/domain"
	"flowcase/internal/extractor"
	"flowcase/internal/port"
)

// EmptyResultWarning is shown when extraction succeeds but no scenario
// survives normalization. This is a warning, not an error.
const EmptyResultWarning = "No integration flows found (2+ modules). Check the document content."

// ExtractInput is the DTO for running an extraction on an uploaded document.
type ExtractInput struct {
	FileName string
	Size     int64
	File     io.Reader
}

// ExtractionResult bundles a run with its normalized scenarios.
type ExtractionResult struct {
	Run       *domain.ExtractionRun `json:"run"`
	Scenarios []domain.Scenario     `json:"scenarios"`
	Warning   string                `json:"warning,omitempty"`
}

// ExtractionService defines the scenario extraction contract.
type ExtractionService interface {
	ExtractFromUpload(ctx context.Context, input *ExtractInput) (*ExtractionResult, error)
	GetRun(ctx context.Context, id uuid.UUID) (*ExtractionResult, error)
	ListRuns(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error)
	DocumentURL(ctx context.Context, id uuid.UUID) (string, error)
}

type extractionService struct {
	runRepo   port.RunRepository
	extractor port.ScenarioExtractor
	storage   port.ObjectStorage // nil when archival is disabled
	extCfg    config.ExtractorConfig
	s3Cfg     config.S3Config
}

// NewExtractionService creates a new ExtractionService implementation.
// storage may be nil; uploaded documents are then not archived.
func NewExtractionService(
	runRepo port.RunRepository,
	scenarioExtractor port.ScenarioExtractor,
	storage port.ObjectStorage,
	extCfg config.ExtractorConfig,
	s3Cfg config.S3Config,
) ExtractionService {
	return &extractionService{
		runRepo:   runRepo,
		extractor: scenarioExtractor,
		storage:   storage,
		extCfg:    extCfg,
		s3Cfg:     s3Cfg,
	}
}

// ExtractFromUpload validates the uploaded document, decodes it, issues one
// blocking extraction request, normalizes the reply, and persists the run.
// All failures are terminal for the invocation; nothing is retried.
func (s *extractionService) ExtractFromUpload(ctx context.Context, input *ExtractInput) (*ExtractionResult, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.FileName)), ".")
	docType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.extCfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Decoding never fails; invalid sequences are replaced.
	docText := docloader.Decode(data)

	// Credential check happens before any external request is issued.
	if s.extCfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	run := &domain.ExtractionRun{
		ID:           uuid.New(),
		DocumentName: input.FileName,
		DocumentSize: int64(len(data)),
		ContentType:  domain.ContentTypeForDocType[docType],
		Status:       domain.RunStatusProcessing,
	}

	s.archiveDocument(ctx, run, data)

	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		log.Printf("extractionService: persisting run %s: %v", run.ID, err)
	}

	out, err := s.extractor.Extract(ctx, port.ExtractInput{DocumentText: docText})
	if err != nil {
		s.completeRun(ctx, run, domain.RunStatusFailed, err.Error())
		return nil, fmt.Errorf("extracting scenarios: %w", err)
	}

	scenarios := extractor.Normalize(out.Scenarios)
	for i := range scenarios {
		scenarios[i].ID = uuid.New()
		scenarios[i].RunID = run.ID
	}

	run.ModelUsed = out.ModelUsed
	run.TokensUsed = out.TokensUsed
	run.ScenarioCount = len(scenarios)
	s.completeRun(ctx, run, domain.RunStatusCompleted, "")

	if err := s.runRepo.CreateScenarios(ctx, scenarios); err != nil {
		log.Printf("extractionService: persisting scenarios for run %s: %v", run.ID, err)
	}

	result := &ExtractionResult{Run: run, Scenarios: scenarios}
	if len(scenarios) == 0 {
		result.Warning = EmptyResultWarning
	}
	return result, nil
}

func (s *extractionService) GetRun(ctx context.Context, id uuid.UUID) (*ExtractionResult, error) {
	run, err := s.runRepo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	scenarios, err := s.runRepo.ListScenarios(ctx, id)
	if err != nil {
		return nil, err
	}
	result := &ExtractionResult{Run: run, Scenarios: scenarios}
	if run.Status == domain.RunStatusCompleted && len(scenarios) == 0 {
		result.Warning = EmptyResultWarning
	}
	return result, nil
}

func (s *extractionService) ListRuns(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error) {
	return s.runRepo.ListRuns(ctx, offset, limit)
}

// DocumentURL returns a presigned URL for the archived original document.
func (s *extractionService) DocumentURL(ctx context.Context, id uuid.UUID) (string, error) {
	run, err := s.runRepo.GetRun(ctx, id)
	if err != nil {
		return "", err
	}
	if s.storage == nil || run.S3Bucket == "" || run.S3Key == "" {
		return "", domain.ErrDocumentNotArchived
	}
	return s.storage.GetPresignedURL(ctx, run.S3Bucket, run.S3Key, s.s3Cfg.PresignExpiry)
}

// archiveDocument uploads the original bytes to object storage when
// configured. Archival is best effort; a failure does not abort extraction.
func (s *extractionService) archiveDocument(ctx context.Context, run *domain.ExtractionRun, data []byte) {
	if s.storage == nil || s.s3Cfg.Bucket == "" {
		return
	}
	key := fmt.Sprintf("runs/%s/%s", run.ID, run.DocumentName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: run.ContentType,
	})
	if err != nil {
		log.Printf("extractionService: archiving document for run %s: %v", run.ID, err)
		return
	}
	run.S3Bucket = s.s3Cfg.Bucket
	run.S3Key = key
}

// completeRun stamps the run and persists the final status. Persistence
// failures are logged rather than surfaced; the extraction result itself is
// already decided.
func (s *extractionService) completeRun(ctx context.Context, run *domain.ExtractionRun, status domain.RunStatus, errMsg string) {
	now := time.Now().UTC()
	run.Status = status
	run.ErrorMessage = errMsg
	run.CompletedAt = &now
	if err := s.runRepo.UpdateRun(ctx, run); err != nil {
		log.Printf("extractionService: persisting run %s: %v", run.ID, err)
	}
}
