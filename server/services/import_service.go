// Package services содержит прикладные сервисы между HTTP-обработчиками
// и пайплайном обработки контактов.
package services

import (
	"context"
	"log/slog"

	"importserver/database"
	"importserver/normalization"
	"importserver/pipeline"
	apperrors "importserver/server/errors"
)

// ContactStore интерфейс хранилища контактов, используемый сервисом импорта.
// Реализуется database.ContactDB, в тестах подменяется моком.
type ContactStore interface {
	SaveContacts(records []normalization.CanonicalRecord) (int, error)
	ListContacts(limit, offset int) ([]normalization.CanonicalRecord, error)
	CountContacts() (int, error)
}

// Compile-time проверка, что ContactDB реализует интерфейс ContactStore
var _ ContactStore = (*database.ContactDB)(nil)

// ImportService прогоняет батчи сырых записей через пайплайн
// и по запросу коммитит уникальные записи в хранилище
type ImportService struct {
	store    ContactStore
	pipeline *pipeline.ImportPipeline
}

// NewImportService создает новый сервис импорта
func NewImportService(store ContactStore, p *pipeline.ImportPipeline) (*ImportService, error) {
	if p == nil {
		var err error
		p, err = pipeline.NewImportPipeline(nil)
		if err != nil {
			return nil, err
		}
	}
	return &ImportService{
		store:    store,
		pipeline: p,
	}, nil
}

// ImportOutcome результат обработки батча
type ImportOutcome struct {
	Result    *pipeline.PipelineResult `json:"result"`
	Committed int                      `json:"committed"`
}

// ProcessBatch обрабатывает батч сырых записей против уже сохраненных
// контактов. При commit=true уникальные записи сохраняются в хранилище.
func (s *ImportService) ProcessBatch(ctx context.Context, raw []normalization.RawRecord, commit bool) (*ImportOutcome, *apperrors.AppError) {
	if len(raw) == 0 {
		return nil, apperrors.NewValidationError("records field is required and must not be empty", nil)
	}
	if max := s.pipeline.Config().MaxBatchSize; max > 0 && len(raw) > max {
		return nil, apperrors.NewPayloadTooLargeError("batch exceeds maximum size", nil).
			WithContext("ImportService.ProcessBatch")
	}

	existing, err := s.store.ListContacts(0, 0)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load existing contacts", err).
			WithContext("ImportService.ProcessBatch")
	}

	result, err := s.pipeline.Process(ctx, raw, existing)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewValidationError("request cancelled", err)
		}
		return nil, apperrors.NewInternalError("pipeline processing failed", err).
			WithContext("ImportService.ProcessBatch")
	}

	outcome := &ImportOutcome{Result: result}

	if commit && len(result.Unique) > 0 {
		inserted, err := s.store.SaveContacts(result.Unique)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to save contacts", err).
				WithContext("ImportService.ProcessBatch")
		}
		outcome.Committed = inserted
	}

	slog.Info("Import batch processed",
		"total_input", result.Stats.TotalInput,
		"valid", result.Stats.Valid,
		"invalid", result.Stats.Invalid,
		"duplicates", result.Stats.Duplicates,
		"ready_for_import", result.Stats.ReadyForImport,
		"committed", outcome.Committed,
	)

	return outcome, nil
}

// ListContacts возвращает сохраненные контакты постранично
func (s *ImportService) ListContacts(limit, offset int) ([]normalization.CanonicalRecord, int, *apperrors.AppError) {
	records, err := s.store.ListContacts(limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list contacts", err).
			WithContext("ImportService.ListContacts")
	}

	total, err := s.store.CountContacts()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count contacts", err).
			WithContext("ImportService.ListContacts")
	}

	return records, total, nil
}
