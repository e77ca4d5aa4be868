// Package pipeline последовательно прогоняет сырые записи контактов через
// нормализацию, валидацию и дедупликацию и возвращает один сводный отчет.
// Пайплайн не выполняет I/O и ничего не сохраняет: это чистое
// преобразование сырых записей (плюс опциональных существующих) в отчет.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"importserver/normalization"
	"importserver/quality"
)

// ImportPipeline оркестратор normalize -> validate -> dedup
type ImportPipeline struct {
	config     *ImportPipelineConfig
	normalizer *normalization.RecordNormalizer
	validator  *quality.RecordValidator
	matcher    *normalization.RecordMatcher
}

// NewImportPipeline создает пайплайн импорта
func NewImportPipeline(config *ImportPipelineConfig) (*ImportPipeline, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &ImportPipeline{
		config:     config,
		normalizer: normalization.NewRecordNormalizer(),
		validator:  quality.NewRecordValidator(),
		matcher:    normalization.NewRecordMatcher(),
	}, nil
}

// Process прогоняет батч через все стадии.
// existing — ранее сохраненные канонические записи для межбатчевой
// дедупликации; не мутируются. Частичного выполнения нет: превышение
// лимита батча или отмена контекста прерывают весь вызов.
func (p *ImportPipeline) Process(ctx context.Context, raw []normalization.RawRecord, existing []normalization.CanonicalRecord) (*PipelineResult, error) {
	if p.config.MaxBatchSize > 0 && len(raw) > p.config.MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds the configured limit %d", len(raw), p.config.MaxBatchSize)
	}

	// 1. Нормализация: по записи на вход, порядок сохраняется
	cleaned := p.normalizeStage(raw)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Валидация и разбиение на valid / invalid / warnings
	validated := p.validator.ValidateBatch(cleaned)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Дедупликация пригодных записей против existing и внутри батча
	deduped, err := p.dedupStage(ctx, validated.Valid, existing)
	if err != nil {
		return nil, err
	}

	// 4. Сводка
	return &PipelineResult{
		Cleaned:    cleaned,
		Valid:      validated.Valid,
		Invalid:    validated.Invalid,
		Warnings:   validated.Warnings,
		Duplicates: deduped.Duplicates,
		Unique:     deduped.Unique,
		Stats: PipelineStats{
			TotalInput:     len(raw),
			Cleaned:        len(cleaned),
			Valid:          len(validated.Valid),
			Invalid:        len(validated.Invalid),
			Duplicates:     len(deduped.Duplicates),
			ReadyForImport: len(deduped.Unique),
		},
	}, nil
}

// normalizeStage нормализует батч, для больших батчей параллельно.
// Записи независимы, поэтому фан-аут безопасен; результат кладется
// по индексу и порядок подачи сохраняется.
func (p *ImportPipeline) normalizeStage(raw []normalization.RawRecord) []normalization.CanonicalRecord {
	if p.config.Workers <= 1 || len(raw) < parallelThreshold {
		return p.normalizer.NormalizeBatch(raw)
	}

	cleaned := make([]normalization.CanonicalRecord, len(raw))
	indexes := make(chan int, len(raw))
	for i := range raw {
		indexes <- i
	}
	close(indexes)

	var wg sync.WaitGroup
	for w := 0; w < p.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				cleaned[i] = p.normalizer.Normalize(raw[i])
			}
		}()
	}
	wg.Wait()

	return cleaned
}

// dedupStage запускает однопоточную жадную дедупликацию. Стадия
// принципиально последовательна: от того, какие более ранние записи уже
// поглощены, зависят последующие решения, поэтому здесь нет воркеров,
// только кооперативная отмена по записям батча внутри матчера.
func (p *ImportPipeline) dedupStage(ctx context.Context, valid, existing []normalization.CanonicalRecord) (normalization.DedupResult, error) {
	return p.matcher.FindDuplicatesContext(ctx, valid, existing)
}

// Config возвращает конфигурацию пайплайна
func (p *ImportPipeline) Config() *ImportPipelineConfig {
	return p.config
}
