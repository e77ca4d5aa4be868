package pipeline

import "fmt"

const (
	// DefaultMaxBatchSize предохранитель от квадратичной стоимости
	// дедупликации на неограниченном входе
	DefaultMaxBatchSize = 10000

	// DefaultWorkers количество воркеров нормализации
	DefaultWorkers = 4

	// parallelThreshold минимальный размер батча, при котором есть смысл
	// распараллеливать нормализацию
	parallelThreshold = 256
)

// ImportPipelineConfig конфигурация пайплайна импорта
type ImportPipelineConfig struct {
	// MaxBatchSize максимальный размер входного батча; 0 отключает лимит
	MaxBatchSize int `json:"max_batch_size"`

	// Workers количество воркеров для нормализации.
	// Дедупликация всегда однопоточна: жадная first-match семантика
	// зависит от того, какие более ранние записи уже поглощены.
	Workers int `json:"workers"`
}

// NewDefaultConfig возвращает конфигурацию по умолчанию
func NewDefaultConfig() *ImportPipelineConfig {
	return &ImportPipelineConfig{
		MaxBatchSize: DefaultMaxBatchSize,
		Workers:      DefaultWorkers,
	}
}

// Validate проверяет конфигурацию
func (c *ImportPipelineConfig) Validate() error {
	if c.MaxBatchSize < 0 {
		return fmt.Errorf("max batch size must be >= 0, got %d", c.MaxBatchSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}
