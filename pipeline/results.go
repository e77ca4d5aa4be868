package pipeline

import (
	"importserver/normalization"
	"importserver/quality"
)

// PipelineStats сводные счетчики одного прогона пайплайна
type PipelineStats struct {
	TotalInput     int `json:"total_input"`
	Cleaned        int `json:"cleaned"`
	Valid          int `json:"valid"`
	Invalid        int `json:"invalid"`
	Duplicates     int `json:"duplicates"`
	ReadyForImport int `json:"ready_for_import"`
}

// PipelineResult итог прогона: все промежуточные наборы сохраняются для
// просмотра и аудита оператором, не только конечный Unique. Результат
// самодостаточен, вне него ничего не мутируется.
type PipelineResult struct {
	Cleaned    []normalization.CanonicalRecord `json:"cleaned"`
	Valid      []normalization.CanonicalRecord `json:"valid"`
	Invalid    []quality.InvalidRecord         `json:"invalid"`
	Warnings   []quality.FlaggedRecord         `json:"warnings"`
	Duplicates []normalization.Match           `json:"duplicates"`
	Unique     []normalization.CanonicalRecord `json:"unique"`
	Stats      PipelineStats                   `json:"stats"`
}
