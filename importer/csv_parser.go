package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"importserver/normalization"
)

// ParseContactsCSV читает CSV с заголовочной строкой и возвращает сырые
// записи контактов. Заголовки приводятся к каноническим полям по таблице
// алиасов; нераспознанные колонки и полностью пустые строки пропускаются.
func ParseContactsCSV(r io.Reader) ([]normalization.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // строки с недостающими колонками допустимы
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	// Отображение индекса колонки в каноническое поле
	fieldByColumn := make(map[int]string, len(header))
	for i, column := range header {
		if field := canonicalFieldFor(column); field != "" {
			fieldByColumn[i] = field
		}
	}
	if len(fieldByColumn) == 0 {
		return nil, fmt.Errorf("no recognizable contact columns in header: %v", header)
	}

	records := []normalization.RawRecord{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", line, err)
		}

		raw := normalization.RawRecord{}
		empty := true
		for i, value := range row {
			field, mapped := fieldByColumn[i]
			if !mapped {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			raw[field] = value
			empty = false
		}

		if !empty {
			records = append(records, raw)
		}
	}

	return records, nil
}
