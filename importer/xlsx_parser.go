package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"importserver/normalization"
)

// ParseContactsExcelFile парсит Excel-файл с контактами.
// Берется первый лист; первая строка считается заголовком.
func ParseContactsExcelFile(filePath string) ([]normalization.RawRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return parseContactsExcel(f)
}

// ParseContactsExcel парсит Excel-файл из потока (загрузка по HTTP)
func ParseContactsExcel(r io.Reader) ([]normalization.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel stream: %w", err)
	}
	defer f.Close()

	return parseContactsExcel(f)
}

func parseContactsExcel(f *excelize.File) ([]normalization.RawRecord, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("file is empty, expected a header row")
	}

	// Отображение индекса колонки в каноническое поле
	fieldByColumn := make(map[int]string, len(rows[0]))
	for i, column := range rows[0] {
		if field := canonicalFieldFor(column); field != "" {
			fieldByColumn[i] = field
		}
	}
	if len(fieldByColumn) == 0 {
		return nil, fmt.Errorf("no recognizable contact columns in header: %v", rows[0])
	}

	records := []normalization.RawRecord{}
	for _, row := range rows[1:] {
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
