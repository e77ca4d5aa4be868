package normalization

import (
	"reflect"
	"testing"
)

// Тесты для нормализации имен
func TestRecordNormalizer_Names(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"  John   Doe  ", "John Doe"},
		{"O'Brien & Sons, Inc.", "O'Brien Sons Inc."},
		{"Jean-Luc", "Jean-Luc"},
		{"Dr. Smith Jr.", "Dr. Smith Jr."},
		{"Acme (East) #42", "Acme East 42"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldContactName: tt.input})
		if rec.ContactName != tt.expected {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.input, rec.ContactName, tt.expected)
		}
	}
}

func TestRecordNormalizer_Email(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"  John@Example.COM ", "john@example.com"},
		{"not-an-email", "not-an-email"}, // структура проверяется валидатором
		{"", ""},
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldEmail: tt.input})
		if rec.Email != tt.expected {
			t.Errorf("normalizeEmail(%q) = %q, want %q", tt.input, rec.Email, tt.expected)
		}
	}
}

func TestRecordNormalizer_Phone(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123 4567", "(555) 123-4567"},
		{"1-555-123-4567", "+1 (555) 123-4567"},
		{"+1 555 123 4567", "+1 (555) 123-4567"},
		{"25551234567", "25551234567"}, // 11 цифр без ведущей 1
		{"12345", "12345"},
		{"ext. only", ""},
		{"", ""},
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldPhone: tt.input})
		if rec.Phone != tt.expected {
			t.Errorf("normalizePhone(%q) = %q, want %q", tt.input, rec.Phone, tt.expected)
		}
	}
}

func TestRecordNormalizer_City(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"san  francisco", "San Francisco"},
		{"new york", "New York"},
		{"McAllen", "McAllen"}, // только первая буква, остальное не трогаем
		{"", ""},
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldCity: tt.input})
		if rec.City != tt.expected {
			t.Errorf("normalizeCity(%q) = %q, want %q", tt.input, rec.City, tt.expected)
		}
	}
}

func TestRecordNormalizer_State(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"California", "CA"},
		{"NEW YORK", "NY"},
		{"tx", "TX"},
		{"Ontario", "ONTARIO"}, // вне таблицы: upper-case passthrough
		{"", ""},
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldState: tt.input})
		if rec.State != tt.expected {
			t.Errorf("normalizeState(%q) = %q, want %q", tt.input, rec.State, tt.expected)
		}
	}
}

func TestRecordNormalizer_ZipCode(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"94105", "94105"},
		{"94105-1234", "94105-1234"},
		{"941051234", "94105-1234"},
		{"9410", "9410"},
		{"zip 94105", "94105"},
		{"", ""},
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldZipCode: tt.input})
		if rec.ZipCode != tt.expected {
			t.Errorf("normalizeZipCode(%q) = %q, want %q", tt.input, rec.ZipCode, tt.expected)
		}
	}
}

func TestRecordNormalizer_Country(t *testing.T) {
	rn := NewRecordNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"United States", "US"},
		{"usa", "US"},
		{"america", "US"},
		{"Canada", "CA"},
		{"Mexico", "MX"},
		{"United Kingdom", "GB"},
		{"uk", "GB"},
		{"DE", "DE"}, // неизвестный код проходит как есть
		{"", "US"},   // значение по умолчанию
	}

	for _, tt := range tests {
		rec := rn.Normalize(RawRecord{FieldCountry: tt.input})
		if rec.Country != tt.expected {
			t.Errorf("normalizeCountry(%q) = %q, want %q", tt.input, rec.Country, tt.expected)
		}
	}
}

func TestRecordNormalizer_TaxIDAndNotes(t *testing.T) {
	rn := NewRecordNormalizer()

	rec := rn.Normalize(RawRecord{
		FieldTaxID: "12-3456789",
		FieldNotes: "  keep CASE and  spacing inside  ",
	})

	if rec.TaxID != "123456789" {
		t.Errorf("normalizeTaxID = %q, want %q", rec.TaxID, "123456789")
	}
	if rec.Notes != "keep CASE and  spacing inside" {
		t.Errorf("notes = %q, want trimmed original", rec.Notes)
	}
}

func TestRecordNormalizer_LooseTypes(t *testing.T) {
	rn := NewRecordNormalizer()

	// JSON-числа и null должны переживать нормализацию
	rec := rn.Normalize(RawRecord{
		FieldZipCode:     float64(94105),
		FieldContactName: nil,
		"unknownField":   "ignored",
	})

	if rec.ZipCode != "94105" {
		t.Errorf("zip from float64 = %q, want %q", rec.ZipCode, "94105")
	}
	if rec.ContactName != "" {
		t.Errorf("nil field should normalize to empty, got %q", rec.ContactName)
	}
}

// Идемпотентность: normalize(materialize(normalize(r))) == normalize(r)
func TestRecordNormalizer_Idempotent(t *testing.T) {
	rn := NewRecordNormalizer()

	raws := []RawRecord{
		{
			FieldContactName:  "  John   Doe!! ",
			FieldCompanyName:  "Acme, Inc.",
			FieldEmail:        "JOHN@A.COM",
			FieldPhone:        "555-123-4567",
			FieldAddressLine1: "  123   Main St ",
			FieldCity:         "san francisco",
			FieldState:        "California",
			FieldZipCode:      "941051234",
			FieldCountry:      "United States",
			FieldTaxID:        "12-3456789",
			FieldNotes:        " note ",
		},
		{},
		{FieldPhone: "12345", FieldState: "Ontario"},
	}

	for i, raw := range raws {
		once := rn.Normalize(raw)
		twice := rn.Normalize(once.ToRaw())
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("record %d: normalization is not idempotent:\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}
