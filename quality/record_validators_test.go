package quality

import (
	"testing"

	"importserver/normalization"
)

func hasIssue(issues []FieldIssue, field, message string) bool {
	for _, issue := range issues {
		if issue.Field == field && issue.Message == message {
			return true
		}
	}
	return false
}

// Отсутствие имени контакта — блокирующая ошибка
func TestRecordValidator_MissingContactName(t *testing.T) {
	rv := NewRecordValidator()

	outcome := rv.ValidateRecord(normalization.CanonicalRecord{
		Email:   "a@b.com",
		Country: "US",
	})

	if outcome.IsValid {
		t.Error("record without contact name must be invalid")
	}
	if !hasIssue(outcome.Errors, "contactName", "Contact name is required") {
		t.Errorf("errors = %v, want contactName error", outcome.Errors)
	}
}

func TestRecordValidator_Email(t *testing.T) {
	rv := NewRecordValidator()

	// Плохая структура — ошибка
	outcome := rv.ValidateRecord(normalization.CanonicalRecord{
		ContactName: "John Doe",
		Email:       "not-an-email",
		Country:     "US",
	})
	if outcome.IsValid {
		t.Error("malformed email must be a blocking error")
	}
	if !hasIssue(outcome.Errors, "email", "Invalid email format") {
		t.Errorf("errors = %v, want email format error", outcome.Errors)
	}

	// Отсутствующий email — только предупреждение
	outcome = rv.ValidateRecord(normalization.CanonicalRecord{
		ContactName: "John Doe",
		Country:     "US",
	})
	if !outcome.IsValid {
		t.Error("missing email must not block the record")
	}
	if !hasIssue(outcome.Warnings, "email", "Email is recommended for customer communication") {
		t.Errorf("warnings = %v, want email recommendation", outcome.Warnings)
	}
}

// Правила независимы: одна запись может собрать несколько замечаний
func TestRecordValidator_IndependentRules(t *testing.T) {
	rv := NewRecordValidator()

	outcome := rv.ValidateRecord(normalization.CanonicalRecord{
		ContactName: "John Doe",
		Email:       "john@a.com",
		Phone:       "12345",
		State:       "XX",
		ZipCode:     "123",
		TaxID:       "1234",
		Country:     "US",
	})

	if !outcome.IsValid {
		t.Errorf("format concerns are advisory, record must stay valid; errors = %v", outcome.Errors)
	}
	if !hasIssue(outcome.Warnings, "phone", "Phone number format may be invalid") {
		t.Errorf("warnings = %v, want phone warning", outcome.Warnings)
	}
	if !hasIssue(outcome.Warnings, "state", "State code may be invalid") {
		t.Errorf("warnings = %v, want state warning", outcome.Warnings)
	}
	if !hasIssue(outcome.Warnings, "zipCode", "Zip code format may be invalid") {
		t.Errorf("warnings = %v, want zip warning", outcome.Warnings)
	}
	if !hasIssue(outcome.Warnings, "taxId", "Tax ID format may be invalid") {
		t.Errorf("warnings = %v, want tax id warning", outcome.Warnings)
	}
}

func TestRecordValidator_ValidFormats(t *testing.T) {
	rv := NewRecordValidator()

	outcome := rv.ValidateRecord(normalization.CanonicalRecord{
		ContactName:  "John Doe",
		Email:        "john@a.com",
		Phone:        "+1 (555) 123-4567",
		AddressLine1: "123 Main St",
		City:         "San Francisco",
		State:        "CA",
		ZipCode:      "94105-1234",
		TaxID:        "123456789",
		Country:      "US",
	})

	if !outcome.IsValid || len(outcome.Warnings) != 0 {
		t.Errorf("clean record produced issues: errors=%v warnings=%v",
			outcome.Errors, outcome.Warnings)
	}
}

// Начатый адрес без города/штата/zip дает по предупреждению на каждое поле
func TestRecordValidator_IncompleteAddress(t *testing.T) {
	rv := NewRecordValidator()

	outcome := rv.ValidateRecord(normalization.CanonicalRecord{
		ContactName:  "John Doe",
		Email:        "john@a.com",
		AddressLine1: "123 Main St",
		Country:      "US",
	})

	if !outcome.IsValid {
		t.Error("incomplete address is advisory only")
	}
	for _, field := range []string{"city", "state", "zipCode"} {
		found := false
		for _, w := range outcome.Warnings {
			if w.Field == field {
				found = true
			}
		}
		if !found {
			t.Errorf("warnings = %v, want a warning for %q", outcome.Warnings, field)
		}
	}
}

// Разбиение батча: valid + invalid покрывают вход, warnings ⊆ valid,
// порядок подачи сохранен
func TestRecordValidator_ValidateBatch(t *testing.T) {
	rv := NewRecordValidator()

	records := []normalization.CanonicalRecord{
		{ContactName: "First Valid", Email: "first@a.com", Country: "US"},
		{Email: "no-name@a.com", Country: "US"},      // ошибка: нет имени
		{ContactName: "With Warning", Country: "US"}, // предупреждение: нет email
		{ContactName: "Second Valid", Email: "x@y.com", Country: "US"},
	}

	result := rv.ValidateBatch(records)

	if len(result.Valid)+len(result.Invalid) != len(records) {
		t.Errorf("valid(%d) + invalid(%d) != total(%d)",
			len(result.Valid), len(result.Invalid), len(records))
	}
	if len(result.Valid) != 3 || len(result.Invalid) != 1 {
		t.Errorf("valid = %d, invalid = %d; want 3 and 1", len(result.Valid), len(result.Invalid))
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Record.ContactName != "With Warning" {
		t.Errorf("warnings view = %+v, want the single flagged valid record", result.Warnings)
	}

	// Стабильный порядок внутри представления
	if result.Valid[0].ContactName != "First Valid" || result.Valid[2].ContactName != "Second Valid" {
		t.Errorf("valid order not preserved: %+v", result.Valid)
	}

	// Каждая запись из warnings присутствует в valid
	for _, flagged := range result.Warnings {
		found := false
		for _, v := range result.Valid {
			if v == flagged.Record {
				found = true
			}
		}
		if !found {
			t.Errorf("warned record %+v missing from valid view", flagged.Record)
		}
	}
}
