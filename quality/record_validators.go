// Package quality классифицирует канонические записи контактов на
// пригодные и непригодные к импорту. Ошибки блокируют импорт записи,
// предупреждения только помечают её для проверки оператором.
package quality

import (
	"regexp"
	"strings"

	"importserver/normalization"
)

// FieldIssue замечание валидатора по конкретному полю
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationOutcome результат валидации одной записи.
// IsValid == true тогда и только тогда, когда список ошибок пуст.
type ValidationOutcome struct {
	IsValid  bool         `json:"is_valid"`
	Errors   []FieldIssue `json:"errors"`
	Warnings []FieldIssue `json:"warnings"`
}

// InvalidRecord непригодная запись вместе с её ошибками
type InvalidRecord struct {
	Record normalization.CanonicalRecord `json:"record"`
	Errors []FieldIssue                  `json:"errors"`
}

// FlaggedRecord пригодная запись, получившая предупреждения
type FlaggedRecord struct {
	Record   normalization.CanonicalRecord `json:"record"`
	Warnings []FieldIssue                  `json:"warnings"`
}

// BatchValidationResult разбиение батча на три представления.
// Valid и Invalid не пересекаются и вместе покрывают весь батч;
// Warnings — подмножество Valid. Порядок подачи сохраняется.
type BatchValidationResult struct {
	Valid    []normalization.CanonicalRecord `json:"valid"`
	Invalid  []InvalidRecord                 `json:"invalid"`
	Warnings []FlaggedRecord                 `json:"warnings"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// RecordValidator валидатор канонических записей контактов
type RecordValidator struct {
}

// NewRecordValidator создает новый валидатор записей
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// ValidateRecord проверяет одну запись. Правила независимы и применяются
// все, в фиксированном порядке; короткого замыкания между правилами нет.
func (rv *RecordValidator) ValidateRecord(rec normalization.CanonicalRecord) ValidationOutcome {
	outcome := ValidationOutcome{
		Errors:   []FieldIssue{},
		Warnings: []FieldIssue{},
	}

	// 1. Имя контакта обязательно
	if rec.ContactName == "" {
		outcome.Errors = append(outcome.Errors, FieldIssue{
			Field:   "contactName",
			Message: "Contact name is required",
		})
	}

	// 2. Email: проверка структуры, если есть; предупреждение, если нет
	if rec.Email != "" {
		if !emailPattern.MatchString(rec.Email) {
			outcome.Errors = append(outcome.Errors, FieldIssue{
				Field:   "email",
				Message: "Invalid email format",
			})
		}
	} else {
		outcome.Warnings = append(outcome.Warnings, FieldIssue{
			Field:   "email",
			Message: "Email is recommended for customer communication",
		})
	}

	// 3. Телефон: количество цифр вне [10,11] подозрительно
	if rec.Phone != "" {
		digits := countDigits(rec.Phone)
		if digits < 10 || digits > 11 {
			outcome.Warnings = append(outcome.Warnings, FieldIssue{
				Field:   "phone",
				Message: "Phone number format may be invalid",
			})
		}
	}

	// 4. Код штата: только 50 действительных кодов, без учета регистра
	if rec.State != "" && !normalization.IsValidStateCode(strings.ToUpper(rec.State)) {
		outcome.Warnings = append(outcome.Warnings, FieldIssue{
			Field:   "state",
			Message: "State code may be invalid",
		})
	}

	// 5. Zip: 5 цифр или 5-4
	if rec.ZipCode != "" && !zipPattern.MatchString(rec.ZipCode) {
		outcome.Warnings = append(outcome.Warnings, FieldIssue{
			Field:   "zipCode",
			Message: "Zip code format may be invalid",
		})
	}

	// 6. Tax ID: ожидаем 9 цифр (EIN/SSN)
	if rec.TaxID != "" && countDigits(rec.TaxID) != 9 {
		outcome.Warnings = append(outcome.Warnings, FieldIssue{
			Field:   "taxId",
			Message: "Tax ID format may be invalid",
		})
	}

	// 7. Начатый адрес должен быть полным; каждое поле проверяется отдельно
	if rec.AddressLine1 != "" {
		if rec.City == "" {
			outcome.Warnings = append(outcome.Warnings, FieldIssue{
				Field:   "city",
				Message: "City is missing for the provided address",
			})
		}
		if rec.State == "" {
			outcome.Warnings = append(outcome.Warnings, FieldIssue{
				Field:   "state",
				Message: "State is missing for the provided address",
			})
		}
		if rec.ZipCode == "" {
			outcome.Warnings = append(outcome.Warnings, FieldIssue{
				Field:   "zipCode",
				Message: "Zip code is missing for the provided address",
			})
		}
	}

	outcome.IsValid = len(outcome.Errors) == 0
	return outcome
}

// ValidateBatch валидирует батч и разбивает его на представления
// valid / invalid / warnings, сохраняя порядок подачи
func (rv *RecordValidator) ValidateBatch(records []normalization.CanonicalRecord) BatchValidationResult {
	result := BatchValidationResult{
		Valid:    []normalization.CanonicalRecord{},
		Invalid:  []InvalidRecord{},
		Warnings: []FlaggedRecord{},
	}

	for _, rec := range records {
		outcome := rv.ValidateRecord(rec)
		if !outcome.IsValid {
			result.Invalid = append(result.Invalid, InvalidRecord{
				Record: rec,
				Errors: outcome.Errors,
			})
			continue
		}

		result.Valid = append(result.Valid, rec)
		if len(outcome.Warnings) > 0 {
			result.Warnings = append(result.Warnings, FlaggedRecord{
				Record:   rec,
				Warnings: outcome.Warnings,
			})
		}
	}

	return result
}

// countDigits подсчитывает цифры ASCII в строке
func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
