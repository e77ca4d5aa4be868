package normalization

import (
	"fmt"
	"strings"
	"unicode"
)

// RecordNormalizer приводит сырые записи контактов к канонической форме.
// Нормализация тотальна и детерминирована: никогда не возвращает ошибку,
// отсутствующее или пустое значение поля дает пустое каноническое значение
// (кроме страны, у которой есть значение по умолчанию). Идемпотентна:
// повторная нормализация канонической записи ничего не меняет.
type RecordNormalizer struct {
}

// NewRecordNormalizer создает новый нормализатор записей
func NewRecordNormalizer() *RecordNormalizer {
	return &RecordNormalizer{}
}

// Normalize нормализует одну сырую запись, поле за полем
func (rn *RecordNormalizer) Normalize(raw RawRecord) CanonicalRecord {
	return CanonicalRecord{
		ContactName:  rn.normalizeName(raw.StringField(FieldContactName)),
		CompanyName:  rn.normalizeName(raw.StringField(FieldCompanyName)),
		Email:        rn.normalizeEmail(raw.StringField(FieldEmail)),
		Phone:        rn.normalizePhone(raw.StringField(FieldPhone)),
		AddressLine1: collapseWhitespace(raw.StringField(FieldAddressLine1)),
		AddressLine2: collapseWhitespace(raw.StringField(FieldAddressLine2)),
		City:         rn.normalizeCity(raw.StringField(FieldCity)),
		State:        rn.normalizeState(raw.StringField(FieldState)),
		ZipCode:      rn.normalizeZipCode(raw.StringField(FieldZipCode)),
		Country:      rn.normalizeCountry(raw.StringField(FieldCountry)),
		TaxID:        rn.normalizeTaxID(raw.StringField(FieldTaxID)),
		Notes:        strings.TrimSpace(raw.StringField(FieldNotes)),
	}
}

// NormalizeBatch нормализует батч записей, сохраняя порядок
func (rn *RecordNormalizer) NormalizeBatch(raws []RawRecord) []CanonicalRecord {
	cleaned := make([]CanonicalRecord, len(raws))
	for i, raw := range raws {
		cleaned[i] = rn.Normalize(raw)
	}
	return cleaned
}

// normalizeName очищает имя контакта или название компании: убирает все
// символы кроме букв, цифр, пробелов, дефисов, апострофов и точек, затем
// схлопывает пробелы. Схлопывание идет после чистки, иначе удаленный
// символ между двумя пробелами оставил бы двойной пробел и нормализация
// перестала бы быть идемпотентной.
func (rn *RecordNormalizer) normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			r == '-' || r == '\'' || r == '.' {
			b.WriteRune(r)
		}
	}

	return collapseWhitespace(b.String())
}

// normalizeEmail приводит email к нижнему регистру.
// Структурная проверка формата — задача валидатора, не нормализатора.
func (rn *RecordNormalizer) normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePhone оставляет только цифры и форматирует телефонные номера
// США: 10 цифр как (DDD) DDD-DDDD, 11 цифр с ведущей единицей как
// +1 (DDD) DDD-DDDD. Остальное проходит цифровой строкой без формата.
func (rn *RecordNormalizer) normalizePhone(phone string) string {
	digits := digitsOf(phone)

	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:11])
	default:
		return digits
	}
}

// normalizeCity схлопывает пробелы и пишет каждое слово с заглавной буквы.
// Остальные буквы слова не трогаем: McAllen остается McAllen.
func (rn *RecordNormalizer) normalizeCity(city string) string {
	city = collapseWhitespace(city)
	if city == "" {
		return ""
	}

	words := strings.Split(city, " ")
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}

	return strings.Join(words, " ")
}

// normalizeState переводит полные названия штатов США в двухбуквенные коды.
// Значения вне таблицы проходят в верхнем регистре без изменений
// (уже сокращенные коды и иностранные регионы).
func (rn *RecordNormalizer) normalizeState(state string) string {
	state = strings.ToUpper(strings.TrimSpace(state))
	if state == "" {
		return ""
	}

	if code, exists := stateNameToCode[state]; exists {
		return code
	}
	return state
}

// normalizeZipCode оставляет только цифры: 5 цифр как есть, 9 цифр как
// DDDDD-DDDD, остальное цифровой строкой без формата.
func (rn *RecordNormalizer) normalizeZipCode(zip string) string {
	digits := digitsOf(zip)

	switch len(digits) {
	case 5:
		return digits
	case 9:
		return digits[0:5] + "-" + digits[5:9]
	default:
		return digits
	}
}

// normalizeCountry переводит распространенные названия стран в ISO-коды
// по таблице алиасов; пустое значение дает страну по умолчанию.
func (rn *RecordNormalizer) normalizeCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return DefaultCountryCode
	}

	if code, exists := countryAliases[country]; exists {
		return code
	}
	return country
}

// normalizeTaxID убирает все символы кроме букв и цифр
func (rn *RecordNormalizer) normalizeTaxID(taxID string) string {
	var b strings.Builder
	b.Grow(len(taxID))
	for _, r := range taxID {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseWhitespace обрезает строку и схлопывает внутренние серии
// пробельных символов в один пробел
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// digitsOf возвращает только цифры ASCII из строки
func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
