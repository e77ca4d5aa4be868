package normalization

import (
	"fmt"
	"strings"
)

// RawRecord сырая запись контакта от адаптера импорта (CSV, Excel, JSON API
// платежных/бухгалтерских интеграций). Ключи не упорядочены, любое поле
// может отсутствовать или быть null; неизвестные ключи игнорируются.
type RawRecord map[string]interface{}

// Имена полей RawRecord, которые понимает нормализатор.
const (
	FieldContactName  = "contactName"
	FieldCompanyName  = "companyName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldAddressLine1 = "addressLine1"
	FieldAddressLine2 = "addressLine2"
	FieldCity         = "city"
	FieldState        = "state"
	FieldZipCode      = "zipCode"
	FieldCountry      = "country"
	FieldTaxID        = "taxId"
	FieldNotes        = "notes"
)

// CanonicalRecord нормализованная типизированная запись контакта.
// Пустая строка означает отсутствие значения; Country заполнено всегда
// (по умолчанию DefaultCountryCode). После создания запись не мутируется.
type CanonicalRecord struct {
	ContactName  string `json:"contact_name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
	Country      string `json:"country"`
	TaxID        string `json:"tax_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// StringField извлекает строковое значение поля из сырой записи.
// nil и отсутствующие поля дают пустую строку; числа (zip из Excel/JSON
// часто приходит числом) приводятся через fmt.
func (r RawRecord) StringField(key string) string {
	value, exists := r[key]
	if !exists || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON числа приходят как float64; целые печатаем без мантиссы
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// ToRaw превращает каноническую запись обратно в сырую.
// Используется в тестах идемпотентности normalize(materialize(normalize(r))).
func (c CanonicalRecord) ToRaw() RawRecord {
	raw := RawRecord{}
	set := func(key, value string) {
		if value != "" {
			raw[key] = value
		}
	}
	set(FieldContactName, c.ContactName)
	set(FieldCompanyName, c.CompanyName)
	set(FieldEmail, c.Email)
	set(FieldPhone, c.Phone)
	set(FieldAddressLine1, c.AddressLine1)
	set(FieldAddressLine2, c.AddressLine2)
	set(FieldCity, c.City)
	set(FieldState, c.State)
	set(FieldZipCode, c.ZipCode)
	set(FieldCountry, c.Country)
	set(FieldTaxID, c.TaxID)
	set(FieldNotes, c.Notes)
	return raw
}
