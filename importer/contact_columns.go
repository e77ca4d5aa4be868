// Package importer разбирает файлы контактов (CSV, Excel) в сырые записи
// для пайплайна импорта. Сюда стекаются выгрузки из CRM, бухгалтерских и
// платежных систем, поэтому заголовки колонок приводятся к каноническим
// именам полей по таблице алиасов; неизвестные колонки игнорируются.
package importer

import "strings"

// columnAliases таблица заголовков колонок (в нижнем регистре) в
// канонические имена полей RawRecord. Несколько сырых заголовков могут
// означать одно и то же поле.
var columnAliases = map[string]string{
	// Имя контакта
	"contactname":  "contactName",
	"contact_name": "contactName",
	"contact name": "contactName",
	"name":         "contactName",
	"full_name":    "contactName",
	"fullname":     "contactName",
	"customer":     "contactName",

	// Компания
	"companyname":  "companyName",
	"company_name": "companyName",
	"company name": "companyName",
	"company":      "companyName",
	"organization": "companyName",
	"business":     "companyName",

	// Email
	"email":         "email",
	"e-mail":        "email",
	"email_address": "email",
	"emailaddress":  "email",
	"mail":          "email",

	// Телефон
	"phone":        "phone",
	"phone_number": "phone",
	"phonenumber":  "phone",
	"telephone":    "phone",
	"tel":          "phone",
	"mobile":       "phone",

	// Адрес
	"addressline1":   "addressLine1",
	"address_line1":  "addressLine1",
	"address line 1": "addressLine1",
	"address1":       "addressLine1",
	"address":        "addressLine1",
	"street":         "addressLine1",
	"addressline2":   "addressLine2",
	"address_line2":  "addressLine2",
	"address line 2": "addressLine2",
	"address2":       "addressLine2",
	"suite":          "addressLine2",

	// Город, штат, индекс, страна
	"city":        "city",
	"town":        "city",
	"state":       "state",
	"province":    "state",
	"region":      "state",
	"zipcode":     "zipCode",
	"zip_code":    "zipCode",
	"zip code":    "zipCode",
	"zip":         "zipCode",
	"postal_code": "zipCode",
	"postalcode":  "zipCode",
	"postal":      "zipCode",
	"country":     "country",

	// Реквизиты и заметки
	"taxid":    "taxId",
	"tax_id":   "taxId",
	"tax id":   "taxId",
	"ein":      "taxId",
	"vat":      "taxId",
	"notes":    "notes",
	"note":     "notes",
	"comment":  "notes",
	"comments": "notes",
}

// canonicalFieldFor возвращает каноническое имя поля для заголовка колонки
// или пустую строку, если колонка не распознана
func canonicalFieldFor(header string) string {
	return columnAliases[strings.ToLower(strings.TrimSpace(header))]
}
