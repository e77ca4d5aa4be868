package normalization

// DefaultCountryCode код страны по умолчанию для записей без страны.
const DefaultCountryCode = "US"

// stateNameToCode таблица полных названий штатов США (в верхнем регистре)
// в двухбуквенные коды. Значения, которых нет в таблице, проходят без
// изменений — это покрывает уже сокращенные и иностранные значения.
var stateNameToCode = map[string]string{
	"ALABAMA":        "AL",
	"ALASKA":         "AK",
	"ARIZONA":        "AZ",
	"ARKANSAS":       "AR",
	"CALIFORNIA":     "CA",
	"COLORADO":       "CO",
	"CONNECTICUT":    "CT",
	"DELAWARE":       "DE",
	"FLORIDA":        "FL",
	"GEORGIA":        "GA",
	"HAWAII":         "HI",
	"IDAHO":          "ID",
	"ILLINOIS":       "IL",
	"INDIANA":        "IN",
	"IOWA":           "IA",
	"KANSAS":         "KS",
	"KENTUCKY":       "KY",
	"LOUISIANA":      "LA",
	"MAINE":          "ME",
	"MARYLAND":       "MD",
	"MASSACHUSETTS":  "MA",
	"MICHIGAN":       "MI",
	"MINNESOTA":      "MN",
	"MISSISSIPPI":    "MS",
	"MISSOURI":       "MO",
	"MONTANA":        "MT",
	"NEBRASKA":       "NE",
	"NEVADA":         "NV",
	"NEW HAMPSHIRE":  "NH",
	"NEW JERSEY":     "NJ",
	"NEW MEXICO":     "NM",
	"NEW YORK":       "NY",
	"NORTH CAROLINA": "NC",
	"NORTH DAKOTA":   "ND",
	"OHIO":           "OH",
	"OKLAHOMA":       "OK",
	"OREGON":         "OR",
	"PENNSYLVANIA":   "PA",
	"RHODE ISLAND":   "RI",
	"SOUTH CAROLINA": "SC",
	"SOUTH DAKOTA":   "SD",
	"TENNESSEE":      "TN",
	"TEXAS":          "TX",
	"UTAH":           "UT",
	"VERMONT":        "VT",
	"VIRGINIA":       "VA",
	"WASHINGTON":     "WA",
	"WEST VIRGINIA":  "WV",
	"WISCONSIN":      "WI",
	"WYOMING":        "WY",
}

// validStateCodes множество допустимых двухбуквенных кодов штатов.
// Строится из stateNameToCode один раз при инициализации пакета.
var validStateCodes = buildValidStateCodes()

func buildValidStateCodes() map[string]bool {
	codes := make(map[string]bool, len(stateNameToCode))
	for _, code := range stateNameToCode {
		codes[code] = true
	}
	return codes
}

// IsValidStateCode проверяет, является ли код допустимым кодом штата США.
func IsValidStateCode(code string) bool {
	return validStateCodes[code]
}

// countryAliases таблица распространенных названий стран в ISO-коды.
// Неизвестные значения проходят без изменений (считаются уже кодами).
var countryAliases = map[string]string{
	"UNITED STATES":  "US",
	"USA":            "US",
	"AMERICA":        "US",
	"CANADA":         "CA",
	"MEXICO":         "MX",
	"UNITED KINGDOM": "GB",
	"UK":             "GB",
}
