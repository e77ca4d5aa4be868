package normalization

import (
	"context"

	"importserver/normalization/algorithms"
)

// Match найденная пара дубликатов: Duplicate признана обозначающей ту же
// реальную сущность, что и Original. Original может быть как ранее
// сохраненной записью, так и более ранней записью того же батча.
type Match struct {
	Original    CanonicalRecord `json:"original"`
	Duplicate   CanonicalRecord `json:"duplicate"`
	MatchScore  float64         `json:"match_score"`
	MatchFields []string        `json:"match_fields"`
}

// DedupResult результат дедупликации батча
type DedupResult struct {
	Unique     []CanonicalRecord `json:"unique"`
	Duplicates []Match           `json:"duplicates"`
}

// MatcherConfig веса полей и порог дубликата.
// Значения по умолчанию зафиксированы для поведенческого паритета;
// кандидаты на конфигурацию при расширении системы, но нигде в этом
// репозитории не переопределяются.
type MatcherConfig struct {
	EmailWeight       float64
	PhoneWeight       float64
	ContactNameWeight float64
	CompanyNameWeight float64

	// NameSimilarityFloor минимальная схожесть имени, при которой имя
	// вообще засчитывается как совпавшее поле
	NameSimilarityFloor float64

	// DuplicateThreshold порог итогового score, начиная с которого пара
	// считается дубликатом
	DuplicateThreshold float64
}

// DefaultMatcherConfig возвращает конфигурацию по умолчанию
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		EmailWeight:         0.4,
		PhoneWeight:         0.3,
		ContactNameWeight:   0.2,
		CompanyNameWeight:   0.1,
		NameSimilarityFloor: 0.8,
		DuplicateThreshold:  0.8,
	}
}

// RecordMatcher находит дубликаты контактов по взвешенной схожести полей.
// Score пары считается только по полям, присутствующим у обеих записей,
// и ренормализуется на сумму их весов; записи без единого сравнимого поля
// дубликатами быть не могут (консервативное смещение: не склеиваем без
// доказательств).
type RecordMatcher struct {
	config MatcherConfig
}

// NewRecordMatcher создает матчер с конфигурацией по умолчанию
func NewRecordMatcher() *RecordMatcher {
	return &RecordMatcher{config: DefaultMatcherConfig()}
}

// NewRecordMatcherWithConfig создает матчер с заданной конфигурацией
func NewRecordMatcherWithConfig(config MatcherConfig) *RecordMatcher {
	return &RecordMatcher{config: config}
}

// Compare вычисляет score схожести двух записей и список совпавших полей.
// Возвращает 0 при отсутствии сравнимых полей.
func (rm *RecordMatcher) Compare(a, b CanonicalRecord) (float64, []string) {
	totalScore := 0.0
	maxScore := 0.0
	matchFields := []string{}

	// Email: точное совпадение нормализованных значений
	if a.Email != "" && b.Email != "" {
		maxScore += rm.config.EmailWeight
		if a.Email == b.Email {
			totalScore += rm.config.EmailWeight
			matchFields = append(matchFields, "email")
		}
	}

	// Телефон: сравниваем только цифры, заново снимая форматирование
	if a.Phone != "" && b.Phone != "" {
		maxScore += rm.config.PhoneWeight
		if algorithms.DigitsOnly(a.Phone) == algorithms.DigitsOnly(b.Phone) {
			totalScore += rm.config.PhoneWeight
			matchFields = append(matchFields, "phone")
		}
	}

	// Имя контакта: нечеткое совпадение по Левенштейну
	if a.ContactName != "" && b.ContactName != "" {
		maxScore += rm.config.ContactNameWeight
		sim := rm.nameSimilarity(a.ContactName, b.ContactName)
		if sim > rm.config.NameSimilarityFloor {
			totalScore += rm.config.ContactNameWeight * sim
			matchFields = append(matchFields, "contact_name")
		}
	}

	// Название компании: та же схема с меньшим весом
	if a.CompanyName != "" && b.CompanyName != "" {
		maxScore += rm.config.CompanyNameWeight
		sim := rm.nameSimilarity(a.CompanyName, b.CompanyName)
		if sim > rm.config.NameSimilarityFloor {
			totalScore += rm.config.CompanyNameWeight * sim
			matchFields = append(matchFields, "company_name")
		}
	}

	if maxScore == 0 {
		return 0, matchFields
	}
	return totalScore / maxScore, matchFields
}

// nameSimilarity нормализованная схожесть имен по Левенштейну
func (rm *RecordMatcher) nameSimilarity(n1, n2 string) float64 {
	return algorithms.LevenshteinSimilarity(
		algorithms.NormalizeForComparison(n1),
		algorithms.NormalizeForComparison(n2),
	)
}

// isDuplicate проверяет пару по порогу
func (rm *RecordMatcher) isDuplicate(score float64) bool {
	return score >= rm.config.DuplicateThreshold
}

// FindDuplicates выполняет двухфазную жадную дедупликацию батча.
// Для каждой необработанной записи батча в порядке подачи:
//  1. сравнение с existing в порядке подачи, первый дубликат закрывает запись;
//  2. иначе сравнение с последующими необработанными записями батча,
//     первый дубликат помечает позднюю запись обработанной;
//  3. запись, не поглощенная фазой 1, уходит в Unique.
//
// Жадная first-match стратегия намеренная: паритет важнее глобально
// оптимального паросочетания, поэтому порядок сканирования и ранний
// выход не меняются.
func (rm *RecordMatcher) FindDuplicates(batch, existing []CanonicalRecord) DedupResult {
	result, _ := rm.findDuplicates(context.Background(), batch, existing)
	return result
}

// FindDuplicatesContext вариант FindDuplicates с кооперативной отменой:
// контекст проверяется перед обработкой каждой записи батча. Семантика
// сканирования идентична FindDuplicates.
func (rm *RecordMatcher) FindDuplicatesContext(ctx context.Context, batch, existing []CanonicalRecord) (DedupResult, error) {
	return rm.findDuplicates(ctx, batch, existing)
}

func (rm *RecordMatcher) findDuplicates(ctx context.Context, batch, existing []CanonicalRecord) (DedupResult, error) {
	result := DedupResult{
		Unique:     []CanonicalRecord{},
		Duplicates: []Match{},
	}

	processed := make([]bool, len(batch))

	for i := range batch {
		if err := ctx.Err(); err != nil {
			return DedupResult{}, err
		}
		if processed[i] {
			continue
		}

		// Фаза 1: поиск среди ранее сохраненных записей
		if match, found := rm.matchAgainstExisting(batch[i], existing); found {
			result.Duplicates = append(result.Duplicates, match)
			processed[i] = true
			continue
		}

		// Фаза 2: поиск среди последующих записей батча.
		// Найденный дубликат поглощает позднюю запись; сама текущая
		// запись при этом остается уникальной стороной пары.
		for j := i + 1; j < len(batch); j++ {
			if processed[j] {
				continue
			}
			score, fields := rm.Compare(batch[i], batch[j])
			if rm.isDuplicate(score) {
				result.Duplicates = append(result.Duplicates, Match{
					Original:    batch[i],
					Duplicate:   batch[j],
					MatchScore:  score,
					MatchFields: fields,
				})
				processed[j] = true
				break
			}
		}

		result.Unique = append(result.Unique, batch[i])
	}

	return result, nil
}

// matchAgainstExisting ищет первый дубликат записи среди existing
func (rm *RecordMatcher) matchAgainstExisting(record CanonicalRecord, existing []CanonicalRecord) (Match, bool) {
	for _, ex := range existing {
		score, fields := rm.Compare(record, ex)
		if rm.isDuplicate(score) {
			return Match{
				Original:    ex,
				Duplicate:   record,
				MatchScore:  score,
				MatchFields: fields,
			}, true
		}
	}
	return Match{}, false
}
