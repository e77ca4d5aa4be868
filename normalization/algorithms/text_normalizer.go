package algorithms

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeForComparison приводит строку к канонической форме для сравнения:
// Unicode NFC, нижний регистр, схлопывание пробельных серий в один пробел.
// Используется матчером перед вычислением расстояния Левенштейна, чтобы
// различия в регистре и пробелах не считались редактированиями.
func NormalizeForComparison(text string) string {
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	return strings.Join(strings.Fields(text), " ")
}

// DigitsOnly удаляет из строки все символы кроме цифр ASCII.
// Применяется при сравнении телефонов: сравниваются только цифры,
// независимо от того, как номер отформатирован.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
