// Пакет strcase: нормализация имён полей к snake_case.
package strcase

import (
	"strings"
	"unicode"
)

// ToSnake: приводит строку к snake_case: пробелы и дефисы → '_', граница camelCase → '_',
// всё кроме [a-z0-9_] отбрасывается, повторные '_' схлопываются.
// Аббревиатуры не дробятся: "OrderID" → "order_id".
func ToSnake(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(runes) + 4)

	lastUnderscore := true // не даём начать строку с '_'
	writeSep := func() {
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			writeSep()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					writeSep()
				}
			}
			lr := unicode.ToLower(r)
			if isAllowed(lr) {
				b.WriteRune(lr)
				lastUnderscore = false
			}
		default:
			if isAllowed(r) {
				b.WriteRune(r)
				lastUnderscore = false
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func isAllowed(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
