package normalize

import (
	"strings"
	"unicode"
)

// TagName проверяет кандидата на имя элемента: непустой и без пробельных символов.
// Значение возвращается как есть, без обрезки.
func TagName(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return "", false
	}
	return raw, true
}

// IsTagName сообщает, является ли строка допустимым именем элемента
func IsTagName(s string) bool {
	_, ok := TagName(s)
	return ok
}

// TagNames фильтрует список, оставляя допустимые имена в исходном порядке
func TagNames(raw []string) []string {
	var out []string
	for _, s := range raw {
		if name, ok := TagName(s); ok {
			out = append(out, name)
		}
	}
	return out
}
