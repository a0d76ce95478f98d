package config

import (
	"fmt"

	"html-tag-names/internal/scraper"
)

// validateRule проверяет минимальный набор полей правила извлечения
func validateRule(r scraper.Rule) error {
	if r.Selector == "" {
		return fmt.Errorf("selector is required")
	}
	if r.TextDepth < 1 {
		return fmt.Errorf("text_depth must be >= 1")
	}
	return nil
}
