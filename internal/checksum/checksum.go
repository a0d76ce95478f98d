package checksum

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateListHash генерирует SHA256 хеш набора имён.
// Формула: SHA256(sorted(names) joined by "\n"), порядок входа не важен.
func (g *Generator) GenerateListHash(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	hash := sha256.Sum256([]byte(strings.Join(sorted, "\n")))

	return fmt.Sprintf("%x", hash)
}

// VerifyListHash проверяет соответствие хеша
func (g *Generator) VerifyListHash(expectedHash string, names []string) bool {
	return g.GenerateListHash(names) == expectedHash
}
