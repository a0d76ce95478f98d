package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"html-tag-names/internal/normalize"
)

type Scraper struct {
	rule Rule
}

func NewScraper(rule Rule) *Scraper {
	return &Scraper{
		rule: rule,
	}
}

// ParseNames парсит HTML и применяет правило
func (s *Scraper) ParseNames(htmlText string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return Extract(doc, s.rule), nil
}

// ExtractW3C извлекает имена из таблицы элементов W3C
func ExtractW3C(doc *goquery.Document) *Extraction {
	return Extract(doc, W3CRule)
}

// ExtractWHATWG извлекает имена со страницы индексов WHATWG
func ExtractWHATWG(doc *goquery.Document) *Extraction {
	return Extract(doc, WHATWGRule)
}

// Extract применяет правило к документу. Имена возвращаются в порядке обхода
// документа, без повторов. Пустой результат не считается ошибкой.
func Extract(doc *goquery.Document, rule Rule) *Extraction {
	ext := &Extraction{}
	seen := make(map[string]bool)

	doc.Find(rule.Selector).Each(func(_ int, sel *goquery.Selection) {
		ext.Matched++

		if rule.IDPrefix != "" {
			id, exists := sel.Attr("id")
			if !exists || !strings.HasPrefix(id, rule.IDPrefix) {
				ext.Skipped++
				return
			}
		}

		text, ok := firstText(sel.Get(0), rule.TextDepth)
		if !ok {
			ext.Rejected++
			return
		}

		name, ok := normalize.TagName(text)
		if !ok {
			ext.Rejected++
			return
		}

		if seen[name] {
			return
		}
		seen[name] = true
		ext.Names = append(ext.Names, name)
	})

	return ext
}

// firstText спускается depth раз по первому дочернему узлу и возвращает данные
// текстового листа. ok == false, если цепочка обрывается или лист не текст.
func firstText(n *html.Node, depth int) (string, bool) {
	for i := 0; i < depth; i++ {
		if n == nil {
			return "", false
		}
		n = n.FirstChild
	}
	if n == nil || n.Type != html.TextNode {
		return "", false
	}
	return n.Data, true
}
