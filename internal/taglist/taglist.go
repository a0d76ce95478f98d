// Package taglist хранит дедуплицированный список имён элементов.
package taglist

import (
	"sort"

	"html-tag-names/internal/normalize"
)

// TagList упорядоченный список уникальных имён. Порядок вставки сохраняется
// до вызова Sorted. Не потокобезопасен: слияние выполняет один владелец.
type TagList struct {
	names []string
	seen  map[string]struct{}
}

// New создаёт список из ранее сохранённых имён. Повторы в seed отбрасываются,
// остальные записи сохраняются как есть, чтобы повторный запуск не сокращал список.
func New(seed []string) *TagList {
	l := &TagList{
		names: make([]string, 0, len(seed)),
		seen:  make(map[string]struct{}, len(seed)),
	}
	for _, name := range seed {
		l.add(name)
	}
	return l
}

// Contains проверяет наличие имени
func (l *TagList) Contains(name string) bool {
	_, ok := l.seen[name]
	return ok
}

// Add добавляет допустимое имя, если его ещё нет. Первая запись выигрывает.
func (l *TagList) Add(name string) bool {
	if !normalize.IsTagName(name) {
		return false
	}
	return l.add(name)
}

// Merge добавляет имена в порядке следования и возвращает число новых
func (l *TagList) Merge(names []string) int {
	added := 0
	for _, name := range names {
		if l.Add(name) {
			added++
		}
	}
	return added
}

func (l *TagList) add(name string) bool {
	if _, ok := l.seen[name]; ok {
		return false
	}
	l.seen[name] = struct{}{}
	l.names = append(l.names, name)
	return true
}

func (l *TagList) Len() int {
	return len(l.names)
}

// Names возвращает копию в порядке вставки
func (l *TagList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Sorted возвращает копию, отсортированную лексикографически по байтам
func (l *TagList) Sorted() []string {
	out := l.Names()
	sort.Strings(out)
	return out
}
