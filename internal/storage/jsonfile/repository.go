package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"html-tag-names/internal/observability"
	"html-tag-names/internal/storage"
)

// Repository хранит список как JSON-массив строк в одном файле.
// Этот же файл служит исходным списком при следующем запуске.
type Repository struct {
	path   string
	logger *observability.Logger
}

func NewRepository(path string, logger *observability.Logger) *Repository {
	return &Repository{
		path:   path,
		logger: logger,
	}
}

func (r *Repository) Path() string {
	return r.path
}

// Load читает файл; если его нет, возвращает пустой список
func (r *Repository) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("No existing list, starting empty", "path", r.path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.path, err)
	}

	r.logger.Info("Loaded existing list", "path", r.path, "names", len(names))
	return names, nil
}

// Save перезаписывает файл. Предыдущее содержимое не сохраняется.
func (r *Repository) Save(_ context.Context, names []string) error {
	data, err := Encode(names)
	if err != nil {
		return &storage.WriteError{Path: r.path, Err: err}
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return &storage.WriteError{Path: r.path, Err: err}
	}

	r.logger.Info("List written", "path", r.path, "names", len(names), "bytes", len(data))
	return nil
}

// Encode сериализует список: JSON-массив, отступ 2 пробела, перевод строки в конце
func Encode(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(names); err != nil {
		return nil, fmt.Errorf("failed to encode list: %w", err)
	}

	return buf.Bytes(), nil
}
