package storage

import (
	"context"
	"fmt"
)

// Repository интерфейс хранилища списка имён элементов
type Repository interface {
	// Load возвращает ранее сохранённый список; при отсутствии данных пустой список без ошибки
	Load(ctx context.Context) ([]string, error)

	// Save перезаписывает список целиком в переданном порядке
	Save(ctx context.Context, names []string) error
}

// WriteError ошибка сохранения результата
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
