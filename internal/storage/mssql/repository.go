package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"html-tag-names/internal/observability"
	"html-tag-names/internal/storage"
)

const tableName = "TblTagNames"

// Repository зеркалирует список имён в таблицу MS SQL.
// Схема: TblTagNames([Name] NVARCHAR(64) PRIMARY KEY).
type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

func NewRepository(dsn string, commandTimeoutMS int, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Тестируем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: time.Duration(commandTimeoutMS) * time.Millisecond,
		logger:         logger,
	}, nil
}

// Load читает все имена в порядке сортировки
func (r *Repository) Load(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT [Name] FROM `+tableName+` ORDER BY [Name]`)
	if err != nil {
		return nil, fmt.Errorf("failed to query database: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err.Error())
		}
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return names, nil
}

// Save добавляет отсутствующие имена одной транзакцией. Строки не удаляются:
// список только растёт, как и JSON-файл.
func (r *Repository) Save(ctx context.Context, names []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `
		MERGE INTO ` + tableName + ` AS target
		USING (SELECT @Name AS Name) AS source
		ON target.[Name] = source.Name
		WHEN NOT MATCHED THEN
			INSERT ([Name]) VALUES (@Name);
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.writeError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		// после Commit вернёт sql.ErrTxDone, это ожидаемо
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return r.writeError(fmt.Errorf("failed to prepare statement: %w", err))
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	inserted := int64(0)
	for _, name := range names {
		result, err := stmt.ExecContext(ctx, sql.Named("Name", name))
		if err != nil {
			return r.writeError(fmt.Errorf("failed to execute upsert for %q: %w", name, err))
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return r.writeError(fmt.Errorf("failed to get rows affected: %w", err))
		}
		inserted += rowsAffected
	}

	if err := tx.Commit(); err != nil {
		return r.writeError(fmt.Errorf("failed to commit: %w", err))
	}

	r.logger.Info("List mirrored to database", "table", tableName, "names", len(names), "inserted", inserted)
	return nil
}

func (r *Repository) writeError(err error) error {
	return &storage.WriteError{Path: "mssql:" + tableName, Err: err}
}

// Close закрывает соединение с БД
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
