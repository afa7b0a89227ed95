package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/psqlbuilder"
)

var tableColumns = []string{
	"id",
	"name",
	"capacity",
	"location",
	"description",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий столов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активные столы, отсортированные по имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("tables").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan table: %v", ErrScanRow, err)
		}
		tables = append(tables, table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// GetByID получает стол по ID (включая неактивные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	table, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan table: %v", ErrScanRow, err)
	}

	return table, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTable(row rowScanner) (*domain.Table, error) {
	var (
		table                domain.Table
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&table.ID,
		&table.Name,
		&table.Capacity,
		&table.Location,
		&table.Description,
		&table.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	table.CreatedAt = createdAt.Time
	table.UpdatedAt = updatedAt.Time

	return &table, nil
}
