package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Колонки бронирования с именем стола и email пользователя.
// Порядок должен совпадать с scanBooking.
var bookingColumns = []string{
	"b.id",
	"b.user_id",
	"b.table_id",
	"b.guest_count",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.note",
	"t.name",
	"u.email",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectBookings базовый запрос с JOIN столов и пользователей
func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings AS b").
		LeftJoin("tables AS t ON t.id = b.table_id").
		LeftJoin("users AS u ON u.id = b.user_id")
}

// buildListQuery строит запрос списка бронирований по фильтру
func buildListQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	selectBuilder := selectBookings()

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.TableID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.table_id": *filter.TableID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where("CAST(b.start_time AS DATE) = ?", filter.Date.Format(domain.DateFormat))
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": string(*filter.Status)})
	}

	return selectBuilder.OrderBy("b.start_time ASC")
}

// ListByDate возвращает все бронирования, начинающиеся в указанный календарный день,
// независимо от статуса. Сортировка по времени начала.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByDate", domain.BookingsFilter{Date: &date})
}

// List возвращает бронирования по фильтру
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return r.list(ctx, "List", filter)
}

func (r *Repository) list(ctx context.Context, op string, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, wrapScanError(op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, wrapScanError("GetByID", err)
	}

	return booking, nil
}

// Create создает бронирование и возвращает его ID.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"table_id",
			"guest_count",
			"start_time",
			"end_time",
			"status",
			"note",
		).
		Values(
			booking.UserID,
			booking.TableID,
			booking.GuestCount,
			booking.Start,
			booking.End,
			string(booking.Status),
			booking.Note,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// buildUpdateQuery строит запрос, перезаписывающий изменяемые поля бронирования
func buildUpdateQuery(booking *domain.Booking) squirrel.UpdateBuilder {
	return psqlbuilder.Update("bookings").
		Set("user_id", booking.UserID).
		Set("table_id", booking.TableID).
		Set("guest_count", booking.GuestCount).
		Set("start_time", booking.Start).
		Set("end_time", booking.End).
		Set("status", string(booking.Status)).
		Set("note", booking.Note).
		Where(squirrel.Eq{"id": booking.ID})
}

// Update сохраняет изменённое бронирование целиком.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpdateQuery(booking).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking декодирует строку в domain.Booking. Время разбирается здесь, один раз.
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		status    string
		tableName sql.NullString
		userEmail sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.TableID,
		&booking.GuestCount,
		&booking.Start,
		&booking.End,
		&status,
		&booking.Note,
		&tableName,
		&userEmail,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	if tableName.Valid {
		booking.TableName = &tableName.String
	}
	if userEmail.Valid {
		booking.UserEmail = &userEmail.String
	}

	return &booking, nil
}

func wrapScanError(op string, err error) error {
	if errors.Is(err, types.ErrInvalidDateTime) {
		return fmt.Errorf("%w: %s - %v", ErrInvalidTimestamp, op, err)
	}
	return fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
}
