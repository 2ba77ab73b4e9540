package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"phone",
	"service",
	"name",
	"booking_date",
	"booking_time",
	"barber",
	"barber_id",
	"status",
	"source",
	"raw",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save сохраняет новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// ID генерируется, если не задан; created_at и updated_at выставляет БД.
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == domain.StatusUnknown {
		booking.Status = domain.StatusPending
	}

	var barberID *string
	if booking.BarberID != nil {
		id := string(*booking.BarberID)
		barberID = &id
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"phone",
			"service",
			"name",
			"booking_date",
			"booking_time",
			"barber",
			"barber_id",
			"status",
			"source",
			"raw",
		).
		Values(
			booking.ID,
			booking.Phone,
			booking.Service,
			booking.Name,
			booking.Date,
			booking.Time,
			booking.Barber,
			barberID,
			booking.Status,
			booking.Source,
			booking.Raw,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Load читает все бронирования (полный скан, в порядке создания)
func (r *Repository) Load(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией.
// Сравнение барбера выполняется без учёта регистра и пробелов, как и при подсчёте очереди.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From(tableBookings)

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.Barber != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("LOWER(TRIM(barber)) = ?", domain.NormalizeBarberName(*filter.Barber)))
	}
	if filter.Phone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"phone": *filter.Phone})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// pending, confirmed или без статуса; нераспознанные значения не считаются активными
		active := make([]string, len(domain.QueueStatuses))
		for i, s := range domain.QueueStatuses {
			active[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"status": nil},
			squirrel.Eq{"status": ""},
			squirrel.Eq{"status": active},
		})
	}

	// Для конкретной даты - порядок очереди, иначе сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("created_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус, только если текущий статус равен expected (compare-and-set).
// Ни одной строки: ErrBookingNotFound, если записи нет, иначе ErrStatusConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id string, expected, status domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: id=%s status=%s expected=%s", ErrStatusConflict, id, current.Status, expected)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                        domain.Booking
		service, name, date, tm  sql.NullString
		barber, barberID, status sql.NullString
		createdAt, updatedAt     sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.Phone,
		&service,
		&name,
		&date,
		&tm,
		&barber,
		&barberID,
		&status,
		&b.Source,
		&b.Raw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Service = nullString(service)
	b.Name = nullString(name)
	b.Date = nullString(date)
	b.Time = nullString(tm)
	b.Barber = nullString(barber)
	if barberID.Valid && barberID.String != "" {
		id := domain.BarberID(barberID.String)
		b.BarberID = &id
	}
	b.Status = domain.BookingStatus(status.String)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
