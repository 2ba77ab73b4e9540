// Package bookingfile stores bookings in a single JSON file. Used for
// single-instance deployments without PostgreSQL.
package bookingfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// record JSON-представление бронирования. Поле status может отсутствовать в старых файлах.
type record struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Service   *string   `json:"service,omitempty"`
	Name      *string   `json:"name,omitempty"`
	Date      *string   `json:"date,omitempty"`
	Time      *string   `json:"time,omitempty"`
	Barber    *string   `json:"barber,omitempty"`
	BarberID  *string   `json:"barberId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Source    string    `json:"source"`
	Raw       string    `json:"raw"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository файловое хранилище бронирований.
// Каждая операция читает файл целиком, изменения записываются атомарно (temp + rename).
type Repository struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

// NewRepository создает хранилище; файл создаётся при первой записи
func NewRepository(path string) *Repository {
	return &Repository{path: path, now: time.Now}
}

// Save добавляет бронирование
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.read()
	if err != nil {
		return nil, err
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	for _, rec := range records {
		if rec.ID == booking.ID {
			return nil, fmt.Errorf("%w: Save - id=%s", ErrDuplicateID, booking.ID)
		}
	}
	if booking.Status == domain.StatusUnknown {
		booking.Status = domain.StatusPending
	}

	now := r.now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	records = append(records, toRecord(booking))
	if err := r.write(records); err != nil {
		return nil, err
	}

	return booking, nil
}

// Load возвращает все бронирования в порядке создания
func (r *Repository) Load(ctx context.Context) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, err := r.read()
	if err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(records))
	for i := range records {
		bookings = append(bookings, records[i].toDomain())
	}
	return bookings, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	bookings, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

// List получает бронирования по фильтру; для конкретной даты в порядке очереди, иначе сначала новые
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	bookings, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if filter.Matches(b) {
			result = append(result, b)
		}
	}

	if filter.Date == nil {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}
	return result, nil
}

// UpdateStatus обновляет статус и updated_at, если текущий статус равен expected.
// Иначе возвращает ErrStatusConflict, запись не меняется.
func (r *Repository) UpdateStatus(ctx context.Context, id string, expected, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.read()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		if domain.BookingStatus(records[i].Status) != expected {
			return nil, fmt.Errorf("%w: id=%s status=%s expected=%s", ErrStatusConflict, id, records[i].Status, expected)
		}
		records[i].Status = string(status)
		records[i].UpdatedAt = r.now().UTC()
		if err := r.write(records); err != nil {
			return nil, err
		}
		return records[i].toDomain(), nil
	}

	return nil, ErrBookingNotFound
}

func (r *Repository) read() ([]record, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrRead, r.path, err)
	}
	return records, nil
}

func (r *Repository) write(records []record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrWrite, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func toRecord(b *domain.Booking) record {
	rec := record{
		ID:        b.ID,
		Phone:     b.Phone,
		Service:   b.Service,
		Name:      b.Name,
		Date:      b.Date,
		Time:      b.Time,
		Barber:    b.Barber,
		Status:    string(b.Status),
		Source:    b.Source,
		Raw:       b.Raw,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.BarberID != nil {
		id := string(*b.BarberID)
		rec.BarberID = &id
	}
	return rec
}

func (rec record) toDomain() *domain.Booking {
	b := &domain.Booking{
		ID:        rec.ID,
		Phone:     rec.Phone,
		Service:   rec.Service,
		Name:      rec.Name,
		Date:      rec.Date,
		Time:      rec.Time,
		Barber:    rec.Barber,
		Status:    domain.BookingStatus(rec.Status),
		Source:    rec.Source,
		Raw:       rec.Raw,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.BarberID != nil {
		id := domain.BarberID(*rec.BarberID)
		b.BarberID = &id
	}
	return b
}
