package bookings

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/bookingfile"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

func sp(s string) *string { return &s }

func newService(t *testing.T) (*Service, *bookingfile.Repository) {
	t.Helper()
	repo := bookingfile.NewRepository(filepath.Join(t.TempDir(), "bookings.json"))
	return NewService(repo, txmanager.NewNoop(), logger.Nop()), repo
}

func seed(t *testing.T, repo *bookingfile.Repository, b *domain.Booking) *domain.Booking {
	t.Helper()
	saved, err := repo.Save(context.Background(), b)
	require.NoError(t, err)
	return saved
}

func TestService_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      domain.BookingStatus
		wantErr error
	}{
		{name: "confirm pending", from: domain.StatusPending, to: domain.StatusConfirmed},
		{name: "cancel pending", from: domain.StatusPending, to: domain.StatusCancelled},
		{name: "complete confirmed", from: domain.StatusConfirmed, to: domain.StatusCompleted},
		{name: "cancel confirmed", from: domain.StatusConfirmed, to: domain.StatusCancelled, wantErr: ErrInvalidTransition},
		{name: "reopen cancelled", from: domain.StatusCancelled, to: domain.StatusPending, wantErr: ErrInvalidTransition},
		{name: "complete pending", from: domain.StatusPending, to: domain.StatusCompleted, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			b := seed(t, repo, &domain.Booking{Phone: "27682770367", Status: tt.from})

			got, err := svc.Transition(context.Background(), b.ID, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				stored, getErr := repo.GetByID(context.Background(), b.ID)
				require.NoError(t, getErr)
				assert.Equal(t, tt.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
		})
	}
}

// barrierRepo отдаёт результат GetByID только после того, как его прочитали все участники
type barrierRepo struct {
	*bookingfile.Repository
	readers *sync.WaitGroup
}

func (r *barrierRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := r.Repository.GetByID(ctx, id)
	r.readers.Done()
	r.readers.Wait()
	return b, err
}

func TestService_Transition_ConcurrentFromSameStatus(t *testing.T) {
	file := bookingfile.NewRepository(filepath.Join(t.TempDir(), "bookings.json"))
	b := seed(t, file, &domain.Booking{Phone: "27682770367", Status: domain.StatusPending})

	readers := &sync.WaitGroup{}
	readers.Add(2)
	svc := NewService(&barrierRepo{Repository: file, readers: readers}, txmanager.NewNoop(), logger.Nop())

	targets := []domain.BookingStatus{domain.StatusCancelled, domain.StatusConfirmed}
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, next := range targets {
		wg.Add(1)
		go func(i int, next domain.BookingStatus) {
			defer wg.Done()
			_, errs[i] = svc.Transition(context.Background(), b.ID, next)
		}(i, next)
	}
	wg.Wait()

	var winner domain.BookingStatus
	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			winner = targets[i]
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
	require.Equal(t, 1, succeeded)

	stored, err := file.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, winner, stored.Status)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, repo := newService(t)
	b := seed(t, repo, &domain.Booking{Phone: "27682770367"})

	_, err := svc.UpdateStatus(context.Background(), b.ID, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	resp, err := svc.UpdateStatus(context.Background(), b.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, b.Ref(), resp.Ref)
}

func TestService_List(t *testing.T) {
	svc, repo := newService(t)
	seed(t, repo, &domain.Booking{Phone: "1", Date: sp("2026-01-10"), Barber: sp("John")})
	seed(t, repo, &domain.Booking{Phone: "2", Date: sp("2026-01-10"), Barber: sp("Sam")})
	seed(t, repo, &domain.Booking{Phone: "3", Date: sp("2026-01-10"), Barber: sp("John"), Status: domain.StatusCancelled})

	active, err := svc.List(context.Background(), &models.ListBookingsRequest{Date: sp("2026-01-10"), Barber: sp("john")})
	require.NoError(t, err)
	assert.Len(t, active.Bookings, 1)

	all, err := svc.List(context.Background(), &models.ListBookingsRequest{Barber: sp("John"), IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: sp("nope")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetCustomerBookings(t *testing.T) {
	svc, repo := newService(t)
	seed(t, repo, &domain.Booking{Phone: "27682770367"})
	seed(t, repo, &domain.Booking{Phone: "27682770367", Status: domain.StatusCancelled})
	seed(t, repo, &domain.Booking{Phone: "27820000000"})

	resp, err := svc.GetCustomerBookings(context.Background(), "068 277 0367", nil)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.GetCustomerBookings(context.Background(), "---", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type brokenRepo struct{ BookingRepository }

func (brokenRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return nil, errors.New("db down")
}

func TestService_GetByID_Internal(t *testing.T) {
	svc := NewService(brokenRepo{}, txmanager.NewNoop(), logger.Nop())

	_, err := svc.GetByID(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrInternal)
}
