package reservation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/bookingfile"
	"github.com/m04kA/SMC-BarberService/internal/service/queue"
	"github.com/m04kA/SMC-BarberService/pkg/keylock"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

func sp(s string) *string { return &s }

func newFileService(t *testing.T) (*Service, *bookingfile.Repository) {
	t.Helper()
	repo := bookingfile.NewRepository(filepath.Join(t.TempDir(), "bookings.json"))
	assigner := queue.NewAssigner(repo, nil, logger.Nop())
	return NewService(repo, assigner, keylock.New(), txmanager.NewNoop(), logger.Nop()), repo
}

func TestService_Reserve_Sequential(t *testing.T) {
	svc, _ := newFileService(t)
	ctx := context.Background()

	first, err := svc.Reserve(ctx, &domain.Booking{Phone: "1", Date: sp("2026-01-10"), Barber: sp("John")})
	require.NoError(t, err)
	assert.Equal(t, "001", first.QueueNumber)
	assert.NotEmpty(t, first.Booking.ID)

	second, err := svc.Reserve(ctx, &domain.Booking{Phone: "2", Date: sp("2026-01-10"), Barber: sp(" john ")})
	require.NoError(t, err)
	assert.Equal(t, "002", second.QueueNumber)

	other, err := svc.Reserve(ctx, &domain.Booking{Phone: "3", Date: sp("2026-01-10"), Barber: sp("Sam")})
	require.NoError(t, err)
	assert.Equal(t, "001", other.QueueNumber)
}

func TestService_Reserve_ConcurrentUnique(t *testing.T) {
	svc, repo := newFileService(t)
	ctx := context.Background()
	const n = 25

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Reserve(ctx, &domain.Booking{
				Phone:  fmt.Sprintf("2768277%04d", i),
				Date:   sp("2026-01-10"),
				Barber: sp("John"),
			})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			numbers = append(numbers, res.QueueNumber)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, numbers, n)
	sort.Strings(numbers)
	for i, num := range numbers {
		assert.Equal(t, domain.FormatQueueNumber(int64(i+1)), num)
	}

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, n)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string) (func(), error) {
	return nil, errors.New("redis down")
}

type failingSaver struct{}

func (failingSaver) Save(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return nil, errors.New("disk full")
}

type fixedAssigner string

func (f fixedAssigner) NextQueueNumber(ctx context.Context, date, barber string) (string, error) {
	return string(f), nil
}

func (f fixedAssigner) FallbackQueueNumber(date, barber string, cause error) string {
	return "999"
}

type failingLoader struct {
	calls int
}

func (l *failingLoader) Load(ctx context.Context) ([]*domain.Booking, error) {
	l.calls++
	return nil, errors.New("read bookings: permission denied")
}

// countingTx считает запуски транзакций
type countingTx struct {
	runs int
}

func (c *countingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	c.runs++
	return fn(ctx)
}

func TestService_Reserve_LoadFailureUsesFallback(t *testing.T) {
	repo := bookingfile.NewRepository(filepath.Join(t.TempDir(), "bookings.json"))
	loader := &failingLoader{}
	tx := &countingTx{}
	svc := NewService(repo, queue.NewAssigner(loader, nil, logger.Nop()), keylock.New(), tx, logger.Nop())

	res, err := svc.Reserve(context.Background(), &domain.Booking{Phone: "1", Date: sp("2026-01-10"), Barber: sp("John")})
	require.NoError(t, err)

	assert.Len(t, res.QueueNumber, 3)
	assert.NotEmpty(t, res.Booking.ID)
	assert.Equal(t, 1, loader.calls)
	// первая транзакция прервана ошибкой чтения, запись идёт во второй
	assert.Equal(t, 2, tx.runs)

	saved, err := repo.GetByID(context.Background(), res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", saved.Phone)
}

func TestService_Reserve_Errors(t *testing.T) {
	b := &domain.Booking{Phone: "1", Date: sp("2026-01-10")}

	t.Run("lock", func(t *testing.T) {
		svc := NewService(failingSaver{}, fixedAssigner("001"), failingLocker{}, txmanager.NewNoop(), logger.Nop())
		_, err := svc.Reserve(context.Background(), b)
		assert.ErrorIs(t, err, ErrLock)
	})

	t.Run("save", func(t *testing.T) {
		svc := NewService(failingSaver{}, fixedAssigner("001"), keylock.New(), txmanager.NewNoop(), logger.Nop())
		_, err := svc.Reserve(context.Background(), b)
		assert.ErrorIs(t, err, ErrSave)
	})
}
