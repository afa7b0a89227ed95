package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	tableRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/events"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/ptr"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

type mockBookingRepository struct {
	created   []*domain.Booking
	createErr error
	getErr    error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.created = append(m.created, booking)
	return int64(len(m.created)), nil
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	stored := *m.created[id-1]
	stored.ID = id
	stored.TableName = ptr.Ptr("Fonsterbord 1")
	stored.UserEmail = ptr.Ptr("anna@example.com")
	return &stored, nil
}

type mockTableRepository struct {
	tables map[int64]*domain.Table
	err    error
}

func (m *mockTableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	table, ok := m.tables[id]
	if !ok {
		return nil, tableRepo.ErrTableNotFound
	}
	return table, nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockCache struct {
	invalidated []time.Time
	err         error
}

func (m *mockCache) Invalidate(ctx context.Context, date time.Time) error {
	m.invalidated = append(m.invalidated, date)
	return m.err
}

type mockPublisher struct {
	published []events.BookingEvent
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.BookingEvent) error {
	m.published = append(m.published, event)
	return m.err
}

type fixture struct {
	bookings  *mockBookingRepository
	tables    *mockTableRepository
	tx        *mockTxManager
	cache     *mockCache
	publisher *mockPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepository{},
		tables: &mockTableRepository{tables: map[int64]*domain.Table{
			1: {ID: 1, Name: "Fonsterbord 1", Capacity: 4, IsActive: true},
			2: {ID: 2, Name: "Terrass", Capacity: 6, IsActive: false},
		}},
		tx:        &mockTxManager{},
		cache:     &mockCache{},
		publisher: &mockPublisher{},
	}
	f.uc = NewUseCase(f.bookings, f.tables, f.tx, f.cache, f.publisher, logger.NewNop())
	return f
}

var (
	customer = domain.Actor{UserID: 7, Role: domain.RoleUser}
	staff    = domain.Actor{UserID: 1, Role: domain.RoleStaff}
)

func validRequest(actor domain.Actor) *Request {
	return &Request{
		Actor:      actor,
		TableID:    1,
		GuestCount: 2,
		Start:      types.MustParseDateTime("2025-10-12T18:00:00"),
		End:        types.MustParseDateTime("2025-10-12T20:00:00"),
		Note:       "  window seat  ",
	}
}

func TestExecute_CustomerCreatesBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest(customer))

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(1), resp.Booking.ID)
	assert.Equal(t, int64(7), resp.Booking.UserID)
	assert.Equal(t, domain.StatusBooked, resp.Booking.Status)
	assert.Equal(t, "window seat", resp.Booking.Note)
	assert.Equal(t, "Fonsterbord 1", *resp.Booking.TableName)
	assert.Equal(t, 1, f.tx.calls)

	require.Len(t, f.cache.invalidated, 1)
	assert.Equal(t, "2025-10-12", f.cache.invalidated[0].Format(domain.DateFormat))

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.published[0].Type)
	assert.Equal(t, int64(1), f.publisher.published[0].BookingID)
	assert.Equal(t, int64(7), f.publisher.published[0].ActorID)
}

func TestExecute_CustomerCannotBookForOthers(t *testing.T) {
	f := newFixture()
	req := validRequest(customer)
	req.UserID = ptr.Ptr(int64(99))
	req.Status = "blocked"

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Booking.UserID)
	assert.Equal(t, domain.StatusBooked, resp.Booking.Status)
}

func TestExecute_StaffSetsUserAndStatus(t *testing.T) {
	f := newFixture()
	req := validRequest(staff)
	req.UserID = ptr.Ptr(int64(99))
	req.Status = "blocked"

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(99), resp.Booking.UserID)
	assert.Equal(t, domain.StatusBlocked, resp.Booking.Status)
	assert.Equal(t, int64(1), f.publisher.published[0].ActorID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "zero table", modify: func(r *Request) { r.TableID = 0 }, wantErr: ErrInvalidInput},
		{name: "no guests", modify: func(r *Request) { r.GuestCount = 0 }, wantErr: ErrInvalidInput},
		{name: "too many guests", modify: func(r *Request) { r.GuestCount = domain.MaxGuestCount + 1 }, wantErr: ErrInvalidInput},
		{name: "long note", modify: func(r *Request) { r.Note = strings.Repeat("x", domain.MaxNoteLength+1) }, wantErr: ErrInvalidInput},
		{name: "unknown status", modify: func(r *Request) { r.Actor = staff; r.Status = "pending" }, wantErr: ErrInvalidInput},
		{name: "anonymous actor", modify: func(r *Request) { r.Actor = domain.Actor{Role: domain.RoleUser} }, wantErr: ErrInvalidInput},
		{name: "missing end", modify: func(r *Request) { r.End = types.DateTime{} }, wantErr: ErrInvalidInput},
		{
			name:    "end before start",
			modify:  func(r *Request) { r.End = types.MustParseDateTime("2025-10-12T17:00:00") },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "empty interval",
			modify:  func(r *Request) { r.End = r.Start },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "crosses midnight",
			modify:  func(r *Request) { r.End = types.MustParseDateTime("2025-10-13T01:00:00") },
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest(customer)
			tt.modify(req)

			resp, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Zero(t, f.tx.calls)
			assert.Empty(t, f.bookings.created)
		})
	}
}

func TestExecute_BoundaryValuesAccepted(t *testing.T) {
	f := newFixture()
	f.tables.tables[1].Capacity = domain.MaxGuestCount
	req := validRequest(customer)
	req.GuestCount = domain.MaxGuestCount
	req.Note = strings.Repeat("x", domain.MaxNoteLength)

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_TableChecks(t *testing.T) {
	tests := []struct {
		name    string
		tableID int64
		guests  int
		wantErr error
	}{
		{name: "missing table", tableID: 42, guests: 2, wantErr: ErrTableNotFound},
		{name: "inactive table", tableID: 2, guests: 2, wantErr: ErrTableNotFound},
		{name: "over capacity", tableID: 1, guests: 5, wantErr: ErrGuestCountExceedsCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest(customer)
			req.TableID = tt.tableID
			req.GuestCount = tt.guests

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.created)
			assert.Empty(t, f.publisher.published)
		})
	}
}

func TestExecute_OverlapsAreNotRejected(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest(customer))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), validRequest(customer))
	require.NoError(t, err)

	assert.Len(t, f.bookings.created, 2)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	t.Run("table lookup", func(t *testing.T) {
		f := newFixture()
		f.tables.err = errors.New("connection reset")

		_, err := f.uc.Execute(context.Background(), validRequest(customer))

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("insert", func(t *testing.T) {
		f := newFixture()
		f.bookings.createErr = errors.New("unique violation")

		_, err := f.uc.Execute(context.Background(), validRequest(customer))

		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("reread", func(t *testing.T) {
		f := newFixture()
		f.bookings.getErr = errors.New("timeout")

		_, err := f.uc.Execute(context.Background(), validRequest(customer))

		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.publisher.published)
	})
}

func TestExecute_SideEffectFailuresAreNotFatal(t *testing.T) {
	f := newFixture()
	f.cache.err = errors.New("redis down")
	f.publisher.err = errors.New("kafka down")

	resp, err := f.uc.Execute(context.Background(), validRequest(customer))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Booking.ID)
}

func TestExecute_WithoutCache(t *testing.T) {
	f := newFixture()
	f.uc.cache = nil

	_, err := f.uc.Execute(context.Background(), validRequest(customer))

	require.NoError(t, err)
}
