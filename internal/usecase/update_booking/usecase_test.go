package update_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/booking"
	tableRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/events"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/ptr"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

type mockBookingRepository struct {
	stored    map[int64]*domain.Booking
	updated   []*domain.Booking
	getErr    error
	updateErr error
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	booking, ok := m.stored[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	copied.TableName = ptr.Ptr("Fonsterbord 1")
	copied.UserEmail = ptr.Ptr("anna@example.com")
	return &copied, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.stored[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.updated = append(m.updated, booking)
	m.stored[booking.ID] = booking
	return nil
}

type mockTableRepository struct {
	tables map[int64]*domain.Table
}

func (m *mockTableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
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
	tx        *mockTxManager
	cache     *mockCache
	publisher *mockPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepository{stored: map[int64]*domain.Booking{
			12: {
				ID:         12,
				UserID:     7,
				TableID:    1,
				GuestCount: 2,
				Start:      types.MustParseDateTime("2025-10-12T18:00:00"),
				End:        types.MustParseDateTime("2025-10-12T20:00:00"),
				Status:     domain.StatusBooked,
				Note:       "window seat",
			},
			13: {
				ID:         13,
				UserID:     1,
				TableID:    1,
				GuestCount: 1,
				Start:      types.MustParseDateTime("2025-10-12T17:00:00"),
				End:        types.MustParseDateTime("2025-10-12T22:00:00"),
				Status:     domain.StatusBlocked,
			},
		}},
		tx:        &mockTxManager{},
		cache:     &mockCache{},
		publisher: &mockPublisher{},
	}
	tables := &mockTableRepository{tables: map[int64]*domain.Table{
		1: {ID: 1, Name: "Fonsterbord 1", Capacity: 4, IsActive: true},
		2: {ID: 2, Name: "Terrass", Capacity: 6, IsActive: false},
		3: {ID: 3, Name: "Barbord", Capacity: 2, IsActive: true},
	}}
	f.uc = NewUseCase(f.bookings, tables, f.tx, f.cache, f.publisher, logger.NewNop())
	return f
}

var (
	owner    = domain.Actor{UserID: 7, Role: domain.RoleUser}
	stranger = domain.Actor{UserID: 8, Role: domain.RoleUser}
	staff    = domain.Actor{UserID: 1, Role: domain.RoleStaff}
)

func TestExecute_PartialPayloadKeepsOtherFields(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: owner, GuestCount: ptr.Ptr(3)})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Booking.GuestCount)
	assert.Equal(t, int64(1), resp.Booking.TableID)
	assert.Equal(t, "2025-10-12T18:00:00", resp.Booking.Start.String())
	assert.Equal(t, "2025-10-12T20:00:00", resp.Booking.End.String())
	assert.Equal(t, domain.StatusBooked, resp.Booking.Status)
	assert.Equal(t, "window seat", resp.Booking.Note)
	assert.Equal(t, "Fonsterbord 1", *resp.Booking.TableName)
	assert.Equal(t, 1, f.tx.calls)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, events.TypeBookingUpdated, f.publisher.published[0].Type)
	assert.Equal(t, int64(12), f.publisher.published[0].BookingID)
	assert.Equal(t, 3, f.publisher.published[0].GuestCount)
}

func TestExecute_StrangerIsDenied(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: stranger, GuestCount: ptr.Ptr(3)})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.bookings.updated)
	assert.Empty(t, f.cache.invalidated)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_BlankStatusBecomesBooked(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 13, Actor: staff, Status: ptr.Ptr("  ")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusBooked, resp.Booking.Status)
}

func TestExecute_CustomerCannotReassignBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: owner, UserID: ptr.Ptr(int64(99))})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Booking.UserID)
}

func TestExecute_CustomerCannotBlock(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: owner, Status: ptr.Ptr("blocked")})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.bookings.updated)
}

func TestExecute_CustomerMayCancelViaUpdate(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: owner, Status: ptr.Ptr("cancelled")})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
}

func TestExecute_StaffReassignsAndMoves(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:     12,
		Actor:  staff,
		UserID: ptr.Ptr(int64(9)),
		Start:  ptr.Ptr(types.MustParseDateTime("2025-10-13T19:00:00")),
		End:    ptr.Ptr(types.MustParseDateTime("2025-10-13T21:00:00")),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Booking.UserID)

	// Сбрасываются и старая, и новая дата
	require.Len(t, f.cache.invalidated, 2)
	assert.Equal(t, "2025-10-12", f.cache.invalidated[0].Format(domain.DateFormat))
	assert.Equal(t, "2025-10-13", f.cache.invalidated[1].Format(domain.DateFormat))
}

func TestExecute_SameDayInvalidatesOnce(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:    12,
		Actor: owner,
		Start: ptr.Ptr(types.MustParseDateTime("2025-10-12T19:00:00")),
		End:   ptr.Ptr(types.MustParseDateTime("2025-10-12T21:00:00")),
	})

	require.NoError(t, err)
	require.Len(t, f.cache.invalidated, 1)
	assert.Equal(t, "2025-10-12", f.cache.invalidated[0].Format(domain.DateFormat))
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "unknown booking", req: &Request{ID: 99, Actor: staff}, wantErr: ErrBookingNotFound},
		{name: "end before start", req: &Request{ID: 12, Actor: owner, End: ptr.Ptr(types.MustParseDateTime("2025-10-12T17:00:00"))}, wantErr: ErrInvalidTimeRange},
		{name: "crosses midnight", req: &Request{ID: 12, Actor: owner, End: ptr.Ptr(types.MustParseDateTime("2025-10-13T01:00:00"))}, wantErr: ErrInvalidTimeRange},
		{name: "no guests", req: &Request{ID: 12, Actor: owner, GuestCount: ptr.Ptr(0)}, wantErr: ErrInvalidInput},
		{name: "unknown status", req: &Request{ID: 12, Actor: staff, Status: ptr.Ptr("pending")}, wantErr: ErrInvalidInput},
		{name: "missing table", req: &Request{ID: 12, Actor: owner, TableID: ptr.Ptr(int64(42))}, wantErr: ErrTableNotFound},
		{name: "inactive table", req: &Request{ID: 12, Actor: owner, TableID: ptr.Ptr(int64(2))}, wantErr: ErrTableNotFound},
		{name: "over capacity", req: &Request{ID: 12, Actor: owner, TableID: ptr.Ptr(int64(3)), GuestCount: ptr.Ptr(3)}, wantErr: ErrGuestCountExceedsCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.uc.Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.updated)
			assert.Empty(t, f.publisher.published)
		})
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture()
	f.bookings.updateErr = errors.New("conn reset")

	_, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: owner, GuestCount: ptr.Ptr(3)})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_SideEffectFailuresAreLogged(t *testing.T) {
	f := newFixture()
	f.cache.err = errors.New("redis down")
	f.publisher.err = errors.New("kafka down")

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 12, Actor: owner, Note: ptr.Ptr("  terrace  ")})

	require.NoError(t, err)
	assert.Equal(t, "terrace", resp.Booking.Note)
}
