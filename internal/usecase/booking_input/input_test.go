package booking_input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

func validInput() Input {
	return Input{
		UserID:     7,
		TableID:    1,
		GuestCount: 2,
		Status:     "booked",
		Note:       "window seat",
		Start:      types.MustParseDateTime("2025-10-12T18:00:00"),
		End:        types.MustParseDateTime("2025-10-12T20:00:00"),
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validInput()))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(in *Input)
		wantErr error
		wantMsg string
	}{
		{name: "zero user", modify: func(in *Input) { in.UserID = 0 }, wantErr: ErrInvalidInput, wantMsg: "UserID must be positive"},
		{name: "too many guests", modify: func(in *Input) { in.GuestCount = domain.MaxGuestCount + 1 }, wantErr: ErrInvalidInput, wantMsg: "GuestCount must satisfy max=50"},
		{name: "unknown status", modify: func(in *Input) { in.Status = "pending" }, wantErr: ErrInvalidInput, wantMsg: "Status must be one of"},
		{name: "long note", modify: func(in *Input) { in.Note = strings.Repeat("x", domain.MaxNoteLength+1) }, wantErr: ErrInvalidInput},
		{name: "missing start", modify: func(in *Input) { in.Start = types.DateTime{} }, wantErr: ErrInvalidInput},
		{
			name:    "end before start",
			modify:  func(in *Input) { in.End = types.MustParseDateTime("2025-10-12T17:00:00") },
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "crosses midnight",
			modify:  func(in *Input) { in.End = types.MustParseDateTime("2025-10-13T01:00:00") },
			wantErr: ErrInvalidTimeRange,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			err := v.Validate(in)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCheckTable(t *testing.T) {
	active := &domain.Table{ID: 1, Capacity: 4, IsActive: true}

	assert.NoError(t, CheckTable(active, 4))
	assert.ErrorIs(t, CheckTable(active, 5), ErrGuestCountExceedsCapacity)
	assert.ErrorIs(t, CheckTable(&domain.Table{ID: 2, Capacity: 6}, 2), ErrTableNotFound)
}

func TestInput_Booking(t *testing.T) {
	booking := validInput().Booking(12)

	assert.Equal(t, int64(12), booking.ID)
	assert.Equal(t, domain.StatusBooked, booking.Status)
	assert.Equal(t, "2025-10-12T18:00:00", booking.Start.String())
}
