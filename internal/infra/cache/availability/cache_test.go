package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/ptr"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

func TestKey(t *testing.T) {
	date := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "availability:2025-10-10", key(date))
	assert.Equal(t, "availability:version:2025-10-10", versionKey(date))
	assert.NotEqual(t, key(date), versionKey(date))
}

func TestEncodeDecode_PreservesSlots(t *testing.T) {
	date := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	status := domain.StatusBooked
	original := []domain.TableAvailability{{
		TableID:   1,
		TableName: "Fonsterbord 1",
		Capacity:  2,
		Date:      date,
		Slots: []domain.Slot{
			{
				Type:  domain.SlotAvailable,
				Start: types.MustParseDateTime("2025-10-10T17:00:00"),
				End:   types.MustParseDateTime("2025-10-10T18:00:00"),
			},
			{
				Type:      domain.SlotBooked,
				Start:     types.MustParseDateTime("2025-10-10T18:00:00"),
				End:       types.MustParseDateTime("2025-10-10T20:00:00"),
				BookingID: ptr.Ptr(int64(1)),
				UserID:    ptr.Ptr(int64(7)),
				UserEmail: ptr.Ptr("admin@bistro.se"),
				Status:    &status,
			},
		},
	}}

	data, err := encode(original)
	require.NoError(t, err)

	decoded, err := decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, original[0].TableName, decoded[0].TableName)
	assert.True(t, original[0].Date.Equal(decoded[0].Date))
	require.Len(t, decoded[0].Slots, 2)
	assert.Equal(t, original[0].Slots[1], decoded[0].Slots[1])
	assert.Nil(t, decoded[0].Slots[0].BookingID)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := decode([]byte("{not json"))
	assert.ErrorIs(t, err, ErrCache)
}
