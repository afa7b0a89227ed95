package table

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (f *fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *int64:
			*target = f.values[i].(int64)
		case *int:
			*target = f.values[i].(int)
		case *string:
			*target = f.values[i].(string)
		case *bool:
			*target = f.values[i].(bool)
		case interface{ Scan(interface{}) error }:
			if err := target.Scan(f.values[i]); err != nil {
				return err
			}
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestScanTable(t *testing.T) {
	created := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	row := &fakeRow{values: []interface{}{
		int64(4), "Terrass 2", 6, "Terrass", "Utsikt mot torget", true, created, nil,
	}}

	table, err := scanTable(row)

	require.NoError(t, err)
	assert.Equal(t, int64(4), table.ID)
	assert.Equal(t, "Terrass 2", table.Name)
	assert.Equal(t, 6, table.Capacity)
	assert.True(t, table.IsActive)
	assert.Equal(t, created, table.CreatedAt)
	assert.True(t, table.UpdatedAt.IsZero())
}

func TestScanTable_Error(t *testing.T) {
	_, err := scanTable(&fakeRow{err: errors.New("conn closed")})

	assert.Error(t, err)
}
