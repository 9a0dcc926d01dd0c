package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomDateJSON(t *testing.T) {
	var payload struct {
		Release *CustomDate `json:"release"`
		End     CustomDate  `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"release":"2024-06-01","end":null}`), &payload))
	require.NotNil(t, payload.Release)
	assert.Equal(t, NewDate(2024, time.June, 1), *payload.Release)
	assert.True(t, payload.End.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"release":"2024-06-01","end":null}`, string(out))
}

func TestCustomDateScan(t *testing.T) {
	var d CustomDate
	require.NoError(t, d.Scan(time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-01", d.String())

	require.NoError(t, d.Scan("2024-05-02T00:00:00Z"))
	assert.Equal(t, "2024-05-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestDateOfUsesLocalDay(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	at := time.Date(2024, 6, 1, 0, 30, 0, 0, seoul)
	assert.Equal(t, NewDate(2024, time.June, 1), DateOf(at))
}

func TestClockTime(t *testing.T) {
	start, err := ParseClockTime("22:30")
	require.NoError(t, err)

	end := start.AddMinutes(150)
	assert.Equal(t, "01:00:00", end.String())
	assert.Equal(t, NewClockTime(23, 59, 0), NewClockTime(0, 0, 0).AddMinutes(-1))

	var scanned ClockTime
	require.NoError(t, scanned.Scan("09:15:00.000000"))
	assert.Equal(t, NewClockTime(9, 15, 0), scanned)

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
}

func TestCustomDateAt(t *testing.T) {
	d := NewDate(2024, time.June, 1)
	at := d.At(NewClockTime(18, 45, 0), time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 18, 45, 0, 0, time.UTC), at)
}
