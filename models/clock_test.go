package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"00:00": Midnight,
		"09:45": 9*60 + 45,
		"18:00": 18 * 60,
		" 7:05": 7*60 + 5,
		"24:00": EndOfDay,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "25:00", "12:60", "noon", "24:30"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestClockArithmetic(t *testing.T) {
	c := Clock(17 * 60)
	assert.Equal(t, "17:00", c.String())
	assert.Equal(t, "19:30", c.Add(150).String())
	assert.Equal(t, 150, c.Add(150).Sub(c))
	assert.Equal(t, "24:00", EndOfDay.String())
	assert.True(t, EndOfDay.Valid())
	assert.False(t, EndOfDay.Add(1).Valid())
	assert.False(t, Clock(-1).Valid())

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 19, 17, 0, 0, 0, time.UTC), c.On(day))
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), EndOfDay.On(day))
	assert.Equal(t, Clock(21*60+30), ClockOf(time.Date(2026, 10, 18, 21, 30, 59, 0, time.UTC)))
}

func TestClockJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Start Clock `json:"start"`
	}{Start: 9*60 + 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"09:05"}`, string(b))

	var out struct {
		Start Clock `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"24:00"}`), &out))
	assert.Equal(t, EndOfDay, out.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":1020}`), &out))
	assert.Error(t, json.Unmarshal([]byte(`{"start":"5pm"}`), &out))
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	d, err := ParseDate("2026-10-19", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, loc, d.Location())
	assert.Equal(t, "2026-10-19", DateKey(d))

	_, err = ParseDate("19/10/2026", loc)
	assert.Error(t, err)
}

func TestReservationOverlaps(t *testing.T) {
	r := Reservation{StartTime: 18 * 60, EndTime: 20 * 60}

	assert.True(t, r.Overlaps(19*60, 21*60))
	assert.True(t, r.Overlaps(20*60, 21*60), "touching end")
	assert.True(t, r.Overlaps(17*60, 18*60), "touching start")
	assert.False(t, r.Overlaps(20*60+15, 21*60))
	assert.False(t, r.Overlaps(16*60, 17*60+45))
	assert.True(t, r.WalkIn())
}
