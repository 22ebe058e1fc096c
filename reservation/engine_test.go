package reservation

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/resto-backoffice/models"
)

var (
	// 2026-10-19 is a Monday.
	monday    = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	fixedNow  = time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC)
	mondayKey = "2026-10-19"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEngine(hours fakeHours, tables fakeTables, store Store, opts ...Option) *Engine {
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
		WithLogger(quietLogger()),
	}
	return NewEngine(hours, tables, store, append(base, opts...)...)
}

func mondayHours() fakeHours {
	return fakeHours{time.Monday: {Opening: clock("09:45"), Closing: clock("16:00")}}
}

func TestAvailableStarts_NoTablesForParty(t *testing.T) {
	e := newTestEngine(mondayHours(), fakeTables{byParty: map[int]int{4: 0}}, newFakeStore())

	starts, err := e.AvailableStarts(context.Background(), monday, 120, 15, 4)
	require.NoError(t, err)
	assert.Empty(t, starts)
	assert.NotNil(t, starts)
}

func TestAvailableStarts_SingleTableAroundLunch(t *testing.T) {
	store := newFakeStore(booked(mondayKey, "12:00", "14:00", 2))
	e := newTestEngine(mondayHours(), fakeTables{byParty: map[int]int{3: 1}}, store)

	starts, err := e.AvailableStarts(context.Background(), monday, 120, 15, 3)
	require.NoError(t, err)
	assert.Equal(t, []models.Clock{clock("09:45")}, starts)
}

func TestAvailableStarts_ClosedDay(t *testing.T) {
	e := newTestEngine(mondayHours(), fakeTables{byParty: map[int]int{2: 5}}, newFakeStore())

	starts, err := e.AvailableStarts(context.Background(), tuesday, 60, 15, 2)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestAvailableStarts_TouchingEndpointsConflict(t *testing.T) {
	store := newFakeStore(booked(mondayKey, "11:00", "12:00", 2))
	hours := fakeHours{time.Monday: {Opening: clock("10:00"), Closing: clock("13:00")}}
	e := newTestEngine(hours, fakeTables{byParty: map[int]int{2: 1}}, store)

	starts, err := e.AvailableStarts(context.Background(), monday, 60, 60, 2)
	require.NoError(t, err)
	// 10:00-11:00 touches 11:00, 12:00-13:00 touches 12:00
	assert.Empty(t, starts)

	starts, err = e.AvailableStarts(context.Background(), monday, 30, 30, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Clock{clock("10:00"), clock("12:30")}, starts)
}

func TestAvailableStarts_MayEndAtClosing(t *testing.T) {
	hours := fakeHours{time.Monday: {Opening: clock("18:00"), Closing: clock("20:00")}}
	e := newTestEngine(hours, fakeTables{byParty: map[int]int{2: 1}}, newFakeStore())

	starts, err := e.AvailableStarts(context.Background(), monday, 60, 30, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Clock{clock("18:00"), clock("18:30"), clock("19:00")}, starts)
}

func TestAvailableStarts_GridAndBounds(t *testing.T) {
	store := newFakeStore(
		booked(mondayKey, "10:00", "11:30", 2),
		booked(mondayKey, "13:10", "14:00", 6),
	)
	hours := mondayHours()
	h := hours[time.Monday]

	for _, granularity := range []int{5, 15, 20, 45} {
		for _, duration := range []int{30, 90, 120, 375} {
			e := newTestEngine(hours, fakeTables{byParty: map[int]int{2: 2}}, store)
			starts, err := e.AvailableStarts(context.Background(), monday, duration, granularity, 2)
			require.NoError(t, err)

			for i, s := range starts {
				assert.GreaterOrEqual(t, s, h.Opening)
				assert.LessOrEqual(t, s.Add(duration), h.Closing)
				assert.Zero(t, s.Sub(h.Opening)%granularity, "start %s off the grid", s)
				if i > 0 {
					assert.Greater(t, s, starts[i-1])
				}
			}
		}
	}
}

func TestAvailableStarts_WholeDay(t *testing.T) {
	hours := fakeHours{time.Monday: {Opening: models.Midnight, Closing: models.EndOfDay}}
	e := newTestEngine(hours, fakeTables{byParty: map[int]int{2: 1}}, newFakeStore())

	starts, err := e.AvailableStarts(context.Background(), monday, 24*60, 24*60, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Clock{models.Midnight}, starts)
}

func TestAvailableStartsDurationDoesNotWrap(t *testing.T) {
	h := Hours{Opening: clock("09:45"), Closing: clock("16:00")}
	assert.Empty(t, availableStarts(h, 1, nil, math.MaxInt-100, 1<<40))
	assert.Empty(t, availableStarts(h, 1, nil, math.MaxInt, 15))
}

func TestAvailableStarts_MoreTablesNeverRemoveStarts(t *testing.T) {
	store := newFakeStore(
		booked(mondayKey, "10:00", "12:00", 2),
		booked(mondayKey, "11:00", "13:00", 4),
		booked(mondayKey, "11:30", "12:15", 2),
		booked(mondayKey, "14:45", "15:30", 8),
	)

	var previous []models.Clock
	for tables := 0; tables <= 5; tables++ {
		e := newTestEngine(mondayHours(), fakeTables{byParty: map[int]int{2: tables}}, store)
		starts, err := e.AvailableStarts(context.Background(), monday, 90, 15, 2)
		require.NoError(t, err)
		for _, s := range previous {
			assert.Contains(t, starts, s, "tables=%d lost start %s", tables, s)
		}
		previous = starts
	}
}

func TestAvailableStarts_Idempotent(t *testing.T) {
	store := newFakeStore(booked(mondayKey, "12:00", "13:00", 2))
	e := newTestEngine(mondayHours(), fakeTables{byParty: map[int]int{2: 1}}, store)

	first, err := e.AvailableStarts(context.Background(), monday, 60, 15, 2)
	require.NoError(t, err)
	second, err := e.AvailableStarts(context.Background(), monday, 60, 15, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailableStarts_InvalidQuery(t *testing.T) {
	e := newTestEngine(mondayHours(), fakeTables{}, newFakeStore())

	for _, tc := range []struct {
		name                          string
		duration, granularity, people int
	}{
		{"zero duration", 0, 15, 2},
		{"negative granularity", 60, -15, 2},
		{"no people", 60, 15, 0},
		{"duration longer than a day", 24*60 + 1, 15, 2},
		{"huge duration", math.MaxInt - 100, 1 << 40, 2},
		{"granularity longer than a day", 60, 24*60 + 1, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.AvailableStarts(context.Background(), monday, tc.duration, tc.granularity, tc.people)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestAvailableStarts_DependencyFailure(t *testing.T) {
	boom := errors.New("connection refused")
	store := newFakeStore()
	store.findErr = boom
	e := newTestEngine(mondayHours(), fakeTables{byParty: map[int]int{2: 1}}, store)

	_, err := e.AvailableStarts(context.Background(), monday, 60, 15, 2)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidReservation)

	e = newTestEngine(mondayHours(), fakeTables{err: boom}, newFakeStore())
	_, err = e.AvailableStarts(context.Background(), monday, 60, 15, 2)
	assert.ErrorIs(t, err, boom)
}
