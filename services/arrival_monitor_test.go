package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/utils"
)

type dayReader map[string][]models.Reservation

func (d dayReader) FindAllByDate(_ context.Context, date time.Time) ([]models.Reservation, error) {
	return d[models.DateKey(date)], nil
}

type recorder struct {
	ids []uint
}

func (r *recorder) BroadcastGuestArriving(res models.Reservation) {
	r.ids = append(r.ids, res.ID)
}

func TestArrivalMonitor_AnnouncesOnce(t *testing.T) {
	utils.SilenceLogger()
	reservations := dayReader{
		"2026-10-19": {
			{ID: 1, Date: "2026-10-19", StartTime: 18*60 + 50, EndTime: 20 * 60, PartySize: 2},
			{ID: 2, Date: "2026-10-19", StartTime: 19 * 60, EndTime: 21 * 60, PartySize: 4},
			{ID: 3, Date: "2026-10-19", StartTime: 19*60 + 15, EndTime: 21 * 60, PartySize: 2},
			{ID: 4, Date: "2026-10-19", StartTime: 20 * 60, EndTime: 22 * 60, PartySize: 6},
		},
	}
	rec := &recorder{}
	now := time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC)
	am := NewArrivalMonitor(reservations, rec, 15*time.Minute, time.UTC)
	am.Now = func() time.Time { return now }

	n, err := am.CheckArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uint{2, 3}, rec.ids)

	n, err = am.CheckArrivals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	now = now.Add(50 * time.Minute)
	n, err = am.CheckArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uint{2, 3, 4}, rec.ids)
}

func TestArrivalMonitor_StopIsIdempotent(t *testing.T) {
	utils.SilenceLogger()
	am := NewArrivalMonitor(dayReader{}, &recorder{}, time.Minute, time.UTC)
	am.Interval = time.Millisecond
	am.Start()
	am.Stop()
	am.Stop()
}
