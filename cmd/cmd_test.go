package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/reservation"
)

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "availability", "version"}, names)
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "restobo dev")
}

func TestPrintAvailability(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	days := []reservation.DayAvailability{
		{Date: monday, Starts: []models.Clock{17 * 60, 18 * 60}},
		{Date: monday.AddDate(0, 0, 1), Starts: []models.Clock{}},
	}
	require.NoError(t, printAvailability(c, days))

	assert.Equal(t,
		"2026-10-19  (Monday)  17:00 18:00\n"+
			"2026-10-20  (Tuesday)  no availability\n",
		out.String())
}

func TestQueryDates(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	// 18:30 UTC is already the next day in Jakarta
	now := time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC)

	dates, err := queryDates(nil, now, wib)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "2026-10-19", models.DateKey(dates[0]))
	assert.Equal(t, wib, dates[0].Location())

	dates, err = queryDates([]string{"2026-10-20", "2026-10-19", "2026-10-20"}, now, wib)
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, "2026-10-20", models.DateKey(dates[2]))

	_, err = queryDates([]string{"tomorrow"}, now, wib)
	assert.Error(t, err)
}
