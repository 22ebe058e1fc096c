package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/reservation"
)

func newAvailabilityCmd() *cobra.Command {
	var (
		dates       []string
		duration    int
		granularity int
		people      int
	)

	cmd := &cobra.Command{
		Use:     "availability",
		Short:   "Print bookable start times for one or more dates",
		Example: "  restobo availability --date 2026-10-19 --date 2026-10-20 --duration 120 --people 4",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			engine := newEngine(cfg, db)

			q := reservation.AvailabilityQuery{
				DurationMinutes:    duration,
				GranularityMinutes: granularity,
				PartySize:          people,
			}
			if q.Dates, err = queryDates(dates, time.Now(), cfg.Location); err != nil {
				return err
			}

			days, err := engine.AvailableStartsForDays(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printAvailability(cmd, days)
		},
	}

	cmd.Flags().StringSliceVar(&dates, "date", nil, "date(s) YYYY-MM-DD, repeatable (default today in TIMEZONE)")
	cmd.Flags().IntVar(&duration, "duration", 120, "reservation length in minutes")
	cmd.Flags().IntVar(&granularity, "granularity", 15, "minutes between candidate start times")
	cmd.Flags().IntVar(&people, "people", 2, "party size")
	return cmd
}

// queryDates parses the --date values; without any it is today in loc.
func queryDates(raw []string, now time.Time, loc *time.Location) ([]time.Time, error) {
	if len(raw) == 0 {
		raw = []string{now.In(loc).Format(models.DateLayout)}
	}
	dates := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := models.ParseDate(r, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: %w", r, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func printAvailability(cmd *cobra.Command, days []reservation.DayAvailability) error {
	out := cmd.OutOrStdout()
	for _, d := range days {
		if len(d.Starts) == 0 {
			if _, err := fmt.Fprintf(out, "%s  (%s)  no availability\n", models.DateKey(d.Date), d.Date.Weekday()); err != nil {
				return err
			}
			continue
		}
		starts := make([]string, len(d.Starts))
		for i, s := range d.Starts {
			starts[i] = s.String()
		}
		if _, err := fmt.Fprintf(out, "%s  (%s)  %s\n", models.DateKey(d.Date), d.Date.Weekday(), strings.Join(starts, " ")); err != nil {
			return err
		}
	}
	return nil
}
