//-------------------------------------------------------------------------
//
// LCV Retail Analytics Platform
//
// Copyright (c) 2025 - 2026, LCV Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/lcv-analytics/retail-datagen/internal/logging"
)

// DateRecord is one row of the date dimension. All attributes are pure
// functions of the calendar date.
type DateRecord struct {
	DateID        int // YYYYMMDD
	Date          time.Time
	DayOfWeek     int // Monday=1 .. Sunday=7
	DayName       string
	WeekOfYear    int
	Month         int
	MonthName     string
	Quarter       int
	FiscalQuarter int
	Year          int
	FiscalYear    int
	IsWeekend     bool
	IsHoliday     bool
	HolidayName   *string
}

// Fixed-date holidays marked in the date dimension.
var holidays = map[[2]int]string{
	{1, 1}:   "New Year's Day",
	{7, 4}:   "Independence Day",
	{12, 25}: "Christmas Day",
}

// GenerateDates produces one record per day in [today-historyDays, today]
// inclusive. DateIDs are strictly increasing with the date.
func GenerateDates(today time.Time, historyDays int) []DateRecord {
	base := today.AddDate(0, 0, -historyDays)
	records := make([]DateRecord, 0, historyDays+1)

	for i := 0; i <= historyDays; i++ {
		d := base.AddDate(0, 0, i)

		dow := int(d.Weekday())
		if dow == 0 {
			dow = 7
		}
		_, week := d.ISOWeek()
		quarter := (int(d.Month())-1)/3 + 1

		rec := DateRecord{
			DateID:        d.Year()*10000 + int(d.Month())*100 + d.Day(),
			Date:          d,
			DayOfWeek:     dow,
			DayName:       d.Weekday().String(),
			WeekOfYear:    week,
			Month:         int(d.Month()),
			MonthName:     d.Month().String(),
			Quarter:       quarter,
			FiscalQuarter: quarter,
			Year:          d.Year(),
			FiscalYear:    d.Year(),
			// Fri-Sun count as retail weekend trading days.
			IsWeekend: dow >= 5,
		}

		if name, ok := holidays[[2]int{int(d.Month()), d.Day()}]; ok {
			rec.IsHoliday = true
			holiday := name
			rec.HolidayName = &holiday
		}

		records = append(records, rec)
	}

	return records
}

var dimDateColumns = []string{
	"date_id", "date_value", "day_of_week", "day_name", "week_of_year",
	"month", "month_name", "quarter", "fiscal_quarter", "year", "fiscal_year",
	"is_weekend", "is_holiday", "holiday_name",
}

func (p *Pipeline) seedDates(ctx context.Context, today time.Time) error {
	logging.Info().Msg("Generating date dimension")

	records := GenerateDates(today, p.cfg.HistoryDays)

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.DateID, r.Date, r.DayOfWeek, r.DayName, r.WeekOfYear,
			r.Month, r.MonthName, r.Quarter, r.FiscalQuarter, r.Year, r.FiscalYear,
			r.IsWeekend, r.IsHoliday, r.HolidayName,
		})
	}

	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertRows(ctx, tx, "dim_date", dimDateColumns, rows); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit dim_date: %w", err)
	}

	logging.Info().Int("count", len(records)).Msg("Generated date records")
	return nil
}
