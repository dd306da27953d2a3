package calculation

import (
	"time"

	"github.com/luanwie/cltfacil/internal/domain"
)

// Calendar arithmetic shared by every settlement calculator. All functions
// ignore time-of-day and operate on UTC-normalized dates, and none of them
// owns a jurisdiction constant: the full-month threshold is always supplied
// by the caller from the active policy set.

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDayCount returns the number of calendar days from a to b
// counting both endpoints. A same-day span is 1 day.
func InclusiveDayCount(a, b time.Time) (int, error) {
	a, b = dateOnly(a), dateOnly(b)
	if b.Before(a) {
		return 0, domain.ErrInvalidRange
	}
	return int(b.Sub(a).Hours()/24) + 1, nil
}

// daysInMonth returns the length of the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// anniversaryDate returns the admission anniversary falling in the given
// year, clamping the day-of-month when the target month is shorter than
// the admission month (Jan 31 admission -> Feb 28/29 anniversary).
func anniversaryDate(admission time.Time, year int) time.Time {
	admission = dateOnly(admission)
	day := admission.Day()
	if max := daysInMonth(year, admission.Month()); day > max {
		day = max
	}
	return time.Date(year, admission.Month(), day, 0, 0, 0, 0, time.UTC)
}

// CountFullMonths counts the calendar months between start and reference
// in which the worker was present for at least thresholdDays inclusive
// days, capped at 12. This is the single month-counting rule; year-end
// bonus and vacation proration both call it rather than re-deriving it.
func CountFullMonths(start, reference time.Time, thresholdDays int) (int, error) {
	start, reference = dateOnly(start), dateOnly(reference)
	if reference.Before(start) {
		return 0, domain.ErrInvalidRange
	}
	count := 0
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(lastMonth) && count < 12 {
		monthEnd := cursor.AddDate(0, 1, -1)
		from, to := cursor, monthEnd
		if start.After(from) {
			from = start
		}
		if reference.Before(to) {
			to = reference
		}
		if !to.Before(from) {
			days, _ := InclusiveDayCount(from, to)
			if days >= thresholdDays {
				count++
			}
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return count, nil
}

// CompletedServiceYears returns how many full anniversary years elapsed
// between admission and reference.
func CompletedServiceYears(admission, reference time.Time) (int, error) {
	admission, reference = dateOnly(admission), dateOnly(reference)
	if reference.Before(admission) {
		return 0, domain.ErrInvalidRange
	}
	years := reference.Year() - admission.Year()
	if years > 0 && anniversaryDate(admission, reference.Year()).After(reference) {
		years--
	}
	return years, nil
}

// CurrentAcquisitionWindow returns the most recent anniversary-aligned
// 12-month window starting at or before reference. Proportional vacation
// accrues against this window.
func CurrentAcquisitionWindow(admission, reference time.Time) (domain.DateSpan, error) {
	years, err := CompletedServiceYears(admission, reference)
	if err != nil {
		return domain.DateSpan{}, err
	}
	start := anniversaryDate(admission, dateOnly(admission).Year()+years)
	end := anniversaryDate(admission, start.Year()+1).AddDate(0, 0, -1)
	return domain.NewDateSpan(start, end)
}
