package book

import (
	"slices"
	"time"
)

// WindowDays is the length of the birthday lookahead, starting today.
const WindowDays = 7

// Day groups the contacts whose next birthday falls on one date.
type Day struct {
	Weekday time.Weekday
	Date    time.Time
	Names   []string
}

// Week is the result of a birthday lookahead. Days are in date order.
type Week struct {
	Days []Day
}

// Empty reports whether no birthdays fall in the window.
func (w Week) Empty() bool {
	return len(w.Days) == 0
}

// ByWeekday maps weekday names ("Monday", ...) to contact names.
func (w Week) ByWeekday() map[string][]string {
	out := make(map[string][]string, len(w.Days))
	for _, d := range w.Days {
		out[d.Weekday.String()] = append(out[d.Weekday.String()], d.Names...)
	}
	return out
}

// BirthdaysWithinNextWeek returns the contacts whose next birthday falls in
// [ref, ref+WindowDays days), comparing calendar dates only.
// ref's wall-clock date is taken as written, whatever its location.
//
// A birthday already past in ref's year counts in the following year, so the
// window spans the year boundary. Feb 29 birthdays resolve to Feb 28 in
// common years. Birthdays that no longer parse are logged and skipped.
func (b *Book) BirthdaysWithinNextWeek(ref time.Time) Week {
	start := dateOf(ref)
	end := start.AddDate(0, 0, WindowDays)

	var week Week
	index := make(map[int64]int)

	for _, r := range b.Records() {
		if r.Birthday == nil {
			continue
		}
		born, err := r.Birthday.Date()
		if err != nil {
			b.logger.Warn("skipping contact with invalid birthday",
				"contact", r.Name, "birthday", r.Birthday.String(), "err", err)
			continue
		}

		next := anniversary(born, start.Year())
		if next.Before(start) {
			next = anniversary(born, start.Year()+1)
		}
		if !next.Before(end) {
			continue
		}

		i, ok := index[next.Unix()]
		if !ok {
			i = len(week.Days)
			index[next.Unix()] = i
			week.Days = append(week.Days, Day{Weekday: next.Weekday(), Date: next})
		}
		week.Days[i].Names = append(week.Days[i].Names, r.Name)
	}

	slices.SortStableFunc(week.Days, func(x, y Day) int {
		return x.Date.Compare(y.Date)
	})
	return week
}

// anniversary places born's month and day in year.
func anniversary(born time.Time, year int) time.Time {
	month, day := born.Month(), born.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dateOf keeps t's calendar date as written, without zone conversion.
// Dates are pinned to UTC so every midnight exists.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
