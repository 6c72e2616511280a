// Package calendar builds the month grid shown by the calendar view.
package calendar

import (
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
)

// Month returns every day of the display grid for the month containing ref:
// from the weekStart day on or before the 1st through the day before the next
// weekStart on or after the last day. The result always holds whole weeks.
func Month(ref, today time.Time, weekStart time.Weekday) []model.CalendarDay {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -daysSince(first.Weekday(), weekStart))
	weekEnd := (weekStart + 6) % 7
	end := last.AddDate(0, 0, daysUntil(last.Weekday(), weekEnd))

	out := make([]model.CalendarDay, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, model.CalendarDay{
			Date:           d,
			InCurrentMonth: d.Month() == first.Month() && d.Year() == first.Year(),
			IsToday:        model.SameDay(d, today),
			Lunar:          LunarPlaceholder(d.Day()),
		})
	}
	return out
}

// Shift moves ref by n months, anchored to the first of the month so a
// 31st never overflows into the month after.
func Shift(ref time.Time, n int) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(0, n, 0)
}

func Weekdays(weekStart time.Weekday) []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, weekdayLabels[(int(weekStart)+i)%7])
	}
	return out
}

// WeekdayLabel returns the short label for d, e.g. 周三.
func WeekdayLabel(d time.Weekday) string {
	return weekdayLabels[d]
}

var weekdayLabels = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

func daysSince(from, target time.Weekday) int {
	return (int(from) - int(target) + 7) % 7
}

func daysUntil(from, target time.Weekday) int {
	return (int(target) - int(from) + 7) % 7
}
