package domain

import "time"

// Season names.
const (
	Spring = "Spring"
	Summer = "Summer"
	Fall   = "Fall"
	Winter = "Winter"
)

// Weekdays is the Sunday-origin weekday lookup. Index 0 is Sunday, matching
// time.Weekday.
var Weekdays = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// SeasonOrder is the canonical display order of the season dimension.
var SeasonOrder = []string{Winter, Spring, Summer, Fall}

// SeasonOptions is the order seasons are offered in a filter dropdown.
var SeasonOptions = []string{Spring, Summer, Fall, Winter}

// WeekdayOrder returns the weekday domain, Sunday first.
func WeekdayOrder() []string {
	out := make([]string, len(Weekdays))
	copy(out, Weekdays[:])
	return out
}

// HourOrder returns the hour-of-day domain, 0 through 23.
func HourOrder() []int {
	out := make([]int, 24)
	for i := range out {
		out[i] = i
	}
	return out
}

// DayOfWeek maps a Sunday-origin weekday index to its name. Out-of-range
// indexes return the empty string.
func DayOfWeek(index int) string {
	if index < 0 || index >= len(Weekdays) {
		return ""
	}
	return Weekdays[index]
}

// SeasonForMonth classifies a zero-indexed month (0 = January):
// 2-4 Spring, 5-7 Summer, 8-10 Fall, everything else Winter.
func SeasonForMonth(month int) string {
	switch {
	case month >= 2 && month <= 4:
		return Spring
	case month >= 5 && month <= 7:
		return Summer
	case month >= 8 && month <= 10:
		return Fall
	default:
		return Winter
	}
}

// SeasonOf returns the season of t, or the empty string for the zero time.
func SeasonOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return SeasonForMonth(int(t.Month()) - 1)
}

// IsSeason reports whether s is one of the four season names.
func IsSeason(s string) bool {
	switch s {
	case Spring, Summer, Fall, Winter:
		return true
	default:
		return false
	}
}
