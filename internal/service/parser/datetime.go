package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	isoDateRe  = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	dmyDateRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	relativeRe = regexp.MustCompile(`(?i)\b(today|tonight|tomorrow|tmrw|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	meridiemRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)\b`)
	clockRe    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Schedule resolved booking date and time
type Schedule struct {
	Date string  // YYYY-MM-DD, always set
	Time *string // HH:MM, nil when no time was found
	// DateFound false when Date fell back to today
	DateFound bool
}

// DateTimeResolver переводит текст даты/времени в YYYY-MM-DD и HH:MM в часовом поясе салона
type DateTimeResolver struct {
	loc *time.Location
}

// NewDateTimeResolver создает резолвер. nil loc означает UTC.
func NewDateTimeResolver(loc *time.Location) *DateTimeResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &DateTimeResolver{loc: loc}
}

// Location returns the shop time zone
func (r *DateTimeResolver) Location() *time.Location {
	return r.loc
}

// Today returns now's calendar date in the shop time zone
func (r *DateTimeResolver) Today(now time.Time) string {
	return now.In(r.loc).Format(domain.DateFormat)
}

// Resolve understands ISO dates, DD/MM/YYYY, today/tomorrow, weekday names,
// HH:MM, 2pm and 2:30pm. Without a recognisable date the result is today.
func (r *DateTimeResolver) Resolve(text string, now time.Time) Schedule {
	local := now.In(r.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)

	schedule := Schedule{Date: today.Format(domain.DateFormat)}

	if d, ok := r.findDate(text, today); ok {
		schedule.Date = d.Format(domain.DateFormat)
		schedule.DateFound = true
	}
	if t, ok := findTime(text); ok {
		schedule.Time = &t
	}

	return schedule
}

func (r *DateTimeResolver) findDate(text string, today time.Time) (time.Time, bool) {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := r.makeDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := dmyDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := r.makeDate(m[3], m[2], m[1]); ok {
			return d, true
		}
	}
	if m := relativeRe.FindStringSubmatch(text); m != nil {
		word := strings.ToLower(m[1])
		switch word {
		case "today", "tonight":
			return today, true
		case "tomorrow", "tmrw":
			return today.AddDate(0, 0, 1), true
		default:
			wd := weekdays[word]
			ahead := (int(wd) - int(today.Weekday()) + 7) % 7
			return today.AddDate(0, 0, ahead), true
		}
	}
	return time.Time{}, false
}

// makeDate отбрасывает несуществующие даты (2026-02-30)
func (r *DateTimeResolver) makeDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, r.loc)
	if t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func findTime(text string) (string, bool) {
	if m := meridiemRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour >= 1 && hour <= 12 && minute < 60 {
			hour %= 12
			if strings.EqualFold(m[3], "pm") {
				hour += 12
			}
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}
	for _, m := range clockRe.FindAllStringSubmatch(text, -1) {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 24 && minute < 60 {
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}
	return "", false
}
