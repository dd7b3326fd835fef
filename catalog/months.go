package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Month is a calendar month index, 1 (January) through 12 (December).
type Month int

var monthNames = map[string]Month{
	// English
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
	// Norwegian
	"januar": 1, "februar": 2, "mars": 3, "mai": 5, "juni": 6,
	"juli": 7, "oktober": 10, "desember": 12,
}

// ParseMonth converts a month name (English or Norwegian) or a numeric string
// to a Month. Month names never sort chronologically, so everything downstream
// compares integer indices only.
func ParseMonth(s string) (Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if m, ok := monthNames[name]; ok {
		return m, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		m := Month(n)
		if err := m.Validate(); err != nil {
			return 0, err
		}
		return m, nil
	}
	return 0, fmt.Errorf("%w: unrecognized month %q", ErrInvalidInput, s)
}

func (m Month) Validate() error {
	if m < 1 || m > 12 {
		return fmt.Errorf("%w: invalid month %d, must be 1-12", ErrInvalidInput, m)
	}
	return nil
}

func (m Month) String() string {
	names := [...]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	if m.Validate() != nil {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return names[m-1]
}

// InPlantingWindow reports whether month falls inside the crop's planting
// window. A window whose start month is after its end month wraps across the
// year boundary: start=11, end=2 covers Nov, Dec, Jan and Feb. start==end is a
// single-month window and start=1,end=12 covers the whole year; both are plain
// non-wrapping cases.
func (c Crop) InPlantingWindow(month Month) (bool, error) {
	if err := month.Validate(); err != nil {
		return false, err
	}
	start, end := c.PlantingStartMonth, c.PlantingEndMonth
	if start <= end {
		return start <= month && month <= end, nil
	}
	return month >= start || month <= end, nil
}

// ParseZone converts a zone string ("1".."8") to a Zone. "All Zones" and the
// empty string mean no zone restriction.
func ParseZone(s string) (Zone, error) {
	name := strings.TrimSpace(s)
	if name == "" || strings.EqualFold(name, "All Zones") {
		return ZoneAll, nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < ZoneMin || n > ZoneMax {
		return 0, fmt.Errorf("%w: invalid norwegian zone %q, must be 1-8", ErrInvalidInput, s)
	}
	return Zone(n), nil
}
