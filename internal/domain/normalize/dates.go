package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial day 25569 is 1970-01-01 (epoch 1899-12-30).
const serialEpochOffset = 25569

// Plausible range for serial dates: roughly 1954 through 2117. Anything
// outside is treated as a stray number, not a date.
const (
	serialMin = 20000
	serialMax = 80000
)

var slashDashDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)

// genericLayouts are tried in order for free-form date strings.
var genericLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2 2006",
	"2006-01-02 15:04:05",
}

// ParseDate accepts spreadsheet serial dates, common date strings, and
// M-D-Y shaped slash/dash dates with two-digit-year inference. The bool is
// false for anything unparseable; callers drop such rows.
func ParseDate(cell string) (string, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return "", false
	}

	// Serial candidates are 5 digits, so check them before the length
	// guard that screens short junk out of the string layouts.
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		return fromSerial(serial)
	}

	if len(cell) < 6 {
		return "", false
	}

	if m := slashDashDate.FindStringSubmatch(cell); m != nil {
		return fromMDY(m[1], m[2], m[3])
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

// fromSerial converts a spreadsheet serial day via epoch day arithmetic.
func fromSerial(serial float64) (string, bool) {
	if serial < serialMin || serial > serialMax {
		return "", false
	}
	days := int64(serial) - serialEpochOffset
	t := time.Unix(days*86400, 0).UTC()
	return t.Format("2006-01-02"), true
}

// fromMDY handles M-D-Y shaped dates. Two-digit years above 70 are 19xx,
// the rest 20xx.
func fromMDY(ms, ds, ys string) (string, bool) {
	month, _ := strconv.Atoi(ms)
	day, _ := strconv.Atoi(ds)
	year, _ := strconv.Atoi(ys)

	if len(ys) <= 2 {
		if year > 70 {
			year += 1900
		} else {
			year += 2000
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// DaysBetween returns the absolute day distance between two YYYY-MM-DD
// dates. Unparseable input counts as infinitely far apart.
func DaysBetween(a, b string) (int, bool) {
	ta, err := time.Parse("2006-01-02", a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse("2006-01-02", b)
	if err != nil {
		return 0, false
	}
	days := int(ta.Sub(tb).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, true
}
