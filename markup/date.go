package markup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DatePattern matches a bare date token such as 3/5, 03-05 or 3/5/26.
// The three-part form is tried first so a trailing year is never left behind.
const DatePattern = `\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{1,2}[-/]\d{1,2}`

var dateTokenRE = regexp.MustCompile(`^(?:` + DatePattern + `)$`)

var dateSeparatorRE = regexp.MustCompile(`[-/]`)

// NormalizeDate converts a date token into YYYY-MM-DD.
//
// A missing year is taken from now, and a two-digit year is placed in now's
// century. The result is not checked against the calendar, so 2/30 yields
// "<year>-02-30". Tokens that do not match DatePattern return "".
func NormalizeDate(token string, now time.Time) string {
	if !dateTokenRE.MatchString(token) {
		return ""
	}
	parts := dateSeparatorRE.Split(token, -1)
	month := padDatePart(parts[0])
	day := padDatePart(parts[1])

	year := strconv.Itoa(now.Year())
	if len(parts) == 3 {
		year = parts[2]
		if len(year) == 2 {
			short, _ := strconv.Atoi(year)
			year = strconv.Itoa(now.Year()/100*100 + short)
		}
	}
	return fmt.Sprintf("%s-%s-%s", year, month, day)
}

func padDatePart(part string) string {
	if len(part) < 2 {
		return strings.Repeat("0", 2-len(part)) + part
	}
	return part
}

// IsOverdue reports whether date (YYYY-MM-DD) falls before now's calendar day.
// Dates that cannot be read are never overdue.
func IsOverdue(date string, now time.Time) bool {
	y, m, d, ok := splitISODate(date)
	if !ok {
		return false
	}
	ny, nm, nd := now.Date()
	switch {
	case y != ny:
		return y < ny
	case m != int(nm):
		return m < int(nm)
	default:
		return d < nd
	}
}

// CompareDates orders two YYYY-MM-DD strings by calendar value.
// Unreadable dates sort after readable ones.
func CompareDates(a, b string) int {
	ay, am, ad, aok := splitISODate(a)
	by, bm, bd, bok := splitISODate(b)
	switch {
	case !aok && !bok:
		return strings.Compare(a, b)
	case !aok:
		return 1
	case !bok:
		return -1
	}
	for _, pair := range [][2]int{{ay, by}, {am, bm}, {ad, bd}} {
		if pair[0] != pair[1] {
			if pair[0] < pair[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func splitISODate(date string) (year, month, day int, ok bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], true
}
