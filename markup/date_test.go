package markup

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.Local)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{token: "3/5", want: "2026-03-05"},
		{token: "3-5", want: "2026-03-05"},
		{token: "03/05", want: "2026-03-05"},
		{token: "12/25/27", want: "2027-12-25"},
		{token: "1/2/2030", want: "2030-01-02"},
		{token: "1-2-99", want: "2099-01-02"},
		{token: "1/2/203", want: "203-01-02"},
		{token: "2/30", want: "2026-02-30"},
		{token: "13/45", want: "2026-13-45"},
		{token: "abc", want: ""},
		{token: "1/2/3", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			if got := NormalizeDate(tc.token, testNow); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{date: "2026-10-13", want: true},
		{date: "2026-10-14", want: false},
		{date: "2026-10-15", want: false},
		{date: "2026-09-30", want: true},
		{date: "2025-12-31", want: true},
		{date: "2027-01-01", want: false},
		{date: "2026-02-30", want: true},
		{date: "garbage", want: false},
		{date: "", want: false},
	}

	for _, tc := range cases {
		if got := IsOverdue(tc.date, testNow); got != tc.want {
			t.Fatalf("IsOverdue(%q): expected %v, got %v", tc.date, tc.want, got)
		}
	}
}

func TestIsOverdueIgnoresTimeOfDay(t *testing.T) {
	midnight := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.Local)
	late := time.Date(2026, time.October, 14, 23, 59, 0, 0, time.Local)

	if IsOverdue("2026-10-14", midnight) || IsOverdue("2026-10-14", late) {
		t.Fatalf("expected today's date to never be overdue")
	}
}

func TestCompareDates(t *testing.T) {
	if got := CompareDates("2026-03-05", "2026-11-01"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	if got := CompareDates("2027-01-01", "2026-12-31"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := CompareDates("2026-03-05", "2026-03-05"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := CompareDates("", "2026-03-05"); got != 1 {
		t.Fatalf("expected unreadable date to sort last, got %d", got)
	}
}
