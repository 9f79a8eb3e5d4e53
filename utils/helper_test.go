package utils

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "billing@acme.example", "user.name+tag@mail.example.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	invalid := []string{"", "no-at-sign", "a@b", "@example.com", "a b@example.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 {
		t.Fatalf("expected 3 unique values, got %v", got)
	}
}

func TestDateRanges(t *testing.T) {
	now := time.Now()

	start, end := GetTodayRange()
	if start.After(now) || end.Before(now) {
		t.Fatalf("today range [%s, %s] does not contain now", start, end)
	}

	start, end = GetThisWeekRange()
	if start.Weekday() != time.Sunday {
		t.Fatalf("week starts on %s, expected Sunday", start.Weekday())
	}
	if start.After(now) || end.Before(now) {
		t.Fatalf("week range [%s, %s] does not contain now", start, end)
	}

	start, end = GetThisMonthRange()
	if start.Day() != 1 {
		t.Fatalf("month range starts on day %d", start.Day())
	}
	if start.After(now) || end.Before(now) {
		t.Fatalf("month range [%s, %s] does not contain now", start, end)
	}
}
