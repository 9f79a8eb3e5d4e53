package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLooseDecimal_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"20000", "20000"},
		{"20,000", "20000"},
		{"INR 20,000", "20000"},
		{"Rs -20,000", "-20000"},
		{"  rs 1,234.50  ", "1234.5"},
		{"3", "3"},
		{"0.5", "0.5"},
	}
	for _, tc := range cases {
		d, ok := ParseLooseDecimal(tc.in)
		if !ok {
			t.Fatalf("ParseLooseDecimal(%q) not ok", tc.in)
		}
		if d.String() != tc.expected {
			t.Fatalf("ParseLooseDecimal(%q) expected %s, got %s", tc.in, tc.expected, d.String())
		}
	}
}

func TestParseLooseDecimal_MalformedDegradesToZero(t *testing.T) {
	cases := []string{"", "   ", "abc", "-", "..", "1.2.3"}
	for _, in := range cases {
		d, ok := ParseLooseDecimal(in)
		if ok {
			t.Fatalf("ParseLooseDecimal(%q) expected not ok", in)
		}
		if !d.IsZero() {
			t.Fatalf("ParseLooseDecimal(%q) expected zero, got %s", in, d)
		}
	}
}

func TestFormatGrouped(t *testing.T) {
	cases := []struct {
		in       string
		places   int
		expected string
	}{
		{"1234567.891", 2, "1,234,567.89"},
		{"1000", 2, "1,000.00"},
		{"999", 0, "999"},
		{"-20000", 2, "-20,000.00"},
		{"1234.5", -1, "1,234.5"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatGrouped(d, tc.places); got != tc.expected {
			t.Fatalf("FormatGrouped(%s, %d) expected %s, got %s", tc.in, tc.places, tc.expected, got)
		}
	}
}
