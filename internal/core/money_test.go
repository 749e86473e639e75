package core

import "testing"

func TestUnitsFromUnitsRoundTrip(t *testing.T) {
	cases := []Money{
		{0, 0, 0},
		{1, 0, 0},
		{2, 3, 4},
		{0, 15, 0},  // denormalized silver
		{3, 27, 41}, // everything out of range
	}
	for _, m := range cases {
		total := m.Units()
		norm := FromUnits(total)
		if norm.Units() != total {
			t.Fatalf("%+v: round trip changed value: %d != %d", m, norm.Units(), total)
		}
		if norm.Silver > 9 || norm.Copper > 9 {
			t.Fatalf("%+v: FromUnits not normalized: %+v", m, norm)
		}
	}
}

func TestFromUnitsExact(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 99, 100, 234, 1500} {
		if got := FromUnits(n).Units(); got != n {
			t.Fatalf("FromUnits(%d).Units() = %d", n, got)
		}
	}
	if got := FromUnits(234); got != (Money{Gold: 2, Silver: 3, Copper: 4}) {
		t.Fatalf("FromUnits(234) = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		m    Money
		want string
	}{
		{Money{}, "0 copper"},
		{Money{Gold: 1}, "1 gold"},
		{Money{Gold: 2, Silver: 3, Copper: 4}, "2 gold, 3 silver, 4 copper"},
		{Money{Silver: 15}, "15 silver"},
		{Money{Gold: 1, Copper: 5}, "1 gold, 5 copper"},
	}
	for _, tc := range cases {
		if got := tc.m.Format(); got != tc.want {
			t.Fatalf("Format(%+v) = %q, want %q", tc.m, got, tc.want)
		}
	}
}

func TestParseCoinField(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{" 7 ", 7},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
		{"3.5", 0},
	}
	for _, tc := range cases {
		if got := ParseCoinField(tc.in); got != tc.want {
			t.Fatalf("ParseCoinField(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Gold: 1, Silver: 15}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Gold: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative gold")
	}
}
