package core

import "testing"

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.0", 1, true},
		{"10,5", 10.5, true},
		{"10,555", 10.56, true}, // half away from zero
		{"12.345", 12.35, true},
		{"1000,50", 1000.5, true},
		{"0", 0, true},
		{"-3,555", -3.56, true}, // negative rounds away from zero too
		{" 2.50 ", 2.5, true},
		{"0.004", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"  ", 0, false},
		{"12,34,56", 0, false},
	}
	for _, tc := range cases {
		got, err := NormalizeAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in  float64
		out float64
	}{
		{10.555, 10.56},
		{10.554, 10.55},
		{-10.555, -10.56},
		{1, 1},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.out {
			t.Fatalf("Round2(%v) expected %v, got %v", tc.in, tc.out, got)
		}
	}
}
