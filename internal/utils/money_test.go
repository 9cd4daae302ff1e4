package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.50", "2.5"},
		{"2,50", "2.5"},
		{" 0.0199 ", "0.0199"},
		{"", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
		{"-3.10", "-3.1"},
	}
	for _, c := range cases {
		got := ParseMoney(c.in)
		if got.String() != c.want {
			t.Errorf("ParseMoney(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestRoundAmountConservation(t *testing.T) {
	d := decimal.RequireFromString("10.3456")
	rounded, rem := RoundAmount(d)
	if rounded.String() != "10.35" {
		t.Errorf("rounded = %s", rounded)
	}
	if !rounded.Add(rem).Equal(d) {
		t.Errorf("rounded+remainder = %s, want %s", rounded.Add(rem), d)
	}
}

func TestPercent(t *testing.T) {
	amount := decimal.RequireFromString("100")
	rate := decimal.RequireFromString("2.5")
	if got := Percent(amount, rate); got.String() != "2.5" {
		t.Errorf("Percent = %s", got)
	}
}
