package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"950", "950.00"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"-52000", "-52,000.00"},
		{"999.999", "1,000.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(dec(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyEU(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"1234.5", "1.234,50"},
		{"1234567.891", "1.234.567,89"},
		{"-52000", "-52.000,00"},
	}

	for _, tt := range tests {
		if got := FormatMoneyEU(dec(tt.in)); got != tt.want {
			t.Errorf("FormatMoneyEU(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"950", "950"},
		{"9999", "9999"},
		{"12345", "12.3K"},
		{"-52000", "-52.0K"},
		{"1234567", "1.2M"},
		{"2500000000", "2.5B"},
	}

	for _, tt := range tests {
		if got := FormatCompact(dec(tt.in)); got != tt.want {
			t.Errorf("FormatCompact(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUsers(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatUsers(tt.in); got != tt.want {
			t.Errorf("FormatUsers(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.0%"},
		{"0.125", "12.5%"},
		{"1", "100.0%"},
		{"-0.078", "-7.8%"},
	}

	for _, tt := range tests {
		if got := FormatPercent(dec(tt.in)); got != tt.want {
			t.Errorf("FormatPercent(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(dec("1500"), dec("1000")); got != "+500.00" {
		t.Errorf("positive delta = %q, want %q", got, "+500.00")
	}
	if got := FormatDelta(dec("1000"), dec("1500")); got != "-500.00" {
		t.Errorf("negative delta = %q, want %q", got, "-500.00")
	}
	if got := FormatDelta(dec("1000"), dec("1000")); got != "+0.00" {
		t.Errorf("zero delta = %q, want %q", got, "+0.00")
	}
}

func TestFloats(t *testing.T) {
	got := Floats([]decimal.Decimal{dec("1.5"), dec("-2"), dec("0")})
	want := []float64{1.5, -2, 0}
	if len(got) != len(want) {
		t.Fatalf("Floats returned %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Floats[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
