package render

import (
	"strings"
	"testing"
)

func TestFormatPriceAlwaysTwoDecimals(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{899, "$899.00"},
		{899.5, "$899.50"},
		{0, "$0.00"},
		{12999.99, "$12,999.99"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.value); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatPriceWholeDropsDecimals(t *testing.T) {
	if got := FormatPriceWhole(12999.99); got != "$13,000" {
		t.Errorf("FormatPriceWhole(12999.99) = %q, want $13,000", got)
	}
	if got := FormatPriceWhole(899); got != "$899" {
		t.Errorf("FormatPriceWhole(899) = %q, want $899", got)
	}
}

// Every formatted price in a render uses the same policy; spot-check
// that the two-decimal form never leaks a bare integer.
func TestFormatPriceUniformPolicy(t *testing.T) {
	for _, v := range []float64{1, 10, 100, 100000} {
		got := FormatPrice(v)
		if !strings.Contains(got, ".") {
			t.Errorf("FormatPrice(%v) = %q, missing decimal part", v, got)
		}
	}
}
