package invoice

import (
	"math"
	"testing"
)

func TestFormatter_Money(t *testing.T) {
	indian := Formatter{Currency: "₹", Grouping: GroupingIndian}
	western := Formatter{Currency: "$", Grouping: GroupingWestern}

	tests := []struct {
		name   string
		f      Formatter
		input  float64
		expect string
	}{
		{"zero", indian, 0, "₹ 0.00"},
		{"hundreds", indian, 999.99, "₹ 999.99"},
		{"thousands", indian, 1234.56, "₹ 1,234.56"},
		{"lakhs", indian, 123456.78, "₹ 1,23,456.78"},
		{"crores", indian, 12345678.9, "₹ 1,23,45,678.90"},
		{"half rounds up", indian, 0.125, "₹ 0.13"},
		{"negative", indian, -250000.5, "₹ -2,50,000.50"},
		{"western thousands", western, 1234.5, "$ 1,234.50"},
		{"western millions", western, 12345678.9, "$ 12,345,678.90"},
		{"western negative", western, -1500, "$ -1,500.00"},
		{"no currency", Formatter{}, 1000, "1,000.00"},
		{"not a number", indian, math.NaN(), Dash},
		{"infinite", indian, math.Inf(1), Dash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f.Money(tt.input)
			if got != tt.expect {
				t.Errorf("Money(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatter_Number(t *testing.T) {
	f := Formatter{Grouping: GroupingIndian}

	tests := []struct {
		input  float64
		expect string
	}{
		{0, "0"},
		{12.5, "12.5"},
		{1000, "1,000"},
		{1234.567, "1,234.57"},
		{250000, "2,50,000"},
	}

	for _, tt := range tests {
		if got := f.Number(tt.input); got != tt.expect {
			t.Errorf("Number(%v) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(7); got != "7.00" {
		t.Errorf("Percent(7) = %q", got)
	}
	if got := Percent(12.345); got != "12.35" {
		t.Errorf("Percent(12.345) = %q", got)
	}
}

func TestParseGrouping(t *testing.T) {
	if ParseGrouping("Western") != GroupingWestern {
		t.Error("expected western grouping")
	}
	if ParseGrouping("") != GroupingIndian || ParseGrouping("metric") != GroupingIndian {
		t.Error("expected indian grouping by default")
	}
}

func TestApplyIndianGrouping(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"5", "5"},
		{"999", "999"},
		{"1234", "1,234"},
		{"123456", "1,23,456"},
		{"12345678", "1,23,45,678"},
		{"1234567890", "1,23,45,67,890"},
	}

	for _, tt := range tests {
		if got := applyIndianGrouping(tt.input); got != tt.expect {
			t.Errorf("applyIndianGrouping(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
