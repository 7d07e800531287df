package utils

import (
	"math/big"
	"testing"
)

func TestMaskAddress(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B", "0xAb58...eC9B"},
		{"0x12345678", "0x12345678"}, // <= 10 chars, nothing to hide
		{"0123456789", "0123456789"},
		{"", ""},
	}

	for _, tt := range tests {
		result := MaskAddress(tt.input)
		if result != tt.expected {
			t.Errorf("MaskAddress(%q) = %q; want %q", tt.input, result, tt.expected)
		}
	}
}

func TestMaskAddressWith(t *testing.T) {
	addr := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	result := MaskAddressWith(addr, 8, 6)
	if len(result) != 8+3+6 {
		t.Errorf("MaskAddressWith length = %d; want %d", len(result), 8+3+6)
	}
	if result[:8] != addr[:8] {
		t.Errorf("prefix %q does not match original", result[:8])
	}
	if result[len(result)-6:] != addr[len(addr)-6:] {
		t.Errorf("suffix %q does not match original", result[len(result)-6:])
	}
}

func TestFormatWei(t *testing.T) {
	wei := func(s string) *big.Int {
		n, _ := new(big.Int).SetString(s, 10)
		return n
	}
	tests := []struct {
		input    *big.Int
		expected string
	}{
		{wei("0"), "0"},
		{wei("1000000000000000000"), "1"},
		{wei("1500000000000000000"), "1.5"},
		{wei("1"), "0.000000000000000001"},
		{wei("1234567890000000000000"), "1234.56789"},
		{wei("-2500000000000000000"), "-2.5"},
		{nil, "0"},
	}

	for _, tt := range tests {
		result := FormatWei(tt.input)
		if result != tt.expected {
			t.Errorf("FormatWei(%v) = %q; want %q", tt.input, result, tt.expected)
		}
	}
}

func TestParseEther(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1", "1000000000000000000", false},
		{"1.5", "1500000000000000000", false},
		{"0.000000000000000001", "1", false},
		{".5", "500000000000000000", false},
		{"0", "0", false},
		{"-1", "-1000000000000000000", false},
		{" 2 ", "2000000000000000000", false},
		{"", "", true},
		{"abc", "", true},
		{"1.2.3", "", true},
		{"1,5", "", true},
		{"0.0000000000000000001", "", true}, // 19 decimals
		{".", "", true},
	}

	for _, tt := range tests {
		result, err := ParseEther(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseEther(%q) expected error, got %v", tt.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEther(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if result.String() != tt.expected {
			t.Errorf("ParseEther(%q) = %s; want %s", tt.input, result.String(), tt.expected)
		}
	}
}

func TestParseEtherFormatWeiRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "0.5", "123.456789", "0.000000000000000001"} {
		wei, err := ParseEther(s)
		if err != nil {
			t.Fatalf("ParseEther(%q): %v", s, err)
		}
		if got := FormatWei(wei); got != s {
			t.Errorf("FormatWei(ParseEther(%q)) = %q", s, got)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		length   int
		expected string
	}{
		{"hello world", 5, "he..."},
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"", 5, ""},
		{"abc", 2, "ab"},
		{"abc", 3, "abc"},
	}

	for _, tt := range tests {
		result := TruncateString(tt.input, tt.length)
		if result != tt.expected {
			t.Errorf("TruncateString(%q, %d) = %q; want %q", tt.input, tt.length, result, tt.expected)
		}
	}
}

func TestAddCommas(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"1234.56", "1,234.56"},
		{"-1234", "-1,234"},
		{"", ""},
	}

	for _, tt := range tests {
		result := AddCommas(tt.input)
		if result != tt.expected {
			t.Errorf("AddCommas(%q) = %q; want %q", tt.input, result, tt.expected)
		}
	}
}
