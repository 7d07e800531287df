package utils

import (
	"fmt"
	"math/big"
	"strings"
)

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// MaskAddress shortens an address for display with the default 6/4 split,
// e.g. "0xAb58...eC9B" style output.
func MaskAddress(address string) string {
	return MaskAddressWith(address, 6, 4)
}

// MaskAddressWith returns prefix + "..." + suffix of the address. When the
// address is no longer than prefixLen+suffixLen there is nothing meaningful
// to hide and the input is returned unchanged.
func MaskAddressWith(address string, prefixLen, suffixLen int) string {
	if len(address) <= prefixLen+suffixLen {
		return address
	}
	return address[:prefixLen] + "..." + address[len(address)-suffixLen:]
}

// FormatWei converts a wei amount into an exact decimal ether string,
// trimming trailing zeros ("1500000000000000000" -> "1.5"). No floats are
// involved, so the output is lossless.
func FormatWei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	sign := ""
	abs := new(big.Int).Abs(wei)
	if wei.Sign() < 0 {
		sign = "-"
	}
	quo, rem := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	frac := strings.TrimRight(fmt.Sprintf("%018s", rem.String()), "0")
	if frac == "" {
		return sign + quo.String()
	}
	return sign + quo.String() + "." + frac
}

// ParseEther converts a decimal ether string into wei. The sign is
// preserved so callers can distinguish a negative amount from a malformed
// one. At most 18 fractional digits are representable.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	if len(fracPart) > 18 {
		return nil, fmt.Errorf("amount %q has more than 18 decimal places", s)
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("malformed amount %q", s)
		}
	}

	wei := new(big.Int)
	if intPart != "" {
		n, ok := new(big.Int).SetString(intPart, 10)
		if !ok {
			return nil, fmt.Errorf("malformed amount %q", s)
		}
		wei.Mul(n, weiPerEther)
	}
	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", 18-len(fracPart))
		n, ok := new(big.Int).SetString(padded, 10)
		if !ok {
			return nil, fmt.Errorf("malformed amount %q", s)
		}
		wei.Add(wei, n)
	}
	if neg {
		wei.Neg(wei)
	}
	return wei, nil
}

func TruncateString(str string, num int) string {
	if len(str) <= num {
		return str
	}
	if num <= 3 {
		return str[:num]
	}
	return str[0:num-3] + "..."
}

func AddCommas(s string) string {
	if len(s) == 0 {
		return s
	}
	parts := strings.Split(s, ".")
	integerPart := parts[0]
	sign := ""
	if strings.HasPrefix(integerPart, "-") {
		sign = "-"
		integerPart = integerPart[1:]
	}

	n := len(integerPart)
	if n <= 3 {
		return s
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := n % 3
	if remainder > 0 {
		result.WriteString(integerPart[:remainder])
		result.WriteString(",")
	}
	for i := remainder; i < n; i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(integerPart[i : i+3])
	}

	if len(parts) > 1 {
		result.WriteString(".")
		result.WriteString(parts[1])
	}
	return result.String()
}
