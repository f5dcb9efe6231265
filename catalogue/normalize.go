package catalogue

import "strings"

// NormalizeReserve converts a decimal reserve string into the integer form
// the storage layer persists: the decimal point is removed while preserving
// digit order, trailing zeros in the fractional part are collapsed first (so
// they don't become spurious trailing digits), and leading zeros are
// stripped from the result (see §8 test case 8.4).
func NormalizeReserve(s string) string {
	if s == "" {
		return "0"
	}

	intPart, fracPart := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx+1:]
	}

	fracPart = strings.TrimRight(fracPart, "0")
	combined := strings.TrimLeft(intPart+fracPart, "0")
	if combined == "" {
		return "0"
	}
	return combined
}
