package translator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// parseFloat reads the longest decimal number at the start of a hub value and
// ignores the rest ("21.5abc" is 21.5, "5 W" is 5). Text with no leading
// number yields NaN rather than an error.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	sign, rest := splitSign(s)
	if strings.HasPrefix(rest, "Infinity") {
		return math.Inf(sign)
	}

	i := digits(rest, 0)
	hasDigits := i > 0
	if i < len(rest) && rest[i] == '.' {
		if j := digits(rest, i+1); j > i+1 || hasDigits {
			hasDigits = true
			i = j
		}
	}
	if !hasDigits {
		return math.NaN()
	}
	if i < len(rest) && (rest[i] == 'e' || rest[i] == 'E') {
		j := i + 1
		if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
			j++
		}
		if k := digits(rest, j); k > j {
			i = k
		}
	}

	f, err := strconv.ParseFloat(rest[:i], 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	if sign < 0 {
		f = -f
	}
	return f
}

// parseInt reads the leading integer of a hub value. Parsing stops at the
// first non-digit, so "50.7" is 50, "1e2" is 1 and "50%" is 50. A "0x" prefix
// switches to hexadecimal.
func parseInt(s string) float64 {
	s = strings.TrimSpace(s)
	sign, rest := splitSign(s)

	base := 10
	if len(rest) > 1 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		base = 16
		rest = rest[2:]
	}

	var n float64
	i := 0
	for ; i < len(rest); i++ {
		d := digitValue(rest[i])
		if d >= base {
			break
		}
		n = n*float64(base) + float64(d)
	}
	if i == 0 {
		return math.NaN()
	}
	return float64(sign) * n
}

func splitSign(s string) (int, string) {
	if s != "" {
		switch s[0] {
		case '-':
			return -1, s[1:]
		case '+':
			return 1, s[1:]
		}
	}
	return 1, s
}

// digits returns the index of the first non-decimal-digit at or after i.
func digits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

func isRangeErr(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && numErr.Err == strconv.ErrRange
}
