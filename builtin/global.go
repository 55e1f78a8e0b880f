package builtin

import (
	"math"
	"strconv"
	"strings"

	"github.com/arjunmenon/ecmalite/value"
)

// parseIntFn implements the global parseInt(string, radix): skips
// leading whitespace, accepts an optional sign, an optional "0x"/"0X"
// prefix when radix is 0 or 16, and stops at the first non-digit
// rather than erroring, matching the language's lenient prefix parse.
func parseIntFn(this value.Value, args []value.Value) (value.Value, error) {
	s := strings.TrimSpace(argAt(args, 0).String())
	radix := 0
	if len(args) > 1 {
		radix = toInt(args[1])
	}
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if radix == 0 || radix == 16 {
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			radix = 16
		}
	}
	if radix == 0 {
		radix = 10
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return value.Number(math.NaN()), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return value.Number(math.NaN()), nil
	}
	f := float64(n)
	if neg {
		f = -f
	}
	return value.Number(f), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

// parseFloatFn implements the global parseFloat(string): parses the
// longest valid floating-point prefix, returning NaN if none exists.
func parseFloatFn(this value.Value, args []value.Value) (value.Value, error) {
	s := strings.TrimSpace(argAt(args, 0).String())
	end := 0
	sawDigit := false
	sawDot := false
	sawExp := false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case (c == 'e' || c == 'E') && sawDigit && !sawExp:
			sawExp = true
		default:
			goto done
		}
		end++
	}
done:
	if !sawDigit {
		return value.Number(math.NaN()), nil
	}
	f, err := strconv.ParseFloat(strings.TrimRight(s[:end], "eE+-"), 64)
	if err != nil {
		return value.Number(math.NaN()), nil
	}
	return value.Number(f), nil
}

func isNaNFn(this value.Value, args []value.Value) (value.Value, error) {
	n := value.ToNumber(argAt(args, 0))
	return value.BoolOf(math.IsNaN(float64(n))), nil
}

func isFiniteFn(this value.Value, args []value.Value) (value.Value, error) {
	n := float64(value.ToNumber(argAt(args, 0)))
	return value.BoolOf(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
}
