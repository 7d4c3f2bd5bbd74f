package ljson

import (
	"math"
	"strconv"
	"strings"
)

// KeyString converts a table key into a JSON object key. Strings pass
// through, integers use their decimal form and floats the same shortest
// form Encode uses for real numbers. Other kinds fail with ErrUnsupportedKey.
//
// Distinct keys may share a result (Int(1) and String("1")); Options.KeyCollision
// decides what Encode does about it.
func KeyString(k Value) (string, error) {
	switch k.kind {
	case KindString:
		return k.s, nil
	case KindInt:
		return strconv.FormatInt(k.Int(), 10), nil
	case KindFloat:
		return formatFloat(k.Float()), nil
	}
	return "", ErrUnsupportedKey
}

// ParseKey rehydrates a JSON object key: text that the host would read as a
// number becomes an Int or Float key, anything else stays a String key.
// This cannot tell a source Int(1) from a source String("1"); both
// come back as Int(1).
func ParseKey(s string) Value {
	if v, ok := parseNumber(s); ok {
		return v
	}
	return String(s)
}

// parseNumber accepts the host's numeric literals: optional surrounding
// whitespace, decimal integers (Float on int64 overflow), hexadecimal
// integers with wraparound, and decimal or hexadecimal floats (0x1.8,
// 0x1p4). No inf, nan or underscores.
func parseNumber(s string) (Value, bool) {
	s = strings.Trim(s, " \t\n\v\f\r")
	if s == "" {
		return Nil, false
	}
	body, neg := s, false
	if body[0] == '-' || body[0] == '+' {
		neg = body[0] == '-'
		body = body[1:]
	}
	if len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		if strings.ContainsAny(body, ".pP") {
			return parseHexFloat(s, body[2:])
		}
		var u uint64
		for i := 2; i < len(body); i++ {
			d := unhex(body[i])
			if d < 0 {
				return Nil, false
			}
			u = u<<4 | uint64(d)
		}
		if neg {
			u = -u
		}
		return Int(int64(u)), true
	}
	if !isDecimal(body) {
		return Nil, false
	}
	if isDigits(body) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Nil, false
	}
	return Float(f), true
}

// parseHexFloat reads a hexadecimal float whose digits follow the 0x prefix.
// The binary exponent is optional, as the host allows.
func parseHexFloat(s, digits string) (Value, bool) {
	mant, exp, hasExp := strings.Cut(strings.ToLower(digits), "p")
	intPart, frac, _ := strings.Cut(mant, ".")
	if intPart+frac == "" || !isHex(intPart) || !isHex(frac) {
		return Nil, false
	}
	if hasExp {
		e := strings.TrimLeft(exp, "+-")
		if len(exp)-len(e) > 1 || !isDigits(e) || e == "" {
			return Nil, false
		}
	} else {
		s += "p0"
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Nil, false
	}
	return Float(f), true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if unhex(s[i]) < 0 {
			return false
		}
	}
	return true
}

// isDecimal matches [0-9]*(\.[0-9]*)?([eE][+-]?[0-9]+)? with at least one
// mantissa digit.
func isDecimal(s string) bool {
	i, digits := 0, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func unhex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
