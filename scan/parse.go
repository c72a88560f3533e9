package scan

import (
	"bytes"
	"fmt"
)

// ParseTemp decodes a fixed-format value: an optional minus sign, one or
// two integer digits, a decimal point and exactly one fractional digit.
// The digits are combined as integer tenths and only converted to a float
// at the end.
func ParseTemp(b []byte) (float64, error) {
	t, err := parseTenths(b)
	if err != nil {
		return 0, err
	}
	return float64(t) / 10, nil
}

func parseTenths(b []byte) (int32, error) {
	neg := len(b) > 0 && b[0] == '-'

	var digits [3]byte
	var dot byte
	switch l := len(b); {
	case !neg && l == 3:
		digits, dot = [3]byte{'0', b[0], b[2]}, b[1]
	case !neg && l == 4:
		digits, dot = [3]byte{b[0], b[1], b[3]}, b[2]
	case neg && l == 4:
		digits, dot = [3]byte{'0', b[1], b[3]}, b[2]
	case neg && l == 5:
		digits, dot = [3]byte{b[1], b[2], b[4]}, b[3]
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadValue, b)
	}
	if dot != '.' {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, b)
	}

	var temp int32
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadValue, b)
		}
		temp = temp*10 + int32(d-'0')
	}
	if neg {
		temp = -temp
	}
	return temp, nil
}

// ParseRow splits a line (without its newline) at the first delimiter and
// parses the value that follows it.
func ParseRow(line []byte, delim byte) ([]byte, float64, error) {
	i := bytes.IndexByte(line, delim)
	if i < 0 {
		return nil, 0, fmt.Errorf("%w: %q", ErrNoDelimiter, line)
	}
	temp, err := ParseTemp(line[i+1:])
	if err != nil {
		return nil, 0, fmt.Errorf("unable to parse row %q: %w", line, err)
	}
	return line[:i], temp, nil
}
