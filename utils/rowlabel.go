package utils

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRowIndex = errors.New("row index must be positive")

// EncodeRowLabel turns a 1-based row index into a spreadsheet style label:
// 1 -> A, 26 -> Z, 27 -> AA, 53 -> BA.
func EncodeRowLabel(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRowIndex, n)
	}
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func DecodeRowLabel(label string) (int, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, errors.New("row label is empty")
	}
	n := 0
	for _, ch := range label {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid row label %q", label)
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n, nil
}
