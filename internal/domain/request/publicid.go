package request

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var publicIDRegex = regexp.MustCompile(`^([0-9]{4,})-([0-9]{6,})$`)

// FormatPublicID renders year and sequence as YYYY-NNNNNN.
func FormatPublicID(year int, seq int64) string {
	return fmt.Sprintf("%d-%06d", year, seq)
}

// ParsePublicID splits a tracking number into its year and sequence.
func ParsePublicID(s string) (int, int64, error) {
	m := publicIDRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid public ID format: %q", s)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid public ID year: %w", err)
	}
	seq, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid public ID sequence: %w", err)
	}
	if seq == 0 {
		return 0, 0, fmt.Errorf("invalid public ID sequence: %q", s)
	}
	return year, seq, nil
}
