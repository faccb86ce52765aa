package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
)

const dayLayout = "2006-01-02"

// ParseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date, which
// is taken as UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dayLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, raw)
}

// ParseOptionalDate parses raw when it is non-empty.
func ParseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
