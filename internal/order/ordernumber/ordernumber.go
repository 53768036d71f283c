// Package ordernumber formats and sequences the human-facing order
// numbers. A number is "ORD-" followed by the two-digit year, the
// two-digit month and a three-digit sequence that restarts every month.
package ordernumber

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const maxSequence = 999

// ErrSequenceExhausted means the month already holds 999 orders and no
// further number can be issued until the next month begins.
var ErrSequenceExhausted = errors.New("order_number_sequence_exhausted")

// Prefix returns the month-scoped prefix for t, e.g. "ORD-2503" for
// March 2025.
func Prefix(t time.Time) string {
	return "ORD-" + t.Format("0601")
}

// Format renders a full order number for the month of t.
func Format(t time.Time, seq int) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("order number sequence must be positive, got %d", seq)
	}
	if seq > maxSequence {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s%03d", Prefix(t), seq), nil
}

// NextSequence returns the sequence that follows the highest one found
// in existing. Entries that do not end in three digits are skipped.
func NextSequence(existing []string) int {
	max := 0
	for _, orderNo := range existing {
		if len(orderNo) < 3 {
			continue
		}
		n, err := strconv.Atoi(orderNo[len(orderNo)-3:])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
