package service

import (
	"fmt"
	"time"
	"unicode"
)

// French short month names as rendered by the employee-facing UI.
var frShortMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// FormatDate renders an ISO calendar date the way the bill list shows
// it: day without leading zero, capitalized 3-letter French month with
// a trailing dot, 2-digit year ("2023-01-01" -> "1 Jan. 23"). The
// input is never mutated; malformed dates yield an error and the
// caller decides the fallback.
func FormatDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("unparsable date %q: %w", s, err)
	}

	mo := []rune(frShortMonths[t.Month()-1])
	abbr := string(unicode.ToUpper(mo[0])) + string(mo[1:3]) + "."

	return fmt.Sprintf("%d %s %02d", t.Day(), abbr, t.Year()%100), nil
}

// FormatStatus translates a bill status for display. Total on any
// input: unknown values pass through unchanged.
func FormatStatus(status string) string {
	switch status {
	case "pending":
		return "En attente"
	case "accepted":
		return "Accepté"
	case "refused":
		return "Refusé"
	default:
		return status
	}
}
