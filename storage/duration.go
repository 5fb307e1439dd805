package storage

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tasktimer/errs"
)

// durationUnits lists the literal units from largest to smallest.
var durationUnits = []struct {
	symbol  byte
	seconds int64
}{
	{'d', 86400},
	{'h', 3600},
	{'m', 60},
	{'s', 1},
}

func unitRank(symbol byte) int {
	for i, u := range durationUnits {
		if u.symbol == symbol {
			return i
		}
	}
	return -1
}

// ParseDuration converts a literal such as "45h30m", "5m" or "1d2h3m4s" into
// seconds. Units must appear at most once and in decreasing order.
func ParseDuration(text string) (int64, error) {
	if text == "" {
		return 0, errs.InvalidDuration(text, "empty literal")
	}

	var total int64
	lastRank := -1
	i := 0
	for i < len(text) {
		start := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		if start == i {
			return 0, errs.InvalidDuration(text, fmt.Sprintf("expected digits at position %d", start))
		}
		if i == len(text) {
			return 0, errs.InvalidDuration(text, "missing unit after "+text[start:i])
		}

		rank := unitRank(text[i])
		if rank < 0 {
			return 0, errs.InvalidDuration(text, fmt.Sprintf("unknown unit %q", text[i]))
		}
		if rank <= lastRank {
			return 0, errs.InvalidDuration(text, fmt.Sprintf("unit %q repeated or out of order", text[i]))
		}
		lastRank = rank

		magnitude, err := strconv.ParseInt(text[start:i], 10, 64)
		if err != nil {
			return 0, errs.InvalidDuration(text, "magnitude out of range")
		}
		mult := durationUnits[rank].seconds
		if magnitude > (math.MaxInt64-total)/mult {
			return 0, errs.InvalidDuration(text, "total overflows")
		}
		total += magnitude * mult
		i++
	}

	return total, nil
}

// FormatDuration renders seconds as H:MM:SS. Hours are not wrapped at 24.
// Negative values render as zero.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

// FormatLiteral renders seconds in the literal grammar accepted by
// ParseDuration, omitting zero components ("1d21h30m", "90s" becomes "1m30s").
func FormatLiteral(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	var b strings.Builder
	for _, u := range durationUnits {
		if n := seconds / u.seconds; n > 0 {
			b.WriteString(strconv.FormatInt(n, 10))
			b.WriteByte(u.symbol)
			seconds -= n * u.seconds
		}
	}
	return b.String()
}
