package playerstats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMinutes converts the upstream minutes string (ISO-8601 duration
// shaped like "PT36M12.00S") into a time.Duration. Empty input means
// the player did not enter the game and parses to zero.
func ParseMinutes(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}

	rest, ok := strings.CutPrefix(value, "PT")
	if !ok {
		return 0, fmt.Errorf("invalid minutes value %q", raw)
	}

	var out time.Duration
	if idx := strings.Index(rest, "M"); idx >= 0 {
		minutes, err := strconv.Atoi(rest[:idx])
		if err != nil || minutes < 0 {
			return 0, fmt.Errorf("invalid minutes component in %q", raw)
		}
		out += time.Duration(minutes) * time.Minute
		rest = rest[idx+1:]
	}
	if idx := strings.Index(rest, "S"); idx >= 0 {
		seconds, err := strconv.ParseFloat(rest[:idx], 64)
		if err != nil || seconds < 0 {
			return 0, fmt.Errorf("invalid seconds component in %q", raw)
		}
		out += time.Duration(seconds * float64(time.Second))
		rest = rest[idx+1:]
	}
	if strings.TrimSpace(rest) != "" {
		return 0, fmt.Errorf("invalid minutes value %q", raw)
	}

	return out, nil
}

// FormatMinutes renders a duration as a Postgres interval literal.
func FormatMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
