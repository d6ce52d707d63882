package recommend

import (
	"strconv"
	"strings"
)

// gradeOrdinal maps a catalog grade band to a comparable number: "Pre-K" is
// -1, "K" is 0, a plain grade is itself, a range averages its ends, and
// anything unparsable (high-school style bands like "Algebra I") sits at 10.
func gradeOrdinal(band string) float64 {
	const unparsable = 10

	s := strings.ToLower(strings.TrimSpace(band))
	s = strings.TrimPrefix(s, "grade ")
	switch s {
	case "":
		return unparsable
	case "pre-k", "prek", "pre-kindergarten":
		return -1
	case "k", "kindergarten":
		return 0
	}

	if n, err := strconv.Atoi(s); err == nil {
		return float64(n)
	}

	// Ranges like "6-8" average their endpoints.
	if parts := strings.Split(s, "-"); len(parts) == 2 {
		lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			return (float64(lo) + float64(hi)) / 2
		}
	}

	return unparsable
}
