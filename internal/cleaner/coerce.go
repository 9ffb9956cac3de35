package cleaner

import (
	"math"
	"strconv"
	"strings"
)

// truthyValues are the course_completion spellings that mean "completed".
// Everything else, including blanks, coerces to false.
var truthyValues = map[string]bool{
	"1":         true,
	"true":      true,
	"yes":       true,
	"completed": true,
}

// coerceBool maps a raw course_completion cell to a boolean.
// The second return reports whether the spelling was non-canonical.
func coerceBool(raw string) (value, coerced bool) {
	trimmed := strings.TrimSpace(raw)
	value = truthyValues[strings.ToLower(trimmed)]
	coerced = trimmed != "true" && trimmed != "false"
	return value, coerced
}

// coerceNumeric parses a raw numeric cell leniently. Percent columns accept
// "85.3%" and fraction renderings in (0,1), which are rescaled to 0-100.
// Unparseable cells come back as NaN. The coerced flag reports that the cell
// was readable but not in canonical form.
func coerceNumeric(raw string, percentColumn bool) (value float64, coerced, missing bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return math.NaN(), false, true
	}

	if strings.HasSuffix(trimmed, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64)
		if err != nil {
			return math.NaN(), false, true
		}
		return v, true, false
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		// Placeholders like "unknown" or "various" count as missing
		return math.NaN(), false, true
	}

	// Fractions of 1 in a percent column are percentages divided by 100.
	// Exactly 0 and exactly 1 are left alone: both are legal percentages
	// and rescaling them would not be idempotent.
	if percentColumn && v > 0 && v < 1 {
		return v * 100, true, false
	}

	return v, false, false
}
