package domain

import (
	"math"
	"strconv"
	"strings"
)

// TruncateDegrees truncates a decimal-degree value to a whole degree toward
// negative infinity, so -0.5 becomes -1 rather than 0. Truncation toward zero
// would misplace every station between one degree west/south of a grid line
// and the line itself.
func TruncateDegrees(v float64) int {
	return int(math.Floor(v))
}

// ParseDegrees parses a decimal-degree field (already stripped of its CSV
// quotes) and truncates it toward negative infinity.
func ParseDegrees(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return TruncateDegrees(v), nil
}
