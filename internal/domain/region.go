package domain

import "strconv"

// RegionOutside is the catch-all region for coordinates south of 60S, outside
// the grid entirely, or missing/unparseable in the source row.
const RegionOutside = "D"

// regionRows maps (lat+60)/50 to a row letter. "A" appears twice: latitude 90
// is outside the idealised row-A span of [+40, +90) but still belongs to row A
// because the real CCAFS cells are slightly taller than their nominal height.
var regionRows = [4]string{"C", "B", "A", "A"}

// Region classifies a whole-degree coordinate pair into a CCAFS region code:
// a row letter A-C and a column number 1-6, e.g. "A4", or RegionOutside for
// anything the grid does not cover. Inputs must already be truncated toward
// negative infinity (see TruncateDegrees). Region is total: it never fails.
func Region(lat, lon int) string {
	// NCDC longitudes are in (-180, +180], CCAFS ones in [-180, +180), so
	// fold a longitude of magnitude 180 onto -180. This also absorbs the
	// occasional invalid -180 in the history file.
	if lon == 180 || lon == -180 {
		lon = -180
	}
	if lat < -60 || lat > 90 || lon < -180 || lon > 179 {
		return RegionOutside
	}
	return regionRows[(lat+60)/50] + strconv.Itoa((lon+180)/60+1)
}

// ValidRegion reports whether code is a region code Region can produce.
func ValidRegion(code string) bool {
	if code == RegionOutside {
		return true
	}
	if len(code) != 2 {
		return false
	}
	return code[0] >= 'A' && code[0] <= 'C' && code[1] >= '1' && code[1] <= '6'
}
