package domain

import "regexp"

// stationIDRe matches the six-digit USAF catalogue number joined to the
// five-digit WBAN number, e.g. "029070-99999".
var stationIDRe = regexp.MustCompile(`^\d{6}-\d{5}$`)

// ValidStationID reports whether id is a well-formed USAF-WBAN station
// identifier.
func ValidStationID(id string) bool {
	return stationIDRe.MatchString(id)
}

// stripQuoted removes exactly one leading and one trailing character from a
// raw CSV field, mirroring how the history file wraps every field in double
// quotes. The strip is unconditional: a malformed unquoted field loses its
// outer characters too and is caught by validation downstream.
func stripQuoted(field string) string {
	if len(field) < 2 {
		return ""
	}
	return field[1 : len(field)-1]
}
