package domain

import (
	"errors"
	"fmt"
	"strings"
)

// minFields is the number of comma-separated fields a history row needs to
// carry both identifier fields (0, 1) and both coordinate fields (6, 7).
const minFields = 8

// ErrTooFewFields marks a row with fewer than the required comma-separated
// fields. Such rows are skipped entirely.
var ErrTooFewFields = errors.New("too few fields")

// InvalidStationError marks a row whose USAF-WBAN identifier does not match
// the expected pattern. Such rows are skipped entirely.
type InvalidStationError struct {
	Station string
}

func (e *InvalidStationError) Error() string {
	return fmt.Sprintf("invalid station %q", e.Station)
}

// StationRecord is one line of generator output: a station identifier paired
// with its CCAFS region code.
type StationRecord struct {
	ID     string
	Region string

	// Defaulted is set when Region is RegionOutside because the row's
	// coordinates failed to parse, rather than because they fell outside
	// the grid.
	Defaulted bool
}

// ParseStationRow converts one raw history CSV line into a StationRecord.
//
// The line is split on commas only; the history file quotes fields but never
// embeds commas inside them, so a CSV-dialect reader is not needed (and would
// not reproduce the unconditional one-character strip the format requires).
//
// A row with too few fields or a malformed station identifier returns
// ErrTooFewFields or *InvalidStationError and no record. A row whose
// coordinates fail to parse, for any reason, is still a valid record with its
// region defaulted to RegionOutside: many stations simply have no coordinates.
func ParseStationRow(line string) (StationRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) < minFields {
		return StationRecord{}, ErrTooFewFields
	}

	station := stripQuoted(fields[0]) + "-" + stripQuoted(fields[1])
	if !ValidStationID(station) {
		return StationRecord{}, &InvalidStationError{Station: station}
	}

	rec := StationRecord{ID: station, Region: RegionOutside, Defaulted: true}

	lat, errLat := ParseDegrees(stripQuoted(fields[6]))
	lon, errLon := ParseDegrees(stripQuoted(fields[7]))
	if errLat == nil && errLon == nil {
		rec.Region = Region(lat, lon)
		rec.Defaulted = false
	}
	return rec, nil
}
