// Package domain models NCDC station history records and their CCAFS regions.
//
// # Data Source
//
// Station metadata comes from the NCDC integrated surface data (ISD) station
// history file, ftp://ftp.ncdc.noaa.gov/pub/data/noaa/isd-history.csv. Each row
// describes one station: a quoted six-digit USAF catalogue number (field 0), a
// quoted five-digit WBAN number (field 1), and quoted decimal-degree latitude
// and longitude (fields 6 and 7), among other columns this package ignores.
//
// # Station Identifiers
//
// A station is identified by its USAF and WBAN numbers joined with a hyphen,
// e.g. "029070-99999". The same identifier prefixes the per-station data files
// on the NCDC FTP site. Rows whose identifier does not match ^\d{6}-\d{5}$ are
// rejected; see [ParseStationRow].
//
// # CCAFS Regions
//
// Stations are bucketed into coarse CCAFS grid cells. The idealised region
// boundaries are:
//
//	     180W     120W     60W       0       60E      120E     180E
//	 90N  +--------+--------+--------+--------+--------+--------+
//	      |   A1   |   A2   |   A3   |   A4   |   A5   |   A6   |
//	 40N  +--------+--------+--------+--------+--------+--------+
//	      |   B1   |   B2   |   B3   |   B4   |   B5   |   B6   |
//	 10S  +--------+--------+--------+--------+--------+--------+
//	      |   C1   |   C2   |   C3   |   C4   |   C5   |   C6   |
//	 60S  +--------+--------+--------+--------+--------+--------+
//	      |                          D                          |
//	 90S  +-----------------------------------------------------+
//
// Anything south of 60S, and any coordinate pair that cannot be parsed at all,
// falls into region "D". Missing coordinates are common in the history file,
// so a parse failure demotes the station to "D" rather than rejecting the row.
//
// # Coordinate Conventions
//
// CCAFS longitudes live in the half-open interval [-180, +180) while NCDC uses
// (-180, +180], so an input longitude of magnitude 180 is normalised to -180
// before classification. Latitude 90N sits outside the idealised region A span
// of [+40, +90) but is still classified as "A": CCAFS cells are slightly taller
// than their nominal height due to round-off, which the duplicated "A" entry in
// the row table accounts for.
//
// Coordinates are truncated to whole degrees toward negative infinity, never
// toward zero: -0.5 is degree -1. See [TruncateDegrees].
package domain
