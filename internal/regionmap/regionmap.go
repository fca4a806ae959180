// Package regionmap loads the station-to-region lookup file produced by
// gen-station-regions.
package regionmap

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RegionUnmapped is the pseudo-region for stations absent from the mapping,
// i.e. stations with data files but no row in the history CSV.
const RegionUnmapped = "E"

// Map holds station-to-region assignments keyed by station identifier.
type Map map[string]string

// Load reads a mapping file. Blank lines and "#" comment lines (the
// generator's banner) are skipped; every other line must start with a station
// identifier and a region code separated by whitespace. Trailing fields are
// ignored.
func Load(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region map: %w", err)
	}
	defer f.Close()

	m := make(Map)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("region map %s line %d: want station and region, got %q", path, lineNum, line)
		}
		m[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read region map: %w", err)
	}
	return m, nil
}

// Region returns the region for a station, or RegionUnmapped if the station
// has no mapping.
func (m Map) Region(station string) string {
	if region, ok := m[station]; ok {
		return region
	}
	return RegionUnmapped
}
