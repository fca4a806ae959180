// Package recompress combines per-station NCDC data files into one bzip2
// archive per CCAFS region, driven by the lookup file from gen-station-regions.
package recompress

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wxarchive/ncdc-regions/internal/observability"
	"github.com/wxarchive/ncdc-regions/internal/regionmap"
)

// InputFile is one gzipped station-year file found during the scan.
type InputFile struct {
	Path string
	Size int64
}

// Scan walks <sourceDir>/<year>/*.gz for the given year range and groups the
// files by region. Filenames follow the NCDC convention
// <station>-<year>.gz, so the station is the basename minus its last eight
// characters. Stations missing from the mapping land in the pseudo-region
// regionmap.RegionUnmapped.
func Scan(sourceDir string, startYear, endYear int, regions regionmap.Map, logger *slog.Logger, metrics *observability.Metrics) (map[string][]InputFile, error) {
	details := make(map[string][]InputFile)
	for year := startYear; year <= endYear; year++ {
		dir := filepath.Join(sourceDir, strconv.Itoa(year))
		logger.Info("scanning", "dir", dir)

		paths, err := filepath.Glob(filepath.Join(dir, "*.gz"))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, path := range paths {
			base := filepath.Base(path)
			var station string
			if len(base) > 8 {
				station = base[:len(base)-8] // strip "-YYYY.gz"
			}

			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", dir, err)
			}

			region := regions.Region(station)
			details[region] = append(details[region], InputFile{Path: path, Size: info.Size()})
			metrics.FilesScanned.Inc()
		}
	}
	return details, nil
}
