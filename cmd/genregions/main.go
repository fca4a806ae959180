// Command genregions parses the NCDC station history CSV and generates a
// tab-delimited file of station to CCAFS region pairs, e.g.
// "029070-99999<tab>A4".
//
// Usage:
//
//	genregions < isd-history.csv > station_regions.txt
//
// There are no flags; behaviour is fully determined by stdin. Skipped rows
// are reported on stderr and never abort the run.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wxarchive/ncdc-regions/internal/config"
	"github.com/wxarchive/ncdc-regions/internal/observability"
	"github.com/wxarchive/ncdc-regions/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	g := pipeline.New(filepath.Base(os.Args[0]), cfg.DataSourceURL, logger, metrics)

	if err := g.Run(os.Stdin, os.Stdout); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}
