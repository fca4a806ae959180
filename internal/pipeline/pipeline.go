// Package pipeline turns the NCDC station history CSV into the tab-delimited
// station-region lookup file consumed by the recompressor.
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/wxarchive/ncdc-regions/internal/domain"
	"github.com/wxarchive/ncdc-regions/internal/observability"
)

// Generator performs the single-pass history-to-regions transformation.
// Per-row failures are logged and recovered; only I/O errors are fatal.
type Generator struct {
	tool    string
	source  string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Generator. tool and source appear in the output banner: the
// generating command's name and the URL the input file was obtained from.
func New(tool, source string, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	return &Generator{
		tool:    tool,
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// Run reads history rows from r and writes one "station<TAB>region" line per
// valid row to w, in input order, preceded by a two-line provenance banner.
// The first input line is the header and is skipped without inspection.
//
// The run is strictly sequential over a finite stream, so there is no
// context: it either completes or fails on an unrecoverable I/O error.
func (g *Generator) Run(r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "# Generated by %s at %s using data\n",
		g.tool, domain.Now().Format(time.ANSIC))
	fmt.Fprintf(out, "# from %s\n", g.source)

	var written, skipped int

	scanner := bufio.NewScanner(r)
	// History rows are a few hundred bytes at most. A row over the 1 MiB cap
	// means the input is not line-oriented at all, and the run fails as a
	// read error rather than skipping per-record.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		// Skip header line
		if lineNum == 1 {
			continue
		}
		g.metrics.RowsRead.Inc()

		rec, err := domain.ParseStationRow(scanner.Text())
		if err != nil {
			g.diagnose(err, lineNum)
			skipped++
			continue
		}

		if rec.Defaulted {
			// Lots of stations are missing coordinates; this is routine,
			// so it stays below the default log level.
			g.logger.Debug("coordinates unparseable, defaulting region",
				"station", rec.ID, "line", lineNum)
			g.metrics.CoordinatesDefaulted.Inc()
		}

		fmt.Fprintf(out, "%s\t%s\n", rec.ID, rec.Region)
		g.metrics.RecordsWritten.Inc()
		g.metrics.RegionsAssigned.WithLabelValues(rec.Region).Inc()
		written++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	g.logger.Info("generation complete",
		"rows", lineNum, "records", written, "skipped", skipped)
	return nil
}

// diagnose logs one skipped row with its 1-based line number.
func (g *Generator) diagnose(err error, lineNum int) {
	var invalid *domain.InvalidStationError
	switch {
	case errors.Is(err, domain.ErrTooFewFields):
		g.logger.Warn("too few fields", "line", lineNum)
		g.metrics.RowsSkipped.WithLabelValues(observability.SkipTooFewFields).Inc()
	case errors.As(err, &invalid):
		g.logger.Warn("invalid station", "station", invalid.Station, "line", lineNum)
		g.metrics.RowsSkipped.WithLabelValues(observability.SkipInvalidStation).Inc()
	default:
		g.logger.Warn("bad row", "error", err, "line", lineNum)
	}
}
