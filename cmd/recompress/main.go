// Command recompress combines downloaded NCDC data files by CCAFS region and
// recompresses them as bzip2 archives, one per region. The station-to-region
// mapping is driven by a lookup file created by genregions.
//
// Usage:
//
//	recompress [-w workers] [-r station_regions.txt] [-q|-v] \
//	  source_dir output_pattern start_year end_year
//
// source_dir holds one subdirectory of gzipped station files per year; the
// output pattern names the per-region archives, e.g. 'ncdc_%s.bz2'. When
// HTTP_ADDR is set, /healthz, /readyz, and /metrics are served for the
// duration of the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	httpadapter "github.com/wxarchive/ncdc-regions/internal/adapter/http"
	"github.com/wxarchive/ncdc-regions/internal/config"
	"github.com/wxarchive/ncdc-regions/internal/observability"
	"github.com/wxarchive/ncdc-regions/internal/recompress"
	"github.com/wxarchive/ncdc-regions/internal/regionmap"
)

// runState tracks the run phase for the readiness endpoint.
type runState struct {
	mu    sync.Mutex
	phase string
	err   error
}

func (s *runState) set(phase string) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

func (s *runState) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *runState) status() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase, s.err
}

func main() {
	workers := flag.Int("w", 1, "number of worker tasks")
	mapPath := flag.String("r", "station_regions.txt", "file of station-to-region mappings")
	quiet := flag.Bool("q", false, "suppress normal output")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] source_dir output_pattern start_year end_year\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(2)
	}
	sourceDir := flag.Arg(0)
	outputPattern := flag.Arg(1)
	startYear, errStart := strconv.Atoi(flag.Arg(2))
	endYear, errEnd := strconv.Atoi(flag.Arg(3))
	if errStart != nil || errEnd != nil || startYear > endYear {
		fmt.Fprintln(os.Stderr, "start_year and end_year must be integers with start_year <= end_year")
		os.Exit(2)
	}
	if !strings.Contains(outputPattern, "%s") {
		fmt.Fprintf(os.Stderr, "output_pattern must contain a %%s placeholder, e.g. 'ncdc_%%s.bz2'\n")
		os.Exit(2)
	}

	level, err := logLevelOverride(*quiet, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if level != "" {
		cfg.LogLevel = level
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	state := &runState{phase: "starting"}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, state.status, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	code := run(ctx, runArgs{
		sourceDir:     sourceDir,
		outputPattern: outputPattern,
		startYear:     startYear,
		endYear:       endYear,
		mapPath:       *mapPath,
		workers:       *workers,
	}, state, logger, metrics)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	os.Exit(code)
}

// logLevelOverride maps the -q/-v flags onto a log level overriding
// LOG_LEVEL. The flags are mutually exclusive.
func logLevelOverride(quiet, verbose bool) (string, error) {
	switch {
	case quiet && verbose:
		return "", errors.New("-q and -v are mutually exclusive")
	case quiet:
		return "error", nil
	case verbose:
		return "debug", nil
	}
	return "", nil
}

type runArgs struct {
	sourceDir     string
	outputPattern string
	startYear     int
	endYear       int
	mapPath       string
	workers       int
}

func run(ctx context.Context, args runArgs, state *runState, logger *slog.Logger, metrics *observability.Metrics) int {
	start := time.Now()

	regions, err := regionmap.Load(args.mapPath)
	if err != nil {
		state.fail(err)
		logger.Error("loading region map failed", "error", err)
		return 1
	}
	logger.Info("region map loaded", "mappings", len(regions), "path", args.mapPath)

	state.set("scanning")
	details, err := recompress.Scan(args.sourceDir, args.startYear, args.endYear, regions, logger, metrics)
	if err != nil {
		state.fail(err)
		logger.Error("input scan failed", "error", err)
		return 1
	}

	jobs := recompress.BuildJobs(details, args.outputPattern)

	state.set("compressing")
	rc := recompress.New(args.workers, logger, metrics)
	if err := rc.Run(ctx, jobs); err != nil {
		state.fail(err)
		logger.Error("recompression failed", "error", err)
		return 1
	}

	state.set("done")
	logger.Info("done", "archives", len(jobs), "elapsed", time.Since(start))
	return 0
}
