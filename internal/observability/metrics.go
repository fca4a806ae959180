package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons for the RowsSkipped counter.
const (
	SkipTooFewFields   = "too_few_fields"
	SkipInvalidStation = "invalid_station"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// region generator and the recompressor.
type Metrics struct {
	RowsRead             prometheus.Counter
	RecordsWritten       prometheus.Counter
	RowsSkipped          *prometheus.CounterVec // labels: reason={too_few_fields,invalid_station}
	CoordinatesDefaulted prometheus.Counter
	RegionsAssigned      *prometheus.CounterVec // labels: region

	// Recompression metrics.
	FilesScanned     prometheus.Counter
	ArchivesCreated  prometheus.Counter
	BytesCompressed  prometheus.Counter
	CompressDuration prometheus.Histogram
	ActiveWorkers    prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RecordsWritten,
		m.RowsSkipped,
		m.CoordinatesDefaulted,
		m.RegionsAssigned,
		m.FilesScanned,
		m.ArchivesCreated,
		m.BytesCompressed,
		m.CompressDuration,
		m.ActiveWorkers,
	)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncdc_regions",
			Name:      "rows_read_total",
			Help:      "Total input rows read, excluding the header.",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncdc_regions",
			Name:      "records_written_total",
			Help:      "Total station-region records written.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ncdc_regions",
			Name:      "rows_skipped_total",
			Help:      "Rows skipped without output, by reason.",
		}, []string{"reason"}),
		CoordinatesDefaulted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncdc_regions",
			Name:      "coordinates_defaulted_total",
			Help:      "Records emitted with region D because their coordinates did not parse.",
		}),
		RegionsAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ncdc_regions",
			Name:      "regions_assigned_total",
			Help:      "Records emitted per region code.",
		}, []string{"region"}),
		FilesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncdc_recompress",
			Name:      "files_scanned_total",
			Help:      "Gzipped station files discovered during the input scan.",
		}),
		ArchivesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncdc_recompress",
			Name:      "archives_created_total",
			Help:      "Per-region bzip2 archives written.",
		}),
		BytesCompressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncdc_recompress",
			Name:      "bytes_compressed_total",
			Help:      "Decompressed input bytes fed to the bzip2 writers.",
		}),
		CompressDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ncdc_recompress",
			Name:      "region_compress_duration_seconds",
			Help:      "Wall time to recompress one region's archive.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600, 14400},
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ncdc_recompress",
			Name:      "active_workers",
			Help:      "Compression worker tasks currently running.",
		}),
	}
}
