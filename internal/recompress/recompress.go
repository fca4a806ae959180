package recompress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"

	"github.com/wxarchive/ncdc-regions/internal/observability"
)

// Job is one region's recompression: every gzipped input streamed into a
// single bzip2 archive.
type Job struct {
	Region    string
	Inputs    []InputFile
	Output    string
	TotalSize int64
}

// BuildJobs turns the scan result into an ordered work list. outputPattern
// must contain one %s, filled with the region code, e.g. "ncdc_%s.bz2".
// Jobs are ordered by descending input size: assigning the longest jobs
// first keeps a bounded worker pool near-optimally balanced (the "longest
// processing time first" rule).
func BuildJobs(details map[string][]InputFile, outputPattern string) []Job {
	jobs := make([]Job, 0, len(details))
	for region, inputs := range details {
		var total int64
		for _, in := range inputs {
			total += in.Size
		}
		jobs = append(jobs, Job{
			Region:    region,
			Inputs:    inputs,
			Output:    fmt.Sprintf(outputPattern, region),
			TotalSize: total,
		})
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].TotalSize != jobs[j].TotalSize {
			return jobs[i].TotalSize > jobs[j].TotalSize
		}
		return jobs[i].Region < jobs[j].Region
	})
	return jobs
}

// Recompressor runs recompression jobs over a bounded worker pool.
type Recompressor struct {
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Recompressor with the given worker count (minimum 1).
func New(workers int, logger *slog.Logger, metrics *observability.Metrics) *Recompressor {
	if workers < 1 {
		workers = 1
	}
	return &Recompressor{
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// Run executes the jobs and returns the first failure. Any job error cancels
// the remaining work: a failure here almost always has a fundamental cause
// (wrong source directory, full output disk) that would sink every job.
func (rc *Recompressor) Run(ctx context.Context, jobs []Job) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobCh := make(chan Job)
	errCh := make(chan error, rc.workers)

	var wg sync.WaitGroup
	for i := 0; i < rc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if err := rc.compressRegion(ctx, job); err != nil {
					errCh <- err
					cancel()
					return
				}
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobCh)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return ctx.Err()
	}
}

// compressRegion streams every input through gzip decompression into one
// bzip2 archive, the in-process equivalent of
//
//	gzip -cd input1.gz ... inputN.gz | bzip2 -c9 > output.bz2
func (rc *Recompressor) compressRegion(ctx context.Context, job Job) error {
	rc.metrics.ActiveWorkers.Inc()
	defer rc.metrics.ActiveWorkers.Dec()
	start := time.Now()

	rc.logger.Info("creating archive",
		"region", job.Region, "output", job.Output,
		"inputs", len(job.Inputs), "input_bytes", job.TotalSize)

	out, err := os.Create(job.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", job.Output, err)
	}

	bw, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		out.Close()
		return fmt.Errorf("bzip2 writer for %s: %w", job.Output, err)
	}

	for _, in := range job.Inputs {
		if err := ctx.Err(); err != nil {
			bw.Close()
			out.Close()
			return err
		}
		n, err := appendGzipped(bw, in.Path)
		if err != nil {
			bw.Close()
			out.Close()
			return fmt.Errorf("recompress %s into %s: %w", in.Path, job.Output, err)
		}
		rc.metrics.BytesCompressed.Add(float64(n))
	}

	if err := bw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finish %s: %w", job.Output, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", job.Output, err)
	}

	elapsed := time.Since(start)
	rc.metrics.ArchivesCreated.Inc()
	rc.metrics.CompressDuration.Observe(elapsed.Seconds())
	rc.logger.Info("archive created", "region", job.Region, "output", job.Output, "elapsed", elapsed)
	return nil
}

// appendGzipped decompresses one gzip file into w, returning the number of
// decompressed bytes written.
func appendGzipped(w io.Writer, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, gz)
	if err != nil {
		return n, err
	}
	return n, gz.Close()
}
