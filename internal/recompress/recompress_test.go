package recompress_test

import (
	"bytes"
	"compress/bzip2"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxarchive/ncdc-regions/internal/observability"
	"github.com/wxarchive/ncdc-regions/internal/recompress"
)

// writeGzip creates a gzipped file containing content and returns an
// InputFile describing it.
func writeGzip(t *testing.T, dir, name, content string) recompress.InputFile {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := writeFile(t, dir, name, buf.Bytes())
	return recompress.InputFile{Path: path, Size: int64(buf.Len())}
}

func TestBuildJobs(t *testing.T) {
	details := map[string][]recompress.InputFile{
		"A4": {{Path: "a", Size: 10}, {Path: "b", Size: 5}},
		"B2": {{Path: "c", Size: 100}},
		"E":  {{Path: "d", Size: 7}},
	}

	jobs := recompress.BuildJobs(details, "ncdc_%s.bz2")

	require.Len(t, jobs, 3)
	// Largest first, so the bounded pool stays balanced.
	assert.Equal(t, "B2", jobs[0].Region)
	assert.Equal(t, int64(100), jobs[0].TotalSize)
	assert.Equal(t, "A4", jobs[1].Region)
	assert.Equal(t, "E", jobs[2].Region)
	assert.Equal(t, "ncdc_B2.bz2", jobs[0].Output)
}

func TestRecompressor_Run(t *testing.T) {
	dir := t.TempDir()
	details := map[string][]recompress.InputFile{
		"A4": {
			writeGzip(t, dir, "029070-99999-2014.gz", "a4 first\n"),
			writeGzip(t, dir, "029070-99999-2015.gz", "a4 second\n"),
		},
		"B2": {
			writeGzip(t, dir, "722950-23174-2015.gz", "b2 only\n"),
		},
	}

	outDir := t.TempDir()
	jobs := recompress.BuildJobs(details, filepath.Join(outDir, "ncdc_%s.bz2"))

	rc := recompress.New(2, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, rc.Run(context.Background(), jobs))

	// Each region archive decompresses to its inputs concatenated in order.
	assert.Equal(t, "a4 first\na4 second\n", readBzip2(t, filepath.Join(outDir, "ncdc_A4.bz2")))
	assert.Equal(t, "b2 only\n", readBzip2(t, filepath.Join(outDir, "ncdc_B2.bz2")))
}

func TestRecompressor_Run_MissingInputFails(t *testing.T) {
	dir := t.TempDir()
	details := map[string][]recompress.InputFile{
		"A4": {
			writeGzip(t, dir, "029070-99999-2014.gz", "ok\n"),
			{Path: filepath.Join(dir, "gone.gz"), Size: 1},
		},
	}
	jobs := recompress.BuildJobs(details, filepath.Join(t.TempDir(), "ncdc_%s.bz2"))

	rc := recompress.New(1, discardLogger(), observability.NewMetricsForTesting())
	err := rc.Run(context.Background(), jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.gz")
}

func TestRecompressor_Run_CorruptInputFails(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "029070-99999-2014.gz", []byte("not gzip at all"))
	details := map[string][]recompress.InputFile{
		"A4": {{Path: bad, Size: 15}},
	}
	jobs := recompress.BuildJobs(details, filepath.Join(t.TempDir(), "ncdc_%s.bz2"))

	rc := recompress.New(1, discardLogger(), observability.NewMetricsForTesting())
	require.Error(t, rc.Run(context.Background(), jobs))
}

func TestRecompressor_Run_NoJobs(t *testing.T) {
	rc := recompress.New(4, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, rc.Run(context.Background(), nil))
}

func readBzip2(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(bzip2.NewReader(f))
	require.NoError(t, err)
	return string(data)
}
