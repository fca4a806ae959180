package recompress_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxarchive/ncdc-regions/internal/observability"
	"github.com/wxarchive/ncdc-regions/internal/recompress"
	"github.com/wxarchive/ncdc-regions/internal/regionmap"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeFile creates a file under dir with the given name and content,
// creating dir as needed.
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestScan(t *testing.T) {
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "2014"), "029070-99999-2014.gz", []byte("x"))
	writeFile(t, filepath.Join(source, "2015"), "029070-99999-2015.gz", []byte("xy"))
	writeFile(t, filepath.Join(source, "2015"), "722950-23174-2015.gz", []byte("xyz"))
	writeFile(t, filepath.Join(source, "2015"), "111111-11111-2015.gz", []byte("u"))
	// Outside the year range, must be ignored.
	writeFile(t, filepath.Join(source, "2016"), "029070-99999-2016.gz", []byte("x"))
	// Not a .gz file, must be ignored.
	writeFile(t, filepath.Join(source, "2015"), "README", []byte("x"))

	regions := regionmap.Map{
		"029070-99999": "A4",
		"722950-23174": "B2",
	}

	details, err := recompress.Scan(source, 2014, 2015, regions, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)

	require.Len(t, details, 3)
	assert.Len(t, details["A4"], 2)
	assert.Len(t, details["B2"], 1)
	// Station not in the mapping falls to pseudo-region E.
	require.Len(t, details["E"], 1)
	assert.Equal(t, int64(1), details["E"][0].Size)
}

func TestScan_EmptyYearDir(t *testing.T) {
	details, err := recompress.Scan(t.TempDir(), 2014, 2014, regionmap.Map{}, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	assert.Empty(t, details)
}
