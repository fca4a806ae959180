package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxarchive/ncdc-regions/internal/domain"
)

// historyRow builds a minimal quoted history line with the given USAF, WBAN,
// latitude, and longitude field values.
func historyRow(usaf, wban, lat, lon string) string {
	fields := []string{usaf, wban, "NAME", "CTRY", "ST", "CALL", lat, lon, "ELEV"}
	for i, f := range fields {
		fields[i] = `"` + f + `"`
	}
	return strings.Join(fields, ",")
}

func TestParseStationRow(t *testing.T) {
	rec, err := domain.ParseStationRow(historyRow("029070", "99999", "51.900", "4.400"))
	require.NoError(t, err)
	assert.Equal(t, domain.StationRecord{ID: "029070-99999", Region: "A4"}, rec)
}

func TestParseStationRow_TooFewFields(t *testing.T) {
	_, err := domain.ParseStationRow(`"029070","99999","NAME","CTRY","ST"`)
	assert.ErrorIs(t, err, domain.ErrTooFewFields)
}

func TestParseStationRow_InvalidStation(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string // station value reported in the error
	}{
		{"short digit counts", historyRow("12345", "6789", "51.9", "4.4"), "12345-6789"},
		{"letters in the id", historyRow("02907A", "99999", "51.9", "4.4"), "02907A-99999"},
		{"empty id fields", historyRow("", "", "51.9", "4.4"), "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseStationRow(tt.row)
			var invalid *domain.InvalidStationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.want, invalid.Station)
		})
	}
}

// Unparseable coordinates demote the record to region D but never reject it:
// the history file is full of stations without coordinates.
func TestParseStationRow_BadCoordinatesDefaultToD(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"empty coordinates", historyRow("029070", "99999", "", "")},
		{"non-numeric latitude", historyRow("029070", "99999", "NO DATA", "4.4")},
		{"non-numeric longitude", historyRow("029070", "99999", "51.9", "x")},
		{"one coordinate missing", historyRow("029070", "99999", "51.9", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := domain.ParseStationRow(tt.row)
			require.NoError(t, err)
			assert.Equal(t, "D", rec.Region)
			assert.Equal(t, "029070-99999", rec.ID)
		})
	}
}

func TestParseStationRow_SouthernStation(t *testing.T) {
	rec, err := domain.ParseStationRow(historyRow("890090", "99999", "-89.996", "-24.8"))
	require.NoError(t, err)
	assert.Equal(t, "D", rec.Region) // Amundsen-Scott, south of the grid
}

func TestValidStationID(t *testing.T) {
	assert.True(t, domain.ValidStationID("029070-99999"))
	assert.False(t, domain.ValidStationID("12345-6789"))
	assert.False(t, domain.ValidStationID("029070-999999"))
	assert.False(t, domain.ValidStationID("029070 99999"))
	assert.False(t, domain.ValidStationID(""))
}

func TestParseStationRow_ExtraFieldsIgnored(t *testing.T) {
	row := historyRow("029070", "99999", "51.900", "4.400") + `,"20000101","20251231"`
	rec, err := domain.ParseStationRow(row)
	require.NoError(t, err)
	assert.Equal(t, "A4", rec.Region)
}

func TestParseStationRow_ErrTooFewFieldsIsSentinel(t *testing.T) {
	_, err := domain.ParseStationRow("")
	assert.True(t, errors.Is(err, domain.ErrTooFewFields))
}
