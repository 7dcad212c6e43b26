package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSinkWriteAd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.csv")

	s, err := OpenCSVSink(path)
	require.NoError(t, err)

	ad := testAd("https://example.com/vehicle/1.html")
	require.NoError(t, s.WriteAd(ad))
	require.NoError(t, s.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, csvColumns, rows[0])

	row := rows[1]
	assert.Equal(t, "4980", row[0]) // FOB
	assert.Equal(t, "0", row[1])    // CIF
	assert.Equal(t, "USD", row[2])
	assert.Equal(t, "AUDI", row[3])
	assert.Equal(t, "A4", row[4])
	assert.Equal(t, "2015/06", row[5])
	assert.Equal(t, "45230", row[6])
	assert.Equal(t, "", row[7]) // cc absent
	assert.Equal(t, "https://example.com/vehicle/1.html", row[12])
}

// Reopening appends without rewriting the header.
func TestCSVSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.csv")

	s, err := OpenCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteAd(testAd("https://example.com/vehicle/1.html")))
	require.NoError(t, s.Close())

	s, err = OpenCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteAd(testAd("https://example.com/vehicle/2.html")))
	require.NoError(t, s.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, csvColumns, rows[0])
	assert.NotEqual(t, csvColumns, rows[1])
}

func TestCSVSinkLockedByOtherHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.csv")

	s, err := OpenCSVSink(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = OpenCSVSink(path)
	assert.Error(t, err)
}
