package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonRecorder_RecordWritesJsonl(t *testing.T) {
	file := filepath.Join(t.TempDir(), "audit.jsonl")
	recorder := NewJsonRecorder(file, 10, 2, 5)
	defer recorder.Close()

	recorder.Record("id-1", 31, "Target")
	recorder.Record("id-2", 109, "M&M Corner Market")

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2, "one JSON line per recorded receipt")
	assert.Equal(t, "id-1", lines[0]["id"])
	assert.Equal(t, float64(31), lines[0]["points"])
	assert.Equal(t, "Target", lines[0]["retailer"])
	assert.NotEmpty(t, lines[0]["time"], "every line carries a timestamp")
	assert.NotContains(t, lines[0], "level", "audit lines have no log level")
	assert.Equal(t, "id-2", lines[1]["id"])
}

func TestJsonRecorder_Recent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "audit.jsonl")
	recorder := NewJsonRecorder(file, 10, 2, 2)
	defer recorder.Close()

	recorder.Record("id-1", 10, "A")
	recorder.Record("id-2", 20, "B")
	recorder.Record("id-3", 30, "C") // evicts id-1 from the ring

	recent := recorder.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "id-2", recent[0].Id)
	assert.Equal(t, "id-3", recent[1].Id)
	assert.Equal(t, 30, recent[1].Points)
	assert.Equal(t, "C", recent[1].Retailer)
	assert.False(t, recent[1].ProcessedAt.IsZero())
}

func TestNopRecorder(t *testing.T) {
	recorder := NopRecorder{}

	assert.NotPanics(t, func() {
		recorder.Record("id-1", 31, "Target")
		recorder.Close()
	})
	assert.Nil(t, recorder.Recent())
}
