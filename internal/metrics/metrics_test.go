package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davidvella/tnsdedup/dedup"
	"github.com/davidvella/tnsdedup/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := metrics.New()
	m.Observe(dedup.Stats{Seen: 9, Pruned: 4, Written: 6, Extent: []uint64{3, 17}})

	assert.InDelta(t, 9, testutil.ToFloat64(m.RecordsSeen), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.RecordsPruned), 0)
	assert.InDelta(t, 6, testutil.ToFloat64(m.RecordsWritten), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ModeExtent.WithLabelValues("1")), 0)
	assert.InDelta(t, 17, testutil.ToFloat64(m.ModeExtent.WithLabelValues("2")), 0)

	expected := `
# HELP tnsdedup_records_pruned_total Records merged into their predecessor
# TYPE tnsdedup_records_pruned_total counter
tnsdedup_records_pruned_total 4
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "tnsdedup_records_pruned_total"))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.Shards.Set(2)
	m.Observe(dedup.Stats{Seen: 1, Pruned: 1, Written: 1, Extent: []uint64{5}})

	path := filepath.Join(t.TempDir(), "tnsdedup.prom")
	require.NoError(t, m.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "tnsdedup_records_seen_total 1")
	assert.Contains(t, out, `tnsdedup_mode_extent{mode="1"} 5`)
	assert.Contains(t, out, "tnsdedup_input_shards 2")
}

func TestWriteTextfileError(t *testing.T) {
	m := metrics.New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.ErrorContains(t, err, "metrics: failed to write")
}
