package tagalloc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	a := newTestArena(t, 4096)
	assert.Equal(t, 4096-headerSize, a.Available())

	b := a.Alloc(100)
	require.NotNil(t, b)
	assert.Equal(t, 4096-108-headerSize, a.Available())

	require.NoError(t, a.Free(b))
	assert.Equal(t, 4096-headerSize, a.Available())
}

func TestMetrics(t *testing.T) {
	a := newTestArena(t, 4096)

	m := a.Metrics()
	assert.Equal(t, Metrics{
		Capacity:    4096,
		FreeBytes:   4096,
		FreeBlocks:  1,
		LargestFree: 4096 - headerSize,
	}, m)

	b := a.Alloc(100)
	require.NotNil(t, b)
	m = a.Metrics()
	assert.Equal(t, 108, m.BusyBytes)
	assert.Equal(t, 3988, m.FreeBytes)
	assert.Equal(t, 1, m.BusyBlocks)
	assert.Equal(t, 1, m.FreeBlocks)
	assert.Equal(t, 3980, m.LargestFree)
	assert.InDelta(t, 108.0/4096.0, m.Utilization, 1e-9)
}

func TestBlocksSnapshotIsReadOnly(t *testing.T) {
	a := newTestArena(t, 1024)
	b := a.Alloc(100)
	require.NotNil(t, b)

	before := a.Blocks()
	_ = a.Blocks()
	_ = a.Report()
	_ = a.Available()
	_ = a.Metrics()
	assert.Equal(t, before, a.Blocks())
}

func TestReport(t *testing.T) {
	a := newTestArena(t, 4096)
	b := a.Alloc(100)
	require.NotNil(t, b)

	out := a.Report()
	assert.Contains(t, out, "Block list")
	assert.Contains(t, out, "No.\tStatus\tPrev\tBegin\t\tEnd\t\tSize")
	assert.Contains(t, out, "Total busy size = 108")
	assert.Contains(t, out, "Total free size = 3988")
	assert.Contains(t, out, "Total size = 4096")

	// One row per block, in sequence order.
	lines := strings.Split(out, "\n")
	var rows []string
	for _, l := range lines {
		if strings.HasPrefix(l, "1\t") || strings.HasPrefix(l, "2\t") {
			rows = append(rows, l)
		}
	}
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "Busy")
	assert.Contains(t, rows[1], "Free")
}

func TestReportTotalsTileArena(t *testing.T) {
	a := newTestArena(t, 4096)
	for _, n := range []int{16, 200, 52, 1000} {
		require.NotNil(t, a.Alloc(n))
	}
	m := a.Metrics()
	assert.Equal(t, 4096, m.BusyBytes+m.FreeBytes)
	assert.Contains(t, a.Report(), fmt.Sprintf("Total size = %d", 4096))
}

// benchmarks

func BenchmarkReport(b *testing.B) {
	a, _ := NewFromBuffer(make([]byte, 1<<20))
	for i := 0; i < 200; i++ {
		a.Alloc(1024)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Report()
	}
}
