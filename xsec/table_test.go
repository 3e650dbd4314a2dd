package xsec

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/endfkit"
	"github.com/hupe1980/endfkit/resource"
	"github.com/hupe1980/endfkit/testutil"
)

// newFiveSample returns {(10,1),(20,2),(30,3),(40,4),(50,5)}.
func newFiveSample(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(5)
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		require.NoError(t, tbl.Push(float32(10*i), float32(i)))
	}
	t.Cleanup(func() { _ = tbl.Close() })
	return tbl
}

func TestNew(t *testing.T) {
	for _, n := range []int{0, 1, 10, 1024} {
		tbl, err := New(n)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, n, tbl.Cap())
		require.NoError(t, tbl.Close())
	}
}

func TestNew_NegativeCapacity(t *testing.T) {
	tbl, err := New(-1)
	assert.Nil(t, tbl)
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
}

func TestPush(t *testing.T) {
	tbl, err := New(4)
	require.NoError(t, err)
	defer tbl.Close()

	for i := 1; i <= 4; i++ {
		require.NoError(t, tbl.Push(float32(i), float32(i)))
	}
	for i := range 4 {
		xs, err := tbl.XS(i)
		require.NoError(t, err)
		assert.InDelta(t, float32(i+1), xs, 1e-3)

		e, err := tbl.Energy(i)
		require.NoError(t, err)
		assert.InDelta(t, float32(i+1), e, 1e-3)
	}
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 4, tbl.Cap())
}

func TestPush_Grows(t *testing.T) {
	tbl, err := New(4)
	require.NoError(t, err)
	defer tbl.Close()

	for i := 1; i <= 5; i++ {
		require.NoError(t, tbl.Push(float32(i), float32(i)))
	}
	for i := range 5 {
		s, err := tbl.Sample(i)
		require.NoError(t, err)
		assert.Equal(t, Sample{XS: float32(i + 1), Energy: float32(i + 1)}, s)
	}
	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, 8, tbl.Cap())
}

func TestPush_GrowsFromZero(t *testing.T) {
	tbl, err := New(0)
	require.NoError(t, err)
	defer tbl.Close()

	require.NoError(t, tbl.Push(1, 1))
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 32, tbl.Cap())
}

func TestPush_ThresholdSwitch(t *testing.T) {
	const threshold = 1024 * 1024

	tbl, err := New(threshold)
	require.NoError(t, err)
	defer tbl.Close()

	for i := range threshold + 1 {
		require.NoError(t, tbl.Push(float32(i), float32(i)))
	}
	assert.Equal(t, threshold+1, tbl.Len())
	assert.Equal(t, 2*threshold, tbl.Cap())
}

func TestPush_NilTable(t *testing.T) {
	var tbl *Table
	err := tbl.Push(1, 1)
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
}

func TestPush_GrowthFailureKeepsTable(t *testing.T) {
	// Two arrays of 4 samples reserve 32 bytes. Growing to 8 needs 32 bytes per
	// array, so a 64 byte budget lets the first array grow but not the second.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})
	tbl, err := New(4, endfkit.WithBudget(rc))
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		require.NoError(t, tbl.Push(float32(10*i), float32(i)))
	}
	assert.Equal(t, int64(32), rc.MemoryUsage())

	err = tbl.Push(50, 5)
	require.ErrorIs(t, err, endfkit.ErrAllocation)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	var ae *endfkit.AllocationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, int64(32), ae.Requested)

	// The table is still valid at its old capacity.
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 4, tbl.Cap())
	assert.Equal(t, int64(32), rc.MemoryUsage())
	for i := range 4 {
		s, err := tbl.Sample(i)
		require.NoError(t, err)
		assert.Equal(t, Sample{XS: float32(10 * (i + 1)), Energy: float32(i + 1)}, s)
	}
	v, err := tbl.Interpolate(2.5)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, v, 1e-6)

	require.NoError(t, tbl.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestNew_AllocationFailureRollsBack(t *testing.T) {
	// Room for one 40 byte array but not two.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 60})
	tbl, err := New(10, endfkit.WithBudget(rc))
	assert.Nil(t, tbl)
	assert.ErrorIs(t, err, endfkit.ErrAllocation)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestBudgetTracksGrowth(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	tbl, err := New(2, endfkit.WithBudget(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(16), rc.MemoryUsage())

	for i := range 3 {
		require.NoError(t, tbl.Push(float32(i), float32(i)))
	}
	assert.Equal(t, int64(32), rc.MemoryUsage())
	assert.Equal(t, int64(48), rc.PeakMemoryUsage())

	require.NoError(t, tbl.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestAccessors_OutOfRange(t *testing.T) {
	tbl := newFiveSample(t)

	for _, i := range []int{-1, 5, 100} {
		xs, err := tbl.XS(i)
		assert.ErrorIs(t, err, endfkit.ErrIndexOutOfRange)
		assert.Equal(t, Invalid, xs)

		e, err := tbl.Energy(i)
		assert.ErrorIs(t, err, endfkit.ErrIndexOutOfRange)
		assert.Equal(t, Invalid, e)

		s, err := tbl.Sample(i)
		assert.ErrorIs(t, err, endfkit.ErrIndexOutOfRange)
		assert.Equal(t, Sample{XS: Invalid, Energy: Invalid}, s)
	}

	_, err := tbl.XS(7)
	var ie *endfkit.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 7, ie.Index)
	assert.Equal(t, 5, ie.Len)
}

func TestInterpolate(t *testing.T) {
	tbl := newFiveSample(t)

	tests := []struct {
		name   string
		energy float32
		want   float32
	}{
		{"exact", 3.0, 30.0},
		{"midpoint", 2.5, 25.0},
		{"lower bound inclusive", 1.0, 10.0},
		{"upper bound inclusive", 5.0, 50.0},
		{"quarter", 4.25, 42.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Interpolate(tt.energy)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-5)
		})
	}
}

func TestInterpolate_OutOfRange(t *testing.T) {
	tbl := newFiveSample(t)

	for _, energy := range []float32{0.5, 5.5} {
		got, err := tbl.Interpolate(energy)
		assert.ErrorIs(t, err, endfkit.ErrOutOfRange)
		assert.Equal(t, Invalid, got)

		var re *endfkit.RangeError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, energy, re.Value)
		assert.Equal(t, float32(1), re.Min)
		assert.Equal(t, float32(5), re.Max)
	}
}

func TestInterpolate_SinglePoint(t *testing.T) {
	tbl, err := New(1)
	require.NoError(t, err)
	defer tbl.Close()

	require.NoError(t, tbl.Push(30, 3))
	got, err := tbl.Interpolate(3.0)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, got, 1e-6)

	_, err = tbl.Interpolate(3.5)
	assert.ErrorIs(t, err, endfkit.ErrOutOfRange)
}

func TestInterpolate_InvalidInput(t *testing.T) {
	var nilTable *Table
	got, err := nilTable.Interpolate(3.0)
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
	assert.Equal(t, Invalid, got)

	empty, err := New(4)
	require.NoError(t, err)
	defer empty.Close()
	_, err = empty.Interpolate(1.0)
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)

	tbl := newFiveSample(t)
	_, err = tbl.Interpolate(float32(math.NaN()))
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
}

func TestInterpolate_RandomGrid(t *testing.T) {
	rng := testutil.NewRNG(42)
	energies := rng.SortedGrid(200, 1e-5, 2e7)
	xs := rng.Float32s(200, 0, 100)

	tbl, err := New(0)
	require.NoError(t, err)
	defer tbl.Close()
	for i := range energies {
		require.NoError(t, tbl.Push(xs[i], energies[i]))
	}

	for i := range energies {
		got, err := tbl.Interpolate(energies[i])
		require.NoError(t, err)
		assert.Equal(t, xs[i], got)
	}
	for i := 0; i+1 < len(energies); i++ {
		mid := energies[i] + (energies[i+1]-energies[i])/2
		if mid <= energies[i] || mid >= energies[i+1] {
			continue
		}
		got, err := tbl.Interpolate(mid)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, min(xs[i], xs[i+1])-1e-3)
		assert.LessOrEqual(t, got, max(xs[i], xs[i+1])+1e-3)
	}
}

func TestBounds(t *testing.T) {
	tbl := newFiveSample(t)
	lo, hi, err := tbl.Bounds()
	require.NoError(t, err)
	assert.Equal(t, float32(1), lo)
	assert.Equal(t, float32(5), hi)

	empty, err := New(0)
	require.NoError(t, err)
	_, _, err = empty.Bounds()
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
}

func TestClose(t *testing.T) {
	tbl, err := New(4)
	require.NoError(t, err)
	require.NoError(t, tbl.Push(1, 1))

	require.NoError(t, tbl.Close())
	require.NoError(t, tbl.Close())

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, tbl.Cap())
	assert.ErrorIs(t, tbl.Push(2, 2), endfkit.ErrInvalidArgument)
	_, err = tbl.XS(0)
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
	_, err = tbl.Interpolate(1)
	assert.ErrorIs(t, err, endfkit.ErrInvalidArgument)
}

func TestDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := endfkit.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &endfkit.BasicMetricsCollector{}

	tbl, err := New(1, endfkit.WithLogger(logger), endfkit.WithMetricsCollector(metrics))
	require.NoError(t, err)
	defer tbl.Close()

	require.NoError(t, tbl.Push(1, 1))
	require.NoError(t, tbl.Push(2, 2))
	_, err = tbl.Interpolate(10)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"capacity grown"`)
	assert.Contains(t, out, `"op":"interpolate"`)
	assert.Contains(t, out, `"container":"table"`)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.GrowCount)
	assert.Equal(t, int64(1), stats.GrowElements)
	assert.Equal(t, int64(1), stats.FailureCount)
	assert.True(t, errors.Is(err, endfkit.ErrOutOfRange))
}
