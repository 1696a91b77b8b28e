package workload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	gen := NewGenerator(Config{})

	for _, tt := range []struct {
		n    int
		seed int64
	}{
		{1, 0},
		{16, 42},
		{1000, 123},
		{4096, -7},
	} {
		v1, err := gen.Generate(tt.n, tt.seed)
		require.NoError(t, err)

		v2, err := NewGenerator(Config{}).Generate(tt.n, tt.seed)
		require.NoError(t, err)

		assert.Equal(t, v1, v2, "n=%d seed=%d", tt.n, tt.seed)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	gen := NewGenerator(Config{})

	a, err := gen.Generate(256, 42)
	require.NoError(t, err)

	b, err := gen.Generate(256, 123)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateBounded(t *testing.T) {
	v, err := NewGenerator(Config{}).Generate(10000, 42)
	require.NoError(t, err)

	for i, x := range v {
		if x < 0 || x >= 100 {
			t.Fatalf("v[%d] = %v, want [0, 100)", i, x)
		}

		// One decimal of granularity.
		tenths := x * 10
		if tenths != float64(int(tenths)) {
			t.Fatalf("v[%d] = %v has more than one decimal", i, x)
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	gen := NewGenerator(Config{})

	for _, n := range []int{0, -1, -1 << 20} {
		_, err := gen.Generate(n, 42)
		assert.ErrorIs(t, err, ErrInvalidArgument, "n=%d", n)
	}
}

func TestGenerateExceedsLimit(t *testing.T) {
	gen := NewGenerator(Config{MaxBytes: 1024})

	_, err := gen.Generate(128, 42)
	require.NoError(t, err)

	_, err = gen.Generate(129, 42)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestPairMatchesGenerate(t *testing.T) {
	gen := NewGenerator(Config{})

	pair, err := gen.Pair(512, 42, 123)
	require.NoError(t, err)

	a, err := gen.Generate(512, 42)
	require.NoError(t, err)

	b, err := gen.Generate(512, 123)
	require.NoError(t, err)

	assert.Equal(t, a, pair.A)
	assert.Equal(t, b, pair.B)
	assert.Len(t, pair.A, 512)
}

func TestPairChecksCombinedFootprint(t *testing.T) {
	// Each vector fits on its own, both together do not.
	gen := NewGenerator(Config{MaxBytes: 100 * float64Size})

	_, err := gen.Pair(60, 42, 123)
	assert.ErrorIs(t, err, ErrAllocation)

	_, err = gen.Pair(50, 42, 123)
	assert.NoError(t, err)
}

func TestPairInvalidLength(t *testing.T) {
	_, err := NewGenerator(Config{}).Pair(0, 42, 123)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPairRelease(t *testing.T) {
	pair, err := NewGenerator(Config{}).Pair(8, 1, 2)
	require.NoError(t, err)

	pair.Release()
	pair.Release()

	assert.Nil(t, pair.A)
	assert.Nil(t, pair.B)

	var nilPair *Pair
	assert.NotPanics(t, nilPair.Release)
}

func TestReserveSystemMemory(t *testing.T) {
	a := &allocator{total: func() uint64 { return 1 << 20 }}

	require.NoError(t, a.reserve(1<<17))

	err := a.reserve(1<<17 + 1)
	assert.True(t, errors.Is(err, ErrAllocation))

	// Unknown system memory disables the check.
	a.total = func() uint64 { return 0 }
	assert.NoError(t, a.reserve(1<<30))
}

func TestVectorRecoversMakesliceFailure(t *testing.T) {
	a := newAllocator(0)

	_, err := a.vector(-1)
	assert.ErrorIs(t, err, ErrAllocation)
}
