package harness

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/dotbench/kernel"
)

// stepTimer advances by step on every reading.
type stepTimer struct {
	now  float64
	step float64
}

func (t *stepTimer) Now() float64 {
	t.now += t.step

	return t.now
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sumLoop(name string) kernel.Kernel {
	return kernel.Kernel{
		Name: name,
		Fn: func(n int, a, b []float64) float64 {
			var s float64
			for i := 0; i < n; i++ {
				s += a[i] * b[i]
			}

			return s
		},
	}
}

func TestRunAveragesElapsedTime(t *testing.T) {
	r := NewRunner(&stepTimer{step: 2.5}, discardLogger())

	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	tr, err := r.Run(sumLoop("ref"), a, b, 4)
	require.NoError(t, err)

	assert.Equal(t, "ref", tr.Kernel)
	assert.Equal(t, 4, tr.Trials)
	assert.InDelta(t, 10.0, tr.TotalMs, 1e-12)
	assert.InDelta(t, 2.5, tr.AvgMs, 1e-12)
	assert.Equal(t, 32.0, tr.Result)
}

func TestRunSameResultAcrossTrialCounts(t *testing.T) {
	r := NewRunner(NewMonotonicTimer(), discardLogger())

	a := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	b := []float64{9.9, 8.8, 7.7, 6.6, 5.5, 4.4, 3.3}

	for _, k := range kernel.Default().All() {
		one, err := r.Run(k, a, b, 1)
		require.NoError(t, err)

		five, err := r.Run(k, a, b, 5)
		require.NoError(t, err)

		assert.Equal(t, one.Result, five.Result, k.Name)
	}
}

func TestRunReturnsLastResult(t *testing.T) {
	calls := 0
	k := kernel.Kernel{
		Name: "counter",
		Fn: func(int, []float64, []float64) float64 {
			calls++

			return float64(calls)
		},
	}

	tr, err := NewRunner(&stepTimer{step: 1}, discardLogger()).
		Run(k, []float64{1}, []float64{1}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3.0, tr.Result)
}

func TestRunInvalidArguments(t *testing.T) {
	r := NewRunner(&stepTimer{step: 1}, discardLogger())
	k := sumLoop("ref")

	for _, trials := range []int{0, -1} {
		_, err := r.Run(k, []float64{1}, []float64{1}, trials)
		assert.ErrorIs(t, err, ErrInvalidArgument, "trials=%d", trials)
	}

	_, err := r.Run(k, []float64{1, 2}, []float64{1}, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRunPropagatesKernelPanic(t *testing.T) {
	boom := errors.New("boom")
	k := kernel.Kernel{
		Name: "broken",
		Fn: func(int, []float64, []float64) float64 {
			panic(boom)
		},
	}

	_, err := NewRunner(&stepTimer{step: 1}, discardLogger()).
		Run(k, []float64{1}, []float64{1}, 5)
	require.Error(t, err)

	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, "broken", kerr.Kernel)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "kernel broken failed")
}

func TestRunPanicWithoutError(t *testing.T) {
	k := kernel.Kernel{
		Name: "oob",
		Fn: func(n int, a, _ []float64) float64 {
			return a[n+10]
		},
	}

	_, err := NewRunner(&stepTimer{step: 1}, discardLogger()).
		Run(k, []float64{1}, []float64{1}, 1)

	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, "oob", kerr.Kernel)
}

func TestRunDoesNotMutateInputs(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7, 8}

	_, err := NewRunner(NewMonotonicTimer(), discardLogger()).
		Run(kernel.Gonum, a, b, 3)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3, 4}, a)
	assert.Equal(t, []float64{5, 6, 7, 8}, b)
}

func TestMonotonicTimerNonDecreasing(t *testing.T) {
	timer := NewMonotonicTimer()

	prev := timer.Now()
	for i := 0; i < 10000; i++ {
		now := timer.Now()
		if now < prev {
			t.Fatalf("timer went backwards: %v < %v", now, prev)
		}

		prev = now
	}
}
