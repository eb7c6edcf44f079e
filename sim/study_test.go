package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStudyReturnsModelsInRunOrder(t *testing.T) {
	meanS := []float64{40, 60, 80, 90}
	models, err := RunStudy(len(meanS), 2, func(run int) *Model {
		return MMCModel(100, meanS[run], 1, 1000, 7, false)
	})
	require.NoError(t, err)
	require.Len(t, models, 4)
	for run, m := range models {
		require.NotNil(t, m, "run %d", run)
		assert.Equal(t, meanS[run], m.MeanS)
		assert.Equal(t, int64(1000), m.Dispose.Count())
	}
}

func TestRunStudyIsDeterministicPerSeed(t *testing.T) {
	build := func(run int) *Model {
		return MMCModel(100, 80, 1, 2000, 42+uint64(run), false)
	}
	first, err := RunStudy(3, 3, build)
	require.NoError(t, err)
	second, err := RunStudy(3, 1, build)
	require.NoError(t, err)

	// worker count changes scheduling, never results
	for run := range first {
		assert.Equal(t, first[run].Dispose.ClientWaiting.Mean(), second[run].Dispose.ClientWaiting.Mean())
		assert.Equal(t, first[run].Simulator.EventCount, second[run].Simulator.EventCount)
	}
}

func TestRunStudyPropagatesBuildErrors(t *testing.T) {
	_, err := RunStudy(2, 2, func(run int) *Model {
		s := NewSimulator(1)
		NewSource(s, "src", 1, NewDeterministic(1))
		return &Model{Simulator: s}
	})
	assert.Error(t, err)
}

func TestRunStudyClampsWorkerCount(t *testing.T) {
	models, err := RunStudy(2, 0, func(run int) *Model {
		return MMCModel(100, 50, 1, 100, 7, false)
	})
	require.NoError(t, err)
	assert.Len(t, models, 2)
}
