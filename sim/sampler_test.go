package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func sampleMeanSD(s Sampler, n int) (mean, sd float64) {
	stat := NewDiscreteStatistic()
	for i := 0; i < n; i++ {
		stat.Record(s.Next())
	}
	return stat.Mean(), stat.SD()
}

func TestExpSamplerMean(t *testing.T) {
	s := NewExp(rand.NewSource(7), 100)
	mean, sd := sampleMeanSD(s, 200000)
	assert.InEpsilon(t, 100.0, mean, 0.02)
	assert.InEpsilon(t, 100.0, sd, 0.05)
}

func TestLogNormalSamplerMatchesMeanAndSD(t *testing.T) {
	s := NewLogNormal(rand.NewSource(7), 50, 20)
	mean, sd := sampleMeanSD(s, 200000)
	assert.InEpsilon(t, 50.0, mean, 0.02)
	assert.InEpsilon(t, 20.0, sd, 0.05)
}

func TestGammaSamplerMatchesMeanAndSD(t *testing.T) {
	s := NewGamma(rand.NewSource(7), 80, 40)
	mean, sd := sampleMeanSD(s, 200000)
	assert.InEpsilon(t, 80.0, mean, 0.02)
	assert.InEpsilon(t, 40.0, sd, 0.05)
}

func TestUniformSamplerMean(t *testing.T) {
	s := NewUniform(rand.NewSource(7), 10, 30)
	mean, _ := sampleMeanSD(s, 200000)
	assert.InEpsilon(t, 20.0, mean, 0.02)
}

func TestTriangularSamplerMean(t *testing.T) {
	s := NewTriangular(rand.NewSource(7), 0, 30, 60)
	mean, _ := sampleMeanSD(s, 200000)
	assert.InEpsilon(t, 30.0, mean, 0.02)
}

func TestDeterministicSampler(t *testing.T) {
	s := NewDeterministic(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 42.0, s.Next())
	}
}

func TestEmpiricalSamplerProportions(t *testing.T) {
	s := NewEmpirical(rand.NewSource(7), map[float64]float64{10: 1, 20: 3})
	counts := map[float64]int{}
	n := 100000
	for i := 0; i < n; i++ {
		counts[s.Next()]++
	}
	assert.InEpsilon(t, 0.25, float64(counts[10])/float64(n), 0.05)
	assert.InEpsilon(t, 0.75, float64(counts[20])/float64(n), 0.05)
}

func TestSamplersAreDeterministicPerSeed(t *testing.T) {
	a := NewExp(rand.NewSource(99), 100)
	b := NewExp(rand.NewSource(99), 100)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestSamplerFactoriesRejectBadConfig(t *testing.T) {
	assert.Panics(t, func() { NewExp(rand.NewSource(1), 0) })
	assert.Panics(t, func() { NewLogNormal(rand.NewSource(1), -1, 1) })
	assert.Panics(t, func() { NewGamma(rand.NewSource(1), 1, 0) })
	assert.Panics(t, func() { NewUniform(rand.NewSource(1), 5, 1) })
	assert.Panics(t, func() { NewTriangular(rand.NewSource(1), 0, 10, 5) })
	assert.Panics(t, func() { NewEmpirical(rand.NewSource(1), nil) })
}

func TestSamplerSpecBuildsEveryDistribution(t *testing.T) {
	src := rand.NewSource(7)
	cases := []SamplerSpec{
		{Dist: "exp", Mean: 100},
		{Dist: "lognormal", Mean: 50, SD: 20},
		{Dist: "gamma", Mean: 80, SD: 40},
		{Dist: "uniform", Low: 1, High: 2},
		{Dist: "triangular", Low: 0, Mode: 1, High: 2},
		{Dist: "deterministic", Value: 3},
		{Dist: "empirical", Values: map[float64]float64{1: 1}},
	}
	for _, spec := range cases {
		s, err := spec.Build(src)
		require.NoError(t, err, spec.Dist)
		assert.GreaterOrEqual(t, s.Next(), 0.0, spec.Dist)
	}
}

func TestSamplerSpecRejectsUnknownDistribution(t *testing.T) {
	_, err := SamplerSpec{Dist: "cauchy"}.Build(rand.NewSource(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cauchy")
}

func TestSamplerSpecReportsBadParameters(t *testing.T) {
	_, err := SamplerSpec{Dist: "exp", Mean: -1}.Build(rand.NewSource(1))
	require.Error(t, err)
}

func TestClip(t *testing.T) {
	assert.Equal(t, 0.0, clip(-3))
	assert.Equal(t, 5.0, clip(5))
	nan := 0.0
	assert.Panics(t, func() { clip(nan / nan) })
}
