package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const histogramBins = 128

// DiscreteStatistic accumulates per-observation data: waiting times, service
// times, inter-arrival gaps. Alongside the moments it keeps a fixed-size
// histogram whose bin width doubles whenever a value falls off the top end,
// folding existing counts pairwise so no observation is lost.
type DiscreteStatistic struct {
	count    int64
	sum      float64
	sumSq    float64
	min      float64
	max      float64
	bins     [histogramBins]int64
	binWidth float64
}

// NewDiscreteStatistic returns an empty recorder with unit bin width.
func NewDiscreteStatistic() *DiscreteStatistic {
	return &DiscreteStatistic{binWidth: 1}
}

// Record adds one observation.
func (s *DiscreteStatistic) Record(v float64) {
	if s.count == 0 {
		s.min = v
		s.max = v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.count++
	s.sum += v
	s.sumSq += v * v

	for v >= s.binWidth*histogramBins {
		s.fold()
	}
	if v >= 0 {
		s.bins[int(v/s.binWidth)]++
	}
}

// fold doubles the bin width, merging adjacent bins.
func (s *DiscreteStatistic) fold() {
	for i := 0; i < histogramBins/2; i++ {
		s.bins[i] = s.bins[2*i] + s.bins[2*i+1]
	}
	for i := histogramBins / 2; i < histogramBins; i++ {
		s.bins[i] = 0
	}
	s.binWidth *= 2
}

// Count returns the number of observations.
func (s *DiscreteStatistic) Count() int64 { return s.count }

// Mean returns the sample mean, zero with no data.
func (s *DiscreteStatistic) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// SD returns the sample standard deviation (n-1 denominator), zero with
// fewer than two observations.
func (s *DiscreteStatistic) SD() float64 {
	if s.count < 2 {
		return 0
	}
	n := float64(s.count)
	variance := (s.sumSq - s.sum*s.sum/n) / (n - 1)
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// CV returns the coefficient of variation, zero when the mean is zero.
func (s *DiscreteStatistic) CV() float64 {
	m := s.Mean()
	if m == 0 {
		return 0
	}
	return s.SD() / m
}

// Min returns the smallest observation, zero with no data.
func (s *DiscreteStatistic) Min() float64 {
	if s.count == 0 {
		return 0
	}
	return s.min
}

// Max returns the largest observation, zero with no data.
func (s *DiscreteStatistic) Max() float64 {
	if s.count == 0 {
		return 0
	}
	return s.max
}

// BinWidth returns the current histogram bin width.
func (s *DiscreteStatistic) BinWidth() float64 { return s.binWidth }

// Bins returns the histogram counts.
func (s *DiscreteStatistic) Bins() []int64 { return s.bins[:] }

// Info renders a one-line summary for the result printers.
func (s *DiscreteStatistic) Info() string {
	return fmt.Sprintf("n=%d mean=%.4f sd=%.4f cv=%.4f min=%.4f max=%.4f",
		s.count, s.Mean(), s.SD(), s.CV(), s.Min(), s.Max())
}

// TimeStatistic accumulates a piecewise-constant signal such as queue length
// or work in progress. Each Record closes the interval since the previous
// one at the previous value, so the mean is time-weighted.
type TimeStatistic struct {
	started      bool
	lastTime     float64
	lastValue    float64
	totalTime    float64
	weightedSum  float64
	min          float64
	max          float64
	recordValues bool
	times        []float64
	values       []float64
}

// NewTimeStatistic returns an empty recorder. With recordValues set the full
// (time, value) trace is retained.
func NewTimeStatistic(recordValues bool) *TimeStatistic {
	return &TimeStatistic{recordValues: recordValues}
}

// Record notes that the signal changed to value at the given time.
func (s *TimeStatistic) Record(time, value float64) {
	if s.started {
		dt := time - s.lastTime
		s.totalTime += dt
		s.weightedSum += dt * s.lastValue
		if value < s.min {
			s.min = value
		}
		if value > s.max {
			s.max = value
		}
	} else {
		s.started = true
		s.min = value
		s.max = value
	}
	s.lastTime = time
	s.lastValue = value
	if s.recordValues {
		s.times = append(s.times, time)
		s.values = append(s.values, value)
	}
}

// Mean returns the time-weighted mean, zero before any time has elapsed.
func (s *TimeStatistic) Mean() float64 {
	if s.totalTime == 0 {
		return 0
	}
	return s.weightedSum / s.totalTime
}

// Min returns the smallest recorded value, zero with no data.
func (s *TimeStatistic) Min() float64 {
	if !s.started {
		return 0
	}
	return s.min
}

// Max returns the largest recorded value, zero with no data.
func (s *TimeStatistic) Max() float64 {
	if !s.started {
		return 0
	}
	return s.max
}

// Trace returns the retained (time, value) pairs, nil unless the recorder
// was built with recordValues.
func (s *TimeStatistic) Trace() ([]float64, []float64) {
	return s.times, s.values
}

// Info renders a one-line summary for the result printers.
func (s *TimeStatistic) Info() string {
	return fmt.Sprintf("mean=%.4f min=%.4f max=%.4f", s.Mean(), s.Min(), s.Max())
}

// CounterStatistic counts categorical outcomes, such as which exit a Decide
// chose or how clients left a Process.
type CounterStatistic struct {
	counts map[string]int64
	total  int64
}

// NewCounterStatistic returns an empty counter.
func NewCounterStatistic() *CounterStatistic {
	return &CounterStatistic{counts: make(map[string]int64)}
}

// Record increments the count for key.
func (s *CounterStatistic) Record(key string) {
	s.counts[key]++
	s.total++
}

// Count returns the count for key.
func (s *CounterStatistic) Count(key string) int64 { return s.counts[key] }

// Total returns the number of recorded outcomes.
func (s *CounterStatistic) Total() int64 { return s.total }

// Info renders the counts in key order.
func (s *CounterStatistic) Info() string {
	keys := make([]string, 0, len(s.counts))
	for k := range s.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.counts[k]))
	}
	parts = append(parts, fmt.Sprintf("total=%d", s.total))
	return strings.Join(parts, " ")
}
