package sim

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler produces one draw per call. Stations use samplers for
// inter-arrival, service, patience, delay and post-processing times.
type Sampler interface {
	Next() float64
}

type funcSampler func() float64

func (f funcSampler) Next() float64 { return f() }

// NewExp returns an exponential sampler with the given mean.
func NewExp(src rand.Source, mean float64) Sampler {
	if mean <= 0 {
		panic(fmt.Sprintf("sim: exponential mean must be positive, got %f", mean))
	}
	d := distuv.Exponential{Rate: 1 / mean, Src: src}
	return funcSampler(d.Rand)
}

// NewLogNormal returns a log-normal sampler parameterised by the mean and
// standard deviation of the distribution itself, not of the underlying
// normal.
func NewLogNormal(src rand.Source, mean, sd float64) Sampler {
	if mean <= 0 || sd <= 0 {
		panic(fmt.Sprintf("sim: log-normal mean and sd must be positive, got mean=%f sd=%f", mean, sd))
	}
	mu := math.Log(mean * mean / math.Sqrt(sd*sd+mean*mean))
	sigma := math.Sqrt(math.Log(sd*sd/(mean*mean) + 1))
	d := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: src}
	return funcSampler(d.Rand)
}

// NewGamma returns a gamma sampler parameterised by mean and standard
// deviation.
func NewGamma(src rand.Source, mean, sd float64) Sampler {
	if mean <= 0 || sd <= 0 {
		panic(fmt.Sprintf("sim: gamma mean and sd must be positive, got mean=%f sd=%f", mean, sd))
	}
	beta := mean / (sd * sd)
	alpha := mean * beta
	d := distuv.Gamma{Alpha: alpha, Beta: beta, Src: src}
	return funcSampler(d.Rand)
}

// NewUniform returns a uniform sampler on [low, high].
func NewUniform(src rand.Source, low, high float64) Sampler {
	if low > high {
		panic(fmt.Sprintf("sim: uniform bounds inverted, got low=%f high=%f", low, high))
	}
	d := distuv.Uniform{Min: low, Max: high, Src: src}
	return funcSampler(d.Rand)
}

// NewTriangular returns a triangular sampler on [low, high] with the given
// mode.
func NewTriangular(src rand.Source, low, mode, high float64) Sampler {
	if low > mode || mode > high || low >= high {
		panic(fmt.Sprintf("sim: triangular needs low <= mode <= high, got %f %f %f", low, mode, high))
	}
	d := distuv.NewTriangle(low, high, mode, src)
	return funcSampler(d.Rand)
}

// NewDeterministic returns a sampler that always yields value.
func NewDeterministic(value float64) Sampler {
	return funcSampler(func() float64 { return value })
}

// NewEmpirical returns a sampler over the given value -> weight table.
// Weights need not sum to one. Values are walked in sorted order so two
// samplers built from the same map behave identically.
func NewEmpirical(src rand.Source, weights map[float64]float64) Sampler {
	if len(weights) == 0 {
		panic("sim: empirical sampler needs at least one value")
	}
	values := make([]float64, 0, len(weights))
	total := 0.0
	for v, w := range weights {
		if w < 0 {
			panic(fmt.Sprintf("sim: empirical weight for %f is negative", v))
		}
		values = append(values, v)
		total += w
	}
	if total <= 0 {
		panic("sim: empirical weights sum to zero")
	}
	sort.Float64s(values)
	rng := rand.New(src)
	return funcSampler(func() float64 {
		u := rng.Float64() * total
		acc := 0.0
		for _, v := range values {
			acc += weights[v]
			if u <= acc {
				return v
			}
		}
		return values[len(values)-1]
	})
}

// clip maps a raw draw to a usable duration. Negative draws (possible for
// normal-like distributions) become zero; NaN means a misconfigured sampler
// and panics.
func clip(v float64) float64 {
	if math.IsNaN(v) {
		panic("sim: sampler produced NaN")
	}
	if v < 0 {
		return 0
	}
	return v
}

// SamplerSpec is the serialisable form of a sampler, used by scenario files
// and parameter studies. Build materialises the concrete distribution
// against a random source.
type SamplerSpec struct {
	Dist   string              `yaml:"dist"`
	Mean   float64             `yaml:"mean,omitempty"`
	SD     float64             `yaml:"sd,omitempty"`
	Low    float64             `yaml:"low,omitempty"`
	High   float64             `yaml:"high,omitempty"`
	Mode   float64             `yaml:"mode,omitempty"`
	Value  float64             `yaml:"value,omitempty"`
	Values map[float64]float64 `yaml:"values,omitempty"`
}

// Build returns the sampler described by the spec, drawing from src.
func (s SamplerSpec) Build(src rand.Source) (sampler Sampler, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sampler %q: %v", s.Dist, r)
		}
	}()
	switch s.Dist {
	case "exp", "exponential":
		return NewExp(src, s.Mean), nil
	case "lognormal":
		return NewLogNormal(src, s.Mean, s.SD), nil
	case "gamma":
		return NewGamma(src, s.Mean, s.SD), nil
	case "uniform":
		return NewUniform(src, s.Low, s.High), nil
	case "triangular":
		return NewTriangular(src, s.Low, s.Mode, s.High), nil
	case "deterministic", "constant":
		return NewDeterministic(s.Value), nil
	case "empirical":
		return NewEmpirical(src, s.Values), nil
	default:
		return nil, fmt.Errorf("unknown distribution %q", s.Dist)
	}
}
