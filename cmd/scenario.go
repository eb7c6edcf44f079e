package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qnetsim/qnetsim/sim"
)

// Scenario is the YAML description of an arbitrary open network: sources and
// processes by name, dispose names, and the two routing matrices consumed by
// sim.BuildNetwork.
type Scenario struct {
	Seed         uint64        `yaml:"seed,omitempty"`
	Sources      []SourceSpec  `yaml:"sources"`
	Processes    []ProcessSpec `yaml:"processes"`
	Disposes     []string      `yaml:"disposes"`
	ArrivalRates [][]float64   `yaml:"arrival_rates"`
	RoutingRates [][]float64   `yaml:"routing_rates"`
}

// SourceSpec describes one source station.
type SourceSpec struct {
	Name         string           `yaml:"name"`
	Count        int64            `yaml:"count"`
	InterArrival sim.SamplerSpec  `yaml:"inter_arrival"`
	ClientType   string           `yaml:"client_type,omitempty"`
	Batch        *sim.SamplerSpec `yaml:"batch,omitempty"`
}

// ProcessSpec describes one process station. Patience or a capacity bound
// routes cancelled clients to the first dispose.
type ProcessSpec struct {
	Name           string           `yaml:"name"`
	C              int              `yaml:"c,omitempty"`
	B              int              `yaml:"b,omitempty"`
	Service        sim.SamplerSpec  `yaml:"service"`
	Patience       *sim.SamplerSpec `yaml:"patience,omitempty"`
	PostProcessing *sim.SamplerSpec `yaml:"post_processing,omitempty"`
	K              int              `yaml:"k,omitempty"`
	LIFO           bool             `yaml:"lifo,omitempty"`
}

// LoadScenario parses a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// BuiltScenario holds a wired, runnable network.
type BuiltScenario struct {
	Sim       *sim.Simulator
	Sources   []*sim.Source
	Processes []*sim.Process
	Disposes  []*sim.Dispose
}

// Build materialises the scenario's samplers against a fresh simulator
// seeded with seed and wires the network from the rate matrices.
func (sc *Scenario) Build(seed uint64) (*BuiltScenario, error) {
	if len(sc.Sources) == 0 {
		return nil, fmt.Errorf("scenario has no sources")
	}
	if len(sc.Disposes) == 0 {
		return nil, fmt.Errorf("scenario has no disposes")
	}
	s := sim.NewSimulator(seed)

	sources := make([]*sim.Source, 0, len(sc.Sources))
	for _, spec := range sc.Sources {
		getI, err := spec.InterArrival.Build(s.RNG)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", spec.Name, err)
		}
		src := sim.NewSource(s, spec.Name, spec.Count, getI)
		if spec.ClientType != "" {
			src.SetClientType(spec.ClientType)
		}
		if spec.Batch != nil {
			getB, err := spec.Batch.Build(s.RNG)
			if err != nil {
				return nil, fmt.Errorf("source %s batch: %w", spec.Name, err)
			}
			src.SetBatchSize(getB)
		}
		sources = append(sources, src)
	}

	disposes := make([]*sim.Dispose, 0, len(sc.Disposes))
	for _, name := range sc.Disposes {
		disposes = append(disposes, sim.NewDispose(s, name))
	}

	processes := make([]*sim.Process, 0, len(sc.Processes))
	for _, spec := range sc.Processes {
		cfg := sim.ProcessConfig{C: spec.C, B: spec.B, K: spec.K, LIFO: spec.LIFO}
		getS, err := spec.Service.Build(s.RNG)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", spec.Name, err)
		}
		cfg.GetS = getS
		if spec.Patience != nil {
			getNu, err := spec.Patience.Build(s.RNG)
			if err != nil {
				return nil, fmt.Errorf("process %s patience: %w", spec.Name, err)
			}
			cfg.GetNu = getNu
		}
		if spec.PostProcessing != nil {
			getS2, err := spec.PostProcessing.Build(s.RNG)
			if err != nil {
				return nil, fmt.Errorf("process %s post-processing: %w", spec.Name, err)
			}
			cfg.GetS2 = getS2
		}
		proc := sim.NewProcess(s, spec.Name, cfg)
		if spec.Patience != nil || spec.K > 0 {
			proc.SetNextCancel(disposes[0])
		}
		processes = append(processes, proc)
	}

	if err := sim.BuildNetwork(s, sources, processes, disposes, sc.ArrivalRates, sc.RoutingRates); err != nil {
		return nil, err
	}
	return &BuiltScenario{Sim: s, Sources: sources, Processes: processes, Disposes: disposes}, nil
}
