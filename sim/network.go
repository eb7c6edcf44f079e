package sim

import "fmt"

// BuildNetwork wires an arbitrary open network from routing matrices.
//
// arrivalRates has one row per source and one column per process.
// routingRates has one row per process and one column per target, targets
// being the processes followed by the disposes in order. In both matrices a
// row with exactly one positive entry is wired directly to that target;
// rows with several positive entries get a rate-proportional Decide. A row
// with no positive entry leaves its source or process without an exit,
// which is an error.
func BuildNetwork(sim *Simulator, sources []*Source, processes []*Process, disposes []*Dispose, arrivalRates, routingRates [][]float64) error {
	if len(arrivalRates) != len(sources) {
		return fmt.Errorf("arrival matrix has %d rows for %d sources", len(arrivalRates), len(sources))
	}
	if len(routingRates) != len(processes) {
		return fmt.Errorf("routing matrix has %d rows for %d processes", len(routingRates), len(processes))
	}
	targets := make([]Station, 0, len(processes)+len(disposes))
	for _, p := range processes {
		targets = append(targets, p)
	}
	for _, d := range disposes {
		targets = append(targets, d)
	}

	for i, src := range sources {
		row := arrivalRates[i]
		if len(row) != len(processes) {
			return fmt.Errorf("arrival row %d has %d entries for %d processes", i, len(row), len(processes))
		}
		positive := positiveEntries(row)
		switch len(positive) {
		case 0:
			return fmt.Errorf("source %s routes nowhere", src.Name())
		case 1:
			src.SetNext(processes[positive[0]])
		default:
			dec := NewDecide(sim, src.Name()+"_decide")
			for _, j := range positive {
				dec.AddNext(processes[j], row[j])
			}
			src.SetNext(dec)
		}
	}

	for i, proc := range processes {
		row := routingRates[i]
		if len(row) != len(targets) {
			return fmt.Errorf("routing row %d has %d entries for %d targets", i, len(row), len(targets))
		}
		positive := positiveEntries(row)
		switch len(positive) {
		case 0:
			return fmt.Errorf("process %s routes nowhere", proc.Name())
		case 1:
			proc.SetNext(targets[positive[0]])
		default:
			dec := NewDecide(sim, proc.Name()+"_decide")
			for _, j := range positive {
				dec.AddNext(targets[j], row[j])
			}
			proc.SetNext(dec)
		}
	}
	return nil
}

func positiveEntries(row []float64) []int {
	var out []int
	for j, r := range row {
		if r > 0 {
			out = append(out, j)
		}
	}
	return out
}
