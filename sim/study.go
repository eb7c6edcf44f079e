package sim

import (
	"golang.org/x/sync/errgroup"
)

// RunStudy builds and runs n independent models with at most workers running
// at once. Each model is built inside its own goroutine by the factory, so
// every simulator, random source and recorder is confined to one goroutine
// and runs share nothing. Results are returned in run order.
func RunStudy(n, workers int, build func(run int) *Model) ([]*Model, error) {
	if workers < 1 {
		workers = 1
	}
	models := make([]*Model, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for run := 0; run < n; run++ {
		run := run
		g.Go(func() error {
			m := build(run)
			if err := m.Run(); err != nil {
				return err
			}
			models[run] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}
