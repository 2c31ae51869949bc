package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BuildFunc constructs a fresh, initialized system for one ensemble member.
type BuildFunc func(cfg Config) (*System, error)

// Ensemble runs independent systems built from variations of one config,
// for example a timestep sweep. Members share no state.
type Ensemble struct {
	build BuildFunc
	steps int
}

func NewEnsemble(build BuildFunc, steps int) *Ensemble {
	return &Ensemble{build: build, steps: steps}
}

// Run builds and advances one system per config concurrently. Results keep
// the order of cfgs.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			s, err := e.build(cfg)
			if err != nil {
				return err
			}
			res, err := s.RunSteps(ctx, e.steps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
