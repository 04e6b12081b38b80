package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency caps the number of evaluations running at once.
const batchConcurrency = 8

// Evaluation pairs an assessment's computed summary with its alerts.
type Evaluation struct {
	Summary *Summary `json:"summary" yaml:"summary"`
	Alerts  []Alert  `json:"alerts" yaml:"alerts"`
}

// EvaluateBatch evaluates many assessments in parallel. Each evaluation is
// independent and pure, so no coordination beyond the fan-out is needed.
// Results are returned in input order.
func EvaluateBatch(ctx context.Context, assessments []*Assessment, w Weights, th Thresholds) ([]*Evaluation, error) {
	results := make([]*Evaluation, len(assessments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, a := range assessments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := Aggregate(a, w)
			results[i] = &Evaluation{
				Summary: s,
				Alerts:  Evaluate(a, s, th),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
