// Package gradcheck verifies engine gradients against central finite differences.
package gradcheck

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/majin-ml/majin/internal/autodiff"
	"github.com/majin-ml/majin/internal/autodiff/ops"
	"github.com/majin-ml/majin/internal/parallel"
)

// Options configures a check.
type Options struct {
	// Epsilon is the finite-difference step.
	Epsilon float64
	// Tolerance bounds |analytic - numeric| / max(1, |analytic|, |numeric|).
	Tolerance float64
	// Parallel controls how leaf evaluations are fanned out.
	Parallel parallel.Config
}

// DefaultOptions returns options suited to float64 graphs.
func DefaultOptions() Options {
	return Options{
		Epsilon:   1e-6,
		Tolerance: 1e-5,
		Parallel:  parallel.DefaultConfig(),
	}
}

// Result is the comparison for one leaf.
type Result struct {
	ID       autodiff.ID
	Label    string
	Analytic float64
	Numeric  float64
	Error    float64
	OK       bool
}

// Report holds the results of every leaf reachable from Root, ordered by ID.
type Report struct {
	Root    autodiff.ID
	Results []Result
}

// Passed reports whether every leaf is within tolerance.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Failures returns the results outside tolerance.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res)
		}
	}
	return out
}

// Check resets the gradients of the graph, runs a seeded gradient pass from
// root and compares the gradient of every reachable leaf with a central
// finite difference of root's value. Perturbed evaluations do not modify
// the graph and run in parallel according to opts.Parallel.
func Check[V constraints.Float](ctx context.Context, root autodiff.Node[V], opts Options) (Report, error) {
	if opts.Epsilon <= 0 {
		return Report{}, errors.Errorf("epsilon must be positive, got %g", opts.Epsilon)
	}
	if opts.Tolerance < 0 {
		return Report{}, errors.Errorf("tolerance must not be negative, got %g", opts.Tolerance)
	}

	g := root.Graph()
	g.ResetGradients()
	g.SeedRoot(root)
	g.Backward(root)

	leaves := leafIDs(g, root)
	report := Report{Root: root.ID(), Results: make([]Result, len(leaves))}

	err := parallel.For(ctx, len(leaves), func(_ context.Context, i int) error {
		leaf := g.Node(leaves[i])
		x := float64(leaf.Value())
		plus := float64(g.Evaluate(root, map[autodiff.ID]V{leaf.ID(): V(x + opts.Epsilon)}))
		minus := float64(g.Evaluate(root, map[autodiff.ID]V{leaf.ID(): V(x - opts.Epsilon)}))

		res := Result{
			ID:       leaf.ID(),
			Label:    leaf.Label(),
			Analytic: float64(leaf.Grad()),
			Numeric:  (plus - minus) / (2 * opts.Epsilon),
		}
		res.Error = relativeError(res.Analytic, res.Numeric)
		res.OK = res.Error <= opts.Tolerance
		report.Results[i] = res

		logrus.WithFields(logrus.Fields{
			"node":     res.ID,
			"label":    res.Label,
			"analytic": res.Analytic,
			"numeric":  res.Numeric,
			"error":    res.Error,
		}).Debug("gradient check")
		return nil
	}, opts.Parallel)
	if err != nil {
		return Report{}, errors.Wrap(err, "gradient check interrupted")
	}
	return report, nil
}

func leafIDs[V ops.Scalar](g *autodiff.Graph[V], root autodiff.Node[V]) []autodiff.ID {
	var ids []autodiff.ID
	for _, id := range g.Trace(root).Nodes {
		if g.Node(id).IsLeaf() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func relativeError(a, b float64) float64 {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) / scale
}
