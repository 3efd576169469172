package predict

import "math/rand"

// Forest is a bootstrap-aggregated ensemble of regression trees. The
// ensemble prediction is the mean of the member trees.
type Forest struct {
	Trees []*Tree
}

// growForest fits cfg.Trees trees, each on a bootstrap sample drawn from
// a rand.Rand seeded with cfg.Seed. The same seed over the same training
// set yields an identical forest.
func growForest(X [][]float64, y []float64, cfg Config) *Forest {
	rng := rand.New(rand.NewSource(cfg.Seed))
	minLeaf := cfg.MinLeaf
	if minLeaf < 1 {
		minLeaf = 1
	}

	trees := make([]*Tree, cfg.Trees)
	for t := range trees {
		idx := make([]int, len(y))
		for i := range idx {
			idx[i] = rng.Intn(len(y))
		}
		trees[t] = growTree(X, y, idx, cfg.MaxDepth, minLeaf)
	}
	return &Forest{Trees: trees}
}

// Predict returns the mean prediction over all trees.
func (f *Forest) Predict(x []float64) float64 {
	var sum float64
	for _, t := range f.Trees {
		sum += t.Predict(x)
	}
	return sum / float64(len(f.Trees))
}
