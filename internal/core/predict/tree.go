package predict

import "sort"

// Node is one decision node in a regression tree. Leaves carry the mean
// label of their training subset; internal nodes route on a single
// feature threshold. Indices address the flat Nodes slice so trees
// serialize with gob without pointer cycles.
type Node struct {
	Leaf      bool
	Value     float64
	Feature   int
	Threshold float64
	Left      int
	Right     int
}

// Tree is a CART regression tree fit by variance reduction.
type Tree struct {
	Nodes []Node
}

// Predict walks the tree for one feature vector.
func (t *Tree) Predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// growTree fits a tree on the rows addressed by idx. idx may contain
// duplicates (bootstrap samples).
func growTree(X [][]float64, y []float64, idx []int, maxDepth, minLeaf int) *Tree {
	t := &Tree{}
	t.grow(X, y, idx, 0, maxDepth, minLeaf)
	return t
}

// grow appends the subtree for idx and returns its node index.
func (t *Tree) grow(X [][]float64, y []float64, idx []int, depth, maxDepth, minLeaf int) int {
	if depth >= maxDepth || len(idx) < 2*minLeaf || constantLabels(y, idx) {
		return t.appendLeaf(meanLabel(y, idx))
	}

	feature, threshold, ok := bestSplit(X, y, idx, minLeaf)
	if !ok {
		return t.appendLeaf(meanLabel(y, idx))
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	node := t.appendNode(Node{Feature: feature, Threshold: threshold})
	t.Nodes[node].Left = t.grow(X, y, left, depth+1, maxDepth, minLeaf)
	t.Nodes[node].Right = t.grow(X, y, right, depth+1, maxDepth, minLeaf)
	return node
}

func (t *Tree) appendLeaf(value float64) int {
	return t.appendNode(Node{Leaf: true, Value: value})
}

func (t *Tree) appendNode(n Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// bestSplit scans every feature for the threshold minimizing the summed
// squared error of the two children. Candidate thresholds are midpoints
// between consecutive distinct feature values. Splits leaving fewer than
// minLeaf rows on a side are skipped.
func bestSplit(X [][]float64, y []float64, idx []int, minLeaf int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	if n < 2 {
		return 0, 0, false
	}

	bestSSE := parentSSE(y, idx)
	width := len(X[idx[0]])

	order := make([]int, n)
	for f := 0; f < width; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		// prefix sums over the sorted order
		sumLeft, sqLeft := 0.0, 0.0
		sumTotal, sqTotal := 0.0, 0.0
		for _, i := range order {
			sumTotal += y[i]
			sqTotal += y[i] * y[i]
		}
		for pos := 0; pos < n-1; pos++ {
			i := order[pos]
			sumLeft += y[i]
			sqLeft += y[i] * y[i]

			nl := pos + 1
			nr := n - nl
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			xv, xn := X[i][f], X[order[pos+1]][f]
			if xv == xn {
				continue
			}

			sumRight := sumTotal - sumLeft
			sqRight := sqTotal - sqLeft
			sse := (sqLeft - sumLeft*sumLeft/float64(nl)) + (sqRight - sumRight*sumRight/float64(nr))
			if sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = (xv + xn) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func parentSSE(y []float64, idx []int) float64 {
	var sum, sq float64
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	return sq - sum*sum/float64(len(idx))
}

func meanLabel(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func constantLabels(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}
