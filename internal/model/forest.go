package model

import (
	"math"
	"math/rand"
	"sort"
)

type ForestOptions struct {
	Trees    int
	MaxDepth int
	MinSplit int
	Seed     int64
}

// Node is one tree node. Internal nodes send a sample right when the
// feature is present.
type Node struct {
	Feature int    `json:"f"`
	Left    int    `json:"l"`
	Right   int    `json:"r"`
	Label   string `json:"v,omitempty"`
	Leaf    bool   `json:"leaf,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t Tree) predict(x SparseVector) string {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Label
		}
		if x.Has(n.Feature) {
			i = n.Right
		} else {
			i = n.Left
		}
	}
}

// Forest is a bagged ensemble of presence-split decision trees over a
// discrete label set.
type Forest struct {
	Trees []Tree `json:"trees"`
}

type Vote struct {
	Label string
	Share float64
}

func (f *Forest) Predict(x SparseVector) Vote {
	if f == nil || len(f.Trees) == 0 {
		return Vote{}
	}
	counts := map[string]int{}
	for _, t := range f.Trees {
		counts[t.predict(x)]++
	}
	label, n := majority(counts)
	return Vote{Label: label, Share: float64(n) / float64(len(f.Trees))}
}

func FitForest(xs []SparseVector, labels []string, opts ForestOptions) *Forest {
	if opts.Trees < 1 {
		opts.Trees = 1
	}
	if opts.MinSplit < 2 {
		opts.MinSplit = 2
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	f := &Forest{Trees: make([]Tree, 0, opts.Trees)}
	if len(xs) == 0 {
		return f
	}
	for t := 0; t < opts.Trees; t++ {
		sample := make([]int, len(xs))
		for i := range sample {
			sample[i] = rng.Intn(len(xs))
		}
		b := treeBuilder{xs: xs, labels: labels, opts: opts, rng: rng}
		b.grow(sample, 0)
		f.Trees = append(f.Trees, Tree{Nodes: b.nodes})
	}
	return f
}

type treeBuilder struct {
	xs     []SparseVector
	labels []string
	opts   ForestOptions
	rng    *rand.Rand
	nodes  []Node
}

func (b *treeBuilder) grow(sample []int, depth int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{})

	counts := b.count(sample)
	label, _ := majority(counts)
	if len(counts) == 1 || len(sample) < b.opts.MinSplit || (b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth) {
		b.nodes[id] = Node{Leaf: true, Label: label}
		return id
	}

	feature, ok := b.bestSplit(sample, counts)
	if !ok {
		b.nodes[id] = Node{Leaf: true, Label: label}
		return id
	}

	var left, right []int
	for _, s := range sample {
		if b.xs[s].Has(feature) {
			right = append(right, s)
		} else {
			left = append(left, s)
		}
	}
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id] = Node{Feature: feature, Left: l, Right: r}
	return id
}

func (b *treeBuilder) count(sample []int) map[string]int {
	counts := map[string]int{}
	for _, s := range sample {
		counts[b.labels[s]]++
	}
	return counts
}

// bestSplit looks at sqrt(k) randomly ordered features out of the k present
// in the node, continuing past that budget only until some split improves on
// the parent. The lowest weighted Gini impurity wins.
func (b *treeBuilder) bestSplit(sample []int, counts map[string]int) (int, bool) {
	present := map[int]struct{}{}
	for _, s := range sample {
		for _, f := range b.xs[s].Index {
			present[f] = struct{}{}
		}
	}
	if len(present) == 0 {
		return 0, false
	}
	candidates := make([]int, 0, len(present))
	for f := range present {
		candidates = append(candidates, f)
	}
	sort.Ints(candidates)

	b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	k := int(math.Ceil(math.Sqrt(float64(len(candidates)))))

	parent := gini(counts, len(sample))
	best, bestScore := 0, parent
	found := false
	for i, f := range candidates {
		if i >= k && found {
			break
		}
		leftCounts, rightCounts := map[string]int{}, map[string]int{}
		nl, nr := 0, 0
		for _, s := range sample {
			if b.xs[s].Has(f) {
				rightCounts[b.labels[s]]++
				nr++
			} else {
				leftCounts[b.labels[s]]++
				nl++
			}
		}
		if nl == 0 || nr == 0 {
			continue
		}
		n := float64(len(sample))
		score := float64(nl)/n*gini(leftCounts, nl) + float64(nr)/n*gini(rightCounts, nr)
		if score < bestScore-1e-12 {
			best, bestScore, found = f, score, true
		}
	}
	return best, found
}

// gini sums squared counts as integers so the result does not depend on map
// iteration order.
func gini(counts map[string]int, n int) float64 {
	if n == 0 {
		return 0
	}
	sq := 0
	for _, c := range counts {
		sq += c * c
	}
	return 1 - float64(sq)/float64(n*n)
}

// majority picks the most frequent label; ties go to the smallest label so
// results never depend on map order.
func majority(counts map[string]int) (string, int) {
	label, best := "", -1
	for l, c := range counts {
		if c > best || (c == best && l < label) {
			label, best = l, c
		}
	}
	return label, best
}
