package utils

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// CreateContactNetwork builds an Erdős–Rényi G(n, p) contact graph. Every
// unordered pair of nodes is connected independently with probability
// edgeProbability. The same seed always yields the same graph.
//
// Node IDs are 0..nodeCount-1 and the edge set never changes after
// construction.
func CreateContactNetwork(nodeCount int, edgeProbability float64, seed int64) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < nodeCount; i++ {
		g.AddNode(simple.Node(i))
	}

	for i := 0; i < nodeCount; i++ {
		for j := i + 1; j < nodeCount; j++ {
			if rng.Float64() < edgeProbability {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}

	return g
}

// SortedNeighbors returns the neighbor IDs of a node in ascending order.
// Gonum's iterators have no order guarantee; every consumer that draws
// random numbers over neighbors goes through this to stay reproducible.
func SortedNeighbors(g *simple.UndirectedGraph, nodeID int64) []int64 {
	var ids []int64
	it := g.From(nodeID)
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// AverageDegree returns the mean node degree of the graph.
func AverageDegree(g *simple.UndirectedGraph) float64 {
	nodes := g.Nodes()
	count := 0
	sum := 0
	for nodes.Next() {
		count++
		sum += g.From(nodes.Node().ID()).Len()
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// Density returns avgDegree / (n-1), the fraction of possible contacts each
// agent actually has. Degenerate sizes yield 0.
func Density(avgDegree float64, nodeCount int) float64 {
	if nodeCount <= 1 {
		return 0
	}
	return avgDegree / float64(nodeCount-1)
}
