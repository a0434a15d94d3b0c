package utils

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/graph/simple"
)

// NetworkXGraph mirrors the adjacency dict shape networkx uses, so dumped
// contact graphs can be inspected with the usual Python tooling.
type NetworkXGraph struct {
	Adjacency map[int64]map[int64]any  `msgpack:"adjacency"`
	Directed  bool                     `msgpack:"directed"`
	Nodes     map[int64]map[string]any `msgpack:"nodes"`
	Graph     map[string]any           `msgpack:"graph"`
}

func SerializeGraph(g *simple.UndirectedGraph) *NetworkXGraph {
	nxGraph := &NetworkXGraph{
		Adjacency: make(map[int64]map[int64]any),
		Directed:  false,
		Nodes:     make(map[int64]map[string]any),
		Graph:     make(map[string]any),
	}

	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		nxGraph.Nodes[id] = make(map[string]any)
		nxGraph.Adjacency[id] = make(map[int64]any)
	}

	// undirected: record both directions, as networkx does
	edges := g.Edges()
	for edges.Next() {
		edge := edges.Edge()
		from := edge.From().ID()
		to := edge.To().ID()
		nxGraph.Adjacency[from][to] = map[string]any{}
		nxGraph.Adjacency[to][from] = map[string]any{}
	}

	nxGraph.Graph["name"] = "Generated from Gonum UndirectedGraph"

	return nxGraph
}

func DeserializeGraph(nxGraph *NetworkXGraph) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()

	for nodeID := range nxGraph.Nodes {
		g.AddNode(simple.Node(nodeID))
	}

	// nodes present only in the adjacency table
	for nodeID := range nxGraph.Adjacency {
		if _, exists := nxGraph.Nodes[nodeID]; !exists {
			g.AddNode(simple.Node(nodeID))
		}
	}

	for fromID, targets := range nxGraph.Adjacency {
		for toID := range targets {
			if fromID == toID {
				continue
			}
			if g.Node(toID) == nil {
				g.AddNode(simple.Node(toID))
			}
			if !g.HasEdgeBetween(fromID, toID) {
				g.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
			}
		}
	}

	return g
}

func SaveGraphToFile(g *simple.UndirectedGraph, filename string) error {
	nxGraph := SerializeGraph(g)

	data, err := msgpack.Marshal(nxGraph)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

func LoadGraphFromFile(filename string) (*simple.UndirectedGraph, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var nxGraph NetworkXGraph
	err = msgpack.Unmarshal(data, &nxGraph)
	if err != nil {
		return nil, err
	}

	return DeserializeGraph(&nxGraph), nil
}
