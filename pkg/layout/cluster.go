package layout

import "slices"

// adjacency builds undirected neighbor lists from the arena's valid edges.
// Each neighbor appears once, in order of its first relationship.
func adjacency(a *arena) [][]int {
	adj := make([][]int, a.len())
	seen := make(map[edge]bool, 2*len(a.edges))
	for _, e := range a.edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		seen[edge{from: e.to, to: e.from}] = true
		adj[e.from] = append(adj[e.from], e.to)
		adj[e.to] = append(adj[e.to], e.from)
	}
	return adj
}

// detectClusters partitions tables into connected components. Traversal
// starts from each unvisited table in declaration order and is a depth-first
// pre-order walk, so member order is deterministic. Components are returned
// largest first; equal sizes keep discovery order.
func detectClusters(a *arena) [][]int {
	adj := adjacency(a)
	visited := make([]bool, a.len())

	type frame struct{ node, next int }

	var clusters [][]int
	for start := range a.len() {
		if visited[start] {
			continue
		}
		visited[start] = true
		members := []int{start}
		stack := []frame{{node: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(adj[top.node]) {
				stack = stack[:len(stack)-1]
				continue
			}
			nb := adj[top.node][top.next]
			top.next++
			if !visited[nb] {
				visited[nb] = true
				members = append(members, nb)
				stack = append(stack, frame{node: nb})
			}
		}
		clusters = append(clusters, members)
	}

	slices.SortStableFunc(clusters, func(x, y []int) int {
		return len(y) - len(x)
	})
	return clusters
}

// exportClusters converts index clusters to named clusters.
func exportClusters(a *arena, clusters [][]int) []Cluster {
	out := make([]Cluster, len(clusters))
	for i, members := range clusters {
		names := make([]string, len(members))
		for j, m := range members {
			names[j] = a.names[m]
		}
		out[i] = Cluster{Tables: names, Size: len(members)}
	}
	return out
}
