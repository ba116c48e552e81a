package mesh

// edgeKey identifies an undirected edge by its sorted endpoints.
type edgeKey struct {
	a, b uint32
}

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Analyze computes topology statistics: vertex/edge/face counts, whether
// the surface is manifold, and the number of boundary rings (holes). An
// edge bordering exactly one triangle is a boundary edge; chains of
// boundary edges close into rings, and each ring is one hole.
func (m *Mesh) Analyze() Stats {
	stats := Stats{
		VertexCount: len(m.Positions),
		FaceCount:   len(m.Triangles),
	}

	if len(m.Triangles) == 0 {
		return stats
	}

	edgeFaces := make(map[edgeKey]int, len(m.Triangles)*3/2)
	for _, tri := range m.Triangles {
		edgeFaces[newEdgeKey(tri[0], tri[1])]++
		edgeFaces[newEdgeKey(tri[1], tri[2])]++
		edgeFaces[newEdgeKey(tri[2], tri[0])]++
	}
	stats.EdgeCount = len(edgeFaces)

	overshared := false
	boundary := make(map[edgeKey]bool)
	for e, n := range edgeFaces {
		switch {
		case n == 1:
			boundary[e] = true
		case n > 2:
			overshared = true
		}
	}

	stats.HoleCount = countBoundaryRings(boundary)
	stats.IsManifold = len(boundary) == 0 && !overshared
	return stats
}

// countBoundaryRings counts connected components of the boundary-edge graph.
// Every component of a well-formed boundary is a closed loop.
func countBoundaryRings(boundary map[edgeKey]bool) int {
	if len(boundary) == 0 {
		return 0
	}

	adj := make(map[uint32][]uint32, len(boundary))
	for e := range boundary {
		adj[e.a] = append(adj[e.a], e.b)
		adj[e.b] = append(adj[e.b], e.a)
	}

	visited := make(map[uint32]bool, len(adj))
	rings := 0

	for start := range adj {
		if visited[start] {
			continue
		}
		rings++

		stack := []uint32{start}
		visited[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range adj[v] {
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return rings
}
