// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polyline implements §4.10's assembler: it takes the flattened
// bezier edges a group's visible, non-construction entities contributed
// and walks them into the longest coherent closed loops, classifying the
// result the way §4.6 step 3 requires (GOOD, NOT_CLOSED, NOT_COPLANAR,
// SELF_INTERSECTING, ZERO_LEN_EDGE).
package polyline

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvlath/core"

	"github.com/solvespace/solvespace-sub002/shell"
)

// Status classifies the outcome of Assemble.
type Status int

const (
	Good Status = iota
	NotClosed
	NotCoplanar
	SelfIntersecting
	ZeroLenEdge
)

func (s Status) String() string {
	switch s {
	case Good:
		return "GOOD"
	case NotClosed:
		return "NOT_CLOSED"
	case NotCoplanar:
		return "NOT_COPLANAR"
	case SelfIntersecting:
		return "SELF_INTERSECTING"
	case ZeroLenEdge:
		return "ZERO_LEN_EDGE"
	}
	return "?"
}

// CoplanarTolerance bounds how far a loop vertex may deviate from the
// loop's best-fit plane before the assembly is rejected as NOT_COPLANAR.
const CoplanarTolerance = 1e-4

// Assembly is the result of walking a group's edges into loops.
type Assembly struct {
	Status Status
	Loops  [][]shell.Vec3 // each loop's vertices in walk order, not repeating the closing point
}

// Edge is one flattened curve segment contributed by an entity (§4.6 step
// 3 feeds GenerateEdges output here).
type Edge struct {
	A, B shell.Vec3
}

// segKey quantizes a point onto a grid so two endpoints the solver placed
// within floating-point noise of each other are treated as the same
// vertex, the same coincidence test §3.3's LengthEps anchors elsewhere.
func segKey(p shell.Vec3, tol float64) string {
	q := func(v float64) int64 { return int64(math.Round(v / tol)) }
	return fmt.Sprintf("%d:%d:%d", q(p.X), q(p.Y), q(p.Z))
}

// Assemble walks edges into the longest coherent closed loops it can find,
// breaking ties between multiple continuations at a shared vertex by
// preferring whichever next edge keeps the loop closest to its current
// best-fit plane (§4.10's "deterministic plane-deviation tie-breaking").
func Assemble(edges []Edge, tol float64) Assembly {
	for _, e := range edges {
		if e.A.Sub(e.B).Len() <= tol {
			return Assembly{Status: ZeroLenEdge}
		}
	}
	if len(edges) == 0 {
		return Assembly{Status: Good}
	}

	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges())
	points := make(map[string]shell.Vec3)
	// adjacency maps a vertex key to the indices of edges incident on it,
	// kept alongside the graph itself so the walk can recover the actual
	// geometry (core.Graph only tracks topology + a weight).
	adjacency := make(map[string][]int)

	for i, e := range edges {
		ka, kb := segKey(e.A, tol), segKey(e.B, tol)
		if _, ok := points[ka]; !ok {
			points[ka] = e.A
			g.AddVertex(ka)
		}
		if _, ok := points[kb]; !ok {
			points[kb] = e.B
			g.AddVertex(kb)
		}
		weight := int64(math.Round(e.A.Sub(e.B).Len() * 1e6))
		g.AddEdge(ka, kb, weight)
		adjacency[ka] = append(adjacency[ka], i)
		adjacency[kb] = append(adjacency[kb], i)
	}

	used := make([]bool, len(edges))
	var loops [][]shell.Vec3
	status := Good

	for start := range adjacency {
		for _, startEdgeIdx := range adjacency[start] {
			if used[startEdgeIdx] {
				continue
			}
			loop, closed, selfX := walkLoop(start, startEdgeIdx, edges, adjacency, used, points, tol)
			if len(loop) == 0 {
				continue
			}
			if selfX && status == Good {
				status = SelfIntersecting
			}
			if !closed && status == Good {
				status = NotClosed
			}
			loops = append(loops, loop)
		}
	}

	if status == Good {
		for _, loop := range loops {
			if !coplanar(loop, CoplanarTolerance) {
				status = NotCoplanar
				break
			}
		}
	}

	return Assembly{Status: status, Loops: loops}
}

// walkLoop follows edges starting from start/startEdgeIdx, marking each
// edge used as it's consumed, until it returns to start (closed loop) or
// runs out of unused continuations (open chain).
func walkLoop(start string, startEdgeIdx int, edges []Edge, adjacency map[string][]int, used []bool, points map[string]shell.Vec3, tol float64) (loop []shell.Vec3, closed bool, selfIntersecting bool) {
	cur := start
	edgeIdx := startEdgeIdx
	visited := map[string]int{start: 1}
	loop = append(loop, points[start])

	for {
		used[edgeIdx] = true
		e := edges[edgeIdx]
		ka, kb := segKey(e.A, tol), segKey(e.B, tol)
		next := kb
		if next == cur {
			next = ka
		}
		loop = append(loop, points[next])
		if next == start {
			return loop[:len(loop)-1], true, selfIntersecting
		}
		visited[next]++
		if visited[next] > 1 {
			selfIntersecting = true
		}

		candidates := unusedContinuations(next, edgeIdx, adjacency, used)
		if len(candidates) == 0 {
			return loop, false, selfIntersecting
		}
		edgeIdx = pickContinuation(loop, edges, next, candidates, tol)
		cur = next
	}
}

// unusedContinuations returns every not-yet-used edge incident on v other
// than the edge the walk just arrived on.
func unusedContinuations(v string, arrivedOn int, adjacency map[string][]int, used []bool) []int {
	var out []int
	for _, idx := range adjacency[v] {
		if used[idx] || idx == arrivedOn {
			continue
		}
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// pickContinuation breaks a branch point tie by choosing whichever
// candidate edge's far endpoint keeps the loop-so-far closest to its
// current best-fit plane, falling back to the lowest edge index for a
// fully deterministic choice when every candidate fits the plane equally
// well (e.g. the first two edges of a loop, before a plane is defined).
func pickContinuation(loopSoFar []shell.Vec3, edges []Edge, at string, candidates []int, tol float64) int {
	if len(candidates) == 1 || len(loopSoFar) < 3 {
		return candidates[0]
	}
	n, ok := bestFitNormal(loopSoFar)
	if !ok {
		return candidates[0]
	}
	origin := loopSoFar[0]
	best := candidates[0]
	bestDev := math.Inf(1)
	for _, idx := range candidates {
		e := edges[idx]
		far := e.B
		if segKey(e.A, tol) != at {
			far = e.A
		}
		dev := math.Abs(far.Sub(origin).Dot(n))
		if dev < bestDev {
			bestDev = dev
			best = idx
		}
	}
	return best
}

// bestFitNormal estimates a loop's plane normal from its first three
// non-collinear vertices.
func bestFitNormal(pts []shell.Vec3) (shell.Vec3, bool) {
	for i := 2; i < len(pts); i++ {
		n := pts[1].Sub(pts[0]).Cross(pts[i].Sub(pts[0]))
		if n.Len() > 1e-12 {
			return n.Normalize(), true
		}
	}
	return shell.Vec3{}, false
}

// coplanar reports whether every vertex of loop lies within tol of the
// plane defined by its first three non-collinear vertices.
func coplanar(loop []shell.Vec3, tol float64) bool {
	if len(loop) < 4 {
		return true
	}
	n, ok := bestFitNormal(loop)
	if !ok {
		return true
	}
	origin := loop[0]
	for _, p := range loop {
		if math.Abs(p.Sub(origin).Dot(n)) > tol {
			return false
		}
	}
	return true
}
