// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import "github.com/solvespace/solvespace-sub002/shell"

// SBsp3 partitions a mesh's triangles by the plane of each triangle
// (§4.8). Pos/Neg are the subtrees for triangles strictly in front of or
// behind Plane; More groups later triangles that landed exactly coplanar
// with it, so coplanar faces stay together under one node; Edge is the
// in-plane 2D BSP built for this node. CombineMeshes classifies pieces by
// ray casting and does not consult Edge.
type SBsp3 struct {
	Plane plane
	Tri   Triangle
	More  []Triangle
	Pos   *SBsp3
	Neg   *SBsp3
	Edge  *SBsp2
}

// BuildBsp3 constructs a BSP from tris, per §4.8's construction step:
// randomize the order with the fixed-seed LCG, then insert one at a time.
func BuildBsp3(tris []Triangle) *SBsp3 {
	if len(tris) == 0 {
		return nil
	}
	shuffled := shuffleTriangles(tris, newLCG())
	return buildBsp3Node(shuffled)
}

func buildBsp3Node(tris []Triangle) *SBsp3 {
	if len(tris) == 0 {
		return nil
	}
	root := &SBsp3{Plane: planeOf(tris[0]), Tri: tris[0]}
	var pos, neg []Triangle
	for _, t := range tris[1:] {
		s := [3]int{root.Plane.side(t.A), root.Plane.side(t.B), root.Plane.side(t.C)}
		if s[0] == 0 && s[1] == 0 && s[2] == 0 {
			root.More = append(root.More, t)
			continue
		}
		p, n := splitTriangle(t, root.Plane)
		pos = append(pos, p...)
		neg = append(neg, n...)
	}
	root.Pos = buildBsp3Node(pos)
	root.Neg = buildBsp3Node(neg)
	root.Edge = buildFaceEdgeBsp(append([]Triangle{root.Tri}, root.More...), root.Plane)
	return root
}

// buildFaceEdgeBsp projects a coplanar group's triangle boundary edges
// into the plane's own 2D frame and builds the SBsp2 used to classify an
// in-plane point.
func buildFaceEdgeBsp(tris []Triangle, pl plane) *SBsp2 {
	u, v := planeBasis(pl.N)
	proj := func(p shell.Vec3) Vec2 { return Vec2{X: p.Sub(pl.N.Scale(pl.D)).Dot(u), Y: p.Sub(pl.N.Scale(pl.D)).Dot(v)} }
	var edges [][2]Vec2
	for _, t := range tris {
		edges = append(edges,
			[2]Vec2{proj(t.A), proj(t.B)},
			[2]Vec2{proj(t.B), proj(t.C)},
			[2]Vec2{proj(t.C), proj(t.A)},
		)
	}
	return buildBsp2(edges)
}

// planeBasis returns an arbitrary orthonormal (u, v) in-plane basis for a
// plane with normal n.
func planeBasis(n shell.Vec3) (u, v shell.Vec3) {
	ref := shell.Vec3{X: 1}
	if n.X > 0.9 || n.X < -0.9 {
		ref = shell.Vec3{Y: 1}
	}
	u = n.Cross(ref).Normalize()
	v = n.Cross(u).Normalize()
	return
}

// Triangles returns every triangle stored in the tree, in-order.
func (n *SBsp3) Triangles() []Triangle {
	if n == nil {
		return nil
	}
	out := n.Neg.Triangles()
	out = append(out, n.Tri)
	out = append(out, n.More...)
	out = append(out, n.Pos.Triangles()...)
	return out
}

// RayCastInside reports whether p lies inside the solid bounded by tris,
// by casting a ray in a fixed generic direction and counting crossings
// (§4.9's inside/outside convention, reused here for mesh booleans instead
// of walking the BSP's own accumulated sign trail — see DESIGN.md for why).
func RayCastInside(tris []Triangle, p shell.Vec3) bool {
	dir := shell.Vec3{X: 0.5773502691896258, Y: 0.5773502691896258, Z: 0.5773502691896258}
	return rayCastInsideDir(tris, p, dir)
}

// rayCastInsideDir is RayCastInside's direction-parameterized core, split
// out so classify (boolean.go) can cross-check two different cast
// directions to detect an ambiguous near-boundary point.
func rayCastInsideDir(tris []Triangle, p, dir shell.Vec3) bool {
	crossings := 0
	for _, t := range tris {
		if rayTriangleHit(p, dir, t) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayTriangleHit implements the Moller-Trumbore ray/triangle intersection
// test, reporting a hit only strictly ahead of p (t > eps).
func rayTriangleHit(orig, dir shell.Vec3, t Triangle) bool {
	const eps = 1e-12
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -eps && a < eps {
		return false
	}
	f := 1.0 / a
	s := orig.Sub(t.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}
	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}
	tParam := f * e2.Dot(q)
	return tParam > eps
}
