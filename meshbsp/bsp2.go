// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

// Vec2 is an in-plane 2D point/vector, the coordinates a coplanar group's
// vertices are projected to before building the edge BSP. Kept local to
// meshbsp (rather than added to shell.Vec3's package) since it only ever
// exists as a throwaway projection used inside this one classification.
type Vec2 struct{ X, Y float64 }

// SBsp2 partitions the in-plane edges of one coplanar group of triangles,
// used to decide whether a point that lands exactly on an SBsp3 node's
// plane is inside or outside that face (§4.8's 2D BSP). Each node holds
// one edge's in-plane half-plane; Pos is the side the edge's normal
// points into (conventionally "inside" the face), Neg the other.
type SBsp2 struct {
	A, B Vec2
	Pos  *SBsp2
	Neg  *SBsp2
}

// buildBsp2 builds an edge BSP from a coplanar polygon's boundary edges,
// one node per edge, inserted in order (the polygon itself supplies
// determinism, no shuffling needed since edges never straddle each other
// the way 3D triangles can straddle a cutting plane).
func buildBsp2(edges [][2]Vec2) *SBsp2 {
	if len(edges) == 0 {
		return nil
	}
	root := &SBsp2{A: edges[0][0], B: edges[0][1]}
	for _, e := range edges[1:] {
		root.insert(e[0], e[1])
	}
	return root
}

func (n *SBsp2) insert(a, b Vec2) {
	mid := Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	if n.side(mid) >= 0 {
		if n.Pos == nil {
			n.Pos = &SBsp2{A: a, B: b}
			return
		}
		n.Pos.insert(a, b)
		return
	}
	if n.Neg == nil {
		n.Neg = &SBsp2{A: a, B: b}
		return
	}
	n.Neg.insert(a, b)
}

// side returns the signed in-plane half-plane classification of p against
// the edge A->B: positive is to the left (the face-interior convention for
// a CCW-wound boundary).
func (n *SBsp2) side(p Vec2) float64 {
	ex, ey := n.B.X-n.A.X, n.B.Y-n.A.Y
	px, py := p.X-n.A.X, p.Y-n.A.Y
	return ex*py - ey*px
}

// Inside reports whether p lies inside the polygon the edge BSP was built
// from, by walking toward whichever child matches p's side at each node
// and reading the sign of the last edge reached — the 2D analogue of an
// SBsp3 walk. CombineMeshes does not call it; its inside/outside answers
// come from ray casting.
func (n *SBsp2) Inside(p Vec2) bool {
	if n == nil {
		// §9's design note: a coplanar leaf with no edge BSP lets the
		// triangle through rather than asserting.
		return true
	}
	s := n.side(p)
	if s >= 0 {
		if n.Pos == nil {
			return true
		}
		return n.Pos.Inside(p)
	}
	if n.Neg == nil {
		return false
	}
	return n.Neg.Inside(p)
}
