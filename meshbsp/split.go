// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import "github.com/solvespace/solvespace-sub002/shell"

// splitTriangle classifies t's three vertices against pl and, if t
// straddles it, cuts t into sub-triangles wholly on one side or the
// other — the "1+3 or 2+2 or 1+1+1+1 sub-pieces" of §4.8's construction
// step. A triangle whose vertices are all on one side or coplanar goes to
// that side whole; in a genuine straddle a coplanar vertex is shared by
// the positive and the negative piece.
func splitTriangle(t Triangle, pl plane) (pos, neg []Triangle) {
	v := [3]shell.Vec3{t.A, t.B, t.C}
	s := [3]int{pl.side(v[0]), pl.side(v[1]), pl.side(v[2])}

	allSide := func(want int) bool {
		for _, x := range s {
			if x != 0 && x != want {
				return false
			}
		}
		return true
	}
	if allSide(1) {
		return []Triangle{t}, nil
	}
	if allSide(-1) {
		return nil, []Triangle{t}
	}

	// genuine straddle: walk the triangle's edges, emitting each vertex to
	// its side and inserting the plane-crossing point whenever consecutive
	// vertices disagree in (strict) sign.
	var posPts, negPts []shell.Vec3
	for i := 0; i < 3; i++ {
		cur, next := i, (i+1)%3
		sc, sn := s[cur], s[next]
		switch {
		case sc > 0:
			posPts = append(posPts, v[cur])
		case sc < 0:
			negPts = append(negPts, v[cur])
		default:
			posPts = append(posPts, v[cur])
			negPts = append(negPts, v[cur])
		}
		if (sc > 0 && sn < 0) || (sc < 0 && sn > 0) {
			x := pl.intersect(v[cur], v[next])
			posPts = append(posPts, x)
			negPts = append(negPts, x)
		}
	}
	pos = fanTriangulate(posPts, t.FaceEnt)
	neg = fanTriangulate(negPts, t.FaceEnt)
	return
}

// fanTriangulate re-triangulates a convex polygon (3 or 4 points, the only
// shapes splitTriangle ever produces) as a fan from its first vertex.
func fanTriangulate(pts []shell.Vec3, faceEnt uint32) []Triangle {
	if len(pts) < 3 {
		return nil
	}
	var out []Triangle
	for i := 1; i < len(pts)-1; i++ {
		out = append(out, Triangle{A: pts[0], B: pts[i], C: pts[i+1], FaceEnt: faceEnt})
	}
	return out
}
