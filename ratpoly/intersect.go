// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ratpoly

import (
	"github.com/solvespace/solvespace-sub002/shell"
)

// MaxIntersectIterations bounds ThreeSurfaceIntersect's planar-approximation
// and Newton refinement loop (§4.7's "limit 20 iterations").
const MaxIntersectIterations = 20

// SurfaceTangent returns the tangent direction of the curve formed by two
// surfaces crossing at (p, via the given (u,v) pair on each): the cross
// product of their two normals, oriented to agree with hint (§4.7's
// "Surface-surface tangent at a point").
func SurfaceTangent(a shell.SSurface, ua, va float64, b shell.SSurface, ub, vb float64, hint shell.Vec3) shell.Vec3 {
	na := Normal(a, ua, va)
	nb := Normal(b, ub, vb)
	t := na.Cross(nb)
	if t.Len() < RatpolyEps {
		return shell.Vec3{}
	}
	t = t.Normalize()
	if t.Dot(hint) < 0 {
		t = t.Scale(-1)
	}
	return t
}

// ThreeSurfaceIntersect finds a point lying on all three surfaces a, b, c
// simultaneously (the vertex where three trimmed faces meet), starting from
// the parameter guesses (ua,va), (ub,vb), (uc,vc) and iterating planar
// approximation plus Newton refinement (§4.7's "Three-surface
// intersection").
func ThreeSurfaceIntersect(
	a shell.SSurface, ua, va float64,
	b shell.SSurface, ub, vb float64,
	c shell.SSurface, uc, vc float64,
) (p shell.Vec3, ok bool) {
	for iter := 0; iter < MaxIntersectIterations; iter++ {
		pa := EvalSurface(a, ua, va)
		pb := EvalSurface(b, ub, vb)
		pc := EvalSurface(c, uc, vc)

		na := Normal(a, ua, va)
		nb := Normal(b, ub, vb)
		nc := Normal(c, uc, vc)

		mid := pa.Add(pb).Add(pc).Scale(1.0 / 3.0)
		guess, converged := planeTripleIntersect(pa, na, pb, nb, pc, nc, mid)
		if !converged {
			return shell.Vec3{}, false
		}

		var invA, invB, invC bool
		ua, va, invA = Invert(a, guess, &[2]float64{ua, va})
		ub, vb, invB = Invert(b, guess, &[2]float64{ub, vb})
		uc, vc, invC = Invert(c, guess, &[2]float64{uc, vc})
		if !invA || !invB || !invC {
			return shell.Vec3{}, false
		}

		pa2 := EvalSurface(a, ua, va)
		pb2 := EvalSurface(b, ub, vb)
		pc2 := EvalSurface(c, uc, vc)
		spread := pa2.Sub(pb2).Len() + pb2.Sub(pc2).Len() + pc2.Sub(pa2).Len()
		if spread < RatpolyEps {
			return pa2.Add(pb2).Add(pc2).Scale(1.0 / 3.0), true
		}
	}
	return shell.Vec3{}, false
}

// planeTripleIntersect solves for the point that lies on all three tangent
// planes (pi, ni), i.e. ni . (x - pi) = 0 for i in {a,b,c}, via Cramer's
// rule on the 3x3 system with rows na, nb, nc; a singular system (the
// planes don't meet at a point) falls back to fallback instead of
// propagating NaN.
func planeTripleIntersect(pa, na, pb, nb, pc, nc, fallback shell.Vec3) (shell.Vec3, bool) {
	rhs := [3]float64{na.Dot(pa), nb.Dot(pb), nc.Dot(pc)}
	c0 := [3]float64{na.X, nb.X, nc.X}
	c1 := [3]float64{na.Y, nb.Y, nc.Y}
	c2 := [3]float64{na.Z, nb.Z, nc.Z}

	d := det3(c0, c1, c2)
	if d > -1e-14 && d < 1e-14 {
		return fallback, true
	}
	x := det3(rhs, c1, c2) / d
	y := det3(c0, rhs, c2) / d
	z := det3(c0, c1, rhs) / d
	return shell.Vec3{X: x, Y: y, Z: z}, true
}

// det3 is the determinant of the 3x3 matrix whose columns are c0, c1, c2.
func det3(c0, c1, c2 [3]float64) float64 {
	return c0[0]*(c1[1]*c2[2]-c1[2]*c2[1]) -
		c1[0]*(c0[1]*c2[2]-c0[2]*c2[1]) +
		c2[0]*(c0[1]*c1[2]-c0[2]*c1[1])
}
