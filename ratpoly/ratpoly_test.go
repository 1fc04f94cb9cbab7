// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ratpoly

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

func unitLineBezier() shell.SBezier {
	return shell.NewLine(shell.Vec3{X: 0, Y: 0, Z: 0}, shell.Vec3{X: 1, Y: 0, Z: 0})
}

func bilinearPatch() shell.SSurface {
	var s shell.SSurface
	s.DegM, s.DegN = 1, 1
	s.Ctrl[0][0] = shell.Vec3{X: 0, Y: 0, Z: 0}
	s.Ctrl[1][0] = shell.Vec3{X: 1, Y: 0, Z: 0}
	s.Ctrl[0][1] = shell.Vec3{X: 0, Y: 1, Z: 0}
	s.Ctrl[1][1] = shell.Vec3{X: 1, Y: 1, Z: 0}
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			s.Weight[i][j] = 1
		}
	}
	return s
}

func TestEvalLineMidpoint(tst *testing.T) {
	chk.PrintTitle("a degree-1 Bezier evaluates to its linear interpolation")

	b := unitLineBezier()
	got := Eval(b, 0.5)
	want := shell.Vec3{X: 0.5, Y: 0, Z: 0}
	if !got.Equals(want, RatpolyEps) {
		tst.Fatalf("Eval(0.5) = %v, want %v", got, want)
	}
}

func TestTangentOfLineIsConstant(tst *testing.T) {
	chk.PrintTitle("a straight line's tangent is constant along its length")

	b := unitLineBezier()
	t0 := Tangent(b, 0.0)
	t1 := Tangent(b, 0.9)
	if !t0.Equals(t1, 1e-9) {
		tst.Fatalf("Tangent(0) = %v, Tangent(0.9) = %v, want equal", t0, t1)
	}
}

func TestEvalSurfaceBilinearCorners(tst *testing.T) {
	chk.PrintTitle("a bilinear patch evaluates exactly at its four corners")

	s := bilinearPatch()
	cases := []struct {
		u, v float64
		want shell.Vec3
	}{
		{0, 0, s.Ctrl[0][0]},
		{1, 0, s.Ctrl[1][0]},
		{0, 1, s.Ctrl[0][1]},
		{1, 1, s.Ctrl[1][1]},
	}
	for _, c := range cases {
		got := EvalSurface(s, c.u, c.v)
		if !got.Equals(c.want, RatpolyEps) {
			tst.Fatalf("EvalSurface(%v,%v) = %v, want %v", c.u, c.v, got, c.want)
		}
	}
}

func TestInvertBilinearCorners(tst *testing.T) {
	chk.PrintTitle("inverting a bilinear patch's corner recovers its (u,v)")

	s := bilinearPatch()
	u, v, ok := Invert(s, s.Ctrl[1][1], nil)
	if !ok {
		tst.Fatalf("Invert did not converge")
	}
	if !(u > 1-1e-6 && v > 1-1e-6) {
		tst.Fatalf("Invert(corner 1,1) = (%v,%v), want (1,1)", u, v)
	}
}

func TestInvertInteriorPointRoundTrips(tst *testing.T) {
	chk.PrintTitle("Invert(Eval(u,v)) recovers (u,v) within RATPOLY_EPS")

	s := bilinearPatch()
	for _, uv := range [][2]float64{{0.25, 0.75}, {0.5, 0.5}, {0.1, 0.9}} {
		p := EvalSurface(s, uv[0], uv[1])
		u, v, ok := Invert(s, p, nil)
		if !ok {
			tst.Fatalf("Invert did not converge for (%v,%v)", uv[0], uv[1])
		}
		got := EvalSurface(s, u, v)
		if d := got.Sub(p).Len(); d > RatpolyEps*10 {
			tst.Fatalf("round trip deviated by %v for seed (%v,%v)", d, uv[0], uv[1])
		}
	}
}

func TestSurfaceTangentOrientedByHint(tst *testing.T) {
	chk.PrintTitle("SurfaceTangent flips to agree with the supplied hint")

	a := bilinearPatch()
	var b shell.SSurface
	b.DegM, b.DegN = 1, 1
	b.Ctrl[0][0] = shell.Vec3{X: 0, Y: 0.5, Z: -1}
	b.Ctrl[1][0] = shell.Vec3{X: 1, Y: 0.5, Z: -1}
	b.Ctrl[0][1] = shell.Vec3{X: 0, Y: 0.5, Z: 1}
	b.Ctrl[1][1] = shell.Vec3{X: 1, Y: 0.5, Z: 1}
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			b.Weight[i][j] = 1
		}
	}

	hint := shell.Vec3{X: 1, Y: 0, Z: 0}
	t := SurfaceTangent(a, 0.5, 0.5, b, 0.5, 0.5, hint)
	if t.Dot(hint) <= 0 {
		tst.Fatalf("SurfaceTangent = %v did not align with hint %v", t, hint)
	}

	flipped := SurfaceTangent(a, 0.5, 0.5, b, 0.5, 0.5, hint.Scale(-1))
	if flipped.Dot(hint) >= 0 {
		tst.Fatalf("SurfaceTangent with flipped hint = %v, want opposite of %v", flipped, t)
	}
}

func TestApproximatePWLStartsAndEndsAtCurveEndpoints(tst *testing.T) {
	chk.PrintTitle("PWL approximation of a line starts and ends on the curve")

	b := unitLineBezier()
	pts := ApproximatePWL(b, 0.01, 64)
	if len(pts) < 2 {
		tst.Fatalf("expected at least 2 PWL points, got %d", len(pts))
	}
	if !pts[0].P.Equals(shell.Vec3{X: 0, Y: 0, Z: 0}, RatpolyEps) {
		tst.Fatalf("first PWL point = %v, want origin", pts[0].P)
	}
	last := pts[len(pts)-1]
	if !last.P.Equals(shell.Vec3{X: 1, Y: 0, Z: 0}, RatpolyEps) {
		tst.Fatalf("last PWL point = %v, want (1,0,0)", last.P)
	}
	if !last.Vertex {
		tst.Fatalf("last PWL point should be flagged as a curve vertex")
	}
}

func TestApproximatePWLOfStraightLineDoesNotOversubdivide(tst *testing.T) {
	chk.PrintTitle("a straight line needs no subdivision regardless of chord tolerance")

	b := unitLineBezier()
	pts := ApproximatePWL(b, 0.01, 256)
	if len(pts) != 2 {
		tst.Fatalf("a straight line's PWL should need only its 2 endpoints, got %d points", len(pts))
	}
}

func TestThreeSurfaceIntersectAtCommonCorner(tst *testing.T) {
	chk.PrintTitle("three mutually perpendicular planes intersect at their shared corner")

	plane := func(origin, nu, nv shell.Vec3) shell.SSurface {
		var s shell.SSurface
		s.DegM, s.DegN = 1, 1
		s.Ctrl[0][0] = origin
		s.Ctrl[1][0] = origin.Add(nu)
		s.Ctrl[0][1] = origin.Add(nv)
		s.Ctrl[1][1] = origin.Add(nu).Add(nv)
		for i := 0; i <= 1; i++ {
			for j := 0; j <= 1; j++ {
				s.Weight[i][j] = 1
			}
		}
		return s
	}

	corner := shell.Vec3{X: 1, Y: 1, Z: 1}
	xy := plane(shell.Vec3{Z: 1}, shell.Vec3{X: 2}, shell.Vec3{Y: 2})
	xz := plane(shell.Vec3{Y: 1}, shell.Vec3{X: 2}, shell.Vec3{Z: 2})
	yz := plane(shell.Vec3{X: 1}, shell.Vec3{Y: 2}, shell.Vec3{Z: 2})

	p, ok := ThreeSurfaceIntersect(xy, 0.5, 0.5, xz, 0.5, 0.5, yz, 0.5, 0.5)
	if !ok {
		tst.Fatalf("ThreeSurfaceIntersect did not converge")
	}
	if d := p.Sub(corner).Len(); d > RatpolyEps*10 {
		tst.Fatalf("ThreeSurfaceIntersect = %v, want %v (deviation %v)", p, corner, d)
	}
}
