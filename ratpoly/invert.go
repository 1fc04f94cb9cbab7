// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ratpoly

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/solvespace/solvespace-sub002/shell"
)

// MaxInvertIterations bounds the Newton refinement of Invert.
const MaxInvertIterations = 50

// Invert finds (u, v) minimizing ||EvalSurface(s, u, v) - p|| (§4.7's
// "Point inversion"). guess, if non-nil, seeds the search with a cached
// parameter value from a previous call; otherwise a coarse grid is swept
// first (7x7 for a bilinear patch, 20x20 for anything of higher degree,
// per §4.7's "coarse grid (7^2 or 20^2 depending on degree)").
func Invert(s shell.SSurface, p shell.Vec3, guess *[2]float64) (u, v float64, ok bool) {
	for i, j := 0, 0; i <= s.DegM; i++ {
		for j = 0; j <= s.DegN; j++ {
			if s.Ctrl[i][j].Equals(p, RatpolyEps) {
				return float64(i) / float64(s.DegM), float64(j) / float64(s.DegN), true
			}
		}
	}
	if s.DegM == 1 && s.DegN == 1 {
		if uu, vv, ok := invertBilinear(s, p); ok {
			return uu, vv, true
		}
	}

	if guess != nil {
		if uu, vv, ok := newtonInvert(s, p, guess[0], guess[1]); ok {
			return uu, vv, true
		}
	}

	grid := 20
	if s.DegM == 1 && s.DegN == 1 {
		grid = 7
	}
	bestU, bestV := 0.5, 0.5
	bestDist := math.Inf(1)
	for i := 0; i < grid; i++ {
		uu := float64(i) / float64(grid-1)
		for j := 0; j < grid; j++ {
			vv := float64(j) / float64(grid-1)
			d := EvalSurface(s, uu, vv).Sub(p).Len()
			if d < bestDist {
				bestDist, bestU, bestV = d, uu, vv
			}
		}
	}
	return newtonInvert(s, p, bestU, bestV)
}

// invertBilinear solves a bilinear (degree 1x1) patch's inversion directly:
// S(u,v) = (1-u)(1-v)P00 + u(1-v)P10 + (1-u)v*P01 + uv*P11 is affine in
// (u,v) once rewritten as P00 + u(P10-P00) + v(P01-P00) + uv*(P11-P10-P01+P00);
// the bilinear term is dropped here (patches with significant warp fall
// through to the general grid+Newton path via its caller).
func invertBilinear(s shell.SSurface, p shell.Vec3) (float64, float64, bool) {
	p00, p10, p01 := s.Ctrl[0][0], s.Ctrl[1][0], s.Ctrl[0][1]
	du := p10.Sub(p00)
	dv := p01.Sub(p00)
	rel := p.Sub(p00)
	a11, a12 := du.Dot(du), du.Dot(dv)
	a21, a22 := dv.Dot(du), dv.Dot(dv)
	b1, b2 := du.Dot(rel), dv.Dot(rel)
	det := a11*a22 - a12*a21
	if math.Abs(det) < 1e-14 {
		return 0, 0, false
	}
	u := (b1*a22 - a12*b2) / det
	v := (a11*b2 - b1*a21) / det
	if u < -RatpolyEps || u > 1+RatpolyEps || v < -RatpolyEps || v > 1+RatpolyEps {
		return 0, 0, false
	}
	return clamp01(u), clamp01(v), EvalSurface(s, u, v).Sub(p).Len() < RatpolyEps
}

// newtonInvert projects the residual onto the local tangent basis and
// iterates until it converges within RatpolyEps (§4.7's "Newton
// refinement"), using la.MatInvG for the 2x3 pseudo-inverse the same way
// solver.newtonLeastSquares uses it for a constraint Jacobian.
func newtonInvert(s shell.SSurface, p shell.Vec3, u0, v0 float64) (float64, float64, bool) {
	u, v := u0, v0
	for iter := 0; iter < MaxInvertIterations; iter++ {
		cur := EvalSurface(s, u, v)
		res := cur.Sub(p)
		if res.Len() < RatpolyEps {
			return clamp01(u), clamp01(v), true
		}
		du, dv := TangentSurface(s, u, v)
		jac := la.MatAlloc(3, 2)
		for row, comp := range [][2]float64{{du.X, dv.X}, {du.Y, dv.Y}, {du.Z, dv.Z}} {
			jac[row][0], jac[row][1] = comp[0], comp[1]
		}
		jacInv := la.MatAlloc(2, 3)
		if err := la.MatInvG(jacInv, jac, 1e-10); err != nil {
			return 0, 0, false
		}
		b := []float64{res.X, res.Y, res.Z}
		delta := make([]float64, 2)
		la.MatVecMul(delta, -1, jacInv, b)
		u += delta[0]
		v += delta[1]
		if math.IsNaN(u) || math.IsNaN(v) {
			return 0, 0, false
		}
	}
	cur := EvalSurface(s, u, v)
	return clamp01(u), clamp01(v), cur.Sub(p).Len() < RatpolyEps
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
