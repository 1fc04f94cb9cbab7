// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ratpoly implements the NURBS kernel of §4.7: rational Bezier
// curve/surface evaluation and tangents as weighted Bernstein-basis sums
// divided by the weight sum, point inversion, surface-surface tangents, and
// three-surface intersection, all against the Bernstein basis in [0,1].
package ratpoly

import (
	"math"

	"github.com/solvespace/solvespace-sub002/shell"
)

// RatpolyEps is RATPOLY_EPS = LENGTH_EPS/100 (§4.7), the convergence
// tolerance point inversion's Newton refinement targets.
const RatpolyEps = shell.LengthEps / 100

// binom is Pascal's triangle up to degree 3, the only degrees SBezier/
// SSurface ever carry (§3.3).
var binom = [4][4]float64{
	{1},
	{1, 1},
	{1, 2, 1},
	{1, 3, 3, 1},
}

func bernstein(deg, i int, t float64) float64 {
	return binom[deg][i] * math.Pow(t, float64(i)) * math.Pow(1-t, float64(deg-i))
}

// bernsteinDeriv is dB_i,n/dt.
func bernsteinDeriv(deg, i int, t float64) float64 {
	if deg == 0 {
		return 0
	}
	var a, b float64
	if i > 0 {
		a = bernstein(deg-1, i-1, t)
	}
	if i < deg {
		b = bernstein(deg-1, i, t)
	}
	return float64(deg) * (a - b)
}

// Eval evaluates b at parameter t in [0,1] using the ratio of weighted
// Bernstein sums (§4.7's "Evaluation").
func Eval(b shell.SBezier, t float64) shell.Vec3 {
	var num shell.Vec3
	var den float64
	for i := 0; i <= b.Deg; i++ {
		bi := bernstein(b.Deg, i, t) * b.Weight[i]
		num = num.Add(b.Ctrl[i].Scale(bi))
		den += bi
	}
	if den == 0 {
		return shell.Vec3{}
	}
	return num.Scale(1 / den)
}

// Tangent returns the derivative of Eval at t via the quotient rule:
// d/dt (N(t)/D(t)) = (N'(t)*D(t) - N(t)*D'(t)) / D(t)^2 (§4.7's "Tangents").
func Tangent(b shell.SBezier, t float64) shell.Vec3 {
	var num, numD shell.Vec3
	var den, denD float64
	for i := 0; i <= b.Deg; i++ {
		bi := bernstein(b.Deg, i, t)
		bid := bernsteinDeriv(b.Deg, i, t)
		w := b.Weight[i]
		num = num.Add(b.Ctrl[i].Scale(bi * w))
		numD = numD.Add(b.Ctrl[i].Scale(bid * w))
		den += bi * w
		denD += bid * w
	}
	if den == 0 {
		return shell.Vec3{}
	}
	return numD.Scale(den).Sub(num.Scale(denD)).Scale(1 / (den * den))
}

// EvalSurface evaluates s at (u, v) via two nested weighted Bernstein
// sums.
func EvalSurface(s shell.SSurface, u, v float64) shell.Vec3 {
	var num shell.Vec3
	var den float64
	for i := 0; i <= s.DegM; i++ {
		bu := bernstein(s.DegM, i, u)
		for j := 0; j <= s.DegN; j++ {
			bv := bernstein(s.DegN, j, v)
			wij := bu * bv * s.Weight[i][j]
			num = num.Add(s.Ctrl[i][j].Scale(wij))
			den += wij
		}
	}
	if den == 0 {
		return shell.Vec3{}
	}
	return num.Scale(1 / den)
}

// TangentSurface returns the partial derivatives of EvalSurface at (u, v)
// with respect to u and v, each via the same quotient rule Tangent uses.
func TangentSurface(s shell.SSurface, u, v float64) (du, dv shell.Vec3) {
	var num, numDu, numDv shell.Vec3
	var den, denDu, denDv float64
	for i := 0; i <= s.DegM; i++ {
		bu := bernstein(s.DegM, i, u)
		bud := bernsteinDeriv(s.DegM, i, u)
		for j := 0; j <= s.DegN; j++ {
			bv := bernstein(s.DegN, j, v)
			bvd := bernsteinDeriv(s.DegN, j, v)
			w := s.Weight[i][j]
			num = num.Add(s.Ctrl[i][j].Scale(bu * bv * w))
			numDu = numDu.Add(s.Ctrl[i][j].Scale(bud * bv * w))
			numDv = numDv.Add(s.Ctrl[i][j].Scale(bu * bvd * w))
			den += bu * bv * w
			denDu += bud * bv * w
			denDv += bu * bvd * w
		}
	}
	if den == 0 {
		return shell.Vec3{}, shell.Vec3{}
	}
	inv2 := 1 / (den * den)
	du = numDu.Scale(den).Sub(num.Scale(denDu)).Scale(inv2)
	dv = numDv.Scale(den).Sub(num.Scale(denDv)).Scale(inv2)
	return
}

// Normal returns the unit surface normal at (u, v), the cross product of
// the two partial derivatives.
func Normal(s shell.SSurface, u, v float64) shell.Vec3 {
	du, dv := TangentSurface(s, u, v)
	return du.Cross(dv).Normalize()
}
