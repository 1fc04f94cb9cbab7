// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell implements the NURBS shell data model of §3.3: SShell,
// SSurface, SCurve, STrimBy, and SBezier, the watertight-shell invariants
// they must satisfy, and the coincident-surface merge of §4.7's last
// bullet.
package shell

import "math"

// Vec3 is a plain 3D point/vector. Kept as a concrete numeric type (not an
// expr.Vector) because shell geometry is always the numeric, post-solve
// realization of an entity, never a symbolic tree (§3.3, §4.3).
type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Add(b Vec3) Vec3   { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3   { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}
func (a Vec3) Equals(b Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

// LengthEps is LENGTH_EPS from §3.3/§4.7: the tolerance trim start/finish
// points and PWL-vs-exact comparisons are judged against.
const LengthEps = 1e-6

// MaxBezierDegree bounds SBezier.Deg: this kernel only ever produces
// degree 1, 2, or 3 curves (lines, rational conics/arcs, cubics, §3.3).
const MaxBezierDegree = 3

// SBezier is a rational Bezier of degree 1, 2, or 3 (§3.3).
type SBezier struct {
	Deg     int
	Ctrl    [MaxBezierDegree + 1]Vec3
	Weight  [MaxBezierDegree + 1]float64
	EntityH uint32 // optional originating entity handle, for selection/export
}

// NewLine builds a degree-1 SBezier (a straight line segment).
func NewLine(a, b Vec3) SBezier {
	return SBezier{Deg: 1, Ctrl: [4]Vec3{a, b}, Weight: [4]float64{1, 1}}
}

// NewRationalArc builds the exact rational-quadratic Bezier encoding of a
// circular arc under 180 degrees, with middle weight cos(dtheta/2): the
// encoding spec.md §4.7's "Revolution constructor" requires preserving
// literally.
func NewRationalArc(center Vec3, start, end Vec3, axis Vec3, dtheta float64) SBezier {
	// the middle control point is the intersection of the two endpoint
	// tangents, which for a circular arc lies on the bisector of the two
	// radius directions; equivalently center + (start + end - 2*center) /
	// (2*cos^2), derived from the standard rational-conic arc construction.
	w := math.Cos(dtheta / 2)
	// tangent directions at start/end, in-plane, perpendicular to the
	// radius vectors (start-center)/(end-center).
	rs := start.Sub(center)
	re := end.Sub(center)
	ts := axis.Cross(rs)
	te := axis.Cross(re).Scale(-1)
	mid, ok := lineLineIntersect(start, ts, end, te)
	if !ok {
		mid = start.Add(end).Scale(0.5)
	}
	return SBezier{
		Deg:    2,
		Ctrl:   [4]Vec3{start, mid, end},
		Weight: [4]float64{1, w, 1},
	}
}

// lineLineIntersect finds the intersection of two 3D lines assumed
// coplanar (as arc tangents always are), solving the 2x2 system in the
// plane spanned by the two direction vectors.
func lineLineIntersect(p0, d0, p1, d1 Vec3) (Vec3, bool) {
	// solve p0 + t*d0 = p1 + s*d1 by minimizing in least-squares sense
	// using the normal equations of [d0 -d1] [t s]^T = p1-p0.
	w := p1.Sub(p0)
	a11, a12 := d0.Dot(d0), -d0.Dot(d1)
	a21, a22 := d0.Dot(d1), -d1.Dot(d1)
	b1, b2 := d0.Dot(w), d1.Dot(w)
	det := a11*a22 - a12*a21
	if math.Abs(det) < 1e-14 {
		return Vec3{}, false
	}
	t := (b1*a22 - a12*b2) / det
	return p0.Add(d0.Scale(t)), true
}

// NewCubic builds a degree-3 non-rational SBezier from four control points.
func NewCubic(p0, p1, p2, p3 Vec3) SBezier {
	return SBezier{Deg: 3, Ctrl: [4]Vec3{p0, p1, p2, p3}, Weight: [4]float64{1, 1, 1, 1}}
}

func (b SBezier) Start() Vec3 { return b.Ctrl[0] }
func (b SBezier) Finish() Vec3 { return b.Ctrl[b.Deg] }
