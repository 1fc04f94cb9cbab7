// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

// curveBehavior extends Behavior for the curve-producing kinds of §4.3
// (LineSegment, Cubic, CubicPeriodic, Circle, ArcOfCircle): each realizes
// its numeric ActPoint cache (already refreshed post-solve) into one or
// more shell.SBezier, and into a flattened polyline for edge export.
type curveBehavior interface {
	GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier
}

// GenerateBezierCurves dispatches to the registered curve Behavior for
// e.Kind, panicking for kinds that never produce curve geometry (points,
// normals, distances, workplanes, faces).
func (e *Entity) GenerateBezierCurves(ents *Table) []shell.SBezier {
	b, ok := behaviorFor(e.Kind).(curveBehavior)
	if !ok {
		chk.Panic("entity: kind %d does not generate bezier curves", int(e.Kind))
	}
	return b.GenerateBezierCurves(e, ents)
}

// HasBezierCurves reports whether e's kind registered a curveBehavior, so
// callers walking a mixed entity table (points, normals, curves, faces) can
// skip non-curve kinds without risking GenerateBezierCurves's panic.
func (e *Entity) HasBezierCurves() bool {
	_, ok := behaviorFor(e.Kind).(curveBehavior)
	return ok
}

// GenerateEdges flattens GenerateBezierCurves's output into a sequence of
// straight segments suitable for wireframe display / edge export (§4.3).
// Degree-1 curves are returned as a single segment; higher degree curves
// are chorded at a fixed 16 uniform parameter steps, since the interactive
// viewport never needs true analytic edges, only a visually faithful
// approximation (the exact shape lives in the SBezier itself).
func (e *Entity) GenerateEdges(ents *Table) []shell.Vec3 {
	const segmentsPerCurve = 16
	var pts []shell.Vec3
	for _, b := range e.GenerateBezierCurves(ents) {
		if b.Deg == 1 {
			pts = append(pts, b.Start(), b.Finish())
			continue
		}
		for i := 0; i <= segmentsPerCurve; i++ {
			t := float64(i) / float64(segmentsPerCurve)
			pts = append(pts, evalRationalBezier(b, t))
		}
	}
	return pts
}

// evalRationalBezier evaluates b at parameter t via de Casteljau's
// algorithm on homogeneous (w*x, w*y, w*z, w) coordinates, then
// dehomogenizes; ratpoly evaluates the same curves as weighted Bernstein
// sums instead, and this local version is kept here since edge generation
// only needs points, not derivatives.
func evalRationalBezier(b shell.SBezier, t float64) shell.Vec3 {
	type hpt struct{ x, y, z, w float64 }
	pts := make([]hpt, b.Deg+1)
	for i := 0; i <= b.Deg; i++ {
		w := b.Weight[i]
		pts[i] = hpt{b.Ctrl[i].X * w, b.Ctrl[i].Y * w, b.Ctrl[i].Z * w, w}
	}
	for r := 1; r <= b.Deg; r++ {
		for i := 0; i <= b.Deg-r; i++ {
			pts[i] = hpt{
				x: (1-t)*pts[i].x + t*pts[i+1].x,
				y: (1-t)*pts[i].y + t*pts[i+1].y,
				z: (1-t)*pts[i].z + t*pts[i+1].z,
				w: (1-t)*pts[i].w + t*pts[i+1].w,
			}
		}
	}
	p := pts[0]
	if p.w == 0 {
		return shell.Vec3{}
	}
	return shell.Vec3{X: p.x / p.w, Y: p.y / p.w, Z: p.z / p.w}
}

func actVec(e *Entity) shell.Vec3 {
	return shell.Vec3{X: e.ActPoint[0], Y: e.ActPoint[1], Z: e.ActPoint[2]}
}
