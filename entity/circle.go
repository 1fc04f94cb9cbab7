// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"math"

	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/shell"
)

func init() {
	Register(Circle, circleBehavior{})
}

// NewCircle creates a circle from a center point, a normal, and a distance
// (radius) entity, all already built (§4.3).
func NewCircle(g handle.Group, wp handle.Entity, center, normal, radius handle.Entity) *Entity {
	e := newBase(Circle, g, wp)
	e.NumPoint = 1
	e.Point[0] = center
	e.HasNormal = true
	e.Normal = normal
	e.HasDistance = true
	e.DistanceEnt = radius
	return e
}

type circleBehavior struct{}

func (circleBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (circleBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a circle entity")
}

// GenerateBezierCurves realizes a full circle as four 90-degree rational
// arcs, the exact-encoding split §3.3 requires since NewRationalArc's
// cos(dtheta/2) weight only represents arcs strictly under 180 degrees (a
// single 360-degree sweep would degenerate the weight formula).
func (circleBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	center := actVec(ents.MustFindByHandle(e.Point[0]))
	radius := ents.MustFindByHandle(e.DistanceEnt).ActDistance
	q := ents.MustFindByHandle(e.Normal).ActNormal
	_, _, n := numericAxes(q)
	return quarterArcs(center, radius, q, n, uint32(e.H))
}

// quarterArcs builds the four 90-degree rational-quadratic arcs making up
// a full circle of the given radius, centered at center, in the plane
// perpendicular to axis n.
func quarterArcs(center shell.Vec3, radius float64, q [4]float64, n shell.Vec3, entH uint32) []shell.SBezier {
	u, _, _ := numericAxes(q)
	v := n.Cross(u)
	arcs := make([]shell.SBezier, 4)
	for i := 0; i < 4; i++ {
		a0 := float64(i) * math.Pi / 2
		a1 := float64(i+1) * math.Pi / 2
		p0 := center.Add(u.Scale(radius * math.Cos(a0))).Add(v.Scale(radius * math.Sin(a0)))
		p1 := center.Add(u.Scale(radius * math.Cos(a1))).Add(v.Scale(radius * math.Sin(a1)))
		arc := shell.NewRationalArc(center, p0, p1, n, math.Pi/2)
		arc.EntityH = entH
		arcs[i] = arc
	}
	return arcs
}

// numericAxes computes the rotated (U, V, N) basis of the unit quaternion
// q = (w, x, y, z), the numeric counterpart of expr.Quaternion.NormalizedAxis
// (§4.3), used once a solve has already populated ActNormal.
func numericAxes(q [4]float64) (u, v, n shell.Vec3) {
	w, x, y, z := q[0], q[1], q[2], q[3]
	u = shell.Vec3{
		X: 1 - 2*y*y - 2*z*z,
		Y: 2 * (x*y + w*z),
		Z: 2 * (x*z - w*y),
	}
	v = shell.Vec3{
		X: 2 * (x*y - w*z),
		Y: 1 - 2*x*x - 2*z*z,
		Z: 2 * (y*z + w*x),
	}
	n = shell.Vec3{
		X: 2 * (x*z + w*y),
		Y: 2 * (y*z - w*x),
		Z: 1 - 2*x*x - 2*y*y,
	}
	return
}
