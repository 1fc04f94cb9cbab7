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
	Register(ArcOfCircle, arcBehavior{})
}

// NewArcOfCircle creates an arc from a center, a start point, an end
// point, and a normal, all already built (§4.3); the radius follows from
// |start-center| rather than a separate distance entity.
func NewArcOfCircle(g handle.Group, wp handle.Entity, center, normal, start, end handle.Entity) *Entity {
	e := newBase(ArcOfCircle, g, wp)
	e.NumPoint = 3
	e.Point[0] = center
	e.Point[1] = start
	e.Point[2] = end
	e.HasNormal = true
	e.Normal = normal
	return e
}

type arcBehavior struct{}

// Equations enforces that start and end are equidistant from center (both
// lie on the circle the arc is drawn from, §4.3's implicit radius
// invariant for arcs).
func (arcBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	center := ents.MustFindByHandle(e.Point[0]).PointGetExprs(ents, pt)
	start := ents.MustFindByHandle(e.Point[1]).PointGetExprs(ents, pt)
	end := ents.MustFindByHandle(e.Point[2]).PointGetExprs(ents, pt)
	rs := start.Sub(center).MagSquared()
	re := end.Sub(center).MagSquared()
	return []*expr.Expr{expr.Sub(rs, re)}
}

func (arcBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for an arc entity")
}

// GenerateBezierCurves realizes the arc as one or two rational-quadratic
// beziers, splitting at the midpoint whenever the swept angle is at or
// above 180 degrees, since NewRationalArc's weight formula is only exact
// for arcs strictly under a half turn (§3.3, §4.7).
func (arcBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	center := actVec(ents.MustFindByHandle(e.Point[0]))
	start := actVec(ents.MustFindByHandle(e.Point[1]))
	end := actVec(ents.MustFindByHandle(e.Point[2]))
	q := ents.MustFindByHandle(e.Normal).ActNormal
	u, v, n := numericAxes(q)

	rs := start.Sub(center)
	re := end.Sub(center)
	radius := rs.Len()
	a0 := math.Atan2(rs.Dot(v), rs.Dot(u))
	a1 := math.Atan2(re.Dot(v), re.Dot(u))
	dtheta := a1 - a0
	for dtheta <= 0 {
		dtheta += 2 * math.Pi
	}

	if dtheta < math.Pi {
		arc := shell.NewRationalArc(center, start, end, n, dtheta)
		arc.EntityH = uint32(e.H)
		return []shell.SBezier{arc}
	}

	half := dtheta / 2
	am := a0 + half
	mid := center.Add(u.Scale(radius * math.Cos(am))).Add(v.Scale(radius * math.Sin(am)))
	a := shell.NewRationalArc(center, start, mid, n, half)
	b := shell.NewRationalArc(center, mid, end, n, half)
	a.EntityH, b.EntityH = uint32(e.H), uint32(e.H)
	return []shell.SBezier{a, b}
}
