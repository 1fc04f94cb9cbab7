// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

func init() {
	Register(PointsCoincident, pointsCoincidentBehavior{})
	Register(PtPtDistance, ptPtDistanceBehavior{})
	Register(PtLineDistance, ptLineDistanceBehavior{})
	Register(PtOnLine, ptOnLineBehavior{})
	Register(EqualLengthLines, equalLengthLinesBehavior{})
	Register(Angle, angleBehavior{})
	Register(Parallel, parallelBehavior{})
	Register(Perpendicular, perpendicularBehavior{})
	Register(CurveCurveTangent, curveCurveTangentBehavior{})
	Register(Horizontal, horizontalBehavior{})
	Register(Vertical, verticalBehavior{})
	Register(Diameter, diameterBehavior{})
	Register(WhereDragged, whereDraggedBehavior{})
	Register(Symmetric, symmetricBehavior{})
	Register(EqualRadius, equalRadiusBehavior{})
}

// componentsIn returns diff's equations: its full 3 components if wp is
// FreeIn3D, or its 2 in-plane (u, v) components projected onto wp's basis
// otherwise (§4.4's "componentwise in the workplane ... or in 3D").
func componentsIn(wp handle.Entity, diff expr.Vector, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	if wp == entity.FreeIn3D {
		return []*expr.Expr{diff.X, diff.Y, diff.Z}
	}
	u, v, _ := ents.MustFindByHandle(wp).Basis(ents, pt)
	return []*expr.Expr{diff.Dot(u), diff.Dot(v)}
}

func lineDir(ents *entity.Table, pt *entity.ParamTable, lineH handle.Entity) expr.Vector {
	line := ents.MustFindByHandle(lineH)
	a := pointExprs(ents, pt, line.Point[0])
	b := pointExprs(ents, pt, line.Point[1])
	return b.Sub(a)
}

// crossComponent picks one component of a x b to drive to zero: the one
// with the largest current numeric magnitude, so the equation never
// degenerates to an always-zero identity when the two directions happen
// to be axis-aligned in a plane orthogonal to some other component
// (§4.4's "hairy-ball param": some single component of a 3-vector must
// always be nonzero away from the pole, and which one is chosen has to
// track the current geometry). The choice is recorded onto c's
// Other/Other2 flags, but it is recomputed from the current geometry on
// every call; the recorded flags are not read back to keep an earlier
// choice.
func crossComponent(c *Constraint, pt *entity.ParamTable, a, b expr.Vector) *expr.Expr {
	cr := a.Cross(b)
	cx, cy, cz := cr.X.Eval(pt), cr.Y.Eval(pt), cr.Z.Eval(pt)
	axis := 0
	best := math.Abs(cx)
	if math.Abs(cy) > best {
		axis, best = 1, math.Abs(cy)
	}
	if math.Abs(cz) > best {
		axis = 2
	}
	c.Other, c.Other2 = axis == 1 || axis == 2, axis == 2
	switch axis {
	case 0:
		return cr.X
	case 1:
		return cr.Y
	default:
		return cr.Z
	}
}

type pointsCoincidentBehavior struct{}

func (pointsCoincidentBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	diff := pointExprs(ents, pt, c.PtA).Sub(pointExprs(ents, pt, c.PtB))
	return componentsIn(c.Workplane, diff, ents, pt)
}

type ptPtDistanceBehavior struct{}

func (ptPtDistanceBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	diff := pointExprs(ents, pt, c.PtA).Sub(pointExprs(ents, pt, c.PtB))
	return []*expr.Expr{expr.Sub(diff.MagSquared(), expr.Square(expr.Const1(c.ValA)))}
}

type ptLineDistanceBehavior struct{}

// Equations implements the signed perpendicular distance from PtA to the
// line EntityA, in the constraint's workplane: (w_u*d_v - w_v*d_u)/|d| -
// valA, where w is PtA minus the line's first point and d is the line's
// direction, both projected onto the workplane basis.
func (ptLineDistanceBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	line := ents.MustFindByHandle(c.EntityA)
	a := pointExprs(ents, pt, line.Point[0])
	d := lineDir(ents, pt, c.EntityA)
	w := pointExprs(ents, pt, c.PtA).Sub(a)

	u, v, _ := ents.MustFindByHandle(c.Workplane).Basis(ents, pt)
	wu, wv := w.Dot(u), w.Dot(v)
	du, dv := d.Dot(u), d.Dot(v)

	numer := expr.Sub(expr.Mul(wu, dv), expr.Mul(wv, du))
	length := expr.Sqrt(expr.Add(expr.Square(du), expr.Square(dv)))
	signedDist := expr.Div(numer, length)
	return []*expr.Expr{expr.Sub(signedDist, expr.Const1(c.ValA))}
}

type ptOnLineBehavior struct{}

func (ptOnLineBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	line := ents.MustFindByHandle(c.EntityA)
	a := pointExprs(ents, pt, line.Point[0])
	b := pointExprs(ents, pt, line.Point[1])
	p := pointExprs(ents, pt, c.PtA)

	tH := valPOrCreate(c, pt, 0.5)
	t := expr.ParamRef(tH)
	onLine := a.Add(b.Sub(a).ScaleBy(t))
	diff := p.Sub(onLine)
	return componentsIn(c.Workplane, diff, ents, pt)
}

type equalLengthLinesBehavior struct{}

func (equalLengthLinesBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	lenA := expr.Sqrt(lineDir(ents, pt, c.EntityA).MagSquared())
	lenB := expr.Sqrt(lineDir(ents, pt, c.EntityB).MagSquared())
	return []*expr.Expr{expr.Sub(lenA, lenB)}
}

type angleBehavior struct{}

// Equations drives the cosine of the angle between the two lines' direction
// vectors to cos(valA), or cos(pi - valA) when Other marks the supplement
// (§4.4).
func (angleBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	d1 := lineDir(ents, pt, c.EntityA)
	d2 := lineDir(ents, pt, c.EntityB)
	target := c.ValA
	if c.Other {
		target = math.Pi - target
	}
	cosTarget := math.Cos(target)

	len1 := expr.Sqrt(d1.MagSquared())
	len2 := expr.Sqrt(d2.MagSquared())
	cosAngle := expr.Div(d1.Dot(d2), expr.Mul(len1, len2))
	return []*expr.Expr{expr.Sub(cosAngle, expr.Const1(cosTarget))}
}

type parallelBehavior struct{}

func (parallelBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	d1 := lineDir(ents, pt, c.EntityA)
	d2 := lineDir(ents, pt, c.EntityB)
	return []*expr.Expr{crossComponent(c, pt, d1, d2)}
}

type perpendicularBehavior struct{}

func (perpendicularBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	d1 := lineDir(ents, pt, c.EntityA)
	d2 := lineDir(ents, pt, c.EntityB)
	return []*expr.Expr{d1.Dot(d2)}
}

type curveCurveTangentBehavior struct{}

// Equations drives the two curves' endpoint tangent directions collinear.
// Both curves are treated as straight lines for their tangent, which is
// exact for LineSegment and a reasonable first-order approximation for
// Cubic/ArcOfCircle until the NURBS tangent kernel (ratpoly) supplies the
// true derivative at the shared endpoint.
func (curveCurveTangentBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	d1 := lineDir(ents, pt, c.EntityA)
	d2 := lineDir(ents, pt, c.EntityB)
	return []*expr.Expr{crossComponent(c, pt, d1, d2)}
}

type horizontalBehavior struct{}

func (horizontalBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	d := lineDir(ents, pt, c.EntityA)
	_, v, _ := ents.MustFindByHandle(c.Workplane).Basis(ents, pt)
	return []*expr.Expr{d.Dot(v)}
}

type verticalBehavior struct{}

func (verticalBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	d := lineDir(ents, pt, c.EntityA)
	u, _, _ := ents.MustFindByHandle(c.Workplane).Basis(ents, pt)
	return []*expr.Expr{d.Dot(u)}
}

type diameterBehavior struct{}

func (diameterBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	r := radiusExpr(ents, pt, c.EntityA)
	return []*expr.Expr{expr.Sub(expr.Mul(expr.Const1(2), r), expr.Const1(c.ValA))}
}

type whereDraggedBehavior struct{}

// Equations freezes PtA's live coordinates at its current numeric cache
// (§4.4); it is regenerated every drag frame with a fresh target, so it
// always reads "don't move from here" rather than a fixed design value.
func (whereDraggedBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	e := ents.MustFindByHandle(c.PtA)
	target := e.ActPoint
	live := pointExprs(ents, pt, c.PtA)
	diff := live.Sub(expr.NewVector(expr.Const1(target[0]), expr.Const1(target[1]), expr.Const1(target[2])))
	return componentsIn(c.Workplane, diff, ents, pt)
}

type symmetricBehavior struct{}

// Equations implements "A and B are symmetric about line EntityA": their
// midpoint lies on the line, and A-B is perpendicular to the line's
// direction (§4.4's family of point-pair constraints, generalized to a
// mirror line rather than a fixed axis).
func (symmetricBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	line := ents.MustFindByHandle(c.EntityA)
	l := pointExprs(ents, pt, line.Point[0])
	d := lineDir(ents, pt, c.EntityA)

	a := pointExprs(ents, pt, c.PtA)
	b := pointExprs(ents, pt, c.PtB)
	mid := a.Add(b).ScaleBy(expr.Const1(0.5))

	u, v, _ := ents.MustFindByHandle(c.Workplane).Basis(ents, pt)
	du, dv := d.Dot(u), d.Dot(v)
	wu, wv := mid.Sub(l).Dot(u), mid.Sub(l).Dot(v)
	onLine := expr.Sub(expr.Mul(wu, dv), expr.Mul(wv, du))

	perp := a.Sub(b).Dot(d)
	return []*expr.Expr{onLine, perp}
}

type equalRadiusBehavior struct{}

func (equalRadiusBehavior) Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	rA := radiusExpr(ents, pt, c.EntityA)
	rB := radiusExpr(ents, pt, c.EntityB)
	return []*expr.Expr{expr.Sub(rA, rB)}
}

// radiusExpr returns the symbolic radius of a Circle (its DistanceEnt) or
// an ArcOfCircle (the distance from its center to its start point).
func radiusExpr(ents *entity.Table, pt *entity.ParamTable, h handle.Entity) *expr.Expr {
	e := ents.MustFindByHandle(h)
	switch e.Kind {
	case entity.Circle:
		return ents.MustFindByHandle(e.DistanceEnt).DistanceExpr(ents, pt)
	case entity.ArcOfCircle:
		center := pointExprs(ents, pt, e.Point[0])
		start := pointExprs(ents, pt, e.Point[1])
		return expr.Sqrt(start.Sub(center).MagSquared())
	default:
		panic("constraint: radiusExpr called on a non-circular entity")
	}
}
