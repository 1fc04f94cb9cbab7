// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

func init() {
	Register(PointIn3D, point3DBehavior{})
	Register(PointIn2D, point2DBehavior{})
	Register(PointNTrans, pointNTransBehavior{})
	Register(PointNRotTrans, pointNRotTransBehavior{})
	Register(PointNCopy, pointNCopyBehavior{})
	Register(PointNRotAA, pointNRotAABehavior{})
}

// NewPointIn3D creates a free 3D point with three direct params.
func NewPointIn3D(g handle.Group, wp handle.Entity, pt *ParamTable, x, y, z float64) *Entity {
	e := newBase(PointIn3D, g, wp)
	e.NumParam = 3
	e.ParamH[0] = pt.AddFree(x).Handle()
	e.ParamH[1] = pt.AddFree(y).Handle()
	e.ParamH[2] = pt.AddFree(z).Handle()
	e.ActPoint = [3]float64{x, y, z}
	return e
}

// NewPointIn2D creates a point with two direct params (u, v) interpreted
// in wp's plane.
func NewPointIn2D(g handle.Group, wp handle.Entity, pt *ParamTable, u, v float64) *Entity {
	e := newBase(PointIn2D, g, wp)
	e.NumParam = 2
	e.ParamH[0] = pt.AddFree(u).Handle()
	e.ParamH[1] = pt.AddFree(v).Handle()
	return e
}

// NewPointNTrans creates a POINT_N_TRANS derived point: src translated by a
// fixed (dx, dy, dz), used by TRANSLATE's step-and-repeat copies and
// EXTRUDE's bottom-cap-to-top-cap sweep (§4.6).
func NewPointNTrans(g handle.Group, wp handle.Entity, pt *ParamTable, src handle.Entity, dx, dy, dz float64) *Entity {
	e := newBase(PointNTrans, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	e.NumParam = 3
	e.ParamH[0] = pt.AddKnown(dx).Handle()
	e.ParamH[1] = pt.AddKnown(dy).Handle()
	e.ParamH[2] = pt.AddKnown(dz).Handle()
	return e
}

// NewPointNRotTrans creates a POINT_N_ROT_TRANS derived point: src rotated
// by the fixed unit quaternion (qw,qx,qy,qz) then translated by (dx,dy,dz),
// used by HELIX end copies (§4.6).
func NewPointNRotTrans(g handle.Group, wp handle.Entity, pt *ParamTable, src handle.Entity, dx, dy, dz, qw, qx, qy, qz float64) *Entity {
	e := newBase(PointNRotTrans, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	e.NumParam = 7
	e.ParamH[0] = pt.AddKnown(dx).Handle()
	e.ParamH[1] = pt.AddKnown(dy).Handle()
	e.ParamH[2] = pt.AddKnown(dz).Handle()
	e.ParamH[3] = pt.AddKnown(qw).Handle()
	e.ParamH[4] = pt.AddKnown(qx).Handle()
	e.ParamH[5] = pt.AddKnown(qy).Handle()
	e.ParamH[6] = pt.AddKnown(qz).Handle()
	return e
}

// NewPointNCopy creates a POINT_N_COPY derived point: an untransformed
// duplicate of src (§4.6).
func NewPointNCopy(g handle.Group, wp handle.Entity, src handle.Entity) *Entity {
	e := newBase(PointNCopy, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	return e
}

// NewPointNRotAA creates a POINT_N_ROT_AA derived point: src rotated about
// the fixed axis-angle (origin (ox,oy,oz), unit quaternion (qw,qx,qy,qz)),
// used by LATHE/REVOLVE end copies and ROTATE copies (§4.6).
func NewPointNRotAA(g handle.Group, wp handle.Entity, pt *ParamTable, src handle.Entity, ox, oy, oz, qw, qx, qy, qz float64) *Entity {
	e := newBase(PointNRotAA, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	e.NumParam = 7
	e.ParamH[0] = pt.AddKnown(ox).Handle()
	e.ParamH[1] = pt.AddKnown(oy).Handle()
	e.ParamH[2] = pt.AddKnown(oz).Handle()
	e.ParamH[3] = pt.AddKnown(qw).Handle()
	e.ParamH[4] = pt.AddKnown(qx).Handle()
	e.ParamH[5] = pt.AddKnown(qy).Handle()
	e.ParamH[6] = pt.AddKnown(qz).Handle()
	return e
}

type point3DBehavior struct{}

func (point3DBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil // a free point contributes no equations of its own
}

func (point3DBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	return expr.NewVector(expr.ParamRef(e.ParamH[0]), expr.ParamRef(e.ParamH[1]), expr.ParamRef(e.ParamH[2]))
}

type point2DBehavior struct{}

func (point2DBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}

func (point2DBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	wp := ents.MustFindByHandle(e.Workplane)
	origin := ents.MustFindByHandle(wp.Point[0]).PointGetExprs(ents, pt)
	u, v, _ := wpBasis(wp, ents, pt)
	uExpr := expr.ParamRef(e.ParamH[0])
	vExpr := expr.ParamRef(e.ParamH[1])
	return origin.Add(u.ScaleBy(uExpr)).Add(v.ScaleBy(vExpr))
}

// pointNTransBehavior: POINT_N_TRANS — a translated copy of a source
// point by the fixed offset (dx,dy,dz) held in its own known params;
// step-and-repeat (§3.4) passes TRANSLATE's param0..2 already multiplied
// by the copy index.
type pointNTransBehavior struct{}

func (pointNTransBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }

func (pointNTransBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	src := ents.MustFindByHandle(e.Point[0]).PointGetExprs(ents, pt)
	offset := expr.NewVector(expr.ParamRef(e.ParamH[0]), expr.ParamRef(e.ParamH[1]), expr.ParamRef(e.ParamH[2]))
	return src.Add(offset)
}

// pointNRotTransBehavior: POINT_N_ROT_TRANS — rotate then translate, used
// by HELIX end copies; the rotation quaternion and translation are the
// entity's own known params.
type pointNRotTransBehavior struct{}

func (pointNRotTransBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}

func (pointNRotTransBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	src := ents.MustFindByHandle(e.Point[0]).PointGetExprs(ents, pt)
	q := expr.NewQuaternion(expr.ParamRef(e.ParamH[3]), expr.ParamRef(e.ParamH[4]), expr.ParamRef(e.ParamH[5]), expr.ParamRef(e.ParamH[6]))
	rotated := q.RotateVector(src)
	offset := expr.NewVector(expr.ParamRef(e.ParamH[0]), expr.ParamRef(e.ParamH[1]), expr.ParamRef(e.ParamH[2]))
	return rotated.Add(offset)
}

// pointNCopyBehavior: POINT_N_COPY — an untransformed duplicate (used when
// a group's selected boolean is "assemble" and geometry is merely relabeled).
type pointNCopyBehavior struct{}

func (pointNCopyBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }

func (pointNCopyBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	return ents.MustFindByHandle(e.Point[0]).PointGetExprs(ents, pt)
}

// pointNRotAABehavior: POINT_N_ROT_AA — rotate about an axis through a
// fixed origin by a fixed angle, both carried as direct params (used by
// LATHE/REVOLVE/HELIX copies, §4.6).
type pointNRotAABehavior struct{}

func (pointNRotAABehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}

func (pointNRotAABehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	src := ents.MustFindByHandle(e.Point[0]).PointGetExprs(ents, pt)
	origin := expr.NewVector(expr.ParamRef(e.ParamH[0]), expr.ParamRef(e.ParamH[1]), expr.ParamRef(e.ParamH[2]))
	q := expr.NewQuaternion(expr.ParamRef(e.ParamH[3]), expr.ParamRef(e.ParamH[4]), expr.ParamRef(e.ParamH[5]), expr.ParamRef(e.ParamH[6]))
	rel := src.Sub(origin)
	return q.RotateVector(rel).Add(origin)
}

// wpBasis returns the workplane's (u, v, normal) symbolic basis vectors.
func wpBasis(wp *Entity, ents *Table, pt *ParamTable) (u, v, n expr.Vector) {
	normal := ents.MustFindByHandle(wp.Normal)
	q := expr.NewQuaternion(
		expr.ParamRef(normal.ParamH[0]), expr.ParamRef(normal.ParamH[1]),
		expr.ParamRef(normal.ParamH[2]), expr.ParamRef(normal.ParamH[3]),
	)
	return q.NormalizedAxis()
}
