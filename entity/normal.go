// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

func init() {
	Register(NormalIn3D, normal3DBehavior{})
	Register(NormalIn2D, normal2DBehavior{})
	Register(NormalNCopy, normalNCopyBehavior{})
	Register(NormalNRot, normalNRotBehavior{})
	Register(NormalNRotAA, normalNRotAABehavior{})
}

// NewNormalIn3D creates a free unit-quaternion normal with four direct
// params (§4.3).
func NewNormalIn3D(g handle.Group, wp handle.Entity, pt *ParamTable, w, x, y, z float64) *Entity {
	e := newBase(NormalIn3D, g, wp)
	e.NumParam = 4
	e.ParamH[0] = pt.AddFree(w).Handle()
	e.ParamH[1] = pt.AddFree(x).Handle()
	e.ParamH[2] = pt.AddFree(y).Handle()
	e.ParamH[3] = pt.AddFree(z).Handle()
	e.ActNormal = [4]float64{w, x, y, z}
	return e
}

// NewNormalNCopy creates a NORMAL_N_COPY derived normal: an untransformed
// duplicate of src's orientation, used alongside NewPointNTrans for EXTRUDE
// and TRANSLATE copies (§4.6).
func NewNormalNCopy(g handle.Group, wp handle.Entity, src handle.Entity) *Entity {
	e := newBase(NormalNCopy, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	return e
}

// NewNormalNRot creates a NORMAL_N_ROT derived normal: src rotated by the
// fixed unit quaternion (qw,qx,qy,qz) held in its own known params (§4.6).
func NewNormalNRot(g handle.Group, wp handle.Entity, pt *ParamTable, src handle.Entity, qw, qx, qy, qz float64) *Entity {
	e := newBase(NormalNRot, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	e.NumParam = 4
	e.ParamH[0] = pt.AddKnown(qw).Handle()
	e.ParamH[1] = pt.AddKnown(qx).Handle()
	e.ParamH[2] = pt.AddKnown(qy).Handle()
	e.ParamH[3] = pt.AddKnown(qz).Handle()
	return e
}

// NewNormalNRotAA creates a NORMAL_N_ROT_AA derived normal: src rotated by
// the fixed unit quaternion (qw,qx,qy,qz) about a fixed axis, used
// alongside NewPointNRotAA for LATHE/REVOLVE/HELIX copies (§4.6). The first
// three param slots mirror NewPointNRotAA's origin slots so both entities
// share the same per-copy param layout even though a direction has no use
// for an origin.
func NewNormalNRotAA(g handle.Group, wp handle.Entity, pt *ParamTable, src handle.Entity, qw, qx, qy, qz float64) *Entity {
	e := newBase(NormalNRotAA, g, wp)
	e.Derived = true
	e.NumPoint = 1
	e.Point[0] = src
	e.NumParam = 7
	e.ParamH[0] = pt.AddKnown(0).Handle()
	e.ParamH[1] = pt.AddKnown(0).Handle()
	e.ParamH[2] = pt.AddKnown(0).Handle()
	e.ParamH[3] = pt.AddKnown(qw).Handle()
	e.ParamH[4] = pt.AddKnown(qx).Handle()
	e.ParamH[5] = pt.AddKnown(qy).Handle()
	e.ParamH[6] = pt.AddKnown(qz).Handle()
	return e
}

// Quaternion returns the symbolic unit quaternion of a normal entity.
func (e *Entity) Quaternion(ents *Table, pt *ParamTable) expr.Quaternion {
	if !e.Kind.IsNormal() {
		panic("entity: Quaternion called on non-normal kind")
	}
	return behaviorFor(e.Kind).(quaternionBehavior).Quaternion(e, ents, pt)
}

// quaternionBehavior extends Behavior for normal kinds, which expose a
// quaternion rather than a point.
type quaternionBehavior interface {
	Quaternion(e *Entity, ents *Table, pt *ParamTable) expr.Quaternion
}

type normal3DBehavior struct{}

func (normal3DBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a normal entity")
}

// Equations enforces the unit-quaternion constraint w^2+x^2+y^2+z^2 = 1,
// the implicit "quaternion generation" equation every free normal
// contributes (§3.2: "Normal ... unit quaternion").
func (normal3DBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	w := expr.ParamRef(e.ParamH[0])
	x := expr.ParamRef(e.ParamH[1])
	y := expr.ParamRef(e.ParamH[2])
	z := expr.ParamRef(e.ParamH[3])
	sumSq := expr.Add(expr.Add(expr.Square(w), expr.Square(x)), expr.Add(expr.Square(y), expr.Square(z)))
	return []*expr.Expr{expr.Sub(sumSq, expr.Const1(1))}
}

func (normal3DBehavior) Quaternion(e *Entity, ents *Table, pt *ParamTable) expr.Quaternion {
	return expr.NewQuaternion(
		expr.ParamRef(e.ParamH[0]), expr.ParamRef(e.ParamH[1]),
		expr.ParamRef(e.ParamH[2]), expr.ParamRef(e.ParamH[3]),
	)
}

// normal2DBehavior: NORMAL_IN_2D has no direct params of its own — it is
// oriented by its workplane (§4.3: "NORMAL_IN_2D is oriented by its
// workplane"), so its quaternion is simply the identity in the
// workplane's own frame (the workplane's normal entity IS the thing being
// asked for, so this only ever appears as that workplane's own normal).
type normal2DBehavior struct{}

func (normal2DBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (normal2DBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a normal entity")
}
func (normal2DBehavior) Quaternion(e *Entity, ents *Table, pt *ParamTable) expr.Quaternion {
	return expr.NewQuaternion(expr.Const1(1), expr.Const1(0), expr.Const1(0), expr.Const1(0))
}

type normalNCopyBehavior struct{}

func (normalNCopyBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (normalNCopyBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a normal entity")
}
func (normalNCopyBehavior) Quaternion(e *Entity, ents *Table, pt *ParamTable) expr.Quaternion {
	src := ents.MustFindByHandle(e.Point[0])
	return src.Quaternion(ents, pt)
}

// normalNRotBehavior: NORMAL_N_ROT — the source normal rotated by the
// owning group's rotation quaternion (TRANSLATE never rotates normals,
// ROTATE/LATHE/REVOLVE/HELIX do).
type normalNRotBehavior struct{}

func (normalNRotBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (normalNRotBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a normal entity")
}
func (normalNRotBehavior) Quaternion(e *Entity, ents *Table, pt *ParamTable) expr.Quaternion {
	src := ents.MustFindByHandle(e.Point[0]).Quaternion(ents, pt)
	rq := expr.NewQuaternion(expr.ParamRef(e.ParamH[0]), expr.ParamRef(e.ParamH[1]), expr.ParamRef(e.ParamH[2]), expr.ParamRef(e.ParamH[3]))
	return quatMul(rq, src)
}

type normalNRotAABehavior struct{}

func (normalNRotAABehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}
func (normalNRotAABehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a normal entity")
}
func (normalNRotAABehavior) Quaternion(e *Entity, ents *Table, pt *ParamTable) expr.Quaternion {
	src := ents.MustFindByHandle(e.Point[0]).Quaternion(ents, pt)
	rq := expr.NewQuaternion(expr.ParamRef(e.ParamH[3]), expr.ParamRef(e.ParamH[4]), expr.ParamRef(e.ParamH[5]), expr.ParamRef(e.ParamH[6]))
	return quatMul(rq, src)
}

// quatMul returns the Hamilton product a*b, symbolically.
func quatMul(a, b expr.Quaternion) expr.Quaternion {
	w := expr.Sub(expr.Sub(expr.Mul(a.W, b.W), expr.Mul(a.Vx, b.Vx)), expr.Add(expr.Mul(a.Vy, b.Vy), expr.Mul(a.Vz, b.Vz)))
	x := expr.Add(expr.Add(expr.Mul(a.W, b.Vx), expr.Mul(a.Vx, b.W)), expr.Sub(expr.Mul(a.Vy, b.Vz), expr.Mul(a.Vz, b.Vy)))
	y := expr.Add(expr.Sub(expr.Mul(a.W, b.Vy), expr.Mul(a.Vx, b.Vz)), expr.Add(expr.Mul(a.Vy, b.W), expr.Mul(a.Vz, b.Vx)))
	z := expr.Add(expr.Add(expr.Mul(a.W, b.Vz), expr.Mul(a.Vx, b.Vy)), expr.Sub(expr.Mul(a.Vz, b.W), expr.Mul(a.Vy, b.Vx)))
	return expr.NewQuaternion(w, x, y, z)
}
