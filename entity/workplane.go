// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

func init() {
	Register(Workplane, workplaneBehavior{})
}

// NewWorkplane creates a workplane from an already-built origin point and
// normal entity (§4.3: "an origin point + a normal"). Both must already be
// present in ents.
func NewWorkplane(g handle.Group, origin, normal handle.Entity) *Entity {
	e := newBase(Workplane, g, FreeIn3D)
	e.Point[0] = origin
	e.NumPoint = 1
	e.HasNormal = true
	e.Normal = normal
	return e
}

type workplaneBehavior struct{}

// Equations contributes nothing directly: a workplane's "plane equation"
// n.p - d = 0 is generated per point constrained into the plane, not once
// by the workplane itself (§4.3).
func (workplaneBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}

func (workplaneBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a workplane entity")
}

// PlaneEquation returns the symbolic plane-equation pieces for wp: its unit
// normal vector and its signed offset d, such that a point p lies in the
// plane iff n.p - d == 0 (§4.3).
func (wp *Entity) PlaneEquation(ents *Table, pt *ParamTable) (n expr.Vector, d *expr.Expr) {
	if wp.Kind != Workplane {
		panic("entity: PlaneEquation called on a non-workplane entity")
	}
	normalEnt := ents.MustFindByHandle(wp.Normal)
	q := normalEnt.Quaternion(ents, pt)
	_, _, n = q.NormalizedAxis()
	origin := ents.MustFindByHandle(wp.Point[0]).PointGetExprs(ents, pt)
	d = n.Dot(origin)
	return
}

// Basis returns the workplane's in-plane (u, v) basis vectors and its
// normal, used to project/unproject POINT_IN_2D entities (§4.3).
func (wp *Entity) Basis(ents *Table, pt *ParamTable) (u, v, n expr.Vector) {
	if wp.Kind != Workplane {
		panic("entity: Basis called on a non-workplane entity")
	}
	return wpBasis(wp, ents, pt)
}
