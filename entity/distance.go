// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

func init() {
	Register(Distance, distanceBehavior{})
	Register(DistanceNCopy, distanceNCopyBehavior{})
}

// NewDistance creates a scalar distance entity with one direct param,
// constrained positive by convention (§4.3).
func NewDistance(g handle.Group, wp handle.Entity, pt *ParamTable, value float64) *Entity {
	e := newBase(Distance, g, wp)
	e.NumParam = 1
	e.ParamH[0] = pt.AddFree(value).Handle()
	e.ActDistance = value
	return e
}

// DistanceExpr returns the symbolic scalar value of a DISTANCE-kind entity.
func (e *Entity) DistanceExpr(ents *Table, pt *ParamTable) *expr.Expr {
	switch e.Kind {
	case Distance:
		return expr.ParamRef(e.ParamH[0])
	case DistanceNCopy:
		return ents.MustFindByHandle(e.DistanceEnt).DistanceExpr(ents, pt)
	}
	panic("entity: DistanceExpr called on non-distance kind")
}

type distanceBehavior struct{}

func (distanceBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (distanceBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a distance entity")
}

type distanceNCopyBehavior struct{}

func (distanceNCopyBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}
func (distanceNCopyBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a distance entity")
}
