// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/shell"
)

func init() {
	Register(LineSegment, lineSegmentBehavior{})
}

// NewLineSegment creates a line between two already-built point entities
// (§4.3). It carries no direct params of its own: its shape follows
// entirely from its two endpoints.
func NewLineSegment(g handle.Group, wp handle.Entity, a, b handle.Entity) *Entity {
	e := newBase(LineSegment, g, wp)
	e.NumPoint = 2
	e.Point[0] = a
	e.Point[1] = b
	return e
}

type lineSegmentBehavior struct{}

func (lineSegmentBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}

func (lineSegmentBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a line entity")
}

func (lineSegmentBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	a := actVec(ents.MustFindByHandle(e.Point[0]))
	b := actVec(ents.MustFindByHandle(e.Point[1]))
	l := shell.NewLine(a, b)
	l.EntityH = uint32(e.H)
	return []shell.SBezier{l}
}
