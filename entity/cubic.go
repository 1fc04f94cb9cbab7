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
	Register(Cubic, cubicBehavior{})
	Register(CubicPeriodic, cubicPeriodicBehavior{})
}

// NewCubic creates a non-rational degree-3 Bezier from four already-built
// point entities (§4.3).
func NewCubic(g handle.Group, wp handle.Entity, p0, p1, p2, p3 handle.Entity) *Entity {
	e := newBase(Cubic, g, wp)
	e.NumPoint = 4
	e.Point[0], e.Point[1], e.Point[2], e.Point[3] = p0, p1, p2, p3
	return e
}

type cubicBehavior struct{}

func (cubicBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (cubicBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a cubic entity")
}
func (cubicBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	return []shell.SBezier{cubicOf(e, ents)}
}

// cubicPeriodicBehavior: CUBIC_PERIODIC shares CUBIC's four-point control
// net (§4.3); the kernel treats it as the same single rational cubic
// segment, since multi-span periodic spline assembly belongs to a dedicated
// spline editor outside this kernel's scope. Neither this behavior nor the
// request that builds it makes the first and last points coincide.
type cubicPeriodicBehavior struct{}

func (cubicPeriodicBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr {
	return nil
}
func (cubicPeriodicBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a cubic entity")
}
func (cubicPeriodicBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	return []shell.SBezier{cubicOf(e, ents)}
}

func cubicOf(e *Entity, ents *Table) shell.SBezier {
	p0 := actVec(ents.MustFindByHandle(e.Point[0]))
	p1 := actVec(ents.MustFindByHandle(e.Point[1]))
	p2 := actVec(ents.MustFindByHandle(e.Point[2]))
	p3 := actVec(ents.MustFindByHandle(e.Point[3]))
	c := shell.NewCubic(p0, p1, p2, p3)
	c.EntityH = uint32(e.H)
	return c
}
