// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/cpmech/gosl/chk"
	"github.com/solvespace/solvespace-sub002/expr"
)

// Behavior is the per-kind virtual dispatch table entry (§9 "Tagged
// entities... a virtual dispatch table per variant handles equation
// generation, bezier curve generation, and drawing"). Each kind registers
// its own Behavior from an init() function, the same self-registration
// idiom the teacher's msolid package uses for material models
// (allocators["dp"] = ...).
type Behavior interface {
	// Equations returns the equations tying this entity's direct/derived
	// params to its owner (§4.3), using pt to resolve any param this
	// kind's equations reference by value (e.g. a copy entity's equations
	// reference its source's numeric cache, not a live param). ents
	// resolves cross-references to other entities (e.g. a workplane's
	// origin point, or a copy's source).
	Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr

	// PointExprs returns the symbolic (x,y,z) of a point-kind entity. Not
	// called for non-point kinds.
	PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector
}

var behaviors = make(map[Kind]Behavior)

// Register installs the Behavior for kind; called from each per-kind
// file's init().
func Register(kind Kind, b Behavior) {
	behaviors[kind] = b
}

func behaviorFor(kind Kind) Behavior {
	b, ok := behaviors[kind]
	if !ok {
		chk.Panic("entity: no Behavior registered for kind %d", int(kind))
	}
	return b
}

// Equations dispatches to the registered Behavior for e.Kind.
func (e *Entity) Equations(ents *Table, pt *ParamTable) []*expr.Expr {
	return behaviorFor(e.Kind).Equations(e, ents, pt)
}

// PointGetExprs returns the symbolic position of a point entity (§4.3).
func (e *Entity) PointGetExprs(ents *Table, pt *ParamTable) expr.Vector {
	if !e.Kind.IsPoint() {
		chk.Panic("entity: PointGetExprs called on non-point kind %d", int(e.Kind))
	}
	return behaviorFor(e.Kind).PointExprs(e, ents, pt)
}

// PointForceTo overwrites a free point's direct params so that it
// evaluates to v exactly (§4.3).
func (e *Entity) PointForceTo(pt *ParamTable, v [3]float64) {
	switch e.Kind {
	case PointIn3D:
		pt.MustFindByHandle(e.ParamH[0]).SetValue(v[0])
		pt.MustFindByHandle(e.ParamH[1]).SetValue(v[1])
		pt.MustFindByHandle(e.ParamH[2]).SetValue(v[2])
	case PointIn2D:
		pt.MustFindByHandle(e.ParamH[0]).SetValue(v[0])
		pt.MustFindByHandle(e.ParamH[1]).SetValue(v[1])
	default:
		chk.Panic("entity: PointForceTo is only valid for free points, not kind %d", int(e.Kind))
	}
	e.ActPoint = v
}
