// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements the geometric-relation library of §4.4:
// each constraint kind's lazy parameter generation and its symbolic
// equation-generation dispatch table.
package constraint

import (
	"github.com/cpmech/gosl/fun"

	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

// Kind is the stable constraint-type code (§6.5: "20..200, 1000 for
// comment").
type Kind int

const (
	PointsCoincident Kind = 20 + iota
	PtPtDistance
	PtLineDistance
	PtOnLine
	EqualLengthLines
	Angle
	Parallel
	Perpendicular
	CurveCurveTangent
	Horizontal
	Vertical
	Diameter
	WhereDragged
	Symmetric
	EqualRadius
)

const Comment Kind = 1000

// Constraint is a geometric relation (§3.2). It carries up to two point
// handles, up to four entity handles, a scalar value, and the two
// "other"/"other2" orientation flags certain kinds (ANGLE's supplement,
// PARALLEL's hairy-ball branch) need to disambiguate which of several
// algebraically valid solutions is intended.
type Constraint struct {
	H         handle.Constraint
	Type      Kind
	Group     handle.Group
	Workplane handle.Entity // FreeIn3D if this constraint is not confined to a workplane

	ValA float64

	PtA, PtB           handle.Entity
	EntityA, EntityB   handle.Entity
	EntityC, EntityD   handle.Entity

	Other, Other2 bool

	// Reference marks a "reference dimension": still displayed, but
	// contributes no equations (§3.2).
	Reference bool

	// ValP is the lazily-created auxiliary param some kinds need (e.g.
	// PT_ON_LINE's t in [0,1]); zero until first generated (§4.4).
	ValP handle.Param

	LabelOffset [3]float64
}

func (c *Constraint) Handle() handle.Constraint     { return c.H }
func (c *Constraint) SetHandle(h handle.Constraint) { c.H = h }

// Table is the ordered, handle-keyed collection of constraints in a sketch.
type Table struct {
	*handle.Table[handle.Constraint, *Constraint]
}

func NewTable() *Table {
	return &Table{handle.NewTable[handle.Constraint, *Constraint]()}
}

// Behavior is the per-kind equation-generation dispatch table entry,
// registered by each kind's file the same self-registering way
// entity.Behavior is (§9).
type Behavior interface {
	// Equations returns the zero-or-more equations this constraint
	// contributes (empty for Reference and for COMMENT). pt.AddFree is
	// used to lazily materialize c.ValP the first time it's needed.
	Equations(c *Constraint, ents *entity.Table, pt *entity.ParamTable) []*expr.Expr
}

var behaviors = make(map[Kind]Behavior)

// Register installs the Behavior for kind; called from each per-kind
// file's init().
func Register(kind Kind, b Behavior) {
	behaviors[kind] = b
}

// Equations dispatches to the registered Behavior for c.Type. A Reference
// constraint, or one with no registered Behavior (COMMENT), contributes no
// equations.
func (c *Constraint) Equations(ents *entity.Table, pt *entity.ParamTable) []*expr.Expr {
	if c.Reference {
		return nil
	}
	b, ok := behaviors[c.Type]
	if !ok {
		return nil
	}
	return b.Equations(c, ents, pt)
}

// valPOrCreate returns c's lazily-created auxiliary param, allocating it
// at initial the first time it's needed (§4.4).
func valPOrCreate(c *Constraint, pt *entity.ParamTable, initial float64) handle.Param {
	if c.ValP == 0 {
		c.ValP = pt.AddFree(initial).Handle()
	}
	return c.ValP
}

// describers holds each kind's named-scalar metadata, in the same spirit
// as a Model's GetPrms() in the teacher's msolid package: a description a
// UI or file-format layer can use to label valA/other without hardcoding
// per-kind knowledge of what they mean.
var describers = make(map[Kind]fun.Prms)

// DescribeParams returns kind's named scalar inputs ("valA" tagged with the
// unit its Behavior expects, and for some kinds the other/other2 flags) for
// introspection —
// e.g. a save-file writer deciding whether to print an angle in radians or
// a length in model units.
func DescribeParams(kind Kind) fun.Prms {
	return describers[kind]
}

func registerDescription(kind Kind, prms fun.Prms) {
	describers[kind] = prms
}

func init() {
	registerDescription(PtPtDistance, fun.Prms{{N: "valA.length", V: 0}})
	registerDescription(PtLineDistance, fun.Prms{{N: "valA.length", V: 0}})
	registerDescription(EqualLengthLines, fun.Prms{})
	registerDescription(Angle, fun.Prms{{N: "valA.radians", V: 0}, {N: "other.supplement", V: 0}})
	registerDescription(Diameter, fun.Prms{{N: "valA.length", V: 0}})
	registerDescription(Parallel, fun.Prms{{N: "other.axis", V: 0}, {N: "other2.axis", V: 0}})
}

func pointExprs(ents *entity.Table, pt *entity.ParamTable, h handle.Entity) expr.Vector {
	return ents.MustFindByHandle(h).PointGetExprs(ents, pt)
}
