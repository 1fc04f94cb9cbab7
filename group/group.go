// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package group implements the group regeneration pipeline of §4.6: turn a
// group's source entities into thisShell/thisMesh per its Kind (extrude,
// lathe, revolve, helix, translate, rotate, linked), boolean-combine with
// the previous group's running geometry, and mark the result dirty — the
// same "walk an ordered table, accumulate a running aggregate" shape
// fem.Domain uses to build up its global system one element at a time, one
// level up from finite elements to whole sketch groups.
package group

import (
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/meshbsp"
	"github.com/solvespace/solvespace-sub002/polyline"
	"github.com/solvespace/solvespace-sub002/shell"
	"github.com/solvespace/solvespace-sub002/solver"
)

// Kind is a group's regeneration variant (§3.2).
type Kind int

const (
	Drawing3D Kind = iota
	DrawingWorkplane
	Extrude
	Lathe
	Revolve
	Helix
	Rotate
	Translate
	Linked
)

// BooleanOp selects how a group's thisShell/thisMesh combines with the
// previous group's running geometry (§4.6 step 5, §4.8-4.9).
type BooleanOp int

const (
	BooleanUnion BooleanOp = iota
	BooleanDifference
	BooleanIntersection
	BooleanAssemble
)

// Remap copy-number sentinels (§3.4): reserved values of the per-copy index
// in an EntityRemap key, identifying derived faces rather than literal
// step-and-repeat copies.
const (
	RemapTop = -(iota + 1)
	RemapBottom
	RemapLineToFace
	RemapPtToLine
	RemapLatheStart
	RemapLatheEnd
	RemapPtToArc
	RemapPtToNormal
	RemapLast
)

// RemapKey identifies one (source entity, copy number) pair lifted from a
// source group into this group (§3.4).
type RemapKey struct {
	Input handle.Entity
	Copy  int
}

// Group is an ordered unit of regeneration (§3.2).
type Group struct {
	H    handle.Group
	Kind Kind

	// Source groups this group draws entities from. For EXTRUDE/LATHE/
	// REVOLVE/HELIX this is the single 2D sketch group being swept;
	// TRANSLATE/ROTATE also sweep a single source group N times; LINKED
	// has no in-sketch source (its geometry comes from an external file).
	Source handle.Group

	// PredefOrigin/PredefEntityB: LATHE/REVOLVE/HELIX's axis, an origin
	// point entity plus a second entity (a line, or a point giving the
	// axis direction together with PredefOrigin) (§4.6).
	PredefOrigin  handle.Entity
	PredefEntityB handle.Entity

	// Param0.. mirrors the source's "direct params" convention (§4.6):
	//   EXTRUDE:            Param[0:3] translation (dx,dy,dz).
	//   LATHE/REVOLVE:      Param[3] swept-angle quarter-factor (REVOLVE's
	//                       "4*param3" radians; LATHE ignores it, always 2pi).
	//   HELIX:              as REVOLVE, plus Param[7] axial pitch.
	//   TRANSLATE:          Param[0:3] per-copy offset.
	//   ROTATE:             Param[0:3] axis origin, Param[3:6] axis
	//                       direction (unit), Param[6] per-copy angle.
	// Copies is the step-and-repeat count for TRANSLATE/ROTATE.
	Param [8]float64

	Copies int // step-and-repeat count for TRANSLATE/ROTATE

	Op BooleanOp

	Remap map[RemapKey]handle.Entity

	SolveReport solver.Report

	// Per-group configuration overrides (§6.4): AllDimsReference marks
	// every numeric-dimension constraint Reference for this group's solve
	// only; RelaxConstraints suppresses every constraint but
	// PointsCoincident; AllowRedundant folds a Redundant* solver.Result
	// back to its non-redundant counterpart instead of reporting it.
	AllDimsReference bool
	RelaxConstraints bool
	AllowRedundant   bool

	PolylineStatus polyline.Status

	ThisShell    *shell.SShell
	ThisMesh     *meshbsp.TMesh
	RunningShell *shell.SShell
	RunningMesh  *meshbsp.TMesh

	Dirty bool
}

func (g *Group) Handle() handle.Group     { return g.H }
func (g *Group) SetHandle(h handle.Group) { g.H = h }

// Table is the ordered, handle-keyed collection of groups in a sketch; its
// insertion order is the regeneration order (§4.2).
type Table struct {
	*handle.Table[handle.Group, *Group]
}

func NewTable() *Table {
	return &Table{handle.NewTable[handle.Group, *Group]()}
}

// NewGroup allocates a bare group of the given kind, ready for its
// kind-specific fields to be filled in before the first Regenerate call.
func NewGroup(kind Kind) *Group {
	return &Group{Kind: kind, Remap: make(map[RemapKey]handle.Entity)}
}
