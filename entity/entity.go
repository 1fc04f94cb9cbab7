// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/handle"
)

// FreeIn3D is the sentinel workplane handle meaning "not sketched inside
// any workplane" (§3.2).
const FreeIn3D handle.Entity = 0

// MaxPointChildren, MaxDirectParams bound the per-entity payload per §3.2
// ("up to 12 point-child handles ... up to 7 direct params").
const (
	MaxPointChildren = 12
	MaxDirectParams  = 7
)

// Entity is the tagged-variant geometric primitive of §3.2. It is kept as
// one flat struct carrying every variant's possible fields (the Kind field
// is the tag), exactly how inp.Cell in the teacher carries every cell
// variant's fields behind a Geo/Type discriminant; per-kind behavior is
// reached through the Behavior dispatch table in behavior.go rather than
// a Go type switch, so new kinds register themselves the way msolid models
// register into the allocators map.
type Entity struct {
	H     handle.Entity
	Kind  Kind
	Group handle.Group

	// Workplane is FreeIn3D for 3D-only entities, otherwise the workplane
	// entity this one is sketched inside.
	Workplane handle.Entity

	// Derived is true for derived (group-owned, created by
	// extrude/rotate/link) entities and false for primary (request-owned)
	// ones, per §3.2; this mirrors handle.EntityOwnedByGroup(H) but is kept
	// explicit so callers don't have to decode the handle to branch.
	Derived bool

	Construction bool // excluded from bezier/polyline generation (§4.6 step 3)
	Visible      bool

	NumPoint int
	Point    [MaxPointChildren]handle.Entity

	HasNormal bool
	Normal    handle.Entity

	HasDistance bool
	DistanceEnt handle.Entity

	NumParam int
	ParamH   [MaxDirectParams]handle.Param

	// type-specific payload
	Str  string // TTF text string, or image file path
	Font string

	// numeric cache, refreshed after each solve (§4.3)
	ActPoint    [3]float64
	ActNormal   [4]float64 // unit quaternion (w,x,y,z)
	ActDistance float64
	ActVisible  bool
}

func (e *Entity) Handle() handle.Entity     { return e.H }
func (e *Entity) SetHandle(h handle.Entity) { e.H = h }

func (e *Entity) DeepCopy() *Entity {
	cp := *e
	return &cp
}

// Table is the ordered, handle-keyed collection of entities in a sketch.
type Table struct {
	*handle.Table[handle.Entity, *Entity]
}

func NewTable() *Table {
	return &Table{handle.NewTable[handle.Entity, *Entity]()}
}

func newBase(kind Kind, group handle.Group, wp handle.Entity) *Entity {
	return &Entity{
		Kind:      kind,
		Group:     group,
		Workplane: wp,
		Visible:   true,
	}
}
