// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package request implements user-level requests (§3.2): the actions a
// user takes ("add a line", "add a circle") that each generate one or more
// entities and the params that back them.
package request

import (
	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
)

// Kind is the stable request-type code. Unlike entity.Kind these have no
// file-format stability requirement of their own (§6.5 only enumerates
// entity and constraint codes), so they are numbered locally.
type Kind int

const (
	Workplane Kind = iota + 1
	Line3D
	Line2D
	Cubic
	CubicPeriodic
	Circle
	Arc
	TTFText
	Image
)

// Request is a user action that generates one or more entities (§3.2).
type Request struct {
	H         handle.Request
	Kind      Kind
	Workplane handle.Entity // FREE_IN_3D if this request is not sketched in a workplane
	Group     handle.Group
	Style     uint32
	Construction bool

	// type-specific payload
	Str  string // TTF text string, or image file path
	Font string

	// Generated is filled in by Generate: every entity this request
	// produced, in creation order, so group regeneration (§4.6) can tag
	// and later remove them without re-deriving the list.
	Generated []handle.Entity
}

func (r *Request) Handle() handle.Request     { return r.H }
func (r *Request) SetHandle(h handle.Request) { r.H = h }

// Table is the ordered, handle-keyed collection of requests in a sketch.
type Table struct {
	*handle.Table[handle.Request, *Request]
}

func NewTable() *Table {
	return &Table{handle.NewTable[handle.Request, *Request]()}
}

// Generator is the per-Kind entity/param construction routine, registered
// the same self-registering way entity.Behavior is (§9).
type Generator func(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity

// InitialGeometry carries the numeric seed values a freshly created
// request is realized at (e.g. where the user clicked); a real interactive
// front end would derive these from screen coordinates, which is out of
// this kernel's scope, so callers (tests, importers, the CLI driver) just
// supply them directly.
type InitialGeometry struct {
	Points [4][3]float64 // up to 4 seed points, meaning depends on Kind
	Value  float64       // radius/distance seed, meaning depends on Kind
}

var generators = make(map[Kind]Generator)

// Register installs the Generator for kind; called from each per-kind
// file's init().
func Register(kind Kind, g Generator) {
	generators[kind] = g
}

// Generate realizes r into entities/params in ents/pt, records the
// produced handles in r.Generated, and returns them.
func (r *Request) Generate(ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	g, ok := generators[r.Kind]
	if !ok {
		chk.Panic("request: no Generator registered for kind %d", int(r.Kind))
	}
	r.Generated = g(r, ents, pt, initial)
	return r.Generated
}
