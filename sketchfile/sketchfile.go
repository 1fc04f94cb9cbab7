// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sketchfile implements the `.slvs` save-file format of §6.2: a
// line-oriented `Type.field=value` text encoding of a sketch's groups,
// requests, params, entities, and constraints, terminated per-record by an
// Add<Type> keyword line. Handles in this kernel already pack their owning
// parent and index (handle.Entity/handle.Param/...), so round-tripping a
// handle is a plain hex encode/decode rather than needing a separate
// id-remapping pass.
package sketchfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	gio "github.com/cpmech/gosl/io"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/group"
	"github.com/solvespace/solvespace-sub002/request"
)

// magic is the three-byte file signature, followed by the REV line and two
// blank lines (§6.2).
const magic = "\261\262\263SolveSpaceREVa\n\n\n"

// Sketch bundles every handle-keyed table a `.slvs` file round-trips. It is
// the file format's view of a sketch, as opposed to slvs.System's
// solve-oriented view of the same tables.
type Sketch struct {
	Groups      *group.Table
	Requests    *request.Table
	Params      *entity.ParamTable
	Entities    *entity.Table
	Constraints *constraint.Table
}

// NewSketch returns an empty Sketch with every table initialized.
func NewSketch() *Sketch {
	return &Sketch{
		Groups:      group.NewTable(),
		Requests:    request.NewTable(),
		Params:      entity.NewParamTable(),
		Entities:    entity.NewTable(),
		Constraints: constraint.NewTable(),
	}
}

// Mesh/shell geometry (ThisMesh, ThisShell, RunningMesh, RunningShell) is
// deliberately not part of the on-disk format: §4.6 regenerates it from the
// source entities above on every Regenerate call, so persisting it would
// just be a stale cache the first solve throws away. The §6.2 Triangle/
// Surface/Curve trailer records this omits exist to let a real SolveSpace
// file skip that regeneration; this kernel always regenerates instead.

// Write encodes s to w in the §6.2 text format.
func Write(w io.Writer, s *Sketch) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(magic); err != nil {
		return chk.Err("sketchfile: writing header: %v", err)
	}

	s.Groups.Each(func(g *group.Group) { writeGroup(bw, g) })
	s.Params.Each(func(p *entity.Param) { writeParam(bw, p) })
	s.Entities.Each(func(e *entity.Entity) { writeEntity(bw, e) })
	s.Requests.Each(func(r *request.Request) { writeRequest(bw, r) })
	s.Constraints.Each(func(c *constraint.Constraint) { writeConstraint(bw, c) })

	return bw.Flush()
}

// WriteFile encodes s to filename in the §6.2 format.
func WriteFile(filename string, s *Sketch) error {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return err
	}
	gio.WriteFile(filename, &buf)
	return nil
}

// ReadFile decodes a Sketch from filename. Malformed or unrecognized lines
// are collected as warnings rather than aborting the read (§6.2).
func ReadFile(filename string) (*Sketch, []LoadWarning, error) {
	b, err := gio.ReadFile(filename)
	if err != nil {
		return nil, nil, chk.Err("sketchfile: cannot read %q: %v", filename, err)
	}
	return Read(bytes.NewReader(b))
}

func hexOf[H ~uint32](h H) string { return fmt.Sprintf("%08x", uint32(h)) }

func parseHex32(v string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 16, 32)
	return uint32(n), err
}

func writeBool(bw *bufio.Writer, field string, v bool) {
	n := 0
	if v {
		n = 1
	}
	fmt.Fprintf(bw, "%s=%d\n", field, n)
}

func writeFloat(bw *bufio.Writer, field string, v float64) {
	fmt.Fprintf(bw, "%s=%.20f\n", field, v)
}

func writeGroup(bw *bufio.Writer, g *group.Group) {
	fmt.Fprintf(bw, "Group.h=%s\n", hexOf(g.H))
	fmt.Fprintf(bw, "Group.type=%d\n", int(g.Kind))
	fmt.Fprintf(bw, "Group.source=%s\n", hexOf(g.Source))
	fmt.Fprintf(bw, "Group.predefOrigin=%s\n", hexOf(g.PredefOrigin))
	fmt.Fprintf(bw, "Group.predefEntityB=%s\n", hexOf(g.PredefEntityB))
	for i, v := range g.Param {
		writeFloat(bw, fmt.Sprintf("Group.param%d", i), v)
	}
	fmt.Fprintf(bw, "Group.copies=%d\n", g.Copies)
	fmt.Fprintf(bw, "Group.op=%d\n", int(g.Op))
	writeBool(bw, "Group.allDimsReference", g.AllDimsReference)
	writeBool(bw, "Group.relaxConstraints", g.RelaxConstraints)
	writeBool(bw, "Group.allowRedundant", g.AllowRedundant)
	if len(g.Remap) > 0 {
		bw.WriteString("Group.remap={\n")
		for k, v := range g.Remap {
			fmt.Fprintf(bw, "%s %s %d\n", hexOf(v), hexOf(k.Input), k.Copy)
		}
		bw.WriteString("}\n")
	}
	bw.WriteString("AddGroup\n")
}

func writeParam(bw *bufio.Writer, p *entity.Param) {
	fmt.Fprintf(bw, "Param.h=%s\n", hexOf(p.H))
	writeFloat(bw, "Param.val", p.Value())
	writeBool(bw, "Param.known", p.Known)
	writeBool(bw, "Param.free", p.Free)
	fmt.Fprintf(bw, "Param.substituted=%s\n", hexOf(p.Substituted))
	writeBool(bw, "Param.dragged", p.Dragged)
	bw.WriteString("AddParam\n")
}

func writeEntity(bw *bufio.Writer, e *entity.Entity) {
	fmt.Fprintf(bw, "Entity.h=%s\n", hexOf(e.H))
	fmt.Fprintf(bw, "Entity.type=%d\n", int(e.Kind))
	fmt.Fprintf(bw, "Entity.group=%s\n", hexOf(e.Group))
	fmt.Fprintf(bw, "Entity.workplane=%s\n", hexOf(e.Workplane))
	writeBool(bw, "Entity.derived", e.Derived)
	writeBool(bw, "Entity.construction", e.Construction)
	writeBool(bw, "Entity.visible", e.Visible)
	fmt.Fprintf(bw, "Entity.numPoint=%d\n", e.NumPoint)
	for i := 0; i < e.NumPoint; i++ {
		fmt.Fprintf(bw, "Entity.point%d=%s\n", i, hexOf(e.Point[i]))
	}
	writeBool(bw, "Entity.hasNormal", e.HasNormal)
	if e.HasNormal {
		fmt.Fprintf(bw, "Entity.normal=%s\n", hexOf(e.Normal))
	}
	writeBool(bw, "Entity.hasDistance", e.HasDistance)
	if e.HasDistance {
		fmt.Fprintf(bw, "Entity.distanceEnt=%s\n", hexOf(e.DistanceEnt))
	}
	fmt.Fprintf(bw, "Entity.numParam=%d\n", e.NumParam)
	for i := 0; i < e.NumParam; i++ {
		fmt.Fprintf(bw, "Entity.paramH%d=%s\n", i, hexOf(e.ParamH[i]))
	}
	if e.Str != "" {
		fmt.Fprintf(bw, "Entity.str=%s\n", e.Str)
	}
	if e.Font != "" {
		fmt.Fprintf(bw, "Entity.font=%s\n", e.Font)
	}
	bw.WriteString("AddEntity\n")
}

func writeRequest(bw *bufio.Writer, r *request.Request) {
	fmt.Fprintf(bw, "Request.h=%s\n", hexOf(r.H))
	fmt.Fprintf(bw, "Request.type=%d\n", int(r.Kind))
	fmt.Fprintf(bw, "Request.workplane=%s\n", hexOf(r.Workplane))
	fmt.Fprintf(bw, "Request.group=%s\n", hexOf(r.Group))
	fmt.Fprintf(bw, "Request.style=%08x\n", r.Style)
	writeBool(bw, "Request.construction", r.Construction)
	if r.Str != "" {
		fmt.Fprintf(bw, "Request.str=%s\n", r.Str)
	}
	if r.Font != "" {
		fmt.Fprintf(bw, "Request.font=%s\n", r.Font)
	}
	bw.WriteString("AddRequest\n")
}

func writeConstraint(bw *bufio.Writer, c *constraint.Constraint) {
	fmt.Fprintf(bw, "Constraint.h=%s\n", hexOf(c.H))
	fmt.Fprintf(bw, "Constraint.type=%d\n", int(c.Type))
	fmt.Fprintf(bw, "Constraint.group=%s\n", hexOf(c.Group))
	fmt.Fprintf(bw, "Constraint.workplane=%s\n", hexOf(c.Workplane))
	writeFloat(bw, "Constraint.valA", c.ValA)
	fmt.Fprintf(bw, "Constraint.ptA=%s\n", hexOf(c.PtA))
	fmt.Fprintf(bw, "Constraint.ptB=%s\n", hexOf(c.PtB))
	fmt.Fprintf(bw, "Constraint.entityA=%s\n", hexOf(c.EntityA))
	fmt.Fprintf(bw, "Constraint.entityB=%s\n", hexOf(c.EntityB))
	fmt.Fprintf(bw, "Constraint.entityC=%s\n", hexOf(c.EntityC))
	fmt.Fprintf(bw, "Constraint.entityD=%s\n", hexOf(c.EntityD))
	writeBool(bw, "Constraint.other", c.Other)
	writeBool(bw, "Constraint.other2", c.Other2)
	writeBool(bw, "Constraint.reference", c.Reference)
	fmt.Fprintf(bw, "Constraint.valP=%s\n", hexOf(c.ValP))
	for i, v := range c.LabelOffset {
		writeFloat(bw, fmt.Sprintf("Constraint.labelOffset%d", i), v)
	}
	bw.WriteString("AddConstraint\n")
}
