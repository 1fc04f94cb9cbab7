// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketchfile

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/group"
	"github.com/solvespace/solvespace-sub002/handle"
)

func buildSampleSketch() *Sketch {
	s := NewSketch()

	g := group.NewGroup(group.DrawingWorkplane)
	g.AllDimsReference = true
	gh := s.Groups.Add(g)

	ax := s.Params.AddFree(0.0)
	ay := s.Params.AddFree(0.0)
	bx := s.Params.AddFree(3.0)
	by := s.Params.AddFree(0.0)

	a := &entity.Entity{Kind: entity.PointIn2D, Group: gh, Visible: true, NumParam: 2}
	a.ParamH[0], a.ParamH[1] = ax.Handle(), ay.Handle()
	ah := s.Entities.Add(a)

	b := &entity.Entity{Kind: entity.PointIn2D, Group: gh, Visible: true, NumParam: 2}
	b.ParamH[0], b.ParamH[1] = bx.Handle(), by.Handle()
	bh := s.Entities.Add(b)

	line := &entity.Entity{Kind: entity.LineSegment, Group: gh, Visible: true, NumPoint: 2}
	line.Point[0], line.Point[1] = ah, bh
	lh := s.Entities.Add(line)

	c := &constraint.Constraint{
		Type:    constraint.PtPtDistance,
		Group:   gh,
		ValA:    3.0,
		EntityA: ah,
		EntityB: bh,
	}
	s.Constraints.Add(c)

	g.Remap[group.RemapKey{Input: lh, Copy: group.RemapTop}] = lh

	return s
}

func TestWriteReadRoundTripsGroupsEntitiesAndConstraints(tst *testing.T) {
	chk.PrintTitle("sketchfile Write/Read round-trips groups, params, entities, constraints")

	orig := buildSampleSketch()

	var buf bytes.Buffer
	if err := Write(&buf, orig); err != nil {
		tst.Fatalf("Write: %v", err)
	}

	got, warnings, err := Read(&buf)
	if err != nil {
		tst.Fatalf("Read: %v", err)
	}
	if len(warnings) != 0 {
		tst.Fatalf("unexpected warnings: %v", warnings)
	}

	if got.Groups.Len() != 1 {
		tst.Fatalf("groups = %d, want 1", got.Groups.Len())
	}
	if got.Params.Len() != 4 {
		tst.Fatalf("params = %d, want 4", got.Params.Len())
	}
	if got.Entities.Len() != 3 {
		tst.Fatalf("entities = %d, want 3", got.Entities.Len())
	}
	if got.Constraints.Len() != 1 {
		tst.Fatalf("constraints = %d, want 1", got.Constraints.Len())
	}

	g := got.Groups.Items()[0]
	if !g.AllDimsReference {
		tst.Fatalf("AllDimsReference did not round-trip")
	}
	if len(g.Remap) != 1 {
		tst.Fatalf("remap entries = %d, want 1", len(g.Remap))
	}

	c := got.Constraints.Items()[0]
	if c.Type != constraint.PtPtDistance || c.ValA != 3.0 {
		tst.Fatalf("constraint did not round-trip: %+v", c)
	}

	line := got.Entities.Items()[2]
	if line.Kind != entity.LineSegment || line.NumPoint != 2 {
		tst.Fatalf("line entity did not round-trip: %+v", line)
	}
	if line.Point[0] == 0 || line.Point[1] == 0 {
		tst.Fatalf("line endpoints did not round-trip: %+v", line.Point)
	}
}

func TestReadCollectsWarningForUnrecognizedLine(tst *testing.T) {
	chk.PrintTitle("Read keeps going past an unrecognized line, per §6.2")

	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteString("ThisLineMakesNoSense\n")
	buf.WriteString("Param.h=00000001\n")
	buf.WriteString("Param.val=1.5\n")
	buf.WriteString("AddParam\n")

	s, warnings, err := Read(&buf)
	if err != nil {
		tst.Fatalf("Read: %v", err)
	}
	if len(warnings) != 1 {
		tst.Fatalf("warnings = %d, want 1: %v", len(warnings), warnings)
	}
	if s.Params.Len() != 1 {
		tst.Fatalf("params = %d, want 1 (load should continue past the bad line)", s.Params.Len())
	}
	if s.Params.Items()[0].Handle() != handle.Param(1) {
		tst.Fatalf("param handle = %v, want 1", s.Params.Items()[0].Handle())
	}
}
