// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/polyline"
	"github.com/solvespace/solvespace-sub002/solver"
)

// unitSquareSketch builds a closed unit-square loop of four points and four
// line segments, all owned by src, and returns the entity table holding it.
func unitSquareSketch(src handle.Group) (*entity.Table, *entity.ParamTable) {
	ents := entity.NewTable()
	pt := entity.NewParamTable()

	p0 := entity.NewPointIn3D(src, entity.FreeIn3D, pt, 0, 0, 0)
	p1 := entity.NewPointIn3D(src, entity.FreeIn3D, pt, 1, 0, 0)
	p2 := entity.NewPointIn3D(src, entity.FreeIn3D, pt, 1, 1, 0)
	p3 := entity.NewPointIn3D(src, entity.FreeIn3D, pt, 0, 1, 0)
	ents.Add(p0)
	ents.Add(p1)
	ents.Add(p2)
	ents.Add(p3)

	ents.Add(entity.NewLineSegment(src, entity.FreeIn3D, p0.H, p1.H))
	ents.Add(entity.NewLineSegment(src, entity.FreeIn3D, p1.H, p2.H))
	ents.Add(entity.NewLineSegment(src, entity.FreeIn3D, p2.H, p3.H))
	ents.Add(entity.NewLineSegment(src, entity.FreeIn3D, p3.H, p0.H))

	return ents, pt
}

func TestRegenerateExtrudeUnitSquareYieldsUnitCubeVolume(tst *testing.T) {
	chk.PrintTitle("extruding a unit-square sketch by (0,0,1) yields a unit-volume watertight mesh")

	srcH := handle.Group(1)
	ents, pt := unitSquareSketch(srcH)
	cons := constraint.NewTable()

	g := NewGroup(Extrude)
	g.H = handle.Group(2)
	g.Source = srcH
	g.Param[0], g.Param[1], g.Param[2] = 0, 0, 1

	Regenerate(g, nil, ents, pt, cons, solver.NewTuning())

	if g.PolylineStatus != polyline.Good {
		tst.Fatalf("PolylineStatus = %v, want Good", g.PolylineStatus)
	}
	if !g.ThisMesh.IsWatertight(1e-9) {
		tst.Fatalf("extrude mesh is not watertight")
	}
	if got := g.ThisMesh.Volume(); math.Abs(got-1) > 1e-6 {
		tst.Fatalf("volume = %v, want 1", got)
	}
}

func TestRegenerateTranslateStepAndRepeatCopiesDisjointSquares(tst *testing.T) {
	chk.PrintTitle("translate step-and-repeat with 3 copies triangulates 3 disjoint unit squares")

	srcH := handle.Group(1)
	ents, pt := unitSquareSketch(srcH)
	cons := constraint.NewTable()

	g := NewGroup(Translate)
	g.H = handle.Group(2)
	g.Source = srcH
	g.Copies = 3
	g.Param[0], g.Param[1], g.Param[2] = 2, 0, 0

	Regenerate(g, nil, ents, pt, cons, solver.NewTuning())

	wantTris := 3 * 2 // two fan triangles per square (4 verts -> 2 tris) x 3 copies
	if len(g.ThisMesh.Tris) != wantTris {
		tst.Fatalf("triangle count = %d, want %d", len(g.ThisMesh.Tris), wantTris)
	}
}

func TestRegenerateRunningMeshCombinesAcrossGroups(tst *testing.T) {
	chk.PrintTitle("a second union group's running mesh includes the first group's volume")

	src1 := handle.Group(1)
	ents, pt := unitSquareSketch(src1)
	cons := constraint.NewTable()

	g1 := NewGroup(Extrude)
	g1.H = handle.Group(2)
	g1.Source = src1
	g1.Param[2] = 1
	Regenerate(g1, nil, ents, pt, cons, solver.NewTuning())

	src2 := handle.Group(3)
	p0 := entity.NewPointIn3D(src2, entity.FreeIn3D, pt, 5, 5, 0)
	p1 := entity.NewPointIn3D(src2, entity.FreeIn3D, pt, 6, 5, 0)
	p2 := entity.NewPointIn3D(src2, entity.FreeIn3D, pt, 6, 6, 0)
	p3 := entity.NewPointIn3D(src2, entity.FreeIn3D, pt, 5, 6, 0)
	ents.Add(p0)
	ents.Add(p1)
	ents.Add(p2)
	ents.Add(p3)
	ents.Add(entity.NewLineSegment(src2, entity.FreeIn3D, p0.H, p1.H))
	ents.Add(entity.NewLineSegment(src2, entity.FreeIn3D, p1.H, p2.H))
	ents.Add(entity.NewLineSegment(src2, entity.FreeIn3D, p2.H, p3.H))
	ents.Add(entity.NewLineSegment(src2, entity.FreeIn3D, p3.H, p0.H))

	g2 := NewGroup(Extrude)
	g2.H = handle.Group(4)
	g2.Source = src2
	g2.Param[2] = 1
	g2.Op = BooleanUnion
	Regenerate(g2, g1, ents, pt, cons, solver.NewTuning())

	if got := g2.RunningMesh.Volume(); math.Abs(got-2) > 1e-6 {
		tst.Fatalf("running volume = %v, want 2 (two disjoint unit cubes)", got)
	}
}
