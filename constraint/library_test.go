// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
)

func newFreeWorkplane(ents *entity.Table, pt *entity.ParamTable) handle.Entity {
	origin := entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0)
	originH := ents.Add(origin)
	normal := entity.NewNormalIn3D(1, entity.FreeIn3D, pt, 1, 0, 0, 0)
	normalH := ents.Add(normal)
	wp := entity.NewWorkplane(1, originH, normalH)
	return ents.Add(wp)
}

func TestPointsCoincidentInWorkplane(tst *testing.T) {
	chk.PrintTitle("POINTS_COINCIDENT reduces to zero in-plane components at coincidence")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	wp := newFreeWorkplane(ents, pt)

	a := ents.Add(entity.NewPointIn2D(1, wp, pt, 1, 2))
	b := ents.Add(entity.NewPointIn2D(1, wp, pt, 1, 2))
	c := &Constraint{Type: PointsCoincident, Group: 1, Workplane: wp, PtA: a, PtB: b}

	eqs := c.Equations(ents, pt)
	if len(eqs) != 2 {
		tst.Fatalf("expected 2 in-plane equations, got %d", len(eqs))
	}
	for i, eq := range eqs {
		if v := eq.Eval(pt); math.Abs(v) > 1e-9 {
			tst.Fatalf("equation %d residual = %v, want 0 for coincident points", i, v)
		}
	}

	pt.MustFindByHandle(ents.MustFindByHandle(b).ParamH[0]).SetValue(5)
	if v := eqs[0].Eval(pt); math.Abs(v) < 1e-6 {
		tst.Fatalf("moving b should break coincidence, residual = %v", v)
	}
}

func TestPtPtDistanceSatisfiedAndViolated(tst *testing.T) {
	chk.PrintTitle("PT_PT_DISTANCE checks |A-B|^2 - valA^2")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	a := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0))
	b := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 3, 4, 0))
	c := &Constraint{Type: PtPtDistance, Group: 1, Workplane: entity.FreeIn3D, PtA: a, PtB: b, ValA: 5}

	eqs := c.Equations(ents, pt)
	if len(eqs) != 1 {
		tst.Fatalf("expected 1 equation, got %d", len(eqs))
	}
	if v := eqs[0].Eval(pt); math.Abs(v) > 1e-9 {
		tst.Fatalf("distance 5 should satisfy valA=5, residual = %v", v)
	}

	c.ValA = 10
	eqs = c.Equations(ents, pt)
	if v := eqs[0].Eval(pt); math.Abs(v) < 1e-6 {
		tst.Fatalf("distance 5 should violate valA=10, residual = %v", v)
	}
}

func TestReferenceConstraintContributesNoEquations(tst *testing.T) {
	chk.PrintTitle("a Reference constraint never contributes equations")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	a := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0))
	b := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 1, 1, 1))
	c := &Constraint{Type: PtPtDistance, Reference: true, PtA: a, PtB: b, ValA: 999}

	if eqs := c.Equations(ents, pt); eqs != nil {
		tst.Fatalf("reference constraint returned %d equations, want none", len(eqs))
	}
}

func TestPerpendicularAndParallel(tst *testing.T) {
	chk.PrintTitle("PERPENDICULAR and PARALLEL drive the expected cross/dot products to zero")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	wp := newFreeWorkplane(ents, pt)

	a0 := ents.Add(entity.NewPointIn2D(1, wp, pt, 0, 0))
	a1 := ents.Add(entity.NewPointIn2D(1, wp, pt, 1, 0))
	lineA := ents.Add(entity.NewLineSegment(1, wp, a0, a1))

	b0 := ents.Add(entity.NewPointIn2D(1, wp, pt, 0, 0))
	b1 := ents.Add(entity.NewPointIn2D(1, wp, pt, 0, 1))
	lineB := ents.Add(entity.NewLineSegment(1, wp, b0, b1))

	perp := &Constraint{Type: Perpendicular, Workplane: wp, EntityA: lineA, EntityB: lineB}
	eqs := perp.Equations(ents, pt)
	if v := eqs[0].Eval(pt); math.Abs(v) > 1e-9 {
		tst.Fatalf("perpendicular lines should satisfy dot==0, residual = %v", v)
	}

	par := &Constraint{Type: Parallel, Workplane: wp, EntityA: lineA, EntityB: lineB}
	eqs = par.Equations(ents, pt)
	if v := eqs[0].Eval(pt); math.Abs(v) < 1e-6 {
		tst.Fatalf("perpendicular lines should violate Parallel's equation, residual = %v", v)
	}
}

func TestDiameterOnCircle(tst *testing.T) {
	chk.PrintTitle("DIAMETER checks 2r - valA against a circle's radius entity")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	center := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0))
	normal := ents.Add(entity.NewNormalIn3D(1, entity.FreeIn3D, pt, 1, 0, 0, 0))
	radius := ents.Add(entity.NewDistance(1, entity.FreeIn3D, pt, 3))
	circle := ents.Add(entity.NewCircle(1, entity.FreeIn3D, center, normal, radius))

	c := &Constraint{Type: Diameter, EntityA: circle, ValA: 6}
	eqs := c.Equations(ents, pt)
	if v := eqs[0].Eval(pt); math.Abs(v) > 1e-9 {
		tst.Fatalf("radius 3 / diameter 6 should satisfy DIAMETER, residual = %v", v)
	}
}

func TestPtOnLineLazilyAllocatesParam(tst *testing.T) {
	chk.PrintTitle("PT_ON_LINE lazily allocates its t param and reuses it across calls")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	wp := newFreeWorkplane(ents, pt)

	a := ents.Add(entity.NewPointIn2D(1, wp, pt, 0, 0))
	b := ents.Add(entity.NewPointIn2D(1, wp, pt, 2, 0))
	line := ents.Add(entity.NewLineSegment(1, wp, a, b))
	p := ents.Add(entity.NewPointIn2D(1, wp, pt, 1, 0))

	c := &Constraint{Type: PtOnLine, Workplane: wp, EntityA: line, PtA: p}
	if c.ValP != 0 {
		tst.Fatalf("ValP should start unallocated")
	}
	eqs := c.Equations(ents, pt)
	if c.ValP == 0 {
		tst.Fatalf("Equations should have lazily allocated ValP")
	}
	for i, eq := range eqs {
		if v := eq.Eval(pt); math.Abs(v) > 1e-9 {
			tst.Fatalf("equation %d residual = %v, want 0 (t=0.5 midpoint found automatically)", i, v)
		}
	}

	first := c.ValP
	c.Equations(ents, pt)
	if c.ValP != first {
		tst.Fatalf("ValP must not be reallocated on subsequent calls")
	}
}
