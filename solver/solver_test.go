// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
)

func dist(ents *entity.Table, a, b handle.Entity) float64 {
	pa := ents.MustFindByHandle(a).ActPoint
	pb := ents.MustFindByHandle(b).ActPoint
	dx, dy, dz := pa[0]-pb[0], pa[1]-pb[1], pa[2]-pb[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestSolveDrivesPtPtDistanceToTarget(tst *testing.T) {
	chk.PrintTitle("Solve converges a PT_PT_DISTANCE constraint to its target length")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	a := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0))
	b := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 10, 0, 0))

	cons := constraint.NewTable()
	cons.Add(&constraint.Constraint{Type: constraint.PtPtDistance, Group: 1, Workplane: entity.FreeIn3D, PtA: a, PtB: b, ValA: 3})

	report := Solve(1, ents, pt, cons, NewTuning())
	if report.Result != Okay {
		tst.Fatalf("Solve result = %v, want Okay", report.Result)
	}
	if got := dist(ents, a, b); math.Abs(got-3) > 1e-6 {
		tst.Fatalf("solved distance = %v, want 3", got)
	}
}

func TestSolveUnconstrainedPointIsOkay(tst *testing.T) {
	chk.PrintTitle("Solve reports Okay for a group with no equations")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	// One point free in 3D with no constraints at all contributes no
	// equations, so no param becomes an unknown; Solve should report Okay
	// (nothing to solve).
	ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0))
	cons := constraint.NewTable()

	report := Solve(1, ents, pt, cons, NewTuning())
	if report.Result != Okay {
		tst.Fatalf("an unconstrained point should solve as Okay (0 equations), got %v", report.Result)
	}
}

func TestSolveDetectsRedundantConstraint(tst *testing.T) {
	chk.PrintTitle("Solve reports REDUNDANT_OKAY when a constraint duplicates another")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	a := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 0, 0, 0))
	b := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 4, 0, 0))

	cons := constraint.NewTable()
	c1 := &constraint.Constraint{Type: constraint.PtPtDistance, Group: 1, Workplane: entity.FreeIn3D, PtA: a, PtB: b, ValA: 5}
	c2 := &constraint.Constraint{Type: constraint.PtPtDistance, Group: 1, Workplane: entity.FreeIn3D, PtA: a, PtB: b, ValA: 5}
	cons.Add(c1)
	cons.Add(c2)

	report := Solve(1, ents, pt, cons, NewTuning())
	if report.Result != RedundantOkay {
		tst.Fatalf("duplicated PT_PT_DISTANCE should solve as RedundantOkay, got %v (%d iterations)", report.Result, report.Iterations)
	}
	if len(report.Bad) == 0 {
		tst.Fatalf("RedundantOkay should name at least one contributing constraint")
	}
}

func TestSolveSubstitutesCoincidentParams(tst *testing.T) {
	chk.PrintTitle("substitute unifies a trivial ParamA-ParamB equality before Newton runs")

	ents := entity.NewTable()
	pt := entity.NewParamTable()

	// A FREE_IN_3D POINTS_COINCIDENT diff is three bare
	// ParamA - ParamB components (no workplane basis multiplication in the
	// way), so this is the shape substitute's AsParamEquality detects.
	a := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 1, 1, 1))
	b := ents.Add(entity.NewPointIn3D(1, entity.FreeIn3D, pt, 9, 9, 9))

	cons := constraint.NewTable()
	cons.Add(&constraint.Constraint{Type: constraint.PointsCoincident, Group: 1, Workplane: entity.FreeIn3D, PtA: a, PtB: b})

	report := Solve(1, ents, pt, cons, NewTuning())
	if report.Result != Okay {
		tst.Fatalf("Solve result = %v, want Okay", report.Result)
	}
	if report.Iterations != 0 {
		tst.Fatalf("a purely-substituted system should need 0 Newton iterations, got %d", report.Iterations)
	}
	ax := pt.MustFindByHandle(ents.MustFindByHandle(a).ParamH[0]).Value()
	bx := pt.MustFindByHandle(ents.MustFindByHandle(b).ParamH[0]).Value()
	if math.Abs(ax-bx) > 1e-9 {
		tst.Fatalf("coincident points' x coordinates = %v, %v, want equal", ax, bx)
	}
}
