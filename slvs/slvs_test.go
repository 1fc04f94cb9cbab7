// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slvs

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestDistanceConstraintDragsPointToTargetLength(tst *testing.T) {
	chk.PrintTitle("slvs.System solves a distance constraint on a free line")

	s := NewSystem()
	s.SetActiveGroup(1)

	wp := s.Add2DBase()
	a := s.AddPoint2D(wp, 0, 0)
	b := s.AddPoint2D(wp, 1, 0) // wrong length; solver should correct it
	line := s.AddLine2D(wp, a, b)
	s.Horizontal(wp, line)
	s.Distance(wp, a, b, 5.0)

	result, _, badCount := s.SolveSketch(1)
	if result != Okay {
		tst.Fatalf("result = %v, want Okay", result)
	}
	if badCount != 0 {
		tst.Fatalf("badCount = %d, want 0", badCount)
	}

	aEnt := s.Ents.MustFindByHandle(a)
	bEnt := s.Ents.MustFindByHandle(b)
	dx := bEnt.ActPoint[0] - aEnt.ActPoint[0]
	dy := bEnt.ActPoint[1] - aEnt.ActPoint[1]
	dz := bEnt.ActPoint[2] - aEnt.ActPoint[2]
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if math.Abs(length-5.0) > 1e-6 {
		tst.Fatalf("solved length = %v, want 5.0", length)
	}
}

func TestMidpointPinsAuxiliaryParamKnown(tst *testing.T) {
	chk.PrintTitle("Midpoint allocates its PtOnLine aux param already Known")

	s := NewSystem()
	s.SetActiveGroup(1)

	wp := s.Add2DBase()
	a := s.AddPoint2D(wp, 0, 0)
	b := s.AddPoint2D(wp, 10, 0)
	line := s.AddLine2D(wp, a, b)
	mid := s.AddPoint2D(wp, 1, 1) // deliberately off the midpoint
	s.Midpoint(wp, mid, line)

	result, _, _ := s.SolveSketch(1)
	if result != Okay {
		tst.Fatalf("result = %v, want Okay", result)
	}

	aEnt := s.Ents.MustFindByHandle(a)
	bEnt := s.Ents.MustFindByHandle(b)
	midEnt := s.Ents.MustFindByHandle(mid)
	wantX := (aEnt.ActPoint[0] + bEnt.ActPoint[0]) / 2
	if math.Abs(midEnt.ActPoint[0]-wantX) > 1e-6 {
		tst.Fatalf("midpoint X = %v, want %v", midEnt.ActPoint[0], wantX)
	}
}

func TestMustBePointPanicsOnWrongKind(tst *testing.T) {
	chk.PrintTitle("AddLine2D panics when an argument is not a point")

	defer func() {
		if recover() == nil {
			tst.Fatalf("expected a panic for a non-point argument")
		}
	}()

	s := NewSystem()
	s.SetActiveGroup(1)
	wp := s.Add2DBase()
	a := s.AddPoint2D(wp, 0, 0)
	s.AddLine2D(wp, a, wp) // wp is a workplane, not a point
}
