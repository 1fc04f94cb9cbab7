// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/entity"
)

func TestGenerateLine3DProducesTwoPointsAndALine(tst *testing.T) {
	chk.PrintTitle("Request{Kind: Line3D}.Generate populates two points and a line segment")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	r := &Request{Kind: Line3D, Group: 1, Workplane: entity.FreeIn3D}

	handles := r.Generate(ents, pt, InitialGeometry{Points: [4][3]float64{{0, 0, 0}, {1, 1, 1}}})
	if len(handles) != 3 {
		tst.Fatalf("expected 3 generated entities (2 points + 1 line), got %d", len(handles))
	}
	if len(r.Generated) != 3 {
		tst.Fatalf("Generate must record its output on r.Generated")
	}

	line, ok := ents.FindByHandle(handles[2])
	if !ok || line.Kind != entity.LineSegment {
		tst.Fatalf("third generated handle should be the line segment, got kind %v", line.Kind)
	}
}

func TestGenerateCircleWiresRadiusAndNormal(tst *testing.T) {
	chk.PrintTitle("Request{Kind: Circle}.Generate wires a center, normal, and radius")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	r := &Request{Kind: Circle, Group: 1, Workplane: entity.FreeIn3D}

	handles := r.Generate(ents, pt, InitialGeometry{Value: 2.5})
	if len(handles) != 4 {
		tst.Fatalf("expected 4 generated entities, got %d", len(handles))
	}
	circle, _ := ents.FindByHandle(handles[3])
	if circle.Kind != entity.Circle {
		tst.Fatalf("fourth handle should be the circle, got kind %v", circle.Kind)
	}
	radius, _ := ents.FindByHandle(circle.DistanceEnt)
	if radius.ActDistance != 2.5 {
		tst.Fatalf("radius ActDistance = %v, want 2.5", radius.ActDistance)
	}
}

func TestGenerateCubicPeriodicMarksClosedKind(tst *testing.T) {
	chk.PrintTitle("Request{Kind: CubicPeriodic}.Generate tags its entity as CubicPeriodic")

	ents := entity.NewTable()
	pt := entity.NewParamTable()
	r := &Request{Kind: CubicPeriodic, Group: 1, Workplane: entity.FreeIn3D}

	handles := r.Generate(ents, pt, InitialGeometry{})
	cubic, _ := ents.FindByHandle(handles[len(handles)-1])
	if cubic.Kind != entity.CubicPeriodic {
		tst.Fatalf("generated cubic kind = %v, want CubicPeriodic", cubic.Kind)
	}
}
