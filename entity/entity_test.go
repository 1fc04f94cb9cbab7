// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

func newFreeWorkplane(ents *Table, pt *ParamTable) *Entity {
	origin := NewPointIn3D(1, FreeIn3D, pt, 0, 0, 0)
	ents.Add(origin)
	normal := NewNormalIn3D(1, FreeIn3D, pt, 1, 0, 0, 0)
	ents.Add(normal)
	wp := NewWorkplane(1, origin.H, normal.H)
	ents.Add(wp)
	return wp
}

func TestPointIn2DResolvesThroughWorkplane(tst *testing.T) {
	chk.PrintTitle("PointIn2D resolves its (u,v) through its owning workplane's basis")

	ents := NewTable()
	pt := NewParamTable()
	wp := newFreeWorkplane(ents, pt)

	p := NewPointIn2D(1, wp.H, pt, 3, 4)
	ents.Add(p)

	x, y, z := p.PointGetExprs(ents, pt).Eval(pt)
	// the default workplane is the identity quaternion: u=X, v=Y, n=Z, so a
	// point at (u,v)=(3,4) in-plane must land at (3,4,0) in 3D.
	if math.Abs(x-3) > 1e-9 || math.Abs(y-4) > 1e-9 || math.Abs(z) > 1e-9 {
		tst.Fatalf("PointGetExprs = (%v, %v, %v), want (3, 4, 0)", x, y, z)
	}
}

func TestNormalUnitQuaternionEquation(tst *testing.T) {
	chk.PrintTitle("a free normal contributes the unit-quaternion constraint")

	ents := NewTable()
	pt := NewParamTable()
	n := NewNormalIn3D(1, FreeIn3D, pt, 1, 0, 0, 0)
	ents.Add(n)

	eqs := n.Equations(ents, pt)
	if len(eqs) != 1 {
		tst.Fatalf("expected exactly one equation, got %d", len(eqs))
	}
	if v := eqs[0].Eval(pt); math.Abs(v) > 1e-9 {
		tst.Fatalf("unit quaternion (1,0,0,0) should satisfy its own constraint, residual = %v", v)
	}

	pt.MustFindByHandle(n.ParamH[1]).SetValue(1) // break unit-ness
	if v := eqs[0].Eval(pt); math.Abs(v) < 1e-6 {
		tst.Fatalf("non-unit quaternion should violate the constraint, residual = %v", v)
	}
}

func TestLineSegmentGeneratesLineBezier(tst *testing.T) {
	chk.PrintTitle("LineSegment.GenerateBezierCurves realizes its two endpoints as one degree-1 SBezier")

	ents := NewTable()
	pt := NewParamTable()
	a := NewPointIn3D(1, FreeIn3D, pt, 0, 0, 0)
	ents.Add(a)
	b := NewPointIn3D(1, FreeIn3D, pt, 1, 2, 3)
	ents.Add(b)
	ents.RefreshActiveCache(pt)

	line := NewLineSegment(1, FreeIn3D, a.H, b.H)
	ents.Add(line)

	curves := line.GenerateBezierCurves(ents)
	if len(curves) != 1 || curves[0].Deg != 1 {
		tst.Fatalf("expected one degree-1 bezier, got %+v", curves)
	}
	if curves[0].Start() != (shell.Vec3{0, 0, 0}) || curves[0].Finish() != (shell.Vec3{1, 2, 3}) {
		tst.Fatalf("line endpoints = %v..%v, want (0,0,0)..(1,2,3)", curves[0].Start(), curves[0].Finish())
	}
}

func TestCircleGeneratesFourQuarterArcsWithCosPiOver4Weight(tst *testing.T) {
	chk.PrintTitle("Circle.GenerateBezierCurves produces four 90-degree arcs, weight cos(pi/4)")

	ents := NewTable()
	pt := NewParamTable()
	center := NewPointIn3D(1, FreeIn3D, pt, 0, 0, 0)
	ents.Add(center)
	normal := NewNormalIn3D(1, FreeIn3D, pt, 1, 0, 0, 0)
	ents.Add(normal)
	radius := NewDistance(1, FreeIn3D, pt, 1)
	ents.Add(radius)
	ents.RefreshActiveCache(pt)

	circle := NewCircle(1, FreeIn3D, center.H, normal.H, radius.H)
	ents.Add(circle)

	arcs := circle.GenerateBezierCurves(ents)
	if len(arcs) != 4 {
		tst.Fatalf("expected 4 arcs, got %d", len(arcs))
	}
	wantW := math.Cos(math.Pi / 4)
	for i, a := range arcs {
		if a.Deg != 2 {
			tst.Fatalf("arc %d degree = %d, want 2", i, a.Deg)
		}
		if math.Abs(a.Weight[1]-wantW) > 1e-9 {
			tst.Fatalf("arc %d middle weight = %v, want %v", i, a.Weight[1], wantW)
		}
	}
	// consecutive arcs must share endpoints, forming a closed loop.
	for i := 0; i < 4; i++ {
		next := arcs[(i+1)%4]
		if arcs[i].Finish().Sub(next.Start()).Len() > 1e-9 {
			tst.Fatalf("arc %d finish %v does not meet arc %d start %v", i, arcs[i].Finish(), (i+1)%4, next.Start())
		}
	}
}

func TestArcOfCircleEquidistantEquation(tst *testing.T) {
	chk.PrintTitle("ArcOfCircle enforces that start and end are equidistant from its center")

	ents := NewTable()
	pt := NewParamTable()
	center := NewPointIn3D(1, FreeIn3D, pt, 0, 0, 0)
	ents.Add(center)
	normal := NewNormalIn3D(1, FreeIn3D, pt, 1, 0, 0, 0)
	ents.Add(normal)
	start := NewPointIn3D(1, FreeIn3D, pt, 1, 0, 0)
	ents.Add(start)
	end := NewPointIn3D(1, FreeIn3D, pt, 0, 1, 0)
	ents.Add(end)

	arc := NewArcOfCircle(1, FreeIn3D, center.H, normal.H, start.H, end.H)
	ents.Add(arc)

	eqs := arc.Equations(ents, pt)
	if len(eqs) != 1 {
		tst.Fatalf("expected one equidistance equation, got %d", len(eqs))
	}
	if v := eqs[0].Eval(pt); math.Abs(v) > 1e-9 {
		tst.Fatalf("equidistant start/end should satisfy the equation, residual = %v", v)
	}

	pt.MustFindByHandle(end.ParamH[1]).SetValue(2)
	if v := eqs[0].Eval(pt); math.Abs(v) < 1e-6 {
		tst.Fatalf("moving end off the circle should violate the equation, residual = %v", v)
	}
}

func TestRefreshActiveCachePropagatesDerivedPoint(tst *testing.T) {
	chk.PrintTitle("RefreshActiveCache recomputes a derived point's numeric cache from its source")

	ents := NewTable()
	pt := NewParamTable()
	src := NewPointIn3D(1, FreeIn3D, pt, 1, 2, 3)
	ents.Add(src)

	copyE := newBase(PointNCopy, 1, FreeIn3D)
	copyE.NumPoint = 1
	copyE.Point[0] = src.H
	ents.Add(copyE)

	ents.RefreshActiveCache(pt)
	if copyE.ActPoint != [3]float64{1, 2, 3} {
		tst.Fatalf("copy ActPoint = %v, want (1,2,3)", copyE.ActPoint)
	}

	pt.MustFindByHandle(src.ParamH[0]).SetValue(9)
	ents.RefreshActiveCache(pt)
	if copyE.ActPoint[0] != 9 {
		tst.Fatalf("copy ActPoint did not follow source update, got %v", copyE.ActPoint)
	}
}
