// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polyline

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

func sq(x, y, z float64) shell.Vec3 { return shell.Vec3{X: x, Y: y, Z: z} }

func TestAssembleClosesSquareLoop(tst *testing.T) {
	chk.PrintTitle("Assemble walks four edges of a planar square into one closed loop")

	p0, p1, p2, p3 := sq(0, 0, 0), sq(1, 0, 0), sq(1, 1, 0), sq(0, 1, 0)
	edges := []Edge{{p0, p1}, {p1, p2}, {p2, p3}, {p3, p0}}

	a := Assemble(edges, 1e-9)
	if a.Status != Good {
		tst.Fatalf("status = %v, want Good", a.Status)
	}
	if len(a.Loops) != 1 {
		tst.Fatalf("loops = %d, want 1", len(a.Loops))
	}
	if len(a.Loops[0]) != 4 {
		tst.Fatalf("loop vertices = %d, want 4", len(a.Loops[0]))
	}
}

func TestAssembleDetectsOpenChain(tst *testing.T) {
	chk.PrintTitle("Assemble reports NotClosed for a chain missing its closing edge")

	p0, p1, p2 := sq(0, 0, 0), sq(1, 0, 0), sq(1, 1, 0)
	edges := []Edge{{p0, p1}, {p1, p2}}

	a := Assemble(edges, 1e-9)
	if a.Status != NotClosed {
		tst.Fatalf("status = %v, want NotClosed", a.Status)
	}
}

func TestAssembleDetectsZeroLengthEdge(tst *testing.T) {
	chk.PrintTitle("Assemble rejects a degenerate zero-length edge up front")

	p0 := sq(0, 0, 0)
	edges := []Edge{{p0, p0}}

	a := Assemble(edges, 1e-9)
	if a.Status != ZeroLenEdge {
		tst.Fatalf("status = %v, want ZeroLenEdge", a.Status)
	}
}

func TestAssembleDetectsNonCoplanarLoop(tst *testing.T) {
	chk.PrintTitle("Assemble rejects a closed loop whose vertices leave the fitted plane")

	p0, p1, p2, p3 := sq(0, 0, 0), sq(1, 0, 0), sq(1, 1, 1), sq(0, 1, 0)
	edges := []Edge{{p0, p1}, {p1, p2}, {p2, p3}, {p3, p0}}

	a := Assemble(edges, 1e-9)
	if a.Status != NotCoplanar {
		tst.Fatalf("status = %v, want NotCoplanar", a.Status)
	}
}

func TestAssembleEmptyIsGood(tst *testing.T) {
	chk.PrintTitle("Assemble treats an empty edge set as vacuously Good")

	a := Assemble(nil, 1e-9)
	if a.Status != Good {
		tst.Fatalf("status = %v, want Good", a.Status)
	}
	if len(a.Loops) != 0 {
		tst.Fatalf("loops = %d, want 0", len(a.Loops))
	}
}
