// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shellbool

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/meshbsp"
	"github.com/solvespace/solvespace-sub002/shell"
)

func cubeShell(lo, hi shell.Vec3) *shell.SShell {
	return meshbsp.BuildShell(meshbsp.Cube(lo, hi).Tris)
}

func shellVolume(sh *shell.SShell) float64 {
	m := meshbsp.NewTMesh()
	m.Tris = meshbsp.ToTriangles(sh)
	return m.Volume()
}

func TestCombineUnionOfDisjointCubesSumsVolumes(tst *testing.T) {
	chk.PrintTitle("shell union of two disjoint unit cubes sums their volumes")

	a := cubeShell(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := cubeShell(shell.Vec3{X: 10, Y: 10, Z: 10}, shell.Vec3{X: 11, Y: 11, Z: 11})

	out, ok := Combine(a, b, Union)
	if !ok {
		tst.Fatalf("Combine returned ok=false")
	}
	if out.BooleanFailed {
		tst.Fatalf("BooleanFailed on two disjoint cubes")
	}
	if got := shellVolume(out); math.Abs(got-2) > 1e-6 {
		tst.Fatalf("volume = %v, want 2", got)
	}
}

func TestCombineDifferenceOfOverlappingCubesMatchesMeshResult(tst *testing.T) {
	chk.PrintTitle("shell difference of two overlapping unit cubes matches the triangle-soup volume")

	a := cubeShell(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := cubeShell(shell.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, shell.Vec3{X: 1.5, Y: 1.5, Z: 1.5})

	out, ok := Combine(a, b, Difference)
	if !ok {
		tst.Fatalf("Combine returned ok=false")
	}
	if got := shellVolume(out); math.Abs(got-0.875) > 1e-6 {
		tst.Fatalf("volume = %v, want 0.875", got)
	}
}

func TestIntersectShellsFindsCoplanarFace(tst *testing.T) {
	chk.PrintTitle("two cubes sharing a face produce at least one exact intersection curve")

	a := cubeShell(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := cubeShell(shell.Vec3{X: 1, Y: 0, Z: 0}, shell.Vec3{X: 2, Y: 1, Z: 1})

	curves := intersectShells(a, b)
	if len(curves) == 0 {
		tst.Fatalf("expected at least one intersection curve between face-adjacent cubes")
	}
	for _, c := range curves {
		if !c.exact {
			tst.Fatalf("triangle/triangle intersection should report exact=true")
		}
	}
}

func TestCombineAssembleConcatenatesSurfaces(tst *testing.T) {
	chk.PrintTitle("shell assemble keeps every surface from both shells")

	a := cubeShell(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := cubeShell(shell.Vec3{X: 5, Y: 5, Z: 5}, shell.Vec3{X: 6, Y: 6, Z: 6})

	out, ok := Combine(a, b, Assemble)
	if !ok {
		tst.Fatalf("Combine returned ok=false")
	}
	if out.Surfaces.Len() != a.Surfaces.Len()+b.Surfaces.Len() {
		tst.Fatalf("surface count = %d, want %d", out.Surfaces.Len(), a.Surfaces.Len()+b.Surfaces.Len())
	}
}

func TestCombineNilShellIsNotOk(tst *testing.T) {
	chk.PrintTitle("Combine reports ok=false rather than panicking on a nil shell")

	a := cubeShell(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	if _, ok := Combine(nil, a, Union); ok {
		tst.Fatalf("expected ok=false for a nil shell")
	}
}
