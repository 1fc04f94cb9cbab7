// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

func TestCubeMinusCubeIsWatertightWithExpectedVolume(tst *testing.T) {
	chk.PrintTitle("unit cube minus an overlapping cube yields a watertight 0.875-volume mesh")

	a := Cube(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := Cube(shell.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, shell.Vec3{X: 1.5, Y: 1.5, Z: 1.5})

	res := CombineMeshes(a, b, OpDifference)
	if !res.Mesh.IsWatertight(1e-9) {
		tst.Fatalf("difference mesh is not watertight")
	}
	if got := res.Mesh.Volume(); math.Abs(got-0.875) > 1e-6 {
		tst.Fatalf("volume = %v, want 0.875", got)
	}
}

func TestUnionOfDisjointCubesAddsVolumes(tst *testing.T) {
	chk.PrintTitle("union of two disjoint cubes sums their volumes")

	a := Cube(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := Cube(shell.Vec3{X: 10, Y: 10, Z: 10}, shell.Vec3{X: 11, Y: 11, Z: 11})

	res := CombineMeshes(a, b, OpUnion)
	if got := res.Mesh.Volume(); math.Abs(got-2) > 1e-6 {
		tst.Fatalf("volume = %v, want 2", got)
	}
}

func TestIntersectionOfOverlappingCubes(tst *testing.T) {
	chk.PrintTitle("intersection of two overlapping unit cubes yields the shared 0.125 volume")

	a := Cube(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := Cube(shell.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, shell.Vec3{X: 1.5, Y: 1.5, Z: 1.5})

	res := CombineMeshes(a, b, OpIntersection)
	if got := res.Mesh.Volume(); math.Abs(got-0.125) > 1e-6 {
		tst.Fatalf("volume = %v, want 0.125", got)
	}
}

func TestAssembleConcatenatesWithoutClassification(tst *testing.T) {
	chk.PrintTitle("assemble concatenates both meshes' triangles untouched")

	a := Cube(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	b := Cube(shell.Vec3{X: 5, Y: 5, Z: 5}, shell.Vec3{X: 6, Y: 6, Z: 6})

	res := CombineMeshes(a, b, OpAssemble)
	if len(res.Mesh.Tris) != len(a.Tris)+len(b.Tris) {
		tst.Fatalf("assembled triangle count = %d, want %d", len(res.Mesh.Tris), len(a.Tris)+len(b.Tris))
	}
}

func TestRayCastInsideClassifiesCubeInterior(tst *testing.T) {
	chk.PrintTitle("RayCastInside agrees with the obvious answer for a unit cube")

	cube := Cube(shell.Vec3{}, shell.Vec3{X: 1, Y: 1, Z: 1})
	if !RayCastInside(cube.Tris, shell.Vec3{X: 0.5, Y: 0.5, Z: 0.5}) {
		tst.Fatalf("center of the cube should classify as inside")
	}
	if RayCastInside(cube.Tris, shell.Vec3{X: 5, Y: 5, Z: 5}) {
		tst.Fatalf("a point far outside the cube should classify as outside")
	}
}
