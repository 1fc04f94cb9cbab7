// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"math"

	"github.com/solvespace/solvespace-sub002/meshbsp"
	"github.com/solvespace/solvespace-sub002/shell"
)

// rotateAboutAxis rotates p by angle radians about the axis through origin
// in direction dir (assumed unit length), via Rodrigues' rotation formula —
// the numeric counterpart of entity.pointNRotAABehavior's symbolic
// quaternion rotation, needed here because thisMesh is built from plain
// triangle-soup numbers rather than solved param expressions.
func rotateAboutAxis(p, origin, dir shell.Vec3, angle float64) shell.Vec3 {
	rel := p.Sub(origin)
	cosT, sinT := math.Cos(angle), math.Sin(angle)
	term1 := rel.Scale(cosT)
	term2 := dir.Cross(rel).Scale(sinT)
	term3 := dir.Scale(dir.Dot(rel) * (1 - cosT))
	return origin.Add(term1).Add(term2).Add(term3)
}

// fanTriangulate builds a triangle fan over a (not necessarily convex, but
// assumed star-shaped from its own centroid) planar loop, used for
// EXTRUDE's caps and REVOLVE's end caps when the swept angle falls short
// of a full turn.
func fanTriangulate(loop []shell.Vec3, flip bool) []meshbsp.Triangle {
	if len(loop) < 3 {
		return nil
	}
	var tris []meshbsp.Triangle
	for i := 1; i < len(loop)-1; i++ {
		t := meshbsp.Triangle{A: loop[0], B: loop[i], C: loop[i+1]}
		if flip {
			t = t.Flip()
		}
		tris = append(tris, t)
	}
	return tris
}

// sideStrip connects two parallel loops of equal vertex count (a "before"
// ring and an "after" ring, however the after ring was produced — a
// translation for EXTRUDE, a rotation for LATHE/REVOLVE/HELIX) with one
// quad, split into two triangles, per edge.
func sideStrip(before, after []shell.Vec3) []meshbsp.Triangle {
	n := len(before)
	var tris []meshbsp.Triangle
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a0, a1 := before[i], before[j]
		b0, b1 := after[i], after[j]
		tris = append(tris,
			meshbsp.Triangle{A: a0, B: a1, C: b1},
			meshbsp.Triangle{A: a0, B: b1, C: b0},
		)
	}
	return tris
}

// translateLoop returns loop translated by offset.
func translateLoop(loop []shell.Vec3, offset shell.Vec3) []shell.Vec3 {
	out := make([]shell.Vec3, len(loop))
	for i, p := range loop {
		out[i] = p.Add(offset)
	}
	return out
}

// rotateLoop returns loop rotated by angle about the axis (origin, dir).
func rotateLoop(loop []shell.Vec3, origin, dir shell.Vec3, angle float64) []shell.Vec3 {
	out := make([]shell.Vec3, len(loop))
	for i, p := range loop {
		out[i] = rotateAboutAxis(p, origin, dir, angle)
	}
	return out
}

// extrudeMesh sweeps loop between its own position and loop translated by
// offset, producing two caps (REMAP_TOP/REMAP_BOTTOM) and one side quad per
// edge (REMAP_LINE_TO_FACE) (§4.6's EXTRUDE bullet).
func extrudeMesh(loop []shell.Vec3, offset shell.Vec3) *meshbsp.TMesh {
	m := meshbsp.NewTMesh()
	top := translateLoop(loop, offset)
	for _, t := range fanTriangulate(loop, true) { // bottom cap faces away from the sweep direction
		m.AddTriangle(t)
	}
	for _, t := range fanTriangulate(top, false) {
		m.AddTriangle(t)
	}
	for _, t := range sideStrip(loop, top) {
		m.AddTriangle(t)
	}
	return m
}

// sweepSteps is the number of angular subdivisions used to approximate a
// revolution as a sequence of flat rings — the same "chord the smooth shape
// at a fixed resolution" tradeoff entity.GenerateEdges makes for higher-
// degree beziers, one level up from a single curve to a whole swept solid.
const sweepSteps = 32

// revolveMesh sweeps loop by totalAngle radians about the axis (origin,
// dir) in sweepSteps rings, closing with end caps only when the sweep
// falls short of a full turn (§4.6's LATHE/REVOLVE bullets: "falls through
// to lathe when the swept angle reaches 2pi").
func revolveMesh(loop []shell.Vec3, origin, dir shell.Vec3, totalAngle float64, axialPitch float64) *meshbsp.TMesh {
	m := meshbsp.NewTMesh()
	full := math.Abs(totalAngle-2*math.Pi) < 1e-9
	steps := sweepSteps
	prev := loop
	for i := 1; i <= steps; i++ {
		angle := totalAngle * float64(i) / float64(steps)
		ring := rotateLoop(loop, origin, dir, angle)
		if axialPitch != 0 {
			axial := dir.Scale(axialPitch * angle / totalAngleOrOne(totalAngle))
			ring = translateLoop(ring, axial)
		}
		for _, t := range sideStrip(prev, ring) {
			m.AddTriangle(t)
		}
		prev = ring
	}
	if !full {
		for _, t := range fanTriangulate(loop, true) {
			m.AddTriangle(t)
		}
		for _, t := range fanTriangulate(prev, false) {
			m.AddTriangle(t)
		}
	}
	return m
}

func totalAngleOrOne(a float64) float64 {
	if a == 0 {
		return 1
	}
	return a
}
