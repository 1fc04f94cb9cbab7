// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshbsp implements the triangle-mesh boolean engine of §4.8: a
// BSP (SBsp3) that partitions a mesh's triangles by plane, with a
// per-coplanar-face 2D BSP (SBsp2) to classify in-plane points, and the
// union/difference/intersection/assemble operations built on top.
package meshbsp

import (
	"math"

	"github.com/solvespace/solvespace-sub002/shell"
)

// Triangle is one face of a TMesh, carrying its originating surface (for
// diagnostics/export) same as SBezier.EntityH does for curves.
type Triangle struct {
	A, B, C shell.Vec3
	FaceEnt uint32
}

// Normal returns the triangle's outward-facing unit normal.
func (t Triangle) Normal() shell.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// Flip reverses a triangle's winding, negating its normal.
func (t Triangle) Flip() Triangle {
	return Triangle{A: t.A, B: t.C, C: t.B, FaceEnt: t.FaceEnt}
}

// Centroid returns the triangle's centroid.
func (t Triangle) Centroid() shell.Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len() / 2
}

// TMesh is an unstructured triangle mesh (§4.8's "mesh of triangles").
type TMesh struct {
	Tris []Triangle
}

// NewTMesh returns an empty mesh.
func NewTMesh() *TMesh { return &TMesh{} }

// AddTriangle appends t.
func (m *TMesh) AddTriangle(t Triangle) { m.Tris = append(m.Tris, t) }

// Volume computes the volume of a (hopefully closed) mesh via the
// divergence-theorem tetrahedron sum and returns its absolute value, so
// the result is non-negative whichever way the mesh is wound.
func (m *TMesh) Volume() float64 {
	var vol float64
	for _, t := range m.Tris {
		vol += t.A.Dot(t.B.Cross(t.C)) / 6.0
	}
	return math.Abs(vol)
}

// IsWatertight reports whether every undirected edge of the mesh is shared
// by exactly two triangles (S4's "watertight" expectation), by counting
// each edge regardless of winding direction.
func (m *TMesh) IsWatertight(tol float64) bool {
	type edgeKey struct{ ax, ay, az, bx, by, bz int64 }
	q := func(v float64) int64 { return int64(math.Round(v / tol)) }
	key := func(p, q2 shell.Vec3) edgeKey {
		a := edgeKey{q(p.X), q(p.Y), q(p.Z), q(q2.X), q(q2.Y), q(q2.Z)}
		b := edgeKey{q(q2.X), q(q2.Y), q(q2.Z), q(p.X), q(p.Y), q(p.Z)}
		if a.ax < b.ax || (a.ax == b.ax && a.ay < b.ay) || (a.ax == b.ax && a.ay == b.ay && a.az < b.az) {
			return a
		}
		return b
	}
	counts := make(map[edgeKey]int)
	for _, t := range m.Tris {
		counts[key(t.A, t.B)]++
		counts[key(t.B, t.C)]++
		counts[key(t.C, t.A)]++
	}
	for _, c := range counts {
		if c != 2 {
			return false
		}
	}
	return true
}
