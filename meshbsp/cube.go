// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import "github.com/solvespace/solvespace-sub002/shell"

// Cube returns a watertight, outward-normal triangle mesh of the
// axis-aligned box [lo, hi], two triangles per face.
func Cube(lo, hi shell.Vec3) *TMesh {
	v := func(x, y, z float64) shell.Vec3 { return shell.Vec3{X: x, Y: y, Z: z} }
	p := [8]shell.Vec3{
		v(lo.X, lo.Y, lo.Z), v(hi.X, lo.Y, lo.Z), v(hi.X, hi.Y, lo.Z), v(lo.X, hi.Y, lo.Z),
		v(lo.X, lo.Y, hi.Z), v(hi.X, lo.Y, hi.Z), v(hi.X, hi.Y, hi.Z), v(lo.X, hi.Y, hi.Z),
	}
	quad := func(m *TMesh, a, b, c, d shell.Vec3) {
		m.AddTriangle(Triangle{A: a, B: b, C: c})
		m.AddTriangle(Triangle{A: a, B: c, C: d})
	}
	m := NewTMesh()
	quad(m, p[0], p[3], p[2], p[1]) // bottom, z=lo, normal -Z
	quad(m, p[4], p[5], p[6], p[7]) // top, z=hi, normal +Z
	quad(m, p[0], p[1], p[5], p[4]) // front, y=lo
	quad(m, p[3], p[7], p[6], p[2]) // back, y=hi
	quad(m, p[0], p[4], p[7], p[3]) // left, x=lo
	quad(m, p[1], p[2], p[6], p[5]) // right, x=hi
	return m
}
