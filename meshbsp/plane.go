// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import "github.com/solvespace/solvespace-sub002/shell"

// planeEps is the tolerance a vertex must fall within a plane to be
// considered coplanar with it, reusing shell.LengthEps (§3.3/§4.7) since
// both concerns share the same human-scale-sketch tolerance.
const planeEps = shell.LengthEps

// plane is the (n, d) pair of a node's cutting plane: n.p - d = 0.
type plane struct {
	N shell.Vec3
	D float64
}

func planeOf(t Triangle) plane {
	n := t.Normal()
	return plane{N: n, D: n.Dot(t.A)}
}

// side classifies a vertex against pl: +1 in front, -1 behind, 0 coplanar.
func (pl plane) side(v shell.Vec3) int {
	val := pl.N.Dot(v) - pl.D
	switch {
	case val > planeEps:
		return 1
	case val < -planeEps:
		return -1
	default:
		return 0
	}
}

// intersect returns the point where segment a-b crosses pl, assuming the
// segment straddles it (caller checked signs differ).
func (pl plane) intersect(a, b shell.Vec3) shell.Vec3 {
	da := pl.N.Dot(a) - pl.D
	db := pl.N.Dot(b) - pl.D
	t := da / (da - db)
	return a.Add(b.Sub(a).Scale(t))
}
