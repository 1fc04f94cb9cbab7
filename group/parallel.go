// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"github.com/cpmech/gosl/mpi"

	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/meshbsp"
	"github.com/solvespace/solvespace-sub002/shell"
)

// buildStepAndRepeatTrisParallel is buildStepAndRepeatTris's distributed
// variant (§5): when MPI is on and more than one rank is present, each rank
// builds only the copies whose index falls to it (round-robin by rank),
// mirroring fem/solver.go's `o.Proc = mpi.Rank(); nproc = mpi.Size()` gate
// one level up from per-rank stiffness assembly to per-rank step-and-repeat
// copies. Results are reduced onto every rank with mpi.AllReduceSum over a
// fixed-capacity, zero-padded flat buffer (triangle count is bounded by
// MaxParallelTriangles, a documented simplification standing in for a true
// variable-length gather), then unpacked back into triangles; the padding
// zeros are themselves a vertex at the origin and would otherwise
// contribute degenerate zero-area triangles, so trailing all-zero triangles
// are dropped after unpacking.
const MaxParallelTriangles = 1 << 16

func (g *Group) buildStepAndRepeatTrisParallel(ents *entity.Table, allowParallel bool) []meshbsp.Triangle {
	nproc, distr := 1, false
	proc := 0
	if mpi.IsOn() {
		if allowParallel {
			proc = mpi.Rank()
			nproc = mpi.Size()
			distr = nproc > 1
		}
	}
	if !distr {
		return g.buildStepAndRepeatTris(ents)
	}

	loops := sketchLoops(ents, g.Source)
	var local []meshbsp.Triangle
	for i := 0; i < g.Copies; i++ {
		if i%nproc != proc {
			continue
		}
		n := float64(i)
		for _, loop := range loops {
			var placed []shell.Vec3
			if g.Kind == Rotate {
				origin := shell.Vec3{X: g.Param[0], Y: g.Param[1], Z: g.Param[2]}
				dir := shell.Vec3{X: g.Param[3], Y: g.Param[4], Z: g.Param[5]}
				placed = rotateLoop(loop, origin, dir, g.Param[6]*n)
			} else {
				placed = translateLoop(loop, shell.Vec3{X: g.Param[0] * n, Y: g.Param[1] * n, Z: g.Param[2] * n})
			}
			local = append(local, fanTriangulate(placed, false)...)
		}
	}

	// Interleave by rank so that slot j*nproc+proc belongs to this rank only.
	spread := make([]meshbsp.Triangle, len(local)*nproc)
	for j, t := range local {
		spread[j*nproc+proc] = t
	}
	return allReduceTriangles(spread)
}

// trianglesToFlat/flatToTriangles pack/unpack a triangle slice into the
// fixed-width float64 buffer mpi.AllReduceSum needs (9 floats per
// triangle: 3 vertices x 3 coordinates; FaceEnt is not reduced since the
// padding zeros carry no meaningful face identity and every rank's real
// triangles already agree on it).
const floatsPerTriangle = 9

func trianglesToFlat(tris []meshbsp.Triangle) []float64 {
	buf := make([]float64, MaxParallelTriangles*floatsPerTriangle)
	for i, t := range tris {
		if i >= MaxParallelTriangles {
			break
		}
		o := i * floatsPerTriangle
		buf[o+0], buf[o+1], buf[o+2] = t.A.X, t.A.Y, t.A.Z
		buf[o+3], buf[o+4], buf[o+5] = t.B.X, t.B.Y, t.B.Z
		buf[o+6], buf[o+7], buf[o+8] = t.C.X, t.C.Y, t.C.Z
	}
	return buf
}

func flatToTriangles(buf []float64) []meshbsp.Triangle {
	var tris []meshbsp.Triangle
	for i := 0; i < MaxParallelTriangles; i++ {
		o := i * floatsPerTriangle
		a := shell.Vec3{X: buf[o+0], Y: buf[o+1], Z: buf[o+2]}
		b := shell.Vec3{X: buf[o+3], Y: buf[o+4], Z: buf[o+5]}
		c := shell.Vec3{X: buf[o+6], Y: buf[o+7], Z: buf[o+8]}
		if a == (shell.Vec3{}) && b == (shell.Vec3{}) && c == (shell.Vec3{}) {
			continue
		}
		tris = append(tris, meshbsp.Triangle{A: a, B: b, C: c})
	}
	return tris
}

// allReduceTriangles sums each rank's zero-padded triangle buffer onto
// every rank; since each triangle slot is owned by exactly one rank (the
// rank interleaving above), every other rank's contribution to that slot is
// zero, so the sum reduction recovers the full triangle set without any
// rank needing to know the others' local counts in advance.
func allReduceTriangles(local []meshbsp.Triangle) []meshbsp.Triangle {
	buf := trianglesToFlat(local)
	mpi.AllReduceSum(buf, make([]float64, len(buf)))
	return flatToTriangles(buf)
}
