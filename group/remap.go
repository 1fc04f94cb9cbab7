// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"math"

	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/shell"
)

// axisAngleQuaternion returns the unit quaternion (w,x,y,z) representing a
// rotation by angle radians about the unit axis dir, the numeric
// counterpart of the symbolic quaternion NewPointNRotAA's equations build
// from at solve time.
func axisAngleQuaternion(dirX, dirY, dirZ, angle float64) (w, x, y, z float64) {
	half := angle / 2
	s := math.Sin(half)
	return math.Cos(half), dirX * s, dirY * s, dirZ * s
}

// remapSourcePoints walks every point entity owned by src, derives one copy
// per (entity, copy) pair per transform, and records it in g.Remap under
// key. transform receives the source point's handle and returns the new
// derived entity; it is expected to call entity.NewPointNTrans /
// NewPointNRotAA / NewPointNCopy / NewPointNRotTrans as appropriate (§3.4).
func remapSourcePoints(g *Group, ents *entity.Table, src handle.Group, copy int, transform func(srcH handle.Entity) *entity.Entity) {
	for _, e := range append([]*entity.Entity(nil), ents.Items()...) {
		if e.Group != src || !e.Kind.IsPoint() {
			continue
		}
		derived := transform(e.H)
		ents.Add(derived)
		g.Remap[RemapKey{Input: e.H, Copy: copy}] = derived.H
	}
}

// remapSourceNormals mirrors remapSourcePoints for normal entities.
func remapSourceNormals(g *Group, ents *entity.Table, src handle.Group, copy int, transform func(srcH handle.Entity) *entity.Entity) {
	for _, e := range append([]*entity.Entity(nil), ents.Items()...) {
		if e.Group != src || !e.Kind.IsNormal() {
			continue
		}
		derived := transform(e.H)
		ents.Add(derived)
		g.Remap[RemapKey{Input: e.H, Copy: copy}] = derived.H
	}
}

// RemapExtrude builds the bottom/top point+normal copies EXTRUDE needs
// (§3.4's REMAP_BOTTOM/REMAP_TOP): the bottom ring reuses the source
// entities verbatim (an extrude's base never moves), the top ring is a
// POINT_N_TRANS/NORMAL_N_COPY translated copy by the group's (param0..2).
func RemapExtrude(g *Group, ents *entity.Table, pt *entity.ParamTable) {
	dx, dy, dz := g.Param[0], g.Param[1], g.Param[2]
	ents.Each(func(e *entity.Entity) {
		if e.Group != g.Source {
			return
		}
		if e.Kind.IsPoint() {
			g.Remap[RemapKey{Input: e.H, Copy: RemapBottom}] = e.H
		}
		if e.Kind.IsNormal() {
			g.Remap[RemapKey{Input: e.H, Copy: RemapBottom}] = e.H
		}
	})
	remapSourcePoints(g, ents, g.Source, RemapTop, func(srcH handle.Entity) *entity.Entity {
		return entity.NewPointNTrans(g.H, entity.FreeIn3D, pt, srcH, dx, dy, dz)
	})
	remapSourceNormals(g, ents, g.Source, RemapTop, func(srcH handle.Entity) *entity.Entity {
		return entity.NewNormalNCopy(g.H, entity.FreeIn3D, srcH)
	})
}

// RemapAxisSweep builds the start/end copies LATHE and REVOLVE need
// (§3.4's REMAP_LATHE_START/REMAP_LATHE_END): start reuses the source
// verbatim, end is a POINT_N_ROT_AA/NORMAL_N_ROT_AA rotated by sweepAngle
// about (origin, dir). A nonzero axialPitch (HELIX) makes the end points
// POINT_N_ROT_TRANS instead: rotated about the world origin, then
// translated by origin - R(origin) + dir*axialPitch, which is the same
// rotation about (origin, dir) followed by the axial shift.
func RemapAxisSweep(g *Group, ents *entity.Table, pt *entity.ParamTable, originX, originY, originZ, dirX, dirY, dirZ, sweepAngle, axialPitch float64) {
	ents.Each(func(e *entity.Entity) {
		if e.Group != g.Source {
			return
		}
		if e.Kind.IsPoint() || e.Kind.IsNormal() {
			g.Remap[RemapKey{Input: e.H, Copy: RemapLatheStart}] = e.H
		}
	})
	qw, qx, qy, qz := axisAngleQuaternion(dirX, dirY, dirZ, sweepAngle)
	o := shell.Vec3{X: originX, Y: originY, Z: originZ}
	d := shell.Vec3{X: dirX, Y: dirY, Z: dirZ}
	t := o.Add(d.Scale(axialPitch)).Sub(rotateAboutAxis(o, shell.Vec3{}, d, sweepAngle))
	remapSourcePoints(g, ents, g.Source, RemapLatheEnd, func(srcH handle.Entity) *entity.Entity {
		if axialPitch == 0 {
			return entity.NewPointNRotAA(g.H, entity.FreeIn3D, pt, srcH, originX, originY, originZ, qw, qx, qy, qz)
		}
		return entity.NewPointNRotTrans(g.H, entity.FreeIn3D, pt, srcH, t.X, t.Y, t.Z, qw, qx, qy, qz)
	})
	remapSourceNormals(g, ents, g.Source, RemapLatheEnd, func(srcH handle.Entity) *entity.Entity {
		return entity.NewNormalNRotAA(g.H, entity.FreeIn3D, pt, srcH, qw, qx, qy, qz)
	})
}

// RemapStepAndRepeat builds one derived copy per (source entity, copy
// index) pair for TRANSLATE/ROTATE, per §3.4's general "copy number" case
// (no reserved sentinel — every copy is a literal entity). Copy 0 reuses
// the source entities verbatim (the unmoved first instance); copies 1..N-1
// apply the per-copy transform.
func RemapStepAndRepeat(g *Group, ents *entity.Table, pt *entity.ParamTable, rotate bool) {
	ents.Each(func(e *entity.Entity) {
		if e.Group != g.Source {
			return
		}
		if e.Kind.IsPoint() || e.Kind.IsNormal() {
			g.Remap[RemapKey{Input: e.H, Copy: 0}] = e.H
		}
	})
	for i := 1; i < g.Copies; i++ {
		n := float64(i)
		if rotate {
			qw, qx, qy, qz := axisAngleQuaternion(g.Param[3], g.Param[4], g.Param[5], g.Param[6]*n)
			ox, oy, oz := g.Param[0], g.Param[1], g.Param[2]
			remapSourcePoints(g, ents, g.Source, i, func(srcH handle.Entity) *entity.Entity {
				return entity.NewPointNRotAA(g.H, entity.FreeIn3D, pt, srcH, ox, oy, oz, qw, qx, qy, qz)
			})
			remapSourceNormals(g, ents, g.Source, i, func(srcH handle.Entity) *entity.Entity {
				return entity.NewNormalNRotAA(g.H, entity.FreeIn3D, pt, srcH, qw, qx, qy, qz)
			})
		} else {
			dx, dy, dz := g.Param[0]*n, g.Param[1]*n, g.Param[2]*n
			remapSourcePoints(g, ents, g.Source, i, func(srcH handle.Entity) *entity.Entity {
				return entity.NewPointNTrans(g.H, entity.FreeIn3D, pt, srcH, dx, dy, dz)
			})
			remapSourceNormals(g, ents, g.Source, i, func(srcH handle.Entity) *entity.Entity {
				return entity.NewNormalNCopy(g.H, entity.FreeIn3D, srcH)
			})
		}
	}
}
