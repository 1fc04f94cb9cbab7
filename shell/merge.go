// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"math"

	"github.com/solvespace/solvespace-sub002/handle"
)

// coplanarNormal returns the unit normal of a degree-1x1 planar surface.
func (s *SSurface) coplanarNormal() (Vec3, bool) {
	if s.DegM != 1 || s.DegN != 1 {
		return Vec3{}, false
	}
	u := s.Ctrl[1][0].Sub(s.Ctrl[0][0])
	v := s.Ctrl[0][1].Sub(s.Ctrl[0][0])
	n := u.Cross(v)
	if n.Len() < 1e-12 {
		return Vec3{}, false
	}
	return n.Normalize(), true
}

func sameColor(a, b [4]uint8) bool { return a == b }

// coplanarSamePlane reports whether two coplanar degree-1x1 surfaces lie on the
// same plane (not just parallel ones), by checking that a's origin
// satisfies b's plane equation.
func coplanarSamePlane(a, b *SSurface, na Vec3) bool {
	p := a.Ctrl[0][0]
	q := b.Ctrl[0][0]
	return math.Abs(na.Dot(p.Sub(q))) < 1e-9
}

// boundingUV returns the axis-aligned bounding box, in 3D, of the union of
// two planar control nets, used to re-fit the survivor's control net after
// a merge (§4.7's last bullet: "the survivor's control net re-fit to span
// the new UV bounding box plus a chord-tolerance margin").
func boundingUV(pts []Vec3, margin float64) (lo, hi Vec3) {
	lo = pts[0]
	hi = pts[0]
	for _, p := range pts[1:] {
		lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	lo = Vec3{lo.X - margin, lo.Y - margin, lo.Z - margin}
	hi = Vec3{hi.X + margin, hi.Y + margin, hi.Z + margin}
	return
}

// MergeCoincidentSurfaces implements §4.7's last bullet: two surfaces on
// the same plane (degree 1x1, equal normal direction, equal color) whose
// trim loops overlap have their trims unified onto the survivor (the
// lower-handle surface), the duplicate tagged for removal, every curve
// referencing the duplicate reassigned to the survivor, and the survivor's
// control net re-fit to the new bounding box plus chordTol margin.
//
// It returns the number of surfaces merged away.
func (sh *SShell) MergeCoincidentSurfaces(chordTol float64) int {
	merged := 0
	surfs := append([]*SSurface(nil), sh.Surfaces.Items()...)
	removed := make(map[handle.SSurface]bool)

	for i := 0; i < len(surfs); i++ {
		a := surfs[i]
		if removed[a.H] {
			continue
		}
		na, ok := a.coplanarNormal()
		if !ok {
			continue
		}
		for j := i + 1; j < len(surfs); j++ {
			b := surfs[j]
			if removed[b.H] {
				continue
			}
			nb, ok := b.coplanarNormal()
			if !ok || !sameColor(a.Color, b.Color) {
				continue
			}
			if na.Sub(nb).Len() > 1e-9 {
				continue // normals differ
			}
			if !coplanarSamePlane(a, b, na) {
				continue
			}
			if !trimLoopsOverlap(a, b) {
				continue
			}

			// unify: survivor a absorbs b's trims, reassigning b's curves'
			// surface references to a.
			for _, t := range b.Trim {
				if c, ok := sh.Curves.FindByHandle(t.Curve); ok {
					if c.SurfA == b.H {
						c.SurfA = a.H
					}
					if c.SurfB == b.H {
						c.SurfB = a.H
					}
				}
				a.Trim = append(a.Trim, t)
			}
			removed[b.H] = true
			merged++

			// re-fit a's control net to span the combined bounding box.
			pts := []Vec3{a.Ctrl[0][0], a.Ctrl[1][0], a.Ctrl[0][1], a.Ctrl[1][1],
				b.Ctrl[0][0], b.Ctrl[1][0], b.Ctrl[0][1], b.Ctrl[1][1]}
			lo, hi := boundingUV(pts, chordTol)
			refitPlanar(a, lo, hi, na)
		}
	}
	for h := range removed {
		sh.Surfaces.Tag(h)
	}
	sh.Surfaces.RemoveTagged()
	return merged
}

// trimLoopsOverlap is a conservative overlap test: true when any trim
// start/finish point of one surface lies within tolerance of the other's
// bounding extent. A full polygon-overlap test belongs to the shell
// boolean's classification step (§4.9); here we only need "do these two
// coplanar faces share territory worth unifying".
func trimLoopsOverlap(a, b *SSurface) bool {
	if len(a.Trim) == 0 || len(b.Trim) == 0 {
		return false
	}
	lo, hi := boundingUV([]Vec3{b.Ctrl[0][0], b.Ctrl[1][0], b.Ctrl[0][1], b.Ctrl[1][1]}, LengthEps)
	for _, t := range a.Trim {
		for _, p := range []Vec3{t.StartPoint, t.FinishPoint} {
			if p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y && p.Z >= lo.Z && p.Z <= hi.Z {
				return true
			}
		}
	}
	return false
}

// refitPlanar rebuilds a degree-1x1 control net spanning [lo,hi] in the
// plane with normal n, keeping a's original origin's projection as corner
// (0,0) orientation.
func refitPlanar(s *SSurface, lo, hi Vec3, n Vec3) {
	// build two in-plane axes
	var ref Vec3
	if math.Abs(n.X) < 0.9 {
		ref = Vec3{1, 0, 0}
	} else {
		ref = Vec3{0, 1, 0}
	}
	u := n.Cross(ref).Normalize()
	v := n.Cross(u).Normalize()
	center := Vec3{(lo.X + hi.X) / 2, (lo.Y + hi.Y) / 2, (lo.Z + hi.Z) / 2}
	extent := hi.Sub(lo).Len() / 2
	if extent == 0 {
		extent = 1
	}
	s.Ctrl[0][0] = center.Sub(u.Scale(extent)).Sub(v.Scale(extent))
	s.Ctrl[1][0] = center.Add(u.Scale(extent)).Sub(v.Scale(extent))
	s.Ctrl[0][1] = center.Sub(u.Scale(extent)).Add(v.Scale(extent))
	s.Ctrl[1][1] = center.Add(u.Scale(extent)).Add(v.Scale(extent))
	s.Weight[0][0], s.Weight[1][0], s.Weight[0][1], s.Weight[1][1] = 1, 1, 1, 1
}
