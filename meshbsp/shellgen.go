// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

import (
	"fmt"

	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/shell"
)

// shellVertexTolerance is the grid size used to key coincident 3D points
// when deduplicating trim curves between adjacent triangles, mirroring
// polyline.segKey's quantization approach for the same "coincident points
// must hash to the same bucket" problem one level up (loop vertices there,
// triangle corners here).
const shellVertexTolerance = 1e-7

func vtxKey(p shell.Vec3) string {
	q := func(v float64) int64 { return int64(v / shellVertexTolerance) }
	return fmt.Sprintf("%d_%d_%d", q(p.X), q(p.Y), q(p.Z))
}

// edgeKey is an undirected key for a pair of quantized vertex keys.
func edgeKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// shellBuilder accumulates SSurface/SCurve records one triangle at a time,
// deduplicating shared edges into a single SCurve referenced forwards by
// one owning surface and backwards by the other (§3.3 invariant 2).
type shellBuilder struct {
	sh         *shell.SShell
	curveByKey map[[2]string]handle.SCurve
}

func newShellBuilder() *shellBuilder {
	return &shellBuilder{
		sh:         shell.NewSShell(),
		curveByKey: make(map[[2]string]handle.SCurve),
	}
}

// edgeCurve returns the shared curve between a and b (creating it on first
// use) and whether this call sees it in the a->b direction.
func (b *shellBuilder) edgeCurve(a, bb shell.Vec3) (h handle.SCurve, forward bool) {
	ka, kb := vtxKey(a), vtxKey(bb)
	key := edgeKey(ka, kb)
	if existing, ok := b.curveByKey[key]; ok {
		return existing, ka == key[0]
	}
	c := &shell.SCurve{
		Exact:  true,
		Bezier: shell.NewLine(a, bb),
		PWL:    []shell.PWLPoint{{P: a, Vertex: true}, {P: bb, Vertex: true}},
	}
	h = b.sh.AddCurve(c)
	b.curveByKey[key] = h
	return h, ka == key[0]
}

// addTriangle realizes t as a degenerate-bilinear SSurface: the u=0 edge
// collapses to vertex A, so the patch's (v=0, v=1) boundary sweeps A->B and
// A->C respectively, giving the triangle A-B-C as its trim loop. This lets
// a triangle soup's shell be derived directly, and by construction
// consistently, from the exact same triangles the mesh already carries — a
// deliberate simplification from independently building exact ratpoly
// surfaces for every swept face, documented in DESIGN.md.
func (b *shellBuilder) addTriangle(t Triangle) {
	var s shell.SSurface
	s.DegM, s.DegN = 1, 1
	s.Ctrl[0][0], s.Ctrl[1][0] = t.A, t.B
	s.Ctrl[0][1], s.Ctrl[1][1] = t.A, t.C
	s.Weight[0][0], s.Weight[1][0], s.Weight[0][1], s.Weight[1][1] = 1, 1, 1, 1
	s.FaceEnt = t.FaceEnt

	hAB, fwdAB := b.edgeCurve(t.A, t.B)
	hBC, fwdBC := b.edgeCurve(t.B, t.C)
	hCA, fwdCA := b.edgeCurve(t.C, t.A)
	s.Trim = []shell.STrimBy{
		{Curve: hAB, Backwards: !fwdAB, StartPoint: t.A, FinishPoint: t.B},
		{Curve: hBC, Backwards: !fwdBC, StartPoint: t.B, FinishPoint: t.C},
		{Curve: hCA, Backwards: !fwdCA, StartPoint: t.C, FinishPoint: t.A},
	}
	h := b.sh.AddSurface(&s)

	setCurveSurf(b.sh.Curves.MustFindByHandle(hAB), h)
	setCurveSurf(b.sh.Curves.MustFindByHandle(hBC), h)
	setCurveSurf(b.sh.Curves.MustFindByHandle(hCA), h)
}

// setCurveSurf records h as surfA (first use) or surfB (second use) of c.
func setCurveSurf(c *shell.SCurve, h handle.SSurface) {
	if c.SurfA == 0 {
		c.SurfA = h
		return
	}
	if c.SurfB == 0 {
		c.SurfB = h
	}
}

// BuildShell builds a full SShell by adding one degenerate-bilinear surface
// per triangle, used both by group regeneration (§4.6, turning thisMesh
// into thisShell) and by shellbool (§4.9, rebuilding a combined shell from
// the triangle classification meshbsp's own BSP already settled).
func BuildShell(tris []Triangle) *shell.SShell {
	b := newShellBuilder()
	for _, t := range tris {
		b.addTriangle(t)
	}
	return b.sh
}

// TriangleOf extracts t's three corners back out of a degenerate-bilinear
// SSurface built by BuildShell, reporting ok=false for any surface that
// isn't one of these (a true curved NURBS patch, which shellbool's coarser
// marching path handles instead).
func TriangleOf(s shell.SSurface) (a, b, c shell.Vec3, ok bool) {
	if s.DegM == 1 && s.DegN == 1 && s.Ctrl[0][0].Equals(s.Ctrl[0][1], shell.LengthEps) {
		return s.Ctrl[0][0], s.Ctrl[1][0], s.Ctrl[1][1], true
	}
	return shell.Vec3{}, shell.Vec3{}, shell.Vec3{}, false
}

// ToTriangles extracts every triangle a BuildShell-produced shell carries,
// for callers (shellbool's classification step) that need the same mesh
// representation back out of shell form.
func ToTriangles(sh *shell.SShell) []Triangle {
	var tris []Triangle
	sh.Surfaces.Each(func(s *shell.SSurface) {
		if a, b, c, ok := TriangleOf(*s); ok {
			tris = append(tris, Triangle{A: a, B: b, C: c, FaceEnt: s.FaceEnt})
		}
	})
	return tris
}
