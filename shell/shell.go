// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"github.com/solvespace/solvespace-sub002/handle"
)

// MaxSurfaceDegree bounds SSurface's Bernstein patch degree in each
// direction.
const MaxSurfaceDegree = 3

// PWLPoint is one point of an SCurve's piecewise-linear approximation,
// flagged as either an exact vertex of the underlying curve or an
// interpolated in-between sample (§3.3).
type PWLPoint struct {
	P      Vec3
	Vertex bool
}

// SCurve is shared between the two surfaces it bounds (§3.3).
type SCurve struct {
	H       handle.SCurve
	SurfA   handle.SSurface
	SurfB   handle.SSurface
	Exact   bool
	Bezier  SBezier // valid iff Exact
	PWL     []PWLPoint
	NewH    []handle.SCurve // remap used when this curve is split into children
}

func (c *SCurve) Handle() handle.SCurve     { return c.H }
func (c *SCurve) SetHandle(h handle.SCurve) { c.H = h }

// STrimBy references a curve in the owning shell plus the portion and
// direction that bounds a particular surface (§3.3).
type STrimBy struct {
	Curve      handle.SCurve
	Backwards  bool
	StartPoint Vec3
	FinishPoint Vec3
}

// SSurface is a rational Bernstein patch (§3.3).
type SSurface struct {
	H       handle.SSurface
	DegM    int
	DegN    int
	Ctrl    [MaxSurfaceDegree + 1][MaxSurfaceDegree + 1]Vec3
	Weight  [MaxSurfaceDegree + 1][MaxSurfaceDegree + 1]float64
	Color   [4]uint8 // RGBA
	FaceEnt uint32   // optional face-entity handle, zero if none
	Trim    []STrimBy
}

func (s *SSurface) Handle() handle.SSurface     { return s.H }
func (s *SSurface) SetHandle(h handle.SSurface) { s.H = h }

// SShell is an ordered collection of SSurface and SCurve (§3.3).
type SShell struct {
	Surfaces      *handle.Table[handle.SSurface, *SSurface]
	Curves        *handle.Table[handle.SCurve, *SCurve]
	BooleanFailed bool
}

func NewSShell() *SShell {
	return &SShell{
		Surfaces: handle.NewTable[handle.SSurface, *SSurface](),
		Curves:   handle.NewTable[handle.SCurve, *SCurve](),
	}
}

// AddSurface inserts s and returns its new handle.
func (sh *SShell) AddSurface(s *SSurface) handle.SSurface { return sh.Surfaces.Add(s) }

// AddCurve inserts c and returns its new handle.
func (sh *SShell) AddCurve(c *SCurve) handle.SCurve { return sh.Curves.Add(c) }

// CheckClosed verifies shell invariant 2 of §3.3: for any non-open shell,
// each curve must appear in exactly two surfaces' trim lists, once
// forwards and once backwards. It returns the offending curve handles
// (empty on success) rather than erroring, since "not closed" is a
// legitimate diagnosable state (§7), not a programmer error.
func (sh *SShell) CheckClosed() (badCurves []handle.SCurve) {
	forward := make(map[handle.SCurve]int)
	backward := make(map[handle.SCurve]int)
	sh.Surfaces.Each(func(s *SSurface) {
		for _, t := range s.Trim {
			if t.Backwards {
				backward[t.Curve]++
			} else {
				forward[t.Curve]++
			}
		}
	})
	sh.Curves.Each(func(c *SCurve) {
		if forward[c.H] != 1 || backward[c.H] != 1 {
			badCurves = append(badCurves, c.H)
		}
	})
	return
}

// CheckTrimReferences verifies shell invariant 1 of §3.3: every STrimBy
// references a curve whose SurfA or SurfB equals the owning surface.
func (sh *SShell) CheckTrimReferences() (bad []handle.SSurface) {
	sh.Surfaces.Each(func(s *SSurface) {
		for _, t := range s.Trim {
			c, ok := sh.Curves.FindByHandle(t.Curve)
			if !ok || (c.SurfA != s.H && c.SurfB != s.H) {
				bad = append(bad, s.H)
				return
			}
		}
	})
	return
}

// CheckTrimEndpoints verifies shell invariant 3 of §3.3: trim start/finish
// points lie on the curve's PWL within LengthEps.
func (sh *SShell) CheckTrimEndpoints() (bad []handle.SSurface) {
	sh.Surfaces.Each(func(s *SSurface) {
		for _, t := range s.Trim {
			c, ok := sh.Curves.FindByHandle(t.Curve)
			if !ok || len(c.PWL) == 0 {
				continue
			}
			if !onPWL(c.PWL, t.StartPoint) || !onPWL(c.PWL, t.FinishPoint) {
				bad = append(bad, s.H)
				return
			}
		}
	})
	return
}

func onPWL(pts []PWLPoint, p Vec3) bool {
	for _, q := range pts {
		if q.P.Equals(p, LengthEps) {
			return true
		}
	}
	return false
}
