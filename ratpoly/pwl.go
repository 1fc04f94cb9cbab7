// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ratpoly

import (
	"github.com/solvespace/solvespace-sub002/shell"
)

// ApproximatePWL builds b's piecewise-linear approximation by adaptive
// subdivision (§4.7's "PWL approximation"): a segment subdivides further
// only while its midpoint deviates from the chord connecting its endpoints
// by more than chordTol and its parameter span is still wider than
// 1/maxSegments. maxSegments bounds the recursion so a degenerate curve
// (e.g. a cusp) can't subdivide forever.
func ApproximatePWL(b shell.SBezier, chordTol float64, maxSegments int) []shell.PWLPoint {
	if maxSegments < 1 {
		maxSegments = 1
	}
	pts := []shell.PWLPoint{{P: Eval(b, 0), Vertex: true}}
	pts = subdividePWL(b, 0, 1, pts, chordTol, 1.0/float64(maxSegments))
	return pts
}

// subdividePWL appends the subdivision of [t0, t1] to pts, whose last entry
// is always the point at t0; minSpan is the parameter-span floor below
// which a segment is accepted regardless of chord deviation.
func subdividePWL(b shell.SBezier, t0, t1 float64, pts []shell.PWLPoint, chordTol, minSpan float64) []shell.PWLPoint {
	p0 := Eval(b, t0)
	p1 := Eval(b, t1)
	mid := (t0 + t1) / 2
	pm := Eval(b, mid)

	deviation := chordDeviation(p0, p1, pm)
	if t1-t0 <= minSpan || deviation <= chordTol {
		return append(pts, shell.PWLPoint{P: p1, Vertex: t1 == 1})
	}

	pts = subdividePWL(b, t0, mid, pts, chordTol, minSpan)
	pts = subdividePWL(b, mid, t1, pts, chordTol, minSpan)
	return pts
}

// chordDeviation is the distance from pm to the line segment p0-p1.
func chordDeviation(p0, p1, pm shell.Vec3) float64 {
	chord := p1.Sub(p0)
	length := chord.Len()
	if length < RatpolyEps {
		return pm.Sub(p0).Len()
	}
	dir := chord.Scale(1 / length)
	toM := pm.Sub(p0)
	along := toM.Dot(dir)
	proj := p0.Add(dir.Scale(along))
	return pm.Sub(proj).Len()
}
