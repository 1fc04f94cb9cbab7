// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package importers implements the linked-file formats of §6.3: IDF v3
// board outlines and binary STL meshes, each turned into this kernel's own
// geometry (SBezier curves for IDF, meshbsp.Triangle soup for STL) rather
// than any intermediate file-specific representation.
package importers

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

// IDFBoard is the result of parsing an IDF v3 board file: the board
// thickness plus every closed bezier loop (outline, cutouts, drilled
// holes) needed to build the extrusion of §6.3 ("produces ... loops ...
// plus extrusion").
type IDFBoard struct {
	ThicknessMM float64
	Loops       [][]shell.SBezier
}

// idfAxis is the constant board-plane orientation LinkIDF uses throughout
// (Quaternion::From((1,0,0),(0,1,0)), i.e. the XY plane with Z up).
var (
	idfU    = shell.Vec3{X: 1}
	idfV    = shell.Vec3{Y: 1}
	idfAxis = shell.Vec3{Z: 1}
)

type idfSection int

const (
	idfSectionNone idfSection = iota
	idfSectionHeader
	idfSectionBoardOutline
	idfSectionDrilledHoles
)

// ParseIDF reads an IDF v3 board-outline file and returns its thickness
// and bezier loops, per §6.3 and the curve/angle semantics of the linked
// IDF importer (curveIndex/x/y/angle records; angle 0 = line, 360 =
// circle, ±θ = arc in degrees, positive CCW).
func ParseIDF(r io.Reader) (*IDFBoard, error) {
	board := &IDFBoard{ThicknessMM: 10.0}

	sc := bufio.NewScanner(r)
	section := idfSectionNone
	recordNumber := 0
	curve := -1
	var cur []shell.SBezier
	var prev shell.Vec3
	haveCur := false

	flushCurve := func() {
		if len(cur) > 0 {
			board.Loops = append(board.Loops, cur)
		}
		cur = nil
	}

	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, ".END_") {
			section = idfSectionNone
			flushCurve()
			curve = -1
			haveCur = false
			continue
		}
		switch section {
		case idfSectionNone:
			switch {
			case strings.HasPrefix(line, ".HEADER"):
				section = idfSectionHeader
				recordNumber = 1
			case strings.HasPrefix(line, ".BOARD_OUTLINE"):
				section = idfSectionBoardOutline
				recordNumber = 1
			case strings.HasPrefix(line, ".DRILLED_HOLES"):
				section = idfSectionDrilledHoles
				recordNumber = 1
			}
		case idfSectionBoardOutline:
			if recordNumber == 2 {
				t, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
				if err != nil {
					return nil, chk.Err("importers: bad board thickness %q: %v", line, err)
				}
				board.ThicknessMM = t
			} else {
				fields := strings.Fields(line)
				if len(fields) != 4 {
					break
				}
				c, err := strconv.Atoi(fields[0])
				if err != nil {
					break
				}
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				ang, _ := strconv.ParseFloat(fields[3], 64)
				point := shell.Vec3{X: x, Y: y}
				if c != curve {
					flushCurve()
					curve = c
					prev = point
					haveCur = true
				} else if haveCur {
					switch {
					case math.Abs(ang) < 0.1:
						if !point.Equals(prev, shell.LengthEps) {
							cur = append(cur, shell.NewLine(prev, point))
						}
					case ang == 360.0:
						cur = append(cur, arcBeziers(point, prev, 360.0)...)
					default:
						a, b := prev, point
						angle := ang
						if angle < 0 {
							a, b = b, a
							angle = -angle
						}
						center := arcCenter(a, b, angle)
						cur = append(cur, arcBeziers(center, a, angle)...)
					}
					prev = point
				}
			}
		case idfSectionDrilledHoles:
			fields := strings.Fields(line)
			if len(fields) < 3 {
				break
			}
			d, err1 := strconv.ParseFloat(fields[0], 64)
			x, err2 := strconv.ParseFloat(fields[1], 64)
			y, err3 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				break
			}
			center := shell.Vec3{X: x, Y: y}
			onCircle := shell.Vec3{X: x + d/2, Y: y}
			board.Loops = append(board.Loops, arcBeziers(center, onCircle, 360.0))
		}
		recordNumber++
	}
	if err := sc.Err(); err != nil {
		return nil, chk.Err("importers: reading IDF: %v", err)
	}
	flushCurve()
	return board, nil
}

// arcCenter locates an arc's center from its two endpoints and included
// angle (degrees, the magnitude already made positive by the caller),
// mirroring importidf.cpp's ArcCenter.
func arcCenter(p0, p1 shell.Vec3, angleDeg float64) shell.Vec3 {
	m := p0.Add(p1).Scale(0.5)
	perp := shell.Vec3{X: p1.Y - p0.Y, Y: p0.X - p1.X}.Normalize()
	if angleDeg == 180 {
		return m
	}
	dist := p1.Sub(m).Len() / math.Tan(0.5*angleDeg*math.Pi/180)
	return m.Sub(perp.Scale(dist))
}

// arcBeziers subdivides a circular arc of angleDeg degrees (360 for a full
// circle) starting at pa into exact rational-quadratic segments, each under
// 180 degrees, mirroring importidf.cpp's MakeBeziersForArcs. A full circle
// starts at angle 0 of the idfU/idfV frame rather than at pa; pa then only
// sets the radius.
func arcBeziers(center, pa shell.Vec3, angleDeg float64) []shell.SBezier {
	r := pa.Sub(center).Len()
	var theta float64
	if angleDeg != 360.0 {
		rel := pa.Sub(center)
		theta = math.Atan2(rel.Dot(idfV), rel.Dot(idfU))
	}
	dtheta := angleDeg * math.Pi / 180

	n := 1
	switch {
	case dtheta > 3*math.Pi/2+0.01:
		n = 4
	case dtheta > math.Pi+0.01:
		n = 3
	case dtheta > math.Pi/2+0.01:
		n = 2
	}
	step := dtheta / float64(n)

	pointAt := func(th float64) shell.Vec3 {
		return center.Add(idfU.Scale(r * math.Cos(th))).Add(idfV.Scale(r * math.Sin(th)))
	}

	out := make([]shell.SBezier, 0, n)
	for i := 0; i < n; i++ {
		p0 := pointAt(theta)
		theta += step
		p1 := pointAt(theta)
		out = append(out, shell.NewRationalArc(center, p0, p1, idfAxis, step))
	}
	return out
}
