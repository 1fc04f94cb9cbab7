// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package request

import (
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
)

func init() {
	Register(Workplane, generateWorkplane)
	Register(Line3D, generateLine3D)
	Register(Line2D, generateLine2D)
	Register(Cubic, generateCubic)
	Register(CubicPeriodic, generateCubicPeriodic)
	Register(Circle, generateCircle)
	Register(Arc, generateArc)
	Register(TTFText, generateTTFText)
	Register(Image, generateImage)
}

func addPoint3D(ents *entity.Table, pt *entity.ParamTable, g handle.Group, wp handle.Entity, p [3]float64) handle.Entity {
	e := entity.NewPointIn3D(g, wp, pt, p[0], p[1], p[2])
	return ents.Add(e)
}

func addPoint2D(ents *entity.Table, pt *entity.ParamTable, g handle.Group, wp handle.Entity, u, v float64) handle.Entity {
	e := entity.NewPointIn2D(g, wp, pt, u, v)
	return ents.Add(e)
}

// generateWorkplane creates a free origin point, a free unit-quaternion
// normal seeded at identity, and the workplane entity itself, exactly as
// §4.3 describes a workplane's makeup.
func generateWorkplane(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	origin := entity.NewPointIn3D(r.Group, entity.FreeIn3D, pt, initial.Points[0][0], initial.Points[0][1], initial.Points[0][2])
	originH := ents.Add(origin)

	normal := entity.NewNormalIn3D(r.Group, entity.FreeIn3D, pt, 1, 0, 0, 0)
	normalH := ents.Add(normal)

	wp := entity.NewWorkplane(r.Group, originH, normalH)
	wpH := ents.Add(wp)

	return []handle.Entity{originH, normalH, wpH}
}

// generateLine3D creates a free-in-3D line segment from two free 3D
// points (§3.2's LINE_SEGMENT request).
func generateLine3D(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	a := addPoint3D(ents, pt, r.Group, entity.FreeIn3D, initial.Points[0])
	b := addPoint3D(ents, pt, r.Group, entity.FreeIn3D, initial.Points[1])
	line := entity.NewLineSegment(r.Group, entity.FreeIn3D, a, b)
	lineH := ents.Add(line)
	return []handle.Entity{a, b, lineH}
}

// generateLine2D creates a line segment sketched inside r.Workplane, using
// its two endpoints' X/Y as the in-plane (u,v) coordinates.
func generateLine2D(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	a := addPoint2D(ents, pt, r.Group, r.Workplane, initial.Points[0][0], initial.Points[0][1])
	b := addPoint2D(ents, pt, r.Group, r.Workplane, initial.Points[1][0], initial.Points[1][1])
	line := entity.NewLineSegment(r.Group, r.Workplane, a, b)
	lineH := ents.Add(line)
	return []handle.Entity{a, b, lineH}
}

// generateCubic creates a non-rational cubic from four free points in
// r.Workplane (FREE_IN_3D or a sketched plane).
func generateCubic(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	var pts [4]handle.Entity
	for i := 0; i < 4; i++ {
		pts[i] = addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[i%4])
	}
	cubic := entity.NewCubic(r.Group, r.Workplane, pts[0], pts[1], pts[2], pts[3])
	cubicH := ents.Add(cubic)
	return append(pts[:], cubicH)
}

func generateCubicPeriodic(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	handles := generateCubic(r, ents, pt, initial)
	// only the kind changes: the first and last control points stay two
	// separate free points and nothing here ties them together (§4.3's
	// CubicPeriodic note in entity/cubic.go).
	cubicH := handles[len(handles)-1]
	if e, ok := ents.FindByHandle(cubicH); ok {
		e.Kind = entity.CubicPeriodic
	}
	return handles
}

// generateCircle creates a circle from a free center point, a free normal,
// and a free radius distance.
func generateCircle(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	center := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[0])
	normal := ents.Add(entity.NewNormalIn3D(r.Group, entity.FreeIn3D, pt, 1, 0, 0, 0))
	radius := ents.Add(entity.NewDistance(r.Group, r.Workplane, pt, initial.Value))
	circle := entity.NewCircle(r.Group, r.Workplane, center, normal, radius)
	circleH := ents.Add(circle)
	return []handle.Entity{center, normal, radius, circleH}
}

// generateArc creates an arc from a free center point, a free normal, and
// two free endpoints.
func generateArc(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	center := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[0])
	normal := ents.Add(entity.NewNormalIn3D(r.Group, entity.FreeIn3D, pt, 1, 0, 0, 0))
	start := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[1])
	end := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[2])
	arc := entity.NewArcOfCircle(r.Group, r.Workplane, center, normal, start, end)
	arcH := ents.Add(arc)
	return []handle.Entity{center, normal, start, end, arcH}
}

// generateTTFText creates the origin/extent points for a text entity.
func generateTTFText(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	origin := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[0])
	extentU := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[1])
	extentV := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[2])
	text := entity.NewTTFText(r.Group, r.Workplane, origin, extentU, extentV, r.Str, r.Font)
	textH := ents.Add(text)
	return []handle.Entity{origin, extentU, extentV, textH}
}

// generateImage creates the origin/extent points for an image entity.
func generateImage(r *Request, ents *entity.Table, pt *entity.ParamTable, initial InitialGeometry) []handle.Entity {
	origin := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[0])
	extentU := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[1])
	extentV := addPoint3D(ents, pt, r.Group, r.Workplane, initial.Points[2])
	img := entity.NewImage(r.Group, r.Workplane, origin, extentU, extentV, r.Str)
	imgH := ents.Add(img)
	return []handle.Entity{origin, extentU, extentV, imgH}
}
