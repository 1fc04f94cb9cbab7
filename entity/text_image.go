// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/shell"
)

func init() {
	Register(TTFText, ttfTextBehavior{})
	Register(Image, imageBehavior{})
}

// NewTTFText creates a text entity spanning the rectangle [origin,
// origin+extent] in its workplane; actual glyph outline rasterization is
// out of scope for this kernel (it owns the constraint/geometry math, not
// font rendering), so generate_bezier_curves degrades to the bounding box
// the text occupies, which is enough for downstream layout and selection.
func NewTTFText(g handle.Group, wp handle.Entity, origin, extentU, extentV handle.Entity, str, font string) *Entity {
	e := newBase(TTFText, g, wp)
	e.NumPoint = 3
	e.Point[0] = origin
	e.Point[1] = extentU
	e.Point[2] = extentV
	e.Str = str
	e.Font = font
	return e
}

type ttfTextBehavior struct{}

func (ttfTextBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (ttfTextBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for a text entity")
}

// GenerateBezierCurves returns the text's bounding rectangle as four line
// segments (the placeholder geometry described above).
func (ttfTextBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	return boundingRectangle(e, ents)
}

// NewImage creates an image entity spanning the rectangle [origin,
// origin+extent] in its workplane, referencing an external raster file by
// path (carried in Str); rasterization/display is a viewport concern
// outside this kernel.
func NewImage(g handle.Group, wp handle.Entity, origin, extentU, extentV handle.Entity, file string) *Entity {
	e := newBase(Image, g, wp)
	e.NumPoint = 3
	e.Point[0] = origin
	e.Point[1] = extentU
	e.Point[2] = extentV
	e.Str = file
	return e
}

type imageBehavior struct{}

func (imageBehavior) Equations(e *Entity, ents *Table, pt *ParamTable) []*expr.Expr { return nil }
func (imageBehavior) PointExprs(e *Entity, ents *Table, pt *ParamTable) expr.Vector {
	panic("entity: PointExprs invalid for an image entity")
}

func (imageBehavior) GenerateBezierCurves(e *Entity, ents *Table) []shell.SBezier {
	return boundingRectangle(e, ents)
}

// boundingRectangle builds the four edges of the rectangle spanned by
// Point[0] (origin), Point[0]+Point[1] direction (U extent), and
// Point[0]+Point[2] direction (V extent), shared by text and image kinds.
func boundingRectangle(e *Entity, ents *Table) []shell.SBezier {
	origin := actVec(ents.MustFindByHandle(e.Point[0]))
	u := actVec(ents.MustFindByHandle(e.Point[1]))
	v := actVec(ents.MustFindByHandle(e.Point[2]))
	p00 := origin
	p10 := origin.Add(u)
	p11 := origin.Add(u).Add(v)
	p01 := origin.Add(v)
	lines := []shell.SBezier{
		shell.NewLine(p00, p10),
		shell.NewLine(p10, p11),
		shell.NewLine(p11, p01),
		shell.NewLine(p01, p00),
	}
	for i := range lines {
		lines[i].EntityH = uint32(e.H)
	}
	return lines
}
