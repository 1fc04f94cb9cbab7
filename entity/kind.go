// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

// Kind is the stable entity-type code, preserved for file-format
// round-tripping (§6.5). Values match the reference numbering exactly.
type Kind int

const (
	PointIn3D      Kind = 2000
	PointIn2D      Kind = 2001
	PointNTrans    Kind = 2010
	PointNRotTrans Kind = 2011
	PointNCopy     Kind = 2012
	PointNRotAA    Kind = 2013

	NormalIn3D  Kind = 3000
	NormalIn2D  Kind = 3001
	NormalNCopy Kind = 3010
	NormalNRot  Kind = 3011
	NormalNRotAA Kind = 3012

	Distance       Kind = 4000
	DistanceNCopy  Kind = 4001

	FaceNormalPt  Kind = 5000
	FaceXprod     Kind = 5001
	FaceNRotTrans Kind = 5002
	FaceNTrans    Kind = 5003
	FaceNRotAA    Kind = 5004

	Workplane    Kind = 10000
	LineSegment  Kind = 11000
	Cubic        Kind = 12000
	CubicPeriodic Kind = 12001
	Circle       Kind = 13000
	ArcOfCircle  Kind = 14000
	TTFText      Kind = 15000
	Image        Kind = 16000
)

// IsPoint reports whether k is one of the point variants (§4.3).
func (k Kind) IsPoint() bool {
	switch k {
	case PointIn3D, PointIn2D, PointNTrans, PointNRotTrans, PointNCopy, PointNRotAA:
		return true
	}
	return false
}

// IsNormal reports whether k is one of the normal variants.
func (k Kind) IsNormal() bool {
	switch k {
	case NormalIn3D, NormalIn2D, NormalNCopy, NormalNRot, NormalNRotAA:
		return true
	}
	return false
}

// NumPointParams returns how many direct scalar params back this point
// kind: 0 for derived/copy points (they ride on their source's params via
// a transform instead), 2 for in-plane points, 3 for free 3D points
// (§4.3: "number of params in {0,2,3}").
func (k Kind) NumPointParams() int {
	switch k {
	case PointIn3D:
		return 3
	case PointIn2D:
		return 2
	default:
		return 0
	}
}
