// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slvs implements the embedding API of §6.1: a thin, C-ABI-shaped
// wrapper over entity/request/constraint/group/solver that an embedding
// application drives directly (add params, add entities, add constraints,
// solve one group) without needing the rest of this kernel's file-format or
// regeneration machinery. It mirrors the real SolveSpace library's
// Slvs_Add*/Slvs_Solve surface one level up from raw expr equations, the
// same "thin wrapper over the real machinery" role fem/fem.go's FEM struct
// plays over Domain/Solver.
package slvs

import (
	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/solver"
)

// Handle aliases: the embedding API's opaque handle types (Slvs_hGroup,
// Slvs_hParam, Slvs_hEntity, Slvs_hConstraint in the reference naming) are
// just this kernel's own handle types under Go-idiomatic names.
type (
	HGroup      = handle.Group
	HParam      = handle.Param
	HEntity     = handle.Entity
	HConstraint = handle.Constraint
)

// NoEntity is the "no entity" sentinel a convenience wrapper may pass for
// an unused eC/eD/ptB slot.
const NoEntity = entity.FreeIn3D

// Result classifies how SolveSketch/Solve ended, matching §6.1's four
// result codes.
type Result int

const (
	Okay Result = iota
	Inconsistent
	DidntConverge
	TooManyUnknowns
)

func fromSolverResult(r solver.Result) Result {
	switch r {
	case solver.Okay, solver.RedundantOkay:
		return Okay
	case solver.TooManyUnknowns:
		return TooManyUnknowns
	case solver.RedundantDidntConverge:
		return Inconsistent
	default:
		return DidntConverge
	}
}

// System is the embedding context: the three tables a sketch lives in, plus
// the group new entities/constraints are added to until the caller switches
// it with SetActiveGroup (§6.1 bundles these the way the reference Slvs_System
// struct bundles param[]/entity[]/constraint[] arrays).
type System struct {
	Ents   *entity.Table
	Param  *entity.ParamTable
	Cons   *constraint.Table
	Tuning solver.Tuning

	group handle.Group
}

// NewSystem returns an empty System with solver.NewTuning's default knobs.
func NewSystem() *System {
	return &System{
		Ents:   entity.NewTable(),
		Param:  entity.NewParamTable(),
		Cons:   constraint.NewTable(),
		Tuning: solver.NewTuning(),
	}
}

// SetActiveGroup selects which group AddXxx calls append to.
func (s *System) SetActiveGroup(g HGroup) { s.group = g }

// AddParam allocates a free scalar param directly, for callers building an
// entity by hand rather than through one of the AddXxx constructors below.
func (s *System) AddParam(value float64) HParam {
	return s.Param.AddFree(value).Handle()
}

// AddPoint3D adds a free 3D point.
func (s *System) AddPoint3D(x, y, z float64) HEntity {
	return s.Ents.Add(entity.NewPointIn3D(s.group, entity.FreeIn3D, s.Param, x, y, z))
}

// AddPoint2D adds a point sketched inside workplane wp.
func (s *System) AddPoint2D(wp HEntity, u, v float64) HEntity {
	s.mustBeWorkplane(wp)
	return s.Ents.Add(entity.NewPointIn2D(s.group, wp, s.Param, u, v))
}

// AddNormal3D adds a free-standing unit-quaternion orientation.
func (s *System) AddNormal3D(qw, qx, qy, qz float64) HEntity {
	return s.Ents.Add(entity.NewNormalIn3D(s.group, entity.FreeIn3D, s.Param, qw, qx, qy, qz))
}

// AddNormal2D adds a normal locked to workplane wp's own orientation (the
// embedding API's "this entity lies flat in this plane" shortcut).
func (s *System) AddNormal2D(wp HEntity) HEntity {
	s.mustBeWorkplane(wp)
	return s.Ents.Add(entity.NewNormalIn3D(s.group, wp, s.Param, 1, 0, 0, 0))
}

// AddDistance adds a scalar-distance entity (a circle's radius, say).
func (s *System) AddDistance(wp HEntity, value float64) HEntity {
	return s.Ents.Add(entity.NewDistance(s.group, wp, s.Param, value))
}

// AddLine2D adds a line segment sketched inside wp between two existing
// points.
func (s *System) AddLine2D(wp HEntity, ptA, ptB HEntity) HEntity {
	s.mustBeWorkplane(wp)
	s.mustBePoint(ptA)
	s.mustBePoint(ptB)
	return s.Ents.Add(entity.NewLineSegment(s.group, wp, ptA, ptB))
}

// AddLine3D adds a free-in-3D line segment between two existing points.
func (s *System) AddLine3D(ptA, ptB HEntity) HEntity {
	s.mustBePoint(ptA)
	s.mustBePoint(ptB)
	return s.Ents.Add(entity.NewLineSegment(s.group, entity.FreeIn3D, ptA, ptB))
}

// AddCubic adds a non-rational cubic Bezier through/between four control
// points.
func (s *System) AddCubic(wp HEntity, p0, p1, p2, p3 HEntity) HEntity {
	return s.Ents.Add(entity.NewCubic(s.group, wp, p0, p1, p2, p3))
}

// AddArc adds an arc of circle with the given center/normal/endpoints.
func (s *System) AddArc(wp HEntity, normal, center, start, end HEntity) HEntity {
	s.mustBePoint(center)
	s.mustBePoint(start)
	s.mustBePoint(end)
	return s.Ents.Add(entity.NewArcOfCircle(s.group, wp, center, normal, start, end))
}

// AddCircle adds a circle from a center point, a normal, and a radius
// distance entity.
func (s *System) AddCircle(wp HEntity, center, normal, radius HEntity) HEntity {
	s.mustBePoint(center)
	return s.Ents.Add(entity.NewCircle(s.group, wp, center, normal, radius))
}

// AddWorkplane adds a workplane anchored at origin with the given normal.
func (s *System) AddWorkplane(origin, normal HEntity) HEntity {
	s.mustBePoint(origin)
	return s.Ents.Add(entity.NewWorkplane(s.group, origin, normal))
}

// Add2DBase adds a workplane at the origin with an identity orientation,
// the base plane the reference embedding API's Slvs_Add2DBase convenience
// creates for a caller that just wants "some workplane to sketch in".
func (s *System) Add2DBase() HEntity {
	origin := s.AddPoint3D(0, 0, 0)
	normal := s.AddNormal3D(1, 0, 0, 0)
	return s.AddWorkplane(origin, normal)
}

func (s *System) mustBePoint(h HEntity) {
	if !s.Ents.MustFindByHandle(h).Kind.IsPoint() {
		chk.Panic("slvs: entity %d is not a point", uint32(h))
	}
}

func (s *System) mustBeWorkplane(h HEntity) {
	if h == entity.FreeIn3D {
		return
	}
	if s.Ents.MustFindByHandle(h).Kind != entity.Workplane {
		chk.Panic("slvs: entity %d is not a workplane", uint32(h))
	}
}

// AddConstraint adds a constraint of the given kind directly, mirroring
// §6.1's Slvs_AddConstraint(group, type, workplane, val, ptA, ptB, eA, eB,
// eC, eD, other, other2).
func (s *System) AddConstraint(kind constraint.Kind, wp HEntity, val float64, ptA, ptB, eA, eB, eC, eD HEntity, other, other2 bool) HConstraint {
	return s.Cons.Add(&constraint.Constraint{
		Type:      kind,
		Group:     s.group,
		Workplane: wp,
		ValA:      val,
		PtA:       ptA,
		PtB:       ptB,
		EntityA:   eA,
		EntityB:   eB,
		EntityC:   eC,
		EntityD:   eD,
		Other:     other,
		Other2:    other2,
	})
}

// Convenience wrappers (§6.1): each is AddConstraint with the arguments
// fixed to the shape its kind actually reads, so a caller adding a common
// relation doesn't have to know which of ptA/ptB/entityA.. that relation
// uses. SameOrientation and a distinct EqualAngle kind have no behavior
// registered in constraint/library.go (this kernel's catalog is a named
// subset of the reference's full 1..38 constraint types; see DESIGN.md),
// so no wrapper is offered for them.
func (s *System) Coincident(wp HEntity, ptA, ptB HEntity) HConstraint {
	return s.AddConstraint(constraint.PointsCoincident, wp, 0, ptA, ptB, 0, 0, 0, 0, false, false)
}

func (s *System) Distance(wp HEntity, ptA, ptB HEntity, val float64) HConstraint {
	return s.AddConstraint(constraint.PtPtDistance, wp, val, ptA, ptB, 0, 0, 0, 0, false, false)
}

func (s *System) DistanceToLine(wp HEntity, pt, line HEntity, val float64) HConstraint {
	return s.AddConstraint(constraint.PtLineDistance, wp, val, pt, 0, line, 0, 0, 0, false, false)
}

func (s *System) PointOnLine(wp HEntity, pt, line HEntity) HConstraint {
	return s.AddConstraint(constraint.PtOnLine, wp, 0, pt, 0, line, 0, 0, 0, false, false)
}

func (s *System) Equal(lineA, lineB HEntity) HConstraint {
	return s.AddConstraint(constraint.EqualLengthLines, entity.FreeIn3D, 0, 0, 0, lineA, lineB, 0, 0, false, false)
}

func (s *System) Angle(wp HEntity, lineA, lineB HEntity, radians float64, supplement bool) HConstraint {
	return s.AddConstraint(constraint.Angle, wp, radians, 0, 0, lineA, lineB, 0, 0, supplement, false)
}

func (s *System) Parallel(lineA, lineB HEntity) HConstraint {
	return s.AddConstraint(constraint.Parallel, entity.FreeIn3D, 0, 0, 0, lineA, lineB, 0, 0, false, false)
}

func (s *System) Perpendicular(lineA, lineB HEntity) HConstraint {
	return s.AddConstraint(constraint.Perpendicular, entity.FreeIn3D, 0, 0, 0, lineA, lineB, 0, 0, false, false)
}

func (s *System) Tangent(curveA, curveB HEntity) HConstraint {
	return s.AddConstraint(constraint.CurveCurveTangent, entity.FreeIn3D, 0, 0, 0, curveA, curveB, 0, 0, false, false)
}

func (s *System) Horizontal(wp, line HEntity) HConstraint {
	return s.AddConstraint(constraint.Horizontal, wp, 0, 0, 0, line, 0, 0, 0, false, false)
}

func (s *System) Vertical(wp, line HEntity) HConstraint {
	return s.AddConstraint(constraint.Vertical, wp, 0, 0, 0, line, 0, 0, 0, false, false)
}

// Midpoint expresses "pt lies at line's midpoint" as a PtOnLine whose
// auxiliary t param is pre-created and marked Known at 0.5, so the solver
// excludes it from the unknowns (§4.5 step 1) and PtOnLine's own Behavior
// finds its ValP already set rather than allocating a free one.
func (s *System) Midpoint(wp HEntity, pt, line HEntity) HConstraint {
	c := s.PointOnLine(wp, pt, line)
	rec := s.Cons.MustFindByHandle(c)
	rec.ValP = s.Param.AddKnown(0.5).Handle()
	return c
}

func (s *System) Diameter(circleOrArc HEntity, val float64) HConstraint {
	return s.AddConstraint(constraint.Diameter, entity.FreeIn3D, val, 0, 0, circleOrArc, 0, 0, 0, false, false)
}

func (s *System) Symmetric(wp HEntity, ptA, ptB, line HEntity) HConstraint {
	return s.AddConstraint(constraint.Symmetric, wp, 0, ptA, ptB, line, 0, 0, 0, false, false)
}

func (s *System) EqualRadius(a, b HEntity) HConstraint {
	return s.AddConstraint(constraint.EqualRadius, entity.FreeIn3D, 0, 0, 0, a, b, 0, 0, false, false)
}

// Dragged marks pt as the dragged point for this solve: the WhereDragged
// behavior reads its live numeric cache as the pin target, so this only
// needs to record the constraint; RefreshActiveCache (run every solve) is
// what keeps that cache current.
func (s *System) Dragged(wp, pt HEntity) HConstraint {
	return s.AddConstraint(constraint.WhereDragged, wp, 0, pt, 0, 0, 0, 0, 0, false, false)
}

// SolveSketch solves one group and returns its outcome and the number of
// constraints the solver reported as redundant (§6.1's
// Slvs_SolveSketch(group, &rank, &dof, &badCount, calculateFaileds)). The
// degrees of freedom are not computed: dof is always 0.
func (s *System) SolveSketch(group HGroup) (result Result, dof int, badCount int) {
	report := solver.Solve(group, s.Ents, s.Param, s.Cons, s.Tuning)
	return fromSolverResult(report.Result), 0, len(report.Bad)
}

// Solve is §6.1's batch entry point: solve each group of groups in the
// order given, stopping at the first group whose solve doesn't report
// Okay.
func (s *System) Solve(groups []HGroup) (result Result, badCount int) {
	for _, g := range groups {
		r, _, bad := s.SolveSketch(g)
		if r != Okay {
			return r, bad
		}
	}
	return Okay, 0
}
