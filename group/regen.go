// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"math"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/meshbsp"
	"github.com/solvespace/solvespace-sub002/polyline"
	"github.com/solvespace/solvespace-sub002/ratpoly"
	"github.com/solvespace/solvespace-sub002/shell"
	"github.com/solvespace/solvespace-sub002/shellbool"
	"github.com/solvespace/solvespace-sub002/solver"
)

// DefaultMergeTolerance is MergeTolerance's starting value.
const DefaultMergeTolerance = 1e-4

// MergeTolerance is the coincident-surface merge tolerance Regenerate
// passes to shell.MergeCoincidentSurfaces (§4.6). A caller that has loaded
// a config.Settings should set this from its ChordTolerance before
// regenerating, since the two measure the same "how close counts as the
// same surface" notion at sketch-chord and solid-merge scale respectively;
// left untouched it defaults to DefaultMergeTolerance.
var MergeTolerance = DefaultMergeTolerance

// collectEdges turns every visible, non-construction curve entity owned by
// group into polyline edges, pairing each bezier's own flattened points
// consecutively (never across two different beziers, which would invent a
// spurious zero-length edge at a shared endpoint) (§4.6 step 3).
func collectEdges(ents *entity.Table, group handle.Group) []polyline.Edge {
	var edges []polyline.Edge
	ents.Each(func(e *entity.Entity) {
		if e.Group != group || e.Construction || !e.ActVisible || !e.HasBezierCurves() {
			return
		}
		for _, b := range e.GenerateBezierCurves(ents) {
			pts := bezierPolyline(b)
			for i := 0; i+1 < len(pts); i++ {
				edges = append(edges, polyline.Edge{A: pts[i], B: pts[i+1]})
			}
		}
	})
	return edges
}

const segmentsPerCurve = 16

// bezierPolyline flattens one bezier into a point chain, degree-1 curves as
// their two endpoints and higher degree curves chorded at a fixed
// resolution, mirroring entity.GenerateEdges's per-curve approximation.
func bezierPolyline(b shell.SBezier) []shell.Vec3 {
	if b.Deg == 1 {
		return []shell.Vec3{b.Start(), b.Finish()}
	}
	pts := make([]shell.Vec3, 0, segmentsPerCurve+1)
	for i := 0; i <= segmentsPerCurve; i++ {
		t := float64(i) / float64(segmentsPerCurve)
		pts = append(pts, ratpoly.Eval(b, t))
	}
	return pts
}

// booleanOpToMeshOp maps a group's selected boolean to meshbsp's Op; both
// enumerate the same four operations of §4.8-4.9 but are declared in
// separate packages so group need not import meshbsp's naming into its own
// kind vocabulary.
func booleanOpToMeshOp(op BooleanOp) meshbsp.Op {
	switch op {
	case BooleanDifference:
		return meshbsp.OpDifference
	case BooleanIntersection:
		return meshbsp.OpIntersection
	case BooleanAssemble:
		return meshbsp.OpAssemble
	default:
		return meshbsp.OpUnion
	}
}

// shellBooleanOp maps a group's selected boolean to shellbool's Op, the
// exact-shell counterpart of booleanOpToMeshOp's triangle-soup mapping
// above (§4.9).
func shellBooleanOp(op BooleanOp) shellbool.Op {
	switch op {
	case BooleanDifference:
		return shellbool.Difference
	case BooleanIntersection:
		return shellbool.Intersection
	case BooleanAssemble:
		return shellbool.Assemble
	default:
		return shellbool.Union
	}
}

// isDimension reports whether kind is a numeric-dimension constraint, the
// set AllDimsReference (§6.4) applies to: a displayed measurement rather
// than a topological relation.
func isDimension(kind constraint.Kind) bool {
	switch kind {
	case constraint.PtPtDistance, constraint.PtLineDistance, constraint.Diameter, constraint.Angle:
		return true
	}
	return false
}

// solveGroup runs solver.Solve for g honoring its per-group configuration
// overrides (§6.4). RelaxConstraints and AllDimsReference work by toggling
// Reference on the affected constraints for the duration of this one solve
// and restoring it afterward, reusing Constraint.Equations' existing
// Reference check rather than teaching solver.collect a second filtering
// rule. AllowRedundant folds a Redundant* result back to its non-redundant
// counterpart and drops the Bad list, suppressing the "redundant
// constraint" diagnosis entirely for this group.
func solveGroup(g *Group, ents *entity.Table, pt *entity.ParamTable, cons *constraint.Table, tuning solver.Tuning) solver.Report {
	var suppressed []*constraint.Constraint
	if g.RelaxConstraints || g.AllDimsReference {
		cons.Each(func(c *constraint.Constraint) {
			if c.Group != g.H || c.Reference {
				return
			}
			switch {
			case g.RelaxConstraints && c.Type != constraint.PointsCoincident:
				c.Reference = true
				suppressed = append(suppressed, c)
			case g.AllDimsReference && isDimension(c.Type):
				c.Reference = true
				suppressed = append(suppressed, c)
			}
		})
	}

	report := solver.Solve(g.H, ents, pt, cons, tuning)

	for _, c := range suppressed {
		c.Reference = false
	}

	if g.AllowRedundant {
		switch report.Result {
		case solver.RedundantOkay:
			report.Result = solver.Okay
			report.Bad = nil
		case solver.RedundantDidntConverge:
			report.Result = solver.DidntConverge
			report.Bad = nil
		}
	}
	return report
}

// Regenerate runs the full per-group pipeline of §4.6: solve, refresh
// caches, assemble this group's sketch into loops, build thisShell/thisMesh
// per Kind, boolean-combine with prev's running geometry, optionally merge
// coincident surfaces, and mark the result dirty. prev is nil for the first
// group in a sketch (its running geometry is simply its own).
func Regenerate(g *Group, prev *Group, ents *entity.Table, pt *entity.ParamTable, cons *constraint.Table, tuning solver.Tuning) {
	g.SolveReport = solveGroup(g, ents, pt, cons, tuning)
	ents.RefreshActiveCache(pt)

	var tris []meshbsp.Triangle
	switch g.Kind {
	case Extrude:
		RemapExtrude(g, ents, pt)
		tris = g.buildExtrudeTris(ents)
	case Lathe, Revolve, Helix:
		tris = g.buildAxisSweepTris(ents, pt)
	case Translate:
		RemapStepAndRepeat(g, ents, pt, false)
		tris = g.buildStepAndRepeatTrisParallel(ents, true)
	case Rotate:
		RemapStepAndRepeat(g, ents, pt, true)
		tris = g.buildStepAndRepeatTrisParallel(ents, true)
	default:
		// DRAWING_3D/DRAWING_WORKPLANE/LINKED contribute no swept solid of
		// their own; their sketch geometry still assembles into loops
		// (recorded in PolylineStatus) but thisMesh stays empty.
		g.assembleSketchLoops(ents)
	}

	if g.Kind == Extrude || g.Kind == Lathe || g.Kind == Revolve || g.Kind == Helix ||
		g.Kind == Translate || g.Kind == Rotate {
		g.assembleSketchLoops(ents)
	}

	g.ThisMesh = meshbsp.NewTMesh()
	g.ThisMesh.Tris = tris
	g.ThisShell = meshbsp.BuildShell(tris)

	if prev == nil || prev.RunningMesh == nil {
		g.RunningMesh = g.ThisMesh
		g.RunningShell = g.ThisShell
	} else {
		result := meshbsp.CombineMeshes(prev.RunningMesh, g.ThisMesh, booleanOpToMeshOp(g.Op))
		g.RunningMesh = result.Mesh
		if sh, ok := shellbool.Combine(prev.RunningShell, g.ThisShell, shellBooleanOp(g.Op)); ok && !sh.BooleanFailed {
			g.RunningShell = sh
		} else {
			g.RunningShell = meshbsp.BuildShell(result.Mesh.Tris)
		}
	}

	if g.RunningShell != nil {
		g.RunningShell.MergeCoincidentSurfaces(MergeTolerance)
	}

	g.Dirty = true
}

// assembleSketchLoops runs step 3 of §4.6 in isolation: collect edges,
// assemble, and record the classification without touching mesh/shell
// state, used both standalone (for sketch-only groups) and alongside the
// swept-solid Kinds above (a LATHE profile must still be a valid closed,
// coplanar, non-self-intersecting loop even though its solid comes from the
// axis sweep, not the loop itself).
func (g *Group) assembleSketchLoops(ents *entity.Table) {
	edges := collectEdges(ents, g.Source)
	if len(edges) == 0 {
		edges = collectEdges(ents, g.H)
	}
	a := polyline.Assemble(edges, polyline.CoplanarTolerance)
	g.PolylineStatus = a.Status
}

// buildExtrudeTris walks the sketch loops and extrudes each one by the
// group's translation, reusing Remap's bottom/top point pairing implicitly
// through the loop vertices themselves (the mesh is built straight from
// solved coordinates, independent of the symbolic remap, which exists for
// downstream sketches that reference EXTRUDE's faces/edges by entity
// handle rather than for mesh generation itself).
func (g *Group) buildExtrudeTris(ents *entity.Table) []meshbsp.Triangle {
	loops := sketchLoops(ents, g.Source)
	dx, dy, dz := g.Param[0], g.Param[1], g.Param[2]
	offset := shell.Vec3{X: dx, Y: dy, Z: dz}
	var tris []meshbsp.Triangle
	for _, loop := range loops {
		tris = append(tris, extrudeMesh(loop, offset).Tris...)
	}
	return tris
}

// buildAxisSweepTris handles LATHE/REVOLVE/HELIX: resolves the swept axis
// from PredefOrigin/PredefEntityB's solved coordinates, then sweeps every
// sketch loop around it.
func (g *Group) buildAxisSweepTris(ents *entity.Table, pt *entity.ParamTable) []meshbsp.Triangle {
	origin, dir := g.resolveAxis(ents)
	RemapAxisSweep(g, ents, pt, origin.X, origin.Y, origin.Z, dir.X, dir.Y, dir.Z, g.sweepAngle(), g.axialPitch())

	loops := sketchLoops(ents, g.Source)
	var tris []meshbsp.Triangle
	for _, loop := range loops {
		tris = append(tris, revolveMesh(loop, origin, dir, g.sweepAngle(), g.axialPitch()).Tris...)
	}
	return tris
}

// buildStepAndRepeatTris appends one copy of the sketch loops' fan
// triangulation per step, since TRANSLATE/ROTATE produce Copies disjoint
// solids rather than one swept solid.
func (g *Group) buildStepAndRepeatTris(ents *entity.Table) []meshbsp.Triangle {
	loops := sketchLoops(ents, g.Source)
	var tris []meshbsp.Triangle
	for i := 0; i < g.Copies; i++ {
		n := float64(i)
		for _, loop := range loops {
			var placed []shell.Vec3
			if g.Kind == Rotate {
				origin := shell.Vec3{X: g.Param[0], Y: g.Param[1], Z: g.Param[2]}
				dir := shell.Vec3{X: g.Param[3], Y: g.Param[4], Z: g.Param[5]}
				placed = rotateLoop(loop, origin, dir, g.Param[6]*n)
			} else {
				placed = translateLoop(loop, shell.Vec3{X: g.Param[0] * n, Y: g.Param[1] * n, Z: g.Param[2] * n})
			}
			tris = append(tris, fanTriangulate(placed, false)...)
		}
	}
	return tris
}

func reverseLoop(loop []shell.Vec3) []shell.Vec3 {
	out := make([]shell.Vec3, len(loop))
	for i, p := range loop {
		out[len(loop)-1-i] = p
	}
	return out
}

// sweepAngle returns LATHE/REVOLVE/HELIX's total sweep in radians: LATHE
// always turns a full circle, REVOLVE uses the group's own quarter-turn
// param (§4.6's "4*param3"), HELIX shares REVOLVE's angle param.
func (g *Group) sweepAngle() float64 {
	if g.Kind == Lathe {
		return 2 * math.Pi
	}
	return 4 * g.Param[3]
}

// axialPitch is zero except for HELIX.
func (g *Group) axialPitch() float64 {
	if g.Kind == Helix {
		return g.Param[7]
	}
	return 0
}

// resolveAxis reads the swept axis's solved origin point and direction
// (a second point, giving origin->point as the axis direction) out of the
// entity table's numeric cache.
func (g *Group) resolveAxis(ents *entity.Table) (origin, dir shell.Vec3) {
	o := ents.MustFindByHandle(g.PredefOrigin)
	b := ents.MustFindByHandle(g.PredefEntityB)
	origin = shell.Vec3{X: o.ActPoint[0], Y: o.ActPoint[1], Z: o.ActPoint[2]}
	bp := shell.Vec3{X: b.ActPoint[0], Y: b.ActPoint[1], Z: b.ActPoint[2]}
	dir = bp.Sub(origin).Normalize()
	return origin, dir
}

// sketchLoops assembles src's curve entities into closed loops and returns
// only the vertex lists (discarding the classification, which
// assembleSketchLoops already records); an empty result yields no mesh
// geometry rather than a panic, so a not-yet-closed sketch simply
// regenerates to an empty solid.
func sketchLoops(ents *entity.Table, src handle.Group) [][]shell.Vec3 {
	a := polyline.Assemble(collectEdges(ents, src), polyline.CoplanarTolerance)
	if a.Status != polyline.Good {
		return nil
	}
	return a.Loops
}
