// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the symbolic-to-numeric constraint solve of
// §4.5: collect every equation a group's entities and constraints
// contribute, substitute away trivial param-param equalities, solve
// singleton equations directly, rank-test the remainder with Gram-Schmidt,
// run Newton-least-squares on what's left, and isolate any redundant
// equations the rank test flagged — the same Newton-over-a-global-residual
// shape as fem.Domain's implicit time-stepping loop, one level down from
// finite elements to individual symbolic equations.
package solver

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/expr"
	"github.com/solvespace/solvespace-sub002/handle"
)

// Result classifies how a Solve call ended.
type Result int

const (
	Okay Result = iota
	DidntConverge
	RedundantOkay
	RedundantDidntConverge
	TooManyUnknowns
)

func (r Result) String() string {
	switch r {
	case Okay:
		return "okay"
	case DidntConverge:
		return "didn't converge"
	case RedundantOkay:
		return "redundant, but okay"
	case RedundantDidntConverge:
		return "redundant, didn't converge"
	case TooManyUnknowns:
		return "too many unknowns"
	}
	return "?"
}

// MaxUnknowns bounds the unknown-param count a single Solve call will
// attempt, matching §4.5's stated system-size ceiling.
const MaxUnknowns = 1024

// Tuning holds the solver's numeric knobs, all defaulted by NewTuning to
// §4.5's stated constants.
type Tuning struct {
	ConvergeTolerance float64 // |F| below this is "converged"
	MaxIterations     int
	RankMagTolerance  float64 // squared row-norm floor below which a Gram-Schmidt row is rank-deficient
	DraggedWeight     float64 // weight applied to a dragged param's soft pin-in-place equation
}

// NewTuning returns §4.5's defaults: CONVERGE_TOLERANCE=1e-8,
// RANK_MAG_TOLERANCE=1e-4 (squared against the row norm), 50 iterations,
// dragged params weighted 1/20.
func NewTuning() Tuning {
	return Tuning{
		ConvergeTolerance: 1e-8,
		MaxIterations:     50,
		RankMagTolerance:  1e-4,
		DraggedWeight:     1.0 / 20.0,
	}
}

// Report is everything a caller needs after a Solve call: the outcome, how
// many Newton iterations it took, and which constraints (if any) a
// REDUNDANT_* result traces back to.
type Report struct {
	Result     Result
	Iterations int
	Bad        []handle.Constraint
}

// Solve regenerates group: it gathers every equation group's live entities
// and constraints contribute, reduces the unknown set by substitution and
// singleton-solving, Newton-least-squares the remainder, and on success
// writes the solved values back into pt and marks them Known (§4.5 step 7),
// refreshing ents' numeric cache to match.
func Solve(group handle.Group, ents *entity.Table, pt *entity.ParamTable, cons *constraint.Table, tuning Tuning) Report {
	sys := collect(group, ents, pt, cons)

	sys.substitute()
	if !sys.solveSingletons(tuning) {
		return Report{Result: DidntConverge}
	}

	if len(sys.unknowns) > MaxUnknowns {
		return Report{Result: TooManyUnknowns}
	}
	if len(sys.unknowns) == 0 {
		return Report{Result: Okay}
	}

	sys.addDraggedPins(pt, tuning)

	redundant := sys.rankDeficientEquations(pt, tuning)

	iters, converged := sys.newtonLeastSquares(pt, tuning)
	if converged {
		sys.commit(ents, pt)
		if len(redundant) > 0 {
			return Report{Result: RedundantOkay, Iterations: iters, Bad: sys.badConstraints(redundant)}
		}
		return Report{Result: Okay, Iterations: iters}
	}
	if len(redundant) > 0 {
		return Report{Result: RedundantDidntConverge, Iterations: iters, Bad: sys.badConstraints(redundant)}
	}
	return Report{Result: DidntConverge, Iterations: iters}
}

// system is the collected-and-reduced equation set a single Solve call
// works on.
type system struct {
	eqs      []*expr.Expr
	eqOwner  []handle.Constraint // parallel to eqs; zero for entity-contributed equations
	unknowns []handle.Param
	index    map[handle.Param]int // unknowns[index[p]] == p
	pt       *entity.ParamTable
}

func collect(group handle.Group, ents *entity.Table, pt *entity.ParamTable, cons *constraint.Table) *system {
	var eqs []*expr.Expr
	var owners []handle.Constraint

	ents.Each(func(e *entity.Entity) {
		if e.Group != group {
			return
		}
		for _, eq := range e.Equations(ents, pt) {
			eqs = append(eqs, eq)
			owners = append(owners, 0)
		}
	})
	cons.Each(func(c *constraint.Constraint) {
		if c.Group != group {
			return
		}
		for _, eq := range c.Equations(ents, pt) {
			eqs = append(eqs, eq)
			owners = append(owners, c.H)
		}
	})

	unknowns := unknownParams(eqs, pt)
	idx := make(map[handle.Param]int, len(unknowns))
	for i, p := range unknowns {
		idx[p] = i
	}
	return &system{eqs: eqs, eqOwner: owners, unknowns: unknowns, index: idx, pt: pt}
}

// unknownParams is every param the equation set references that the param
// table hasn't already marked Known or Substituted (§4.5 step 1).
func unknownParams(eqs []*expr.Expr, pt *entity.ParamTable) []handle.Param {
	var out []handle.Param
	for _, p := range expr.CollectParams(eqs) {
		rec := pt.MustFindByHandle(p)
		if rec.Known || rec.IsSubstituted() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// substitute finds every equation of the exact shape ParamA - ParamB and
// unifies B into A: B.Substituted = A, the equation itself drops out of
// the system (it is trivially satisfied once unified), and every surviving
// equation that mentioned B is rewritten to mention A instead (§4.5 step
// 2, testable property 3).
func (s *system) substitute() {
	kept := s.eqs[:0]
	keptOwners := s.eqOwner[:0]
	unify := make(map[handle.Param]handle.Param)

	for i, eq := range s.eqs {
		if a, b, ok := eq.AsParamEquality(); ok {
			root := resolve(unify, a)
			leaf := resolve(unify, b)
			if root != leaf {
				unify[leaf] = root
			}
			continue
		}
		kept = append(kept, eq)
		keptOwners = append(keptOwners, s.eqOwner[i])
	}
	s.eqs = kept
	s.eqOwner = keptOwners

	if len(unify) == 0 {
		return
	}
	for leaf, root := range unify {
		final := resolve(unify, root)
		for i, eq := range s.eqs {
			s.eqs[i] = expr.Substitute(eq, leaf, final)
		}
		s.pt.MustFindByHandle(leaf).Substituted = final
	}
	s.rebuildUnknowns(unify)
}

func resolve(unify map[handle.Param]handle.Param, p handle.Param) handle.Param {
	for {
		next, ok := unify[p]
		if !ok || next == p {
			return p
		}
		p = next
	}
}

func (s *system) rebuildUnknowns(unify map[handle.Param]handle.Param) {
	seen := make(map[handle.Param]bool)
	var out []handle.Param
	for _, p := range s.unknowns {
		r := resolve(unify, p)
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	s.unknowns = out
	s.index = make(map[handle.Param]int, len(out))
	for i, p := range out {
		s.index[p] = i
	}
}

// solveSingletons repeatedly looks for an equation touching exactly one
// remaining unknown, solves it directly by 1D Newton, marks that param
// Known, and drops the equation — the fixed-point pass of §4.5 step 3 that
// keeps e.g. a lone PT_PT_DISTANCE on an otherwise-fixed line out of the
// general Newton system. Returns false if a singleton equation's own 1D
// Newton fails to converge.
func (s *system) solveSingletons(tuning Tuning) bool {
	for {
		progressed := false
		kept := s.eqs[:0]
		keptOwners := s.eqOwner[:0]
		for i, eq := range s.eqs {
			p, ok := s.soleUnknown(eq)
			if !ok {
				kept = append(kept, eq)
				keptOwners = append(keptOwners, s.eqOwner[i])
				continue
			}
			if !solve1D(eq, p, s.pt, tuning) {
				return false
			}
			progressed = true
			s.markKnown(p)
		}
		s.eqs = kept
		s.eqOwner = keptOwners
		if !progressed {
			return true
		}
	}
}

func (s *system) soleUnknown(eq *expr.Expr) (handle.Param, bool) {
	var found handle.Param
	count := 0
	for _, p := range eq.Params() {
		if _, isUnknown := s.index[p]; isUnknown {
			count++
			found = p
			if count > 1 {
				return 0, false
			}
		}
	}
	if count == 1 {
		return found, true
	}
	return 0, false
}

func (s *system) markKnown(p handle.Param) {
	i, ok := s.index[p]
	if !ok {
		return
	}
	s.unknowns = append(s.unknowns[:i], s.unknowns[i+1:]...)
	s.index = make(map[handle.Param]int, len(s.unknowns))
	for j, q := range s.unknowns {
		s.index[q] = j
	}
}

// solve1D Newton-solves eq(p)=0 for the single unknown p, writing the
// result directly into pt's live Param and marking it Known on success.
// Every other leaf eq references is already Known, so pt itself is a valid
// expr.ParamLookup throughout the iteration.
func solve1D(eq *expr.Expr, p handle.Param, pt *entity.ParamTable, tuning Tuning) bool {
	rec := pt.MustFindByHandle(p)
	deriv := eq.PartialWrt(p)
	x := rec.Value()
	for i := 0; i < tuning.MaxIterations; i++ {
		rec.SetValue(x)
		f := eq.Eval(pt)
		if math.Abs(f) < tuning.ConvergeTolerance {
			rec.SetValue(x)
			rec.Known = true
			return true
		}
		df := deriv.Eval(pt)
		if df == 0 {
			return false
		}
		x -= f / df
	}
	return false
}

// addDraggedPins adds one soft equation per remaining unknown whose Param
// is marked Dragged: (p - p's current value) * DraggedWeight. Weighting
// the equation down (rather than marking p Known) lets real constraints
// override the drag instead of fighting it to a standstill (§4.5's
// dragged-param weighting).
func (s *system) addDraggedPins(pt *entity.ParamTable, tuning Tuning) {
	for _, p := range s.unknowns {
		rec := pt.MustFindByHandle(p)
		if !rec.Dragged {
			continue
		}
		target := rec.Value()
		pin := expr.Mul(expr.Sub(expr.ParamRef(p), expr.Const1(target)), expr.Const1(tuning.DraggedWeight))
		s.eqs = append(s.eqs, pin)
		s.eqOwner = append(s.eqOwner, 0)
	}
}

// rankDeficientEquations Gram-Schmidt-orthogonalizes the current Jacobian's
// rows in equation order; a row whose squared residual after removing its
// projection onto every prior row falls below RankMagTolerance squared
// contributes nothing a preceding equation didn't already pin down, and is
// reported redundant (§4.5 step 4).
func (s *system) rankDeficientEquations(pt *entity.ParamTable, tuning Tuning) []int {
	if len(s.unknowns) == 0 {
		return nil
	}
	var basis [][]float64
	var redundant []int
	floor := tuning.RankMagTolerance * tuning.RankMagTolerance
	for i, eq := range s.eqs {
		row := make([]float64, len(s.unknowns))
		for j, p := range s.unknowns {
			row[j] = eq.PartialWrt(p).Eval(pt)
		}
		for _, b := range basis {
			bb := dot(b, b)
			if bb == 0 {
				continue
			}
			la.VecAdd(row, -dot(row, b)/bb, b)
		}
		if dot(row, row) < floor {
			redundant = append(redundant, i)
			continue
		}
		basis = append(basis, row)
	}
	return redundant
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// newtonLeastSquares is §4.5 step 5: build the residual and Jacobian of
// s.eqs over s.unknowns, step by the pseudo-inverse solution (la.MatInvG
// tolerates the rectangular, possibly rank-deficient Jacobians a redundant
// system produces), and repeat until the residual norm drops below
// ConvergeTolerance or MaxIterations is spent.
func (s *system) newtonLeastSquares(pt *entity.ParamTable, tuning Tuning) (int, bool) {
	m, n := len(s.eqs), len(s.unknowns)
	if m == 0 {
		return 0, true
	}

	residual := func() []float64 {
		f := make([]float64, m)
		for i, eq := range s.eqs {
			f[i] = eq.Eval(pt)
		}
		return f
	}

	for iter := 0; iter < tuning.MaxIterations; iter++ {
		f := residual()
		if la.VecNorm(f) < tuning.ConvergeTolerance {
			return iter, true
		}

		jac := la.MatAlloc(m, n)
		for i, eq := range s.eqs {
			for j, p := range s.unknowns {
				jac[i][j] = eq.PartialWrt(p).Eval(pt)
			}
		}
		jacInv := la.MatAlloc(n, m)
		if err := la.MatInvG(jacInv, jac, 1e-10); err != nil {
			return iter, false
		}

		delta := make([]float64, n)
		la.MatVecMul(delta, -1, jacInv, f)
		for j, p := range s.unknowns {
			rec := pt.MustFindByHandle(p)
			rec.SetValue(rec.Value() + delta[j])
		}
	}

	return tuning.MaxIterations, la.VecNorm(residual()) < tuning.ConvergeTolerance
}

// commit marks every solved unknown Known, gives every substituted param
// its survivor's value, and refreshes ents' numeric cache from pt (§4.5
// step 7).
func (s *system) commit(ents *entity.Table, pt *entity.ParamTable) {
	for _, p := range s.unknowns {
		pt.MustFindByHandle(p).Known = true
	}
	pt.Each(func(p *entity.Param) {
		if p.IsSubstituted() {
			p.SetValue(pt.MustFindByHandle(p.Substituted).Value())
		}
	})
	ents.RefreshActiveCache(pt)
}

// badConstraints maps a set of redundant-equation indices back to the
// distinct constraint handles that contributed them, dropping the
// zero-handle entries entity-contributed equations carry.
func (s *system) badConstraints(redundantEqs []int) []handle.Constraint {
	seen := make(map[handle.Constraint]bool)
	var out []handle.Constraint
	for _, i := range redundantEqs {
		h := s.eqOwner[i]
		if h == 0 || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

