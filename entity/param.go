// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entity implements the parametric geometric primitives (§3.2,
// §4.3): points, normals, distances, workplanes, lines, cubics, circles,
// arcs, text, and images, each generating the equations and numeric values
// that realize it.
package entity

import (
	"github.com/solvespace/solvespace-sub002/handle"
)

// Param is one scalar unknown (§3.2).
type Param struct {
	H           handle.Param
	val         float64
	Known       bool         // set by the solver once this param has a value
	Free        bool         // set during degree-of-freedom analysis
	Substituted handle.Param // nonzero if unified into another param (§4.5 step 2)
	Dragged     bool         // true while the user interactively drags this param
}

func (p *Param) Handle() handle.Param     { return p.H }
func (p *Param) SetHandle(h handle.Param) { p.H = h }
func (p *Param) Value() float64           { return p.val }
func (p *Param) SetValue(v float64)       { p.val = v }

// IsSubstituted reports whether this param was eliminated in favor of
// another during solver substitution (§4.5 step 2, testable property 3).
func (p *Param) IsSubstituted() bool { return p.Substituted != 0 }

func (p *Param) DeepCopy() *Param {
	cp := *p
	return &cp
}

// ParamTable is the ordered, handle-keyed collection of every Param in a
// sketch (§4.2).
type ParamTable struct {
	*handle.Table[handle.Param, *Param]
}

func NewParamTable() *ParamTable {
	return &ParamTable{handle.NewTable[handle.Param, *Param]()}
}

// ValueOf implements expr.ParamLookup, resolving PARAM leaves by handle
// lookup (the non-hot-path route; see Param as expr.ParamValue for the
// PARAM_PTR hot path, §4.1).
func (t *ParamTable) ValueOf(p handle.Param) float64 {
	return t.MustFindByHandle(p).Value()
}

// Resolve returns the live *Param for p, suitable for
// expr.DeepCopyWithParamsAsPointers's resolve callback.
func (t *ParamTable) Resolve(p handle.Param) *Param {
	return t.MustFindByHandle(p)
}

// AddFree allocates a new free (unknown) param with the given initial
// value.
func (t *ParamTable) AddFree(value float64) *Param {
	p := &Param{}
	p.SetValue(value)
	t.Add(p)
	return p
}

// AddKnown allocates a param already marked Known, for values a group sets
// directly rather than leaving for the solver (e.g. a step-and-repeat
// copy's translation offset, §4.6).
func (t *ParamTable) AddKnown(value float64) *Param {
	p := t.AddFree(value)
	p.Known = true
	return p
}
