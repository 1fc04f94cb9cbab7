// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"github.com/solvespace/solvespace-sub002/handle"
)

// Params returns every distinct PARAM/PARAM_PTR handle reachable from e, in
// first-encountered order. The solver uses this to turn a collected
// equation list into the unknown-variable set of §4.5 step 1, the same
// traversal shape DependsOn/PartialWrt use.
func (e *Expr) Params() []handle.Param {
	seen := make(map[handle.Param]bool)
	var out []handle.Param
	var walk func(n *Expr)
	walk = func(n *Expr) {
		if n == nil {
			return
		}
		switch n.Op {
		case OpParam:
			if !seen[n.Param] {
				seen[n.Param] = true
				out = append(out, n.Param)
			}
		case OpParamPtr:
			h := n.Ptr.Handle()
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		default:
			walk(n.A)
			walk(n.B)
		}
	}
	walk(e)
	return out
}

// CollectParams unions Params over every equation in eqs, still in
// first-encountered order.
func CollectParams(eqs []*Expr) []handle.Param {
	seen := make(map[handle.Param]bool)
	var out []handle.Param
	for _, e := range eqs {
		for _, p := range e.Params() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// Substitute returns a copy of e with every PARAM/PARAM_PTR leaf referring
// to from rewritten to refer to to instead (§4.5 step 2: once b is unified
// into a, every equation that mentioned b must read a's value instead).
func Substitute(e *Expr, from, to handle.Param) *Expr {
	if e == nil {
		return nil
	}
	switch e.Op {
	case OpConstant:
		return Const1(e.Const)
	case OpVariable:
		return Variable(e.Var)
	case OpParam:
		if e.Param == from {
			return ParamRef(to)
		}
		return ParamRef(e.Param)
	case OpParamPtr:
		if e.Ptr.Handle() == from {
			return ParamRef(to)
		}
		return &Expr{Op: OpParamPtr, Ptr: e.Ptr, hash: e.hash}
	}
	out := &Expr{Op: e.Op}
	out.A = Substitute(e.A, from, to)
	if e.B != nil {
		out.B = Substitute(e.B, from, to)
	}
	out.hash = orHash(out.A) | orHash(out.B)
	return out
}

// AsParamEquality reports whether e is exactly ParamA - ParamB (in either
// operand order), the trivial-equality shape §4.5 step 2 looks for to unify
// two params into one instead of carrying both through Newton iteration.
func (e *Expr) AsParamEquality() (a, b handle.Param, ok bool) {
	if e.Op != OpSub {
		return 0, 0, false
	}
	if e.A.Op == OpParam && e.B.Op == OpParam {
		return e.A.Param, e.B.Param, true
	}
	return 0, 0, false
}
