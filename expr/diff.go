// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"github.com/solvespace/solvespace-sub002/handle"
)

// DependsOn reports whether e references param p anywhere in its tree,
// short-circuited by the 61-bit param-set hash before the recursive scan
// (§4.1): if p's bit isn't set in e.hash, e cannot depend on p and the scan
// is skipped entirely.
func (e *Expr) DependsOn(p handle.Param) bool {
	if e.hash&paramBit(p) == 0 {
		return false
	}
	switch e.Op {
	case OpConstant, OpVariable:
		return false
	case OpParam:
		return e.Param == p
	case OpParamPtr:
		return e.Ptr.Handle() == p
	default:
		if e.A != nil && e.A.DependsOn(p) {
			return true
		}
		if e.B != nil && e.B.DependsOn(p) {
			return true
		}
		return false
	}
}

// PartialWrt returns d(e)/d(p), built symbolically and recursively. Nodes
// whose hash proves they don't depend on p fold straight to the zero
// constant without recursing, the same short-circuit DependsOn uses.
func (e *Expr) PartialWrt(p handle.Param) *Expr {
	if !e.DependsOn(p) {
		return Const1(0)
	}
	switch e.Op {
	case OpConstant, OpVariable:
		return Const1(0)
	case OpParam:
		if e.Param == p {
			return Const1(1)
		}
		return Const1(0)
	case OpParamPtr:
		if e.Ptr.Handle() == p {
			return Const1(1)
		}
		return Const1(0)
	case OpAdd:
		return Add(e.A.PartialWrt(p), e.B.PartialWrt(p))
	case OpSub:
		return Sub(e.A.PartialWrt(p), e.B.PartialWrt(p))
	case OpMul:
		// product rule: d(ab) = a'b + ab'
		return Add(Mul(e.A.PartialWrt(p), e.B), Mul(e.A, e.B.PartialWrt(p)))
	case OpDiv:
		// quotient rule: d(a/b) = (a'b - ab') / b^2
		return Div(Sub(Mul(e.A.PartialWrt(p), e.B), Mul(e.A, e.B.PartialWrt(p))), Square(e.B))
	case OpNeg:
		return Neg(e.A.PartialWrt(p))
	case OpSqrt:
		// d(sqrt(a)) = a' / (2 sqrt(a))
		return Div(e.A.PartialWrt(p), Mul(Const1(2), Sqrt(e.A)))
	case OpSquare:
		// d(a^2) = 2 a a'
		return Mul(Const1(2), Mul(e.A, e.A.PartialWrt(p)))
	case OpSin:
		return Mul(Cos(e.A), e.A.PartialWrt(p))
	case OpCos:
		return Neg(Mul(Sin(e.A), e.A.PartialWrt(p)))
	case OpAsin:
		// d(asin(a)) = a' / sqrt(1 - a^2)
		return Div(e.A.PartialWrt(p), Sqrt(Sub(Const1(1), Square(e.A))))
	case OpAcos:
		return Neg(Div(e.A.PartialWrt(p), Sqrt(Sub(Const1(1), Square(e.A)))))
	}
	panic("expr: PartialWrt of unknown op")
}

// FoldConstants returns a CONSTANT leaf equal to e's value if e has no
// dependency on any param; otherwise a leaf is returned as it is and an
// inner node is returned as a new node over its folded children. Sub-trees are
// folded bottom-up first so a partially-constant expression collapses as
// far as it can (e.g. (2+3)*p folds to 5*p, not left as (2+3)*p).
func (e *Expr) FoldConstants() *Expr {
	switch e.Op {
	case OpConstant, OpVariable:
		return e
	case OpParam, OpParamPtr:
		return e
	}
	folded := &Expr{Op: e.Op, hash: e.hash}
	if e.A != nil {
		folded.A = e.A.FoldConstants()
	}
	if e.B != nil {
		folded.B = e.B.FoldConstants()
	}
	if isConstLeaf(folded.A) && (folded.B == nil || isConstLeaf(folded.B)) {
		return Const1(folded.Eval(nil))
	}
	return folded
}

func isConstLeaf(e *Expr) bool { return e != nil && e.Op == OpConstant }

// DeepCopyWithParamsAsPointers returns a tree in which every PARAM leaf is
// rewritten to a PARAM_PTR resolved through resolve, a hot-path optimization
// that avoids a handle lookup per evaluation during repeated solver
// iterations (§4.1).
func (e *Expr) DeepCopyWithParamsAsPointers(resolve func(handle.Param) ParamValue) *Expr {
	switch e.Op {
	case OpConstant:
		return Const1(e.Const)
	case OpParam:
		return ParamPtrRef(resolve(e.Param))
	case OpParamPtr:
		return ParamPtrRef(e.Ptr)
	case OpVariable:
		return Variable(e.Var)
	}
	out := &Expr{Op: e.Op}
	if e.A != nil {
		out.A = e.A.DeepCopyWithParamsAsPointers(resolve)
	}
	if e.B != nil {
		out.B = e.B.DeepCopyWithParamsAsPointers(resolve)
	}
	out.hash = orHash(out.A) | orHash(out.B)
	return out
}

func orHash(e *Expr) uint64 {
	if e == nil {
		return 0
	}
	return e.hash
}
