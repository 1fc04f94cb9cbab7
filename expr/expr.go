// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements the small immutable symbolic expression trees that
// back entity and constraint equations (§3.5, §4.1): build, differentiate,
// fold, and evaluate symbolic expressions over named parameters.
package expr

import (
	"fmt"
	"math"

	"github.com/solvespace/solvespace-sub002/handle"
)

// Op identifies the kind of an Expr node.
type Op int

const (
	OpConstant Op = iota
	OpParam
	OpParamPtr
	OpVariable
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpSqrt
	OpSquare
	OpSin
	OpCos
	OpAsin
	OpAcos
)

// divergentMagnitude is the magnitude used when evaluation would divide by zero;
// it is large enough to be caught by the solver's divergence tests but never
// panics or raises a runtime error (§4.1).
const divergentMagnitude = 1e20

// ParamValue is implemented by anything expr can read a live numeric value
// from via a PARAM_PTR leaf — normally *entity.Param. Keeping this as a
// small interface (rather than importing the entity package) avoids a
// handle/expr/entity import cycle, per spec.md §9's handle-table discipline.
type ParamValue interface {
	Handle() handle.Param
	Value() float64
}

// Expr is an immutable expression tree node. Leaves carry their payload in
// Const/Param/Var; inner nodes carry up to two children in A/B (unary ops
// use only A).
type Expr struct {
	Op    Op
	Const float64
	Param handle.Param
	Ptr   ParamValue
	Var   string
	A, B  *Expr

	// hash is a 61-bit Bloom-style summary of every PARAM/PARAM_PTR handle
	// reachable from this node, used to short-circuit DependsOn and to skip
	// symbolic differentiation steps that are certainly zero (§3.5, §4.1).
	hash uint64
}

func paramBit(p handle.Param) uint64 {
	return 1 << (uint64(p) % 61)
}

func leaf(op Op) *Expr { return &Expr{Op: op} }

// Const1 builds a CONSTANT leaf.
func Const1(v float64) *Expr { return &Expr{Op: OpConstant, Const: v} }

// ParamRef builds a PARAM leaf referring to a handle resolved later through
// a param table.
func ParamRef(p handle.Param) *Expr {
	return &Expr{Op: OpParam, Param: p, hash: paramBit(p)}
}

// ParamPtrRef builds a PARAM_PTR leaf holding a direct pointer into a
// specific param table, the hot-path optimization noted in §4.1 that avoids
// a handle lookup per evaluation.
func ParamPtrRef(pv ParamValue) *Expr {
	return &Expr{Op: OpParamPtr, Ptr: pv, hash: paramBit(pv.Handle())}
}

// Variable builds a free VARIABLE leaf, the node Parse produces for each
// bare identifier in a user-entered formula.
func Variable(name string) *Expr { return &Expr{Op: OpVariable, Var: name} }

func bin(op Op, a, b *Expr) *Expr { return &Expr{Op: op, A: a, B: b, hash: a.hash | b.hash} }
func un(op Op, a *Expr) *Expr     { return &Expr{Op: op, A: a, hash: a.hash} }

func Add(a, b *Expr) *Expr    { return bin(OpAdd, a, b) }
func Sub(a, b *Expr) *Expr    { return bin(OpSub, a, b) }
func Mul(a, b *Expr) *Expr    { return bin(OpMul, a, b) }
func Div(a, b *Expr) *Expr    { return bin(OpDiv, a, b) }
func Neg(a *Expr) *Expr       { return un(OpNeg, a) }
func Sqrt(a *Expr) *Expr      { return un(OpSqrt, a) }
func Square(a *Expr) *Expr    { return un(OpSquare, a) }
func Sin(a *Expr) *Expr       { return un(OpSin, a) }
func Cos(a *Expr) *Expr       { return un(OpCos, a) }
func Asin(a *Expr) *Expr      { return un(OpAsin, a) }
func Acos(a *Expr) *Expr      { return un(OpAcos, a) }

// ParamLookup resolves a PARAM leaf's handle.Param to its current value;
// entity.ParamTable implements this.
type ParamLookup interface {
	ValueOf(p handle.Param) float64
}

// Eval evaluates the tree to a double. lookup may be nil if the tree
// contains no PARAM leaves (only PARAM_PTR/CONSTANT/VARIABLE).
// Eval never returns an error: an ill-formed tree (e.g. a PARAM leaf with
// lookup == nil) is a programmer bug, not a runtime condition (§4.1), and
// is reported by panicking rather than through a result value.
func (e *Expr) Eval(lookup ParamLookup) float64 {
	switch e.Op {
	case OpConstant:
		return e.Const
	case OpParam:
		if lookup == nil {
			panic("expr: Eval of PARAM leaf requires a non-nil ParamLookup")
		}
		return lookup.ValueOf(e.Param)
	case OpParamPtr:
		return e.Ptr.Value()
	case OpVariable:
		panic("expr: Eval of a free VARIABLE leaf \"" + e.Var + "\" is a bug")
	case OpAdd:
		return e.A.Eval(lookup) + e.B.Eval(lookup)
	case OpSub:
		return e.A.Eval(lookup) - e.B.Eval(lookup)
	case OpMul:
		return e.A.Eval(lookup) * e.B.Eval(lookup)
	case OpDiv:
		num := e.A.Eval(lookup)
		den := e.B.Eval(lookup)
		if den == 0 {
			// Division by zero evaluates to a large finite value, caught by
			// the solver's NaN/divergence tests rather than by exception
			// (§4.1).
			if num < 0 {
				return -divergentMagnitude
			}
			return divergentMagnitude
		}
		return num / den
	case OpNeg:
		return -e.A.Eval(lookup)
	case OpSqrt:
		v := e.A.Eval(lookup)
		if v < 0 {
			return divergentMagnitude
		}
		return math.Sqrt(v)
	case OpSquare:
		v := e.A.Eval(lookup)
		return v * v
	case OpSin:
		return math.Sin(e.A.Eval(lookup))
	case OpCos:
		return math.Cos(e.A.Eval(lookup))
	case OpAsin:
		return math.Asin(clampUnit(e.A.Eval(lookup)))
	case OpAcos:
		return math.Acos(clampUnit(e.A.Eval(lookup)))
	}
	panic(fmt.Sprintf("expr: unknown op %d", e.Op))
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (e *Expr) String() string {
	switch e.Op {
	case OpConstant:
		return fmt.Sprintf("%g", e.Const)
	case OpParam:
		return fmt.Sprintf("p%d", uint32(e.Param))
	case OpParamPtr:
		return fmt.Sprintf("*p%d", uint32(e.Ptr.Handle()))
	case OpVariable:
		return e.Var
	case OpAdd:
		return fmt.Sprintf("(%s + %s)", e.A, e.B)
	case OpSub:
		return fmt.Sprintf("(%s - %s)", e.A, e.B)
	case OpMul:
		return fmt.Sprintf("(%s * %s)", e.A, e.B)
	case OpDiv:
		return fmt.Sprintf("(%s / %s)", e.A, e.B)
	case OpNeg:
		return fmt.Sprintf("(-%s)", e.A)
	case OpSqrt:
		return fmt.Sprintf("sqrt(%s)", e.A)
	case OpSquare:
		return fmt.Sprintf("(%s)^2", e.A)
	case OpSin:
		return fmt.Sprintf("sin(%s)", e.A)
	case OpCos:
		return fmt.Sprintf("cos(%s)", e.A)
	case OpAsin:
		return fmt.Sprintf("asin(%s)", e.A)
	case OpAcos:
		return fmt.Sprintf("acos(%s)", e.A)
	}
	return "?"
}
