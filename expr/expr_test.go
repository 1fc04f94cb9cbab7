// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/solvespace/solvespace-sub002/handle"
)

type fixedParams map[handle.Param]float64

func (f fixedParams) ValueOf(p handle.Param) float64 { return f[p] }

func TestEvalArithmetic(tst *testing.T) {
	chk.PrintTitle("EvalArithmetic")
	e := Add(Mul(Const1(2), Const1(3)), Const1(1)) // 2*3 + 1 = 7
	if v := e.Eval(nil); v != 7 {
		tst.Fatalf("got %v, want 7", v)
	}
}

func TestEvalDivisionByZeroIsFiniteNotPanic(tst *testing.T) {
	e := Div(Const1(1), Const1(0))
	v := e.Eval(nil)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		tst.Fatalf("division by zero must evaluate to a large finite value, got %v", v)
	}
	if math.Abs(v) < 1e20 {
		tst.Fatalf("division by zero should be >= 1e20 in magnitude, got %v", v)
	}
}

func TestPartialWrtProductRule(tst *testing.T) {
	p := handle.Param(1)
	q := handle.Param(2)
	params := fixedParams{p: 3, q: 5}
	// f = p * q; df/dp should evaluate to q = 5
	f := Mul(ParamRef(p), ParamRef(q))
	d := f.PartialWrt(p)
	if v := d.Eval(params); v != 5 {
		tst.Fatalf("d(p*q)/dp at (p=3,q=5) = %v, want 5", v)
	}
	// df/dq should evaluate to p = 3
	d2 := f.PartialWrt(q)
	if v := d2.Eval(params); v != 3 {
		tst.Fatalf("d(p*q)/dq at (p=3,q=5) = %v, want 3", v)
	}
}

func TestPartialWrtIndependentParamIsZero(tst *testing.T) {
	p := handle.Param(1)
	q := handle.Param(2)
	f := ParamRef(q) // does not depend on p at all
	d := f.PartialWrt(p)
	if d.Op != OpConstant || d.Const != 0 {
		tst.Fatalf("expected a folded zero constant, got %v", d)
	}
}

func TestDependsOnHashShortCircuit(tst *testing.T) {
	p := handle.Param(1)
	q := handle.Param(99999) // far apart bucket, exercises the modulo hash
	f := Add(ParamRef(p), Const1(4))
	if f.DependsOn(q) {
		tst.Fatalf("f does not reference q, DependsOn must be false")
	}
	if !f.DependsOn(p) {
		tst.Fatalf("f references p, DependsOn must be true")
	}
}

func TestFoldConstantsCollapsesConstantSubtree(tst *testing.T) {
	p := handle.Param(1)
	// (2+3) * p  ->  5 * p
	f := Mul(Add(Const1(2), Const1(3)), ParamRef(p))
	folded := f.FoldConstants()
	if folded.Op != OpMul || folded.A.Op != OpConstant || folded.A.Const != 5 {
		tst.Fatalf("expected left child folded to constant 5, got %v", folded)
	}
}

func TestFoldConstantsWhollyConstant(tst *testing.T) {
	f := Add(Mul(Const1(2), Const1(3)), Const1(1))
	folded := f.FoldConstants()
	if folded.Op != OpConstant || folded.Const != 7 {
		tst.Fatalf("fully constant expression should fold to a single leaf, got %v", folded)
	}
}

type fakeParamPtr struct {
	h handle.Param
	v float64
}

func (f *fakeParamPtr) Handle() handle.Param { return f.h }
func (f *fakeParamPtr) Value() float64       { return f.v }

func TestDeepCopyWithParamsAsPointers(tst *testing.T) {
	p := handle.Param(1)
	f := Add(ParamRef(p), Const1(1))
	pv := &fakeParamPtr{h: p, v: 10}
	g := f.DeepCopyWithParamsAsPointers(func(h handle.Param) ParamValue { return pv })
	if g.A.Op != OpParamPtr {
		tst.Fatalf("expected PARAM leaf rewritten to PARAM_PTR, got op %v", g.A.Op)
	}
	if v := g.Eval(nil); v != 11 {
		tst.Fatalf("evaluated via pointer = %v, want 11", v)
	}
}

func TestParseArithmeticPrecedence(tst *testing.T) {
	e, err := Parse("2 + 3 * 4")
	if err != nil {
		tst.Fatalf("unexpected parse error: %v", err)
	}
	if v := e.Eval(nil); v != 14 {
		tst.Fatalf("2 + 3*4 = %v, want 14", v)
	}
}

func TestParseFunctionsAndParens(tst *testing.T) {
	e, err := Parse("sqrt((2+2)*4)")
	if err != nil {
		tst.Fatalf("unexpected parse error: %v", err)
	}
	if v := e.Eval(nil); math.Abs(v-4) > 1e-12 {
		tst.Fatalf("sqrt(16) = %v, want 4", v)
	}
}

func TestParseErrorReportsPosition(tst *testing.T) {
	_, err := Parse("2 + * 3")
	if err == nil {
		tst.Fatalf("expected a parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		tst.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Pos == 0 {
		tst.Fatalf("expected a nonzero error position")
	}
}

func TestVectorCrossAndDot(tst *testing.T) {
	x := NewVector(Const1(1), Const1(0), Const1(0))
	y := NewVector(Const1(0), Const1(1), Const1(0))
	z := x.Cross(y)
	zx, zy, zz := z.Eval(nil)
	if zx != 0 || zy != 0 || zz != 1 {
		tst.Fatalf("x cross y = (%v,%v,%v), want (0,0,1)", zx, zy, zz)
	}
	if d := x.Dot(y).Eval(nil); d != 0 {
		tst.Fatalf("x dot y = %v, want 0", d)
	}
}
