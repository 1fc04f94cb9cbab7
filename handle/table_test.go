// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handle

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

type stubParam struct {
	h     Param
	value float64
}

func (s *stubParam) Handle() Param     { return s.h }
func (s *stubParam) SetHandle(h Param) { s.h = h }

func TestTableAddFindRemove(tst *testing.T) {
	chk.PrintTitle("TableAddFindRemove")

	t := NewTable[Param, *stubParam]()
	h1 := t.Add(&stubParam{value: 1})
	h2 := t.Add(&stubParam{value: 2})
	h3 := t.Add(&stubParam{value: 3})

	if t.Len() != 3 {
		tst.Fatalf("expected 3 items, got %d", t.Len())
	}
	if h1 == h2 || h2 == h3 {
		tst.Fatalf("expected distinct auto-assigned handles, got %v %v %v", h1, h2, h3)
	}

	v, ok := t.FindByHandle(h2)
	if !ok || v.value != 2 {
		tst.Fatalf("FindByHandle(h2) = %v, %v; want 2, true", v, ok)
	}

	if _, ok := t.FindByHandle(Param(9999)); ok {
		tst.Fatalf("FindByHandle on missing handle should report false")
	}

	// two-phase delete: tagging alone must not remove anything
	t.Tag(h2)
	if t.Len() != 3 {
		tst.Fatalf("Tag alone must not remove items")
	}
	t.RemoveTagged()
	if t.Len() != 2 {
		tst.Fatalf("expected 2 items after RemoveTagged, got %d", t.Len())
	}
	if _, ok := t.FindByHandle(h2); ok {
		tst.Fatalf("h2 should have been removed")
	}
	if _, ok := t.FindByHandle(h1); !ok {
		tst.Fatalf("h1 should survive removal of h2")
	}
}

func TestTableDeepCopyIsIndependent(tst *testing.T) {
	t := NewTable[Param, *stubParam]()
	h1 := t.Add(&stubParam{value: 42})

	clone := t.DeepCopy(func(s *stubParam) *stubParam {
		cp := *s
		return &cp
	})

	orig, _ := t.FindByHandle(h1)
	orig.value = 100

	cloned, _ := clone.FindByHandle(h1)
	if cloned.value != 42 {
		tst.Fatalf("DeepCopy must not alias the original items; got %v", cloned.value)
	}
}

func TestEntityHandleLayout(tst *testing.T) {
	req := Request(7)
	e := NewEntityFromRequest(req, 3)
	if EntityOwnedByGroup(e) {
		tst.Fatalf("request-owned entity must not report group-owned")
	}
	if e.Index() != 3 || e.ParentRequest() != req {
		tst.Fatalf("round-trip through NewEntityFromRequest failed: index=%d parent=%d", e.Index(), e.ParentRequest())
	}

	g := Group(11)
	d := NewEntityFromGroup(g, 5)
	if !EntityOwnedByGroup(d) {
		tst.Fatalf("group-owned entity must report group-owned")
	}
	if d.Index() != 5 || d.ParentGroup() != g {
		tst.Fatalf("round-trip through NewEntityFromGroup failed: index=%d parent=%d", d.Index(), d.ParentGroup())
	}
}

func TestEquationTracesGenerator(tst *testing.T) {
	c := NewConstraint(Group(1), 2)
	eq := NewEquationFromConstraint(c, 0)
	if !eq.FromConstraint() {
		tst.Fatalf("equation generated from a constraint must report FromConstraint()")
	}

	e := NewEntityFromRequest(Request(1), 0)
	eq2 := NewEquationFromEntity(e, 0)
	if eq2.FromConstraint() {
		tst.Fatalf("equation generated from an entity must not report FromConstraint()")
	}
}
