// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

// RefreshActiveCache recomputes actPoint/actNormal/actDistance/actVisible
// for every entity in t from the just-solved param values in pt (§4.3:
// "Numeric cache ... is refreshed after each solve so downstream consumers
// need not re-traverse the param table"). It must run after the solver
// commits its result and before any bezier/edge/export consumer reads the
// sketch.
func (t *Table) RefreshActiveCache(pt *ParamTable) {
	t.Each(func(e *Entity) {
		e.ActVisible = e.Visible
		switch {
		case e.Kind.IsPoint():
			x, y, z := e.PointGetExprs(t, pt).Eval(pt)
			e.ActPoint = [3]float64{x, y, z}
		case e.Kind.IsNormal():
			q := e.Quaternion(t, pt)
			e.ActNormal = [4]float64{
				q.W.Eval(pt), q.Vx.Eval(pt), q.Vy.Eval(pt), q.Vz.Eval(pt),
			}
		case e.Kind == Distance || e.Kind == DistanceNCopy:
			e.ActDistance = e.DistanceExpr(t, pt).Eval(pt)
		}
	})
}
