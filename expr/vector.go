// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

// Vector is a triple of Expr, used wherever an entity or constraint needs a
// symbolic 3-vector (a point, a direction) rather than a single scalar
// (§3.5).
type Vector struct {
	X, Y, Z *Expr
}

func NewVector(x, y, z *Expr) Vector { return Vector{X: x, Y: y, Z: z} }

func (v Vector) Add(o Vector) Vector { return Vector{Add(v.X, o.X), Add(v.Y, o.Y), Add(v.Z, o.Z)} }
func (v Vector) Sub(o Vector) Vector { return Vector{Sub(v.X, o.X), Sub(v.Y, o.Y), Sub(v.Z, o.Z)} }
func (v Vector) ScaleBy(s *Expr) Vector {
	return Vector{Mul(v.X, s), Mul(v.Y, s), Mul(v.Z, s)}
}

// Dot returns the scalar dot product as an Expr.
func (v Vector) Dot(o Vector) *Expr {
	return Add(Add(Mul(v.X, o.X), Mul(v.Y, o.Y)), Mul(v.Z, o.Z))
}

// Cross returns the symbolic cross product v x o.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: Sub(Mul(v.Y, o.Z), Mul(v.Z, o.Y)),
		Y: Sub(Mul(v.Z, o.X), Mul(v.X, o.Z)),
		Z: Sub(Mul(v.X, o.Y), Mul(v.Y, o.X)),
	}
}

// MagSquared returns |v|^2 as an Expr.
func (v Vector) MagSquared() *Expr { return v.Dot(v) }

// Eval evaluates all three components.
func (v Vector) Eval(lookup ParamLookup) (x, y, z float64) {
	return v.X.Eval(lookup), v.Y.Eval(lookup), v.Z.Eval(lookup)
}

// Quaternion is a quadruple of Expr representing a symbolic unit
// quaternion (used by NORMAL entities, §4.3).
type Quaternion struct {
	W, Vx, Vy, Vz *Expr
}

func NewQuaternion(w, x, y, z *Expr) Quaternion { return Quaternion{w, x, y, z} }

// RotateVector returns the symbolic image of v rotated by the (assumed
// unit) quaternion q: v' = q v q^-1, expanded to its component formulas.
func (q Quaternion) RotateVector(v Vector) Vector {
	// standard quaternion-rotation expansion; kept explicit (rather than
	// building the q*v*conj(q) product generically) because entity normals
	// are always queried component-by-component downstream.
	w, x, y, z := q.W, q.Vx, q.Vy, q.Vz
	two := Const1(2)

	xx := Mul(x, x)
	yy := Mul(y, y)
	zz := Mul(z, z)
	wx := Mul(w, x)
	wy := Mul(w, y)
	wz := Mul(w, z)
	xy := Mul(x, y)
	xz := Mul(x, z)
	yz := Mul(y, z)

	rx := Add(Mul(Sub(Sub(Const1(1), Mul(two, yy)), Mul(two, zz)), v.X),
		Add(Mul(Mul(two, Sub(xy, wz)), v.Y), Mul(Mul(two, Add(xz, wy)), v.Z)))
	ry := Add(Mul(Mul(two, Add(xy, wz)), v.X),
		Add(Mul(Sub(Sub(Const1(1), Mul(two, xx)), Mul(two, zz)), v.Y), Mul(Mul(two, Sub(yz, wx)), v.Z)))
	rz := Add(Mul(Mul(two, Sub(xz, wy)), v.X),
		Add(Mul(Mul(two, Add(yz, wx)), v.Y), Mul(Sub(Sub(Const1(1), Mul(two, xx)), Mul(two, yy)), v.Z)))

	return Vector{rx, ry, rz}
}

// NormalizedAxis returns the quaternion's basis vectors (U, V, N) — the
// rotated images of the X, Y, Z axes — which is how workplane and normal
// entities expose their orientation to constraint equations (§4.3).
func (q Quaternion) NormalizedAxis() (u, v, n Vector) {
	ex := Vector{Const1(1), Const1(0), Const1(0)}
	ey := Vector{Const1(0), Const1(1), Const1(0)}
	ez := Vector{Const1(0), Const1(0), Const1(1)}
	return q.RotateVector(ex), q.RotateVector(ey), q.RotateVector(ez)
}
