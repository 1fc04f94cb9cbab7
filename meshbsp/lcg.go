// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshbsp

// lcg is the deterministic PRNG §9's "Deterministic randomness" design note
// requires: a documented linear congruential generator, not Go's runtime
// math/rand default source (whose algorithm is not part of its API
// contract and has changed across Go releases). The constants are Knuth's
// MMIX multiplier/increment for a 64-bit LCG, chosen
// because their period and spectral properties are published and stable;
// any caller seeding with 0 gets byte-identical triangle order across
// implementations, which is the only property this type needs to satisfy.
type lcg struct{ state uint64 }

const (
	lcgMul = 6364136223846793005
	lcgInc = 1442695040888963407
)

// newLCG seeds a generator with 0, per §9/§5's "seed it with 0 before each
// BSP construction".
func newLCG() *lcg { return &lcg{state: 0} }

// Uint64 implements math/rand.Source64.
func (g *lcg) Uint64() uint64 {
	g.state = g.state*lcgMul + lcgInc
	return g.state
}

// Int63 implements math/rand.Source.
func (g *lcg) Int63() int64 { return int64(g.Uint64() >> 1) }

// Seed implements math/rand.Source; BSP construction always reseeds with 0
// via newLCG, but the method is provided so *lcg satisfies the interface
// fully for any caller that wants to wrap it in math/rand.New.
func (g *lcg) Seed(seed int64) { g.state = uint64(seed) }

// shuffleTriangles returns a copy of tris permuted by a Fisher-Yates
// shuffle driven by g, the construction step of §4.8 ("randomize the
// triangle order with a fixed seed").
func shuffleTriangles(tris []Triangle, g *lcg) []Triangle {
	out := append([]Triangle(nil), tris...)
	for i := len(out) - 1; i > 0; i-- {
		j := int(g.Uint64() % uint64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
