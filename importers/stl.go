// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package importers

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/meshbsp"
	"github.com/solvespace/solvespace-sub002/shell"
)

const (
	stlHeaderSize  = 80
	stlTriangleLen = 12*4 + 2 // 12 float32s + 2-byte attribute
	stlRGBFlag     = 1 << 15
)

// STLTriangle is one binary-STL facet plus its optional 15-bit color,
// decoded from the attribute byte count's bit 15 (§6.3).
type STLTriangle struct {
	meshbsp.Triangle
	HasColor bool
	R, G, B  uint8 // only valid when HasColor
}

// ParseSTL reads a binary STL stream: an 80-byte header (ignored), a
// little-endian uint32 triangle count, then per triangle a facet normal
// (ignored — recomputed from winding order, since a malformed file's
// stored normal should never override the geometry), three vertices, and
// a 2-byte attribute whose bit 15 flags a packed 5-5-5 RGB color (§6.3).
func ParseSTL(r io.Reader) ([]STLTriangle, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, chk.Err("importers: reading STL header: %v", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, chk.Err("importers: reading STL triangle count: %v", err)
	}

	tris := make([]STLTriangle, 0, count)
	var rec [stlTriangleLen]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, chk.Err("importers: reading STL triangle %d: %v", i, err)
		}
		f := func(off int) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off : off+4])))
		}
		// rec[0:12] is the facet normal, intentionally unread.
		a := shell.Vec3{X: f(12), Y: f(16), Z: f(20)}
		b := shell.Vec3{X: f(24), Y: f(28), Z: f(32)}
		c := shell.Vec3{X: f(36), Y: f(40), Z: f(44)}
		attr := binary.LittleEndian.Uint16(rec[48:50])

		t := STLTriangle{Triangle: meshbsp.Triangle{A: a, B: b, C: c}}
		if attr&stlRGBFlag != 0 {
			t.HasColor = true
			t.R = uint8((attr >> 10) & 0x1f << 3)
			t.G = uint8((attr >> 5) & 0x1f << 3)
			t.B = uint8(attr & 0x1f << 3)
		}
		tris = append(tris, t)
	}
	return tris, nil
}
