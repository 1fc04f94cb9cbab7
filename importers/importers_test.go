// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package importers

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/shell"
)

const rectangleIDF = `.HEADER
board outline test
MM
.END_HEADER
.BOARD_OUTLINE
1.6
0 0.0 0.0 0
0 10.0 0.0 0
0 10.0 10.0 90
0 10.0 10.0 0
0 0.0 0.0 0
.END_BOARD_OUTLINE
.DRILLED_HOLES
3.0 5.0 5.0 PTH PIN1 I
.END_DRILLED_HOLES
`

func TestParseIDFReadsThicknessAndLoops(tst *testing.T) {
	chk.PrintTitle("ParseIDF reads board thickness and produces bezier loops")

	board, err := ParseIDF(strings.NewReader(rectangleIDF))
	if err != nil {
		tst.Fatalf("ParseIDF: %v", err)
	}
	if board.ThicknessMM != 1.6 {
		tst.Fatalf("thickness = %v, want 1.6", board.ThicknessMM)
	}
	if len(board.Loops) < 2 {
		tst.Fatalf("expected at least an outline loop and a drilled-hole loop, got %d", len(board.Loops))
	}
	for i, loop := range board.Loops {
		if len(loop) == 0 {
			tst.Fatalf("loop %d has no beziers", i)
		}
	}
}

func TestArcBeziersFullCircleClosesOnItself(tst *testing.T) {
	chk.PrintTitle("arcBeziers on a full circle returns a closed chain of arcs")

	center := shell.Vec3{X: 5, Y: 5}
	start := shell.Vec3{X: 8, Y: 5}
	segs := arcBeziers(center, start, 360.0)
	if len(segs) == 0 {
		tst.Fatalf("expected at least one arc segment")
	}
	if !segs[0].Start().Equals(start, 1e-9) {
		tst.Fatalf("first segment should start at %v, got %v", start, segs[0].Start())
	}
	if !segs[len(segs)-1].Finish().Equals(start, 1e-6) {
		tst.Fatalf("last segment should close back to %v, got %v", start, segs[len(segs)-1].Finish())
	}
}

func buildSTLTriangle(buf *bytes.Buffer, a, b, c [3]float32, attr uint16) {
	var zero [3]float32
	for _, v := range zero {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, p := range [][3]float32{a, b, c} {
		for _, v := range p {
			binary.Write(buf, binary.LittleEndian, v)
		}
	}
	binary.Write(buf, binary.LittleEndian, attr)
}

func TestParseSTLReadsTrianglesAndColor(tst *testing.T) {
	chk.PrintTitle("ParseSTL reads vertices and a bit-15 RGB color flag")

	var buf bytes.Buffer
	buf.Write(make([]byte, stlHeaderSize))
	binary.Write(&buf, binary.LittleEndian, uint32(2))
	buildSTLTriangle(&buf, [3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}, 0)
	buildSTLTriangle(&buf, [3]float32{0, 0, 1}, [3]float32{1, 0, 1}, [3]float32{0, 1, 1}, stlRGBFlag|0x3ff)

	tris, err := ParseSTL(&buf)
	if err != nil {
		tst.Fatalf("ParseSTL: %v", err)
	}
	if len(tris) != 2 {
		tst.Fatalf("triangle count = %d, want 2", len(tris))
	}
	if tris[0].HasColor {
		tst.Fatalf("first triangle should have no color")
	}
	if !tris[1].HasColor {
		tst.Fatalf("second triangle should have a color")
	}
	if tris[0].B.X != 1 {
		tst.Fatalf("triangle 0 vertex B.X = %v, want 1", tris[0].B.X)
	}
}
