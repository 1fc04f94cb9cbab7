// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketchfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/solvespace/solvespace-sub002/constraint"
	"github.com/solvespace/solvespace-sub002/entity"
	"github.com/solvespace/solvespace-sub002/group"
	"github.com/solvespace/solvespace-sub002/handle"
	"github.com/solvespace/solvespace-sub002/request"
)

// LoadWarning is one unrecognized or malformed line encountered while
// reading; per §6.2 ("unrecognized lines set a file-load error, but loading
// continues") it never aborts the read.
type LoadWarning struct {
	Line int
	Text string
}

func (w LoadWarning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Text)
}

// record accumulates one Type.field=value group until its Add<Type>
// keyword line.
type record map[string]string

// Read decodes a Sketch from r, per §6.2. Malformed or unrecognized lines
// are collected as warnings rather than aborting the read.
func Read(r io.Reader) (*Sketch, []LoadWarning, error) {
	s := NewSketch()
	var warnings []LoadWarning

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fields := make(record)
	var remap []string
	inRemap := false
	lineNo := 0
	sawHeader := false

	warn := func(text string) {
		warnings = append(warnings, LoadWarning{Line: lineNo, Text: text})
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if !sawHeader {
			// The three magic bytes plus "SolveSpaceREVa" occupy the first
			// physical line, followed by two blank lines: three lines of
			// header before any record starts.
			if lineNo <= 3 {
				continue
			}
			sawHeader = true
		}

		if line == "" {
			continue
		}

		if inRemap {
			if line == "}" {
				inRemap = false
				continue
			}
			remap = append(remap, line)
			continue
		}
		if strings.HasSuffix(line, "={") {
			inRemap = true
			continue
		}

		switch line {
		case "AddGroup":
			if err := addGroup(s.Groups, fields, remap); err != nil {
				warn(err.Error())
			}
			fields, remap = make(record), nil
			continue
		case "AddParam":
			if err := addParam(s.Params, fields); err != nil {
				warn(err.Error())
			}
			fields = make(record)
			continue
		case "AddEntity":
			if err := addEntity(s.Entities, fields); err != nil {
				warn(err.Error())
			}
			fields = make(record)
			continue
		case "AddRequest":
			if err := addRequest(s.Requests, fields); err != nil {
				warn(err.Error())
			}
			fields = make(record)
			continue
		case "AddConstraint":
			if err := addConstraint(s.Constraints, fields); err != nil {
				warn(err.Error())
			}
			fields = make(record)
			continue
		case "AddStyle":
			// No separate style table in this kernel (§6.2's Style fields
			// live inline on Request.Style); an AddStyle record is simply
			// consumed.
			fields = make(record)
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			warn("unrecognized line: " + line)
			continue
		}
		key, val := line[:eq], line[eq+1:]
		if dot := strings.IndexByte(key, '.'); dot >= 0 {
			key = key[dot+1:]
		}
		fields[key] = val
	}
	if err := sc.Err(); err != nil {
		return nil, warnings, chk.Err("sketchfile: reading: %v", err)
	}
	return s, warnings, nil
}

func getFloat(f record, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(f[key]), 64)
	return v
}

func getInt(f record, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(f[key]))
	return v
}

func getBool(f record, key string) bool {
	return strings.TrimSpace(f[key]) == "1"
}

func getHex32(f record, key string) uint32 {
	v, _ := parseHex32(f[key])
	return v
}

func addGroup(t *group.Table, f record, remap []string) error {
	if f["h"] == "" {
		return chk.Err("sketchfile: Group record missing h")
	}
	g := group.NewGroup(group.Kind(getInt(f, "type")))
	g.H = handle.Group(getHex32(f, "h"))
	g.Source = handle.Group(getHex32(f, "source"))
	g.PredefOrigin = handle.Entity(getHex32(f, "predefOrigin"))
	g.PredefEntityB = handle.Entity(getHex32(f, "predefEntityB"))
	for i := range g.Param {
		g.Param[i] = getFloat(f, fmt.Sprintf("param%d", i))
	}
	g.Copies = getInt(f, "copies")
	g.Op = group.BooleanOp(getInt(f, "op"))
	g.AllDimsReference = getBool(f, "allDimsReference")
	g.RelaxConstraints = getBool(f, "relaxConstraints")
	g.AllowRedundant = getBool(f, "allowRedundant")
	for _, line := range remap {
		parts := strings.Fields(line)
		if len(parts) != 3 {
			continue
		}
		out, err1 := parseHex32(parts[0])
		in, err2 := parseHex32(parts[1])
		copyNum, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		g.Remap[group.RemapKey{Input: handle.Entity(in), Copy: copyNum}] = handle.Entity(out)
	}
	t.AddKeepHandle(g)
	return nil
}

func addParam(t *entity.ParamTable, f record) error {
	if f["h"] == "" {
		return chk.Err("sketchfile: Param record missing h")
	}
	p := &entity.Param{H: handle.Param(getHex32(f, "h"))}
	p.SetValue(getFloat(f, "val"))
	p.Known = getBool(f, "known")
	p.Free = getBool(f, "free")
	p.Substituted = handle.Param(getHex32(f, "substituted"))
	p.Dragged = getBool(f, "dragged")
	t.AddKeepHandle(p)
	return nil
}

func addEntity(t *entity.Table, f record) error {
	if f["h"] == "" {
		return chk.Err("sketchfile: Entity record missing h")
	}
	e := &entity.Entity{
		H:         handle.Entity(getHex32(f, "h")),
		Kind:      entity.Kind(getInt(f, "type")),
		Group:     handle.Group(getHex32(f, "group")),
		Workplane: handle.Entity(getHex32(f, "workplane")),
	}
	e.Derived = getBool(f, "derived")
	e.Construction = getBool(f, "construction")
	e.Visible = getBool(f, "visible")
	e.NumPoint = getInt(f, "numPoint")
	for i := 0; i < e.NumPoint && i < entity.MaxPointChildren; i++ {
		e.Point[i] = handle.Entity(getHex32(f, fmt.Sprintf("point%d", i)))
	}
	e.HasNormal = getBool(f, "hasNormal")
	if e.HasNormal {
		e.Normal = handle.Entity(getHex32(f, "normal"))
	}
	e.HasDistance = getBool(f, "hasDistance")
	if e.HasDistance {
		e.DistanceEnt = handle.Entity(getHex32(f, "distanceEnt"))
	}
	e.NumParam = getInt(f, "numParam")
	for i := 0; i < e.NumParam && i < entity.MaxDirectParams; i++ {
		e.ParamH[i] = handle.Param(getHex32(f, fmt.Sprintf("paramH%d", i)))
	}
	e.Str = f["str"]
	e.Font = f["font"]
	t.AddKeepHandle(e)
	return nil
}

func addRequest(t *request.Table, f record) error {
	if f["h"] == "" {
		return chk.Err("sketchfile: Request record missing h")
	}
	r := &request.Request{
		H:         handle.Request(getHex32(f, "h")),
		Kind:      request.Kind(getInt(f, "type")),
		Workplane: handle.Entity(getHex32(f, "workplane")),
		Group:     handle.Group(getHex32(f, "group")),
		Style:     getHex32(f, "style"),
	}
	r.Construction = getBool(f, "construction")
	r.Str = f["str"]
	r.Font = f["font"]
	t.AddKeepHandle(r)
	return nil
}

func addConstraint(t *constraint.Table, f record) error {
	if f["h"] == "" {
		return chk.Err("sketchfile: Constraint record missing h")
	}
	c := &constraint.Constraint{
		H:         handle.Constraint(getHex32(f, "h")),
		Type:      constraint.Kind(getInt(f, "type")),
		Group:     handle.Group(getHex32(f, "group")),
		Workplane: handle.Entity(getHex32(f, "workplane")),
		ValA:      getFloat(f, "valA"),
		PtA:       handle.Entity(getHex32(f, "ptA")),
		PtB:       handle.Entity(getHex32(f, "ptB")),
		EntityA:   handle.Entity(getHex32(f, "entityA")),
		EntityB:   handle.Entity(getHex32(f, "entityB")),
		EntityC:   handle.Entity(getHex32(f, "entityC")),
		EntityD:   handle.Entity(getHex32(f, "entityD")),
		Other:     getBool(f, "other"),
		Other2:    getBool(f, "other2"),
		Reference: getBool(f, "reference"),
		ValP:      handle.Param(getHex32(f, "valP")),
	}
	for i := range c.LabelOffset {
		c.LabelOffset[i] = getFloat(f, fmt.Sprintf("labelOffset%d", i))
	}
	t.AddKeepHandle(c)
	return nil
}
