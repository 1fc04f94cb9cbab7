// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/solvespace/solvespace-sub002/config"
	"github.com/solvespace/solvespace-sub002/group"
	"github.com/solvespace/solvespace-sub002/importers"
	"github.com/solvespace/solvespace-sub002/sketchfile"
	"github.com/solvespace/solvespace-sub002/solver"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".slvs", true)
	cfgPath := io.ArgToString(1, "")
	verbose := io.ArgToBool(2, true)
	linkedPath := io.ArgToString(3, "")
	outPath := io.ArgToString(4, "")

	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nslvscore -- parametric constraint-based CAD kernel\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"sketch file path", "fnamepath", fnamepath,
			"config file path (optional)", "cfgPath", cfgPath,
			"show messages", "verbose", verbose,
			"linked IDF/STL file (optional)", "linkedPath", linkedPath,
			"output sketch path (optional)", "outPath", outPath,
		))
	}

	// configuration
	cfg := config.NewSettings()
	if cfgPath != "" {
		loaded, err := config.ReadFile(cfgPath)
		if err != nil {
			chk.Panic("reading config: %v", err)
		}
		cfg = loaded
	}
	group.MergeTolerance = cfg.ChordTolerance

	// load sketch
	sk, warnings, err := sketchfile.ReadFile(fnamepath)
	if err != nil {
		chk.Panic("reading sketch %q: %v", fnamepath, err)
	}
	if verbose {
		for _, w := range warnings {
			io.Pf("warning: %v\n", w)
		}
		io.Pf("loaded %d groups, %d params, %d entities, %d constraints\n",
			sk.Groups.Len(), sk.Params.Len(), sk.Entities.Len(), sk.Constraints.Len())
	}

	// optional linked board/mesh file, loaded purely for a report: wiring
	// it into the sketch as entities is a sketch-construction concern (the
	// request layer), not this driver's job.
	if linkedPath != "" {
		reportLinkedFile(linkedPath, verbose)
	}

	// regenerate every group in order, each against the previous group's
	// running geometry (§4.6)
	tuning := solver.NewTuning()
	var prev *group.Group
	badCount := 0
	for _, g := range sk.Groups.Items() {
		group.Regenerate(g, prev, sk.Entities, sk.Params, sk.Constraints, tuning)
		if verbose {
			io.Pf("group %08x: %v (%d iterations", uint32(g.H), g.SolveReport.Result, g.SolveReport.Iterations)
			if len(g.SolveReport.Bad) > 0 {
				io.Pf(", %d bad constraint(s)", len(g.SolveReport.Bad))
			}
			io.Pf(")\n")
		}
		if g.SolveReport.Result != solver.Okay {
			badCount++
		}
		prev = g
	}

	if outPath != "" {
		if err := sketchfile.WriteFile(outPath, sk); err != nil {
			chk.Panic("writing sketch %q: %v", outPath, err)
		}
		if verbose {
			io.Pf("wrote %q\n", outPath)
		}
	}

	if badCount > 0 {
		chk.Panic("%d of %d group(s) failed to solve cleanly", badCount, sk.Groups.Len())
	}
}

// reportLinkedFile loads an IDF v3 board or binary STL mesh purely to
// report its contents (§6.3); it is identified by extension since both
// formats are otherwise just opaque byte streams at this boundary.
func reportLinkedFile(path string, verbose bool) {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("opening linked file %q: %v", path, err)
	}
	f := bytes.NewReader(b)

	if strings.HasSuffix(strings.ToLower(path), ".stl") {
		tris, err := importers.ParseSTL(f)
		if err != nil {
			chk.Panic("parsing STL %q: %v", path, err)
		}
		if verbose {
			io.Pf("linked STL %q: %d triangles\n", path, len(tris))
		}
		return
	}

	board, err := importers.ParseIDF(f)
	if err != nil {
		chk.Panic("parsing IDF %q: %v", path, err)
	}
	if verbose {
		io.Pf("linked IDF %q: thickness=%v, %d loop(s)\n", path, board.ThicknessMM, len(board.Loops))
	}
}
