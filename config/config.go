// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the configuration surface of §6.4: the
// numeric knobs read at solve/generation time, JSON-tagged exactly the way
// inp.Data is in the teacher, with the same SetDefault convention.
package config

import (
	"bytes"
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Settings holds the global (sketch-wide, not per-group) configuration
// knobs of §6.4. Per-group overrides (AllDimsReference, RelaxConstraints,
// AllowRedundant) live on group.Group itself, since they vary group to
// group rather than applying uniformly.
type Settings struct {
	// ChordTolerance bounds a PWL flattening's chord deviation, in model
	// units (mm); ratpoly.ApproximatePWL subdivides a curve segment further when
	// the midpoint deviates from the chord by more than this (§4.7).
	ChordTolerance float64 `json:"chordTolerance"`

	// MaxPWLSegments caps how finely a single curve can be subdivided
	// regardless of ChordTolerance, the other half of §4.7's stopping
	// condition ("or when the parameter span falls below 1/maxSegments").
	MaxPWLSegments int `json:"maxPwlSegments"`

	// ExportChordTolerance is ChordTolerance's counterpart for export-time
	// flattening (STL/mesh output), independently tunable since export
	// quality and interactive-solve speed trade off differently.
	ExportChordTolerance float64 `json:"exportChordTolerance"`

	// CameraTangent is the half-angle tangent used for perspective camera
	// projection; 0 means orthographic.
	CameraTangent float64 `json:"cameraTangent"`

	// GridSpacing is the sketch-plane grid pitch, in model units.
	GridSpacing float64 `json:"gridSpacing"`

	// AutoLineConstraint enables automatically constraining a freshly
	// drawn line to horizontal/vertical when it's nearly so.
	AutoLineConstraint bool `json:"autoLineConstraint"`

	// TurntableNav selects turntable-style (vs. trackball-style) mouse
	// navigation for the 3D view.
	TurntableNav bool `json:"turntableNav"`

	// ExplodeOffset scales the per-group separation in an exploded view,
	// model units per group index.
	ExplodeOffset float64 `json:"explodeOffset"`
}

// Default chord/grid/PWL values, per §6.4's documented defaults.
const (
	DefaultChordTolerance       = 0.1 // mm
	DefaultMaxPWLSegments       = 300
	DefaultExportChordTolerance = 0.1 // mm
	DefaultGridSpacing          = 5.0 // mm
)

// SetDefault populates s with §6.4's documented defaults, mirroring
// inp.Data's own SetDefault: zero-value fields after an incomplete JSON
// decode get a sane value rather than silently behaving as "zero
// tolerance" or "zero segments".
func (s *Settings) SetDefault() {
	s.ChordTolerance = DefaultChordTolerance
	s.MaxPWLSegments = DefaultMaxPWLSegments
	s.ExportChordTolerance = DefaultExportChordTolerance
	s.GridSpacing = DefaultGridSpacing
	s.AutoLineConstraint = true
	s.TurntableNav = false
	s.ExplodeOffset = 0
}

// NewSettings returns a Settings populated with SetDefault's values.
func NewSettings() *Settings {
	s := &Settings{}
	s.SetDefault()
	return s
}

// ReadFile decodes a JSON-encoded Settings from filename, defaulting first
// so any field the file omits keeps its documented default rather than
// decoding to zero.
func ReadFile(filename string) (*Settings, error) {
	s := NewSettings()
	b, err := io.ReadFile(filename)
	if err != nil {
		return nil, chk.Err("config: cannot read %q: %v", filename, err)
	}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, chk.Err("config: cannot parse %q: %v", filename, err)
	}
	return s, nil
}

// WriteFile encodes s as indented JSON to filename.
func WriteFile(filename string, s *Settings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return chk.Err("config: cannot encode settings: %v", err)
	}
	var buf bytes.Buffer
	buf.Write(b)
	io.WriteFile(filename, &buf)
	return nil
}
