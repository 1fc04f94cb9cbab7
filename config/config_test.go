// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSetDefaultPopulatesDocumentedDefaults(tst *testing.T) {
	chk.PrintTitle("SetDefault populates the documented §6.4 defaults")

	s := NewSettings()
	if s.ChordTolerance != DefaultChordTolerance {
		tst.Fatalf("ChordTolerance = %v, want %v", s.ChordTolerance, DefaultChordTolerance)
	}
	if s.MaxPWLSegments != DefaultMaxPWLSegments {
		tst.Fatalf("MaxPWLSegments = %v, want %v", s.MaxPWLSegments, DefaultMaxPWLSegments)
	}
	if !s.AutoLineConstraint {
		tst.Fatalf("AutoLineConstraint should default to true")
	}
	if s.TurntableNav {
		tst.Fatalf("TurntableNav should default to false")
	}
}

func TestPartialJSONKeepsDefaultsForOmittedFields(tst *testing.T) {
	chk.PrintTitle("decoding a partial settings file keeps defaults for omitted fields")

	s := NewSettings()
	if err := json.Unmarshal([]byte(`{"gridSpacing": 2.5}`), s); err != nil {
		tst.Fatalf("Unmarshal: %v", err)
	}
	if s.GridSpacing != 2.5 {
		tst.Fatalf("GridSpacing = %v, want 2.5", s.GridSpacing)
	}
	if s.ChordTolerance != DefaultChordTolerance {
		tst.Fatalf("ChordTolerance should keep its default, got %v", s.ChordTolerance)
	}
}
