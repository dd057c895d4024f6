/*
 * pdbwrite_test.go, part of gostruc.
 *
 * Copyright 2024 The goStruc developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package struc

import (
	"reflect"
	"strings"
	"testing"
)

// Writing a model out and reading it back must reproduce the model.
func TestPDBRoundTrip(Te *testing.T) {
	p := smallPDB(Te)
	text := PDBWriteString(p, FullPDBWriteOptions())
	p2, err := PDBStringRead(text)
	if err != nil {
		Te.Fatalf("re-parse failed: %v\noutput was:\n%s", err, text)
	}
	if !reflect.DeepEqual(p.Description, p2.Description) {
		Te.Errorf("description drifted:\n%+v\n%+v", p.Description, p2.Description)
	}
	if !reflect.DeepEqual(p.Experiment, p2.Experiment) {
		Te.Errorf("experiment drifted:\n%+v\n%+v", p.Experiment, p2.Experiment)
	}
	if !reflect.DeepEqual(p.Quality, p2.Quality) {
		Te.Errorf("quality drifted:\n%+v\n%+v", p.Quality, p2.Quality)
	}
	if !reflect.DeepEqual(p.Geometry, p2.Geometry) {
		Te.Errorf("geometry drifted:\n%+v\n%+v", p.Geometry, p2.Geometry)
	}
	if !reflect.DeepEqual(p.Models, p2.Models) {
		Te.Errorf("models drifted:\n%+v\n%+v", p.Models[0], p2.Models[0])
	}
	if strings.Count(text, "TER ") != 1 {
		Te.Errorf("expected a single TER line:\n%s", text)
	}
}

func TestTwoAtomRoundTrip(Te *testing.T) {
	p, err := PDBStringRead(twoAtomPDB)
	if err != nil {
		Te.Fatal(err)
	}
	p2, err := PDBStringRead(PDBWriteString(p, nil))
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(p.Models, p2.Models) {
		Te.Errorf("models drifted:\n%+v\n%+v", p.Models[0].Polymer["A"], p2.Models[0].Polymer["A"])
	}
}

// An all-zero anisotropy array must never produce an ANISOU line; a
// non-zero one always must, and it must survive a round trip.
func TestAnisotropyOmission(Te *testing.T) {
	p := smallPDB(Te)
	text := PDBWriteString(p, nil)
	if got := strings.Count(text, "ANISOU"); got != 1 {
		Te.Fatalf("expected exactly 1 ANISOU line, got %d:\n%s", got, text)
	}
	p2, err := PDBStringRead(text)
	if err != nil {
		Te.Fatal(err)
	}
	orig := p.Models[0].Polymer["A"].Residues.Get("A.1").Atoms[1].Anisotropy
	back := p2.Models[0].Polymer["A"].Residues.Get("A.1").Atoms[1].Anisotropy
	if orig != back {
		Te.Errorf("anisotropy drifted: %v vs %v", orig, back)
	}
}

func TestCompactAniso(Te *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0.0044, ".0044"},
		{-0.0123, "-.0123"},
		{0.2406, ".2406"},
		{1.23456, "1.234"},
		{-1.2345, "-1.23"},
		{2, "2.000"},
		{0, ".0000"},
	} {
		if got := compactAniso(tc.in); got != tc.want {
			Te.Errorf("compactAniso(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestModelMarkers(Te *testing.T) {
	single, err := PDBStringRead(twoAtomPDB)
	if err != nil {
		Te.Fatal(err)
	}
	text := PDBWriteString(single, nil)
	if strings.Contains(text, "MODEL") || strings.Contains(text, "ENDMDL") {
		Te.Error("single-model output should carry no MODEL/ENDMDL markers")
	}
	multiText := "MODEL        1\n" + twoAtomPDB[:len(twoAtomPDB)-4] + "ENDMDL\n" +
		"MODEL        2\n" + twoAtomPDB[:len(twoAtomPDB)-4] + "ENDMDL\nEND\n"
	multi, err := PDBStringRead(multiText)
	if err != nil {
		Te.Fatal(err)
	}
	text = PDBWriteString(multi, nil)
	if strings.Count(text, "MODEL ") != 2 || strings.Count(text, "ENDMDL") != 2 {
		Te.Errorf("expected 2 MODEL/ENDMDL pairs:\n%s", text)
	}
	back, err := PDBStringRead(text)
	if err != nil {
		Te.Fatal(err)
	}
	if len(back.Models) != 2 {
		Te.Errorf("expected 2 models after round trip, got %d", len(back.Models))
	}
}

func TestWriteToggles(Te *testing.T) {
	p := smallPDB(Te)
	text := PDBWriteString(p, nil) //defaults: seqres, hetnam and remarks only
	for _, absent := range []string{"HEADER", "TITLE", "SOURCE", "KEYWDS", "CRYST1"} {
		if strings.Contains(text, absent) {
			Te.Errorf("default output should not contain %s", absent)
		}
	}
	for _, present := range []string{"SEQRES", "HETNAM", "REMARK   2"} {
		if !strings.Contains(text, present) {
			Te.Errorf("default output should contain %s", present)
		}
	}
	text = PDBWriteString(p, &PDBWriteOptions{})
	if strings.Contains(text, "SEQRES") || strings.Contains(text, "REMARK") {
		Te.Error("all-off options should strip every metadata section")
	}
	if !strings.Contains(text, "ATOM") || !strings.HasSuffix(text, "END\n") {
		Te.Error("coordinates and END are not optional")
	}
}
