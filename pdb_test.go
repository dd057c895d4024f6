/*
 * pdb_test.go, part of gostruc.
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
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"
)

func readTestFile(Te *testing.T, name string) string {
	data, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	return string(data)
}

func smallPDB(Te *testing.T) *PDB {
	p, err := PDBStringRead(readTestFile(Te, "test/small.pdb"))
	if err != nil {
		Te.Fatal(err)
	}
	return p
}

const twoAtomPDB = `ATOM      1  N   VAL A   1      11.618  41.945  26.851  1.00 22.94           N
ATOM      2  CA  VAL A   1      12.000  42.000  27.000  1.00 20.00           C
TER       3      VAL A   1
END
`

func TestPDBTokenize(Te *testing.T) {
	d := PDBTokenize(readTestFile(Te, "test/small.pdb"))
	if len(d.Records["TITLE"]) != 2 {
		Te.Errorf("expected 2 TITLE lines, got %d", len(d.Records["TITLE"]))
	}
	if len(d.Remarks["350"]) != 10 {
		Te.Errorf("expected 10 REMARK 350 lines, got %d", len(d.Remarks["350"]))
	}
	if len(d.Models) != 1 {
		Te.Fatalf("expected 1 model frame, got %d", len(d.Models))
	}
	//2 ATOM, 1 ANISOU, 1 TER, 2 HETATM; the MODEL-less file still gets a frame
	if len(d.Models[0]) != 6 {
		Te.Errorf("expected 6 model lines, got %d", len(d.Models[0]))
	}
}

func TestPDBTokenizeModelFrames(Te *testing.T) {
	text := "MODEL        1\n" + twoAtomPDB[:len(twoAtomPDB)-4] + "ENDMDL\n" +
		"MODEL        2\n" + twoAtomPDB[:len(twoAtomPDB)-4] + "ENDMDL\nEND\n"
	d := PDBTokenize(text)
	if len(d.Models) != 2 {
		Te.Fatalf("expected 2 frames, got %d", len(d.Models))
	}
	for i, frame := range d.Models {
		if len(frame) != 3 {
			Te.Errorf("frame %d: expected 3 lines, got %d", i, len(frame))
		}
	}
}

func TestPDBDescription(Te *testing.T) {
	p := smallPDB(Te)
	desc := p.Description
	if desc.Code != "2YTC" {
		Te.Errorf("code: %q", desc.Code)
	}
	if desc.Classification != "LYASE" {
		Te.Errorf("classification: %q", desc.Classification)
	}
	want := "CRYSTAL STRUCTURE OF A SMALL LYASE SOLVED AT ROOM TEMPERATURE"
	if desc.Title != want {
		Te.Errorf("title: %q", desc.Title)
	}
	if desc.DepositionDate == nil || !desc.DepositionDate.Equal(time.Date(2007, 3, 28, 0, 0, 0, 0, time.UTC)) {
		Te.Errorf("deposition date: %v", desc.DepositionDate)
	}
	if !reflect.DeepEqual(desc.Keywords, []string{"LYASE", "TIM BARREL"}) {
		Te.Errorf("keywords: %v", desc.Keywords)
	}
	if !reflect.DeepEqual(desc.Authors, []string{"J.SMITH", "K.JONES"}) {
		Te.Errorf("authors: %v", desc.Authors)
	}
}

func TestPDBExperiment(Te *testing.T) {
	p := smallPDB(Te)
	exp := p.Experiment
	if exp.Technique != "X-RAY DIFFRACTION" {
		Te.Errorf("technique: %q", exp.Technique)
	}
	if exp.SourceOrganism != "ESCHERICHIA COLI" {
		Te.Errorf("organism: %q", exp.SourceOrganism)
	}
	if exp.ExpressionSystem != "ESCHERICHIA COLI BL21" {
		Te.Errorf("expression system: %q", exp.ExpressionSystem)
	}
	if !reflect.DeepEqual(exp.MissingResidues, []MissingResidue{{Name: "GLY", ID: "A.54"}}) {
		Te.Errorf("missing residues: %v", exp.MissingResidues)
	}
}

func TestPDBQuality(Te *testing.T) {
	q := smallPDB(Te).Quality
	if q.Resolution == nil || *q.Resolution != 1.9 {
		Te.Errorf("resolution: %v", q.Resolution)
	}
	if q.Rvalue == nil || *q.Rvalue != 0.193 {
		Te.Errorf("rvalue: %v", q.Rvalue)
	}
	if q.Rfree == nil || *q.Rfree != 0.229 {
		Te.Errorf("rfree: %v", q.Rfree)
	}
}

func TestPDBGeometry(Te *testing.T) {
	g := smallPDB(Te).Geometry
	if len(g.Assemblies) != 1 {
		Te.Fatalf("expected 1 assembly, got %d", len(g.Assemblies))
	}
	a := g.Assemblies[0]
	if a.ID != 1 || a.Software != "PISA" {
		Te.Errorf("assembly header: %d %q", a.ID, a.Software)
	}
	if a.BuriedSurfaceArea == nil || *a.BuriedSurfaceArea != 1630 {
		Te.Errorf("buried surface area: %v", a.BuriedSurfaceArea)
	}
	if a.SurfaceArea == nil || *a.SurfaceArea != 5110 {
		Te.Errorf("surface area: %v", a.SurfaceArea)
	}
	if a.DeltaEnergy == nil || *a.DeltaEnergy != -19 {
		Te.Errorf("delta energy: %v", a.DeltaEnergy)
	}
	if len(a.Transformations) != 1 {
		Te.Fatalf("expected 1 transformation, got %d", len(a.Transformations))
	}
	t := a.Transformations[0]
	if !reflect.DeepEqual(t.Chains, []string{"A"}) {
		Te.Errorf("chains: %v", t.Chains)
	}
	identity := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if t.Matrix != identity || t.Vector != [3]float64{} {
		Te.Errorf("transformation: %v %v", t.Matrix, t.Vector)
	}
	if g.Crystallography.SpaceGroup != "P 41 21 2" {
		Te.Errorf("space group: %q", g.Crystallography.SpaceGroup)
	}
	cell := []float64{57.57, 57.57, 150.19, 90, 90, 90}
	if !reflect.DeepEqual(g.Crystallography.UnitCell, cell) {
		Te.Errorf("unit cell: %v", g.Crystallography.UnitCell)
	}
}

func TestPDBModel(Te *testing.T) {
	p := smallPDB(Te)
	if len(p.Models) != 1 {
		Te.Fatalf("expected 1 model, got %d", len(p.Models))
	}
	model := p.Models[0]
	chain := model.Polymer["A"]
	if chain == nil {
		Te.Fatal("no chain A")
	}
	if chain.Sequence != "VGA" {
		Te.Errorf("sequence: %q", chain.Sequence)
	}
	if chain.Residues.Len() != 1 {
		Te.Fatalf("expected 1 residue, got %d", chain.Residues.Len())
	}
	res := chain.Residues.Get("A.1")
	if res == nil || res.Name != "VAL" || res.Number != 1 {
		Te.Fatalf("residue A.1: %+v", res)
	}
	if len(res.Atoms) != 2 {
		Te.Errorf("expected 2 atoms, got %d", len(res.Atoms))
	}
	n := res.Atoms[1]
	if n.Element != "N" || n.Name != "" || n.X != 11.618 || n.Occupancy != 1 || n.Bvalue != 22.94 {
		Te.Errorf("atom 1: %+v", n)
	}
	wantAniso := [6]float64{0.2406, 0.1892, 0.1614, 0.0198, 0.0519, -0.0328}
	if n.Anisotropy != wantAniso {
		Te.Errorf("anisotropy: %v", n.Anisotropy)
	}
	ca := res.Atoms[2]
	if ca.Name != "CA" || ca.Element != "C" || ca.hasAnisotropy() {
		Te.Errorf("atom 2: %+v", ca)
	}
	if !reflect.DeepEqual(chain.Helices, [][]string{{"A.1"}}) {
		Te.Errorf("helices: %v", chain.Helices)
	}
	if !reflect.DeepEqual(chain.Strands, [][]string{{"A.1"}}) {
		Te.Errorf("strands: %v", chain.Strands)
	}
	lig := model.NonPolymer["A.201"]
	if lig == nil || lig.Name != "XYZ" || lig.FullName != "TEST LIGAND" {
		Te.Fatalf("ligand: %+v", lig)
	}
	if !lig.Atoms[4].Het {
		Te.Error("ligand atom not flagged HETATM")
	}
	water := model.Water["A.301"]
	if water == nil || water.Name != "HOH" {
		Te.Fatalf("water: %+v", water)
	}
	fmt.Println("small.pdb:", len(model.Polymer), "chain,", len(model.NonPolymer), "ligand,", len(model.Water), "water")
}

func TestTwoAtomScenario(Te *testing.T) {
	p, err := PDBStringRead(twoAtomPDB)
	if err != nil {
		Te.Fatal(err)
	}
	if len(p.Models) != 1 {
		Te.Fatalf("models: %d", len(p.Models))
	}
	chain := p.Models[0].Polymer["A"]
	if chain == nil || chain.Residues.Len() != 1 {
		Te.Fatal("expected one chain with one residue")
	}
	res := chain.Residues.Get("A.1")
	if res.Number != 1 || len(res.Atoms) != 2 || res.Atoms[1] == nil || res.Atoms[2] == nil {
		Te.Fatalf("residue: %+v", res)
	}
}

func TestMissingRecordTolerance(Te *testing.T) {
	p, err := PDBStringRead(twoAtomPDB)
	if err != nil {
		Te.Fatal(err)
	}
	if p.Description.Code != "" || p.Description.DepositionDate != nil {
		Te.Errorf("description should be empty: %+v", p.Description)
	}
	if p.Quality.Resolution != nil || p.Quality.Rvalue != nil {
		Te.Errorf("quality should be empty: %+v", p.Quality)
	}
	if len(p.Geometry.Assemblies) != 0 || p.Geometry.Crystallography.SpaceGroup != "" {
		Te.Errorf("geometry should be empty: %+v", p.Geometry)
	}
}

func TestElementInference(Te *testing.T) {
	//the element columns are empty in both lines
	text := "ATOM      1 1HG1 VAL A   1      11.618  41.945  26.851  1.00 22.94\n" +
		"ATOM      2  CA  VAL A   1      12.000  42.000  27.000  1.00 20.00\n" +
		"TER       3      VAL A   1\nEND\n"
	p, err := PDBStringRead(text)
	if err != nil {
		Te.Fatal(err)
	}
	atoms := p.Models[0].Polymer["A"].Residues.Get("A.1").Atoms
	if atoms[1].Element != "H" {
		Te.Errorf("1HG1 should infer H, got %q", atoms[1].Element)
	}
	if atoms[2].Element != "C" {
		Te.Errorf("CA should infer C, got %q", atoms[2].Element)
	}
}

func TestNoElementNoName(Te *testing.T) {
	text := "ATOM      1      VAL A   1      11.618  41.945  26.851  1.00 22.94\nEND\n"
	_, err := PDBStringRead(text)
	if err == nil {
		Te.Fatal("expected an error for an atom with no element and no name")
	}
	fmt.Println("got expected error:", err)
}

func TestChargeParsing(Te *testing.T) {
	base := "ATOM      1  N   VAL A   1      11.618  41.945  26.851  1.00 22.94           N"
	for _, tc := range []struct {
		field string
		want  int
	}{
		{"1-", -1}, // digits-then-sign, only parseable reversed
		{"2+", 2},
		{"-1", -1},
		{"  ", 0},
	} {
		p, err := PDBStringRead(base + tc.field + "\nEND\n")
		if err != nil {
			Te.Fatal(err)
		}
		at := p.Models[0].NonPolymer["A.1"].Atoms[1]
		if at.Charge != tc.want {
			Te.Errorf("charge field %q: got %d, want %d", tc.field, at.Charge, tc.want)
		}
	}
}

func TestNoTERMeansNoPolymer(Te *testing.T) {
	text := "ATOM      1  N   VAL A   1      11.618  41.945  26.851  1.00 22.94           N\nEND\n"
	p, err := PDBStringRead(text)
	if err != nil {
		Te.Fatal(err)
	}
	model := p.Models[0]
	if len(model.Polymer) != 0 || len(model.NonPolymer) != 1 {
		Te.Errorf("atoms with no TER should land in NonPolymer: %+v", model)
	}
}

func TestPDBDateParsing(Te *testing.T) {
	for _, tc := range []struct {
		in   string
		year int
	}{
		{"28-MAR-07", 2007},
		{"01-JAN-69", 1969},
		{"31-DEC-68", 2068},
		{"15-SEP-99", 1999},
	} {
		d := parsePDBDate(tc.in)
		if d == nil || d.Year() != tc.year {
			Te.Errorf("%s: got %v, want year %d", tc.in, d, tc.year)
		}
	}
	if parsePDBDate("NOT-A-DATE") != nil {
		Te.Error("junk date should parse to nil")
	}
}

func TestResidueMapOrder(Te *testing.T) {
	m := NewResidueMap()
	for _, id := range []string{"A.2", "A.1", "A.10"} {
		m.Add(id, &Residue{Name: "GLY"})
	}
	if !reflect.DeepEqual(m.IDs(), []string{"A.2", "A.1", "A.10"}) {
		Te.Errorf("insertion order lost: %v", m.IDs())
	}
	m.Add("A.1", &Residue{Name: "ALA"})
	if len(m.IDs()) != 3 || m.Get("A.1").Name != "ALA" {
		Te.Error("re-adding an id should replace in place")
	}
}
