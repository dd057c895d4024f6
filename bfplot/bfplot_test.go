/*
 * bfplot_test.go, part of gostruc
 *
 * Copyright 2024 The goStruc developers
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package bfplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	struc "github.com/rmera/gostruc"
)

func TestProfile(Te *testing.T) {
	pdb, err := struc.Open("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	profile, err := Profile(pdb, 0, "A")
	if err != nil {
		Te.Fatal(err)
	}
	if len(profile) != 1 {
		Te.Fatalf("expected 1 residue in the profile, got %d", len(profile))
	}
	if profile[0].X != 1 || math.Abs(profile[0].Y-21.47) > 1e-9 {
		Te.Errorf("profile point: %+v", profile[0])
	}
	if _, err := Profile(pdb, 0, "Q"); err == nil {
		Te.Error("expected an error for a nonexistent chain")
	}
	if _, err := Profile(pdb, 5, "A"); err == nil {
		Te.Error("expected an error for a nonexistent model")
	}
}

func TestPlot(Te *testing.T) {
	pdb, err := struc.Open("../test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "bfactors")
	if err := Plot(pdb, 0, []string{"A"}, "B-factor profile", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Errorf("plot file not written: %v", err)
	}
}
