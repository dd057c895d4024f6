/*
 * bfplot.go, part of gostruc
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

//Package bfplot draws per-residue B-factor profiles from parsed
//structures, a quick way to eyeball the flexible regions of a chain.
package bfplot

import (
	"fmt"

	struc "github.com/rmera/gostruc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicProfilePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = vg.Millimeter * 3
	p.Title.Text = title
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "B-factor"
	p.Add(plotter.NewGrid())
	return p
}

// Profile returns the mean B-factor of each residue of a chain, in
// residue order, as plottable points. X is the residue's 1-indexed
// position in the chain.
func Profile(pdb *struc.PDB, model int, chain string) (plotter.XYs, error) {
	if model < 0 || model >= len(pdb.Models) {
		return nil, fmt.Errorf("bfplot: no model %d in structure %s", model, pdb.Description.Code)
	}
	polymer, ok := pdb.Models[model].Polymer[chain]
	if !ok {
		return nil, fmt.Errorf("bfplot: no chain %s in structure %s", chain, pdb.Description.Code)
	}
	profile := make(plotter.XYs, 0, polymer.Residues.Len())
	for i, resID := range polymer.Residues.IDs() {
		res := polymer.Residues.Get(resID)
		var sum float64
		var n int
		for _, at := range res.Atoms {
			sum += at.Bvalue
			n++
		}
		if n == 0 {
			continue
		}
		profile = append(profile, plotter.XY{X: float64(i + 1), Y: sum / float64(n)})
	}
	return profile, nil
}

// Plot draws one line per given chain and saves the result as
// plotname.png.
func Plot(pdb *struc.PDB, model int, chains []string, title, plotname string) error {
	p := basicProfilePlot(title)
	for _, chain := range chains {
		profile, err := Profile(pdb, model, chain)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(profile)
		if err != nil {
			return err
		}
		p.Add(line)
		p.Legend.Add(chain, line)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}
