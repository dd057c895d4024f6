/*
 * molecule.go, part of gostruc.
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
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// MolAtom is one atom of a flattened molecule: just an atomic number and a
// position, with none of the residue bookkeeping of the structure model.
// AtomicNumber 0 means the element symbol was not recognized.
type MolAtom struct {
	AtomicNumber int
	Position     [3]float64
}

// PeriodicCell describes periodic boundary conditions as three lattice
// vectors plus per-dimension periodicity flags.
type PeriodicCell struct {
	LatticeVectors [3][3]float64
	IsPeriodic     [3]bool
}

// Volume returns the cell volume, the absolute determinant of the lattice
// vectors.
func (c *PeriodicCell) Volume() float64 {
	m := mat.NewDense(3, 3, []float64{
		c.LatticeVectors[0][0], c.LatticeVectors[0][1], c.LatticeVectors[0][2],
		c.LatticeVectors[1][0], c.LatticeVectors[1][1], c.LatticeVectors[1][2],
		c.LatticeVectors[2][0], c.LatticeVectors[2][1], c.LatticeVectors[2][2],
	})
	return math.Abs(mat.Det(m))
}

// Molecule is the flat representation handed to quantum-chemistry tooling:
// a charge, a spin multiplicity and a list of atoms, optionally in a
// periodic cell.
type Molecule struct {
	Charge       int
	Multiplicity int
	Atoms        []MolAtom
	Cell         *PeriodicCell
}

func (m *Molecule) Len() int { return len(m.Atoms) }

// Distance returns the distance between atoms i and j, in Angstroms.
func (m *Molecule) Distance(i, j int) float64 {
	var sum float64
	for d := 0; d < 3; d++ {
		diff := m.Atoms[i].Position[d] - m.Atoms[j].Position[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Corrupted checks that the charge and multiplicity are consistent with
// the electron count: the electrons not accounted for as unpaired must
// pair up. A nil return means the molecule is sane.
func (m *Molecule) Corrupted() error {
	electrons := -m.Charge
	for _, at := range m.Atoms {
		electrons += at.AtomicNumber
	}
	unpaired := m.Multiplicity - 1
	if (electrons-unpaired)%2 != 0 {
		return Error{
			fmt.Sprintf("impossible combination of %d electrons, charge %d and multiplicity %d",
				electrons, m.Charge, m.Multiplicity),
			"", []string{"Corrupted"}, true,
		}
	}
	return nil
}

// atomicNumber resolves an element symbol case-insensitively, so the
// all-caps symbols some PDB files carry ("ZN", "FE") still resolve.
func atomicNumber(element string) int {
	element = strings.TrimSpace(element)
	if n, ok := symbolNumber[element]; ok {
		return n
	}
	if element == "" {
		return 0
	}
	norm := strings.ToUpper(element[:1]) + strings.ToLower(element[1:])
	return symbolNumber[norm]
}

// Molecule flattens one model of a structure into a Molecule with the
// given charge and multiplicity. Polymer chains come first in chain order,
// then ligands, branched molecules and waters, each ordered by atom
// serial.
func (p *PDB) Molecule(model, charge, multiplicity int) (*Molecule, error) {
	if model < 0 || model >= len(p.Models) {
		return nil, Error{
			fmt.Sprintf("no model %d in a structure with %d", model, len(p.Models)),
			p.Description.Code, []string{"Molecule"}, true,
		}
	}
	m := &Molecule{Charge: charge, Multiplicity: multiplicity}
	src := p.Models[model]
	add := func(atoms map[int]*Atom) {
		for _, serial := range sortedSerials(atoms) {
			at := atoms[serial]
			m.Atoms = append(m.Atoms, MolAtom{
				AtomicNumber: atomicNumber(at.Element),
				Position:     [3]float64{at.X, at.Y, at.Z},
			})
		}
	}
	for _, chainID := range sortedChainIDs(src) {
		chain := src.Polymer[chainID]
		for _, resID := range chain.Residues.IDs() {
			add(chain.Residues.Get(resID).Atoms)
		}
	}
	for _, container := range []map[string]*NonPolymer{src.NonPolymer, src.Branched, src.Water} {
		ids := make([]string, 0, len(container))
		for id := range container {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return minSerial(container[ids[i]].Atoms) < minSerial(container[ids[j]].Atoms)
		})
		for _, id := range ids {
			add(container[id].Atoms)
		}
	}
	if len(m.Atoms) == 0 {
		return nil, Error{NotEnoughAtoms, p.Description.Code, []string{"Molecule"}, true}
	}
	return m, nil
}

// symbolByNumber is the inverse of symbolNumber, built once.
var symbolByNumber = map[int]string{}

func init() {
	for sym, n := range symbolNumber {
		symbolByNumber[n] = sym
	}
}

// XYZString renders the molecule in xyz format: an atom count, a comment
// line, then one "symbol x y z" line per atom.
func (m *Molecule) XYZString(comment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", len(m.Atoms), comment)
	for _, at := range m.Atoms {
		sym := symbolByNumber[at.AtomicNumber]
		if sym == "" {
			sym = "X"
		}
		fmt.Fprintf(&b, "%-2s %15.10f %15.10f %15.10f\n",
			sym, at.Position[0], at.Position[1], at.Position[2])
	}
	return b.String()
}

// MoleculeFromXYZ parses xyz-format text. The count/comment header is
// optional; lines that don't look like atom records are skipped.
func MoleculeFromXYZ(text string, charge, multiplicity int) (*Molecule, error) {
	m := &Molecule{Charge: charge, Multiplicity: multiplicity}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		x, errx := strconv.ParseFloat(fields[1], 64)
		y, erry := strconv.ParseFloat(fields[2], 64)
		z, errz := strconv.ParseFloat(fields[3], 64)
		if errx != nil || erry != nil || errz != nil {
			continue
		}
		m.Atoms = append(m.Atoms, MolAtom{
			AtomicNumber: atomicNumber(fields[0]),
			Position:     [3]float64{x, y, z},
		})
	}
	if len(m.Atoms) == 0 {
		return nil, Error{NotEnoughAtoms, "xyz input", []string{"MoleculeFromXYZ"}, true}
	}
	return m, nil
}
