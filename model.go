/*
 * model.go, part of gostruc.
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
	"strconv"
	"strings"
	"time"
)

// PDB is the canonical structure model that both the .pdb and .cif decoders
// produce and the PDB writer consumes. It is a plain value object: build it
// once per parsed document and read from it; it holds no external resources.
type PDB struct {
	Description Description
	Experiment  Experiment
	Quality     Quality
	Geometry    Geometry
	Models      []*Model
}

// Description collects the header-level metadata of an entry.
type Description struct {
	Code           string // 4-character PDB id, "" if unknown
	Title          string
	Classification string
	DepositionDate *time.Time
	Keywords       []string
	Authors        []string
}

// Experiment describes how the structure was obtained.
type Experiment struct {
	Technique        string
	SourceOrganism   string
	ExpressionSystem string
	MissingResidues  []MissingResidue
}

// MissingResidue is a residue present in the deposited sequence but with no
// observed coordinates. ID is the usual "{chain}.{number}{insertion}" key.
type MissingResidue struct {
	Name string
	ID   string
}

// Quality holds the standard crystallographic quality metrics. A nil field
// means the value was not present in the source file.
type Quality struct {
	Resolution *float64 // Angstroms
	Rvalue     *float64
	Rfree      *float64
}

// Geometry holds the biological assemblies and the crystallographic cell.
type Geometry struct {
	Assemblies      []*Assembly
	Crystallography Crystallography
}

// Assembly is one biological assembly, a multimer generated by applying
// rigid-body transformations to subsets of chains.
type Assembly struct {
	ID                int
	Software          string
	DeltaEnergy       *float64
	SurfaceArea       *float64
	BuriedSurfaceArea *float64
	Transformations   []*Transformation
}

// Transformation applies a rotation matrix plus a translation vector to the
// named chains.
type Transformation struct {
	Chains []string
	Matrix [3][3]float64
	Vector [3]float64
}

// Crystallography holds the space group and unit cell, when present.
// UnitCell is a, b, c, alpha, beta, gamma.
type Crystallography struct {
	SpaceGroup string
	UnitCell   []float64
}

// Model is one NMR/ensemble frame or crystallographic state. The four
// containers separate polymer chains from free-standing molecules.
type Model struct {
	Polymer    map[string]*Polymer
	NonPolymer map[string]*NonPolymer
	Water      map[string]*NonPolymer
	Branched   map[string]*NonPolymer
}

// NewModel returns a Model with all containers ready to take atoms.
func NewModel() *Model {
	return &Model{
		Polymer:    map[string]*Polymer{},
		NonPolymer: map[string]*NonPolymer{},
		Water:      map[string]*NonPolymer{},
		Branched:   map[string]*NonPolymer{},
	}
}

// Polymer is one chain of covalently linked residues.
type Polymer struct {
	InternalID string
	Helices    [][]string // residue ids, one inner list per helix
	Strands    [][]string
	Residues   *ResidueMap
	Sequence   string // 1-letter codes, authoritative over observed residues
}

// Residue is one residue of a polymer chain. Atoms are keyed by their
// serial number, which is unique within a model.
type Residue struct {
	Name     string
	FullName string // English name from HETNAM/chem_comp, "" if none
	Atoms    map[int]*Atom
	Number   int // 1-indexed order of first appearance in the atom stream
}

// NonPolymer is a free-standing molecule: a ligand, an ion, or (in the
// Water and Branched containers) a water molecule or a sugar tree.
// Polymer is the chain the molecule is associated with.
type NonPolymer struct {
	Name       string
	FullName   string
	InternalID string
	Polymer    string
	Atoms      map[int]*Atom
}

// Atom is one atom record. Occupancy defaults to 1 when the source omits
// it; Charge 0 means no charge field; an all-zero Anisotropy array means no
// anisotropy record, and the writer prints no ANISOU line for it. Name is
// "" when it would just repeat the element symbol.
type Atom struct {
	X, Y, Z    float64 // Angstroms
	Element    string
	Name       string
	Occupancy  float64
	Bvalue     float64
	Charge     int
	AltLoc     string
	Anisotropy [6]float64
	Het        bool
}

func (a *Atom) hasAnisotropy() bool {
	for _, v := range a.Anisotropy {
		if v != 0 {
			return true
		}
	}
	return false
}

// ResidueMap is a map from residue ids to residues that remembers insertion
// order. Secondary-structure spans and the PDB writer both depend on
// walking residues in the order their first atoms appeared.
type ResidueMap struct {
	order []string
	items map[string]*Residue
}

func NewResidueMap() *ResidueMap {
	return &ResidueMap{items: map[string]*Residue{}}
}

// Get returns the residue for an id, or nil.
func (m *ResidueMap) Get(id string) *Residue { return m.items[id] }

// Add inserts a residue under id. Re-adding an existing id replaces the
// residue without disturbing its position.
func (m *ResidueMap) Add(id string, r *Residue) {
	if _, ok := m.items[id]; !ok {
		m.order = append(m.order, id)
	}
	m.items[id] = r
}

// IDs returns the residue ids in insertion order. The returned slice is the
// map's own backing array; callers must not modify it.
func (m *ResidueMap) IDs() []string { return m.order }

func (m *ResidueMap) Len() int { return len(m.items) }

// addPolymerAtom inserts an atom into a polymer chain, creating the chain
// and the residue on first contact. A new residue is numbered by the count
// of residues already in the chain plus one, regardless of the sequence
// number in the source file.
func (m *Model) addPolymerAtom(chainID, internalID, resID, resName, fullName string, serial int, at *Atom) {
	chain := m.Polymer[chainID]
	if chain == nil {
		chain = &Polymer{
			InternalID: internalID,
			Helices:    [][]string{},
			Strands:    [][]string{},
			Residues:   NewResidueMap(),
		}
		m.Polymer[chainID] = chain
	}
	res := chain.Residues.Get(resID)
	if res == nil {
		res = &Residue{
			Name:     resName,
			FullName: fullName,
			Atoms:    map[int]*Atom{},
			Number:   chain.Residues.Len() + 1,
		}
		chain.Residues.Add(resID, res)
	}
	res.Atoms[serial] = at
}

// addLooseAtom inserts an atom into one of the non-polymer containers
// (NonPolymer, Water or Branched), creating the molecule on first contact.
func (m *Model) addLooseAtom(container map[string]*NonPolymer, molID, name, fullName, internalID, polymerID string, serial int, at *Atom) {
	mol := container[molID]
	if mol == nil {
		mol = &NonPolymer{
			Name:       name,
			FullName:   fullName,
			InternalID: internalID,
			Polymer:    polymerID,
			Atoms:      map[int]*Atom{},
		}
		container[molID] = mol
	}
	mol.Atoms[serial] = at
}

// splitResidueID breaks a "{chain}.{number}{insertion}" residue id into its
// parts. The insertion code is "" when absent.
func splitResidueID(id string) (chain string, number int, insertion string) {
	dot := strings.Index(id, ".")
	if dot < 0 {
		return id, 0, ""
	}
	chain = id[:dot]
	rest := id[dot+1:]
	end := 0
	for end < len(rest) && (rest[end] == '-' && end == 0 || rest[end] >= '0' && rest[end] <= '9') {
		end++
	}
	number, _ = strconv.Atoi(rest[:end])
	insertion = rest[end:]
	return chain, number, insertion
}
