/*
 * pdbwrite.go, part of gostruc.
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
	"sort"
	"strconv"
	"strings"
)

// PDBWriteOptions selects which metadata sections the PDB writer emits.
// Coordinate records are always written.
type PDBWriteOptions struct {
	Header          bool // HEADER, TITLE, EXPDTA and AUTHOR
	Source          bool
	Keyword         bool
	Seqres          bool
	Hetnam          bool
	Remark          bool // REMARK 2, 3, 350 and 465
	Crystallography bool
}

// DefaultPDBWriteOptions returns the writer defaults: the derived SEQRES,
// HETNAM and REMARK sections on, the rest off.
func DefaultPDBWriteOptions() *PDBWriteOptions {
	return &PDBWriteOptions{Seqres: true, Hetnam: true, Remark: true}
}

// FullPDBWriteOptions returns options with every section enabled.
func FullPDBWriteOptions() *PDBWriteOptions {
	return &PDBWriteOptions{Header: true, Source: true, Keyword: true,
		Seqres: true, Hetnam: true, Remark: true, Crystallography: true}
}

// PDBWriteString serializes a structure back to fixed-column PDB text,
// ending in END. Passing nil options means DefaultPDBWriteOptions.
func PDBWriteString(p *PDB, o *PDBWriteOptions) string {
	if o == nil {
		o = DefaultPDBWriteOptions()
	}
	var b strings.Builder
	if o.Header {
		writeHeaderLine(&b, &p.Description)
		writeContinued(&b, "TITLE", p.Description.Title)
	}
	if o.Source {
		writeSource(&b, &p.Experiment)
	}
	if o.Keyword {
		writeContinued(&b, "KEYWDS", strings.Join(p.Description.Keywords, ", "))
	}
	if o.Header {
		if p.Experiment.Technique != "" {
			fmt.Fprintf(&b, "EXPDTA    %s\n", p.Experiment.Technique)
		}
		writeContinued(&b, "AUTHOR", strings.Join(p.Description.Authors, ","))
	}
	if o.Remark {
		writeQualityRemarks(&b, &p.Quality)
		writeAssemblyRemarks(&b, p.Geometry.Assemblies)
		writeMissingResidueRemarks(&b, p.Experiment.MissingResidues)
	}
	if len(p.Models) > 0 {
		writeSecondaryStructure(&b, p.Models[0])
		if o.Seqres {
			writeSeqres(&b, p.Models[0])
		}
	}
	if o.Hetnam {
		writeHetnam(&b, p.Models)
	}
	if o.Crystallography {
		writeCryst1(&b, &p.Geometry.Crystallography)
	}
	multi := len(p.Models) > 1
	for i, model := range p.Models {
		if multi {
			fmt.Fprintf(&b, "MODEL     %4d\n", i+1)
		}
		writeModelAtoms(&b, model)
		if multi {
			b.WriteString("ENDMDL\n")
		}
	}
	b.WriteString("END\n")
	return b.String()
}

// PDBFileWrite writes a structure to a PDB file.
func PDBFileWrite(name string, p *PDB, o *PDBWriteOptions) error {
	return os.WriteFile(name, []byte(PDBWriteString(p, o)), 0644)
}

// writeContinued emits a tag with its text wrapped over continuation
// lines. The continuation number sits in columns 9-10, so the reader's
// column-11-onward merge reassembles the original text.
func writeContinued(b *strings.Builder, tag, text string) {
	lines := wrapWords(text, 69)
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(b, "%-6s    %s\n", tag, line)
		} else {
			fmt.Fprintf(b, "%-6s  %2d %s\n", tag, i+1, line)
		}
	}
}

// wrapWords packs words greedily into lines of at most width characters.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := []string{}
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= width {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}

func writeHeaderLine(b *strings.Builder, desc *Description) {
	if desc.Classification == "" && desc.DepositionDate == nil && desc.Code == "" {
		return
	}
	date := ""
	if desc.DepositionDate != nil {
		t := *desc.DepositionDate
		date = fmt.Sprintf("%02d-%s-%02d", t.Day(),
			strings.ToUpper(t.Format("Jan")), t.Year()%100)
	}
	fmt.Fprintf(b, "HEADER    %-40s%9s   %4s\n", desc.Classification, date, desc.Code)
}

func writeSource(b *strings.Builder, exp *Experiment) {
	parts := []string{"MOL_ID: 1;"}
	if exp.SourceOrganism != "" {
		parts = append(parts, "ORGANISM_SCIENTIFIC: "+exp.SourceOrganism+";")
	}
	if exp.ExpressionSystem != "" {
		parts = append(parts, "EXPRESSION_SYSTEM: "+exp.ExpressionSystem+";")
	}
	if len(parts) > 1 {
		writeContinued(b, "SOURCE", strings.Join(parts, " "))
	}
}

// floatText prints a float with the shortest decimal representation that
// reads back exactly.
func floatText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeQualityRemarks(b *strings.Builder, q *Quality) {
	if q.Resolution != nil {
		b.WriteString("REMARK   2\n")
		fmt.Fprintf(b, "REMARK   2 RESOLUTION.    %s ANGSTROMS.\n", floatText(*q.Resolution))
	}
	if q.Rvalue != nil || q.Rfree != nil {
		b.WriteString("REMARK   3\n")
	}
	if q.Rvalue != nil {
		fmt.Fprintf(b, "REMARK   3   R VALUE            (WORKING SET) : %s\n", floatText(*q.Rvalue))
	}
	if q.Rfree != nil {
		fmt.Fprintf(b, "REMARK   3   FREE R VALUE                     : %s\n", floatText(*q.Rfree))
	}
}

// writeAssemblyRemarks emits the REMARK 350 block. The reader pairs runs
// of BIOMOLECULE lines with the run that follows them, dropping everything
// before the first header, so the block keeps a preamble line ahead of the
// first BIOMOLECULE.
func writeAssemblyRemarks(b *strings.Builder, assemblies []*Assembly) {
	if len(assemblies) == 0 {
		return
	}
	b.WriteString("REMARK 350 COORDINATES FOR A COMPLETE MULTIMER REPRESENTING THE KNOWN\n")
	b.WriteString("REMARK 350 BIOLOGICALLY SIGNIFICANT OLIGOMERIZATION STATE\n")
	for _, a := range assemblies {
		fmt.Fprintf(b, "REMARK 350 BIOMOLECULE: %d\n", a.ID)
		if a.Software != "" {
			fmt.Fprintf(b, "REMARK 350 SOFTWARE USED: %s\n", a.Software)
		}
		if a.BuriedSurfaceArea != nil {
			fmt.Fprintf(b, "REMARK 350 TOTAL BURIED SURFACE AREA: %s ANGSTROM**2\n",
				floatText(*a.BuriedSurfaceArea))
		}
		if a.SurfaceArea != nil {
			fmt.Fprintf(b, "REMARK 350 SURFACE AREA OF THE COMPLEX: %s ANGSTROM**2\n",
				floatText(*a.SurfaceArea))
		}
		if a.DeltaEnergy != nil {
			fmt.Fprintf(b, "REMARK 350 CHANGE IN SOLVENT FREE ENERGY: %s KCAL/MOL\n",
				floatText(*a.DeltaEnergy))
		}
		for ti, t := range a.Transformations {
			fmt.Fprintf(b, "REMARK 350 APPLY THE FOLLOWING TO CHAINS: %s\n",
				strings.Join(t.Chains, ", "))
			for r := 0; r < 3; r++ {
				fmt.Fprintf(b, "REMARK 350   BIOMT%d %3d%10.6f%10.6f%10.6f%15.5f\n",
					r+1, ti+1, t.Matrix[r][0], t.Matrix[r][1], t.Matrix[r][2], t.Vector[r])
			}
		}
	}
}

func writeMissingResidueRemarks(b *strings.Builder, missing []MissingResidue) {
	if len(missing) == 0 {
		return
	}
	b.WriteString("REMARK 465 MISSING RESIDUES\n")
	b.WriteString("REMARK 465 THE FOLLOWING RESIDUES WERE NOT LOCATED IN THE\n")
	b.WriteString("REMARK 465 EXPERIMENT.\n")
	for _, r := range missing {
		chain, rest := r.ID, ""
		if dot := strings.Index(r.ID, "."); dot >= 0 {
			chain, rest = r.ID[:dot], r.ID[dot+1:]
		}
		fmt.Fprintf(b, "REMARK 465     %3s %s  %s\n", r.Name, chain, rest)
	}
}

// oneChar pads an absent 1-character field (alt locations, insertion
// codes, chain ids) to a space.
func oneChar(s string) string {
	if s == "" {
		return " "
	}
	return s[:1]
}

func sortedChainIDs(model *Model) []string {
	ids := make([]string, 0, len(model.Polymer))
	for id := range model.Polymer {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func writeSecondaryStructure(b *strings.Builder, model *Model) {
	helixSerial, strandSerial := 0, 0
	for _, chainID := range sortedChainIDs(model) {
		chain := model.Polymer[chainID]
		for _, span := range chain.Helices {
			if len(span) == 0 {
				continue
			}
			helixSerial++
			sc, sn, si := splitResidueID(span[0])
			ec, en, ei := splitResidueID(span[len(span)-1])
			fmt.Fprintf(b, "HELIX  %3d %3d %3s %1s %4d%1s %3s %1s %4d%1s\n",
				helixSerial, helixSerial,
				residueName(chain, span[0]), sc, sn, si,
				residueName(chain, span[len(span)-1]), ec, en, ei)
		}
		for _, span := range chain.Strands {
			if len(span) == 0 {
				continue
			}
			strandSerial++
			sc, sn, si := splitResidueID(span[0])
			ec, en, ei := splitResidueID(span[len(span)-1])
			fmt.Fprintf(b, "SHEET  %3d %3d%2d %3s %1s%4d%1s %3s %1s%4d%1s\n",
				strandSerial, strandSerial, 1,
				residueName(chain, span[0]), sc, sn, si,
				residueName(chain, span[len(span)-1]), ec, en, ei)
		}
	}
}

func residueName(chain *Polymer, id string) string {
	if res := chain.Residues.Get(id); res != nil {
		return res.Name
	}
	return ""
}

// writeSeqres regenerates SEQRES from each chain's sequence string, 13
// residues per line, 1-letter codes mapped back to 3-letter names.
func writeSeqres(b *strings.Builder, model *Model) {
	for _, chainID := range sortedChainIDs(model) {
		seq := model.Polymer[chainID].Sequence
		if seq == "" {
			continue
		}
		names := make([]string, 0, len(seq))
		for _, c := range seq {
			names = append(names, threeLetterCode(string(c)))
		}
		for i := 0; i*13 < len(names); i++ {
			end := (i + 1) * 13
			if end > len(names) {
				end = len(names)
			}
			fmt.Fprintf(b, "SEQRES %3d %1s %4d  %s\n",
				i+1, chainID, len(names), strings.Join(names[i*13:end], " "))
		}
	}
}

// writeHetnam emits one HETNAM entry per distinct het code with a known
// full name, wrapped at 55 characters. Continuation chunks are
// concatenated directly by the reader.
func writeHetnam(b *strings.Builder, models []*Model) {
	names := map[string]string{}
	for _, model := range models {
		for _, chain := range model.Polymer {
			for _, id := range chain.Residues.IDs() {
				res := chain.Residues.Get(id)
				if res.FullName != "" {
					names[res.Name] = res.FullName
				}
			}
		}
		for _, container := range []map[string]*NonPolymer{model.NonPolymer, model.Branched} {
			for _, mol := range container {
				if mol.FullName != "" {
					names[mol.Name] = mol.FullName
				}
			}
		}
	}
	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		text := names[code]
		for i := 0; i*55 < len(text); i++ {
			end := (i + 1) * 55
			if end > len(text) {
				end = len(text)
			}
			if i == 0 {
				fmt.Fprintf(b, "HETNAM     %3s %s\n", code, text[:end])
			} else {
				fmt.Fprintf(b, "HETNAM  %2d %3s %s\n", i+1, code, text[i*55:end])
			}
		}
	}
}

func writeCryst1(b *strings.Builder, c *Crystallography) {
	if len(c.UnitCell) < 6 {
		return
	}
	u := c.UnitCell
	fmt.Fprintf(b, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f %-11s\n",
		u[0], u[1], u[2], u[3], u[4], u[5], c.SpaceGroup)
}

func sortedSerials(atoms map[int]*Atom) []int {
	serials := make([]int, 0, len(atoms))
	for s := range atoms {
		serials = append(serials, s)
	}
	sort.Ints(serials)
	return serials
}

// atomNameField renders the 4-character atom name column: short names
// start one column in, 4-character names fill the field.
func atomNameField(name string) string {
	if len(name) < 4 {
		return fmt.Sprintf(" %-3s", name)
	}
	return fmt.Sprintf("%-4s", name)
}

func chargeField(charge int) string {
	if charge == 0 {
		return ""
	}
	sign := "+"
	if charge < 0 {
		sign = "-"
		charge = -charge
	}
	return strconv.Itoa(charge) + sign
}

// compactAniso renders one anisotropy value the way the legacy ecosystem
// expects: values below 1 in magnitude lose the leading zero before the
// decimal point, anything else is cut to 5 characters including the sign.
func compactAniso(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	switch {
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	}
	if len(s) > 5 {
		s = s[:5]
	}
	return s
}

func writeAtomLine(b *strings.Builder, serial int, at *Atom, resName, chain string, num int, icode string) {
	tag := "ATOM"
	if at.Het {
		tag = "HETATM"
	}
	name := at.Name
	if name == "" {
		name = at.Element
	}
	fmt.Fprintf(b, "%-6s%5d %s%s%3s %s%4d%s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%s\n",
		tag, serial, atomNameField(name), oneChar(at.AltLoc), resName,
		oneChar(chain), num, oneChar(icode),
		at.X, at.Y, at.Z, at.Occupancy, at.Bvalue, at.Element, chargeField(at.Charge))
	if at.hasAnisotropy() {
		fmt.Fprintf(b, "ANISOU%5d %s%s%3s %s%4d%s %7s%7s%7s%7s%7s%7s\n",
			serial, atomNameField(name), oneChar(at.AltLoc), resName,
			oneChar(chain), num, oneChar(icode),
			compactAniso(at.Anisotropy[0]), compactAniso(at.Anisotropy[1]),
			compactAniso(at.Anisotropy[2]), compactAniso(at.Anisotropy[3]),
			compactAniso(at.Anisotropy[4]), compactAniso(at.Anisotropy[5]))
	}
}

// minSerial keys the ordering of loose molecules in the output.
func minSerial(atoms map[int]*Atom) int {
	first := true
	min := 0
	for s := range atoms {
		if first || s < min {
			min = s
			first = false
		}
	}
	return min
}

func writeLooseMolecules(b *strings.Builder, container map[string]*NonPolymer, chainOf func(id string, mol *NonPolymer) string) {
	ids := make([]string, 0, len(container))
	for id := range container {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return minSerial(container[ids[i]].Atoms) < minSerial(container[ids[j]].Atoms)
	})
	for _, id := range ids {
		mol := container[id]
		_, num, icode := splitResidueID(id)
		chain := chainOf(id, mol)
		for _, serial := range sortedSerials(mol.Atoms) {
			writeAtomLine(b, serial, mol.Atoms[serial], mol.Name, chain, num, icode)
		}
	}
}

// writeModelAtoms emits the coordinate records of one model: the polymer
// chains first, each closed by a TER line, then ligands and waters, so the
// reader's last-TER rule classifies every atom the way it started out.
func writeModelAtoms(b *strings.Builder, model *Model) {
	for _, chainID := range sortedChainIDs(model) {
		chain := model.Polymer[chainID]
		last := 0
		lastRes := ""
		for _, resID := range chain.Residues.IDs() {
			res := chain.Residues.Get(resID)
			_, num, icode := splitResidueID(resID)
			for _, serial := range sortedSerials(res.Atoms) {
				writeAtomLine(b, serial, res.Atoms[serial], res.Name, chainID, num, icode)
				last = serial
			}
			lastRes = resID
		}
		if lastRes != "" {
			res := chain.Residues.Get(lastRes)
			_, num, icode := splitResidueID(lastRes)
			fmt.Fprintf(b, "TER   %5d      %3s %s%4d%s\n",
				last+1, res.Name, oneChar(chainID), num, oneChar(icode))
		}
	}
	writeLooseMolecules(b, model.NonPolymer, func(id string, mol *NonPolymer) string {
		if mol.Polymer != "" {
			return mol.Polymer
		}
		return "Z"
	})
	writeLooseMolecules(b, model.Branched, func(id string, mol *NonPolymer) string {
		if mol.Polymer != "" {
			return mol.Polymer
		}
		return "Z"
	})
	writeLooseMolecules(b, model.Water, func(id string, mol *NonPolymer) string {
		chain, _, _ := splitResidueID(id)
		return chain
	})
}
