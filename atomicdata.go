/*
 * atomicdata.go, part of gostruc.
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

// A map from element symbols to atomic numbers.
// Note that just common "bio-elements" are present.
var symbolNumber = map[string]int{
	"H":  1,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Na": 11,
	"Mg": 12,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Cr": 24,
	"Mn": 25,
	"Fe": 26,
	"Co": 27,
	"Ni": 28,
	"Cu": 29,
	"Zn": 30,
	"Se": 34,
	"Br": 35,
	"I":  53,
}

// A map between 3-letter residue names and the corresponding 1-letter
// codes. Protein residues plus the standard deoxy- and ribonucleotides.
// Anything absent from here becomes 'X' when building a sequence.
var residueCodes = map[string]string{
	"ALA": "A", "ARG": "R", "ASN": "N", "ASP": "D", "CYS": "C",
	"GLU": "E", "GLN": "Q", "GLY": "G", "HIS": "H", "ILE": "I",
	"LEU": "L", "LYS": "K", "MET": "M", "PHE": "F", "PRO": "P",
	"SER": "S", "THR": "T", "TRP": "W", "TYR": "Y", "VAL": "V",
	"SEC": "U", //Selenocysteine!
	"MSE": "M",

	//deoxynucleotides
	"DA": "A", "DC": "C", "DG": "G", "DT": "T", "DI": "I", "DU": "U",

	//ribonucleotides
	"A": "A", "C": "C", "G": "G", "U": "U", "I": "I",
}

// Amino acids only, in a fixed order, so the one-to-three inverse built in
// init() is deterministic. One-letter codes with no entry become "UNK" on
// output.
var aminoThree = []string{
	"ALA", "ARG", "ASN", "ASP", "CYS",
	"GLU", "GLN", "GLY", "HIS", "ILE",
	"LEU", "LYS", "MET", "PHE", "PRO",
	"SER", "THR", "TRP", "TYR", "VAL",
	"SEC",
}

var oneToThree = map[string]string{}

func init() {
	for _, three := range aminoThree {
		one := residueCodes[three]
		if _, ok := oneToThree[one]; !ok {
			oneToThree[one] = three
		}
	}
}

// oneLetterCode returns the 1-letter code for a residue name, or "X".
func oneLetterCode(name string) string {
	if c, ok := residueCodes[name]; ok {
		return c
	}
	return "X"
}

// threeLetterCode returns the 3-letter name for a 1-letter code, or "UNK".
func threeLetterCode(code string) string {
	if n, ok := oneToThree[code]; ok {
		return n
	}
	return "UNK"
}

// Residue names that mark a HETATM record as water.
var waterNames = map[string]bool{"HOH": true, "DOD": true}
