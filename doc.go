/*
 * doc.go, part of gostruc.
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

/*Package struc reads and writes macromolecular structure files. It parses
the legacy fixed-column PDB format and the dictionary-based PDBx/mmCIF
format into one canonical in-memory representation, and can serialize that
representation back to PDB text.


	**goStruc capabilities**

    Reads .pdb and .cif files (also gzipped) into a common structure model.

    Exposes the tokenizer and decoder stages separately, so a caller can
	stop at the raw record/category dictionaries when debugging one
	pipeline stage in isolation.

    Writes PDB files back out, including the derived SEQRES, HELIX, SHEET,
	HETNAM and REMARK records, with per-section toggles.

    Expands biological-assembly operator expressions such as (1-3)(8,11)
	into concrete rigid-body transformations.

    Flattens a structure model into a plain Molecule value (atomic numbers
	plus coordinates) for consumption by quantum-chemistry tooling.

Missing or malformed optional records never abort a parse; the
corresponding fields are simply left at their zero values. The one hard
failure is an atom record carrying neither an element symbol nor an atom
name from which the element could be guessed.
*/
package struc
