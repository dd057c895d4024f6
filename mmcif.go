/*
 * mmcif.go, part of gostruc.
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
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

// MMCIFDict is the table structure of a .cif file: one list of rows per
// category, each row a field-name to value mapping. Non-loop categories
// produce a single row.
type MMCIFDict map[string][]map[string]string

// Sentinels standing in for quote characters inside folded multi-line
// strings, so the quote-aware value splitter doesn't trip over them.
const (
	quoteSentinel = "\x1a"
	aposSentinel  = "\x1b"
)

// MMCIFStringRead parses a complete .cif filestring into the canonical
// model.
func MMCIFStringRead(filestring string) (*PDB, error) {
	p, err := MMCIFDictToPDB(MMCIFTokenize(filestring))
	return p, errDecorate(err, "MMCIFStringRead")
}

// MMCIFTokenize converts a .cif filestring into its table structure. Empty
// lines and '#' comment lines are discarded, multi-line semicolon strings
// are folded onto the row they belong to, and the lines are then segmented
// into one block per category.
func MMCIFTokenize(filestring string) MMCIFDict {
	var lines []string
	for _, l := range strings.Split(filestring, "\n") {
		l = strings.TrimRight(l, "\r")
		if l == "" || l[0] == '#' {
			continue
		}
		lines = append(lines, l)
	}
	lines = consolidateStrings(lines)
	d := MMCIFDict{}
	for _, b := range linesToBlocks(lines) {
		if len(b.lines) > 0 && b.lines[0] == "loop_" {
			d[b.category] = loopBlockToTable(b.category, b.lines)
		} else {
			d[b.category] = nonLoopBlockToTable(b.lines)
		}
	}
	stripQuotes(d)
	return d
}

// consolidateStrings folds each semicolon-delimited multi-line string into
// a double-quoted cell appended to the line before it. Quote characters
// inside the folded text are replaced with sentinels until stripQuotes.
func consolidateStrings(lines []string) []string {
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, ";") {
			out = append(out, line)
			continue
		}
		parts := []string{strings.TrimSpace(line[1:])}
		for i+1 < len(lines) && !strings.HasPrefix(lines[i+1], ";") {
			i++
			parts = append(parts, lines[i])
		}
		i++ //the closing semicolon line
		folded := strings.Join(parts, " ")
		folded = strings.ReplaceAll(folded, `"`, quoteSentinel)
		folded = strings.ReplaceAll(folded, "'", aposSentinel)
		if len(out) > 0 {
			out[len(out)-1] += ` "` + folded + `"`
		}
	}
	return out
}

type cifBlock struct {
	category string
	lines    []string
}

// linesToBlocks segments consolidated .cif lines into category blocks.
// data_ lines are dropped. A loop_ line closes the current block and takes
// its category from the header line after it; the loop_ line itself stays
// as the block's first line so the table builders can tell the two block
// kinds apart.
func linesToBlocks(lines []string) []cifBlock {
	category := ""
	var block []string
	var blocks []cifBlock
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "data_") {
			continue
		}
		if strings.HasPrefix(line, "_") {
			lineCategory := strings.SplitN(line, ".", 2)[0]
			if lineCategory != category {
				if category != "" {
					blocks = append(blocks, cifBlock{category[1:], block})
				}
				category = lineCategory
				block = nil
			}
		}
		if strings.HasPrefix(line, "loop_") {
			if category != "" {
				blocks = append(blocks, cifBlock{category[1:], block})
			}
			category = ""
			if i+1 < len(lines) {
				category = strings.SplitN(lines[i+1], ".", 2)[0]
			}
			block = nil
		}
		block = append(block, line)
	}
	if len(block) > 0 && len(category) > 1 {
		blocks = append(blocks, cifBlock{category[1:], block})
	}
	return blocks
}

// nonLoopBlockToTable turns a key-value block into a single-row table. A
// line not starting with an underscore is a spilled-over value and gets
// merged into the line before it.
func nonLoopBlockToTable(lines []string) []map[string]string {
	merged := append([]string{}, lines...)
	for i := 0; i+1 < len(merged); i++ {
		if !strings.HasPrefix(merged[i+1], "_") {
			merged[i] += " " + merged[i+1]
		}
	}
	row := map[string]string{}
	for _, line := range merged {
		if !strings.HasPrefix(line, "_") {
			continue
		}
		dot := strings.Index(line, ".")
		if dot < 0 {
			continue
		}
		nameFields := strings.Fields(line[dot+1:])
		if len(nameFields) == 0 {
			continue
		}
		fields := strings.Fields(line)
		row[nameFields[0]] = strings.Join(fields[1:], " ")
	}
	return []map[string]string{row}
}

// loopBlockToTable turns a loop block into a table. The header lines are
// the ones starting with the category prefix; everything after them is row
// data. Rows broken over several lines are merged back while doing so
// still fits the column count.
func loopBlockToTable(category string, lines []string) []map[string]string {
	bodyStart := len(lines)
	for i := 1; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "_"+category) {
			bodyStart = i
			break
		}
	}
	var names []string
	for _, l := range lines[1:bodyStart] {
		if dot := strings.Index(l, "."); dot >= 0 {
			names = append(names, strings.TrimRight(l[dot+1:], " \t"))
		}
	}
	var rows [][]string
	for _, l := range lines[bodyStart:] {
		rows = append(rows, splitValues(l))
	}
	for n := 0; n < len(rows)-1; {
		if len(rows[n])+len(rows[n+1]) <= len(names) {
			rows[n] = append(rows[n], rows[n+1]...)
			rows = append(rows[:n+1], rows[n+2:]...)
		} else {
			n++
		}
	}
	table := make([]map[string]string, 0, len(rows))
	for _, values := range rows {
		row := map[string]string{}
		for i := 0; i < len(names) && i < len(values); i++ {
			row[names[i]] = values[i]
		}
		table = append(table, row)
	}
	return table
}

// splitValues breaks a table row line into cells, honoring quoted strings.
// A quote character immediately followed by a non-space is literal text
// rather than a string terminator.
func splitValues(line string) []string {
	if !strings.ContainsAny(line, `'"`) {
		return strings.Fields(line)
	}
	chars := strings.TrimSpace(line)
	var values []string
	var value []byte
	inString := false
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		switch {
		case c == ' ' && !inString:
			if len(value) > 0 {
				values = append(values, string(value))
			}
			value = value[:0]
		case c == '\'' || c == '"':
			if inString && i+1 < len(chars) && chars[i+1] != ' ' {
				value = append(value, c)
			} else {
				inString = !inString
			}
		default:
			value = append(value, c)
		}
	}
	if len(value) > 0 {
		values = append(values, string(value))
	}
	return values
}

// stripQuotes removes one layer of enclosing quote marks from every cell
// and restores the sentinel characters left by consolidateStrings.
func stripQuotes(d MMCIFDict) {
	for _, table := range d {
		for _, row := range table {
			for k, v := range row {
				for _, q := range []byte{'\'', '"'} {
					if len(v) > 0 && v[0] == q && v[len(v)-1] == q {
						if len(v) < 2 {
							v = ""
						} else {
							v = v[1 : len(v)-1]
						}
					}
				}
				v = strings.ReplaceAll(v, quoteSentinel, `"`)
				v = strings.ReplaceAll(v, aposSentinel, "'")
				row[k] = v
			}
		}
	}
}

// MMCIFDictToPDB decodes a tokenized .cif file into the canonical model.
// Absent categories leave the corresponding fields at their zero values.
func MMCIFDictToPDB(d MMCIFDict) (*PDB, error) {
	p := new(PDB)
	cifDescription(d, &p.Description)
	cifExperiment(d, &p.Experiment)
	cifQuality(d, &p.Quality)
	err := cifGeometry(d, &p.Geometry)
	if err != nil {
		return nil, errDecorate(err, "MMCIFDictToPDB")
	}
	err = cifModels(d, p)
	if err != nil {
		return nil, errDecorate(err, "MMCIFDictToPDB")
	}
	return p, nil
}

// cifFirst reads a field from the first row of a category. A missing
// category or field, or a "?" placeholder, reports not-ok.
func cifFirst(d MMCIFDict, table, key string) (string, bool) {
	rows := d[table]
	if len(rows) == 0 {
		return "", false
	}
	v, ok := rows[0][key]
	if !ok || v == "?" {
		return "", false
	}
	return v, true
}

func cifFirstFloat(d MMCIFDict, table, key string) *float64 {
	s, ok := cifFirst(d, table, key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func cifDescription(d MMCIFDict, desc *Description) {
	if v, ok := cifFirst(d, "entry", "id"); ok {
		desc.Code = v
	}
	if v, ok := cifFirst(d, "struct", "title"); ok {
		desc.Title = v
	}
	if v, ok := cifFirst(d, "pdbx_database_status", "recvd_initial_deposition_date"); ok {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			desc.DepositionDate = &t
		}
	}
	if v, ok := cifFirst(d, "struct_keywords", "pdbx_keywords"); ok {
		desc.Classification = v
	}
	if rows := d["struct_keywords"]; len(rows) > 0 {
		if v, ok := rows[0]["text"]; ok {
			desc.Keywords = strings.Split(strings.ReplaceAll(v, ", ", ","), ",")
		}
	}
	for _, row := range d["audit_author"] {
		if name, ok := row["name"]; ok {
			desc.Authors = append(desc.Authors, name)
		}
	}
}

func cifExperiment(d MMCIFDict, exp *Experiment) {
	if v, ok := cifFirst(d, "exptl", "method"); ok {
		exp.Technique = v
	}
	for _, probe := range [][2]string{
		{"entity_src_nat", "pdbx_organism_scientific"},
		{"entity_src_gen", "pdbx_gene_src_scientific_name"},
		{"pdbx_entity_src_syn", "organism_scientific"},
	} {
		if v, ok := cifFirst(d, probe[0], probe[1]); ok {
			exp.SourceOrganism = v
			break
		}
	}
	if v, ok := cifFirst(d, "entity_src_gen", "pdbx_host_org_scientific_name"); ok {
		exp.ExpressionSystem = v
	}
	for _, r := range d["pdbx_unobs_or_zero_occ_residues"] {
		exp.MissingResidues = append(exp.MissingResidues, MissingResidue{
			Name: r["auth_comp_id"],
			ID:   r["auth_asym_id"] + "." + r["auth_seq_id"] + cifInsertCode(r["PDB_ins_code"]),
		})
	}
}

// cifInsertCode maps the "?" and "." placeholders to an empty insertion
// code.
func cifInsertCode(s string) string {
	if s == "?" || s == "." {
		return ""
	}
	return s
}

func cifQuality(d MMCIFDict, q *Quality) {
	q.Resolution = cifFirstFloat(d, "reflns", "d_resolution_high")
	if q.Resolution == nil || *q.Resolution == 0 {
		q.Resolution = cifFirstFloat(d, "refine", "ls_d_res_high")
	}
	q.Rvalue = cifFirstFloat(d, "refine", "ls_R_factor_R_work")
	if q.Rvalue == nil || *q.Rvalue == 0 {
		q.Rvalue = cifFirstFloat(d, "refine", "ls_R_factor_obs")
	}
	q.Rfree = cifFirstFloat(d, "refine", "ls_R_factor_R_free")
}

func cifGeometry(d MMCIFDict, g *Geometry) error {
	for _, row := range d["pdbx_struct_assembly"] {
		id, err := strconv.Atoi(row["id"])
		if err != nil {
			continue
		}
		a := &Assembly{ID: id, Transformations: []*Transformation{}}
		if sw := row["method_details"]; sw != "" && sw != "?" {
			a.Software = sw
		}
		cifAssemblyMetrics(d, a)
		g.Assemblies = append(g.Assemblies, a)
	}
	operations := makeOperations(d)
	for _, a := range g.Assemblies {
		err := cifAssemblyTransformations(d, operations, a)
		if err != nil {
			return errDecorate(err, "cifGeometry")
		}
	}
	cifCrystallography(d, g)
	return nil
}

func cifAssemblyMetrics(d MMCIFDict, a *Assembly) {
	for _, row := range d["pdbx_struct_assembly_prop"] {
		if row["biol_id"] != strconv.Itoa(a.ID) {
			continue
		}
		v, err := strconv.ParseFloat(strings.Split(row["value"], "/")[0], 64)
		if err != nil {
			continue
		}
		switch row["type"] {
		case "MORE":
			a.DeltaEnergy = &v
		case "SSA (A^2)":
			a.SurfaceArea = &v
		case "ABSA (A^2)":
			a.BuriedSurfaceArea = &v
		}
	}
}

// makeOperations reads pdbx_struct_oper_list into 4x4 affine matrices, the
// 3x3 rotation and translation vector in the top rows and (0 0 0 1) at the
// bottom, so that composing two operators is a single matrix product.
func makeOperations(d MMCIFDict) map[string]*mat.Dense {
	operations := map[string]*mat.Dense{}
	for _, o := range d["pdbx_struct_oper_list"] {
		data := make([]float64, 0, 16)
		ok := true
		for r := 1; r <= 3; r++ {
			for c := 1; c <= 3; c++ {
				key := "matrix[" + strconv.Itoa(r) + "][" + strconv.Itoa(c) + "]"
				v, err := strconv.ParseFloat(o[key], 64)
				if err != nil {
					ok = false
				}
				data = append(data, v)
			}
			v, err := strconv.ParseFloat(o["vector["+strconv.Itoa(r)+"]"], 64)
			if err != nil {
				ok = false
			}
			data = append(data, v)
		}
		if !ok {
			continue
		}
		data = append(data, 0, 0, 0, 1)
		operations[o["id"]] = mat.NewDense(4, 4, data)
	}
	return operations
}

func cifAssemblyTransformations(d MMCIFDict, operations map[string]*mat.Dense, a *Assembly) error {
	for _, gen := range d["pdbx_struct_assembly_gen"] {
		if gen["assembly_id"] != strconv.Itoa(a.ID) {
			continue
		}
		groups := operationIDGroups(gen["oper_expression"])
		ops, err := composeOperations(operations, groups)
		if err != nil {
			return errDecorate(err, "cifAssemblyTransformations")
		}
		for _, op := range ops {
			t := &Transformation{Chains: strings.Split(gen["asym_id_list"], ",")}
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					t.Matrix[r][c] = op.At(r, c)
				}
				t.Vector[r] = op.At(r, 3)
			}
			a.Transformations = append(a.Transformations, t)
		}
	}
	return nil
}

var operGroupRe = regexp.MustCompile(`\((.+?)\)`)

// operationIDGroups parses an assembly operator expression into groups of
// operator ids: "(1,2,3)" becomes one group, "(1-3)(8-11,17)" two, with
// ranges expanded.
func operationIDGroups(expression string) [][]string {
	if expression == "" || expression[0] != '(' {
		expression = "(" + expression + ")"
	}
	var groups [][]string
	for _, m := range operGroupRe.FindAllStringSubmatch(expression, -1) {
		var ids []string
		for _, element := range strings.Split(m[1], ",") {
			lo, hi, ok := parseIDRange(element)
			if ok {
				for n := lo; n <= hi; n++ {
					ids = append(ids, strconv.Itoa(n))
				}
			} else {
				ids = append(ids, element)
			}
		}
		groups = append(groups, ids)
	}
	return groups
}

func parseIDRange(element string) (lo, hi int, ok bool) {
	dash := strings.Index(element, "-")
	if dash < 0 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(element[:dash])
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(element[dash+1:])
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// composeOperations resolves operator id groups to matrices and
// cross-multiplies consecutive groups pairwise, left to right.
func composeOperations(operations map[string]*mat.Dense, groups [][]string) ([]*mat.Dense, error) {
	operationGroups := make([][]*mat.Dense, 0, len(groups))
	for _, ids := range groups {
		var ops []*mat.Dense
		for _, id := range ids {
			op, ok := operations[id]
			if !ok {
				return nil, Error{UnknownOper, id, []string{"composeOperations"}, true}
			}
			ops = append(ops, op)
		}
		operationGroups = append(operationGroups, ops)
	}
	for len(operationGroups) > 1 {
		var merged []*mat.Dense
		for _, op1 := range operationGroups[0] {
			for _, op2 := range operationGroups[1] {
				product := mat.NewDense(4, 4, nil)
				product.Mul(op1, op2)
				merged = append(merged, product)
			}
		}
		operationGroups[0] = merged
		operationGroups = append(operationGroups[:1], operationGroups[2:]...)
	}
	if len(operationGroups) == 0 {
		return nil, nil
	}
	return operationGroups[0], nil
}

func cifCrystallography(d MMCIFDict, g *Geometry) {
	cell := d["cell"]
	if len(cell) == 0 {
		return
	}
	if v, ok := cifFirst(d, "symmetry", "space_group_name_H-M"); ok {
		g.Crystallography.SpaceGroup = v
	}
	unitCell := make([]float64, 0, 6)
	for _, key := range []string{"length_a", "length_b", "length_c", "angle_alpha", "angle_beta", "angle_gamma"} {
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell[0][key], "?", "0"), 64)
		if err != nil {
			unitCell = nil
			break
		}
		unitCell = append(unitCell, v)
	}
	g.Crystallography.UnitCell = unitCell
	if g.Crystallography.SpaceGroup == "NA" {
		g.Crystallography = Crystallography{}
	}
}

// cifModels builds the model list from atom_site, starting a new model
// whenever pdbx_PDB_model_num changes. Atoms are routed to the polymer or
// non-polymer containers by the type of the entity their label_asym_id
// maps to; an atom pointing at an unknown entity is a hard failure.
func cifModels(d MMCIFDict, p *PDB) error {
	atoms := d["atom_site"]
	if len(atoms) == 0 {
		return Error{NotEnoughAtoms, p.Description.Code, []string{"cifModels"}, true}
	}
	types := map[string]string{}
	for _, e := range d["entity"] {
		types[e["id"]] = e["type"]
	}
	names := map[string]string{}
	for _, e := range d["chem_comp"] {
		if flag, ok := e["mon_nstd_flag"]; ok && flag == "y" {
			continue
		}
		names[e["id"]] = e["name"]
	}
	entities := map[string]string{}
	for _, m := range d["struct_asym"] {
		entities[m["id"]] = m["entity_id"]
	}
	ss := makeCIFSecondaryStructure(d)
	aniso := makeCIFAniso(d)
	sequences := makeCIFSequences(d)

	model := NewModel()
	modelNum := atoms[0]["pdbx_PDB_model_num"]
	for _, atom := range atoms {
		if atom["pdbx_PDB_model_num"] != modelNum {
			p.Models = append(p.Models, model)
			model = NewModel()
			modelNum = atom["pdbx_PDB_model_num"]
		}
		entity, ok := entities[atom["label_asym_id"]]
		if !ok {
			return Error{UnknownEntity, atom["label_asym_id"], []string{"cifModels"}, true}
		}
		molType, ok := types[entity]
		if !ok {
			return Error{UnknownEntity, entity, []string{"cifModels"}, true}
		}
		serial, err := strconv.Atoi(atom["id"])
		if err != nil {
			continue
		}
		at := cifAtom(atom, aniso)
		if at == nil {
			log.Printf("gostruc: skipping atom_site row %s: unreadable coordinates", atom["id"])
			continue
		}
		name := atom["auth_comp_id"]
		resID := cifResidueID(atom)
		if molType == "polymer" || molType == "branched" {
			model.addPolymerAtom(atom["auth_asym_id"], atom["label_asym_id"],
				resID, name, strings.ToUpper(names[name]), serial, at)
		} else {
			container := model.NonPolymer
			if molType == "water" {
				container = model.Water
			}
			fullName := ""
			if n := names[name]; strings.ToLower(n) != "water" {
				fullName = strings.ToUpper(n)
			}
			model.addLooseAtom(container, resID, name, fullName,
				atom["label_asym_id"], atom["auth_asym_id"], serial, at)
		}
	}
	p.Models = append(p.Models, model)

	for _, model := range p.Models {
		for _, polymer := range model.Polymer {
			polymer.Sequence = sequences[entities[polymer.InternalID]]
		}
		addSecondaryStructure(model, ss)
	}
	return nil
}

func cifResidueID(atom map[string]string) string {
	return atom["auth_asym_id"] + "." + atom["auth_seq_id"] + cifInsertCode(atom["pdbx_PDB_ins_code"])
}

// cifAtom decodes one atom_site row. Rows with unparseable coordinates are
// dropped.
func cifAtom(row map[string]string, aniso map[int][6]float64) *Atom {
	a := &Atom{Occupancy: 1}
	var err error
	a.X, err = strconv.ParseFloat(row["Cartn_x"], 64)
	if err != nil {
		return nil
	}
	a.Y, err = strconv.ParseFloat(row["Cartn_y"], 64)
	if err != nil {
		return nil
	}
	a.Z, err = strconv.ParseFloat(row["Cartn_z"], 64)
	if err != nil {
		return nil
	}
	a.Element = row["type_symbol"]
	a.Name = row["label_atom_id"]
	if a.Name == a.Element {
		a.Name = ""
	}
	if v, err := strconv.ParseFloat(row["occupancy"], 64); err == nil {
		a.Occupancy = v
	}
	if v, err := strconv.ParseFloat(row["B_iso_or_equiv"], 64); err == nil {
		a.Bvalue = v
	}
	if c := row["pdbx_formal_charge"]; c != "" && c != "?" {
		if v, err := strconv.ParseFloat(c, 64); err == nil {
			a.Charge = int(v)
		}
	}
	if alt := row["label_alt_id"]; alt != "" && alt != "." {
		a.AltLoc = alt
	}
	if serial, err := strconv.Atoi(row["id"]); err == nil {
		if vals, ok := aniso[serial]; ok {
			a.Anisotropy = vals
		}
	}
	a.Het = row["group_PDB"] == "HETATM"
	return a
}

// makeCIFAniso maps atom serials to anisotropy arrays, in the same
// U11 U22 U33 U12 U13 U23 order the .pdb decoder produces.
func makeCIFAniso(d MMCIFDict) map[int][6]float64 {
	aniso := map[int][6]float64{}
	for _, row := range d["atom_site_anisotrop"] {
		serial, err := strconv.Atoi(row["id"])
		if err != nil {
			continue
		}
		var vals [6]float64
		ok := true
		for i, key := range []string{"U[1][1]", "U[2][2]", "U[3][3]", "U[1][2]", "U[1][3]", "U[2][3]"} {
			v, err := strconv.ParseFloat(row[key], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if ok {
			aniso[serial] = vals
		}
	}
	return aniso
}

func makeCIFSecondaryStructure(d MMCIFDict) *secondaryStructure {
	ss := &secondaryStructure{}
	span := func(row map[string]string) [2]string {
		var s [2]string
		for i, x := range []string{"beg", "end"} {
			s[i] = row[x+"_auth_asym_id"] + "." + row[x+"_auth_seq_id"] +
				strings.ReplaceAll(row["pdbx_"+x+"_PDB_ins_code"], "?", "")
		}
		return s
	}
	for _, row := range d["struct_conf"] {
		ss.helices = append(ss.helices, span(row))
	}
	for _, row := range d["struct_sheet_range"] {
		ss.strands = append(ss.strands, span(row))
	}
	return ss
}

// makeCIFSequences maps polymer entity ids to 1-letter sequences built
// from entity_poly_seq.
func makeCIFSequences(d MMCIFDict) map[string]string {
	sequences := map[string]string{}
	for _, e := range d["entity"] {
		if e["type"] != "polymer" {
			continue
		}
		var b strings.Builder
		for _, res := range d["entity_poly_seq"] {
			if res["entity_id"] == e["id"] {
				b.WriteString(oneLetterCode(res["mon_id"]))
			}
		}
		sequences[e["id"]] = b.String()
	}
	return sequences
}
