/*
 * pdb.go, part of gostruc.
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
)

// PDBDict is the raw record structure of a .pdb file: one list of lines per
// 6-character record tag, with two special accumulators. Remarks are keyed
// further by the remark number, and the structural records (ATOM, HETATM,
// ANISOU, TER) are collected into one line list per MODEL frame.
type PDBDict struct {
	Records map[string][]string
	Remarks map[string][]string
	Models  [][]string
}

var pdbModelTags = map[string]bool{
	"ATOM": true, "HETATM": true, "ANISOU": true,
	"MODEL": true, "TER": true, "ENDMDL": true,
}

// PDBTokenize splits a .pdb filestring into its record structure. Empty
// lines are discarded; unrecognized tags are still captured. A trailing
// model frame with no lines in it is dropped.
func PDBTokenize(filestring string) *PDBDict {
	d := &PDBDict{Records: map[string][]string{}, Remarks: map[string][]string{}}
	for _, line := range strings.Split(filestring, "\n") {
		line = strings.TrimRight(line, " \r")
		if line == "" {
			continue
		}
		head := line
		if len(head) > 6 {
			head = head[:6]
		}
		head = strings.TrimRight(head, " ")
		switch {
		case head == "REMARK":
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			d.Remarks[fields[1]] = append(d.Remarks[fields[1]], line)
		case pdbModelTags[head]:
			if d.Models == nil {
				d.Models = [][]string{{}}
			}
			switch head {
			case "ENDMDL":
				d.Models = append(d.Models, []string{})
			case "MODEL":
				//only opens the accumulator, the line itself is dropped
			default:
				last := len(d.Models) - 1
				d.Models[last] = append(d.Models[last], line)
			}
		default:
			d.Records[head] = append(d.Records[head], line)
		}
	}
	if n := len(d.Models); n > 0 && len(d.Models[n-1]) == 0 {
		d.Models = d.Models[:n-1]
	}
	return d
}

// PDBStringRead parses a complete .pdb filestring into the canonical model.
func PDBStringRead(filestring string) (*PDB, error) {
	p, err := PDBDictToPDB(PDBTokenize(filestring))
	return p, errDecorate(err, "PDBStringRead")
}

// PDBDictToPDB decodes a tokenized .pdb file into the canonical model.
// Missing records leave the corresponding fields at their zero values; the
// only hard failure is an atom with no element and no name.
func PDBDictToPDB(d *PDBDict) (*PDB, error) {
	p := new(PDB)
	extractHeader(d, &p.Description)
	extractTitle(d, &p.Description)
	extractKeywords(d, &p.Description)
	extractAuthors(d, &p.Description)
	extractTechnique(d, &p.Experiment)
	extractSource(d, &p.Experiment)
	extractMissingResidues(d, &p.Experiment)
	extractResolution(d, &p.Quality)
	extractRvalues(d, &p.Quality)
	extractAssemblies(d, &p.Geometry)
	extractCrystallography(d, &p.Geometry)
	err := extractModels(d, p)
	if err != nil {
		return nil, errDecorate(err, "PDBDictToPDB")
	}
	return p, nil
}

// col returns the [start:end) substring of a fixed-column line, tolerating
// lines shorter than the requested span.
func col(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

// mergeLines joins the text from a given column onward of a group of
// continuation records into one space-separated string.
func mergeLines(lines []string, start int) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strings.TrimSpace(col(line, start, len(line))))
	}
	return strings.Join(parts, " ")
}

var pdbMonths = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// parsePDBDate reads a DD-MON-YY deposition date. Two-digit years follow
// the POSIX pivot: 69-99 mean 19xx, 00-68 mean 20xx.
func parsePDBDate(s string) *time.Time {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return nil
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	month, ok := pdbMonths[strings.ToUpper(parts[1])]
	if !ok {
		return nil
	}
	yy, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}
	year := 2000 + yy
	if yy >= 69 {
		year = 1900 + yy
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func extractHeader(d *PDBDict, desc *Description) {
	lines := d.Records["HEADER"]
	if len(lines) == 0 {
		return
	}
	line := lines[0]
	if s := strings.TrimSpace(col(line, 50, 59)); s != "" {
		desc.DepositionDate = parsePDBDate(s)
	}
	if s := strings.TrimSpace(col(line, 62, 66)); s != "" {
		desc.Code = s
	}
	if s := strings.TrimSpace(col(line, 10, 50)); s != "" {
		desc.Classification = s
	}
}

func extractTitle(d *PDBDict, desc *Description) {
	if lines := d.Records["TITLE"]; len(lines) > 0 {
		desc.Title = mergeLines(lines, 10)
	}
}

func splitCommaList(text string) []string {
	out := []string{}
	for _, w := range strings.Split(text, ",") {
		out = append(out, strings.TrimSpace(w))
	}
	return out
}

func extractKeywords(d *PDBDict, desc *Description) {
	if lines := d.Records["KEYWDS"]; len(lines) > 0 {
		desc.Keywords = splitCommaList(mergeLines(lines, 10))
	}
}

func extractAuthors(d *PDBDict, desc *Description) {
	if lines := d.Records["AUTHOR"]; len(lines) > 0 {
		desc.Authors = splitCommaList(mergeLines(lines, 10))
	}
}

func extractTechnique(d *PDBDict, exp *Experiment) {
	lines := d.Records["EXPDTA"]
	if len(lines) == 0 {
		return
	}
	if s := strings.TrimSpace(col(lines[0], 6, len(lines[0]))); s != "" {
		exp.Technique = s
	}
}

var (
	organismRe = regexp.MustCompile(`ORGANISM_SCIENTIFIC: (.+?);`)
	expressRe  = regexp.MustCompile(`EXPRESSION_SYSTEM: (.+?);`)
)

func extractSource(d *PDBDict, exp *Experiment) {
	lines := d.Records["SOURCE"]
	if len(lines) == 0 {
		return
	}
	data := mergeLines(lines, 10)
	if m := organismRe.FindStringSubmatch(data); m != nil {
		exp.SourceOrganism = m[1]
	}
	if m := expressRe.FindStringSubmatch(data); m != nil {
		exp.ExpressionSystem = m[1]
	}
}

func extractMissingResidues(d *PDBDict, exp *Experiment) {
	for _, line := range d.Remarks["465"] {
		chunks := strings.Fields(line)
		if len(chunks) == 5 {
			exp.MissingResidues = append(exp.MissingResidues,
				MissingResidue{Name: chunks[2], ID: chunks[3] + "." + chunks[4]})
		}
	}
}

func extractResolution(d *PDBDict, q *Quality) {
	for _, line := range d.Remarks["2"] {
		fields := strings.Fields(col(line, 10, len(line)))
		if len(fields) < 2 {
			continue
		}
		if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
			q.Resolution = &v
			break
		}
	}
}

var (
	rvalueRe = regexp.MustCompile(`R VALUE.+WORKING.+?: (.+)`)
	rfreeRe  = regexp.MustCompile(`FREE R VALUE {2,}: (.+)`)
)

func extractRvalues(d *PDBDict, q *Quality) {
	lines := d.Remarks["3"]
	for _, probe := range []struct {
		re   *regexp.Regexp
		dest **float64
	}{{rvalueRe, &q.Rvalue}, {rfreeRe, &q.Rfree}} {
		for _, line := range lines {
			m := probe.re.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			//the first matching line is consumed even when its value
			//doesn't parse; the field then just stays unset.
			if v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64); err == nil {
				*probe.dest = &v
			}
			break
		}
	}
}

var (
	softwareRe = regexp.MustCompile(`(.+)SOFTWARE USED: (.+)`)
	biomolRe   = regexp.MustCompile(`(.+)BIOMOLECULE: (.+)`)
	buriedRe   = regexp.MustCompile(`(.+)SURFACE AREA: (.+) [A-Z]`)
	complexRe  = regexp.MustCompile(`(.+)AREA OF THE COMPLEX: (.+) [A-Z]`)
	energyRe   = regexp.MustCompile(`(.+)FREE ENERGY: (.+) [A-Z]`)
)

// extractAssemblies reads the REMARK 350 block. The block is split into
// runs of lines at every line containing "ECULE:" (the BIOMOLECULE
// headers); the run before the first header is dropped and the remaining
// runs are paired off into one header-plus-body chunk per assembly.
func extractAssemblies(d *PDBDict, g *Geometry) {
	lines := d.Remarks["350"]
	if len(lines) == 0 {
		return
	}
	var groups [][]string
	cur := []string{lines[0]}
	curKey := strings.Contains(lines[0], "ECULE:")
	for _, line := range lines[1:] {
		key := strings.Contains(line, "ECULE:")
		if key != curKey {
			groups = append(groups, cur)
			cur = nil
			curKey = key
		}
		cur = append(cur, line)
	}
	groups = append(groups, cur)
	groups = groups[1:]
	for i := 0; i+1 < len(groups); i += 2 {
		chunk := append(append([]string{}, groups[i]...), groups[i+1]...)
		g.Assemblies = append(g.Assemblies, assemblyFromLines(chunk))
	}
}

func assemblyFromLines(lines []string) *Assembly {
	a := &Assembly{Transformations: []*Transformation{}}
	var t *Transformation
	rows := 0
	flush := func() {
		if t != nil {
			a.Transformations = append(a.Transformations, t)
		}
	}
	for _, line := range lines {
		if m := softwareRe.FindStringSubmatch(line); m != nil {
			a.Software = strings.TrimSpace(m[2])
		}
		if m := biomolRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(strings.TrimSpace(m[2])); err == nil {
				a.ID = v
			}
		}
		if m := buriedRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64); err == nil {
				a.BuriedSurfaceArea = &v
			}
		}
		if m := complexRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64); err == nil {
				a.SurfaceArea = &v
			}
		}
		if m := energyRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64); err == nil {
				a.DeltaEnergy = &v
			}
		}
		if strings.Contains(line, "APPLY THE FOLLOWING") {
			flush()
			t = &Transformation{Chains: []string{}}
			rows = 0
		}
		if strings.Contains(line, "CHAINS:") && t != nil {
			tail := line[strings.LastIndex(line, ":")+1:]
			for _, c := range strings.Split(tail, ",") {
				if c = strings.TrimSpace(c); c != "" {
					t.Chains = append(t.Chains, c)
				}
			}
		}
		if strings.Contains(line, "BIOMT") && t != nil {
			fields := strings.Fields(line)
			if len(fields) < 8 {
				continue
			}
			values := make([]float64, 0, 4)
			bad := false
			for _, f := range fields[4:8] {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					bad = true
					break
				}
				values = append(values, v)
			}
			if bad {
				continue
			}
			//a fourth row means a new operator reusing the same chains
			if rows == 3 {
				flush()
				t = &Transformation{Chains: append([]string{}, t.Chains...)}
				rows = 0
			}
			t.Matrix[rows] = [3]float64{values[0], values[1], values[2]}
			t.Vector[rows] = values[3]
			rows++
		}
	}
	flush()
	return a
}

func extractCrystallography(d *PDBDict, g *Geometry) {
	lines := d.Records["CRYST1"]
	if len(lines) == 0 {
		return
	}
	line := lines[0]
	g.Crystallography.SpaceGroup = strings.TrimSpace(col(line, 55, 66))
	values := strings.Fields(line)
	if len(values) < 6 {
		return
	}
	end := 7
	if end > len(values) {
		end = len(values)
	}
	cell := make([]float64, 0, 6)
	for _, v := range values[1:end] {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return
		}
		cell = append(cell, f)
	}
	g.Crystallography.UnitCell = cell
}

// makePDBSequences reads SEQRES into a chain-id to 1-letter-code mapping.
func makePDBSequences(d *PDBDict) map[string]string {
	raw := map[string][]string{}
	order := []string{}
	for _, line := range d.Records["SEQRES"] {
		chain := col(line, 11, 12)
		if _, ok := raw[chain]; !ok {
			order = append(order, chain)
		}
		raw[chain] = append(raw[chain], strings.Fields(col(line, 19, len(line)))...)
	}
	seqs := map[string]string{}
	for _, chain := range order {
		var b strings.Builder
		for _, res := range raw[chain] {
			b.WriteString(oneLetterCode(res))
		}
		seqs[chain] = b.String()
	}
	return seqs
}

// secondaryStructure is the helix/strand span list shared by both decoders:
// each span is a [start, end] pair of residue ids.
type secondaryStructure struct {
	helices [][2]string
	strands [][2]string
}

func makePDBSecondaryStructure(d *PDBDict) *secondaryStructure {
	ss := &secondaryStructure{}
	for _, h := range d.Records["HELIX"] {
		ss.helices = append(ss.helices, [2]string{
			col(h, 19, 20) + "." + strings.TrimSpace(col(h, 21, 25)) + strings.TrimSpace(col(h, 25, 26)),
			col(h, 31, 32) + "." + strings.TrimSpace(col(h, 33, 37)) + strings.TrimSpace(col(h, 37, 38)),
		})
	}
	for _, s := range d.Records["SHEET"] {
		ss.strands = append(ss.strands, [2]string{
			col(s, 21, 22) + "." + strings.TrimSpace(col(s, 22, 26)) + strings.TrimSpace(col(s, 26, 27)),
			col(s, 32, 33) + "." + strings.TrimSpace(col(s, 33, 37)) + strings.TrimSpace(col(s, 37, 38)),
		})
	}
	return ss
}

// addSecondaryStructure expands each helix/strand span into the full run of
// residue ids between its endpoints, walking residues in insertion order.
func addSecondaryStructure(model *Model, ss *secondaryStructure) {
	for kind, spans := range map[string][][2]string{"helices": ss.helices, "strands": ss.strands} {
		for _, span := range spans {
			chainID := span[0]
			if dot := strings.Index(chainID, "."); dot >= 0 {
				chainID = chainID[:dot]
			}
			chain := model.Polymer[chainID]
			if chain == nil {
				continue
			}
			segment := []string{}
			in := false
			for _, resID := range chain.Residues.IDs() {
				if resID == span[0] {
					in = true
				}
				if in {
					segment = append(segment, resID)
				}
				if resID == span[1] {
					break
				}
			}
			if kind == "helices" {
				chain.Helices = append(chain.Helices, segment)
			} else {
				chain.Strands = append(chain.Strands, segment)
			}
		}
	}
}

// getFullNames reads HETNAM into a het-code to English-name mapping.
// Continuation lines for the same code are concatenated directly.
func getFullNames(d *PDBDict) map[string]string {
	names := map[string]string{}
	for _, line := range d.Records["HETNAM"] {
		code := strings.TrimSpace(col(line, 11, 14))
		names[code] += strings.TrimSpace(col(line, 15, len(line)))
	}
	return names
}

// parseAnisoField reads one 7-character anisotropy cell. The standard
// encoding is a signed integer scaled by 1e-4, but the writer's compacted
// decimal form (".0044") is accepted as-is.
func parseAnisoField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return float64(n) / 10000, nil
	}
	return strconv.ParseFloat(s, 64)
}

// makeAniso maps atom serials to anisotropy arrays for one model frame.
func makeAniso(modelLines []string) map[int][6]float64 {
	aniso := map[int][6]float64{}
	for _, line := range modelLines {
		if col(line, 0, 6) != "ANISOU" {
			continue
		}
		serial, err := strconv.Atoi(strings.TrimSpace(col(line, 6, 11)))
		if err != nil {
			continue
		}
		var vals [6]float64
		ok := true
		for n := 0; n < 6; n++ {
			v, err := parseAnisoField(col(line, n*7+28, n*7+35))
			if err != nil {
				ok = false
				break
			}
			vals[n] = v
		}
		if ok {
			aniso[serial] = vals
		}
	}
	return aniso
}

// lastTERIndex finds the index of the last TER record in a model frame, or
// 0 if there is none. Atoms before it belong to polymer chains.
func lastTERIndex(modelLines []string) int {
	for i := len(modelLines) - 1; i >= 0; i-- {
		if col(modelLines[i], 0, 3) == "TER" {
			return i
		}
	}
	return 0
}

// residueIDFromLine builds the "{chain}.{number}{insertion}" id of the
// residue an atom line belongs to.
func residueIDFromLine(line string) string {
	return col(line, 21, 22) + "." +
		strings.TrimSpace(col(line, 22, 26)) + strings.TrimSpace(col(line, 26, 27))
}

// guessElement infers an element symbol from an atom name: a leading digit
// means the element is the second character, otherwise the first.
func guessElement(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' && len(name) > 1 {
		return strings.ToUpper(name[1:2])
	}
	return strings.ToUpper(name[:1])
}

// reverseString is used for the charge-field fallback: some files write
// "1-" (digits then sign), which only parses with the characters reversed.
func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// atomLineToAtom decodes one ATOM/HETATM record. The single hard failure in
// the whole decoder is an empty element field combined with an empty name.
func atomLineToAtom(line string, aniso map[int][6]float64) (*Atom, error) {
	a := &Atom{Occupancy: 1}
	a.Het = col(line, 0, 6) == "HETATM"
	a.Name = strings.TrimSpace(col(line, 12, 16))
	a.AltLoc = strings.TrimSpace(col(line, 16, 17))
	var err error
	a.X, err = strconv.ParseFloat(strings.TrimSpace(col(line, 30, 38)), 64)
	if err != nil {
		return nil, err
	}
	a.Y, err = strconv.ParseFloat(strings.TrimSpace(col(line, 38, 46)), 64)
	if err != nil {
		return nil, err
	}
	a.Z, err = strconv.ParseFloat(strings.TrimSpace(col(line, 46, 54)), 64)
	if err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(col(line, 54, 60)); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			a.Occupancy = v
		}
	}
	if s := strings.TrimSpace(col(line, 60, 66)); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			a.Bvalue = v
		}
	}
	a.Element = strings.TrimSpace(col(line, 76, 78))
	if a.Element == "" {
		if a.Name == "" {
			return nil, Error{NoElement, strings.TrimSpace(line), []string{"atomLineToAtom"}, true}
		}
		a.Element = guessElement(a.Name)
	}
	if s := strings.TrimSpace(col(line, 78, 80)); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			a.Charge = v
		} else if v, err := strconv.Atoi(strings.TrimSpace(reverseString(col(line, 78, 80)))); err == nil {
			a.Charge = v
		}
	}
	if serial, err := strconv.Atoi(strings.TrimSpace(col(line, 6, 11))); err == nil {
		if vals, ok := aniso[serial]; ok {
			a.Anisotropy = vals
		}
	}
	if a.Name == a.Element {
		a.Name = ""
	}
	return a, nil
}

func extractModels(d *PDBDict, p *PDB) error {
	sequences := makePDBSequences(d)
	ss := makePDBSecondaryStructure(d)
	fullNames := getFullNames(d)
	for _, modelLines := range d.Models {
		aniso := makeAniso(modelLines)
		lastTER := lastTERIndex(modelLines)
		model := NewModel()
		for index, line := range modelLines {
			head := col(line, 0, 6)
			if head != "ATOM  " && head != "ATOM" && head != "HETATM" {
				continue
			}
			serial, serr := strconv.Atoi(strings.TrimSpace(col(line, 6, 11)))
			if serr != nil {
				continue
			}
			at, err := atomLineToAtom(line, aniso)
			if err != nil {
				if cerr, ok := err.(Error); ok && cerr.Critical() {
					return errDecorate(err, "extractModels")
				}
				log.Printf("gostruc: skipping atom record %d: %v", serial, err)
				continue
			}
			resID := residueIDFromLine(line)
			name := strings.TrimSpace(col(line, 17, 20))
			fullName := fullNames[name]
			if index < lastTER {
				chain := col(line, 21, 22)
				model.addPolymerAtom(chain, chain, resID, name, fullName, serial, at)
			} else {
				container := model.NonPolymer
				if waterNames[name] {
					container = model.Water
				}
				chain := col(line, 21, 22)
				model.addLooseAtom(container, resID, name, fullName, chain, chain, serial, at)
			}
		}
		for chainID, chain := range model.Polymer {
			chain.Sequence = sequences[chainID]
		}
		addSecondaryStructure(model, ss)
		p.Models = append(p.Models, model)
	}
	return nil
}
