/*
 * files_test.go, part of gostruc.
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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestDetectFormat(Te *testing.T) {
	for _, tc := range []struct {
		data string
		hint string
		want Format
	}{
		{"", "1lol.cif", FormatMMCIF},
		{"", "1lol.mmtf", FormatMMCIF},
		{"", "x.pdb", FormatPDB},
		{"", "x.ent", FormatPDB},
		{"", "1lol.cif.gz", FormatMMCIF},
		{"_atom_sites.fract_transf_matrix[1][1] 0.01", "", FormatMMCIF},
		{"HEADER    LYASE", "", FormatPDB},
	} {
		if got := DetectFormat([]byte(tc.data), tc.hint); got != tc.want {
			Te.Errorf("DetectFormat(%q, %q) = %v, want %v", tc.data, tc.hint, got, tc.want)
		}
	}
}

func gzipped(Te *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseGzip(Te *testing.T) {
	data := []byte(readTestFile(Te, "test/small.pdb"))
	p, err := Parse(gzipped(Te, data), "small.pdb.gz")
	if err != nil {
		Te.Fatal(err)
	}
	if p.Description.Code != "2YTC" {
		Te.Errorf("code after gunzip: %q", p.Description.Code)
	}
}

func TestOpen(Te *testing.T) {
	p, err := Open("test/small.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if p.Description.Code != "2YTC" || len(p.Models) != 1 {
		Te.Errorf("pdb open: code %q, %d models", p.Description.Code, len(p.Models))
	}
	p, err = Open("test/small.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if p.Description.Code != "2YTC" {
		Te.Errorf("cif open: code %q", p.Description.Code)
	}
	gzpath := filepath.Join(Te.TempDir(), "small.cif.gz")
	data := []byte(readTestFile(Te, "test/small.cif"))
	if err := os.WriteFile(gzpath, gzipped(Te, data), 0644); err != nil {
		Te.Fatal(err)
	}
	p, err = Open(gzpath)
	if err != nil {
		Te.Fatal(err)
	}
	if p.Description.Code != "2YTC" {
		Te.Errorf("gzipped cif open: code %q", p.Description.Code)
	}
}

func TestParseStages(Te *testing.T) {
	data := []byte(readTestFile(Te, "test/small.pdb"))
	res, err := ParseStages(data, "small.pdb", &ParseOptions{FileDict: true})
	if err != nil {
		Te.Fatal(err)
	}
	if res.Format != FormatPDB || res.PDBDict == nil || res.PDB != nil {
		Te.Errorf("FileDict stop should yield the dictionary only: %+v", res)
	}
	if len(res.PDBDict.Records["TITLE"]) != 2 {
		Te.Errorf("dictionary TITLE lines: %v", res.PDBDict.Records["TITLE"])
	}
	res, err = ParseStages(data, "small.pdb", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if res.PDB == nil {
		Te.Error("full pipeline should yield a structure")
	}
}

func TestRCSBURL(Te *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"1lol", "https://files.rcsb.org/view/1lol.pdb"},
		{"1LOL.cif", "https://files.rcsb.org/view/1lol.cif"},
		{"1lol.mmtf", "https://mmtf.rcsb.org/v1.0/full/1lol"},
		{"http://example.com/1lol.pdb", "http://example.com/1lol.pdb"},
	} {
		if got := RCSBURL(tc.in); got != tc.want {
			Te.Errorf("RCSBURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type memFetcher struct {
	data []byte
}

func (f memFetcher) Fetch(code string) ([]byte, error) {
	return f.data, nil
}

func TestFetchWith(Te *testing.T) {
	f := memFetcher{[]byte(readTestFile(Te, "test/small.cif"))}
	p, err := FetchWith(f, "2ytc.cif")
	if err != nil {
		Te.Fatal(err)
	}
	if p.Description.Code != "2YTC" {
		Te.Errorf("fetched code: %q", p.Description.Code)
	}
}
