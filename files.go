/*
 * files.go, part of gostruc.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Format identifies one of the supported structure file formats.
type Format int

const (
	FormatPDB Format = iota
	FormatMMCIF
)

func (f Format) String() string {
	if f == FormatMMCIF {
		return "mmcif"
	}
	return "pdb"
}

// DetectFormat decides how a payload should be parsed. An explicit .cif or
// .mmtf extension in the hint selects the mmCIF pipeline and any other
// extension selects PDB; without an extension the content is sniffed for
// the "_atom_sites" category, and PDB is the fallback, being the most
// permissive of the formats.
func DetectFormat(data []byte, hint string) Format {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(hint, ".gz")))
	switch ext {
	case ".cif", ".mmtf":
		return FormatMMCIF
	case "":
		if bytes.Contains(data, []byte("_atom_sites")) {
			return FormatMMCIF
		}
	}
	return FormatPDB
}

// ParseOptions lets a caller stop the pipeline early: FileDict stops after
// tokenizing, DataDict stops after decoding. With both false the full
// canonical model is built (for these formats decoding is the last stage,
// so DataDict and the default currently coincide).
type ParseOptions struct {
	FileDict bool
	DataDict bool
}

// ParseResult carries the output of whichever pipeline stages ran. Exactly
// one of PDBDict/MMCIFDict is set, according to Format.
type ParseResult struct {
	Format    Format
	PDBDict   *PDBDict
	MMCIFDict MMCIFDict
	PDB       *PDB
}

// Parse decodes a payload into the canonical model. The hint is a file
// name or extension used for format detection; it may be empty. Gzipped
// payloads are decompressed transparently.
func Parse(data []byte, hint string) (*PDB, error) {
	res, err := ParseStages(data, hint, nil)
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	return res.PDB, nil
}

// ParseStages runs the parsing pipeline with optional early stops.
func ParseStages(data []byte, hint string, o *ParseOptions) (*ParseResult, error) {
	if o == nil {
		o = &ParseOptions{}
	}
	data, err := gunzipIfNeeded(data)
	if err != nil {
		return nil, errDecorate(err, "ParseStages")
	}
	res := &ParseResult{Format: DetectFormat(data, hint)}
	filestring := string(data)
	if res.Format == FormatMMCIF {
		res.MMCIFDict = MMCIFTokenize(filestring)
		if o.FileDict {
			return res, nil
		}
		res.PDB, err = MMCIFDictToPDB(res.MMCIFDict)
	} else {
		res.PDBDict = PDBTokenize(filestring)
		if o.FileDict {
			return res, nil
		}
		res.PDB, err = PDBDictToPDB(res.PDBDict)
	}
	if err != nil {
		return nil, errDecorate(err, "ParseStages")
	}
	return res, nil
}

// gunzipIfNeeded decompresses the payload when it carries the gzip magic
// number, and returns it untouched otherwise.
func gunzipIfNeeded(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Open reads a structure file from disk and parses it according to its
// extension. Files ending in .gz are decompressed first and detection then
// uses the inner extension.
func Open(path string) (*PDB, error) {
	p, err := OpenStages(path, nil)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	return p.PDB, nil
}

// OpenStages is Open with the same early-stop options as ParseStages.
func OpenStages(path string, o *ParseOptions) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := ParseStages(data, path, o)
	if err != nil {
		return nil, errDecorate(err, "OpenStages")
	}
	return res, nil
}

// Fetcher retrieves a raw structure payload for a PDB code or URL. It is
// an interface so the parsing core stays free of network concerns; an
// http-backed implementation only needs the one method.
type Fetcher interface {
	Fetch(code string) ([]byte, error)
}

// FetchWith retrieves a structure through the given Fetcher and parses it.
// The code doubles as the format hint, as in Open.
func FetchWith(f Fetcher, code string) (*PDB, error) {
	data, err := f.Fetch(code)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data, code)
	if err != nil {
		return nil, errDecorate(err, "FetchWith")
	}
	return p, nil
}

// RCSBURL builds the canonical download URL for a structure code: URLs
// pass through, .mmtf codes go to the binary service, anything else to the
// files service, with a .pdb extension appended to bare codes.
func RCSBURL(code string) string {
	if strings.HasPrefix(code, "http") {
		return code
	}
	if strings.HasSuffix(code, ".mmtf") {
		return "https://mmtf.rcsb.org/v1.0/full/" + strings.ToLower(strings.TrimSuffix(code, ".mmtf"))
	}
	if !strings.Contains(code, ".") {
		code += ".pdb"
	}
	return "https://files.rcsb.org/view/" + strings.ToLower(code)
}
