/*
 * record.go, part of primbin.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package primbin

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/primbin/xtal"
)

//RelaxationRecord holds the relevant part of the properties.calc.json file
//that CASM writes after a DFT relaxation.
type RelaxationRecord struct {
	RelaxedLattice [][]float64 `json:"relaxed_lattice"`
	AtomType       []string    `json:"atom_type"`
	AtomsPerType   []int       `json:"atoms_per_type"`
	RelaxedBasis   [][]float64 `json:"relaxed_basis"` //fractional coordinates
	//informational only, never validated.
	RelaxedEnergy *float64    `json:"relaxed_energy,omitempty"`
	RelaxedForces [][]float64 `json:"relaxed_forces,omitempty"`
}

//PrototypeRecord holds a CASM prim.json file.
type PrototypeRecord struct {
	Title          string          `json:"title"`
	LatticeVectors [][]float64     `json:"lattice_vectors"`
	CoordinateMode string          `json:"coordinate_mode"`
	Basis          []PrototypeSite `json:"basis"`
}

//PrototypeSite is one element of the basis of a prim.json file.
type PrototypeSite struct {
	Coordinate  []float64 `json:"coordinate"`
	OccupantDOF []string  `json:"occupant_dof"`
}

//DecodeRelaxation reads a JSON relaxation record from r.
func DecodeRelaxation(r io.Reader) (*RelaxationRecord, error) {
	rec := new(RelaxationRecord)
	if err := json.NewDecoder(r).Decode(rec); err != nil {
		e := newError(ErrRecord, "", "can't decode relaxation record", "DecodeRelaxation")
		e.cause = err
		return nil, e
	}
	return rec, nil
}

//DecodePrototype reads a JSON prototype (prim) record from r.
func DecodePrototype(r io.Reader) (*PrototypeRecord, error) {
	rec := new(PrototypeRecord)
	if err := json.NewDecoder(r).Decode(rec); err != nil {
		e := newError(ErrRecord, "", "can't decode prototype record", "DecodePrototype")
		e.cause = err
		return nil, e
	}
	return rec, nil
}

//ReadRelaxation reads the relaxation record in the file name.
//Files ending in .gz or .zst are decompressed on the fly.
func ReadRelaxation(name string) (*RelaxationRecord, error) {
	f, err := openRecord(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rec, err := DecodeRelaxation(f)
	if err != nil {
		err.(*Error).message += " from " + name
		return nil, errDecorate(err, "ReadRelaxation")
	}
	return rec, nil
}

//ReadPrototype reads the prototype record in the file name.
//Files ending in .gz or .zst are decompressed on the fly.
func ReadPrototype(name string) (*PrototypeRecord, error) {
	f, err := openRecord(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rec, err := DecodePrototype(f)
	if err != nil {
		err.(*Error).message += " from " + name
		return nil, errDecorate(err, "ReadPrototype")
	}
	return rec, nil
}

//ReadStructure reads a relaxation record from the file name and reconstructs
//the relaxed structure in it.
func ReadStructure(name string) (*xtal.Structure, error) {
	rec, err := ReadRelaxation(name)
	if err != nil {
		return nil, errDecorate(err, "ReadStructure")
	}
	S, err := Reconstruct(rec)
	if err != nil {
		return nil, errDecorate(err, "ReadStructure")
	}
	return S, nil
}

//zstd.Decoder has a Close method that returns nothing, so it can't be an io.ReadCloser
//by itself.
type zstdCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipCloser) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

func openRecord(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		e := newError(ErrRecord, "", "can't open file "+name, "openRecord")
		e.cause = err
		return nil, e
	}
	var r io.ReadCloser = f
	switch {
	case strings.HasSuffix(name, ".zst"):
		var d *zstd.Decoder
		d, err = zstd.NewReader(f)
		if err == nil {
			r = zstdCloser{d, f}
		}
	case strings.HasSuffix(name, ".gz"):
		var g *gzip.Reader
		g, err = gzip.NewReader(f)
		if err == nil {
			r = gzipCloser{g, f}
		}
	}
	if err != nil {
		f.Close()
		e := newError(ErrRecord, "", "can't decompress file "+name, "openRecord")
		e.cause = err
		return nil, e
	}
	return r, nil
}
