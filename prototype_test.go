/*
 * prototype_test.go, part of primbin.
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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func b2(mode string) *PrototypeRecord {
	return &PrototypeRecord{
		Title:          "B2",
		LatticeVectors: [][]float64{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}},
		CoordinateMode: mode,
		Basis: []PrototypeSite{
			{Coordinate: []float64{0, 0, 0}, OccupantDOF: []string{"Ni", "Va"}},
			{Coordinate: []float64{0.5, 0.5, 0.5}, OccupantDOF: []string{"Al", "Ni"}},
		},
	}
}

func TestCoordMode(Te *testing.T) {
	lenient := map[string]CoordMode{"Fractional": Fractional, "frac": Fractional, "F": Fractional, "Direct": Cartesian, "": Cartesian, "Cartesian": Cartesian, "d": Cartesian}
	for k, v := range lenient {
		if m := LenientCoordMode(k); m != v {
			Te.Errorf("LenientCoordMode(%q) = %s, want %s", k, m, v)
		}
	}
	for _, v := range []string{"fractional", "Frac", "CARTESIAN", "c"} {
		if _, err := ParseCoordMode(v); err != nil {
			Te.Errorf("ParseCoordMode(%q) failed: %v", v, err)
		}
	}
	for _, v := range []string{"Direct", "", "fractionals"} {
		if _, err := ParseCoordMode(v); !errors.Is(err, ErrRecord) {
			Te.Errorf("ParseCoordMode(%q) should fail", v)
		}
	}
}

func TestPrototypeStructure(Te *testing.T) {
	frac, err := PrototypeStructure(b2("Fractional"))
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([]float64{1, 1, 1}, frac.Site(1).Cart()); d != "" {
		Te.Errorf("Fractional coordinates not converted (-want +got):\n%s", d)
	}
	//Anything not starting with f/F is Cartesian.
	direct, err := PrototypeStructure(b2("Direct"))
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([]float64{0.5, 0.5, 0.5}, direct.Site(1).Cart()); d != "" {
		Te.Errorf("Direct coordinates should be taken as Cartesian (-want +got):\n%s", d)
	}
	if frac.Equal(direct, 1e-6) {
		Te.Error("Fractional and Direct prototypes should differ")
	}
	if d := cmp.Diff([]string{"Ni", "Al"}, frac.Species()); d != "" {
		Te.Errorf("Sites should hold their first occupant (-want +got):\n%s", d)
	}
}

func TestBuildPrototype(Te *testing.T) {
	rec := b2("Fractional")
	P, err := BuildPrototype(rec)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(AllowedSpecies{{"Ni", "Va"}, {"Al", "Ni"}}, P.Allowed); d != "" {
		Te.Errorf("Wrong allowed species (-want +got):\n%s", d)
	}
	if P.Title != "B2" {
		Te.Errorf("Wrong title %s", P.Title)
	}
	rec.Basis[0].OccupantDOF[0] = "Cu"
	if P.Allowed[0][0] != "Ni" {
		Te.Error("The allowed species table should not share memory with the record")
	}
	rec = b2("Fractional")
	rec.Basis[1].OccupantDOF = nil
	_, err = BuildPrototype(rec)
	if !errors.Is(err, ErrMissingPrototypeSite) {
		Te.Errorf("Expected a missing prototype site error, got %v", err)
	}
	rec = b2("Fractional")
	rec.Basis[0].Coordinate = []float64{0, 0}
	if _, err = BuildPrototype(rec); !errors.Is(err, ErrMissingPrototypeSite) {
		Te.Errorf("Expected a missing prototype site error for a bad coordinate, got %v", err)
	}
}
