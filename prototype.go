/*
 * prototype.go, part of primbin.
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
	"fmt"
	"strings"

	"github.com/rmera/primbin/xtal"
)

//AllowedSpecies contains, for each site of a prototype, the species allowed in
//that site. It is passed untouched to the mapping engine.
type AllowedSpecies [][]string

//Copy returns a deep copy of A.
func (A AllowedSpecies) Copy() AllowedSpecies {
	if A == nil {
		return nil
	}
	ret := make(AllowedSpecies, len(A))
	for i, v := range A {
		ret[i] = append([]string(nil), v...)
	}
	return ret
}

//CoordMode is the way in which the coordinates of a prototype record are given.
type CoordMode int

const (
	Cartesian CoordMode = iota
	Fractional
)

func (c CoordMode) String() string {
	if c == Fractional {
		return "Fractional"
	}
	return "Cartesian"
}

//LenientCoordMode interprets the coordinate_mode flag of a prim file as CASM does:
//it is Fractional if its first character is 'f' or 'F', and Cartesian otherwise,
//including for "Direct" or an empty flag.
func LenientCoordMode(flag string) CoordMode {
	if flag != "" && (flag[0] == 'f' || flag[0] == 'F') {
		return Fractional
	}
	return Cartesian
}

//ParseCoordMode is a strict version of LenientCoordMode. It accepts "Fractional" and
//"Cartesian", case-insensitive, or any prefix of them, and returns an error for anything else.
func ParseCoordMode(flag string) (CoordMode, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	switch {
	case f != "" && strings.HasPrefix("fractional", f):
		return Fractional, nil
	case f != "" && strings.HasPrefix("cartesian", f):
		return Cartesian, nil
	}
	return Cartesian, newError(ErrRecord, "coordinate_mode", fmt.Sprintf("unknown coordinate mode %q", flag), "ParseCoordMode")
}

//Prototype is a reference structure, realized with the default (first) occupant
//of each site, together with the species allowed in each site.
type Prototype struct {
	Title     string
	Structure *xtal.Structure
	Allowed   AllowedSpecies
}

//AllowedSpeciesOf returns the occupant_dof list of each site of rec, in order,
//exactly as given in the record.
func AllowedSpeciesOf(rec *PrototypeRecord) AllowedSpecies {
	ret := make(AllowedSpecies, len(rec.Basis))
	for i, v := range rec.Basis {
		ret[i] = append([]string(nil), v.OccupantDOF...)
	}
	return ret
}

//PrototypeStructure returns the structure of the prototype rec, where each site is occupied
//by the first species in its occupant_dof list. Coordinates are fractional if the
//coordinate_mode of rec starts with 'f' or 'F' and Cartesian otherwise (see LenientCoordMode).
//A site with no occupants or a coordinate without 3 components gives a MissingPrototypeSite error.
func PrototypeStructure(rec *PrototypeRecord) (*xtal.Structure, error) {
	lat, err := xtal.LatticeFromVecs(rec.LatticeVectors)
	if err != nil {
		e := newError(ErrRecord, "lattice_vectors", "unusable lattice", "PrototypeStructure")
		e.cause = err
		return nil, e
	}
	mode := LenientCoordMode(rec.CoordinateMode)
	sites := make([]xtal.Site, len(rec.Basis))
	for i, v := range rec.Basis {
		if len(v.OccupantDOF) == 0 {
			return nil, newError(ErrMissingPrototypeSite, "occupant_dof", fmt.Sprintf("basis site %d has no occupants", i), "PrototypeStructure")
		}
		if len(v.Coordinate) != 3 {
			return nil, newError(ErrMissingPrototypeSite, "coordinate", fmt.Sprintf("basis site %d has a coordinate with %d components", i, len(v.Coordinate)), "PrototypeStructure")
		}
		if mode == Fractional {
			sites[i], err = xtal.SiteFromFrac(v.Coordinate, lat, v.OccupantDOF[0])
		} else {
			sites[i], err = xtal.NewSite(v.Coordinate, v.OccupantDOF[0])
		}
		if err != nil {
			//shouldn't happen, the coordinate was checked.
			panic(err.Error())
		}
	}
	return xtal.NewStructure(lat, sites)
}

//BuildPrototype returns the prototype described by rec: its realized structure
//and its allowed species table.
func BuildPrototype(rec *PrototypeRecord) (*Prototype, error) {
	S, err := PrototypeStructure(rec)
	if err != nil {
		return nil, errDecorate(err, "BuildPrototype")
	}
	allowed := AllowedSpeciesOf(rec)
	if len(allowed) != S.Len() {
		return nil, newError(ErrMissingPrototypeSite, "basis", fmt.Sprintf("%d occupant lists for %d sites", len(allowed), S.Len()), "BuildPrototype")
	}
	return &Prototype{Title: rec.Title, Structure: S, Allowed: allowed}, nil
}
