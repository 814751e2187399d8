/*
 * reconstruct.go, part of primbin.
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

	"github.com/rmera/primbin/xtal"
)

//ExpandSpecies expands the species labels in types, each repeated as many times as the
//corresponding element of counts, in order: all the sites of the first species, then all
//of the second, and so on. It returns a ShapeMismatch error if types and counts
//have different lengths or if a count is negative.
func ExpandSpecies(types []string, counts []int) ([]string, error) {
	if len(types) != len(counts) {
		return nil, newError(ErrShapeMismatch, "atom_type/atoms_per_type", fmt.Sprintf("%d species labels but %d species counts", len(types), len(counts)), "ExpandSpecies")
	}
	total := 0
	for i, c := range counts {
		if c < 0 {
			return nil, newError(ErrShapeMismatch, "atoms_per_type", fmt.Sprintf("negative count %d for species %s", c, types[i]), "ExpandSpecies")
		}
		total += c
	}
	ret := make([]string, 0, total)
	for i, t := range types {
		for j := 0; j < counts[i]; j++ {
			ret = append(ret, t)
		}
	}
	return ret, nil
}

//ReconstructLattice builds the relaxed lattice of rec, taking the lattice vectors verbatim.
func ReconstructLattice(rec *RelaxationRecord) (*xtal.Lattice, error) {
	lat, err := xtal.LatticeFromVecs(rec.RelaxedLattice)
	if err != nil {
		e := newError(ErrRecord, "relaxed_lattice", "unusable lattice", "ReconstructLattice")
		e.cause = err
		return nil, e
	}
	return lat, nil
}

//ReconstructSites builds the relaxed sites of rec, pairing each position in relaxed_basis
//with the species obtained by expanding atom_type/atoms_per_type, in order.
//The positions are taken as fractional coordinates of the relaxed lattice.
//The number of positions must be equal to the total number of atoms, otherwise a
//ShapeMismatch error is returned.
func ReconstructSites(rec *RelaxationRecord) ([]xtal.Site, error) {
	lat, err := ReconstructLattice(rec)
	if err != nil {
		return nil, errDecorate(err, "ReconstructSites")
	}
	return reconstructSites(rec, lat)
}

func reconstructSites(rec *RelaxationRecord, lat *xtal.Lattice) ([]xtal.Site, error) {
	species, err := ExpandSpecies(rec.AtomType, rec.AtomsPerType)
	if err != nil {
		return nil, errDecorate(err, "ReconstructSites")
	}
	if len(species) != len(rec.RelaxedBasis) {
		return nil, newError(ErrShapeMismatch, "relaxed_basis", fmt.Sprintf("%d positions for %d atoms in atoms_per_type", len(rec.RelaxedBasis), len(species)), "ReconstructSites")
	}
	sites := make([]xtal.Site, len(species))
	for i, frac := range rec.RelaxedBasis {
		if len(frac) != 3 {
			return nil, newError(ErrShapeMismatch, "relaxed_basis", fmt.Sprintf("position %d has %d components", i, len(frac)), "ReconstructSites")
		}
		//can't fail, the length was checked.
		sites[i], _ = xtal.SiteFromFrac(frac, lat, species[i])
	}
	return sites, nil
}

//Reconstruct returns the relaxed structure described by rec. Sites are kept in the
//order of relaxed_basis, no validation of species names is done.
func Reconstruct(rec *RelaxationRecord) (*xtal.Structure, error) {
	lat, err := ReconstructLattice(rec)
	if err != nil {
		return nil, errDecorate(err, "Reconstruct")
	}
	sites, err := reconstructSites(rec, lat)
	if err != nil {
		return nil, errDecorate(err, "Reconstruct")
	}
	return xtal.NewStructure(lat, sites)
}
