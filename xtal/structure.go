/*
 * structure.go, part of primbin.
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

package xtal

import (
	"fmt"
	"math"
	"strings"

	v3 "github.com/rmera/primbin/v3"
)

//Site is a point in space, in Cartesian coordinates, occupied by one species.
type Site struct {
	coords  [3]float64
	Species string
}

//NewSite returns a site at the Cartesian coordinates cart occupied by species.
func NewSite(cart []float64, species string) (Site, error) {
	if len(cart) != 3 {
		return Site{}, Error{fmt.Sprintf("Coordinate with %d components, 3 expected", len(cart)), []string{"NewSite"}, true}
	}
	return Site{coords: [3]float64{cart[0], cart[1], cart[2]}, Species: species}, nil
}

//SiteFromFrac returns a site at the fractional coordinates frac, with respect to lat,
//occupied by species.
func SiteFromFrac(frac []float64, lat *Lattice, species string) (Site, error) {
	if len(frac) != 3 {
		return Site{}, Error{fmt.Sprintf("Coordinate with %d components, 3 expected", len(frac)), []string{"SiteFromFrac"}, true}
	}
	return NewSite(lat.Frac2Cart(frac), species)
}

//Cart returns a copy of the Cartesian coordinates of the site.
func (S Site) Cart() []float64 {
	return []float64{S.coords[0], S.coords[1], S.coords[2]}
}

//Frac returns the fractional coordinates of the site with respect to lat.
func (S Site) Frac(lat *Lattice) []float64 {
	return lat.Cart2Frac(S.coords[:])
}

//Equal returns true if both sites have the same species and their
//positions differ in less than tol in each component. A negative tol means DefaultTol.
func (S Site) Equal(T Site, tol float64) bool {
	if tol < 0 {
		tol = DefaultTol
	}
	if S.Species != T.Species {
		return false
	}
	for i, v := range S.coords {
		if math.Abs(v-T.coords[i]) > tol {
			return false
		}
	}
	return true
}

func (S Site) String() string {
	return fmt.Sprintf("%s [%.6f %.6f %.6f]", S.Species, S.coords[0], S.coords[1], S.coords[2])
}

//Structure is a Lattice plus an ordered list of sites. The order of the sites
//is kept as given.
type Structure struct {
	lat   *Lattice
	sites []Site
}

//NewStructure returns a structure with the lattice lat and a copy of sites.
func NewStructure(lat *Lattice, sites []Site) (*Structure, error) {
	if lat == nil {
		return nil, Error{"Nil lattice given", []string{"NewStructure"}, true}
	}
	s := make([]Site, len(sites))
	copy(s, sites)
	return &Structure{lat: lat, sites: s}, nil
}

//Lattice returns the lattice of the structure. Lattices are immutable, so it's
//safe to share it.
func (S *Structure) Lattice() *Lattice {
	return S.lat
}

//Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.sites)
}

//Site returns the ith site. Panics if out of range.
func (S *Structure) Site(i int) Site {
	return S.sites[i]
}

//Sites returns a copy of the sites of the structure.
func (S *Structure) Sites() []Site {
	ret := make([]Site, len(S.sites))
	copy(ret, S.sites)
	return ret
}

//Species returns the species in each site, in order.
func (S *Structure) Species() []string {
	ret := make([]string, len(S.sites))
	for i, v := range S.sites {
		ret[i] = v.Species
	}
	return ret
}

//SpeciesOrder returns each species present in the structure once,
//in the order in which they first appear.
func (S *Structure) SpeciesOrder() []string {
	ret := make([]string, 0, 2)
	seen := make(map[string]bool)
	for _, v := range S.sites {
		if !seen[v.Species] {
			seen[v.Species] = true
			ret = append(ret, v.Species)
		}
	}
	return ret
}

//Composition returns the number of sites occupied by each species.
func (S *Structure) Composition() map[string]int {
	ret := make(map[string]int)
	for _, v := range S.sites {
		ret[v.Species]++
	}
	return ret
}

//CartCoords returns a matrix with the Cartesian coordinates of all sites, or nil
//if the structure has no sites.
func (S *Structure) CartCoords() *v3.Matrix {
	if len(S.sites) == 0 {
		return nil
	}
	ret := v3.Zeros(len(S.sites))
	for i, v := range S.sites {
		ret.SetVec(i, v.coords[:])
	}
	return ret
}

//FracCoords returns a matrix with the fractional coordinates of all sites, or nil
//if the structure has no sites.
func (S *Structure) FracCoords() *v3.Matrix {
	c := S.CartCoords()
	if c == nil {
		return nil
	}
	return S.lat.CartToFrac(c)
}

//Equal returns true if S and T have equal lattices and the same sites
//in the same order, within tol. A negative tol means DefaultTol.
func (S *Structure) Equal(T *Structure, tol float64) bool {
	if len(S.sites) != len(T.sites) || !S.lat.Equal(T.lat, tol) {
		return false
	}
	for i, v := range S.sites {
		if !v.Equal(T.sites[i], tol) {
			return false
		}
	}
	return true
}

func (S *Structure) String() string {
	str := make([]string, 0, len(S.sites)+2)
	str = append(str, "Lattice:", S.lat.String(), "Sites:")
	for _, v := range S.sites {
		str = append(str, v.String())
	}
	return strings.Join(str, "\n")
}
