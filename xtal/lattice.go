/*
 * lattice.go, part of primbin.
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

	v3 "github.com/rmera/primbin/v3"
)

//DefaultTol is the tolerance used to compare lengths, in the units of the
//lattice (normally Angstrom).
const DefaultTol float64 = 1e-5

//Lattice contains the 3 basis vectors of a crystal, one per row. A Lattice can't be
//changed once built, all the methods returning vectors return copies.
type Lattice struct {
	vecs *v3.Matrix
	inv  *v3.Matrix
}

//NewLattice returns a Lattice with a, b and c as basis vectors.
//It returns an error if a vector doesn't have 3 components or if the vectors
//are linearly dependent.
func NewLattice(a, b, c []float64) (*Lattice, error) {
	return LatticeFromVecs([][]float64{a, b, c})
}

//LatticeFromVecs returns a Lattice from a slice with the 3 lattice vectors.
//The data is copied.
func LatticeFromVecs(vecs [][]float64) (*Lattice, error) {
	if len(vecs) != 3 {
		return nil, Error{fmt.Sprintf("%d lattice vectors given, 3 expected", len(vecs)), []string{"LatticeFromVecs"}, true}
	}
	m, err := v3.NewMatrixFromVecs(vecs)
	if err != nil {
		return nil, Error{err.Error(), []string{"LatticeFromVecs"}, true}
	}
	inv, err := m.Inverse()
	if err != nil {
		return nil, Error{"Lattice vectors are linearly dependent", []string{"LatticeFromVecs"}, true}
	}
	return &Lattice{vecs: m, inv: inv}, nil
}

//Vec returns a copy of the ith lattice vector.
func (L *Lattice) Vec(i int) []float64 {
	return L.vecs.VecCopy(i)
}

//Vecs returns a copy of the 3 lattice vectors.
func (L *Lattice) Vecs() [][]float64 {
	return L.vecs.Vecs()
}

//Matrix returns a copy of the lattice vectors, as rows of a v3.Matrix.
func (L *Lattice) Matrix() *v3.Matrix {
	ret := v3.Zeros(3)
	ret.Copy(L.vecs.Dense)
	return ret
}

//Volume returns the volume of the cell.
func (L *Lattice) Volume() float64 {
	return math.Abs(v3.Det(L.vecs))
}

//Frac2Cart returns the Cartesian coordinates corresponding to the fractional
//coordinates frac. Panics if frac doesn't have 3 elements.
func (L *Lattice) Frac2Cart(frac []float64) []float64 {
	return L.transform(frac, L.vecs)
}

//Cart2Frac returns the fractional coordinates, with respect to L, of the
//Cartesian point cart. Panics if cart doesn't have 3 elements.
func (L *Lattice) Cart2Frac(cart []float64) []float64 {
	return L.transform(cart, L.inv)
}

func (L *Lattice) transform(v []float64, by *v3.Matrix) []float64 {
	if len(v) != 3 {
		panic(v3.ErrShape)
	}
	in, _ := v3.NewMatrix([]float64{v[0], v[1], v[2]})
	out := v3.Zeros(1)
	out.Mul(in, by)
	return out.VecCopy(0)
}

//FracToCart returns a new matrix with the Cartesian version of each
//fractional vector in fracs.
func (L *Lattice) FracToCart(fracs *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(fracs.NVecs())
	ret.Mul(fracs, L.vecs)
	return ret
}

//CartToFrac returns a new matrix with the fractional version of each
//Cartesian vector in carts.
func (L *Lattice) CartToFrac(carts *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(carts.NVecs())
	ret.Mul(carts, L.inv)
	return ret
}

//Equal returns true if all the lattice vectors of L and M differ in less than tol.
//A negative tol means DefaultTol.
func (L *Lattice) Equal(M *Lattice, tol float64) bool {
	if tol < 0 {
		tol = DefaultTol
	}
	return L.vecs.EqualApprox(M.vecs, tol)
}

func (L *Lattice) String() string {
	return L.vecs.String()
}
