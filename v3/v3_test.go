/*
 * v3_test.go, part of primbin.
 *
 * Copyright 2016 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package v3

import (
	"fmt"
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("A slice with 4 elements should not make a Matrix")
	}
	A, err := NewMatrixFromVecs([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vecs, got %d", A.NVecs())
	}
	v := A.VecCopy(1)
	v[0] = 100
	if A.At(1, 0) != 4 {
		Te.Error("VecCopy should not share memory with the Matrix")
	}
	view := A.VecView(1)
	view.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("VecView should share memory with the Matrix")
	}
	if _, err := NewMatrixFromVecs([][]float64{{1, 2}}); err == nil {
		Te.Error("A 2-component vector should be rejected")
	}
}

func TestMulInverse(Te *testing.T) {
	L, err := NewMatrixFromVecs([][]float64{{0, 2, 2}, {2, 0, 2}, {2, 2, 0}})
	if err != nil {
		Te.Fatal(err)
	}
	if d := Det(L); math.Abs(d-16) > 1e-12 {
		Te.Errorf("Determinant should be 16, got %f", d)
	}
	Li, err := L.Inverse()
	if err != nil {
		Te.Fatal(err)
	}
	I := Zeros(3)
	I.Mul(L, Li)
	eye, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	if !I.EqualApprox(eye, 1e-12) {
		Te.Errorf("L*L^-1 is not the identity:\n%s", I)
	}
	S, _ := NewMatrixFromVecs([][]float64{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}})
	if _, err := S.Inverse(); err == nil {
		Te.Error("Singular matrix should not be inverted")
	}
}

func TestEqualApprox(Te *testing.T) {
	A, _ := NewMatrixFromVecs([][]float64{{1, 2, 3}, {4, 5, 6}})
	B, _ := NewMatrixFromVecs([][]float64{{1, 2, 3}, {4, 5, 6 + 1e-14}})
	if !A.EqualApprox(B, -1) {
		Te.Errorf("Matrices should be equal within appzero:\n%s\n%s", A, B)
	}
	B.Set(1, 2, 6.1)
	if A.EqualApprox(B, 0.01) {
		Te.Error("Matrices differing by 0.1 should not be equal with tol 0.01")
	}
	if A.EqualApprox(Zeros(3), 100) {
		Te.Error("Matrices with different shapes should never be equal")
	}
	if s := A.String(); s != "[ 1.00000  2.00000  3.00000]\n[ 4.00000  5.00000  6.00000]" {
		Te.Errorf("Unexpected String output %q", s)
	}
}

func ExampleMatrix_Mul() {
	frac, _ := NewMatrix([]float64{0.5, 0.5, 0})
	lat, _ := NewMatrixFromVecs([][]float64{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}})
	cart := Zeros(1)
	cart.Mul(frac, lat)
	fmt.Println(cart.VecCopy(0))
	// Output: [2 2 0]
}
