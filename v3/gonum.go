/*
 * gonum.go, part of primbin.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//gonum.go contains the Matrix type and what is needed to handle the gonum/mat types.

//All the *Vec functions operate on/produce row vectors.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space. Within the package it is understood that
//a "vector" is a row vector, i.e. the coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//data is used as the backing slice, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not a non-zero multiple of %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//NewMatrixFromVecs builds a Matrix with one row per element of vecs.
//The data is copied. Each element of vecs must have length 3.
func NewMatrixFromVecs(vecs [][]float64) (*Matrix, error) {
	if len(vecs) == 0 {
		return nil, Error{"No vectors given", []string{"NewMatrixFromVecs"}, true}
	}
	data := make([]float64, 0, 3*len(vecs))
	for i, v := range vecs {
		if len(v) != 3 {
			return nil, Error{fmt.Sprintf("Vector %d has %d components, 3 expected", i, len(v)), []string{"NewMatrixFromVecs"}, true}
		}
		data = append(data, v...)
	}
	return NewMatrix(data)
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
//It panics if vecs is not positive, as gonum does.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//VecCopy returns a copy of the ith vector of F. If dst is given and has
//room for 3 elements, the vector is put there.
func (F *Matrix) VecCopy(i int, dst ...[]float64) []float64 {
	var r []float64
	if len(dst) > 0 && len(dst[0]) >= 3 {
		r = dst[0][:3]
	}
	return mat.Row(r, i, F.Dense)
}

//SetVec puts the 3 elements of v in the ith vector of F.
func (F *Matrix) SetVec(i int, v []float64) {
	if len(v) != 3 {
		panic(ErrShape)
	}
	F.Dense.SetRow(i, v)
}

//Vecs returns a copy of the contents of F as a slice of vectors.
func (F *Matrix) Vecs() [][]float64 {
	ret := make([][]float64, F.NVecs())
	for i := range ret {
		ret[i] = F.VecCopy(i)
	}
	return ret
}

//Mul wraps mat.Dense.Mul to take care of the case when one of the
//arguments is also a Matrix, which gonum would otherwise only see as a generic mat.Matrix.
//The receiver must not be one of the arguments.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if F == A || F == B {
		panic(ErrAlias)
	}
	F.Dense.Mul(unwrap(A), unwrap(B))
}

//Inverse returns the inverse of the 3x3 matrix F, or an error if F is singular.
func (F *Matrix) Inverse() (*Matrix, error) {
	if r, c := F.Dims(); r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	if math.Abs(Det(F)) <= appzero {
		return nil, Error{"Singular matrix can't be inverted", []string{"Inverse"}, true}
	}
	ret := Zeros(3)
	if err := ret.Dense.Inverse(F.Dense); err != nil {
		//gonum returns a condition error for ill-conditioned matrices, the result is still usable.
		if _, ok := err.(mat.Condition); !ok {
			return nil, Error{err.Error(), []string{"Inverse"}, true}
		}
	}
	return ret, nil
}

//Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

func unwrap(A mat.Matrix) mat.Matrix {
	if M, ok := A.(*Matrix); ok {
		return M.Dense
	}
	return A
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return "primbin/v3: " + err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("primbin/v3: A Matrix should have 3 columns")
	ErrDeterminant  = PanicMsg("primbin/v3: Determinants are only available for 3x3 matrices")
	ErrShape        = PanicMsg("primbin/v3: Dimension mismatch")
	ErrAlias        = PanicMsg("primbin/v3: Receiver can't be one of the operands")
)
