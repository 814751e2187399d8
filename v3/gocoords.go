/*
 * gocoords.go, part of primbin.
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

package v3

import (
	"fmt"
	"math"
	"strings"
)

//METHODS

//EqualApprox returns true if F and A have the same shape and all their elements differ
//in less than tol. If tol is negative, appzero is used.
func (F *Matrix) EqualApprox(A *Matrix, tol float64) bool {
	if tol < 0 {
		tol = appzero
	}
	fr, fc := F.Dims()
	ar, ac := A.Dims()
	if fr != ar || fc != ac {
		return false
	}
	for i := 0; i < fr; i++ {
		for j := 0; j < fc; j++ {
			if math.Abs(F.At(i, j)-A.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r)
	for i := 0; i < r; i++ {
		row := make([]string, c)
		for j := 0; j < c; j++ {
			row[j] = fmt.Sprintf("%8.5f", F.At(i, j))
		}
		v[i] = "[" + strings.Join(row, " ") + "]"
	}
	return strings.Join(v, "\n")
}
