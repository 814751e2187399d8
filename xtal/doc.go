/*
 * doc.go, part of primbin.
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

/*Package xtal contains the crystal data model used in primbin: a Lattice (three basis
vectors, immutable once built), Sites (a Cartesian position and the species occupying it)
and Structures (a Lattice plus an ordered list of Sites).

Coordinates are stored in Cartesian form. Fractional coordinates are always obtained
against a Lattice: a fractional row vector f maps to the Cartesian vector f·L, where the
rows of L are the lattice vectors.

The package also reads and writes VASP POSCAR files, which is the format in which
CASM projects keep ideal (POS) and relaxed (CONTCAR) structures.
*/
package xtal
