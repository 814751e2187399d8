/*
 * doc.go, part of primbin.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

/*Package v3 implements a Matrix type representing a row-major Nx3 matrix.
In primbin a v3.Matrix holds sets of points in 3D space: the three lattice vectors
of a crystal (one per row), or the Cartesian or fractional coordinates of the sites
of a structure. It is based on gonum's Dense type, with the additional restriction of
having exactly 3 columns, and a few functions that are handy when going back and forth
between fractional and Cartesian coordinates.

*/
package v3
