/*
 * pmedoc.go, part of gopme.
 *
 * Copyright 2025 The gopme developers
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

/*
Package pme computes long-range 1/r^p potentials of periodic particle
systems by Ewald-summation techniques.

Two calculators produce the same physical quantity by different routes:
Ewald sums explicitly over reciprocal-lattice vectors, while PME assigns
the charges to a regular mesh, convolves it with the reciprocal-space
Green's function of the Gaussian-smeared potential via FFT, and reads the
result back at the particle positions. Both add the same real-space
short-range correction over an externally supplied neighbor list and can
remove the self interaction of each charge with its own smeared density.

The charges of a system form an NxC matrix: each of the C channels is an
independent charge assignment (for example a one-hot encoding of species),
evaluated simultaneously without recomputing the geometry.

Neighbor lists are not built here. Whatever spatial-indexing code produces
them must supply, per pair within the cutoff, the two indices and the
integer lattice translation of the periodic image, and the list is used
exactly as given.

The subpackages kspace and mesh hold the reciprocal-lattice and
mesh-interpolation machinery, xyz reads and writes compressed snapshot
files, and pmeplot draws diagnostic figures.
*/
package pme
