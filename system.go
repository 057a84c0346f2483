/*
 * system.go, part of gopme.
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

package pme

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Neighbor is one entry of an externally built neighbor list: the indices
//of an interacting pair plus the integer lattice translation of the
//periodic image of J that is within the cutoff of I. The distance used in
//the short-range sum is |pos_J - pos_I + Shift*cell|.
type Neighbor struct {
	I, J  int
	Shift [3]int
}

//System is the input of one calculation: N Cartesian positions (Nx3), the
//particle weights for C independent channels (NxC, e.g. a one-hot species
//encoding to obtain per-species potentials in one pass), the 3x3 cell
//whose rows are the lattice vectors, and the neighbor list for the
//short-range sum.
//
//The neighbor list is consumed as given: no completeness check,
//deduplication or half/full inference is performed, so it must be
//consistent with the cutoff used to build it.
type System struct {
	Positions *mat.Dense
	Charges   *mat.Dense
	Cell      *mat.Dense
	Neighbors []Neighbor
}

//NParticles returns the number of particles of the system.
func (s *System) NParticles() int {
	n, _ := s.Positions.Dims()
	return n
}

//NChannels returns the number of charge channels of the system.
func (s *System) NChannels() int {
	_, c := s.Charges.Dims()
	return c
}

//validate runs the shape and consistency checks shared by the
//calculators. The periodic calculators additionally require a cell; here
//only the mutual consistency of cell and shifts is enforced.
func (s *System) validate() error {
	if s == nil {
		panic(ErrNilSystem)
	}
	if s.Positions == nil || s.Charges == nil {
		return CError{"positions and charges must both be given", []string{"System.validate"}}
	}
	n, c := s.Positions.Dims()
	if c != 3 {
		return CError{fmt.Sprintf("positions of shape (%d,%d) should be of shape (N,3)", n, c), []string{"System.validate"}}
	}
	qr, qc := s.Charges.Dims()
	if qr != n {
		return CError{fmt.Sprintf("charges for %d particles do not match %d positions", qr, n), []string{"System.validate"}}
	}
	if qc < 1 {
		return CError{"charges must have at least one channel", []string{"System.validate"}}
	}
	if s.Cell != nil {
		if r, cc := s.Cell.Dims(); r != 3 || cc != 3 {
			return CError{fmt.Sprintf("cell of shape (%d,%d) should be of shape (3,3)", r, cc), []string{"System.validate"}}
		}
		if mat.Det(s.Cell) == 0 {
			return CError{"cell is degenerate (zero determinant)", []string{"System.validate"}}
		}
	}
	for k, nb := range s.Neighbors {
		if nb.I < 0 || nb.I >= n || nb.J < 0 || nb.J >= n {
			return CError{fmt.Sprintf("neighbor %d references particles (%d,%d) outside [0,%d)", k, nb.I, nb.J, n), []string{"System.validate"}}
		}
		if s.Cell == nil && nb.Shift != [3]int{} {
			return CError{fmt.Sprintf("neighbor %d carries a periodic shift but no cell was given", k), []string{"System.validate"}}
		}
	}
	return nil
}
