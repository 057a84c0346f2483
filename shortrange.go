/*
 * shortrange.go, part of gopme.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//shortRange accumulates the real-space part of the split potential over
//the supplied neighbor list: for every (i,j,shift) entry, the charge of j
//times the short-range kernel at |pos_j - pos_i + shift*cell| is added to
//the potential at i, per channel. With subtractInterior the full bare
//potential of each listed pair is removed instead, which leaves minus the
//long-range part and so cancels the intra-cutoff reciprocal-space
//contribution. Both calculators share this term unchanged.
func shortRange(pot Potential, sys *System, smearing float64, subtractInterior bool) *mat.Dense {
	n := sys.NParticles()
	channels := sys.NChannels()
	ret := mat.NewDense(n, channels, nil)
	for _, nb := range sys.Neighbors {
		var d [3]float64
		for a := 0; a < 3; a++ {
			d[a] = sys.Positions.At(nb.J, a) - sys.Positions.At(nb.I, a)
		}
		if sys.Cell != nil {
			for a := 0; a < 3; a++ {
				d[a] += float64(nb.Shift[0])*sys.Cell.At(0, a) +
					float64(nb.Shift[1])*sys.Cell.At(1, a) +
					float64(nb.Shift[2])*sys.Cell.At(2, a)
			}
		}
		dist := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
		v := pot.SRFromR(dist, smearing)
		if subtractInterior {
			v -= pot.FromR(dist)
		}
		for c := 0; c < channels; c++ {
			ret.Set(nb.I, c, ret.At(nb.I, c)+sys.Charges.At(nb.J, c)*v)
		}
	}
	return ret
}
