/*
 * options.go, part of gopme.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//Options collects the convergence and behavior parameters shared by the
//calculators. Each accessor returns the current value and, if an argument
//is given, sets it first. Zero values for the width/resolution parameters
//mean "derive from the cell geometry at compute time". Values are only
//checked when a calculator is built, so an invalid setting surfaces as an
//error there, not as a silent fallback.
type Options struct {
	exponent         float64
	smearing         float64
	lrWavelength     float64
	meshSpacing      float64
	order            int
	subtractSelf     bool
	subtractInterior bool
}

//DefaultOptions returns an Options with the default parameters: Coulomb
//exponent, geometry-derived smearing and resolutions, cubic interpolation
//and self-interaction removal.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.exponent = 1.0
	ret.order = 3
	ret.subtractSelf = true
	return ret
}

//Exponent returns the exponent p of the 1/r^p kernel and sets it, if a
//value is given.
func (o *Options) Exponent(p ...float64) float64 {
	if len(p) > 0 {
		o.exponent = p[0]
	}
	return o.exponent
}

//Smearing returns the width of the Gaussian used to split the potential
//into short- and long-range parts, and sets it, if a value is given. Zero
//means one fifth of half the shortest cell vector, per system.
func (o *Options) Smearing(s ...float64) float64 {
	if len(s) > 0 {
		o.smearing = s[0]
	}
	return o.smearing
}

//LRWavelength returns the reciprocal-space resolution of the Ewald sum
//(all k-vectors with wavelength >= this value are kept) and sets it, if a
//value is given. Zero means half the smearing.
func (o *Options) LRWavelength(w ...float64) float64 {
	if len(w) > 0 {
		o.lrWavelength = w[0]
	}
	return o.lrWavelength
}

//MeshSpacing returns the real-space resolution of the PME mesh and sets
//it, if a value is given. Zero means one eighth of the smearing.
func (o *Options) MeshSpacing(s ...float64) float64 {
	if len(s) > 0 {
		o.meshSpacing = s[0]
	}
	return o.meshSpacing
}

//InterpolationOrder returns the degree of the mesh interpolation (PME
//only, valid range [1,5]) and sets it, if a value is given.
func (o *Options) InterpolationOrder(n ...int) int {
	if len(n) > 0 {
		o.order = n[0]
	}
	return o.order
}

//SubtractSelf returns whether the interaction of each charge with its own
//smeared density is removed from the potential, and sets it, if a value
//is given.
func (o *Options) SubtractSelf(b ...bool) bool {
	if len(b) > 0 {
		o.subtractSelf = b[0]
	}
	return o.subtractSelf
}

//SubtractInterior returns whether all contributions from pairs inside the
//neighbor-list cutoff are removed, and sets it, if a value is given.
//Setting it implies SubtractSelf.
func (o *Options) SubtractInterior(b ...bool) bool {
	if len(b) > 0 {
		o.subtractInterior = b[0]
	}
	return o.subtractInterior
}

func (o *Options) clone() *Options {
	ret := *o
	return &ret
}

//validate checks the parameters common to both calculators.
func (o *Options) validate() error {
	if o.smearing < 0 {
		return CError{fmt.Sprintf("smearing %v has to be positive", o.smearing), []string{"Options.validate"}}
	}
	if o.lrWavelength < 0 {
		return CError{fmt.Sprintf("lr wavelength %v has to be positive", o.lrWavelength), []string{"Options.validate"}}
	}
	if o.meshSpacing < 0 {
		return CError{fmt.Sprintf("mesh spacing %v has to be positive", o.meshSpacing), []string{"Options.validate"}}
	}
	return nil
}

//resolveSmearing returns the smearing to use for the given cell: the
//user-supplied one, or one fifth of (half the shortest cell vector minus
//a small safety margin).
func (o *Options) resolveSmearing(cell *mat.Dense) float64 {
	if o.smearing > 0 {
		return o.smearing
	}
	min := math.Inf(1)
	for a := 0; a < 3; a++ {
		n := math.Sqrt(cell.At(a, 0)*cell.At(a, 0) + cell.At(a, 1)*cell.At(a, 1) + cell.At(a, 2)*cell.At(a, 2))
		if n < min {
			min = n
		}
	}
	return (min/2 - 1e-6) / 5.0
}
