/*
 * pmecalc.go, part of gopme.
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

	"github.com/tulga-rdn/torch-pme/kspace"
	"github.com/tulga-rdn/torch-pme/mesh"
)

//PME computes the same physical quantity as Ewald through the particle
//mesh Ewald algorithm: charges are interpolated onto a regular mesh, the
//long-range part is obtained by a reciprocal-space convolution of the
//mesh density, and the result is interpolated back onto the particle
//positions. Cost scales as O(N log N). The short-range term and the self
//and interior subtractions are identical to the Ewald calculator.
type PME struct {
	pot    Potential
	o      *Options
	filter *kspace.Filter
}

//NewPME builds a PME calculator from the given options (or the defaults
//if none are given). The convolution-kernel cache lives on the returned
//instance and persists across Compute calls; for concurrent use build one
//calculator per goroutine.
func NewPME(opts ...*Options) (*PME, error) {
	o := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0].clone()
	}
	if err := o.validate(); err != nil {
		return nil, errDecorate(err, "NewPME")
	}
	if o.order < 1 || o.order > 5 {
		return nil, CError{fmt.Sprintf("interpolation order %d outside the supported range [1,5]", o.order), []string{"NewPME"}}
	}
	pot, err := NewPotential(o.exponent)
	if err != nil {
		return nil, errDecorate(err, "NewPME")
	}
	return &PME{pot: pot, o: o, filter: kspace.NewFilter()}, nil
}

//Potential returns the pair-potential kernel the calculator was built with.
func (c *PME) Potential() Potential { return c.pot }

//Compute returns the NxC per-particle, per-channel potential of the
//system. Interpolation weights and the mesh are rebuilt on every call;
//only the convolution kernel is cached, and it is reused as long as cell,
//mesh counts and smearing stay the same.
func (c *PME) Compute(sys *System) (*mat.Dense, error) {
	if err := sys.validate(); err != nil {
		return nil, errDecorate(err, "PME.Compute")
	}
	if sys.Cell == nil {
		return nil, CError{"the PME sum needs a periodic cell", []string{"PME.Compute"}}
	}
	smearing := c.o.resolveSmearing(sys.Cell)
	spacing := c.o.meshSpacing
	if spacing == 0 {
		spacing = smearing / 8.0
	}
	//mesh counts: the next power of two that resolves the requested
	//spacing along each cell vector, for fast transforms
	var ns [3]int
	for a := 0; a < 3; a++ {
		norm := math.Sqrt(sys.Cell.At(a, 0)*sys.Cell.At(a, 0) + sys.Cell.At(a, 1)*sys.Cell.At(a, 1) + sys.Cell.At(a, 2)*sys.Cell.At(a, 2))
		ns[a] = nextPow2(norm / spacing)
	}
	ip, err := mesh.NewInterpolator(sys.Cell, ns, c.o.order)
	if err != nil {
		return nil, errDecorate(err, "PME.Compute")
	}
	w, err := ip.Weights(sys.Positions)
	if err != nil {
		return nil, errDecorate(err, "PME.Compute")
	}
	rho, err := ip.PointsToMesh(w, sys.Charges)
	if err != nil {
		return nil, errDecorate(err, "PME.Compute")
	}
	conv, err := c.filter.Convolve(rho, sys.Cell, boundKernel{pot: c.pot, smearing: smearing, order: c.o.order})
	if err != nil {
		return nil, errDecorate(err, "PME.Compute")
	}
	energy, err := ip.MeshToPoints(w, conv)
	if err != nil {
		return nil, errDecorate(err, "PME.Compute")
	}
	if c.o.subtractSelf || c.o.subtractInterior {
		n := sys.NParticles()
		channels := sys.NChannels()
		self := mat.NewDense(n, channels, nil)
		self.Scale(c.pot.SelfContribution(smearing), sys.Charges)
		energy.Sub(energy, self)
	}
	energy.Add(energy, shortRange(c.pot, sys, smearing, c.o.subtractInterior))
	return energy, nil
}

//ComputeAll computes the potential of every system of a heterogeneous
//batch, returning one NxC matrix per system.
func (c *PME) ComputeAll(systems []*System) ([]*mat.Dense, error) {
	ret := make([]*mat.Dense, len(systems))
	for i, sys := range systems {
		p, err := c.Compute(sys)
		if err != nil {
			return nil, errDecorate(err, "PME.ComputeAll")
		}
		ret[i] = p
	}
	return ret, nil
}

//boundKernel adapts a Potential with a fixed smearing to the
//reciprocal-space kernel interface of the convolution filter. Order tells
//the filter which assignment spline to divide out, so that the smoothing
//of the scatter/gather pair cancels instead of biasing the potential.
type boundKernel struct {
	pot      Potential
	smearing float64
	order    int
}

func (b boundKernel) FromKSq(ksq float64) float64 {
	return b.pot.FourierFromKSq(ksq, b.smearing)
}

func (b boundKernel) AtZero() float64 {
	return b.pot.FourierAtZero(b.smearing)
}

func (b boundKernel) Params() [2]float64 {
	return [2]float64{b.pot.Exponent(), b.smearing}
}

func (b boundKernel) Order() int { return b.order }

//nextPow2 returns the smallest power of two that is >= x.
func nextPow2(x float64) int {
	n := 1
	for float64(n) < x {
		n *= 2
	}
	return n
}
