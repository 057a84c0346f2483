/*
 * ewald.go, part of gopme.
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

	"github.com/tulga-rdn/torch-pme/kspace"
)

//Ewald computes species-wise 1/r^p potentials of a periodic system by the
//classic Ewald sum: an explicit summation over reciprocal-lattice vectors
//for the long-range part plus the real-space short-range term over the
//supplied neighbor list. Cost scales as O(N*K) with K the number of
//k-vectors, i.e. effectively O(N^2) at fixed accuracy per particle.
type Ewald struct {
	pot Potential
	o   *Options
}

//NewEwald builds an Ewald calculator from the given options (or the
//defaults if none are given). All parameter validation happens here;
//Compute only raises geometry and shape errors.
func NewEwald(opts ...*Options) (*Ewald, error) {
	o := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0].clone()
	}
	if err := o.validate(); err != nil {
		return nil, errDecorate(err, "NewEwald")
	}
	pot, err := NewPotential(o.exponent)
	if err != nil {
		return nil, errDecorate(err, "NewEwald")
	}
	return &Ewald{pot: pot, o: o}, nil
}

//Potential returns the pair-potential kernel the calculator was built with.
func (c *Ewald) Potential() Potential { return c.pot }

//Compute returns the NxC per-particle, per-channel potential of the
//system. Each call is independent; no state survives it.
func (c *Ewald) Compute(sys *System) (*mat.Dense, error) {
	if err := sys.validate(); err != nil {
		return nil, errDecorate(err, "Ewald.Compute")
	}
	if sys.Cell == nil {
		return nil, CError{"the Ewald sum needs a periodic cell", []string{"Ewald.Compute"}}
	}
	smearing := c.o.resolveSmearing(sys.Cell)
	lrw := c.o.lrWavelength
	if lrw == 0 {
		lrw = 0.5 * smearing
	}
	energy, err := c.longRange(sys, smearing, lrw)
	if err != nil {
		return nil, errDecorate(err, "Ewald.Compute")
	}
	energy.Add(energy, shortRange(c.pot, sys, smearing, c.o.subtractInterior))
	return energy, nil
}

//ComputeAll computes the potential of every system of a heterogeneous
//batch, returning one NxC matrix per system.
func (c *Ewald) ComputeAll(systems []*System) ([]*mat.Dense, error) {
	ret := make([]*mat.Dense, len(systems))
	for i, sys := range systems {
		p, err := c.Compute(sys)
		if err != nil {
			return nil, errDecorate(err, "Ewald.ComputeAll")
		}
		ret[i] = p
	}
	return ret, nil
}

//longRange evaluates the reciprocal-space sum. The naive double sum over
//particle pairs is collapsed into O(N*K) through the structure-factor
//identity cos(a-b) = cos(a)cos(b) + sin(a)sin(b): the charge-weighted
//cosine and sine sums are computed once per k-vector and channel, and the
//per-particle energies follow from two matrix products.
func (c *Ewald) longRange(sys *System, smearing, lrWavelength float64) (*mat.Dense, error) {
	cell := sys.Cell
	//number of times each reciprocal basis vector fits under the cutoff
	kCutoff := 2 * math.Pi / lrWavelength
	var ns [3]int
	for a := 0; a < 3; a++ {
		norm := math.Sqrt(cell.At(a, 0)*cell.At(a, 0) + cell.At(a, 1)*cell.At(a, 1) + cell.At(a, 2)*cell.At(a, 2))
		ns[a] = int(math.Ceil(kCutoff * norm / (2 * math.Pi)))
		if ns[a] < 1 {
			ns[a] = 1
		}
	}
	kv, err := kspace.KvectorsForEwald(ns, cell)
	if err != nil {
		return nil, errDecorate(err, "Ewald.longRange")
	}
	nk, _ := kv.Dims()
	g := make([]float64, nk)
	for r := 1; r < nk; r++ {
		kx, ky, kz := kv.At(r, 0), kv.At(r, 1), kv.At(r, 2)
		g[r] = c.pot.FourierFromKSq(kx*kx+ky*ky+kz*kz, smearing)
	}
	g[0] = c.pot.FourierAtZero(smearing)

	n := sys.NParticles()
	channels := sys.NChannels()
	trig := mat.NewDense(nk, n, nil)
	trig.Mul(kv, sys.Positions.T())
	cosAll := mat.NewDense(nk, n, nil)
	sinAll := mat.NewDense(nk, n, nil)
	gCos := mat.NewDense(nk, n, nil)
	gSin := mat.NewDense(nk, n, nil)
	for r := 0; r < nk; r++ {
		for i := 0; i < n; i++ {
			s, co := math.Sincos(trig.At(r, i))
			cosAll.Set(r, i, co)
			sinAll.Set(r, i, s)
			gCos.Set(r, i, g[r]*co)
			gSin.Set(r, i, g[r]*s)
		}
	}
	//charge-weighted structure factors, one column per channel
	cosSum := mat.NewDense(nk, channels, nil)
	cosSum.Mul(cosAll, sys.Charges)
	sinSum := mat.NewDense(nk, channels, nil)
	sinSum.Mul(sinAll, sys.Charges)

	energy := mat.NewDense(n, channels, nil)
	energy.Mul(gCos.T(), cosSum)
	tmp := mat.NewDense(n, channels, nil)
	tmp.Mul(gSin.T(), sinSum)
	energy.Add(energy, tmp)
	energy.Scale(1.0/math.Abs(mat.Det(cell)), energy)

	if c.o.subtractSelf || c.o.subtractInterior {
		self := mat.NewDense(n, channels, nil)
		self.Scale(c.pot.SelfContribution(smearing), sys.Charges)
		energy.Sub(energy, self)
	}
	return energy, nil
}
