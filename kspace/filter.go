/*
 * filter.go, part of gopme.
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

package kspace

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/tulga-rdn/torch-pme/mesh"
)

//Kernel is the reciprocal-space view of a pair potential: its Fourier
//transform evaluated from the squared norm of a reciprocal vector, the
//finite substitute used at k=0 (the net-neutral-cell limit), and a
//value-comparable parameter descriptor used as part of the cache key.
//Order is the order of the assignment spline that scattered the density
//onto the mesh; the filter divides the kernel by the squared Fourier
//transform of that spline, undoing the smoothing of the scatter and of
//the matching gather. Order 0 means the density is exact and nothing is
//divided out.
type Kernel interface {
	FromKSq(ksq float64) float64
	AtZero() float64
	Params() [2]float64
	Order() int
}

//Delta is the identity kernel: G(k)=1 everywhere, including k=0, with no
//assignment correction. It is the zero-exponent, zero-smearing member of
//the kernel family; convolving with it returns the input mesh scaled by
//n_fft/|det cell|.
type Delta struct{}

func (d Delta) FromKSq(ksq float64) float64 { return 1.0 }
func (d Delta) AtZero() float64             { return 1.0 }
func (d Delta) Params() [2]float64          { return [2]float64{0, 0} }
func (d Delta) Order() int                  { return 0 }

type filterKey struct {
	cell   [9]float64
	ns     [3]int
	params [2]float64
	order  int
}

//Filter convolves a real-space mesh density with a reciprocal-space
//kernel: forward real-input FFT, elementwise multiplication by G(k) on
//the half-spectrum grid, inverse FFT, and division by the cell volume.
//
//The kernel values depend only on (cell, mesh counts, kernel parameters),
//so they are cached and reused across calls until any of those change.
//The cache is guarded by a mutex; concurrent use of one Filter is safe
//but serialized, so independent instances should be preferred.
type Filter struct {
	mu    sync.Mutex
	valid bool
	key   filterKey
	g     []float64
	fft   *fft3
}

//NewFilter returns a Filter with an empty kernel cache.
func NewFilter() *Filter {
	return new(Filter)
}

//Convolve applies the kernel to every channel of the density grid and
//returns the convolved mesh as a new grid; the input is not modified.
func (f *Filter) Convolve(g *mesh.Grid, cell *mat.Dense, k Kernel) (*mesh.Grid, error) {
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, Error{fmt.Sprintf("cell of shape (%d,%d) should be of shape (3,3)", r, c), []string{"kspace.Convolve"}, true}
	}
	volume := math.Abs(mat.Det(cell))
	if volume == 0 {
		return nil, Error{"cell is degenerate", []string{"kspace.Convolve"}, true}
	}
	key := filterKey{ns: [3]int{g.NX, g.NY, g.NZ}, params: k.Params(), order: k.Order()}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			key.cell[3*i+j] = cell.At(i, j)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.valid || f.key != key {
		if err := f.rebuild(key, cell, k); err != nil {
			return nil, errDecorate(err, "kspace.Convolve")
		}
	}

	out := mesh.NewGrid(g.Channels, g.NX, g.NY, g.NZ)
	coeff := make([]complex128, g.NX*g.NY*(g.NZ/2+1))
	for c := 0; c < g.Channels; c++ {
		f.fft.forward(g.Channel(c), coeff)
		for i, gv := range f.g {
			coeff[i] *= complex(gv, 0)
		}
		f.fft.inverse(coeff, out.Channel(c))
	}
	//both transforms are unnormalized; only the volume factor is applied
	//here, so that the convolved mesh carries a net factor n_fft/volume
	//relative to the input density.
	scale := 1.0 / volume
	outData := out.Data
	for i := range outData {
		outData[i] *= scale
	}
	return out, nil
}

//rebuild recomputes the cached kernel values for a new geometry. The
//assignment correction is separable, one sinc^order factor per axis at
//the signed integer mesh frequency; the zero vector needs none (the
//spline weights sum to 1). Called with the mutex held.
func (f *Filter) rebuild(key filterKey, cell *mat.Dense, k Kernel) error {
	f.valid = false
	kv, err := KvectorsForMesh(key.ns, cell)
	if err != nil {
		return err
	}
	order := k.Order()
	g := make([]float64, kv.NX*kv.NY*kv.NZH)
	idx := 0
	for i := 0; i < kv.NX; i++ {
		wx := assignmentFT(FreqIndex(i, key.ns[0]), key.ns[0], order)
		for j := 0; j < kv.NY; j++ {
			wy := assignmentFT(FreqIndex(j, key.ns[1]), key.ns[1], order)
			for kz := 0; kz < kv.NZH; kz++ {
				wz := assignmentFT(kz, key.ns[2], order)
				kx, ky, kzv := kv.At(i, j, kz)
				w := wx * wy * wz
				g[idx] = k.FromKSq(kx*kx+ky*ky+kzv*kzv) / (w * w)
				idx++
			}
		}
	}
	g[0] = k.AtZero()
	f.g = g
	f.fft = newFFT3(key.ns[0], key.ns[1], key.ns[2])
	f.key = key
	f.valid = true
	return nil
}

//assignmentFT is the Fourier transform of the order-p assignment spline
//at integer mesh frequency m out of n: sinc(pi*m/n)^p. It never vanishes
//on the half-open frequency range of a DFT, so dividing by it is safe.
func assignmentFT(m, n, order int) float64 {
	if order == 0 || m == 0 {
		return 1.0
	}
	x := math.Pi * float64(m) / float64(n)
	return math.Pow(math.Sin(x)/x, float64(order))
}
