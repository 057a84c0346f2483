/*
 * interpolator.go, part of gopme.
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

//Package mesh maps continuous particle positions to a discrete periodic grid
//and back, using the card-spline weights of the P3M family
//(Deserno and Holm, J. Chem. Phys. 109, 7678 (1998)), orders 1 through 5.
package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Interpolator assigns particle weights to mesh points (scatter) and reads
//mesh values back at particle positions (gather). Both directions use the
//same 1D weights along each cell axis, so the gather is the exact adjoint
//of the scatter.
type Interpolator struct {
	cell  *mat.Dense //3x3, rows are the cell vectors
	inv   *mat.Dense
	ns    [3]int
	order int
}

//NewInterpolator builds an interpolator for the given cell, mesh counts
//and interpolation order. Orders 1 to 5 are supported; order 1 is
//nearest-grid-point assignment.
func NewInterpolator(cell *mat.Dense, ns [3]int, order int) (*Interpolator, error) {
	if order < 1 || order > 5 {
		return nil, Error{fmt.Sprintf("interpolation order %d outside the supported range [1,5]", order), []string{"mesh.NewInterpolator"}, true}
	}
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, Error{fmt.Sprintf("cell of shape (%d,%d) should be of shape (3,3)", r, c), []string{"mesh.NewInterpolator"}, true}
	}
	for a, n := range ns {
		if n < 1 {
			return nil, Error{fmt.Sprintf("mesh counts must be positive, got %d along axis %d", n, a), []string{"mesh.NewInterpolator"}, true}
		}
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(cell); err != nil {
		return nil, Error{"cell is degenerate: " + err.Error(), []string{"mesh.NewInterpolator"}, true}
	}
	return &Interpolator{cell: mat.DenseCopyOf(cell), inv: inv, ns: ns, order: order}, nil
}

//Order returns the interpolation order.
func (ip *Interpolator) Order() int { return ip.order }

//Ns returns the mesh counts along each cell axis.
func (ip *Interpolator) Ns() [3]int { return ip.ns }

//MeshXYZ returns the Cartesian coordinates of all mesh points as an
//(nx*ny*nz)x3 matrix, with the z index running fastest, matching the
//storage order of Grid.
func (ip *Interpolator) MeshXYZ() *mat.Dense {
	nx, ny, nz := ip.ns[0], ip.ns[1], ip.ns[2]
	ret := mat.NewDense(nx*ny*nz, 3, nil)
	row := 0
	for i := 0; i < nx; i++ {
		fi := float64(i) / float64(nx)
		for j := 0; j < ny; j++ {
			fj := float64(j) / float64(ny)
			for k := 0; k < nz; k++ {
				fk := float64(k) / float64(nz)
				for d := 0; d < 3; d++ {
					ret.Set(row, d, fi*ip.cell.At(0, d)+fj*ip.cell.At(1, d)+fk*ip.cell.At(2, d))
				}
				row++
			}
		}
	}
	return ret
}

//Weights bundles the per-particle interpolation weights and wrapped mesh
//indices with the number of particles they were computed for. A Weights
//value is immutable once returned; scatter and gather only accept a
//Weights, so they can never run on stale state from a previous set of
//positions.
type Weights struct {
	n     int
	order int
	ns    [3]int
	//w[axis][s][particle] is the 1D weight of the s-th mesh point (in
	//ascending offset order) touched by the particle along that axis.
	w [3][][]float64
	//idx[axis][s][particle] is the matching wrapped mesh index.
	idx [3][][]int
}

//NParticles returns the number of particles the weights were computed for.
func (w *Weights) NParticles() int { return w.n }

//Weights computes the interpolation weights and mesh indices for the given
//Nx3 positions. The fractional coordinate of each particle is scaled by
//the mesh counts; even orders center the support on the half-integer grid
//point (floor + 1/2), odd orders on the nearest integer one. Indices wrap
//modulo the mesh counts, which is the only place where the periodicity of
//the mesh enters.
func (ip *Interpolator) Weights(positions *mat.Dense) (*Weights, error) {
	n, c := positions.Dims()
	if c != 3 {
		return nil, Error{fmt.Sprintf("positions of shape (%d,%d) should be of shape (N,3)", n, c), []string{"mesh.Weights"}, true}
	}
	rel := mat.NewDense(n, 3, nil)
	rel.Mul(positions, ip.inv)

	w := &Weights{n: n, order: ip.order, ns: ip.ns}
	for a := 0; a < 3; a++ {
		w.w[a] = make([][]float64, ip.order)
		w.idx[a] = make([][]int, ip.order)
		for s := 0; s < ip.order; s++ {
			w.w[a][s] = make([]float64, n)
			w.idx[a][s] = make([]int, n)
		}
	}
	//offsets of the touched mesh points relative to the centering index,
	//s-th touched point sits at base + s + lo
	lo := 1 - (ip.order+1)/2
	buf := make([]float64, ip.order)
	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			u := rel.At(i, a) * float64(ip.ns[a])
			var base int
			var x float64
			if ip.order%2 == 0 {
				base = int(math.Floor(u))
				x = u - (float64(base) + 0.5)
			} else {
				base = int(math.Round(u))
				x = u - float64(base)
			}
			weights1D(ip.order, x, buf)
			for s := 0; s < ip.order; s++ {
				w.w[a][s][i] = buf[s]
				w.idx[a][s][i] = wrap(base+s+lo, ip.ns[a])
			}
		}
	}
	return w, nil
}

//wrap brings an arbitrary (possibly negative) index into [0,n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

//weights1D fills dst with the closed-form P3M weights for the given order
//at the relative offset x, which lies in [-1/2,1/2]. The weights form a
//partition of unity over the support and, for order >= 2, vanish smoothly
//at the edges of the support.
func weights1D(order int, x float64, dst []float64) {
	switch order {
	case 1:
		dst[0] = 1.0
	case 2:
		dst[0] = 0.5 * (1 - 2*x)
		dst[1] = 0.5 * (1 + 2*x)
	case 3:
		x2 := x * x
		dst[0] = 1.0 / 8 * (1 - 4*x + 4*x2)
		dst[1] = 1.0 / 4 * (3 - 4*x2)
		dst[2] = 1.0 / 8 * (1 + 4*x + 4*x2)
	case 4:
		x2 := x * x
		x3 := x * x2
		dst[0] = 1.0 / 48 * (1 - 6*x + 12*x2 - 8*x3)
		dst[1] = 1.0 / 48 * (23 - 30*x - 12*x2 + 24*x3)
		dst[2] = 1.0 / 48 * (23 + 30*x - 12*x2 - 24*x3)
		dst[3] = 1.0 / 48 * (1 + 6*x + 12*x2 + 8*x3)
	case 5:
		x2 := x * x
		x3 := x * x2
		x4 := x * x3
		dst[0] = 1.0 / 384 * (1 - 8*x + 24*x2 - 32*x3 + 16*x4)
		dst[1] = 1.0 / 96 * (19 - 44*x + 24*x2 + 16*x3 - 16*x4)
		dst[2] = 1.0 / 192 * (115 - 120*x2 + 48*x4)
		dst[3] = 1.0 / 96 * (19 + 44*x + 24*x2 - 16*x3 - 16*x4)
		dst[4] = 1.0 / 384 * (1 + 8*x + 24*x2 + 32*x3 + 16*x4)
	default:
		panic(ErrBadOrder)
	}
}

//PointsToMesh scatters the NxC particle weights (charges) onto the mesh,
//accumulating the separable product of the 1D weights over the order^3
//mesh points each particle touches. Contributions from different
//particles to the same mesh point add up.
func (ip *Interpolator) PointsToMesh(w *Weights, charges *mat.Dense) (*Grid, error) {
	n, channels := charges.Dims()
	if w == nil {
		return nil, Error{"nil interpolation weights", []string{"mesh.PointsToMesh"}, true}
	}
	if n != w.n {
		return nil, Error{fmt.Sprintf("charges for %d particles but weights were computed for %d", n, w.n), []string{"mesh.PointsToMesh"}, true}
	}
	if w.order != ip.order || w.ns != ip.ns {
		return nil, Error{"weights were computed with a different mesh or order", []string{"mesh.PointsToMesh"}, true}
	}
	g := NewGrid(channels, ip.ns[0], ip.ns[1], ip.ns[2])
	for i := 0; i < n; i++ {
		for sx := 0; sx < ip.order; sx++ {
			wx := w.w[0][sx][i]
			gx := w.idx[0][sx][i]
			for sy := 0; sy < ip.order; sy++ {
				wxy := wx * w.w[1][sy][i]
				gy := w.idx[1][sy][i]
				for sz := 0; sz < ip.order; sz++ {
					wxyz := wxy * w.w[2][sz][i]
					gz := w.idx[2][sz][i]
					for c := 0; c < channels; c++ {
						g.Add(c, gx, gy, gz, wxyz*charges.At(i, c))
					}
				}
			}
		}
	}
	return g, nil
}

//MeshToPoints gathers the mesh values back onto the particle positions the
//weights were computed from, returning an NxC matrix. This is the
//mathematical adjoint of PointsToMesh.
func (ip *Interpolator) MeshToPoints(w *Weights, g *Grid) (*mat.Dense, error) {
	if w == nil {
		return nil, Error{"nil interpolation weights", []string{"mesh.MeshToPoints"}, true}
	}
	if w.order != ip.order || w.ns != ip.ns {
		return nil, Error{"weights were computed with a different mesh or order", []string{"mesh.MeshToPoints"}, true}
	}
	if g.NX != ip.ns[0] || g.NY != ip.ns[1] || g.NZ != ip.ns[2] {
		return nil, Error{fmt.Sprintf("grid of shape (%d,%d,%d) does not match mesh counts (%d,%d,%d)", g.NX, g.NY, g.NZ, ip.ns[0], ip.ns[1], ip.ns[2]), []string{"mesh.MeshToPoints"}, true}
	}
	ret := mat.NewDense(w.n, g.Channels, nil)
	for i := 0; i < w.n; i++ {
		for sx := 0; sx < ip.order; sx++ {
			wx := w.w[0][sx][i]
			gx := w.idx[0][sx][i]
			for sy := 0; sy < ip.order; sy++ {
				wxy := wx * w.w[1][sy][i]
				gy := w.idx[1][sy][i]
				for sz := 0; sz < ip.order; sz++ {
					wxyz := wxy * w.w[2][sz][i]
					gz := w.idx[2][sz][i]
					for c := 0; c < g.Channels; c++ {
						ret.Set(i, c, ret.At(i, c)+wxyz*g.At(c, gx, gy, gz))
					}
				}
			}
		}
	}
	return ret, nil
}

//Errors

//Error is the concrete error type of the mesh package. It is the same as
//the error of the parent package, redefined here to avoid a circular
//import, as the v3 package of goChem does.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. For errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrBadGridSize = PanicMsg("gopme/mesh: grid channels and mesh counts must be positive")
	ErrBadOrder    = PanicMsg("gopme/mesh: interpolation order outside [1,5]")
)
