/*
 * kvectors.go, part of gopme.
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

//Package kspace generates reciprocal-lattice vectors and applies
//reciprocal-space convolution kernels to periodic meshes.
package kspace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//FreqIndex returns the integer frequency that the i-th output of a length-n
//discrete Fourier transform corresponds to, following the usual signed
//(fftfreq) convention: 0, 1, ..., n/2-1, -n/2, ..., -1.
func FreqIndex(i, n int) int {
	if i < (n+1)/2 {
		return i
	}
	return i - n
}

//ReciprocalCell returns the reciprocal cell 2*pi*inv(cell)^T of the given
//3x3 real-space cell, whose rows are the real-space basis vectors. The
//rows of the result are the reciprocal basis vectors, so that
//cell_i . b_j = 2*pi*delta_ij.
func ReciprocalCell(cell *mat.Dense) (*mat.Dense, error) {
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, Error{fmt.Sprintf("cell of shape (%d,%d) should be of shape (3,3)", r, c), []string{"kspace.ReciprocalCell"}, true}
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(cell); err != nil {
		return nil, Error{"cell is degenerate: " + err.Error(), []string{"kspace.ReciprocalCell"}, true}
	}
	rec := mat.NewDense(3, 3, nil)
	rec.Scale(2*math.Pi, inv.T())
	return rec, nil
}

func checkNs(ns [3]int, caller string) error {
	for a, n := range ns {
		if n < 1 {
			return Error{fmt.Sprintf("k-vector counts must be positive, got %d along axis %d", n, a), []string{caller}, true}
		}
	}
	return nil
}

//KvectorsForEwald enumerates the full set of reciprocal vectors
//k = n1*b1 + n2*b2 + n3*b3 for the signed-frequency ranges of an
//(nx,ny,nz) discrete Fourier transform, flattened to a Kx3 matrix with the
//z frequency running fastest. The first row is always the zero vector.
//This is the set summed over explicitly by the Ewald calculator.
func KvectorsForEwald(ns [3]int, cell *mat.Dense) (*mat.Dense, error) {
	if err := checkNs(ns, "kspace.KvectorsForEwald"); err != nil {
		return nil, err
	}
	rec, err := ReciprocalCell(cell)
	if err != nil {
		return nil, errDecorate(err, "kspace.KvectorsForEwald")
	}
	nx, ny, nz := ns[0], ns[1], ns[2]
	ret := mat.NewDense(nx*ny*nz, 3, nil)
	row := 0
	for i := 0; i < nx; i++ {
		fx := float64(FreqIndex(i, nx))
		for j := 0; j < ny; j++ {
			fy := float64(FreqIndex(j, ny))
			for k := 0; k < nz; k++ {
				fz := float64(FreqIndex(k, nz))
				for d := 0; d < 3; d++ {
					ret.Set(row, d, fx*rec.At(0, d)+fy*rec.At(1, d)+fz*rec.At(2, d))
				}
				row++
			}
		}
	}
	return ret, nil
}

//MeshKvectors holds the reciprocal vectors of an FFT-compatible mesh in
//the layout of a real-input transform: full signed-frequency ranges along
//x and y and only the non-negative half spectrum (nz/2+1 entries) along z.
//K stores the vectors flat, z fastest, 3 components per point, so that
//K[0:3] is always the zero vector.
type MeshKvectors struct {
	NX, NY, NZH int
	K           []float64
}

//KvectorsForMesh computes the reciprocal vectors used by the mesh-based
//(FFT) calculators for an (nx,ny,nz) real-space mesh over the given cell.
func KvectorsForMesh(ns [3]int, cell *mat.Dense) (*MeshKvectors, error) {
	if err := checkNs(ns, "kspace.KvectorsForMesh"); err != nil {
		return nil, err
	}
	rec, err := ReciprocalCell(cell)
	if err != nil {
		return nil, errDecorate(err, "kspace.KvectorsForMesh")
	}
	nx, ny, nz := ns[0], ns[1], ns[2]
	nzh := nz/2 + 1
	ret := &MeshKvectors{NX: nx, NY: ny, NZH: nzh, K: make([]float64, nx*ny*nzh*3)}
	p := 0
	for i := 0; i < nx; i++ {
		fx := float64(FreqIndex(i, nx))
		for j := 0; j < ny; j++ {
			fy := float64(FreqIndex(j, ny))
			for k := 0; k < nzh; k++ {
				fz := float64(k) //rfftfreq: the z axis keeps only non-negative frequencies
				for d := 0; d < 3; d++ {
					ret.K[p] = fx*rec.At(0, d) + fy*rec.At(1, d) + fz*rec.At(2, d)
					p += 1
				}
			}
		}
	}
	return ret, nil
}

//At returns the components of the reciprocal vector at mesh frequency
//indices (i,j,k), with k in the half spectrum.
func (m *MeshKvectors) At(i, j, k int) (kx, ky, kz float64) {
	p := ((i*m.NY+j)*m.NZH + k) * 3
	return m.K[p], m.K[p+1], m.K[p+2]
}

//NormSq returns the squared norms of all mesh reciprocal vectors, flat,
//in the same order as K.
func (m *MeshKvectors) NormSq() []float64 {
	n := m.NX * m.NY * m.NZH
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		kx, ky, kz := m.K[3*i], m.K[3*i+1], m.K[3*i+2]
		ret[i] = kx*kx + ky*ky + kz*kz
	}
	return ret
}

//Errors

//Error is the concrete error type of the kspace package, the same shape
//as the one of the parent package, redefined to avoid a circular import.
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

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//errDecorate adds the caller's name to the decoration of err before
//passing it up. It panics if used on an error not implementing the
//package's Error interface.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
