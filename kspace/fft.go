/*
 * fft.go, part of gopme.
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

import "gonum.org/v1/gonum/dsp/fourier"

//fft3 performs a 3D real-to-complex transform and its inverse by composing
//gonum's 1D transforms axis by axis: a real transform along z (keeping the
//nz/2+1 non-negative frequencies) followed by complex transforms along y
//and x. Both directions are unnormalized, so a round trip scales the input
//by nx*ny*nz.
type fft3 struct {
	nx, ny, nz, nzh int
	rz              *fourier.FFT
	cy, cx          *fourier.CmplxFFT
	lineY, lineX    []complex128
	coefY, coefX    []complex128
}

func newFFT3(nx, ny, nz int) *fft3 {
	return &fft3{
		nx: nx, ny: ny, nz: nz, nzh: nz/2 + 1,
		rz:    fourier.NewFFT(nz),
		cy:    fourier.NewCmplxFFT(ny),
		cx:    fourier.NewCmplxFFT(nx),
		lineY: make([]complex128, ny),
		coefY: make([]complex128, ny),
		lineX: make([]complex128, nx),
		coefX: make([]complex128, nx),
	}
}

//forward transforms a real mesh (flat, z fastest, len nx*ny*nz) into its
//half-spectrum Fourier coefficients (flat, z fastest, len nx*ny*nzh).
func (f *fft3) forward(src []float64, dst []complex128) {
	//z axis: real-to-complex on each contiguous z line
	for i := 0; i < f.nx; i++ {
		for j := 0; j < f.ny; j++ {
			line := src[(i*f.ny+j)*f.nz : (i*f.ny+j+1)*f.nz]
			f.rz.Coefficients(dst[(i*f.ny+j)*f.nzh:(i*f.ny+j+1)*f.nzh], line)
		}
	}
	//y axis
	for i := 0; i < f.nx; i++ {
		for k := 0; k < f.nzh; k++ {
			for j := 0; j < f.ny; j++ {
				f.lineY[j] = dst[(i*f.ny+j)*f.nzh+k]
			}
			f.cy.Coefficients(f.coefY, f.lineY)
			for j := 0; j < f.ny; j++ {
				dst[(i*f.ny+j)*f.nzh+k] = f.coefY[j]
			}
		}
	}
	//x axis
	for j := 0; j < f.ny; j++ {
		for k := 0; k < f.nzh; k++ {
			for i := 0; i < f.nx; i++ {
				f.lineX[i] = dst[(i*f.ny+j)*f.nzh+k]
			}
			f.cx.Coefficients(f.coefX, f.lineX)
			for i := 0; i < f.nx; i++ {
				dst[(i*f.ny+j)*f.nzh+k] = f.coefX[i]
			}
		}
	}
}

//inverse transforms half-spectrum coefficients back to a real mesh,
//undoing the axis order of forward. The coefficient slice is overwritten.
func (f *fft3) inverse(src []complex128, dst []float64) {
	//x axis
	for j := 0; j < f.ny; j++ {
		for k := 0; k < f.nzh; k++ {
			for i := 0; i < f.nx; i++ {
				f.coefX[i] = src[(i*f.ny+j)*f.nzh+k]
			}
			f.cx.Sequence(f.lineX, f.coefX)
			for i := 0; i < f.nx; i++ {
				src[(i*f.ny+j)*f.nzh+k] = f.lineX[i]
			}
		}
	}
	//y axis
	for i := 0; i < f.nx; i++ {
		for k := 0; k < f.nzh; k++ {
			for j := 0; j < f.ny; j++ {
				f.coefY[j] = src[(i*f.ny+j)*f.nzh+k]
			}
			f.cy.Sequence(f.lineY, f.coefY)
			for j := 0; j < f.ny; j++ {
				src[(i*f.ny+j)*f.nzh+k] = f.lineY[j]
			}
		}
	}
	//z axis: complex-to-real on each line
	for i := 0; i < f.nx; i++ {
		for j := 0; j < f.ny; j++ {
			f.rz.Sequence(dst[(i*f.ny+j)*f.nz:(i*f.ny+j+1)*f.nz], src[(i*f.ny+j)*f.nzh:(i*f.ny+j+1)*f.nzh])
		}
	}
}
