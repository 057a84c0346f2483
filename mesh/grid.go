/*
 * grid.go, part of gopme.
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

package mesh

import "fmt"

//Grid is a periodic 3D mesh holding one scalar field per channel.
//Data is stored flat, channel-major, with the z index running fastest,
//so that each z-line is contiguous (which is what the FFT code wants).
type Grid struct {
	Channels   int
	NX, NY, NZ int
	Data       []float64
}

//NewGrid returns a zero-filled grid with the given number of channels
//and mesh points along each axis.
func NewGrid(channels, nx, ny, nz int) *Grid {
	if channels < 1 || nx < 1 || ny < 1 || nz < 1 {
		panic(ErrBadGridSize)
	}
	return &Grid{
		Channels: channels,
		NX:       nx,
		NY:       ny,
		NZ:       nz,
		Data:     make([]float64, channels*nx*ny*nz),
	}
}

//NPoints returns the number of mesh points of one channel.
func (g *Grid) NPoints() int {
	return g.NX * g.NY * g.NZ
}

func (g *Grid) index(c, i, j, k int) int {
	return ((c*g.NX+i)*g.NY+j)*g.NZ + k
}

//At returns the value of channel c at the mesh point (i,j,k).
func (g *Grid) At(c, i, j, k int) float64 {
	return g.Data[g.index(c, i, j, k)]
}

//Set sets the value of channel c at the mesh point (i,j,k).
func (g *Grid) Set(c, i, j, k int, v float64) {
	g.Data[g.index(c, i, j, k)] = v
}

//Add accumulates v onto channel c at the mesh point (i,j,k).
func (g *Grid) Add(c, i, j, k int, v float64) {
	g.Data[g.index(c, i, j, k)] += v
}

//Channel returns the flat slice backing channel c. The slice aliases
//the grid storage, so writes to it are seen by the grid.
func (g *Grid) Channel(c int) []float64 {
	n := g.NPoints()
	return g.Data[c*n : (c+1)*n]
}

//ChannelSum returns the sum of all mesh values of channel c.
func (g *Grid) ChannelSum(c int) float64 {
	var sum float64
	for _, v := range g.Channel(c) {
		sum += v
	}
	return sum
}

//SameShape reports whether both grids have identical channel and mesh counts.
func (g *Grid) SameShape(h *Grid) bool {
	return g.Channels == h.Channels && g.NX == h.NX && g.NY == h.NY && g.NZ == h.NZ
}

func (g *Grid) String() string {
	return fmt.Sprintf("mesh.Grid{channels: %d, ns: %d %d %d}", g.Channels, g.NX, g.NY, g.NZ)
}
