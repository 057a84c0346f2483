/*
 * potential_test.go, part of gopme.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRadii = []float64{0.05, 0.2, 0.7, 1.0, 1.9, 3.5}
var testSmearings = []float64{0.3, 1.0, 2.1}

//the general inverse-power kernel at p=1 has to match the erf/erfc closed
//forms of the Coulomb one
func TestInversePowerMatchesCoulomb(t *testing.T) {
	ip, err := NewInversePower(1.0)
	require.NoError(t, err)
	c := Coulomb{}
	for _, s := range testSmearings {
		for _, r := range testRadii {
			assert.InEpsilon(t, c.FromR(r), ip.FromR(r), 1e-12)
			assert.InEpsilon(t, c.SRFromR(r, s), ip.SRFromR(r, s), 1e-10, "SR r=%g s=%g", r, s)
			assert.InEpsilon(t, c.LRFromR(r, s), ip.LRFromR(r, s), 1e-10, "LR r=%g s=%g", r, s)
			ksq := r * r //any positive value will do
			assert.InEpsilon(t, c.FourierFromKSq(ksq, s), ip.FourierFromKSq(ksq, s), 1e-10, "G k2=%g s=%g", ksq, s)
		}
		assert.InEpsilon(t, c.SelfContribution(s), ip.SelfContribution(s), 1e-12)
	}
}

//the split is exact for every exponent: SR + LR = 1/r^p
func TestSplitAdditivity(t *testing.T) {
	for _, p := range []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0} {
		pot, err := NewPotential(p)
		require.NoError(t, err)
		assert.Equal(t, p, pot.Exponent())
		for _, s := range testSmearings {
			for _, r := range testRadii {
				full := pot.FromR(r)
				assert.InEpsilon(t, full, pot.SRFromR(r, s)+pot.LRFromR(r, s), 1e-12, "p=%g r=%g s=%g", p, r, s)
			}
		}
	}
}

//the self contribution is the r->0 limit of the long-range part
func TestSelfContributionIsLimit(t *testing.T) {
	for _, p := range []float64{0.5, 1.0, 2.0, 3.0} {
		pot, err := NewPotential(p)
		require.NoError(t, err)
		for _, s := range testSmearings {
			assert.InEpsilon(t, pot.SelfContribution(s), pot.LRFromR(1e-5, s), 1e-6, "p=%g s=%g", p, s)
		}
	}
}

//the Fourier transform has to decay monotonically and stay positive, and
//the k=0 substitute is the neutralizing-background zero
func TestFourierShape(t *testing.T) {
	for _, p := range []float64{0.5, 1.0, 2.0, 3.0} {
		pot, err := NewPotential(p)
		require.NoError(t, err)
		for _, s := range testSmearings {
			assert.Equal(t, 0.0, pot.FourierAtZero(s))
			prev := math.Inf(1)
			for ksq := 0.25; ksq < 8; ksq *= 2 {
				g := pot.FourierFromKSq(ksq, s)
				assert.Greater(t, g, 0.0, "p=%g s=%g k2=%g", p, s, ksq)
				assert.Less(t, g, prev, "p=%g s=%g k2=%g", p, s, ksq)
				prev = g
			}
		}
	}
}

//the p=3 transform reduces to 2*pi*E1(s^2k^2/2)
func TestFourierAtPThree(t *testing.T) {
	pot, err := NewPotential(3.0)
	require.NoError(t, err)
	for _, s := range testSmearings {
		for _, ksq := range []float64{0.1, 1.0, 4.0, 25.0} {
			want := 2 * math.Pi * expIntE1(0.5*s*s*ksq)
			assert.InEpsilon(t, want, pot.FourierFromKSq(ksq, s), 1e-10, "s=%g k2=%g", s, ksq)
		}
	}
}

//reference values from Abramowitz & Stegun, table 5.1
func TestExpIntE1(t *testing.T) {
	for _, c := range []struct{ x, want float64 }{
		{0.5, 0.5597735947761608},
		{1.0, 0.21938393439552062},
		{2.0, 0.04890051070806112},
		{5.0, 0.001148295591275326},
		{10.0, 4.156968929685325e-06},
	} {
		assert.InEpsilon(t, c.want, expIntE1(c.x), 1e-9, "x=%g", c.x)
	}
	assert.True(t, math.IsInf(expIntE1(0), 1))
}

func TestPotentialValidation(t *testing.T) {
	for _, p := range []float64{0.0, -1.0, 3.0001, 4.0} {
		_, err := NewPotential(p)
		assert.Error(t, err, "p=%g", p)
	}
	pot, err := NewPotential(1.0)
	require.NoError(t, err)
	_, ok := pot.(Coulomb)
	assert.True(t, ok, "p=1 should use the specialized kernel")
	pot, err = NewPotential(2.5)
	require.NoError(t, err)
	_, ok = pot.(*InversePower)
	assert.True(t, ok)
}
