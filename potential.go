/*
 * potential.go, part of gopme.
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

	"gonum.org/v1/gonum/mathext"
)

//Potential is the closed set of 1/r^p pair-potential kernels used by the
//calculators. A Gaussian of width smearing splits the bare potential into
//a short-range part, summed in real space, and a smooth long-range part,
//summed in reciprocal space. Every method is a pure function of its
//arguments.
type Potential interface {
	//Exponent returns p.
	Exponent() float64
	//FromR is the bare potential 1/r^p.
	FromR(r float64) float64
	//SRFromR is the short-range part of the split potential.
	SRFromR(r, smearing float64) float64
	//LRFromR is the long-range part, so that SRFromR+LRFromR=FromR.
	LRFromR(r, smearing float64) float64
	//FourierFromKSq is the Fourier transform of the long-range part,
	//evaluated at the squared norm of a reciprocal vector.
	FourierFromKSq(ksq, smearing float64) float64
	//FourierAtZero is the finite value substituted at k=0, where the
	//transform diverges for p<=3. It corresponds to neutralizing the
	//cell with a uniform background charge.
	FourierAtZero(smearing float64) float64
	//SelfContribution is the value of the long-range part at r=0, i.e.
	//the interaction of a charge with its own smeared density.
	SelfContribution(smearing float64) float64
}

//NewPotential returns the kernel for the given exponent: the specialized
//Coulomb one for p=1, the general inverse-power one otherwise. Exponents
//outside (0,3] are rejected.
func NewPotential(exponent float64) (Potential, error) {
	if exponent == 1.0 {
		return Coulomb{}, nil
	}
	return NewInversePower(exponent)
}

//Coulomb is the p=1 kernel, with the usual erf/erfc closed forms.
type Coulomb struct{}

func (Coulomb) Exponent() float64 { return 1.0 }

func (Coulomb) FromR(r float64) float64 { return 1.0 / r }

func (Coulomb) SRFromR(r, smearing float64) float64 {
	return math.Erfc(r/(smearing*math.Sqrt2)) / r
}

func (Coulomb) LRFromR(r, smearing float64) float64 {
	return math.Erf(r/(smearing*math.Sqrt2)) / r
}

func (Coulomb) FourierFromKSq(ksq, smearing float64) float64 {
	return 4.0 * math.Pi * math.Exp(-0.5*smearing*smearing*ksq) / ksq
}

func (Coulomb) FourierAtZero(smearing float64) float64 { return 0.0 }

func (Coulomb) SelfContribution(smearing float64) float64 {
	return math.Sqrt(2.0/math.Pi) / smearing
}

//InversePower is the general 1/r^p kernel for 0 < p <= 3, built from
//regularized incomplete gamma functions. With x = r^2/(2*smearing^2) and
//peff = (3-p)/2:
//
//	SR(r) = Q(p/2, x)/r^p
//	LR(r) = P(p/2, x)/r^p
//	G(k)  = pi^(3/2)/Gamma(p/2) * (2s^2)^peff * IGamma(peff, s^2k^2/2) / (s^2k^2/2)^peff
//
//where P and Q are the regularized lower and upper incomplete gamma
//functions and IGamma the unregularized upper one.
type InversePower struct {
	p float64
}

//NewInversePower returns the 1/r^p kernel, rejecting exponents outside (0,3].
func NewInversePower(exponent float64) (*InversePower, error) {
	if exponent <= 0.0 || exponent > 3.0 {
		return nil, CError{fmt.Sprintf("exponent p=%v has to satisfy 0 < p <= 3", exponent), []string{"NewInversePower"}}
	}
	return &InversePower{p: exponent}, nil
}

func (ip *InversePower) Exponent() float64 { return ip.p }

func (ip *InversePower) FromR(r float64) float64 { return math.Pow(r, -ip.p) }

func (ip *InversePower) SRFromR(r, smearing float64) float64 {
	x := 0.5 * r * r / (smearing * smearing)
	return mathext.GammaIncRegComp(ip.p/2, x) * math.Pow(r, -ip.p)
}

func (ip *InversePower) LRFromR(r, smearing float64) float64 {
	x := 0.5 * r * r / (smearing * smearing)
	return mathext.GammaIncReg(ip.p/2, x) * math.Pow(r, -ip.p)
}

func (ip *InversePower) FourierFromKSq(ksq, smearing float64) float64 {
	peff := (3.0 - ip.p) / 2.0
	x := 0.5 * smearing * smearing * ksq
	prefac := math.Pow(math.Pi, 1.5) / math.Gamma(ip.p/2) * math.Pow(2*smearing*smearing, peff)
	return prefac * upperIncGamma(peff, x) / math.Pow(x, peff)
}

func (ip *InversePower) FourierAtZero(smearing float64) float64 { return 0.0 }

func (ip *InversePower) SelfContribution(smearing float64) float64 {
	//limit of LRFromR as r->0
	return 1.0 / (math.Gamma(ip.p/2+1) * math.Pow(2*smearing*smearing, ip.p/2))
}

//upperIncGamma is the unregularized upper incomplete gamma function
//Gamma(a,x). The a=0 case, reached for p=3, is the exponential integral
//E1(x), which the regularized form cannot express.
func upperIncGamma(a, x float64) float64 {
	if a == 0 {
		return expIntE1(x)
	}
	return mathext.GammaIncRegComp(a, x) * math.Gamma(a)
}

//expIntE1 evaluates the exponential integral E1(x) for x>0, with the
//series of Abramowitz & Stegun 5.1.11 for small arguments and the
//continued fraction 5.1.22 otherwise.
func expIntE1(x float64) float64 {
	if x <= 0 {
		return math.Inf(1)
	}
	const eulerGamma = 0.57721566490153286
	if x <= 1.0 {
		sum := -eulerGamma - math.Log(x)
		term := 1.0
		for n := 1; n <= 40; n++ {
			term *= -x / float64(n)
			sum -= term / float64(n)
		}
		return sum
	}
	//Lentz's method for the continued fraction
	//E1(x) = exp(-x) * 1/(x+1-1/(x+3-4/(x+5-...)))
	const fpMin = 1e-300
	b := x + 1.0
	c := 1.0 / fpMin
	d := 1.0 / b
	h := d
	for n := 1; n <= 100; n++ {
		an := -float64(n) * float64(n)
		b += 2.0
		d = 1.0 / (an*d + b)
		c = b + an/c
		del := c * d
		h *= del
		if math.Abs(del-1.0) < 1e-15 {
			break
		}
	}
	return h * math.Exp(-x)
}
