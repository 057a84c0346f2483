/*
 * plot.go, part of gopme.
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

//Package pmeplot draws diagnostic figures for the calculators of the
//parent package: the radial decomposition of a split potential and
//accuracy-versus-parameter convergence curves.
package pmeplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	pme "github.com/tulga-rdn/torch-pme"
)

//RadialDecomposition plots the bare 1/r^p potential together with its
//short- and long-range parts for the given smearing, on n points between
//rmin and rmax, and saves the figure under filename (the extension picks
//the format, e.g. ".png").
func RadialDecomposition(pot pme.Potential, smearing, rmin, rmax float64, n int, filename string) error {
	if n < 2 || rmin <= 0 || rmax <= rmin {
		return fmt.Errorf("pmeplot: bad radial range [%g,%g] with %d points", rmin, rmax, n)
	}
	if smearing <= 0 {
		return fmt.Errorf("pmeplot: smearing %g has to be positive", smearing)
	}
	full := make(plotter.XYs, n)
	sr := make(plotter.XYs, n)
	lr := make(plotter.XYs, n)
	step := (rmax - rmin) / float64(n-1)
	for i := 0; i < n; i++ {
		r := rmin + float64(i)*step
		full[i].X, full[i].Y = r, pot.FromR(r)
		sr[i].X, sr[i].Y = r, pot.SRFromR(r, smearing)
		lr[i].X, lr[i].Y = r, pot.LRFromR(r, smearing)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("1/r^%g split, smearing %g", pot.Exponent(), smearing)
	p.X.Label.Text = "r"
	p.Y.Label.Text = "v(r)"
	for _, curve := range []struct {
		name string
		pts  plotter.XYs
		col  color.RGBA
	}{
		{"full", full, color.RGBA{R: 30, G: 30, B: 30, A: 255}},
		{"short range", sr, color.RGBA{R: 200, B: 30, A: 255}},
		{"long range", lr, color.RGBA{B: 200, G: 60, A: 255}},
	} {
		l, err := plotter.NewLine(curve.pts)
		if err != nil {
			return err
		}
		l.Color = curve.col
		p.Add(l)
		p.Legend.Add(curve.name, l)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

//ConvergenceCurve plots an error measure against the convergence
//parameter it depends on (smearing, wavelength, mesh spacing...) on a
//logarithmic error axis and saves the figure under filename.
func ConvergenceCurve(params, errs []float64, xLabel, filename string) error {
	if len(params) != len(errs) || len(params) == 0 {
		return fmt.Errorf("pmeplot: got %d parameters and %d errors", len(params), len(errs))
	}
	pts := make(plotter.XYs, len(params))
	for i := range params {
		pts[i].X = params[i]
		pts[i].Y = errs[i]
	}
	p := plot.New()
	p.Title.Text = "convergence"
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "relative error"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	l, sc, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(l, sc)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}
