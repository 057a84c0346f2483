/*
 * plot_test.go, part of gopme.
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

package pmeplot

import (
	"os"
	"path/filepath"
	"testing"

	pme "github.com/tulga-rdn/torch-pme"
)

func TestRadialDecomposition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radial.png")
	if err := RadialDecomposition(pme.Coulomb{}, 0.5, 0.05, 3.0, 100, path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("empty figure written")
	}
	//bad inputs
	if err := RadialDecomposition(pme.Coulomb{}, 0.5, 1.0, 0.5, 100, path); err == nil {
		t.Error("inverted radial range accepted")
	}
	if err := RadialDecomposition(pme.Coulomb{}, -0.5, 0.05, 3.0, 100, path); err == nil {
		t.Error("negative smearing accepted")
	}
}

func TestConvergenceCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.png")
	params := []float64{0.1, 0.2, 0.4, 0.8}
	errs := []float64{1e-6, 1e-4, 1e-2, 1e-1}
	if err := ConvergenceCurve(params, errs, "mesh spacing", path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("empty figure written")
	}
	if err := ConvergenceCurve(params, errs[:2], "x", path); err == nil {
		t.Error("mismatched lengths accepted")
	}
}
