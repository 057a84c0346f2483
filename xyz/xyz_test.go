/*
 * xyz_test.go, part of gopme.
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

package xyz

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sample() *Snapshot {
	return &Snapshot{
		Comment: "CsCl cell 2.0 2.0 2.0",
		Symbols: []string{"Cs", "Cl", "Cs", "Cl"},
		Positions: mat.NewDense(4, 3, []float64{
			0, 0, 0,
			0.5, 0.5, 0.5,
			1, 0, 0,
			1.5, 0.5, 0.5,
		}),
		Charges: []float64{1, -1, 1, -1},
	}
}

func TestRoundTrip(t *testing.T) {
	s := sample()
	for _, name := range []string{"frame.xyz", "frame.xyz.gz", "frame.xyz.zst"} {
		path := filepath.Join(t.TempDir(), name)
		err := Write(path, s)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		r, err := Read(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if r.Comment != s.Comment {
			t.Errorf("%s: comment %q, want %q", name, r.Comment, s.Comment)
		}
		if r.NAtoms() != s.NAtoms() {
			t.Fatalf("%s: %d atoms, want %d", name, r.NAtoms(), s.NAtoms())
		}
		for i := 0; i < s.NAtoms(); i++ {
			if r.Symbols[i] != s.Symbols[i] {
				t.Errorf("%s: atom %d symbol %q, want %q", name, i, r.Symbols[i], s.Symbols[i])
			}
			if math.Abs(r.Charges[i]-s.Charges[i]) > 1e-9 {
				t.Errorf("%s: atom %d charge %v, want %v", name, i, r.Charges[i], s.Charges[i])
			}
			for d := 0; d < 3; d++ {
				if math.Abs(r.Positions.At(i, d)-s.Positions.At(i, d)) > 1e-9 {
					t.Errorf("%s: atom %d coordinate %d: %v, want %v", name, i, d,
						r.Positions.At(i, d), s.Positions.At(i, d))
				}
			}
		}
	}
}

//the compressed files have to actually be compressed, not plain text with
//a fancy extension
func TestCompressionApplied(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.xyz.gz")
	if err := Write(path, sample()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Error("no gzip magic number in the compressed file")
	}
}

func TestWriteRejectsInconsistent(t *testing.T) {
	s := sample()
	s.Charges = s.Charges[:3]
	if err := Write(filepath.Join(t.TempDir(), "bad.xyz"), s); err == nil {
		t.Error("mismatched charge count accepted")
	}
	s = sample()
	s.Positions = mat.NewDense(4, 2, nil)
	if err := Write(filepath.Join(t.TempDir(), "bad.xyz"), s); err == nil {
		t.Error("non-Nx3 positions accepted")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("device full") }

//a failing destination has to surface as an error on every codec path:
//plain output fails at the flush, compressed output at the compressor
//close, which encode must reach even after a failed flush
func TestEncodeReportsWriterFailure(t *testing.T) {
	for _, name := range []string{"f.xyz", "f.xyz.gz", "f.xyz.zst"} {
		if err := encode(failingWriter{}, name, sample()); err == nil {
			t.Errorf("%s: write failure not reported", name)
		}
	}
}

func TestReadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"empty.xyz":     "",
		"badcount.xyz":  "two\ncomment\n",
		"zerocount.xyz": "0\ncomment\n",
		"truncated.xyz": "3\ncomment\nCs 0 0 0 1\n",
		"badfield.xyz":  "1\ncomment\nCs 0 zero 0 1\n",
		"short.xyz":     "1\ncomment\nCs 0 0 0\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Read(path); err == nil {
			t.Errorf("%s accepted", name)
		}
	}
	if _, err := Read(filepath.Join(dir, "missing.xyz")); err == nil {
		t.Error("missing file accepted")
	}
}
