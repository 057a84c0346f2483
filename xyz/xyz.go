/*
 * xyz.go, part of gopme.
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

//Package xyz reads and writes snapshots of charged particle systems as
//extended XYZ files with a trailing charge column, optionally compressed.
//The compression codec is selected from the file name extension, as the
//stf trajectory format of goChem does: ".zst" and ".gz" are recognized,
//anything else is written plain.
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//Snapshot is one frame: element symbols, Cartesian positions (Nx3), one
//charge per atom and a free-form comment line, which conventionally holds
//the cell when there is one.
type Snapshot struct {
	Comment   string
	Symbols   []string
	Positions *mat.Dense
	Charges   []float64
}

//NAtoms returns the number of atoms of the snapshot.
func (s *Snapshot) NAtoms() int {
	n, _ := s.Positions.Dims()
	return n
}

func (s *Snapshot) check() error {
	if s.Positions == nil {
		return Error{"snapshot has no positions", []string{"xyz.check"}}
	}
	n, c := s.Positions.Dims()
	if c != 3 {
		return Error{fmt.Sprintf("positions of shape (%d,%d) should be of shape (N,3)", n, c), []string{"xyz.check"}}
	}
	if len(s.Symbols) != n || len(s.Charges) != n {
		return Error{fmt.Sprintf("got %d symbols and %d charges for %d atoms", len(s.Symbols), len(s.Charges), n), []string{"xyz.check"}}
	}
	return nil
}

//Write stores the snapshot under the given file name, compressing
//according to the extension.
func Write(name string, s *Snapshot) error {
	if err := s.check(); err != nil {
		return errDecorate(err, "xyz.Write")
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), []string{"os.Create", "xyz.Write"}}
	}
	defer f.Close()
	if err := encode(f, name, s); err != nil {
		return errDecorate(err, "xyz.Write")
	}
	return nil
}

//encode writes the snapshot to w, wrapping it in the compressor the name
//asks for. The compressor is closed on every exit, a flush failure
//included, so no partly written stream is ever left without its trailer.
func encode(w io.Writer, name string, s *Snapshot) error {
	var closer io.Closer
	switch {
	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return Error{err.Error(), []string{"zstd.NewWriter", "xyz.encode"}}
		}
		w, closer = zw, zw
	case strings.HasSuffix(name, ".gz"):
		gw := gzip.NewWriter(w)
		w, closer = gw, gw
	}
	bw := bufio.NewWriter(w)
	n := s.NAtoms()
	fmt.Fprintf(bw, "%d\n%s\n", n, s.Comment)
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "%s %.10f %.10f %.10f %.10f\n", s.Symbols[i],
			s.Positions.At(i, 0), s.Positions.At(i, 1), s.Positions.At(i, 2), s.Charges[i])
	}
	flushErr := bw.Flush()
	var closeErr error
	if closer != nil {
		closeErr = closer.Close()
	}
	if flushErr != nil {
		return Error{flushErr.Error(), []string{"xyz.encode"}}
	}
	if closeErr != nil {
		return Error{closeErr.Error(), []string{"xyz.encode"}}
	}
	return nil
}

//Read loads a snapshot written by Write, detecting the codec from the
//file name extension.
func Read(name string) (*Snapshot, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"os.Open", "xyz.Read"}}
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, Error{err.Error(), []string{"zstd.NewReader", "xyz.Read"}}
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(name, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, Error{err.Error(), []string{"gzip.NewReader", "xyz.Read"}}
		}
		defer gr.Close()
		r = gr
	}
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, Error{"missing atom-count line", []string{"xyz.Read"}}
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n < 1 {
		return nil, Error{fmt.Sprintf("bad atom count %q", sc.Text()), []string{"xyz.Read"}}
	}
	if !sc.Scan() {
		return nil, Error{"missing comment line", []string{"xyz.Read"}}
	}
	ret := &Snapshot{
		Comment:   sc.Text(),
		Symbols:   make([]string, n),
		Positions: mat.NewDense(n, 3, nil),
		Charges:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, Error{fmt.Sprintf("file ends after %d of %d atoms", i, n), []string{"xyz.Read"}}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 5 {
			return nil, Error{fmt.Sprintf("atom line %d has %d fields, want 5 (symbol x y z q)", i, len(fields)), []string{"xyz.Read"}}
		}
		ret.Symbols[i] = fields[0]
		for d := 0; d < 3; d++ {
			v, err := strconv.ParseFloat(fields[d+1], 64)
			if err != nil {
				return nil, Error{fmt.Sprintf("atom line %d: %v", i, err), []string{"xyz.Read"}}
			}
			ret.Positions.Set(i, d, v)
		}
		q, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("atom line %d: %v", i, err), []string{"xyz.Read"}}
		}
		ret.Charges[i] = q
	}
	if err := sc.Err(); err != nil {
		return nil, Error{err.Error(), []string{"xyz.Read"}}
	}
	return ret, nil
}

//Errors

//Error is the concrete error type of the xyz package, with the Decorate
//breadcrumbs of the parent package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

type errorInt interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
