/*
 * errors.go, part of gopme.
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

//Error is the interface implemented by all errors of this library. The
//Decorate method allows adding information to an error as it is passed up
//the call stack, without changing its type or wrapping it.
type Error interface {
	Error() string
	//Decorate adds dec to the decoration slice of the error and returns
	//the resulting slice. When passed an empty string it only returns the
	//current decoration. The slice should list the functions in the
	//calling stack, each optionally followed by extra information in the
	//format "FunctionName: Extra info".
	Decorate(string) []string
}

//CError is the concrete error type of the package. "C" is for "concrete".
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

type errorInt interface {
	Error() string
	Decorate(string) []string
}

//errDecorate asserts that err implements the package Error interface and
//decorates it with the caller's name before returning it. Using it on any
//other error type is a programmer error and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics on programmer errors. It satisfies
//the error interface, but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilSystem = PanicMsg("gopme: nil system given to a calculator")
)
