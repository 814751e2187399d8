/*
 * errors.go, part of primbin.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package primbin

import (
	"fmt"
	"strings"
)

//Kind identifies each class of error in the library. Errors returned by primbin
//can be matched against a Kind with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	//The species counts of a relaxation record disagree with its positions.
	ErrShapeMismatch = Kind("shape mismatch")
	//A prototype site has no occupant to realize it, or no usable coordinate.
	ErrMissingPrototypeSite = Kind("missing prototype site")
	//A mapping oracle failed, or returned nothing usable, for a configuration.
	ErrOracleFailure = Kind("oracle failure")
	//The input could not be read or decoded.
	ErrRecord = Kind("bad record")
)

//Error is the error type returned by this package. It keeps the Kind of the error,
//the field and configuration it refers to, when known, and the chain of functions
//it went through (the "decoration").
type Error struct {
	kind     Kind
	message  string
	field    string //which record field has the problem, if any.
	config   string //which configuration, if known.
	cause    error
	deco     []string
	critical bool
}

func newError(kind Kind, field, message, caller string) *Error {
	return &Error{kind: kind, field: field, message: message, deco: []string{caller}, critical: true}
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString("primbin: ")
	b.WriteString(string(err.kind))
	if err.config != "" {
		fmt.Fprintf(&b, " in configuration %s", err.config)
	}
	if err.field != "" {
		fmt.Fprintf(&b, " (%s)", err.field)
	}
	b.WriteString(": ")
	b.WriteString(err.message)
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	return b.String()
}

//Unwrap allows errors.Is and errors.As to see both the Kind and the
//underlying cause, if any.
func (err *Error) Unwrap() []error {
	if err.cause != nil {
		return []error{err.kind, err.cause}
	}
	return []error{err.kind}
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

//Kind returns the class of the error.
func (err *Error) Kind() Kind { return err.kind }

//Field returns the name of the record field that caused the error, or an empty string.
func (err *Error) Field() string { return err.field }

//Config returns the configuration the error refers to, or an empty string.
func (err *Error) Config() string { return err.config }

//WithConfig returns err with the configuration name config attached, if err
//is an *Error without one. Other errors are returned unchanged.
func WithConfig(err error, config string) error {
	if e, ok := err.(*Error); ok && e.config == "" {
		e.config = config
	}
	return err
}

//errDecorate adds the caller's name to err, if err is an *Error, and returns it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
