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

package xtal

import "strings"

//Error is the error type for the xtal package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return "xtal: " + err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Trace returns the functions the error went through, innermost first.
func (err Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//FileError is returned when reading or writing a file fails.
type FileError struct {
	message  string
	filename string
	deco     []string
}

func (err FileError) Error() string {
	return "xtal: file " + err.filename + ": " + err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err FileError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is always true for file errors.
func (err FileError) Critical() bool { return true }

//FileName returns the name of the file that caused the error.
func (err FileError) FileName() string { return err.filename }
