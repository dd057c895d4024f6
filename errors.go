/*
 * errors.go, part of gostruc.
 *
 * Copyright 2024 The goStruc developers
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

package struc

import "fmt"

// Messages for the errors that can come out of a parse. Only a few things
// can actually fail hard; everything else degrades to a zero value.
const (
	NoElement      = "Atom record has no element symbol and no atom name to guess one from"
	UnknownEntity  = "Atom references an entity with no struct_asym/entity row"
	UnknownOper    = "Assembly operator expression references an undefined operator id"
	NotEnoughAtoms = "Structure contains no atoms"
)

// Error is the error type for the struc package. The decoration slice
// records the call chain, outermost caller last.
type Error struct {
	message  string
	location string // file name, PDB code or record text, if available
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.location == "" {
		return fmt.Sprintf("gostruc error: %s", err.message)
	}
	return fmt.Sprintf("gostruc error: %s in %s", err.message, err.location)
}

// Decorate adds one element to the error's decoration list
// and returns the resulting list.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error can be ignored by the caller.
func (err Error) Critical() bool { return err.critical }

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

// errDecorate asserts that the error implements errorInt and decorates it
// with the caller's name before returning it. Errors of any other type are
// returned unchanged.
func errDecorate(err error, caller string) error {
	err2, ok := err.(errorInt)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
