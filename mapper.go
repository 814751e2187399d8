/*
 * mapper.go, part of primbin.
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

	"github.com/rmera/primbin/xtal"
)

//Report is one candidate mapping of a structure onto a prototype, as
//returned by a mapping engine.
type Report struct {
	Cost        float64 //0 means a perfect match.
	LatticeCost float64 //optional, 0 if the engine doesn't give it.
	BasisCost   float64 //optional, 0 if the engine doesn't give it.
}

//Oracle scores a candidate structure against one prototype. Map returns the mappings
//found, sorted by increasing cost, so the first one is the best. Implementations must be
//safe to call from several goroutines at once.
type Oracle interface {
	Map(candidate *xtal.Structure) ([]Report, error)
}

//OracleFunc allows a plain function to be used as an Oracle.
type OracleFunc func(candidate *xtal.Structure) ([]Report, error)

func (f OracleFunc) Map(candidate *xtal.Structure) ([]Report, error) { return f(candidate) }

//Engine is a structure mapping engine. It maps candidate onto the reference structure ref,
//considering only the occupations allowed by allowed, and using the symmetry of ref
//to remove equivalent mappings if useSymmetry is true.
type Engine interface {
	Map(ref *xtal.Structure, allowed AllowedSpecies, useSymmetry bool, candidate *xtal.Structure) ([]Report, error)
}

//Mapper is an Oracle bound to one prototype structure and its allowed species.
//Mappers keep no state between calls.
type Mapper struct {
	engine   Engine
	ref      *xtal.Structure
	allowed  AllowedSpecies
	symmetry bool
}

//NewMapper returns a Mapper that maps structures onto ref with engine, allowing only the
//species in allowed in each site. Crystal symmetry is used unless useSymmetry is given and false.
//allowed is copied, so later changes to it don't affect the Mapper.
func NewMapper(engine Engine, ref *xtal.Structure, allowed AllowedSpecies, useSymmetry ...bool) (*Mapper, error) {
	if engine == nil || ref == nil {
		return nil, newError(ErrOracleFailure, "", "nil engine or reference structure", "NewMapper")
	}
	if len(allowed) != ref.Len() {
		return nil, newError(ErrMissingPrototypeSite, "allowed_species", fmt.Sprintf("%d occupant lists for %d sites", len(allowed), ref.Len()), "NewMapper")
	}
	sym := true
	if len(useSymmetry) > 0 {
		sym = useSymmetry[0]
	}
	return &Mapper{engine: engine, ref: ref, allowed: allowed.Copy(), symmetry: sym}, nil
}

//Mapper returns an Oracle that maps structures onto P with engine.
//See NewMapper.
func (P *Prototype) Mapper(engine Engine, useSymmetry ...bool) (*Mapper, error) {
	M, err := NewMapper(engine, P.Structure, P.Allowed, useSymmetry...)
	if err != nil {
		return nil, errDecorate(err, "Prototype.Mapper")
	}
	return M, nil
}

//Map maps candidate onto the reference structure of M.
func (M *Mapper) Map(candidate *xtal.Structure) ([]Report, error) {
	return M.engine.Map(M.ref, M.allowed, M.symmetry, candidate)
}

//Reference returns the structure the Mapper maps onto.
func (M *Mapper) Reference() *xtal.Structure { return M.ref }

//UseSymmetry returns whether the Mapper uses crystal symmetry.
func (M *Mapper) UseSymmetry() bool { return M.symmetry }
