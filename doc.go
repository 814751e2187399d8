/*
 * doc.go, part of primbin.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package primbin classifies relaxed crystal structures by the prototype they resemble the most.

Given the relaxed structures produced by DFT calculations in a CASM project, and a set of
candidate prototypes (the prim.json files of one or more projects), primbin maps each relaxed
structure onto each prototype with a structure mapping engine, and ranks the prototypes by the
cost of the best mapping found.

	**primbin Capabilities**

    Reconstructs relaxed structures from properties.calc.json files, keeping the
	alignment between species and positions.

    Builds prototype structures from prim.json files, together with the species
	allowed in each site.

    Binds a mapping engine to each prototype (the mapping itself is done by an external
	program, see the mapexec package).

    Ranks prototypes for each configuration. Configurations without a finished
	calculation get a row of -1.

    Reads plain, gzip or zstd compressed records.

The typical use is:

	mappers := make([]primbin.Oracle, 0, len(projects))
	for _, p := range projects {
		m, err := primbin.LoadMapper(p, engine)
		...
		mappers = append(mappers, m)
	}
	cands, err := primbin.LoadCandidates(reference, nil)
	ranks, err := primbin.Rank(mappers, cands)

Errors produced by the package itself are *Error, and can be classified with errors.Is against
ErrShapeMismatch, ErrMissingPrototypeSite, ErrOracleFailure and ErrRecord.
*/
package primbin
