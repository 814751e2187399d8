/*
 * mapexec.go, part of primbin.
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

/*Package mapexec drives an external structure mapping program, so it can be used as a
primbin.Engine.

For each mapping, the program is started, a JSON request is written to its standard input,
and a JSON list of mappings is read from its standard output:

	request:  {"reference": S, "allowed_species": [["Ni","Va"],...],
	           "use_crystal_symmetry": true, "structure": S}
	response: [{"cost": 0.01, "lattice_cost": 0.005, "basis_cost": 0.005}, ...]

where each S is {"lattice_vectors": [[...],[...],[...]], "coordinate_mode": "Cartesian",
"basis": [{"coordinate": [x,y,z], "species": "Ni"}, ...]}.

A small wrapper around a mapping library (for instance, casm-utilities' StructureMapper)
is enough to provide such a program.
*/
package mapexec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/rmera/primbin"
	"github.com/rmera/primbin/xtal"
)

//DefaultCommand is the program used when neither a command is given nor
//the PRIMBIN_MAPPER environment variable is set.
const DefaultCommand = "casm-map-json"

//Engine runs an external mapping program. Each call to Map starts a new process, so an
//Engine can be used from several goroutines at once.
type Engine struct {
	command string
	args    []string
	env     []string
	timeout time.Duration
}

//New returns an Engine that runs command, or the value of $PRIMBIN_MAPPER if
//no command is given, or DefaultCommand if that is not set either.
func New(command ...string) *Engine {
	E := new(Engine)
	E.SetDefaults()
	if len(command) > 0 && command[0] != "" {
		E.command = command[0]
	}
	return E
}

func (E *Engine) SetDefaults() {
	E.command = os.Getenv("PRIMBIN_MAPPER")
	if E.command == "" {
		E.command = DefaultCommand
	}
	E.args = nil
	E.env = nil
	E.timeout = 0
}

//Command returns the program to be run, and sets it to a new value, if given.
func (E *Engine) Command(command ...string) string {
	if len(command) > 0 && command[0] != "" {
		E.command = command[0]
	}
	return E.command
}

//Args returns the arguments passed to the program, and sets them to new values, if given.
func (E *Engine) Args(args ...[]string) []string {
	if len(args) > 0 {
		E.args = args[0]
	}
	return E.args
}

//Env returns the additional environment variables ("KEY=value") for the program, and sets
//them to new values, if given. The program always inherits the environment of this process.
func (E *Engine) Env(env ...[]string) []string {
	if len(env) > 0 {
		E.env = env[0]
	}
	return E.env
}

//Timeout returns the maximum time allowed for each mapping, and sets it to a new value,
//if given. 0 means no limit.
func (E *Engine) Timeout(t ...time.Duration) time.Duration {
	if len(t) > 0 && t[0] >= 0 {
		E.timeout = t[0]
	}
	return E.timeout
}

type wireSite struct {
	Coordinate []float64 `json:"coordinate"`
	Species    string    `json:"species"`
}

type wireStructure struct {
	LatticeVectors [][]float64 `json:"lattice_vectors"`
	CoordinateMode string      `json:"coordinate_mode"`
	Basis          []wireSite  `json:"basis"`
}

type request struct {
	Reference          wireStructure `json:"reference"`
	AllowedSpecies     [][]string    `json:"allowed_species"`
	UseCrystalSymmetry bool          `json:"use_crystal_symmetry"`
	Structure          wireStructure `json:"structure"`
}

type report struct {
	Cost        *float64 `json:"cost"`
	LatticeCost float64  `json:"lattice_cost"`
	BasisCost   float64  `json:"basis_cost"`
}

func toWire(S *xtal.Structure) wireStructure {
	ret := wireStructure{LatticeVectors: S.Lattice().Vecs(), CoordinateMode: "Cartesian", Basis: make([]wireSite, S.Len())}
	for i := range ret.Basis {
		s := S.Site(i)
		ret.Basis[i] = wireSite{Coordinate: s.Cart(), Species: s.Species}
	}
	return ret
}

//Map runs the mapping program to map candidate onto ref. The reports are returned sorted
//by increasing cost.
func (E *Engine) Map(ref *xtal.Structure, allowed primbin.AllowedSpecies, useSymmetry bool, candidate *xtal.Structure) ([]primbin.Report, error) {
	in, err := json.Marshal(request{Reference: toWire(ref), AllowedSpecies: allowed, UseCrystalSymmetry: useSymmetry, Structure: toWire(candidate)})
	if err != nil {
		return nil, Error{"can't encode request", E.command, err.Error(), []string{"json.Marshal", "Map"}}
	}
	ctx := context.Background()
	if E.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, E.timeout)
		defer cancel()
	}
	command := exec.CommandContext(ctx, E.command, E.args...)
	if len(E.env) > 0 {
		command.Env = append(os.Environ(), E.env...)
	}
	var stdout, stderr bytes.Buffer
	command.Stdin = bytes.NewReader(in)
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, Error{"mapping program failed: " + err.Error(), E.command, strings.TrimSpace(stderr.String()), []string{"exec.Run", "Map"}}
	}
	var reps []report
	if err := json.Unmarshal(stdout.Bytes(), &reps); err != nil {
		return nil, Error{"can't decode mapping program output: " + err.Error(), E.command, strings.TrimSpace(stderr.String()), []string{"json.Unmarshal", "Map"}}
	}
	ret := make([]primbin.Report, len(reps))
	for i, v := range reps {
		if v.Cost == nil {
			return nil, Error{fmt.Sprintf("mapping %d has no cost", i), E.command, "", []string{"Map"}}
		}
		ret[i] = primbin.Report{Cost: *v.Cost, LatticeCost: v.LatticeCost, BasisCost: v.BasisCost}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Cost < ret[j].Cost })
	return ret, nil
}

//Error is the error type for this package.
type Error struct {
	message string
	command string
	stderr  string //what the program wrote to its standard error, if anything.
	deco    []string
}

func (err Error) Error() string {
	if err.stderr == "" {
		return fmt.Sprintf("mapexec: %s: %s", err.command, err.message)
	}
	return fmt.Sprintf("mapexec: %s: %s (stderr: %s)", err.command, err.message, err.stderr)
}

//Stderr returns the standard error output of the failed program.
func (err Error) Stderr() string { return err.stderr }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return true }
