/*
 * rank.go, part of primbin.
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
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"

	"github.com/rmera/primbin/xtal"
	"golang.org/x/sync/errgroup"
)

//Candidate is the input of the ranking for one configuration: either a relaxed
//structure is present, or it is absent (i.e. the calculation has not finished).
//The zero value is an absent candidate.
type Candidate struct {
	name string
	s    *xtal.Structure
}

//Present returns a candidate with the structure s. A nil s gives an absent candidate.
//An optional name for the configuration is used in error messages.
func Present(s *xtal.Structure, name ...string) Candidate {
	C := Candidate{s: s}
	if len(name) > 0 {
		C.name = name[0]
	}
	return C
}

//Absent returns a candidate with no structure.
func Absent(name ...string) Candidate {
	return Present(nil, name...)
}

//Structure returns the structure of the candidate and true, or nil and false if it is absent.
func (C Candidate) Structure() (*xtal.Structure, bool) {
	return C.s, C.s != nil
}

//Name returns the name of the configuration, or an empty string.
func (C Candidate) Name() string { return C.name }

//RankOptions contains options for the Rank function.
type RankOptions struct {
	//Maximum number of oracle calls running at the same time. 1 means serial evaluation.
	Cpus int
	//If true, an oracle failure for a configuration makes the whole row absent (-1) instead
	//of aborting the ranking. The failures are kept in the Failures field of the result.
	Graceful bool
}

//DefaultRankOptions uses all the logical CPUs and aborts on the first oracle failure.
func DefaultRankOptions() *RankOptions {
	return &RankOptions{Cpus: runtime.NumCPU()}
}

//Failure records an oracle failure that was tolerated in a graceful ranking.
type Failure struct {
	Config    int //row
	Prototype int //column (oracle index)
	Err       error
}

//RankMatrix contains, for each configuration, the indexes of the prototypes (oracles) sorted
//from the best to the worst fitting, or -1 in every position if the configuration
//had no structure.
type RankMatrix struct {
	ranks    [][]int
	scores   [][]float64
	Failures []Failure
}

func newRankMatrix(n, m int) *RankMatrix {
	R := &RankMatrix{ranks: make([][]int, n), scores: make([][]float64, n)}
	for i := range R.ranks {
		R.ranks[i] = make([]int, m)
		R.scores[i] = make([]float64, m)
	}
	return R
}

//Dims returns the number of configurations and prototypes.
func (R *RankMatrix) Dims() (int, int) {
	if len(R.ranks) == 0 {
		return 0, 0
	}
	return len(R.ranks), len(R.ranks[0])
}

//Rows returns a copy of the rank matrix.
func (R *RankMatrix) Rows() [][]int {
	ret := make([][]int, len(R.ranks))
	for i, v := range R.ranks {
		ret[i] = make([]int, len(v))
		copy(ret[i], v)
	}
	return ret
}

//Row returns a copy of the ith row of the matrix.
func (R *RankMatrix) Row(i int) []int {
	ret := make([]int, len(R.ranks[i]))
	copy(ret, R.ranks[i])
	return ret
}

//Best returns the index of the best fitting prototype for configuration i, or -1 if
//the configuration had no structure or there are no prototypes.
func (R *RankMatrix) Best(i int) int {
	if len(R.ranks[i]) == 0 {
		return -1
	}
	return R.ranks[i][0]
}

//Absent returns true if the ith row is a -1 row.
func (R *RankMatrix) Absent(i int) bool {
	return len(R.ranks[i]) > 0 && R.ranks[i][0] < 0
}

//Scores returns a copy of the cost of the best mapping of each configuration (rows)
//onto each prototype (columns), in the original prototype order. Rows of absent
//configurations contain NaN.
func (R *RankMatrix) Scores() [][]float64 {
	ret := make([][]float64, len(R.scores))
	for i, v := range R.scores {
		ret[i] = make([]float64, len(v))
		copy(ret[i], v)
	}
	return ret
}

func (R *RankMatrix) setAbsent(i int) {
	for j := range R.ranks[i] {
		R.ranks[i][j] = -1
		R.scores[i][j] = math.NaN()
	}
}

func (R *RankMatrix) setPresent(i int, costs []float64) {
	copy(R.scores[i], costs)
	order := newCostOrder(costs)
	sort.Stable(order)
	copy(R.ranks[i], order.idx)
}

//costOrder sorts prototype indexes by their cost.
type costOrder struct {
	idx   []int
	costs []float64
}

func newCostOrder(costs []float64) *costOrder {
	ret := &costOrder{idx: make([]int, len(costs)), costs: costs}
	for i := range ret.idx {
		ret.idx[i] = i
	}
	return ret
}

func (c *costOrder) Len() int           { return len(c.idx) }
func (c *costOrder) Less(i, j int) bool { return c.costs[c.idx[i]] < c.costs[c.idx[j]] }
func (c *costOrder) Swap(i, j int)      { c.idx[i], c.idx[j] = c.idx[j], c.idx[i] }

//bestCost returns the cost of the first (best) report of O for s.
func bestCost(O Oracle, s *xtal.Structure) (float64, error) {
	reports, err := O.Map(s)
	if err != nil {
		return math.NaN(), err
	}
	if len(reports) == 0 {
		return math.NaN(), fmt.Errorf("no mappings found")
	}
	if math.IsNaN(reports[0].Cost) {
		return math.NaN(), fmt.Errorf("NaN mapping cost")
	}
	return reports[0].Cost, nil
}

func oracleFailure(i, j int, name string, cause error) *Error {
	e := newError(ErrOracleFailure, "", fmt.Sprintf("oracle %d failed on configuration %d", j, i), "Rank")
	e.config = name
	e.cause = cause
	return e
}

//Rank maps each present candidate with each oracle (one per prototype) and returns, for each
//candidate, the indexes of the oracles sorted by increasing cost of their best mapping. Ties are
//broken by the original order of the oracles. The row for an absent candidate is all -1, and
//no oracle is called for it.
//With no candidates the result has no rows, with no oracles each row is empty.
//Oracle calls are run concurrently, up to o.Cpus at a time. By default the first oracle failure
//aborts the ranking and is returned, see RankOptions for the alternative.
func Rank(oracles []Oracle, candidates []Candidate, opts ...*RankOptions) (*RankMatrix, error) {
	o := DefaultRankOptions()
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	}
	n, m := len(candidates), len(oracles)
	R := newRankMatrix(n, m)
	if n == 0 || m == 0 {
		return R, nil
	}
	costs := make([][]float64, n)
	errs := make([][]error, n)
	for i := range costs {
		costs[i] = make([]float64, m)
		errs[i] = make([]error, m)
	}
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(o.Cpus, 1))
	for i, c := range candidates {
		s, ok := c.Structure()
		if !ok {
			continue
		}
		for j, O := range oracles {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil //another cell failed already
				}
				cost, err := bestCost(O, s)
				if err != nil {
					e := oracleFailure(i, j, c.Name(), err)
					if !o.Graceful {
						return e
					}
					errs[i][j] = e
				}
				costs[i][j] = cost
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//Rows are filled only once every cell is known.
	for i, c := range candidates {
		if _, ok := c.Structure(); !ok {
			R.setAbsent(i)
			continue
		}
		failed := false
		for j, err := range errs[i] {
			if err != nil {
				failed = true
				R.Failures = append(R.Failures, Failure{Config: i, Prototype: j, Err: err})
			}
		}
		if failed {
			log.Printf("primbin.Rank: configuration %d (%s) treated as absent after oracle failure", i, c.Name())
			R.setAbsent(i)
			continue
		}
		R.setPresent(i, costs[i])
	}
	return R, nil
}

//RankStructures is like Rank, but takes structures directly. A nil structure is
//treated as an absent candidate.
func RankStructures(oracles []Oracle, structures []*xtal.Structure, opts ...*RankOptions) (*RankMatrix, error) {
	cands := make([]Candidate, len(structures))
	for i, s := range structures {
		cands[i] = Present(s)
	}
	return Rank(oracles, cands, opts...)
}
