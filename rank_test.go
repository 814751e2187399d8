/*
 * rank_test.go, part of primbin.
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
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/primbin/xtal"
)

//nsites returns a structure with n sites, which the test oracles use
//to tell candidates apart.
func nsites(Te *testing.T, n int) *xtal.Structure {
	lat, err := xtal.NewLattice([]float64{5, 0, 0}, []float64{0, 5, 0}, []float64{0, 0, 5})
	if err != nil {
		Te.Fatal(err)
	}
	sites := make([]xtal.Site, n)
	for i := range sites {
		sites[i], _ = xtal.NewSite([]float64{float64(i), 0, 0}, "Ni")
	}
	S, err := xtal.NewStructure(lat, sites)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

//tableOracle returns costs[number of sites]. A missing entry is an error.
func tableOracle(calls *int64, costs map[int]float64) Oracle {
	return OracleFunc(func(c *xtal.Structure) ([]Report, error) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		v, ok := costs[c.Len()]
		if !ok {
			return nil, fmt.Errorf("no mapping for %d sites", c.Len())
		}
		return []Report{{Cost: v}, {Cost: v + 1}}, nil
	})
}

func TestRank(Te *testing.T) {
	var calls int64
	oracles := []Oracle{
		tableOracle(&calls, map[int]float64{1: 0.1, 2: 0.5}),
		tableOracle(&calls, map[int]float64{1: 0.3, 2: 0.2}),
	}
	cands := []Candidate{Present(nsites(Te, 1)), Present(nsites(Te, 2)), Absent()}
	R, err := Rank(oracles, cands)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([][]int{{0, 1}, {1, 0}, {-1, -1}}, R.Rows()); d != "" {
		Te.Errorf("Wrong ranks (-want +got):\n%s", d)
	}
	if calls != 4 {
		Te.Errorf("Oracles called %d times for 2 present candidates and 2 prototypes", calls)
	}
	if R.Best(1) != 1 || !R.Absent(2) || R.Absent(0) {
		Te.Error("Best or Absent give wrong results")
	}
	sc := R.Scores()
	if sc[0][1] != 0.3 || !math.IsNaN(sc[2][0]) {
		Te.Errorf("Wrong scores %v", sc)
	}
	if n, m := R.Dims(); n != 3 || m != 2 {
		Te.Errorf("Wrong dimensions %d %d", n, m)
	}
}

func TestRankTies(Te *testing.T) {
	oracles := []Oracle{
		tableOracle(nil, map[int]float64{1: 0.2}),
		tableOracle(nil, map[int]float64{1: 0.2}),
		tableOracle(nil, map[int]float64{1: 0.1}),
	}
	R, err := RankStructures(oracles, []*xtal.Structure{nsites(Te, 1), nil})
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([][]int{{2, 0, 1}, {-1, -1, -1}}, R.Rows()); d != "" {
		Te.Errorf("Ties should keep the prototype order (-want +got):\n%s", d)
	}
}

func TestRankEmpty(Te *testing.T) {
	o := []Oracle{tableOracle(nil, nil)}
	R, err := Rank(o, nil)
	if err != nil || len(R.Rows()) != 0 {
		Te.Errorf("No candidates should give no rows: %v %v", R.Rows(), err)
	}
	R, err = Rank(nil, []Candidate{Present(nsites(Te, 1)), Absent()})
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([][]int{{}, {}}, R.Rows()); d != "" {
		Te.Errorf("No oracles should give empty rows (-want +got):\n%s", d)
	}
	if R.Best(0) != -1 {
		Te.Error("Best should be -1 with no prototypes")
	}
}

func TestRankFailure(Te *testing.T) {
	oracles := []Oracle{
		tableOracle(nil, map[int]float64{1: 0.1, 2: 0.5}),
		tableOracle(nil, map[int]float64{1: 0.3}), //fails for 2 sites
		OracleFunc(func(c *xtal.Structure) ([]Report, error) {
			if c.Len() == 1 {
				return []Report{{Cost: 0.2}}, nil
			}
			return []Report{{Cost: 0.4}}, nil
		}),
	}
	cands := []Candidate{Present(nsites(Te, 1)), Present(nsites(Te, 2), "SCEL2_1_2_1_0_0_0/3"), Absent()}
	_, err := Rank(oracles, cands)
	if !errors.Is(err, ErrOracleFailure) {
		Te.Fatalf("Expected an oracle failure, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Config() != "SCEL2_1_2_1_0_0_0/3" {
		Te.Errorf("The failure should name the configuration: %v", err)
	}
	R, err := Rank(oracles, cands, &RankOptions{Cpus: 2, Graceful: true})
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([][]int{{0, 2, 1}, {-1, -1, -1}, {-1, -1, -1}}, R.Rows()); d != "" {
		Te.Errorf("A failed row should be blanked (-want +got):\n%s", d)
	}
	if len(R.Failures) != 1 || R.Failures[0].Config != 1 || R.Failures[0].Prototype != 1 {
		Te.Errorf("Wrong failures %v", R.Failures)
	}
	empty := OracleFunc(func(c *xtal.Structure) ([]Report, error) { return nil, nil })
	nan := OracleFunc(func(c *xtal.Structure) ([]Report, error) { return []Report{{Cost: math.NaN()}}, nil })
	for _, o := range []Oracle{empty, nan} {
		if _, err := Rank([]Oracle{o}, cands[:1]); !errors.Is(err, ErrOracleFailure) {
			Te.Errorf("No usable report should be an oracle failure, got %v", err)
		}
	}
}

func TestRankParallel(Te *testing.T) {
	oracles := make([]Oracle, 5)
	for j := range oracles {
		costs := make(map[int]float64)
		for n := 1; n <= 20; n++ {
			costs[n] = math.Abs(math.Sin(float64(n*(j+1)))) //some fixed pseudo-random costs
		}
		oracles[j] = tableOracle(nil, costs)
	}
	cands := make([]Candidate, 0, 25)
	for n := 1; n <= 20; n++ {
		cands = append(cands, Present(nsites(Te, n)))
		if n%4 == 0 {
			cands = append(cands, Absent())
		}
	}
	serial, err := Rank(oracles, cands, &RankOptions{Cpus: 1})
	if err != nil {
		Te.Fatal(err)
	}
	parallel, err := Rank(oracles, cands, &RankOptions{Cpus: 8})
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(serial.Rows(), parallel.Rows()); d != "" {
		Te.Errorf("Serial and parallel rankings differ (-serial +parallel):\n%s", d)
	}
	for i, row := range serial.Rows() {
		seen := make(map[int]bool)
		for _, v := range row {
			seen[v] = true
		}
		if !serial.Absent(i) && len(seen) != len(oracles) {
			Te.Errorf("Row %d is not a permutation: %v", i, row)
		}
	}
}

func TestRankRepeatable(Te *testing.T) {
	oracles := []Oracle{
		tableOracle(nil, map[int]float64{1: 0.01, 2: 5.0, 3: 1.0}),
		tableOracle(nil, map[int]float64{1: 5.0, 2: 0.01, 3: 1.0}),
	}
	cands := []Candidate{Present(nsites(Te, 1)), Present(nsites(Te, 2)), Absent(), Present(nsites(Te, 3))}
	want := [][]int{{0, 1}, {1, 0}, {-1, -1}, {0, 1}}
	for k := 0; k < 10; k++ {
		R, err := Rank(oracles, cands)
		if err != nil {
			Te.Fatal(err)
		}
		if d := cmp.Diff(want, R.Rows()); d != "" {
			Te.Fatalf("Run %d gave wrong ranks (-want +got):\n%s", k, d)
		}
	}
}
