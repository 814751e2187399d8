/*
 * rankstat.go, part of primbin.
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

//Package rankstat summarizes a rank matrix: for each prototype, how often it is the best
//fit, its mean rank and statistics of its mapping costs over the present configurations.
package rankstat

import (
	"fmt"
	"strings"

	"github.com/rmera/primbin"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Summary contains the statistics for one prototype (one column of the cost matrix).
type Summary struct {
	Name     string  `json:"name"`
	Index    int     `json:"index"`     //column in the rank matrix
	Best     int     `json:"best"`      //number of configurations for which this is the best prototype
	MeanRank float64 `json:"mean_rank"` //0 is the best
	MeanCost float64 `json:"mean_cost"`
	StdCost  float64 `json:"std_cost"` //0 if fewer than 2 configurations are present
	MinCost  float64 `json:"min_cost"`
	Present  int     `json:"present"` //number of configurations with a structure
}

func (S Summary) String() string {
	return fmt.Sprintf("%-20s best: %4d mean rank: %6.3f cost: %8.5f +/- %8.5f (min %8.5f) n: %d", S.Name, S.Best, S.MeanRank, S.MeanCost, S.StdCost, S.MinCost, S.Present)
}

//Summarize returns one Summary per prototype of R. names are the names of the prototypes,
//in the order of the oracles given to primbin.Rank. If names is nil or too short,
//the missing names are "prototype_j". Absent configurations are not counted.
//If no configuration is present, all the statistics are 0.
func Summarize(R *primbin.RankMatrix, names []string) []Summary {
	_, m := R.Dims()
	rows := R.Rows()
	scores := R.Scores()
	ret := make([]Summary, m)
	for j := range ret {
		ret[j].Index = j
		ret[j].Name = fmt.Sprintf("prototype_%d", j)
		if j < len(names) {
			ret[j].Name = names[j]
		}
	}
	costs := make([][]float64, m)
	ranks := make([][]float64, m)
	for i, row := range rows {
		if R.Absent(i) {
			continue
		}
		for pos, j := range row {
			ranks[j] = append(ranks[j], float64(pos))
			costs[j] = append(costs[j], scores[i][j])
		}
		if len(row) > 0 {
			ret[row[0]].Best++
		}
	}
	for j := range ret {
		S := &ret[j]
		S.Present = len(costs[j])
		if S.Present == 0 {
			continue
		}
		S.MeanRank = stat.Mean(ranks[j], nil)
		S.MeanCost, S.StdCost = stat.MeanStdDev(costs[j], nil)
		if S.Present < 2 {
			S.StdCost = 0
		}
		S.MinCost = floats.Min(costs[j])
	}
	return ret
}

//Costs returns the costs of the best mapping of each present configuration onto
//prototype j.
func Costs(R *primbin.RankMatrix, j int) []float64 {
	scores := R.Scores()
	ret := make([]float64, 0, len(scores))
	for i, v := range scores {
		if !R.Absent(i) && j < len(v) {
			ret = append(ret, v[j])
		}
	}
	return ret
}

//Table returns a printable table with the summaries in sums.
func Table(sums []Summary) string {
	str := make([]string, len(sums))
	for i, v := range sums {
		str[i] = v.String()
	}
	return strings.Join(str, "\n")
}
