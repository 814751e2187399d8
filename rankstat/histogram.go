/*
 * histogram.go, part of primbin.
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

package rankstat

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rmera/primbin"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Histogram counts values in bins. The bins are given by a sorted list of dividers,
//so there is one bin less than dividers. Values outside [dividers[0], dividers[last])
//are ignored.
type Histogram struct {
	normalized bool
	total      int
	dividers   []float64
	counts     []float64
}

//NewHistogram returns a new histogram with the given dividers, filled with data,
//which can be nil. Panics if there are fewer than 2 dividers or they are not sorted.
func NewHistogram(dividers []float64, data []float64) *Histogram {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("rankstat.NewHistogram: at least 2 sorted dividers are needed")
	}
	H := new(Histogram)
	H.dividers = make([]float64, len(dividers))
	copy(H.dividers, dividers)
	H.counts = make([]float64, len(dividers)-1)
	H.AddData(data...)
	return H
}

//EvenDividers returns n+1 dividers for n bins of equal width between lo and hi.
//The last divider is slightly larger than hi, so hi itself falls in the last bin.
func EvenDividers(lo, hi float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	ret := make([]float64, n+1)
	floats.Span(ret, lo, hi)
	ret[n] = hi + (hi-lo)*1e-9
	return ret
}

//CostHistogram returns a histogram of the costs of the best mappings of each present
//configuration onto prototype j, with n bins between 0 and the largest cost.
func CostHistogram(R *primbin.RankMatrix, j int, n int) *Histogram {
	c := Costs(R, j)
	top := 0.0
	if len(c) > 0 {
		top = floats.Max(c)
	}
	return NewHistogram(EvenDividers(0, top, n), c)
}

//AddData adds the given values to the histogram.
func (H *Histogram) AddData(data ...float64) {
	if len(data) == 0 {
		return
	}
	norm := H.normalized
	if norm {
		H.UnNormalize()
	}
	d := make([]float64, len(data))
	copy(d, data)
	sort.Float64s(d)
	//stat.Histogram panics on values out of range, so they go first.
	lo := sort.SearchFloat64s(d, H.dividers[0])
	hi := sort.SearchFloat64s(d, H.dividers[len(H.dividers)-1])
	d = d[lo:hi]
	if len(d) > 0 {
		floats.Add(H.counts, stat.Histogram(nil, H.dividers, d, nil))
	}
	H.total += len(d)
	if norm {
		H.Normalize()
	}
}

//Total returns the number of values in the histogram.
func (H *Histogram) Total() int { return H.total }

//Normalized returns true if the histogram is normalized.
func (H *Histogram) Normalized() bool { return H.normalized }

//Normalize divides each count by the total, so they add up to 1.
func (H *Histogram) Normalize() {
	H.normunnorm(true)
}

//UnNormalize returns the counts of a normalized histogram to their original values.
func (H *Histogram) UnNormalize() {
	H.normunnorm(false)
}

func (H *Histogram) normunnorm(normalize bool) {
	if H.total <= 0 || H.normalized == normalize {
		return
	}
	n := float64(H.total)
	if normalize {
		n = 1 / n
	}
	floats.Scale(n, H.counts)
	H.normalized = normalize
}

//Counts returns a copy of the counts, in dst if it is given and large enough.
func (H *Histogram) Counts(dst ...[]float64) []float64 {
	return copyInto(H.counts, dst...)
}

//Dividers returns a copy of the dividers, in dst if it is given and large enough.
func (H *Histogram) Dividers(dst ...[]float64) []float64 {
	return copyInto(H.dividers, dst...)
}

//Labels returns a label for each bin, with its limits.
func (H *Histogram) Labels() []string {
	ret := make([]string, len(H.counts))
	for i := range ret {
		ret[i] = fmt.Sprintf("%.3g-%.3g", H.dividers[i], H.dividers[i+1])
	}
	return ret
}

func (H *Histogram) String() string {
	l := H.Labels()
	c := make([]string, len(H.counts))
	for i, v := range H.counts {
		c[i] = fmt.Sprintf("%*.3f", len(l[i]), v)
	}
	return fmt.Sprintf("total: %d normalized: %v\n%s\n%s", H.total, H.normalized, strings.Join(l, " "), strings.Join(c, " "))
}

type histoJSON struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Counts     []float64 `json:"counts"`
}

func (H *Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(histoJSON{H.normalized, H.total, H.dividers, H.counts})
}

func (H *Histogram) UnmarshalJSON(b []byte) error {
	var a histoJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Counts)+1 {
		return fmt.Errorf("rankstat: histogram with %d dividers and %d counts", len(a.Dividers), len(a.Counts))
	}
	H.normalized, H.total, H.dividers, H.counts = a.Normalized, a.Total, a.Dividers, a.Counts
	return nil
}

func copyInto(src []float64, dst ...[]float64) []float64 {
	var d []float64
	if len(dst) > 0 && len(dst[0]) >= len(src) {
		d = dst[0][:len(src)]
	} else {
		d = make([]float64, len(src))
	}
	copy(d, src)
	return d
}
