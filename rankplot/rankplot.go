/*
 * rankplot.go, part of primbin.
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

//Package rankplot draws the results of a ranking with gonum/plot. The format of each
//file (png, svg, pdf, eps...) is given by the extension of its name.
package rankplot

import (
	"fmt"

	"github.com/rmera/primbin/rankstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//Size of the saved plots.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

func bars(p *plot.Plot, values []float64, labels []string, colorindex int) error {
	if len(values) == 0 {
		return fmt.Errorf("rankplot: nothing to plot")
	}
	b, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return err
	}
	b.LineStyle.Width = vg.Length(0)
	b.Color = plotutil.Color(colorindex)
	p.Add(b)
	p.NominalX(labels...)
	return nil
}

//BestCounts saves to filename a bar chart with the number of configurations for which
//each prototype is the best fit.
func BestCounts(sums []rankstat.Summary, title, filename string) error {
	p := basicPlot(title, "Configurations")
	values := make([]float64, len(sums))
	labels := make([]string, len(sums))
	for i, v := range sums {
		values[i] = float64(v.Best)
		labels[i] = v.Name
	}
	if err := bars(p, values, labels, 0); err != nil {
		return err
	}
	return p.Save(Width, Height, filename)
}

//CostHistogram saves to filename a bar chart with the histogram H of mapping costs.
func CostHistogram(H *rankstat.Histogram, title, filename string) error {
	ylabel := "Configurations"
	if H.Normalized() {
		ylabel = "Fraction of configurations"
	}
	p := basicPlot(title, ylabel)
	p.X.Label.Text = "Mapping cost"
	if err := bars(p, H.Counts(), H.Labels(), 1); err != nil {
		return err
	}
	return p.Save(Width, Height, filename)
}
