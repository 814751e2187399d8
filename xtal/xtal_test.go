/*
 * xtal_test.go, part of primbin.
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

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func fccLattice(Te *testing.T) *Lattice {
	lat, err := NewLattice([]float64{0, 1.78, 1.78}, []float64{1.78, 0, 1.78}, []float64{1.78, 1.78, 0})
	if err != nil {
		Te.Fatal(err)
	}
	return lat
}

func TestLattice(Te *testing.T) {
	lat := fccLattice(Te)
	if v := lat.Volume(); math.Abs(v-2*1.78*1.78*1.78) > 1e-9 {
		Te.Errorf("Wrong volume %f", v)
	}
	frac := []float64{0.25, 0.5, 0.75}
	cart := lat.Frac2Cart(frac)
	want := []float64{1.78 * (0.5 + 0.75), 1.78 * (0.25 + 0.75), 1.78 * (0.25 + 0.5)}
	for i := range want {
		if math.Abs(cart[i]-want[i]) > 1e-12 {
			Te.Errorf("Frac2Cart: got %v, want %v", cart, want)
			break
		}
	}
	back := lat.Cart2Frac(cart)
	for i := range frac {
		if math.Abs(back[i]-frac[i]) > 1e-12 {
			Te.Errorf("Cart2Frac does not undo Frac2Cart: %v", back)
			break
		}
	}
	v := lat.Vec(0)
	v[0] = 99
	if lat.Vec(0)[0] != 0 {
		Te.Error("Lattice vectors should not be modifiable from outside")
	}
	if _, err := NewLattice([]float64{1, 0, 0}, []float64{2, 0, 0}, []float64{0, 0, 1}); err == nil {
		Te.Error("Linearly dependent vectors should not make a lattice")
	}
	if _, err := LatticeFromVecs([][]float64{{1, 0, 0}, {0, 1, 0}}); err == nil {
		Te.Error("Two vectors should not make a lattice")
	}
}

func TestStructure(Te *testing.T) {
	lat := fccLattice(Te)
	a, _ := SiteFromFrac([]float64{0, 0, 0}, lat, "Ni")
	b, _ := SiteFromFrac([]float64{0.5, 0.5, 0.5}, lat, "Al")
	c, _ := SiteFromFrac([]float64{0.25, 0.25, 0.25}, lat, "Ni")
	sites := []Site{a, b, c}
	S, err := NewStructure(lat, sites)
	if err != nil {
		Te.Fatal(err)
	}
	sites[0].Species = "Va"
	if S.Site(0).Species != "Ni" {
		Te.Error("NewStructure should copy the sites")
	}
	if got := strings.Join(S.Species(), ","); got != "Ni,Al,Ni" {
		Te.Errorf("Wrong species %s", got)
	}
	if got := strings.Join(S.SpeciesOrder(), ","); got != "Ni,Al" {
		Te.Errorf("Wrong species order %s", got)
	}
	if comp := S.Composition(); comp["Ni"] != 2 || comp["Al"] != 1 {
		Te.Errorf("Wrong composition %v", comp)
	}
	fr := S.FracCoords()
	if math.Abs(fr.At(1, 2)-0.5) > 1e-12 {
		Te.Errorf("Wrong fractional coordinates\n%s", fr)
	}
	if _, err := NewSite([]float64{1, 2}, "Ni"); err == nil {
		Te.Error("A 2D site should be rejected")
	}
	E, _ := NewStructure(lat, nil)
	if E.CartCoords() != nil || E.Len() != 0 {
		Te.Error("An empty structure should have no coordinates")
	}
}

const b2Poscar = `NiAl B2
2.86
 1.0 0.0 0.0
 0.0 1.0 0.0
 0.0 0.0 1.0
Ni Al
1 1
Selective dynamics
Cartesian
 0.0 0.0 0.0 T T T
 0.5 0.5 0.5 T T T
`

func TestPOSCARRead(Te *testing.T) {
	S, title, err := POSCARRead(strings.NewReader(b2Poscar))
	if err != nil {
		Te.Fatal(err)
	}
	if title != "NiAl B2" {
		Te.Errorf("Wrong title %q", title)
	}
	if S.Len() != 2 || S.Site(1).Species != "Al" {
		Te.Fatalf("Wrong structure read:\n%s", S)
	}
	if c := S.Site(1).Cart(); math.Abs(c[0]-1.43) > 1e-12 {
		Te.Errorf("Cartesian positions should be scaled, got %v", c)
	}
	if v := S.Lattice().Vec(2); math.Abs(v[2]-2.86) > 1e-12 {
		Te.Errorf("Lattice should be scaled, got %v", v)
	}
	if _, _, err := POSCARRead(strings.NewReader("title\n1.0\n1 0 0\n0 1 0\n")); err == nil {
		Te.Error("A truncated file should give an error")
	}
}

func TestPOSCARRoundTrip(Te *testing.T) {
	lat := fccLattice(Te)
	a, _ := SiteFromFrac([]float64{0, 0, 0}, lat, "Ni")
	b, _ := SiteFromFrac([]float64{0.5, 0.5, 0.5}, lat, "Al")
	c, _ := SiteFromFrac([]float64{0.25, 0.25, 0.25}, lat, "Ni")
	S, _ := NewStructure(lat, []Site{a, c, b})
	name := filepath.Join(Te.TempDir(), "POSCAR")
	if err := POSCARFileWrite(S, "test", name); err != nil {
		Te.Fatal(err)
	}
	R, title, err := POSCARFileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if title != "test" || !R.Equal(S, 1e-8) {
		Te.Errorf("Round trip failed. Wrote:\n%s\nRead:\n%s", S, R)
	}
	var buf bytes.Buffer
	if err := POSCARWrite(S, "grouping", &buf); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Ni Al\n2 1\nDirect") {
		Te.Errorf("Species should be grouped:\n%s", buf.String())
	}
	if _, _, err := POSCARFileRead(filepath.Join(Te.TempDir(), "nope")); err == nil {
		Te.Error("Reading a missing file should fail")
	}
}
