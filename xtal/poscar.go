/*
 * poscar.go, part of primbin.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

//POSCARFileRead reads the VASP POSCAR (or CONTCAR) file poscarname and returns
//the structure in it, and the title line.
func POSCARFileRead(poscarname string) (*Structure, string, error) {
	f, err := os.Open(poscarname)
	if err != nil {
		return nil, "", FileError{err.Error(), poscarname, []string{"POSCARFileRead"}}
	}
	defer f.Close()
	S, title, err := POSCARRead(f)
	if err != nil {
		return nil, "", FileError{err.Error(), poscarname, []string{"POSCARRead", "POSCARFileRead"}}
	}
	return S, title, nil
}

//POSCARRead reads a structure in VASP5 POSCAR format from r. VASP4 files, without the
//species line, are accepted if the title line contains exactly one name per species.
//Velocities and anything after the positions is ignored.
func POSCARRead(r io.Reader) (*Structure, string, error) {
	lines := make([]string, 0, 16)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, "", err
	}
	next := 0
	readLine := func(what string) (string, error) {
		if next >= len(lines) {
			return "", fmt.Errorf("file ended while reading %s", what)
		}
		next++
		return strings.TrimSpace(lines[next-1]), nil
	}
	title, err := readLine("title")
	if err != nil {
		return nil, "", err
	}
	line, err := readLine("scale factor")
	if err != nil {
		return nil, "", err
	}
	scale, err := strconv.ParseFloat(firstField(line), 64)
	if err != nil {
		return nil, "", fmt.Errorf("can't read scale factor from '%s'", line)
	}
	vecs := make([][]float64, 3)
	for i := range vecs {
		line, err = readLine("lattice vectors")
		if err != nil {
			return nil, "", err
		}
		vecs[i], err = parseVec(line)
		if err != nil {
			return nil, "", fmt.Errorf("lattice vector %d: %w", i, err)
		}
	}
	line, err = readLine("species")
	if err != nil {
		return nil, "", err
	}
	var species []string
	fields := strings.Fields(line)
	if _, err := strconv.Atoi(firstField(line)); err != nil {
		species = fields
		line, err = readLine("species counts")
		if err != nil {
			return nil, "", err
		}
		fields = strings.Fields(line)
	}
	counts := make([]int, len(fields))
	for i, v := range fields {
		counts[i], err = strconv.Atoi(v)
		if err != nil || counts[i] < 0 {
			return nil, "", fmt.Errorf("can't read species count from '%s'", v)
		}
	}
	if species == nil {
		species = strings.Fields(title)
	}
	if len(species) != len(counts) {
		return nil, "", fmt.Errorf("%d species names for %d species counts", len(species), len(counts))
	}
	line, err = readLine("coordinate mode")
	if err != nil {
		return nil, "", err
	}
	if line != "" && (line[0] == 'S' || line[0] == 's') {
		line, err = readLine("coordinate mode")
		if err != nil {
			return nil, "", err
		}
	}
	cartesian := line != "" && strings.ContainsRune("CcKk", rune(line[0]))
	//A negative scale is the volume of the cell.
	if scale < 0 {
		lat, err := LatticeFromVecs(vecs)
		if err != nil {
			return nil, "", err
		}
		scale = math.Cbrt(-scale / lat.Volume())
	}
	for _, v := range vecs {
		for j := range v {
			v[j] *= scale
		}
	}
	lat, err := LatticeFromVecs(vecs)
	if err != nil {
		return nil, "", err
	}
	sites := make([]Site, 0, len(lines)-next)
	for k, c := range counts {
		for i := 0; i < c; i++ {
			line, err = readLine("positions")
			if err != nil {
				return nil, "", err
			}
			pos, err := parseVec(line)
			if err != nil {
				return nil, "", fmt.Errorf("position %d: %w", len(sites), err)
			}
			var s Site
			if cartesian {
				for j := range pos {
					pos[j] *= scale
				}
				s, err = NewSite(pos, species[k])
			} else {
				s, err = SiteFromFrac(pos, lat, species[k])
			}
			if err != nil {
				return nil, "", err
			}
			sites = append(sites, s)
		}
	}
	S, err := NewStructure(lat, sites)
	return S, title, err
}

//POSCARFileWrite writes S to a new file poscarname in VASP5 POSCAR format.
//If the file exists it will be overwritten.
func POSCARFileWrite(S *Structure, title, poscarname string) error {
	f, err := os.Create(poscarname)
	if err != nil {
		return FileError{err.Error(), poscarname, []string{"POSCARFileWrite"}}
	}
	defer f.Close()
	if err := POSCARWrite(S, title, f); err != nil {
		return FileError{err.Error(), poscarname, []string{"POSCARWrite", "POSCARFileWrite"}}
	}
	return nil
}

//POSCARWrite writes S to w in VASP5 POSCAR format with fractional (Direct) coordinates.
//POSCAR needs the sites of each species to be contiguous, so sites are written grouped
//by species, in the order in which each species first appears in S.
func POSCARWrite(S *Structure, title string, w io.Writer) error {
	title = strings.ReplaceAll(title, "\n", " ")
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n1.0\n", title)
	for i := 0; i < 3; i++ {
		v := S.lat.Vec(i)
		fmt.Fprintf(bw, " %16.10f %16.10f %16.10f\n", v[0], v[1], v[2])
	}
	order := S.SpeciesOrder()
	comp := S.Composition()
	counts := make([]string, len(order))
	for i, v := range order {
		counts[i] = strconv.Itoa(comp[v])
	}
	fmt.Fprintf(bw, "%s\n%s\nDirect\n", strings.Join(order, " "), strings.Join(counts, " "))
	for _, sp := range order {
		for _, s := range S.sites {
			if s.Species != sp {
				continue
			}
			f := s.Frac(S.lat)
			fmt.Fprintf(bw, " %14.10f %14.10f %14.10f %s\n", f[0], f[1], f[2], sp)
		}
	}
	return bw.Flush()
}

func firstField(line string) string {
	f := strings.Fields(line)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func parseVec(line string) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("line '%s' has less than 3 fields", line)
	}
	ret := make([]float64, 3)
	var err error
	for i := range ret {
		ret[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("can't parse '%s' as a number", fields[i])
		}
	}
	return ret, nil
}
