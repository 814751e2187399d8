/*
 * casmfs.go, part of primbin.
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

//Package casmfs finds the files of a CASM project: the prim, the
//configurations under training_data, their ideal structures and the results
//of their calculations.
package casmfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

//The file names tried, in order, for the relaxed properties of a calculation.
var propertiesNames = []string{"properties.calc.json", "properties.calc.json.gz", "properties.calc.json.zst"}

//Project gives the paths to files in a CASM project.
type Project struct {
	root     string
	name     string
	calctype string
}

//New returns a Project rooted at root. The name of the project is the base
//name of root, unless a name is given. The calculation type is "default".
func New(root string, name ...string) *Project {
	P := &Project{root: root, calctype: "default"}
	if len(name) > 0 && name[0] != "" {
		P.name = name[0]
	} else {
		P.name = filepath.Base(filepath.Clean(root))
	}
	return P
}

//Root returns the root directory of the project.
func (P *Project) Root() string { return P.root }

//Name returns the name of the project.
func (P *Project) Name() string { return P.name }

//CalcType returns the calculation type used to find calculation results,
//and sets it to a new value, if given.
func (P *Project) CalcType(calctype ...string) string {
	if len(calctype) > 0 && calctype[0] != "" {
		P.calctype = calctype[0]
	}
	return P.calctype
}

//Prim returns the path to the prim.json file of the project, or a missing file error.
func (P *Project) Prim() (string, error) {
	return mustExist(filepath.Join(P.root, "prim.json"), "Prim")
}

//Configuration returns the path to the directory of the configuration configname,
//given as "SCELX_A_B_C_D_E_F/Z", or an error if it doesn't exist or the name is malformed.
func (P *Project) Configuration(configname string) (string, error) {
	scel, config, err := splitName(configname)
	if err != nil {
		return "", err
	}
	return mustExist(filepath.Join(P.root, "training_data", scel, config), "Configuration")
}

//POS returns the path to the POS file (the ideal POSCAR) of configname.
func (P *Project) POS(configname string) (string, error) {
	dir, err := P.Configuration(configname)
	if err != nil {
		return "", errDecorate(err, "POS")
	}
	return mustExist(filepath.Join(dir, "POS"), "POS")
}

//CalcDir returns the path to the calculation directory of configname for the
//current calculation type. The directory might not exist.
func (P *Project) CalcDir(configname string) (string, error) {
	dir, err := P.Configuration(configname)
	if err != nil {
		return "", errDecorate(err, "CalcDir")
	}
	return filepath.Join(dir, "calctype."+P.calctype), nil
}

//CalcProperties returns the path to the relaxed properties file of configname and true.
//If the configuration exists but its calculation has not finished it returns an empty
//string and false, without error. Compressed properties files (.gz, .zst) are also found.
func (P *Project) CalcProperties(configname string) (string, bool, error) {
	dir, err := P.CalcDir(configname)
	if err != nil {
		return "", false, errDecorate(err, "CalcProperties")
	}
	for _, v := range propertiesNames {
		path := filepath.Join(dir, v)
		if _, err := os.Stat(path); err == nil {
			return path, true, nil
		}
	}
	return "", false, nil
}

//ConfigNames returns the names of all the configurations in the project, i.e. the
//directories training_data/SCEL*_*_*_*_*_*_*/*, as "SCEL.../N". They are sorted by
//supercell name, and then by configuration index.
func (P *Project) ConfigNames() ([]string, error) {
	td := filepath.Join(P.root, "training_data")
	paths, err := filepath.Glob(filepath.Join(td, "SCEL*_*_*_*_*_*_*", "*"))
	if err != nil {
		return nil, Error{message: err.Error(), filename: td, deco: []string{"ConfigNames"}}
	}
	ret := make([]string, 0, len(paths))
	for _, v := range paths {
		info, err := os.Stat(v)
		if err != nil || !info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(td, v)
		if err != nil {
			continue
		}
		ret = append(ret, filepath.ToSlash(rel))
	}
	sort.Slice(ret, func(i, j int) bool { return configLess(ret[i], ret[j]) })
	return ret, nil
}

func configLess(a, b string) bool {
	sa, ca, _ := strings.Cut(a, "/")
	sb, cb, _ := strings.Cut(b, "/")
	if sa != sb {
		return sa < sb
	}
	ia, erra := strconv.Atoi(ca)
	ib, errb := strconv.Atoi(cb)
	if erra == nil && errb == nil {
		return ia < ib
	}
	return ca < cb
}

func splitName(configname string) (string, string, error) {
	parts := strings.Split(configname, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", Error{message: fmt.Sprintf("malformed configuration name %q, expected \"<scel>/<index>\"", configname), deco: []string{"splitName"}}
	}
	return parts[0], parts[1], nil
}

func mustExist(path, caller string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", Error{message: "file not found", filename: path, missing: true, deco: []string{caller}}
	}
	return path, nil
}

//Error is the error type for this package.
type Error struct {
	message  string
	filename string
	missing  bool
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return "casmfs: " + err.message
	}
	return fmt.Sprintf("casmfs: %s: %s", err.filename, err.message)
}

//Is makes missing file errors match fs.ErrNotExist.
func (err Error) Is(target error) bool {
	return err.missing && target == fs.ErrNotExist
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is always true, since a missing file that is allowed to be missing is not
//reported as an error.
func (err Error) Critical() bool { return true }

//FileName returns the path that caused the error, if any.
func (err Error) FileName() string { return err.filename }

//Missing returns true if the error is due to a file that doesn't exist.
func (err Error) Missing() bool { return err.missing }

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}
