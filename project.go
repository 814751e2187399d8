/*
 * project.go, part of primbin.
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

//ProjectFS gives the paths to the files of a CASM project. It is implemented
//by casmfs.Project.
type ProjectFS interface {
	//Prim returns the path to the prim.json file, or an error if it doesn't exist.
	Prim() (string, error)
	//CalcProperties returns the path to the relaxed properties file of the configuration
	//configname, and false if the calculation has not finished.
	CalcProperties(configname string) (string, bool, error)
	//ConfigNames returns the names of all the configurations in the project.
	ConfigNames() ([]string, error)
}

//LoadPrototype reads the prim of the project fs.
func LoadPrototype(fs ProjectFS) (*Prototype, error) {
	name, err := fs.Prim()
	if err != nil {
		return nil, err
	}
	rec, err := ReadPrototype(name)
	if err != nil {
		return nil, errDecorate(err, "LoadPrototype")
	}
	P, err := BuildPrototype(rec)
	if err != nil {
		return nil, errDecorate(err, "LoadPrototype")
	}
	return P, nil
}

//LoadMapper returns a Mapper that uses the prim of the project fs as its reference structure.
func LoadMapper(fs ProjectFS, engine Engine, useSymmetry ...bool) (*Mapper, error) {
	P, err := LoadPrototype(fs)
	if err != nil {
		return nil, errDecorate(err, "LoadMapper")
	}
	return P.Mapper(engine, useSymmetry...)
}

//LoadCandidate returns the relaxed structure of the configuration configname of fs, or
//an absent candidate if the calculation has not finished. Errors name the configuration.
func LoadCandidate(fs ProjectFS, configname string) (Candidate, error) {
	path, ok, err := fs.CalcProperties(configname)
	if err != nil {
		return Absent(configname), err
	}
	if !ok {
		return Absent(configname), nil
	}
	S, err := ReadStructure(path)
	if err != nil {
		return Absent(configname), WithConfig(errDecorate(err, "LoadCandidate"), configname)
	}
	return Present(S, configname), nil
}

//LoadCandidates loads the relaxed structures of the configurations confignames of fs
//(all of them if confignames is nil). Configurations without a finished calculation give absent
//candidates. It stops at the first configuration that can't be read. Callers that want to skip
//broken configurations instead can use LoadCandidate on each.
func LoadCandidates(fs ProjectFS, confignames []string) ([]Candidate, error) {
	var err error
	if confignames == nil {
		confignames, err = fs.ConfigNames()
		if err != nil {
			return nil, err
		}
	}
	ret := make([]Candidate, len(confignames))
	for i, v := range confignames {
		ret[i], err = LoadCandidate(fs, v)
		if err != nil {
			return nil, errDecorate(err, "LoadCandidates")
		}
	}
	return ret, nil
}
