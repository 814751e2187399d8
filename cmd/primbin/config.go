/*
 * config.go, part of primbin.
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

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rmera/primbin"
	"github.com/rmera/primbin/casmfs"
	"github.com/rmera/primbin/mapexec"
	"gopkg.in/yaml.v3"
)

//Config is the content of a primbin YAML file. Command line flags override it.
//
//	reference: NiAl-FCC
//	projects:
//	  - root: ./NiAl
//	    name: NiAl-FCC
//	  - root: ./NiAl-B2
//	    calctype: PBE
//	engine:
//	  command: casm-map-json
//	  timeout: 2m
//	cpus: 4
type Config struct {
	Reference          string          `yaml:"reference"` //name of the project whose configurations are ranked
	Projects           []ProjectConfig `yaml:"projects"`
	Engine             EngineConfig    `yaml:"engine"`
	UseCrystalSymmetry *bool           `yaml:"use_crystal_symmetry"`
	Cpus               int             `yaml:"cpus"`
	Graceful           bool            `yaml:"graceful"`
}

//ProjectConfig describes one CASM project.
type ProjectConfig struct {
	Root     string `yaml:"root"`
	Name     string `yaml:"name"`
	CalcType string `yaml:"calctype"`
}

//EngineConfig describes the external mapping program.
type EngineConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Env     []string `yaml:"env"`
	Timeout string   `yaml:"timeout"` //a Go duration, such as "90s"
}

//LoadConfig reads the YAML file path. An empty path gives an empty configuration.
func LoadConfig(path string) (*Config, error) {
	C := new(Config)
	if path == "" {
		return C, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, C); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	for i, v := range C.Projects {
		if v.Root == "" {
			return nil, fmt.Errorf("%s: project %d has no root", path, i)
		}
	}
	return C, nil
}

//ParseProject parses a project given as root[:name[:calctype]].
func ParseProject(s string) (ProjectConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return ProjectConfig{}, fmt.Errorf("malformed project %q, expected root[:name[:calctype]]", s)
	}
	ret := ProjectConfig{Root: parts[0]}
	if len(parts) > 1 {
		ret.Name = parts[1]
	}
	if len(parts) > 2 {
		ret.CalcType = parts[2]
	}
	return ret, nil
}

//Project returns the casmfs.Project described by P.
func (P ProjectConfig) Project() *casmfs.Project {
	ret := casmfs.New(P.Root, P.Name)
	ret.CalcType(P.CalcType)
	return ret
}

//NewEngine returns the mapping engine described by E.
func (E EngineConfig) NewEngine() (*mapexec.Engine, error) {
	ret := mapexec.New(E.Command)
	ret.Args(E.Args)
	ret.Env(E.Env)
	if E.Timeout != "" {
		t, err := time.ParseDuration(E.Timeout)
		if err != nil || t < 0 {
			return nil, fmt.Errorf("bad engine timeout %q", E.Timeout)
		}
		ret.Timeout(t)
	}
	return ret, nil
}

//Symmetry returns whether crystal symmetry should be used in the mappings. It is by default.
func (C *Config) Symmetry() bool {
	return C.UseCrystalSymmetry == nil || *C.UseCrystalSymmetry
}

//RankOptions returns the options for primbin.Rank.
func (C *Config) RankOptions() *primbin.RankOptions {
	o := primbin.DefaultRankOptions()
	if C.Cpus > 0 {
		o.Cpus = C.Cpus
	}
	o.Graceful = C.Graceful
	return o
}

//ProjectList returns the projects in C, and the index of the reference project among them.
//The reference is the first project unless C.Reference names another. Project
//names must be unique.
func (C *Config) ProjectList() ([]*casmfs.Project, int, error) {
	if len(C.Projects) == 0 {
		return nil, -1, fmt.Errorf("no projects given")
	}
	ret := make([]*casmfs.Project, len(C.Projects))
	ref := -1
	seen := make(map[string]bool, len(C.Projects))
	for i, v := range C.Projects {
		ret[i] = v.Project()
		name := ret[i].Name()
		if seen[name] {
			return nil, -1, fmt.Errorf("duplicate project name %q", name)
		}
		seen[name] = true
		if name == C.Reference {
			ref = i
		}
	}
	if C.Reference == "" {
		ref = 0
	}
	if ref < 0 {
		return nil, -1, fmt.Errorf("reference project %q is not among the projects", C.Reference)
	}
	return ret, ref, nil
}
