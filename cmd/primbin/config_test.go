/*
 * config_test.go, part of primbin.
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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(Te *testing.T) {
	yml := `reference: B2
projects:
  - root: ./NiAl
    name: FCC
  - root: ./NiAl-B2
    name: B2
    calctype: PBE
engine:
  command: /usr/local/bin/mapper
  args: ["--tol", "0.1"]
  timeout: 90s
use_crystal_symmetry: false
cpus: 3
graceful: true
`
	name := filepath.Join(Te.TempDir(), "primbin.yaml")
	if err := os.WriteFile(name, []byte(yml), 0o644); err != nil {
		Te.Fatal(err)
	}
	C, err := LoadConfig(name)
	if err != nil {
		Te.Fatal(err)
	}
	if C.Symmetry() {
		Te.Error("Symmetry should be off")
	}
	o := C.RankOptions()
	if o.Cpus != 3 || !o.Graceful {
		Te.Errorf("Wrong rank options %v", o)
	}
	projects, ref, err := C.ProjectList()
	if err != nil {
		Te.Fatal(err)
	}
	if ref != 1 || projects[1].CalcType() != "PBE" || projects[0].Name() != "FCC" {
		Te.Errorf("Wrong projects, reference %d", ref)
	}
	E, err := C.Engine.NewEngine()
	if err != nil {
		Te.Fatal(err)
	}
	if E.Command() != "/usr/local/bin/mapper" || E.Timeout() != 90*time.Second {
		Te.Errorf("Wrong engine %s %v", E.Command(), E.Timeout())
	}
	if d := cmp.Diff([]string{"--tol", "0.1"}, E.Args()); d != "" {
		Te.Errorf("Wrong engine arguments (-want +got):\n%s", d)
	}
	C.Reference = "L12"
	if _, _, err := C.ProjectList(); err == nil {
		Te.Error("An unknown reference should be an error")
	}
}

func TestConfigDefaults(Te *testing.T) {
	C, err := LoadConfig("")
	if err != nil {
		Te.Fatal(err)
	}
	if !C.Symmetry() || C.RankOptions().Cpus < 1 || C.RankOptions().Graceful {
		Te.Error("Wrong defaults")
	}
	if _, _, err := C.ProjectList(); err == nil {
		Te.Error("No projects should be an error")
	}
	if _, err := LoadConfig(filepath.Join(Te.TempDir(), "nothere.yaml")); err == nil {
		Te.Error("A missing configuration file should be an error")
	}
	E := EngineConfig{Timeout: "soon"}
	if _, err := E.NewEngine(); err == nil {
		Te.Error("A bad timeout should be an error")
	}
}

func TestProjectListNames(Te *testing.T) {
	C := &Config{Reference: "FCC", Projects: []ProjectConfig{{Root: "./a/NiAl", Name: "FCC"}, {Root: "./b/NiAl-B2"}}}
	P, ref, err := C.ProjectList()
	if err != nil {
		Te.Fatal(err)
	}
	if len(P) != 2 || ref != 0 || P[1].Name() != "NiAl-B2" {
		Te.Errorf("Wrong projects or reference %d", ref)
	}
	//Same base name from different roots.
	C.Projects = append(C.Projects, ProjectConfig{Root: "./c/NiAl-B2"})
	if _, _, err := C.ProjectList(); err == nil || !strings.Contains(err.Error(), "NiAl-B2") {
		Te.Errorf("Duplicate project names should be rejected, got %v", err)
	}
	C.Projects = []ProjectConfig{{Root: "./a/NiAl"}, {Root: "./b/NiAl", Name: "FCC"}, {Root: "./c/Other", Name: "FCC"}}
	if _, _, err := C.ProjectList(); err == nil {
		Te.Error("Two projects named FCC should not silently pick the last as reference")
	}
}

func TestParseProject(Te *testing.T) {
	cases := map[string]ProjectConfig{
		"./NiAl":             {Root: "./NiAl"},
		"./NiAl:FCC":         {Root: "./NiAl", Name: "FCC"},
		"/data/NiAl:FCC:PBE": {Root: "/data/NiAl", Name: "FCC", CalcType: "PBE"},
		"/data/NiAl::PBE":    {Root: "/data/NiAl", CalcType: "PBE"},
	}
	for k, v := range cases {
		p, err := ParseProject(k)
		if err != nil {
			Te.Errorf("%s: %v", k, err)
			continue
		}
		if p != v {
			Te.Errorf("%s: got %v want %v", k, p, v)
		}
	}
	for _, v := range []string{"", ":FCC", "a:b:c:d"} {
		if _, err := ParseProject(v); err == nil {
			Te.Errorf("%q should not parse", v)
		}
	}
}
