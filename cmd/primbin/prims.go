/*
 * prims.go, part of primbin.
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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/primbin"
	"github.com/spf13/cobra"
)

var primsCmd = &cobra.Command{
	Use:   "prims",
	Short: "Show the prim of each project",
	Long: `prims prints, for each project, the title of its prim and, for each site, its
Cartesian coordinates, the species that realizes it and the species allowed in it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrims(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(primsCmd)
}

type primSite struct {
	Coordinate []float64 `json:"coordinate"`
	Species    string    `json:"species"`
	Allowed    []string  `json:"allowed"`
}

type primOutput struct {
	Project string     `json:"project"`
	Title   string     `json:"title"`
	Volume  float64    `json:"volume"`
	Sites   []primSite `json:"sites"`
}

func runPrims(w io.Writer, C *Config) error {
	projects, _, err := C.ProjectList()
	if err != nil {
		return err
	}
	out := make([]primOutput, len(projects))
	for i, p := range projects {
		P, err := primbin.LoadPrototype(p)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.Name(), err)
		}
		out[i] = primOutput{Project: p.Name(), Title: P.Title, Volume: P.Structure.Lattice().Volume(), Sites: make([]primSite, P.Structure.Len())}
		for j := range out[i].Sites {
			s := P.Structure.Site(j)
			out[i].Sites[j] = primSite{Coordinate: s.Cart(), Species: s.Species, Allowed: P.Allowed[j]}
		}
	}
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, v := range out {
		fmt.Fprintf(w, "%s: %s, %d sites, volume %.4f\n", v.Project, v.Title, len(v.Sites), v.Volume)
		for j, s := range v.Sites {
			fmt.Fprintf(w, "  %3d %9.5f %9.5f %9.5f  %-3s [%s]\n", j, s.Coordinate[0], s.Coordinate[1], s.Coordinate[2], s.Species, strings.Join(s.Allowed, " "))
		}
	}
	return nil
}
