/*
 * root.go, part of primbin.
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
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	envFile    string
	jsonOutput bool
	//Project flags, shared by the commands that take projects.
	projectFlags []string
	cfg          *Config
)

var rootCmd = &cobra.Command{
	Use:   "primbin",
	Short: "Rank how well relaxed CASM configurations map onto reference prims",
	Long: `primbin maps the relaxed structure of each configuration of a CASM project onto the
prim of each of several projects, and ranks the prims from the best to the worst fit.

Projects can be given with --project root[:name[:calctype]] or in a YAML file (--config).

Environment Variables:
  PRIMBIN_MAPPER  Mapping program used when none is configured (default: casm-map-json)

Variables in the file given by --env-file (default .env) are loaded if it exists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return err
		}
		return applyProjectFlags(cfg)
	},
}

//Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables to load, if present")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringArrayVarP(&projectFlags, "project", "p", nil, "CASM project as root[:name[:calctype]] (repeatable, replaces the projects in the configuration file)")
}

//applyProjectFlags replaces the projects in C with those given as flags, if any.
func applyProjectFlags(C *Config) error {
	if len(projectFlags) == 0 {
		return nil
	}
	C.Projects = C.Projects[:0]
	for _, v := range projectFlags {
		p, err := ParseProject(v)
		if err != nil {
			return err
		}
		C.Projects = append(C.Projects, p)
	}
	return nil
}
