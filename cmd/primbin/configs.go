/*
 * configs.go, part of primbin.
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
	"os"

	"github.com/rmera/primbin"
	"github.com/rmera/primbin/xtal"
	"github.com/spf13/cobra"
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List the configurations of the reference project",
	Long: `configs lists the configurations of the reference project, and whether the
calculation of each has finished.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("reference") {
			cfg.Reference = referenceFlag
		}
		return runConfigs(cmd.OutOrStdout(), cfg)
	},
}

var (
	relaxedOut   string
	relaxedTitle string
)

var relaxedCmd = &cobra.Command{
	Use:   "relaxed <configname>",
	Short: "Write the relaxed structure of a configuration as a POSCAR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("reference") {
			cfg.Reference = referenceFlag
		}
		return runRelaxed(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(configsCmd)
	rootCmd.AddCommand(relaxedCmd)
	for _, c := range []*cobra.Command{configsCmd, relaxedCmd} {
		c.Flags().StringVar(&referenceFlag, "reference", "", "name of the project to use (default: the first project)")
	}
	relaxedCmd.Flags().StringVarP(&relaxedOut, "output", "o", "", "output file (default: standard output)")
	relaxedCmd.Flags().StringVar(&relaxedTitle, "title", "", "title line of the POSCAR (default: the configuration name)")
}

type configStatus struct {
	Name        string         `json:"name"`
	Relaxed     bool           `json:"relaxed"`
	Composition map[string]int `json:"composition,omitempty"`
}

func runConfigs(w io.Writer, C *Config) error {
	projects, ref, err := C.ProjectList()
	if err != nil {
		return err
	}
	P := projects[ref]
	names, err := P.ConfigNames()
	if err != nil {
		return err
	}
	out := make([]configStatus, len(names))
	for i, v := range names {
		_, ok, err := P.CalcProperties(v)
		if err != nil {
			return err
		}
		out[i] = configStatus{Name: v, Relaxed: ok}
		//the composition comes from the ideal structure, if there is one.
		if pos, err := P.POS(v); err == nil {
			if S, _, err := xtal.POSCARFileRead(pos); err == nil {
				out[i].Composition = S.Composition()
			}
		}
	}
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintf(w, "%s (%d configurations)\n", P.Name(), len(out))
	for _, v := range out {
		status := "pending"
		if v.Relaxed {
			status = "relaxed"
		}
		fmt.Fprintf(w, "%-30s %s\n", v.Name, status)
	}
	return nil
}

func runRelaxed(w io.Writer, C *Config, configname string) error {
	projects, ref, err := C.ProjectList()
	if err != nil {
		return err
	}
	S, err := loadRelaxed(projects[ref], configname)
	if err != nil {
		return err
	}
	title := relaxedTitle
	if title == "" {
		title = configname
	}
	if relaxedOut != "" {
		return xtal.POSCARFileWrite(S, title, relaxedOut)
	}
	return xtal.POSCARWrite(S, title, w)
}

func loadRelaxed(P primbin.ProjectFS, configname string) (*xtal.Structure, error) {
	c, err := primbin.LoadCandidate(P, configname)
	if err != nil {
		return nil, err
	}
	S, ok := c.Structure()
	if !ok {
		return nil, fmt.Errorf("configuration %s has no finished calculation: %w", configname, os.ErrNotExist)
	}
	return S, nil
}
