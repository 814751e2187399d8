/*
 * rank.go, part of primbin.
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
	"log"

	"github.com/rmera/primbin"
	"github.com/rmera/primbin/casmfs"
	"github.com/rmera/primbin/rankplot"
	"github.com/rmera/primbin/rankstat"
	"github.com/spf13/cobra"
)

var (
	referenceFlag string
	engineFlag    string
	cpusFlag      int
	gracefulFlag  bool
	noSymmetry    bool
	statsFlag     bool
	plotFile      string
	costPlotFile  string
	costPrim      string
	binsFlag      int
)

//newEngine builds the mapping engine from the configuration. Tests replace it.
var newEngine = func(E EngineConfig) (primbin.Engine, error) {
	return E.NewEngine()
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the prims of the projects for each configuration of the reference project",
	Long: `rank maps the relaxed structure of every configuration of the reference project onto
the prim of each project, and prints, for each configuration, the indexes of the projects
sorted from the best to the worst fit. Configurations without a finished calculation
get -1 in every position.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRankFlags(cmd, cfg)
		return runRank(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringVar(&referenceFlag, "reference", "", "name of the project whose configurations are ranked (default: the first project)")
	rankCmd.Flags().StringVar(&engineFlag, "engine", "", "mapping program (overrides the configuration and PRIMBIN_MAPPER)")
	rankCmd.Flags().IntVar(&cpusFlag, "cpus", 0, "maximum number of mappings run at the same time (default: all CPUs)")
	rankCmd.Flags().BoolVar(&gracefulFlag, "graceful", false, "treat configurations that fail to load or map as unfinished instead of aborting")
	rankCmd.Flags().BoolVar(&noSymmetry, "no-symmetry", false, "don't use crystal symmetry in the mappings")
	rankCmd.Flags().BoolVar(&statsFlag, "stats", false, "print per-prim statistics")
	rankCmd.Flags().StringVar(&plotFile, "plot", "", "save a bar chart of how often each prim is the best fit to this file")
	rankCmd.Flags().StringVar(&costPlotFile, "cost-plot", "", "save a histogram of the mapping costs onto one prim to this file")
	rankCmd.Flags().StringVar(&costPrim, "cost-prim", "", "project whose prim is used for --cost-plot (default: the reference project)")
	rankCmd.Flags().IntVar(&binsFlag, "bins", 10, "number of bins in the --cost-plot histogram")
}

//applyRankFlags overrides C with the flags that were set.
func applyRankFlags(cmd *cobra.Command, C *Config) {
	f := cmd.Flags()
	if f.Changed("reference") {
		C.Reference = referenceFlag
	}
	if f.Changed("engine") {
		C.Engine.Command = engineFlag
	}
	if f.Changed("cpus") {
		C.Cpus = cpusFlag
	}
	if f.Changed("graceful") {
		C.Graceful = gracefulFlag
	}
	if f.Changed("no-symmetry") {
		sym := !noSymmetry
		C.UseCrystalSymmetry = &sym
	}
}

type configRank struct {
	Name   string     `json:"name"`
	Ranks  []int      `json:"ranks"`
	Scores []*float64 `json:"scores"` //null for unfinished configurations
}

type rankOutput struct {
	Prims          []string            `json:"prims"`
	Configurations []configRank        `json:"configurations"`
	Failures       []string            `json:"failures,omitempty"`
	Summary        []rankstat.Summary  `json:"summary,omitempty"`
	CostPrim       string              `json:"cost_prim,omitempty"`
	CostHistogram  *rankstat.Histogram `json:"cost_histogram,omitempty"`
}

func runRank(w io.Writer, C *Config) error {
	projects, ref, err := C.ProjectList()
	if err != nil {
		return err
	}
	engine, err := newEngine(C.Engine)
	if err != nil {
		return err
	}
	names := make([]string, len(projects))
	oracles := make([]primbin.Oracle, len(projects))
	for i, p := range projects {
		names[i] = p.Name()
		oracles[i], err = primbin.LoadMapper(p, engine, C.Symmetry())
		if err != nil {
			return fmt.Errorf("project %s: %w", p.Name(), err)
		}
	}
	confignames, err := projects[ref].ConfigNames()
	if err != nil {
		return err
	}
	cands, err := loadCandidates(projects[ref], confignames, C.Graceful)
	if err != nil {
		return err
	}
	R, err := primbin.Rank(oracles, cands, C.RankOptions())
	if err != nil {
		return err
	}
	out := rankOutput{Prims: names, Configurations: make([]configRank, len(confignames))}
	scores := R.Scores()
	for i, v := range confignames {
		out.Configurations[i] = configRank{Name: v, Ranks: R.Row(i), Scores: make([]*float64, len(scores[i]))}
		if R.Absent(i) {
			continue
		}
		for j := range scores[i] {
			out.Configurations[i].Scores[j] = &scores[i][j]
		}
	}
	for _, v := range R.Failures {
		out.Failures = append(out.Failures, v.Err.Error())
	}
	if statsFlag || plotFile != "" {
		out.Summary = rankstat.Summarize(R, names)
	}
	if plotFile != "" {
		if err := rankplot.BestCounts(out.Summary, "Best fitting prim", plotFile); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	if costPlotFile != "" {
		j, err := costIndex(names, ref, costPrim)
		if err != nil {
			return err
		}
		out.CostPrim = names[j]
		out.CostHistogram = rankstat.CostHistogram(R, j, binsFlag)
		if err := rankplot.CostHistogram(out.CostHistogram, "Mapping costs onto "+names[j], costPlotFile); err != nil {
			return fmt.Errorf("cost plot: %w", err)
		}
	}
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintln(w, names)
	for _, v := range out.Configurations {
		fmt.Fprintln(w, v.Name, v.Ranks)
	}
	if statsFlag {
		fmt.Fprintln(w, rankstat.Table(out.Summary))
	}
	if out.CostHistogram != nil {
		fmt.Fprintf(w, "costs onto %s\n%s\n", out.CostPrim, out.CostHistogram)
	}
	return nil
}

//costIndex returns the index of the project called name in names, or ref if
//name is empty.
func costIndex(names []string, ref int, name string) (int, error) {
	if name == "" {
		return ref, nil
	}
	for i, v := range names {
		if v == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("cost-prim: no project named %q", name)
}

//loadCandidates loads the relaxed structures of confignames. In graceful mode a
//configuration that can't be read is logged and taken as unfinished.
func loadCandidates(P *casmfs.Project, confignames []string, graceful bool) ([]primbin.Candidate, error) {
	if !graceful {
		return primbin.LoadCandidates(P, confignames)
	}
	ret := make([]primbin.Candidate, len(confignames))
	for i, v := range confignames {
		var err error
		ret[i], err = primbin.LoadCandidate(P, v)
		if err != nil {
			log.Printf("primbin: skipping configuration %s: %v", v, err)
		}
	}
	return ret, nil
}
