/*
 * extract.go, part of molkit.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
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
	"strings"

	"github.com/rmera/molkit"
	"github.com/rmera/molkit/mae"
	"github.com/spf13/cobra"
)

var (
	extractN    int
	extractPlot string
)

var extractCmd = &cobra.Command{
	Use:   "extract <run-name>",
	Short: "Extract the lowest-energy conformers of a MacroModel search",
	Long: `extract decompresses <run-name>-out.maegz, ranks the conformers it
holds by potential energy, and writes the n lowest ones each to its
own .mae file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run := strings.TrimSuffix(args[0], "-out.maegz")
		ex, err := mae.NewExtractor(run, extractN)
		if err != nil {
			return err
		}
		logger.Infow("conformers extracted",
			"run", run,
			"found", len(ex.Energies),
			"extracted", extractN,
			"minEnergy", ex.MinEnergy,
			"best", ex.Path,
		)
		for _, c := range ex.LowestEnergyConformers(extractN) {
			fmt.Printf("conformer %3d  %12.4f kJ/mol\n", c.ID, c.Energy)
		}
		if extractPlot != "" {
			if err := molkit.EnergyPlot(ex.EnergyValues(), extractPlot); err != nil {
				return err
			}
			logger.Infow("energy plot written", "file", extractPlot)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().IntVarP(&extractN, "conformers", "n", 1, "number of conformers to extract")
	extractCmd.Flags().StringVar(&extractPlot, "plot", "", "write a PNG scatter plot of the conformer energies")
}
