/*
 * opt.go, part of molkit.
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

	"github.com/rmera/molkit"
	"github.com/rmera/molkit/engine"
	"github.com/spf13/cobra"
)

var (
	optEngine    string
	optMethod    string
	optOut       string
	optMaxCycles int
	optConjugate bool
	optCharge    int
	optMulti     int
	optNoMetals  bool
)

var optCmd = &cobra.Command{
	Use:   "opt <geometry file>",
	Short: "Geometry optimization with xtb or GULP",
	Long: `opt optimizes the given geometry and writes the result as an xyz
file. With --drop-metals, transition metals are replaced by constrained
hydrogens before a force-field optimization, since UFF and friends have
no parameters for them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mol, err := loadMolecule(args[0], optCharge, optMulti)
		if err != nil {
			return err
		}
		if len(mol.Bonds()) == 0 {
			if err := molkit.AssignBonds(mol.Coords[0], mol.Topology); err != nil {
				return err
			}
		}
		calc := &engine.Calc{
			Method:    optMethod,
			Optimize:  true,
			MaxCycles: optMaxCycles,
			Conjugate: optConjugate,
		}
		work := mol
		if optNoMetals {
			top, constrained := molkit.WithoutMetals(mol.Topology)
			if len(constrained) > 0 {
				calc.CConstraints = constrained
				work, err = molkit.NewMolecule(top, mol.Coords)
				if err != nil {
					return err
				}
				logger.Infow("metals replaced by constrained hydrogens", "atoms", constrained)
			}
		}
		var h engine.Handle
		switch optEngine {
		case "xtb":
			xtb := engine.NewXTBHandle()
			xtb.SetCommand(cfg.XTB)
			if cfg.NCPU > 0 {
				xtb.SetnCPU(cfg.NCPU)
			}
			h = xtb
		case "gulp":
			gulp := engine.NewGulpHandle()
			gulp.SetCommand(cfg.Gulp)
			gulp.SetLibrary(cfg.GulpLibrary)
			h = gulp
		default:
			return fmt.Errorf("unknown engine %q, options are xtb and gulp", optEngine)
		}
		h.SetName(jobName(args[0]))
		if err := h.BuildInput(work.Coords[0], work, calc); err != nil {
			return err
		}
		logger.Infow("optimizing", "engine", optEngine, "file", args[0])
		if err := h.Run(true); err != nil {
			return err
		}
		geo, err := h.OptimizedGeometry(work)
		if err != nil {
			return err
		}
		e, err := h.Energy()
		if err != nil {
			return err
		}
		//the optimized coordinates go with the original atoms, metals
		//included
		if err := molkit.XYZWrite(optOut, geo, mol); err != nil {
			return err
		}
		logger.Infow("optimization done", "energy", e, "out", optOut)
		fmt.Printf("%12.4f kJ/mol  ->  %s\n", e, optOut)
		return nil
	},
}

func init() {
	optCmd.Flags().StringVar(&optEngine, "engine", "xtb", "engine to use: xtb or gulp")
	optCmd.Flags().StringVar(&optMethod, "method", "gfn2", "xtb method: gfn0, gfn1, gfn2 or gfnff")
	optCmd.Flags().StringVarP(&optOut, "out", "o", "optimized.xyz", "output xyz file")
	optCmd.Flags().IntVar(&optMaxCycles, "maxcycles", 0, "maximum optimization cycles (0 for the engine default)")
	optCmd.Flags().BoolVar(&optConjugate, "conjugate", false, "conjugate gradient instead of steepest descent (gulp)")
	optCmd.Flags().IntVar(&optCharge, "charge", 0, "total charge")
	optCmd.Flags().IntVar(&optMulti, "multi", 1, "spin multiplicity")
	optCmd.Flags().BoolVar(&optNoMetals, "drop-metals", false, "replace transition metals by constrained hydrogens")
}
