/*
 * energy.go, part of molkit.
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
	"github.com/rmera/molkit/engine"
	"github.com/rmera/molkit/mae"
	"github.com/spf13/cobra"
)

var (
	energyEngine  string
	energyMethod  string
	energyFF      string
	energySolvent string
	energyModel   string
	energyCharge  int
	energyMulti   int
)

// loadMolecule reads an xyz or mae file and sets charge and
// multiplicity.
func loadMolecule(path string, charge, multi int) (*molkit.Molecule, error) {
	var mol *molkit.Molecule
	var err error
	if strings.HasSuffix(path, ".mae") {
		mol, err = mae.MoleculeFromFile(path)
	} else {
		mol, err = molkit.XYZRead(path)
	}
	if err != nil {
		return nil, err
	}
	mol.SetCharge(charge)
	mol.SetMulti(multi)
	return mol, nil
}

var energyCmd = &cobra.Command{
	Use:   "energy <geometry file>",
	Short: "Single-point energy with xtb or Open Babel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mol, err := loadMolecule(args[0], energyCharge, energyMulti)
		if err != nil {
			return err
		}
		calc := &engine.Calc{
			Method:       energyMethod,
			Forcefield:   energyFF,
			Solvent:      energySolvent,
			SolventModel: energyModel,
		}
		var h engine.Handle
		switch energyEngine {
		case "xtb":
			xtb := engine.NewXTBHandle()
			xtb.SetCommand(cfg.XTB)
			if cfg.NCPU > 0 {
				xtb.SetnCPU(cfg.NCPU)
			}
			h = xtb
		case "openbabel":
			ob := engine.NewOBHandle()
			ob.SetCommand(cfg.Obabel)
			ob.SetEnergyCommand(cfg.Obenergy)
			if err := molkit.AssignBonds(mol.Coords[0], mol.Topology); err != nil {
				return err
			}
			h = ob
		default:
			return fmt.Errorf("unknown engine %q, options are xtb and openbabel", energyEngine)
		}
		h.SetName(jobName(args[0]))
		if err := h.BuildInput(mol.Coords[0], mol, calc); err != nil {
			return err
		}
		logger.Infow("running single point", "engine", energyEngine, "file", args[0])
		if err := h.Run(true); err != nil {
			if engine.IsNotInstalled(err) {
				logger.Errorw("engine not available", "engine", energyEngine)
			}
			return err
		}
		e, err := h.Energy()
		if err != nil {
			return err
		}
		fmt.Printf("%12.4f kJ/mol\n", e)
		return nil
	},
}

// jobName derives the calculation name from the geometry file name.
func jobName(path string) string {
	name := path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

func init() {
	energyCmd.Flags().StringVar(&energyEngine, "engine", "xtb", "engine to use: xtb or openbabel")
	energyCmd.Flags().StringVar(&energyMethod, "method", "gfn2", "xtb method: gfn0, gfn1, gfn2 or gfnff")
	energyCmd.Flags().StringVar(&energyFF, "ff", "uff", "Open Babel force field: uff, gaff, ghemical or mmff94")
	energyCmd.Flags().StringVar(&energySolvent, "solvent", "", "implicit solvent (xtb only)")
	energyCmd.Flags().StringVar(&energyModel, "solvent-model", "gbsa", "xtb solvation model: gbsa or alpb")
	energyCmd.Flags().IntVar(&energyCharge, "charge", 0, "total charge")
	energyCmd.Flags().IntVar(&energyMulti, "multi", 1, "spin multiplicity")
}
