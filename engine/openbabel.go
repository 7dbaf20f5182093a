/*
 * openbabel.go, part of molkit.
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

package engine

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/molkit"
	v3 "github.com/rmera/molkit/v3"
)

//You need the Open Babel package (obabel and obenergy) to use this
//wrapper. Please cite J. Cheminf. 3, 33 (2011) if you use it.

// obForcefields are the force fields Open Babel ships with. mmff94
// energies come out in kcal/mol, the others in kJ/mol.
var obForcefields = []string{"uff", "gaff", "ghemical", "mmff94"}

// OBHandle wraps Open Babel for force-field single-point energies
// (obenergy) and minimizations (obabel --minimize).
type OBHandle struct {
	command       string
	energyCommand string
	inputname     string
	workdir       string
	forcefield    string
	optimize      bool
	conjugate     bool
	steps         int
}

func NewOBHandle() *OBHandle {
	run := new(OBHandle)
	run.SetDefaults()
	return run
}

func (O *OBHandle) SetName(name string) {
	O.inputname = name
}

func (O *OBHandle) SetCommand(name string) {
	O.command = name
}

// SetEnergyCommand sets the obenergy executable.
func (O *OBHandle) SetEnergyCommand(name string) {
	O.energyCommand = name
}

// SetWorkDir sets the directory where the calculation runs.
func (O *OBHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

func (O *OBHandle) SetDefaults() {
	O.command = os.ExpandEnv("obabel")
	O.energyCommand = os.ExpandEnv("obenergy")
	O.forcefield = "uff"
	O.steps = 2500
}

// BuildInput writes the molecule as a V2000 mol file, Open Babel's
// most reliable input for force-field work, and records the
// calculation options.
func (O *OBHandle) BuildInput(coords *v3.Matrix, atoms molkit.AtomMultiCharger, Q *Calc) error {
	errid := "OBHandle/BuildInput"
	if O.inputname == "" {
		O.inputname = "molkit"
	}
	if atoms == nil || coords == nil {
		return fmt.Errorf("%s: nil atoms or coordinates", errid)
	}
	if Q.Forcefield != "" {
		if !isInString(obForcefields, strings.ToLower(Q.Forcefield)) {
			return fmt.Errorf("%s: force field %q not available, options are %s", errid, Q.Forcefield, strings.Join(obForcefields, ", "))
		}
		O.forcefield = strings.ToLower(Q.Forcefield)
	}
	O.optimize = Q.Optimize
	O.conjugate = Q.Conjugate
	if Q.MaxCycles > 0 {
		O.steps = Q.MaxCycles
	}
	var bonds []*molkit.Bond
	if bonder, ok := atoms.(Bonder); ok {
		bonds = bonder.Bonds()
	}
	err := molkit.MOLWrite(O.path(O.inputname+".mol"), coords, atoms, bonds)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

func (O *OBHandle) path(file string) string {
	if O.workdir == "" {
		return file
	}
	return O.workdir + "/" + file
}

// Run runs obenergy, or obabel with --minimize if an optimization was
// requested.
func (O *OBHandle) Run(wait bool) error {
	errid := "OBHandle/Run"
	var com string
	if O.optimize {
		if err := lookProgram(O.command); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		method := "--sd"
		if O.conjugate {
			method = "--cg"
		}
		com = fmt.Sprintf("%s %s.mol -O %s_opt.xyz --minimize --ff %s --steps %d %s > %s.obout 2>&1",
			O.command, O.inputname, O.inputname, O.forcefield, O.steps, method, O.inputname)
	} else {
		if err := lookProgram(O.energyCommand); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		com = fmt.Sprintf("%s -ff %s %s.mol > %s.obout 2>&1",
			O.energyCommand, O.forcefield, O.inputname, O.inputname)
	}
	if err := shRun(com, O.workdir, wait); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Energy returns the force-field energy of the last run, in kJ/mol.
// Open Babel reports mmff94 energies in kcal/mol; those are
// converted.
func (O *OBHandle) Energy() (float64, error) {
	errid := "OBHandle/Energy"
	line := searchBackwards("TOTAL ENERGY", O.path(O.inputname+".obout"))
	if line == "" {
		return 0, fmt.Errorf("%s: no energy found in output", errid)
	}
	split := strings.Fields(line)
	if len(split) < 5 {
		return 0, fmt.Errorf("%s: malformed energy line %q", errid, line)
	}
	energy, err := strconv.ParseFloat(split[3], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errid, err)
	}
	if strings.Contains(split[4], "kcal") {
		energy *= molkit.Kcal2KJ
	}
	return energy, nil
}

// OptimizedGeometry reads the minimized geometry of the last
// optimization.
func (O *OBHandle) OptimizedGeometry(atoms molkit.Atomer) (*v3.Matrix, error) {
	errid := "OBHandle/OptimizedGeometry"
	if !O.optimize {
		return nil, fmt.Errorf("%s: the last run was a single point", errid)
	}
	mol, err := molkit.XYZRead(O.path(O.inputname + "_opt.xyz"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol.Coords[0], nil
}
