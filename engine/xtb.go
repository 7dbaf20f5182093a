/*
 * xtb.go, part of molkit.
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
	"runtime"
	"strconv"
	"strings"

	"github.com/rmera/molkit"
	v3 "github.com/rmera/molkit/v3"
)

//You need the xtb program, from Prof. Stefan Grimme's group, to use
//this wrapper. Please cite the xtb references if you use it.

// XTBHandle wraps the xtb semiempirical tight-binding program.
type XTBHandle struct {
	command   string
	inputname string
	workdir   string
	nCPU      int
	options   []string
	gfnff     bool
}

func NewXTBHandle() *XTBHandle {
	run := new(XTBHandle)
	run.SetDefaults()
	return run
}

// SetnCPU sets the number of CPUs to be used.
func (O *XTBHandle) SetnCPU(cpu int) {
	O.nCPU = cpu
}

func (O *XTBHandle) Command() string {
	return O.command
}

func (O *XTBHandle) SetName(name string) {
	O.inputname = name
}

func (O *XTBHandle) SetCommand(name string) {
	O.command = name
}

// SetWorkDir sets the directory where the calculation runs.
func (O *XTBHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

func (O *XTBHandle) SetDefaults() {
	O.command = os.ExpandEnv("xtb")
	cpu := runtime.NumCPU() / 2
	O.nCPU = cpu
}

// xtbSolvents lists the implicit solvents available for each
// combination of GFN parameterization and solvation model. GFN0
// supports no implicit solvation at all.
var xtbSolvents = map[string][]string{
	"gfn1 gbsa": {"acetone", "acetonitrile", "benzene", "ch2cl2",
		"chcl3", "cs2", "dmso", "ether", "h2o", "methanol", "thf",
		"toluene", "water"},
	"gfn1 alpb": {"acetone", "acetonitrile", "aniline", "benzaldehyde",
		"benzene", "ch2cl2", "chcl3", "cs2", "dioxane", "dmf", "dmso",
		"ether", "ethylacetate", "furane", "hexandecane", "hexane",
		"h2o", "nitromethane", "octanol", "octanol (wet)", "phenol",
		"thf", "toluene", "water"},
	"gfn2 gbsa": {"acetone", "acetonitrile", "benzene", "ch2cl2",
		"chcl3", "cs2", "dmso", "ether", "hexane", "methanol", "h2o",
		"thf", "toluene", "water"},
	"gfn2 alpb": {"acetone", "acetonitrile", "aniline", "benzaldehyde",
		"benzene", "ch2cl2", "chcl3", "cs2", "dioxane", "dmf", "dmso",
		"ether", "ethylacetate", "furane", "hexandecane", "hexane",
		"h2o", "nitromethane", "octanol", "octanol (wet)", "phenol",
		"thf", "toluene", "water"},
}

// ValidXTBSolvent returns whether xtb supports the given implicit
// solvent for the given GFN parameterization ("gfn0", "gfn1", "gfn2"
// or "gfnff") and solvation model ("gbsa" or "alpb").
func ValidXTBSolvent(method, model, solvent string) bool {
	if method == "gfn0" {
		return false
	}
	if method == "gfnff" {
		method = "gfn2" //gfnff takes the gfn2 solvent set
	}
	valid, ok := xtbSolvents[method+" "+model]
	if !ok {
		return false
	}
	return isInString(valid, strings.ToLower(solvent))
}

// BuildInput builds an input for xtb. Only singlet and doublet
// multiplicities have been tested. Constrained optimizations fix the
// requested atoms with a large force constant.
func (O *XTBHandle) BuildInput(coords *v3.Matrix, atoms molkit.AtomMultiCharger, Q *Calc) error {
	errid := "XTBHandle/BuildInput"
	if O.inputname == "" {
		O.inputname = "molkit"
	}
	if atoms == nil || coords == nil {
		return fmt.Errorf("%s: nil atoms or coordinates", errid)
	}
	err := molkit.XYZWrite(O.path(O.inputname+".xyz"), coords, atoms)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	xcontrol, err := os.Create(O.path(O.inputname + ".inp"))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer xcontrol.Close()
	O.options = make([]string, 0, 6)
	O.options = append(O.options, O.command)
	if Q.Method == "gfnff" {
		O.gfnff = true
	}
	O.options = append(O.options, O.inputname+".xyz")
	O.options = append(O.options, fmt.Sprintf("-c %d", atoms.Charge()))
	O.options = append(O.options, fmt.Sprintf("-u %d", atoms.Multi()-1))
	if O.nCPU > 1 {
		O.options = append(O.options, fmt.Sprintf("-P %d", O.nCPU))
	}
	if !isInString([]string{"gfn0", "gfn1", "gfn2", "gfnff"}, Q.Method) {
		O.options = append(O.options, "--gfn 2") //default method
	} else if Q.Method != "gfnff" {
		m := strings.ReplaceAll(Q.Method, "gfn", "")
		O.options = append(O.options, "--gfn "+m)
	}
	if Q.Solvent != "" {
		model := Q.SolventModel
		if model == "" {
			model = "gbsa"
		}
		if !ValidXTBSolvent(Q.Method, model, Q.Solvent) {
			return fmt.Errorf("%s: solvent %q not available for %s with the %s model", errid, Q.Solvent, Q.Method, model)
		}
		O.options = append(O.options, "--"+model+" "+strings.ToLower(Q.Solvent))
	}
	if Q.CConstraints != nil {
		fixed := "atoms: "
		for _, v := range Q.CConstraints {
			fixed = fixed + strconv.Itoa(v+1) + ", " //xtb wants 1-based indexes
		}
		fixed = strings.TrimRight(fixed, ", ") + "\n"
		xcontrol.Write([]byte("$fix\n"))
		xcontrol.Write([]byte("force constant=10000\n"))
		xcontrol.Write([]byte(fixed))
		xcontrol.Write([]byte("$end\n"))
	}
	if Q.Optimize {
		O.options = append(O.options, "-o normal")
	}
	if Q.MDOpts != nil {
		O.options = append(O.options, "--omd")
		//gfnff needs a shorter timestep and heavier hydrogens
		if O.gfnff {
			xcontrol.Write([]byte(fmt.Sprintf("$md\n temp=%5.3f\n time=%d\n velo=false\n nvt=true\n step=2.0\n hmass=4.0\n shake=0\n$end\n", Q.MDOpts.Temperature, int(Q.MDOpts.Production))))
		} else {
			xcontrol.Write([]byte(fmt.Sprintf("$md\n temp=%5.3f\n time=%d\n velo=false\n nvt=true\n$end\n", Q.MDOpts.Temperature, int(Q.MDOpts.Production))))
		}
	}
	return nil
}

func (O *XTBHandle) path(file string) string {
	if O.workdir == "" {
		return file
	}
	return O.workdir + "/" + file
}

// Run runs the calculation set up previously. It waits or not for the
// result depending on wait. Not waiting only works on unix-compatible
// systems, as it uses sh and nohup.
func (O *XTBHandle) Run(wait bool) error {
	errid := "XTBHandle/Run"
	if err := lookProgram(O.command); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	var com string
	if O.gfnff {
		com = fmt.Sprintf(" --gfnff %s.xyz --input %s.inp %s > %s.out 2>&1", O.inputname, O.inputname, strings.Join(O.options[2:], " "), O.inputname)
	} else {
		com = fmt.Sprintf(" %s.xyz --input %s.inp %s > %s.out 2>&1", O.inputname, O.inputname, strings.Join(O.options[2:], " "), O.inputname)
	}
	err := shRun(O.command+com, O.workdir, wait)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	os.Remove(O.path("xtbrestart"))
	return nil
}

// OptimizedGeometry reads the latest geometry from an xtb
// optimization. It doesn't actually need the Atomer, but takes it so
// XTBHandle satisfies the Handle interface. Running several xtb
// calculations in the same directory will fail, as the output always
// has the same name.
func (O *XTBHandle) OptimizedGeometry(atoms molkit.Atomer) (*v3.Matrix, error) {
	errid := "XTBHandle/OptimizedGeometry"
	if !O.normalTermination() {
		return nil, fmt.Errorf("%s: calculation didn't end normally", errid)
	}
	mol, err := molkit.XYZRead(O.path("xtbopt.xyz"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol.Coords[0], nil
}

// normalTermination checks that an xtb calculation ended normally.
func (O *XTBHandle) normalTermination() bool {
	out := O.path(O.inputname + ".out")
	//"abnormal termination of x" contains "normal termination of x"
	if searchBackwards("abnormal termination of x", out) != "" {
		return false
	}
	return searchBackwards("normal termination of x", out) != ""
}

// Energy returns the total energy of a previous xtb calculation, in
// kJ/mol.
func (O *XTBHandle) Energy() (float64, error) {
	errid := "XTBHandle/Energy"
	energyline := searchBackwards("total E       :", O.path(O.inputname+".out"))
	if energyline == "" {
		//newer xtb versions print the summary differently
		energyline = searchBackwards("TOTAL ENERGY", O.path(O.inputname+".out"))
	}
	if energyline == "" {
		return 0, fmt.Errorf("%s: no energy found in output", errid)
	}
	split := strings.Fields(energyline)
	if len(split) < 4 {
		return 0, fmt.Errorf("%s: malformed energy line %q", errid, energyline)
	}
	energy, err := strconv.ParseFloat(split[3], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errid, err)
	}
	return energy * molkit.H2KJ, nil
}
