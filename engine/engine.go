/*
 * engine.go, part of molkit.
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

// Package engine wraps external molecular-modeling programs (XTB, GULP,
// MacroModel, OpenBabel). For each program there is a handle type that
// builds the program's input files from a molecule, shells the program
// out, and scrapes energies and geometries from its text output. The
// programs themselves must be obtained from their respective
// distributors; please cite them if you use the wrappers.
package engine

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rmera/molkit"
	v3 "github.com/rmera/molkit/v3"
)

// Handle is the common interface of the program wrappers. Note that
// the defaults of each program are NOT considered part of the API, as
// they follow whatever the wrapped program does.
type Handle interface {

	//SetName sets the name for the job, used for input
	//and output files. The extensions depend on the program.
	SetName(name string)

	//BuildInput builds the input files for a calculation on the
	//given geometry and atoms, according to Q.
	BuildInput(coords *v3.Matrix, atoms molkit.AtomMultiCharger, Q *Calc) error

	//Run runs the calculation previously set up. It waits for
	//completion or not depending on wait.
	Run(wait bool) error

	//Energy returns the last energy of the calculation, in kJ/mol,
	//by parsing the program's output file.
	Energy() (float64, error)

	//OptimizedGeometry reads the optimized geometry from the
	//calculation output.
	OptimizedGeometry(atoms molkit.Atomer) (*v3.Matrix, error)
}

// Bonder is an AtomMultiCharger that also knows its bonds. The
// force-field wrappers need it, as their input formats carry
// connectivity.
type Bonder interface {
	molkit.AtomMultiCharger
	Bonds() []*molkit.Bond
}

// MD holds the parameters for a molecular-dynamics conformer search.
type MD struct {
	Integrator    string  //"leapfrog verlet" or "stochastic"
	Ensemble      string  //"nve" or "nvt"
	Temperature   float64 //K
	Equilibration float64 //ps
	Production    float64 //ps
	Timestep      float64 //fs
	NConformers   int     //conformers to sample from the production run
	OptConformers bool    //optimize each sampled conformer
}

// Calc holds the calculation options common to the wrapped programs.
// Each wrapper uses the subset that makes sense for its program and
// ignores the rest.
type Calc struct {
	Method       string //program-specific method name, e.g. "gfn2" for XTB
	Forcefield   string //for the force-field programs, e.g. "uff"
	Optimize     bool
	MaxCycles    int
	Conjugate    bool    //conjugate gradient instead of steepest descent
	Gradient     float64 //convergence criterion, program units
	Solvent      string  //implicit solvent, empty for gas phase
	SolventModel string  //e.g. "gbsa" or "alpb" for XTB
	CConstraints []int   //cartesian constraints: atoms to fix
	MDOpts       *MD     //nil unless the job is a conformer search
}

// NotInstalledError reports that a wrapped program was not found in
// the system.
type NotInstalledError struct {
	Program string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("engine: program %q is not installed or not in the PATH", e.Program)
}

// IsNotInstalled returns true if err reports a missing program.
func IsNotInstalled(err error) bool {
	var t *NotInstalledError
	return errors.As(err, &t)
}

// lookProgram checks that program can be executed, wrapping the
// failure in a NotInstalledError.
func lookProgram(program string) error {
	if _, err := exec.LookPath(program); err != nil {
		return &NotInstalledError{Program: program}
	}
	return nil
}

// searchBackwards searches a file, starting from the end, for a
// string. Returns the last line that contains the string, or an empty
// string.
func searchBackwards(str, filename string) string {
	var ini int64 = 0
	var end int64 = 0
	buf := make([]byte, 1)
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()
	var i int64 = 1
	for ; ; i++ {
		if _, err := f.Seek(-1*i, 2); err != nil {
			return ""
		}
		if _, err := f.Read(buf); err != nil {
			return ""
		}
		if buf[0] != byte('\n') {
			continue
		}
		if end == 0 {
			end = i
			continue
		}
		ini = i
		f.Seek(-1*ini, 2)
		bufF := make([]byte, ini-end)
		f.Read(bufF)
		if strings.Contains(string(bufF), str) {
			return string(bufF)
		}
		//the newline just found bounds the next line up
		end = ini
		ini = 0
	}
}

// isInString returns true if test is in container.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

// shRun runs command through sh, waiting or not. dir may be empty.
func shRun(command, dir string, wait bool) error {
	if wait {
		cmd := exec.Command("sh", "-c", command)
		cmd.Dir = dir
		return cmd.Run()
	}
	cmd := exec.Command("sh", "-c", "nohup "+command)
	cmd.Dir = dir
	return cmd.Start()
}
