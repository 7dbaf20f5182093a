/*
 * macromodel.go, part of molkit.
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
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/molkit"
	"github.com/rmera/molkit/mae"
	v3 "github.com/rmera/molkit/v3"
)

//You need Schrodinger's MacroModel suite to use this wrapper.

// MacroModelForcefields maps force-field names to the numeric codes
// the bmin command file takes.
var MacroModelForcefields = map[string]int{
	"mm2":      1,
	"mm3":      2,
	"amber":    3,
	"amber94":  4,
	"oplsa":    5,
	"mmff94":   10,
	"opls2005": 14,
	"opls3":    16,
}

// MacroModelHandle wraps Schrodinger's bmin program, for force-field
// optimizations and MD conformer searches. It needs the path to the
// Schrodinger installation directory, as it also uses the
// structconvert utility shipped with the suite.
type MacroModelHandle struct {
	schrodinger string
	inputname   string
	workdir     string
	md          bool
}

func NewMacroModelHandle() *MacroModelHandle {
	run := new(MacroModelHandle)
	run.SetDefaults()
	return run
}

func (O *MacroModelHandle) SetName(name string) {
	O.inputname = name
}

// SetSchrodinger sets the Schrodinger installation directory.
func (O *MacroModelHandle) SetSchrodinger(dir string) {
	O.schrodinger = dir
}

// SetWorkDir sets the directory where the calculation runs.
func (O *MacroModelHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

func (O *MacroModelHandle) SetDefaults() {
	O.schrodinger = os.Getenv("SCHRODINGER")
}

func (O *MacroModelHandle) path(file string) string {
	if O.workdir == "" {
		return file
	}
	return O.workdir + "/" + file
}

// comLine formats one command line of a bmin command file. The format
// is fixed-width: the opcode, four integer arguments and four float
// arguments.
func comLine(op string, i1, i2, i3, i4 int, f1, f2, f3, f4 float64) string {
	return fmt.Sprintf(" %-5s%7d%7d%7d%7d%11.4f%11.4f%11.4f%11.4f\n", op, i1, i2, i3, i4, f1, f2, f3, f4)
}

// BuildInput prepares a bmin job: it writes the molecule as a V2000
// mol file, converts it to .mae with structconvert, and writes the
// .com command file. With Q.MDOpts set the command file runs a
// molecular-dynamics conformer search instead of a plain
// minimization.
func (O *MacroModelHandle) BuildInput(coords *v3.Matrix, atoms molkit.AtomMultiCharger, Q *Calc) error {
	errid := "MacroModelHandle/BuildInput"
	if O.inputname == "" {
		O.inputname = "molkit"
	}
	if atoms == nil || coords == nil {
		return fmt.Errorf("%s: nil atoms or coordinates", errid)
	}
	var bonds []*molkit.Bond
	if bonder, ok := atoms.(Bonder); ok {
		bonds = bonder.Bonds()
	}
	err := molkit.MOLWrite(O.path(O.inputname+".mol"), coords, atoms, bonds)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	convert := filepath.Join(O.schrodinger, "utilities", "structconvert")
	if err := lookProgram(convert); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	com := fmt.Sprintf("%s %s.mol %s.mae", convert, O.inputname, O.inputname)
	if err := shRun(com, O.workdir, true); err != nil {
		return fmt.Errorf("%s: structconvert: %w", errid, err)
	}
	ff, ok := MacroModelForcefields[strings.ToLower(Q.Forcefield)]
	if !ok {
		ff = MacroModelForcefields["opls3"]
	}
	maxIter := Q.MaxCycles
	if maxIter <= 0 {
		maxIter = 2500
	}
	gradient := Q.Gradient
	if gradient <= 0 {
		gradient = 0.05
	}
	comfile, err := os.Create(O.path(O.inputname + ".com"))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer comfile.Close()
	fmt.Fprintf(comfile, "%s.mae\n", O.inputname)
	fmt.Fprintf(comfile, "%s-out.maegz\n", O.inputname)
	comfile.WriteString(comLine("MMOD", 0, 1, 0, 0, 0, 0, 0, 0))
	comfile.WriteString(comLine("FFLD", ff, 1, 0, 0, 1, 0, 0, 0))
	O.md = Q.MDOpts != nil
	if !O.md {
		comfile.WriteString(comLine("BGIN", 0, 0, 0, 0, 0, 0, 0, 0))
		comfile.WriteString(comLine("READ", 0, 0, 0, 0, 0, 0, 0, 0))
		comfile.WriteString(comLine("CONV", 2, 0, 0, 0, gradient, 0, 0, 0))
		comfile.WriteString(comLine("MINI", 1, 0, maxIter, 0, 0, 0, 0, 0))
		comfile.WriteString(comLine("END", 0, 0, 0, 0, 0, 0, 0, 0))
		return nil
	}
	m := Q.MDOpts
	nconf := m.NConformers
	if nconf <= 0 {
		nconf = 50
	}
	comfile.WriteString(comLine("READ", 0, 0, 0, 0, 0, 0, 0, 0))
	comfile.WriteString(comLine("MDIT", 0, 0, 0, 0, m.Temperature, 0, 0, 0))
	comfile.WriteString(comLine("INIT", 0, 0, 0, 0, 0, 0, 0, 0))
	comfile.WriteString(comLine("MDYN", 0, 0, 0, 0, m.Timestep, m.Equilibration, m.Temperature, 0))
	comfile.WriteString(comLine("MDSA", nconf, 0, 0, 0, 0, 0, 1, 0))
	comfile.WriteString(comLine("MDYN", 1, 0, 0, 0, m.Timestep, m.Production, m.Temperature, 0))
	comfile.WriteString(comLine("WRIT", 0, 0, 0, 0, 0, 0, 0, 0))
	comfile.WriteString(comLine("RWND", 0, 1, 0, 0, 0, 0, 0, 0))
	if m.OptConformers {
		comfile.WriteString(comLine("BGIN", 0, 0, 0, 0, 0, 0, 0, 0))
		comfile.WriteString(comLine("READ", -2, 0, 0, 0, 0, 0, 0, 0))
		comfile.WriteString(comLine("CONV", 2, 0, 0, 0, gradient, 0, 0, 0))
		comfile.WriteString(comLine("MINI", 1, 0, maxIter, 0, 0, 0, 0, 0))
		comfile.WriteString(comLine("END", 0, 0, 0, 0, 0, 0, 0, 0))
	} else {
		comfile.WriteString(comLine("END", 0, 0, 0, 0, 0, 0, 0, 0))
	}
	return nil
}

// Run runs bmin on the previously built input. bmin itself is run
// with -WAIT, so even wait=false returns only after the job has been
// handed to the job server.
func (O *MacroModelHandle) Run(wait bool) error {
	errid := "MacroModelHandle/Run"
	bmin := filepath.Join(O.schrodinger, "bmin")
	if err := lookProgram(bmin); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	com := fmt.Sprintf("%s -WAIT %s > %s.bminout 2>&1", bmin, O.inputname, O.inputname)
	if err := shRun(com, O.workdir, wait); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Energy returns the final energy reported in the bmin log, in
// kJ/mol, which is MacroModel's native unit.
func (O *MacroModelHandle) Energy() (float64, error) {
	errid := "MacroModelHandle/Energy"
	line := searchBackwards("Total Energy =", O.path(O.inputname+".log"))
	if line == "" {
		return 0, fmt.Errorf("%s: no energy found in log", errid)
	}
	split := strings.Fields(line)
	if len(split) < 4 {
		return 0, fmt.Errorf("%s: malformed energy line %q", errid, line)
	}
	energy, err := strconv.ParseFloat(split[3], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errid, err)
	}
	return energy, nil
}

// OptimizedGeometry reads the optimized structure from the job
// output. It gunzips the -out.maegz file and parses the resulting
// mae. The Atomer is taken for interface compatibility only.
func (O *MacroModelHandle) OptimizedGeometry(atoms molkit.Atomer) (*v3.Matrix, error) {
	errid := "MacroModelHandle/OptimizedGeometry"
	maepath, err := mae.GunzipMaegz(O.path(O.inputname + "-out.maegz"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	mol, err := mae.MoleculeFromFile(maepath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol.Coords[0], nil
}

// LowestEnergyConformer extracts the lowest-energy conformer of the
// last conformer search. It returns the geometry, the energy in
// kJ/mol, and the extractor holding the remaining conformers.
func (O *MacroModelHandle) LowestEnergyConformer() (*v3.Matrix, float64, *mae.Extractor, error) {
	errid := "MacroModelHandle/LowestEnergyConformer"
	if !O.md {
		return nil, 0, nil, fmt.Errorf("%s: the last run was not a conformer search", errid)
	}
	ext, err := mae.NewExtractor(O.path(O.inputname), 1)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("%s: %w", errid, err)
	}
	mol, err := mae.MoleculeFromFile(ext.Path)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol.Coords[0], ext.MinEnergy, ext, nil
}

// KillJServer kills any leftover MacroModel job-server daemons.
// Errors are ignored, as the daemons are usually not running.
func KillJServer() {
	exec.Command("pkill", "jserver").Run()
	exec.Command("pkill", "jserver-watcher").Run()
	exec.Command("pkill", "jservergo").Run()
}

// MoveGeneratedFiles moves the scratch files a bmin run leaves next
// to the input (basename.log, basename-out.maegz and friends) into
// dir, creating it if needed.
func MoveGeneratedFiles(basename, dir string) error {
	errid := "engine/MoveGeneratedFiles"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	matches, err := filepath.Glob(basename + "*")
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if err := os.Rename(m, filepath.Join(dir, filepath.Base(m))); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	return nil
}
