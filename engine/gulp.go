/*
 * gulp.go, part of molkit.
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

//You need the GULP program, from Prof. Julian Gale's group at Curtin
//University, to use this wrapper. Please cite GULP if you use it.

// GulpHandle wraps the GULP lattice/molecular simulation program for
// UFF force-field optimizations and MD conformer searches.
type GulpHandle struct {
	command   string
	inputname string
	workdir   string
	library   string
	md        bool
	labels    []string //per-atom species labels, set by BuildInput
}

func NewGulpHandle() *GulpHandle {
	run := new(GulpHandle)
	run.SetDefaults()
	return run
}

func (O *GulpHandle) SetName(name string) {
	O.inputname = name
}

func (O *GulpHandle) SetCommand(name string) {
	O.command = name
}

// SetWorkDir sets the directory where the calculation runs.
func (O *GulpHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

// SetLibrary sets the force-field library file passed to GULP.
func (O *GulpHandle) SetLibrary(lib string) {
	O.library = lib
}

func (O *GulpHandle) SetDefaults() {
	O.command = os.ExpandEnv("gulp")
	O.library = "uff4mof"
}

// uffByCoordination maps element symbol and coordination number to the
// UFF species for the elements where hybridization matters.
var uffByCoordination = map[string]string{
	"C 4": "C_3", "C 3": "C_2", "C 2": "C_1",
	"N 4": "N_3", "N 3": "N_3", "N 2": "N_2", "N 1": "N_1",
	"O 2": "O_3", "O 1": "O_2",
	"S 4": "S_3+6", "S 3": "S_3+4", "S 2": "S_3+2", "S 1": "S_2",
	"P 4": "P_3+5", "P 3": "P_3+3",
	"B 4": "B_3", "B 3": "B_2",
	"Si 4": "Si3",
}

// uffFixed maps elements with a single UFF species, coordination
// regardless. Metals carry their common oxidation state.
var uffFixed = map[string]string{
	"H": "H_", "F": "F_", "Cl": "Cl", "Br": "Br", "I": "I_",
	"Li": "Li", "Na": "Na", "K": "K_", "Mg": "Mg3+2", "Ca": "Ca6+2",
	"Al": "Al3", "Ti": "Ti6+4", "V": "V_3+5", "Cr": "Cr6+3",
	"Mn": "Mn6+2", "Fe": "Fe6+2", "Co": "Co6+3", "Ni": "Ni4+2",
	"Cu": "Cu3+1", "Zn": "Zn3+2", "Zr": "Zr3+4", "Mo": "Mo6+6",
	"Ru": "Ru6+2", "Rh": "Rh6+3", "Pd": "Pd4+2", "Ag": "Ag1+1",
	"Cd": "Cd3+2", "W": "W_6+6", "Pt": "Pt4+2", "Au": "Au4+3",
	"Hg": "Hg1+2", "Pb": "Pb3",
}

// UFFType returns the UFF species for an element symbol with the
// given coordination number. Unparameterized elements are an error.
func UFFType(symbol string, coordination int) (string, error) {
	if t, ok := uffFixed[symbol]; ok {
		return t, nil
	}
	if t, ok := uffByCoordination[fmt.Sprintf("%s %d", symbol, coordination)]; ok {
		return t, nil
	}
	return "", fmt.Errorf("UFFType: no UFF species for %s with coordination %d", symbol, coordination)
}

// gulpOrder translates bond orders into the words GULP's connect
// directive takes.
func gulpOrder(order float64) string {
	switch order {
	case molkit.Double:
		return "double"
	case molkit.Triple:
		return "triple"
	case molkit.Aromatic:
		return "resonant"
	default:
		return "single"
	}
}

// BuildInput writes the .gin control file for a UFF optimization, or
// for an NVT/NVE molecular-dynamics run when Q.MDOpts is set. atoms
// must carry bonds (it must satisfy Bonder); atom typing needs the
// coordination of each atom.
func (O *GulpHandle) BuildInput(coords *v3.Matrix, atoms molkit.AtomMultiCharger, Q *Calc) error {
	errid := "GulpHandle/BuildInput"
	if O.inputname == "" {
		O.inputname = "molkit"
	}
	if atoms == nil || coords == nil {
		return fmt.Errorf("%s: nil atoms or coordinates", errid)
	}
	bonder, ok := atoms.(Bonder)
	if !ok {
		return fmt.Errorf("%s: atom typing needs connectivity, the atoms must satisfy engine.Bonder", errid)
	}
	bonds := bonder.Bonds()
	degree := make([]int, atoms.Len())
	for _, b := range bonds {
		degree[b.At1.ID]++
		degree[b.At2.ID]++
	}
	O.labels = make([]string, atoms.Len())
	species := make(map[string]string) //label -> UFF type
	var labelOrder []string
	counts := make(map[string]int)
	for i := 0; i < atoms.Len(); i++ {
		sym := atoms.Atom(i).Symbol
		uff, err := UFFType(sym, degree[i])
		if err != nil {
			return fmt.Errorf("%s: atom %d: %w", errid, i, err)
		}
		label, seen := "", false
		for l, t := range species {
			if t == uff {
				label, seen = l, true
				break
			}
		}
		if !seen {
			counts[sym]++
			label = fmt.Sprintf("%s%d", sym, counts[sym])
			species[label] = uff
			labelOrder = append(labelOrder, label)
		}
		O.labels[i] = label
	}
	gin, err := os.Create(O.path(O.inputname + ".gin"))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer gin.Close()
	keywords := "opti conv noautobond fix molmec cartesian"
	if Q.Conjugate {
		keywords = keywords + " conjugate"
	}
	O.md = Q.MDOpts != nil
	if O.md {
		keywords = "md conv noautobond fix molmec cartesian"
	}
	fmt.Fprintln(gin, keywords)
	if Q.MaxCycles > 0 && Q.MDOpts == nil {
		fmt.Fprintf(gin, "maxcyc %d\n", Q.MaxCycles)
	}
	fmt.Fprintln(gin, "cartesian")
	constrained := make(map[int]bool)
	for _, c := range Q.CConstraints {
		constrained[c] = true
	}
	for i := 0; i < atoms.Len(); i++ {
		flags := "1 1 1"
		if constrained[i] {
			flags = "0 0 0"
		}
		fmt.Fprintf(gin, "%-6s core %12.5f %12.5f %12.5f %s\n",
			O.labels[i], coords.At(i, 0), coords.At(i, 1), coords.At(i, 2), flags)
	}
	for _, b := range bonds {
		fmt.Fprintf(gin, "connect %d %d %s\n", b.At1.ID+1, b.At2.ID+1, gulpOrder(b.Order))
	}
	fmt.Fprintln(gin, "species")
	for _, label := range labelOrder {
		fmt.Fprintf(gin, "%-6s %s\n", label, species[label])
	}
	fmt.Fprintf(gin, "library %s\n", O.library)
	if Q.MDOpts != nil {
		m := Q.MDOpts
		fmt.Fprintf(gin, "integrator %s\n", m.Integrator)
		fmt.Fprintf(gin, "ensemble %s\n", m.Ensemble)
		fmt.Fprintf(gin, "temperature %5.1f\n", m.Temperature)
		fmt.Fprintf(gin, "equilibration %5.3f ps\n", m.Equilibration)
		fmt.Fprintf(gin, "production %5.3f ps\n", m.Production)
		fmt.Fprintf(gin, "timestep %5.3f fs\n", m.Timestep)
		if m.NConformers > 0 {
			sample := m.Production / float64(m.NConformers)
			fmt.Fprintf(gin, "sample %5.3f ps\n", sample)
			fmt.Fprintf(gin, "write %5.3f ps\n", sample)
		}
		fmt.Fprintf(gin, "output movie xyz %s.xyz\n", O.inputname+"_movie")
	} else {
		fmt.Fprintf(gin, "output xyz %s\n", O.inputname+"_opt")
	}
	return nil
}

func (O *GulpHandle) path(file string) string {
	if O.workdir == "" {
		return file
	}
	return O.workdir + "/" + file
}

// Run runs GULP on the previously built input, waiting or not
// depending on wait.
func (O *GulpHandle) Run(wait bool) error {
	errid := "GulpHandle/Run"
	if err := lookProgram(O.command); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	com := fmt.Sprintf("%s < %s.gin > %s.got 2>&1", O.command, O.inputname, O.inputname)
	if err := shRun(com, O.workdir, wait); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Energy returns the final energy of the last GULP run, in kJ/mol.
// GULP reports eV.
func (O *GulpHandle) Energy() (float64, error) {
	errid := "GulpHandle/Energy"
	line := searchBackwards("Final energy =", O.path(O.inputname+".got"))
	if line == "" {
		//an MD run reports no final energy, only trajectory frames
		line = searchBackwards("Total lattice energy", O.path(O.inputname+".got"))
	}
	if line == "" {
		return 0, fmt.Errorf("%s: no energy found in output", errid)
	}
	split := strings.Fields(line)
	var value, unit string
	for i, v := range split {
		if v == "=" && i+1 < len(split) {
			value = split[i+1]
			if i+2 < len(split) {
				unit = split[i+2]
			}
			break
		}
	}
	if value == "" {
		return 0, fmt.Errorf("%s: malformed energy line %q", errid, line)
	}
	energy, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errid, err)
	}
	//the lattice energy is printed twice, in eV and in kJ/(mole unit cells)
	if strings.HasPrefix(unit, "kJ") {
		return energy, nil
	}
	return energy * molkit.EV2KJ, nil
}

// OptimizedGeometry reads the optimized cartesians written by the
// output directive of the last optimization.
func (O *GulpHandle) OptimizedGeometry(atoms molkit.Atomer) (*v3.Matrix, error) {
	errid := "GulpHandle/OptimizedGeometry"
	if O.md {
		return nil, fmt.Errorf("%s: the last run was an MD, use Conformers", errid)
	}
	mol, err := molkit.XYZRead(O.path(O.inputname + "_opt.xyz"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol.Coords[0], nil
}

// Conformers reads the frames sampled during the last MD run. The
// returned molecule carries one frame per conformer.
func (O *GulpHandle) Conformers() (*molkit.Molecule, error) {
	errid := "GulpHandle/Conformers"
	if !O.md {
		return nil, fmt.Errorf("%s: the last run was not an MD", errid)
	}
	mol, err := molkit.XYZRead(O.path(O.inputname + "_movie.xyz"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol, nil
}

// LowestEnergyConformer optimizes each conformer sampled in the last
// MD run and returns the geometry and energy (kJ/mol) of the lowest
// one. It runs one GULP optimization per frame, waiting for each.
func (O *GulpHandle) LowestEnergyConformer(atoms molkit.AtomMultiCharger, Q *Calc) (*v3.Matrix, float64, error) {
	errid := "GulpHandle/LowestEnergyConformer"
	confs, err := O.Conformers()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", errid, err)
	}
	opt := NewGulpHandle()
	opt.SetCommand(O.command)
	opt.SetWorkDir(O.workdir)
	opt.SetLibrary(O.library)
	qc := *Q
	qc.MDOpts = nil
	var best *v3.Matrix
	bestE := 0.0
	for i := 0; i < confs.LenFrames(); i++ {
		opt.SetName(fmt.Sprintf("%s_conf_%d", O.inputname, i))
		if err := opt.BuildInput(confs.Coords[i], atoms, &qc); err != nil {
			return nil, 0, fmt.Errorf("%s: conformer %d: %w", errid, i, err)
		}
		if err := opt.Run(true); err != nil {
			return nil, 0, fmt.Errorf("%s: conformer %d: %w", errid, i, err)
		}
		e, err := opt.Energy()
		if err != nil {
			return nil, 0, fmt.Errorf("%s: conformer %d: %w", errid, i, err)
		}
		if best == nil || e < bestE {
			geo, err := opt.OptimizedGeometry(atoms)
			if err != nil {
				return nil, 0, fmt.Errorf("%s: conformer %d: %w", errid, i, err)
			}
			best, bestE = geo, e
		}
	}
	if best == nil {
		return nil, 0, fmt.Errorf("%s: no conformers in the trajectory", errid)
	}
	return best, bestE, nil
}
