/*
 * engine_test.go, part of molkit.
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
	"math"
	"os"
	"strings"
	"testing"

	"github.com/rmera/molkit"
)

func sample(Te *testing.T) *molkit.Molecule {
	mol, err := molkit.XYZRead("../test/sample.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.Corrupted(); err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestXTBInput(Te *testing.T) {
	mol := sample(Te)
	dir := Te.TempDir()
	xtb := NewXTBHandle()
	xtb.SetName("methanol")
	xtb.SetWorkDir(dir)
	calc := new(Calc)
	calc.Method = "gfn2"
	calc.Optimize = true
	calc.Solvent = "water"
	calc.SolventModel = "alpb"
	calc.CConstraints = []int{0, 1}
	if err := xtb.BuildInput(mol.Coords[0], mol, calc); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(dir + "/methanol.xyz"); err != nil {
		Te.Error(err)
	}
	inp, err := os.ReadFile(dir + "/methanol.inp")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(inp), "$fix") || !strings.Contains(string(inp), "atoms: 1, 2") {
		Te.Errorf("constraints missing from xcontrol file:\n%s", string(inp))
	}
	opts := strings.Join(xtb.options, " ")
	for _, want := range []string{"--gfn 2", "--alpb water", "-o normal", "-c 0", "-u 0"} {
		if !strings.Contains(opts, want) {
			Te.Errorf("option %q missing from %q", want, opts)
		}
	}
}

func TestXTBBadSolvent(Te *testing.T) {
	mol := sample(Te)
	xtb := NewXTBHandle()
	xtb.SetWorkDir(Te.TempDir())
	calc := &Calc{Method: "gfn0", Solvent: "water", SolventModel: "gbsa"}
	if err := xtb.BuildInput(mol.Coords[0], mol, calc); err == nil {
		Te.Error("gfn0 with implicit solvent should be an error")
	}
	calc = &Calc{Method: "gfn1", Solvent: "dmf", SolventModel: "gbsa"}
	if err := xtb.BuildInput(mol.Coords[0], mol, calc); err == nil {
		Te.Error("dmf is not a gbsa solvent for gfn1")
	}
}

func TestValidXTBSolvent(Te *testing.T) {
	cases := []struct {
		method, model, solvent string
		want                   bool
	}{
		{"gfn0", "gbsa", "water", false},
		{"gfn1", "gbsa", "water", true},
		{"gfn1", "gbsa", "dmf", false},
		{"gfn1", "alpb", "DMF", true},
		{"gfn2", "gbsa", "methanol", true},
		{"gfn2", "alpb", "phenol", true},
		{"gfnff", "gbsa", "toluene", true},
		{"gfn2", "cosmo", "water", false},
	}
	for _, c := range cases {
		if got := ValidXTBSolvent(c.method, c.model, c.solvent); got != c.want {
			Te.Errorf("ValidXTBSolvent(%q, %q, %q) = %v, want %v", c.method, c.model, c.solvent, got, c.want)
		}
	}
}

func TestXTBEnergy(Te *testing.T) {
	dir := Te.TempDir()
	out := "           -------------------------------------------------\n" +
		"          | TOTAL ENERGY               -5.070544440612 Eh   |\n" +
		"           -------------------------------------------------\n" +
		"normal termination of xtb\n"
	if err := os.WriteFile(dir+"/methanol.out", []byte(out), 0644); err != nil {
		Te.Fatal(err)
	}
	xtb := NewXTBHandle()
	xtb.SetName("methanol")
	xtb.SetWorkDir(dir)
	e, err := xtb.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	want := -5.070544440612 * molkit.H2KJ
	if math.Abs(e-want) > 1e-6 {
		Te.Errorf("energy %f, want %f", e, want)
	}
}

func TestGulpInput(Te *testing.T) {
	mol := sample(Te)
	if err := molkit.AssignBonds(mol.Coords[0], mol.Topology); err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gulp := NewGulpHandle()
	gulp.SetName("methanol")
	gulp.SetWorkDir(dir)
	calc := &Calc{Optimize: true, MaxCycles: 500, Conjugate: true, CConstraints: []int{1}}
	if err := gulp.BuildInput(mol.Coords[0], mol, calc); err != nil {
		Te.Fatal(err)
	}
	gin, err := os.ReadFile(dir + "/methanol.gin")
	if err != nil {
		Te.Fatal(err)
	}
	text := string(gin)
	for _, want := range []string{
		"opti conv noautobond fix molmec cartesian conjugate",
		"maxcyc 500",
		"connect 1 2 single",
		"species",
		"library uff4mof",
		"output xyz methanol_opt",
	} {
		if !strings.Contains(text, want) {
			Te.Errorf("gin file misses %q:\n%s", want, text)
		}
	}
	//the constrained oxygen should have its flags zeroed
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "O1") && strings.Contains(line, " core ") && !strings.Contains(line, "0 0 0") {
			Te.Errorf("constrained atom not fixed: %q", line)
		}
	}
}

func TestUFFType(Te *testing.T) {
	cases := []struct {
		symbol string
		coord  int
		want   string
	}{
		{"C", 4, "C_3"},
		{"C", 3, "C_2"},
		{"O", 2, "O_3"},
		{"H", 1, "H_"},
		{"Zn", 4, "Zn3+2"},
	}
	for _, c := range cases {
		got, err := UFFType(c.symbol, c.coord)
		if err != nil {
			Te.Errorf("UFFType(%q, %d): %v", c.symbol, c.coord, err)
			continue
		}
		if got != c.want {
			Te.Errorf("UFFType(%q, %d) = %q, want %q", c.symbol, c.coord, got, c.want)
		}
	}
	if _, err := UFFType("Xx", 2); err == nil {
		Te.Error("unparameterized element should be an error")
	}
}

func TestGulpEnergy(Te *testing.T) {
	dir := Te.TempDir()
	got := "  Optimisation achieved\n" +
		"\n" +
		"  Final energy =     -12.34567890 eV\n" +
		"  Final Gnorm  =       0.00001234\n"
	if err := os.WriteFile(dir+"/methanol.got", []byte(got), 0644); err != nil {
		Te.Fatal(err)
	}
	gulp := NewGulpHandle()
	gulp.SetName("methanol")
	gulp.SetWorkDir(dir)
	e, err := gulp.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	want := -12.34567890 * molkit.EV2KJ
	if math.Abs(e-want) > 1e-6 {
		Te.Errorf("energy %f, want %f", e, want)
	}
}

func TestGulpMDInput(Te *testing.T) {
	mol := sample(Te)
	if err := molkit.AssignBonds(mol.Coords[0], mol.Topology); err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gulp := NewGulpHandle()
	gulp.SetName("methanol")
	gulp.SetWorkDir(dir)
	md := &MD{Integrator: "leapfrog", Ensemble: "nvt", Temperature: 300,
		Equilibration: 1, Production: 2, Timestep: 1, NConformers: 5}
	calc := &Calc{MaxCycles: 500, MDOpts: md}
	if err := gulp.BuildInput(mol.Coords[0], mol, calc); err != nil {
		Te.Fatal(err)
	}
	gin, err := os.ReadFile(dir + "/methanol.gin")
	if err != nil {
		Te.Fatal(err)
	}
	text := string(gin)
	for _, want := range []string{
		"md conv noautobond fix molmec cartesian",
		"integrator leapfrog",
		"ensemble nvt",
		"temperature 300.0",
		"equilibration 1.000 ps",
		"production 2.000 ps",
		"timestep 1.000 fs",
		"sample 0.400 ps",
		"write 0.400 ps",
		"output movie xyz methanol_movie.xyz",
	} {
		if !strings.Contains(text, want) {
			Te.Errorf("gin file misses %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "maxcyc") {
		Te.Error("maxcyc applies to optimizations only")
	}
	if _, err := gulp.OptimizedGeometry(mol); err == nil {
		Te.Error("an MD run has no single optimized geometry")
	}
}

func TestGulpConformers(Te *testing.T) {
	mol := sample(Te)
	if err := molkit.AssignBonds(mol.Coords[0], mol.Topology); err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gulp := NewGulpHandle()
	gulp.SetName("methanol")
	gulp.SetWorkDir(dir)
	if _, err := gulp.Conformers(); err == nil {
		Te.Error("conformers before any MD run should be an error")
	}
	md := &MD{Integrator: "leapfrog", Ensemble: "nvt", Temperature: 300,
		Equilibration: 1, Production: 2, Timestep: 1, NConformers: 2}
	if err := gulp.BuildInput(mol.Coords[0], mol, &Calc{MDOpts: md}); err != nil {
		Te.Fatal(err)
	}
	movie := "3\n\n" +
		"O   0.000000   0.000000   0.000000\n" +
		"H   0.960000   0.000000   0.000000\n" +
		"H  -0.240000   0.930000   0.000000\n" +
		"3\n\n" +
		"O   0.000000   0.000000   0.100000\n" +
		"H   0.960000   0.000000   0.100000\n" +
		"H  -0.240000   0.930000   0.100000\n"
	if err := os.WriteFile(dir+"/methanol_movie.xyz", []byte(movie), 0644); err != nil {
		Te.Fatal(err)
	}
	confs, err := gulp.Conformers()
	if err != nil {
		Te.Fatal(err)
	}
	if confs.LenFrames() != 2 {
		Te.Fatalf("%d frames in the trajectory, want 2", confs.LenFrames())
	}
	if confs.Len() != 3 {
		Te.Errorf("%d atoms per frame, want 3", confs.Len())
	}
	if math.Abs(confs.Coords[1].At(0, 2)-0.1) > 1e-6 {
		Te.Errorf("second frame z = %f, want 0.1", confs.Coords[1].At(0, 2))
	}
}

func TestGulpMDEnergy(Te *testing.T) {
	dir := Te.TempDir()
	got := "  Molecular dynamics production :\n" +
		"\n" +
		"  Total lattice energy       =         -12.34567890 eV\n" +
		"  Job Finished\n"
	if err := os.WriteFile(dir+"/methanol.got", []byte(got), 0644); err != nil {
		Te.Fatal(err)
	}
	gulp := NewGulpHandle()
	gulp.SetName("methanol")
	gulp.SetWorkDir(dir)
	e, err := gulp.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	want := -12.34567890 * molkit.EV2KJ
	if math.Abs(e-want) > 1e-6 {
		Te.Errorf("energy %f, want %f", e, want)
	}
	//GULP repeats the lattice energy in kJ/(mole unit cells); the
	//scan finds that line first, and it needs no conversion
	got = "  Molecular dynamics production :\n" +
		"\n" +
		"  Total lattice energy       =         -12.34567890 eV\n" +
		"  Total lattice energy       =           -1191.1765 kJ/(mole unit cells)\n" +
		"  Job Finished\n"
	if err := os.WriteFile(dir+"/methanol.got", []byte(got), 0644); err != nil {
		Te.Fatal(err)
	}
	e, err = gulp.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e+1191.1765) > 1e-6 {
		Te.Errorf("energy %f, want %f", e, -1191.1765)
	}
}

func TestXTBTermination(Te *testing.T) {
	dir := Te.TempDir()
	xtb := NewXTBHandle()
	xtb.SetName("methanol")
	xtb.SetWorkDir(dir)
	out := "########################\nabnormal termination of xtb\n"
	if err := os.WriteFile(dir+"/methanol.out", []byte(out), 0644); err != nil {
		Te.Fatal(err)
	}
	if xtb.normalTermination() {
		Te.Error("abnormal termination reported as normal")
	}
	out = "########################\nnormal termination of xtb\n"
	if err := os.WriteFile(dir+"/methanol.out", []byte(out), 0644); err != nil {
		Te.Fatal(err)
	}
	if !xtb.normalTermination() {
		Te.Error("normal termination not detected")
	}
}

func TestOBEnergy(Te *testing.T) {
	dir := Te.TempDir()
	ob := NewOBHandle()
	ob.SetName("methanol")
	ob.SetWorkDir(dir)
	out := "A T O M   T Y P E S\n" +
		"\nTOTAL ENERGY = 141.48714 kcal/mol\n"
	if err := os.WriteFile(dir+"/methanol.obout", []byte(out), 0644); err != nil {
		Te.Fatal(err)
	}
	e, err := ob.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	want := 141.48714 * molkit.Kcal2KJ
	if math.Abs(e-want) > 1e-6 {
		Te.Errorf("kcal energy %f, want %f", e, want)
	}
	out = "A T O M   T Y P E S\n" +
		"\nTOTAL ENERGY = 87.34210 kJ/mol\n"
	if err := os.WriteFile(dir+"/methanol.obout", []byte(out), 0644); err != nil {
		Te.Fatal(err)
	}
	e, err = ob.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e-87.34210) > 1e-6 {
		Te.Errorf("kJ energy %f, want %f", e, 87.34210)
	}
}

func TestOBInput(Te *testing.T) {
	mol := sample(Te)
	if err := molkit.AssignBonds(mol.Coords[0], mol.Topology); err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	ob := NewOBHandle()
	ob.SetName("methanol")
	ob.SetWorkDir(dir)
	if err := ob.BuildInput(mol.Coords[0], mol, &Calc{Forcefield: "mmff94"}); err != nil {
		Te.Fatal(err)
	}
	if ob.forcefield != "mmff94" {
		Te.Errorf("forcefield %q, want mmff94", ob.forcefield)
	}
	if _, err := os.Stat(dir + "/methanol.mol"); err != nil {
		Te.Error(err)
	}
	if err := ob.BuildInput(mol.Coords[0], mol, &Calc{Forcefield: "amoeba"}); err == nil {
		Te.Error("unknown force field should be an error")
	}
}

func TestMacroModelCom(Te *testing.T) {
	line := comLine("FFLD", 16, 1, 0, 0, 1, 0, 0, 0)
	want := " FFLD      16      1      0      0     1.0000     0.0000     0.0000     0.0000\n"
	if line != want {
		Te.Errorf("comLine:\n%q\nwant:\n%q", line, want)
	}
}

func TestMacroModelEnergy(Te *testing.T) {
	dir := Te.TempDir()
	log := " Input file: methanol.mae\n" +
		" Total Energy =     -200.123456 kJ/mol\n" +
		" BatchMin: normal termination\n"
	if err := os.WriteFile(dir+"/methanol.log", []byte(log), 0644); err != nil {
		Te.Fatal(err)
	}
	mm := NewMacroModelHandle()
	mm.SetName("methanol")
	mm.SetWorkDir(dir)
	e, err := mm.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e+200.123456) > 1e-6 {
		Te.Errorf("energy %f, want %f", e, -200.123456)
	}
}

func TestMoveGeneratedFiles(Te *testing.T) {
	dir := Te.TempDir()
	base := dir + "/job"
	for _, suffix := range []string{".log", "-out.maegz", ".com"} {
		if err := os.WriteFile(base+suffix, []byte("x"), 0644); err != nil {
			Te.Fatal(err)
		}
	}
	outdir := dir + "/results"
	if err := MoveGeneratedFiles(base, outdir); err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{"job.log", "job-out.maegz", "job.com"} {
		if _, err := os.Stat(outdir + "/" + name); err != nil {
			Te.Errorf("%s not moved: %v", name, err)
		}
	}
}

func TestSearchBackwards(Te *testing.T) {
	dir := Te.TempDir()
	text := "first line\nsecond line\nthe needle is here\nlast line\n"
	file := dir + "/scan.txt"
	if err := os.WriteFile(file, []byte(text), 0644); err != nil {
		Te.Fatal(err)
	}
	if got := searchBackwards("needle", file); !strings.Contains(got, "the needle is here") {
		Te.Errorf("searchBackwards returned %q", got)
	}
	if got := searchBackwards("absent", file); got != "" {
		Te.Errorf("expected empty match, got %q", got)
	}
	//every line must be examined, not every other one
	text = "alpha\nbravo\ncharlie\ndelta\necho\n"
	if err := os.WriteFile(file, []byte(text), 0644); err != nil {
		Te.Fatal(err)
	}
	for _, needle := range []string{"bravo", "charlie", "delta", "echo"} {
		if got := searchBackwards(needle, file); !strings.Contains(got, needle) {
			Te.Errorf("searchBackwards(%q) returned %q", needle, got)
		}
	}
}

func TestNotInstalled(Te *testing.T) {
	err := lookProgram("definitely-not-a-program-molkit")
	if err == nil {
		Te.Fatal("expected an error for a missing program")
	}
	if !IsNotInstalled(err) {
		Te.Error("error should report a missing program")
	}
}
