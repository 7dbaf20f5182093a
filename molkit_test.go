/*
 * molkit_test.go, part of molkit.
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

package molkit

import (
	"math"
	"os"
	"strings"
	"testing"

	v3 "github.com/rmera/molkit/v3"
)

func TestXYZReadWrite(Te *testing.T) {
	mol, err := XYZRead("test/sample.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.Corrupted(); err != nil {
		Te.Error(err)
	}
	if mol.Len() != 6 {
		Te.Errorf("read %d atoms, want 6", mol.Len())
	}
	if mol.Atom(0).Symbol != "C" || mol.Atom(1).Symbol != "O" {
		Te.Errorf("wrong atoms: %s, %s", mol.Atom(0).Symbol, mol.Atom(1).Symbol)
	}
	out := Te.TempDir() + "/rewritten.xyz"
	if err := XYZWrite(out, mol.Coords[0], mol); err != nil {
		Te.Fatal(err)
	}
	mol2, err := XYZRead(out)
	if err != nil {
		Te.Fatal(err)
	}
	if mol2.Len() != mol.Len() {
		Te.Fatalf("round trip changed the atom count: %d", mol2.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		if d := AtomDistance(mol.Coords[0], i, i) + Distance(mol.Coord(i, 0), mol2.Coord(i, 0)); d > 1e-5 {
			Te.Errorf("atom %d moved %f on round trip", i, d)
		}
	}
}

func TestAssignBonds(Te *testing.T) {
	mol, err := XYZRead("test/sample.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if err := AssignBonds(mol.Coords[0], mol.Topology); err != nil {
		Te.Fatal(err)
	}
	if len(mol.Bonds()) != 5 {
		Te.Fatalf("methanol should have 5 bonds, got %d", len(mol.Bonds()))
	}
	carbon := mol.Atom(0)
	oxygen := mol.Atom(1)
	if len(carbon.Bonds) != 4 {
		Te.Errorf("carbon should have 4 bonds, got %d", len(carbon.Bonds))
	}
	if len(oxygen.Bonds) != 2 {
		Te.Errorf("oxygen should have 2 bonds, got %d", len(oxygen.Bonds))
	}
	co := carbon.Bonds[0]
	if co.Cross(carbon) != oxygen && !co.HasHydrogen() {
		Te.Error("the first bond of the carbon goes nowhere sensible")
	}
	prev := len(mol.Bonds())
	if err := mol.RemoveBond(oxygen.Bonds[len(oxygen.Bonds)-1]); err != nil {
		Te.Fatal(err)
	}
	if len(mol.Bonds()) != prev-1 || len(oxygen.Bonds) != 1 {
		Te.Error("bond removal did not propagate")
	}
}

func TestOrderFromCode(Te *testing.T) {
	for code, want := range map[string]float64{"1": Single, "am": Single, "2": Double, "3": Triple, "ar": Aromatic} {
		got, err := OrderFromCode(code)
		if err != nil {
			Te.Errorf("OrderFromCode(%q): %v", code, err)
		}
		if got != want {
			Te.Errorf("OrderFromCode(%q) = %f, want %f", code, got, want)
		}
	}
	if _, err := OrderFromCode("quadruple"); err == nil {
		Te.Error("unknown bond code should be an error")
	}
}

func TestGeometry(Te *testing.T) {
	p1, _ := v3.NewMatrix([]float64{1, 0, 0})
	p2, _ := v3.NewMatrix([]float64{0, 0, 0})
	p3, _ := v3.NewMatrix([]float64{0, 1, 0})
	p4, _ := v3.NewMatrix([]float64{0, 1, 1})
	//Rad2Deg carries 6 significant figures, so degrees are only good
	//to about 1e-4
	if a := Angle(p1, p2, p3); math.Abs(a-90) > 1e-4 {
		Te.Errorf("angle %f, want 90", a)
	}
	if d := Dihedral(p1, p2, p3, p4); math.Abs(d+90) > 1e-4 {
		Te.Errorf("dihedral %f, want -90", d)
	}
	if d := Distance(p1, p3); math.Abs(d-math.Sqrt2) > 1e-8 {
		Te.Errorf("distance %f, want sqrt(2)", d)
	}
	points, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		2, 0, 0,
		0, 2, 0,
		2, 2, 0,
	})
	c := Centroid(points)
	if math.Abs(c.At(0, 0)-1) > 1e-8 || math.Abs(c.At(0, 1)-1) > 1e-8 || math.Abs(c.At(0, 2)) > 1e-8 {
		Te.Errorf("centroid (%f, %f, %f), want (1, 1, 0)", c.At(0, 0), c.At(0, 1), c.At(0, 2))
	}
	normal, err := PlaneNormal(points)
	if err != nil {
		Te.Fatal(err)
	}
	if z := math.Abs(normal.At(0, 2)); math.Abs(z-1) > 1e-8 {
		Te.Errorf("normal of the xy plane should be (0, 0, +-1), got z=%f", z)
	}
	if _, err := PlaneNormal(p1); err == nil {
		Te.Error("a single point defines no plane")
	}
}

func TestMetals(Te *testing.T) {
	if !IsMetal(30) || !IsMetal(26) || !IsMetal(46) || !IsMetal(78) {
		Te.Error("d-block elements should be metals")
	}
	if IsMetal(6) || IsMetal(1) || IsMetal(8) || IsMetal(16) {
		Te.Error("organic elements are not metals")
	}
	//a zinc bound to two waters through the oxygens
	zs := []int{30, 8, 1, 1, 8, 1, 1}
	atoms := make([]*Atom, len(zs))
	for i, z := range zs {
		atoms[i] = NewAtom(z)
	}
	top, err := NewTopology(atoms, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	for _, p := range [][2]int{{0, 1}, {1, 2}, {1, 3}, {0, 4}, {4, 5}, {4, 6}} {
		if _, err := top.AddBond(p[0], p[1], Single); err != nil {
			Te.Fatal(err)
		}
	}
	metals := MetalAtoms(top)
	if len(metals) != 1 || metals[0].Z != 30 {
		Te.Fatalf("found %d metals, want the zinc", len(metals))
	}
	mbonds, partners := MetalBonds(top, metals)
	if len(mbonds) != 2 || len(partners) != 2 {
		Te.Errorf("zinc has %d metal bonds, want 2", len(mbonds))
	}
	clean, substituted := WithoutMetals(top)
	if len(substituted) != 1 || substituted[0] != 0 {
		Te.Errorf("substituted atoms %v, want [0]", substituted)
	}
	if clean.Atom(0).Z != 1 || clean.Atom(0).Symbol != "H" {
		Te.Error("the metal was not replaced by a hydrogen")
	}
	for _, b := range clean.Bonds() {
		if b.At1.ID == 0 || b.At2.ID == 0 {
			Te.Error("bonds to the old metal should be gone")
		}
	}
	//the original topology is untouched
	if top.Atom(0).Z != 30 || len(top.Bonds()) != 6 {
		Te.Error("WithoutMetals modified its input")
	}
}

func TestMOLWrite(Te *testing.T) {
	mol, err := XYZRead("test/sample.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if err := AssignBonds(mol.Coords[0], mol.Topology); err != nil {
		Te.Fatal(err)
	}
	out := Te.TempDir() + "/methanol.mol"
	if err := MOLWrite(out, mol.Coords[0], mol, mol.Bonds()); err != nil {
		Te.Fatal(err)
	}
	content, err := os.ReadFile(out)
	if err != nil {
		Te.Fatal(err)
	}
	text := string(content)
	if !strings.Contains(text, "V2000") || !strings.Contains(text, "M  END") {
		Te.Errorf("not a V2000 mol file:\n%s", text)
	}
	if !strings.Contains(text, "  6  5") {
		Te.Errorf("counts line misses 6 atoms and 5 bonds:\n%s", text)
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 15 {
		Te.Fatalf("mol file too short: %d lines", len(lines))
	}
}

func TestEnergyPlot(Te *testing.T) {
	out := Te.TempDir() + "/energies.png"
	err := EnergyPlot([]float64{10.0, 12.5, 15.2, 30.1}, out)
	if err != nil {
		Te.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		Te.Errorf("plot file missing or empty: %v", err)
	}
	if err := EnergyPlot(nil, out); err == nil {
		Te.Error("plotting no energies should be an error")
	}
}

func TestTopologyEdgeCases(Te *testing.T) {
	atoms := []*Atom{NewAtom(6), NewAtom(6)}
	top, err := NewTopology(atoms, 0, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := top.AddBond(0, 0, Single); err == nil {
		Te.Error("self bonds should be rejected")
	}
	if _, err := top.AddBond(0, 5, Single); err == nil {
		Te.Error("out of range bonds should be rejected")
	}
	if _, err := top.AddBond(0, 1, Single); err != nil {
		Te.Fatal(err)
	}
	if _, err := top.AddBond(1, 0, Single); err == nil {
		Te.Error("duplicate bonds should be rejected")
	}
	masses, err := top.Masses()
	if err != nil {
		Te.Fatal(err)
	}
	if len(masses) != 2 || math.Abs(masses[0]-12.011) > 0.1 {
		Te.Errorf("wrong masses %v", masses)
	}
}
