/*
 * atoms.go, part of molkit.
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
	"fmt"

	v3 "github.com/rmera/molkit/v3"
)

// Atom contains the per-atom data except for the coordinates, which
// live in a separate matrix (one row per atom).
type Atom struct {
	Name   string
	ID     int //0-based index of the atom in its molecule.
	Z      int //atomic number
	Symbol string
	Charge int //formal charge
	Mass   float64
	Bonds  []*Bond
}

// NewAtom returns an atom of atomic number z. The symbol and mass are
// filled from z, when known.
func NewAtom(z int) *Atom {
	at := new(Atom)
	at.Z = z
	at.Symbol = Z2Symbol[z]
	at.Mass = symbolMass[at.Symbol]
	return at
}

// Copy returns a copy of the Atom. The bond list is not copied, as
// bonds reference other atoms.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("molkit: attempted to copy a nil atom")
	}
	newat := new(Atom)
	newat.Name = A.Name
	newat.ID = A.ID
	newat.Z = A.Z
	newat.Symbol = A.Symbol
	newat.Charge = A.Charge
	newat.Mass = A.Mass
	return newat
}

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// AtomMultiCharger is an Atomer that also gives a total charge and
// multiplicity.
type AtomMultiCharger interface {
	Atomer

	//Charge gets the total charge of the topology
	Charge() int

	//Multi returns the multiplicity of the topology
	Multi() int
}

// Masser can return a slice with the masses of each atom in the
// reference.
type Masser interface {
	Masses() ([]float64, error)
}

/*****Topology type***/

// Topology contains information about a molecule which is not expected
// to change in time, i.e. everything except for coordinates.
type Topology struct {
	atoms    []*Atom
	charge   int
	multi    int
	bonds    []*Bond
	nextBond int
}

// NewTopology makes a topology from the given atoms, total charge and
// multiplicity. It returns an error if ats is nil. It doesn't check
// that the charge and multiplicity are consistent with the atoms.
func NewTopology(ats []*Atom, charge, multi int) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("molkit.NewTopology: supplied a nil atom slice")
	}
	top := new(Topology)
	top.atoms = ats
	top.charge = charge
	top.multi = multi
	top.FillIndexes()
	return top, nil
}

// Charge gets the total charge of the topology.
func (T *Topology) Charge() int {
	return T.charge
}

// Multi returns the multiplicity of the topology.
func (T *Topology) Multi() int {
	return T.multi
}

// SetCharge sets the total charge of the topology to i.
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

// SetMulti sets the multiplicity of the topology to i.
func (T *Topology) SetMulti(i int) {
	T.multi = i
}

// Atom returns the Atom corresponding to the index i of the Atom slice
// in the Topology. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("molkit.Topology: requested atom out of bounds")
	}
	return T.atoms[i]
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// FillIndexes sets the ID of each atom to its current position in the
// topology.
func (T *Topology) FillIndexes() {
	for i, at := range T.atoms {
		at.ID = i
	}
}

// Bonds returns the bonds of the topology.
func (T *Topology) Bonds() []*Bond {
	return T.bonds
}

// AddBond bonds atoms i and j with the bond order given. Bond indexes
// are assigned sequentially. It returns the new bond, or an error if
// either index is out of range or the bond already exists.
func (T *Topology) AddBond(i, j int, order float64) (*Bond, error) {
	errid := "Topology/AddBond"
	if i >= T.Len() || j >= T.Len() || i < 0 || j < 0 {
		return nil, fmt.Errorf("%s: atom index out of range (%d-%d, %d atoms)", errid, i, j, T.Len())
	}
	if i == j {
		return nil, fmt.Errorf("%s: can't bond atom %d to itself", errid, i)
	}
	for _, b := range T.atoms[i].Bonds {
		if b.Cross(T.atoms[i]).ID == j {
			return nil, fmt.Errorf("%s: atoms %d and %d are already bonded", errid, i, j)
		}
	}
	b := &Bond{Index: T.nextBond, At1: T.atoms[i], At2: T.atoms[j], Order: order}
	T.nextBond++
	T.atoms[i].Bonds = append(T.atoms[i].Bonds, b)
	T.atoms[j].Bonds = append(T.atoms[j].Bonds, b)
	T.bonds = append(T.bonds, b)
	return b, nil
}

// Masses returns a slice with the masses of all atoms, or an error if
// any of them is missing.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		at := T.Atom(i)
		if at.Mass == 0 {
			return nil, fmt.Errorf("molkit.Topology/Masses: no mass for atom %d (%s)", i, at.Symbol)
		}
		mass[i] = at.Mass
	}
	return mass, nil
}

// CopyAtoms returns a copy of the topology. Bonds are rebuilt between
// the copied atoms.
func (T *Topology) CopyAtoms() *Topology {
	top := new(Topology)
	top.atoms = make([]*Atom, T.Len())
	for key, val := range T.atoms {
		top.atoms[key] = val.Copy()
	}
	top.charge = T.charge
	top.multi = T.multi
	for _, b := range T.bonds {
		top.AddBond(b.At1.ID, b.At2.ID, b.Order) //can't fail, indexes come from a valid topology
	}
	return top
}

// SomeAtoms returns a new topology with the atoms in the positions
// given by atomlist, in order. The returned atoms are shared with the
// parent, whose charge and multiplicity are carried over unchanged.
func (T *Topology) SomeAtoms(atomlist []int) (*Topology, error) {
	var ret []*Atom
	lenatoms := T.Len()
	for k, j := range atomlist {
		if j > lenatoms-1 {
			return nil, fmt.Errorf("molkit.Topology/SomeAtoms: atom requested (number: %d, value: %d) out of range", k, j)
		}
		ret = append(ret, T.atoms[j])
	}
	top := new(Topology)
	top.atoms = ret
	top.charge = T.charge
	top.multi = T.multi
	return top, nil
}

/**Type Molecule**/

// Molecule contains the full info for a molecule in one or several
// geometries ("frames"). Everything except the coordinates is in the
// embedded Topology.
type Molecule struct {
	*Topology
	Coords  []*v3.Matrix
	current int
}

// NewMolecule makes a molecule from a topology and a set of coordinate
// frames. It checks that every frame has one row per atom.
func NewMolecule(top *Topology, coords []*v3.Matrix) (*Molecule, error) {
	errid := "molkit.NewMolecule"
	if top == nil {
		return nil, fmt.Errorf("%s: supplied a nil topology", errid)
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("%s: supplied no coordinates", errid)
	}
	mol := new(Molecule)
	mol.Topology = top
	mol.Coords = coords
	if err := mol.Corrupted(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return mol, nil
}

// Corrupted checks that the coordinates match the number of atoms in
// every frame.
func (M *Molecule) Corrupted() error {
	for i := range M.Coords {
		if M.Len() != M.Coords[i].NVecs() {
			return fmt.Errorf("inconsistent coordinates/atoms in frame %d: atoms %d, coords: %d", i, M.Len(), M.Coords[i].NVecs())
		}
	}
	return nil
}

// Copy returns a deep copy of the molecule, including coordinates.
func (M *Molecule) Copy() *Molecule {
	mol := new(Molecule)
	mol.Topology = M.CopyAtoms()
	mol.Coords = make([]*v3.Matrix, 0, len(M.Coords))
	for _, v := range M.Coords {
		mol.Coords = append(mol.Coords, v.Copy())
	}
	return mol
}

// Coord returns a view of the coordinates of the given atom in the
// given frame. Panics if out of range.
func (M *Molecule) Coord(atom, frame int) *v3.Matrix {
	if frame >= len(M.Coords) {
		panic(fmt.Sprintf("molkit.Molecule: frame requested (%d) out of range", frame))
	}
	if atom >= M.Coords[frame].NVecs() {
		panic(fmt.Sprintf("molkit.Molecule: requested coordinate (%d) out of bounds (%d)", atom, M.Coords[frame].NVecs()))
	}
	return M.Coords[frame].VecView(atom)
}

// AddFrame appends a matrix of coordinates at the end of Coords. It
// checks that the number of rows matches the number of atoms.
func (M *Molecule) AddFrame(newframe *v3.Matrix) {
	if newframe == nil {
		panic("molkit.Molecule: attempted to add nil frame")
	}
	if M.Len() != newframe.NVecs() {
		panic(fmt.Sprintf("molkit.Molecule: wrong number of coordinates (%d)", newframe.NVecs()))
	}
	M.Coords = append(M.Coords, newframe)
}

// LenFrames returns the number of frames in the molecule.
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

// WithCoords returns a copy of the molecule with the single frame
// given replacing all previous frames. The topology is shared, not
// copied.
func (M *Molecule) WithCoords(coords *v3.Matrix) (*Molecule, error) {
	return NewMolecule(M.Topology, []*v3.Matrix{coords})
}
