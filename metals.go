/*
 * metals.go, part of molkit.
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

//Helpers for molecules with metal centers. Most classical force
//fields have no parameters for transition metals, so the optimizer
//wrappers substitute them with constrained dummy hydrogens and restore
//them afterwards.

package molkit

// IsMetal returns true for the transition metals of the three d-block
// rows (Sc-Zn, Y-Cd, Hf-Hg).
func IsMetal(z int) bool {
	return (z >= 21 && z <= 30) || (z >= 39 && z <= 48) || (z >= 72 && z <= 80)
}

// MetalAtoms returns the metal atoms in the molecule.
func MetalAtoms(mol Atomer) []*Atom {
	metals := make([]*Atom, 0)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if IsMetal(at.Z) {
			metals = append(metals, at)
		}
	}
	return metals
}

// HasMetal returns true if bond has at least one end in metals.
func HasMetal(bond *Bond, metals []*Atom) bool {
	for _, m := range metals {
		if bond.At1.ID == m.ID || bond.At2.ID == m.ID {
			return true
		}
	}
	return false
}

// MetalBonds returns the bonds of top that involve one of the given
// metal atoms, together with the IDs of the non-metal atoms bonded to
// a metal.
func MetalBonds(top *Topology, metals []*Atom) ([]*Bond, []int) {
	bonds := make([]*Bond, 0)
	ids2metal := make([]int, 0)
	for _, b := range top.Bonds() {
		for _, m := range metals {
			if b.At1.ID == m.ID {
				bonds = append(bonds, b)
				ids2metal = append(ids2metal, b.At2.ID)
				break
			}
			if b.At2.ID == m.ID {
				bonds = append(bonds, b)
				ids2metal = append(ids2metal, b.At1.ID)
				break
			}
		}
	}
	return bonds, ids2metal
}

// WithoutMetals returns a copy of the topology where every metal atom
// has been replaced by a neutral hydrogen and the bonds to metals
// removed. Atom IDs are preserved so constraint lists remain valid.
// The returned slice holds the IDs of the substituted atoms, which
// should be constrained during any optimization.
func WithoutMetals(top *Topology) (*Topology, []int) {
	clone := top.CopyAtoms()
	subst := make([]int, 0)
	metals := MetalAtoms(clone)
	mbonds, _ := MetalBonds(clone, metals)
	for _, b := range mbonds {
		clone.RemoveBond(b) //the bond comes from the topology, so this can't fail
	}
	for _, m := range metals {
		m.Z = 1
		m.Symbol = "H"
		m.Charge = 0
		m.Mass = symbolMass["H"]
		subst = append(subst, m.ID)
	}
	return clone, subst
}
