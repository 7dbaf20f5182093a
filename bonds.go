/*
 * bonds.go, part of molkit.
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
	"sort"

	v3 "github.com/rmera/molkit/v3"
)

// constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
	toofar   = 3
)

// Bond orders. Order 0 means undetermined.
const (
	Single   = 1.0
	Double   = 2.0
	Triple   = 3.0
	Aromatic = 1.5
)

// OrderFromCode translates a bond-order code as found in MOL2 and MAE
// files ("1", "2", "3", "am", "ar") to a numeric order. Amide bonds
// count as single. Unknown codes give an error.
func OrderFromCode(code string) (float64, error) {
	switch code {
	case "1", "am":
		return Single, nil
	case "2":
		return Double, nil
	case "3":
		return Triple, nil
	case "ar":
		return Aromatic, nil
	}
	return 0, fmt.Errorf("molkit.OrderFromCode: unknown bond order code %q", code)
}

// Bond connects two atoms of a molecule.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
	Order float64 //Order 0 means undetermined
	//Periodicity is the direction of the bond across periodic
	//boundaries, if any. All zeros for non-periodic bonds.
	Periodicity [3]int
}

// Cross returns the atom of the bond that is not origin. It panics if
// origin is in neither end, as that is a programming error.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.ID == B.At1.ID {
		return B.At2
	}
	if origin.ID == B.At2.ID {
		return B.At1
	}
	panic("molkit: trying to cross a bond: the origin atom given is not present in the bond")
}

// HasHydrogen returns true if either end of the bond is a hydrogen.
func (B *Bond) HasHydrogen() bool {
	return B.At1.Z == 1 || B.At2.Z == 1
}

// return a new *Bond slice with the bond with index id removed
func takefromslice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds)-1)
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}

// RemoveBond removes the bond b from both of its atoms and from the
// topology's bond list. It returns an error if the bond was not found
// in either atom.
func (T *Topology) RemoveBond(b *Bond) error {
	errid := "Topology/RemoveBond"
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b.Index)
	T.bonds = takefromslice(T.bonds, b.Index)
	if len(b.At1.Bonds) == lenb1 || len(b.At2.Bonds) == lenb2 {
		return fmt.Errorf("%s: failed to remove bond %d (%d-%d)", errid, b.Index, b.At1.ID, b.At2.ID)
	}
	return nil
}

// AssignBonds assigns bonds to a molecule based on a simple distance
// criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
// It might get slow for large systems; it's really not thought for
// proteins or macromolecules.
func AssignBonds(coord *v3.Matrix, top *Topology) error {
	errid := "molkit.AssignBonds"
	var t1, t2 *v3.Matrix
	var at1, at2 *Atom
	top.FillIndexes()
	t3 := v3.Zeros(1)
	tot := top.Len()
	for i := 0; i < tot; i++ {
		t1 = coord.VecView(i)
		at1 = top.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return fmt.Errorf("%s: couldn't find the covalent radius for %s %d", errid, at1.Symbol, i)
		}
		for j := i + 1; j < tot; j++ {
			t2 = coord.VecView(j)
			at2 = top.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return fmt.Errorf("%s: couldn't find the covalent radius for %s %d", errid, at2.Symbol, j)
			}
			t3.Sub(t2, t1)
			d := t3.Norm()
			if d < cov1+cov2+bondtol && d > tooclose {
				b, err := top.AddBond(i, j, 0)
				if err != nil {
					return fmt.Errorf("%s: %w", errid, err)
				}
				b.Dist = d
			}
		}
	}
	//Now we check that no atom has too many bonds, removing the
	//longest bonds of any offending atom.
	for i := 0; i < tot; i++ {
		at := top.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //no specified number of bonds for this atom.
			continue
		}
		sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for i := len(at.Bonds); i > max; i = len(at.Bonds) {
			err := top.RemoveBond(at.Bonds[len(at.Bonds)-1]) //we remove the longest bond
			if err != nil {
				return fmt.Errorf("%s: %w", errid, err)
			}
		}
	}
	return nil
}
