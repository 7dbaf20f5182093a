/*
 * mol.go, part of molkit.
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
	"io"
	"os"

	v3 "github.com/rmera/molkit/v3"
)

// MOLWrite writes the given geometry as an MDL molfile (V2000
// connection table). The OpenBabel and MacroModel wrappers use this
// format as engine input, so bonds should be assigned.
func MOLWrite(filename string, coords *v3.Matrix, mol Atomer, bonds []*Bond) error {
	errid := "molkit.MOLWrite"
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer out.Close()
	if err := molWrite(out, coords, mol, bonds); err != nil {
		return fmt.Errorf("%s: %s: %w", errid, filename, err)
	}
	return nil
}

func molWrite(out io.Writer, coords *v3.Matrix, mol Atomer, bonds []*Bond) error {
	if coords == nil || mol == nil {
		return fmt.Errorf("given nil coordinates or topology")
	}
	if mol.Len() != coords.NVecs() {
		return fmt.Errorf("inconsistent atoms (%d) and coordinates (%d)", mol.Len(), coords.NVecs())
	}
	fmt.Fprintf(out, "\n  molkit\n\n")
	if _, err := fmt.Fprintf(out, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", mol.Len(), len(bonds)); err != nil {
		return err
	}
	for i := 0; i < mol.Len(); i++ {
		c := coords.Row(i)
		at := mol.Atom(i)
		_, err := fmt.Fprintf(out, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n", c[0], c[1], c[2], at.Symbol)
		if err != nil {
			return err
		}
	}
	for _, b := range bonds {
		order := 1
		switch b.Order {
		case Double:
			order = 2
		case Triple:
			order = 3
		case Aromatic:
			order = 4
		}
		//molfile atom numbering is 1-based
		if _, err := fmt.Fprintf(out, "%3d%3d%3d  0\n", b.At1.ID+1, b.At2.ID+1, order); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(out, "M  END\n")
	return err
}
