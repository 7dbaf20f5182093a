/*
 * xyz.go, part of molkit.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/molkit/v3"
)

// XYZRead reads an xyz file and returns a molecule. Multi-geometry
// files give a molecule with several frames.
func XYZRead(filename string) (*Molecule, error) {
	errid := "molkit.XYZRead"
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	mol, err := xyzRead(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, filename, err)
	}
	return mol, nil
}

func xyzRead(r *bufio.Reader) (*Molecule, error) {
	var atoms []*Atom
	coords := make([]*v3.Matrix, 0, 1)
	trim := strings.TrimSpace
	for {
		line, err := r.ReadString('\n')
		if err != nil { //EOF at a frame boundary is a normal end.
			break
		}
		natoms, err := strconv.Atoi(trim(line))
		if err != nil {
			return nil, fmt.Errorf("ill-formed atom count line %q", trim(line))
		}
		if _, err := r.ReadString('\n'); err != nil { //title line
			return nil, fmt.Errorf("truncated file: %w", err)
		}
		data := make([]float64, 0, natoms*3)
		first := atoms == nil
		for i := 0; i < natoms; i++ {
			line, err := r.ReadString('\n')
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("truncated file: %w", err)
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d ill-formed: %q", i, trim(line))
			}
			if first {
				at := new(Atom)
				at.Symbol = fields[0]
				at.Z = Symbol2Z[at.Symbol]
				at.Mass = symbolMass[at.Symbol]
				atoms = append(atoms, at)
			}
			for j := 1; j < 4; j++ {
				n, err2 := strconv.ParseFloat(fields[j], 64)
				if err2 != nil {
					return nil, fmt.Errorf("line %d ill-formed: %w", i, err2)
				}
				data = append(data, n)
			}
			if err == io.EOF && i < natoms-1 {
				return nil, fmt.Errorf("truncated file")
			}
		}
		frame, err := v3.NewMatrix(data)
		if err != nil {
			return nil, err
		}
		coords = append(coords, frame)
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("no geometries found")
	}
	top, err := NewTopology(atoms, 0, 1)
	if err != nil {
		return nil, err
	}
	return NewMolecule(top, coords)
}

// XYZWrite writes the given coordinates and atoms to filename in xyz
// format.
func XYZWrite(filename string, coords *v3.Matrix, mol Atomer) error {
	errid := "molkit.XYZWrite"
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer out.Close()
	if err := xyzWrite(out, coords, mol); err != nil {
		return fmt.Errorf("%s: %s: %w", errid, filename, err)
	}
	return nil
}

func xyzWrite(out io.Writer, coords *v3.Matrix, mol Atomer) error {
	if coords == nil || mol == nil {
		return fmt.Errorf("given nil coordinates or topology")
	}
	if mol.Len() != coords.NVecs() {
		return fmt.Errorf("inconsistent atoms (%d) and coordinates (%d)", mol.Len(), coords.NVecs())
	}
	if _, err := fmt.Fprintf(out, "%-4d\n\n", mol.Len()); err != nil {
		return err
	}
	for i := 0; i < mol.Len(); i++ {
		c := coords.Row(i)
		_, err := fmt.Fprintf(out, "%-2s  %12.6f %12.6f %12.6f\n", mol.Atom(i).Symbol, c[0], c[1], c[2])
		if err != nil {
			return err
		}
	}
	return nil
}
