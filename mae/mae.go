/*
 * mae.go, part of molkit.
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

// Package mae reads Schrodinger Maestro files (.mae and the
// gzip-compressed .maegz). The format is a sequence of named blocks
// delimited by curly braces; each block holds a column-label section
// and a data section separated by ":::" lines. Only the parts needed
// to recover geometries, bonds and conformer energies are handled.
package mae

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/molkit"
	v3 "github.com/rmera/molkit/v3"
)

var braces = regexp.MustCompile(`[{}]`)

// splitBlocks divides the various sections of a .mae file across curly
// braces. The text before each "{" acts as the header of the block that
// follows it.
func splitBlocks(content string) []string {
	return braces.Split(content, -1)
}

// table is the contents of a data block: the column labels and the
// data rows, which come separated by ":::" lines.
type table struct {
	labels []string
	rows   [][]string
}

func parseTable(block string) (*table, error) {
	parts := strings.Split(block, ":::")
	if len(parts) < 2 {
		return nil, fmt.Errorf("block has no ::: separator")
	}
	t := new(table)
	for _, l := range strings.Split(parts[0], "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			t.labels = append(t.labels, l)
		}
	}
	for _, l := range strings.Split(parts[1], "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		fields := strings.Fields(l)
		//atom names can be empty, left as a lone quote character
		row := make([]string, 0, len(fields))
		for _, w := range fields {
			if w != `"` {
				row = append(row, w)
			}
		}
		if len(row) != len(t.labels) {
			return nil, fmt.Errorf("number of labels (%d) does not match number of columns (%d)", len(t.labels), len(row))
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// column returns the index of the first label containing key, or -1.
func (t *table) column(key string) int {
	for i, l := range t.labels {
		if strings.Contains(l, key) {
			return i
		}
	}
	return -1
}

// MoleculeFromFile builds a molecule from the first structure held in
// a .mae file, bonds included.
func MoleculeFromFile(path string) (*molkit.Molecule, error) {
	errid := "mae.MoleculeFromFile"
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	mol, err := moleculeFromContent(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, path, err)
	}
	return mol, nil
}

func moleculeFromContent(content string) (*molkit.Molecule, error) {
	var atomBlock, bondBlock string
	prev := ""
	for _, block := range splitBlocks(content) {
		if strings.Contains(prev, "m_atom[") && atomBlock == "" {
			atomBlock = block
		}
		if strings.Contains(prev, "m_bond[") && bondBlock == "" {
			bondBlock = block
		}
		prev = block
	}
	if atomBlock == "" {
		return nil, fmt.Errorf("no m_atom block found")
	}
	at, err := parseTable(atomBlock)
	if err != nil {
		return nil, fmt.Errorf("m_atom block: %w", err)
	}
	xcol := at.column("x_coord")
	ycol := at.column("y_coord")
	zcol := at.column("z_coord")
	zncol := at.column("atomic_number")
	if xcol < 0 || ycol < 0 || zcol < 0 || zncol < 0 {
		return nil, fmt.Errorf("m_atom block misses coordinate or atomic number columns")
	}
	atoms := make([]*molkit.Atom, 0, len(at.rows))
	data := make([]float64, 0, len(at.rows)*3)
	for i, row := range at.rows {
		z, err := strconv.Atoi(row[zncol])
		if err != nil {
			return nil, fmt.Errorf("atom %d: bad atomic number %q", i, row[zncol])
		}
		atoms = append(atoms, molkit.NewAtom(z))
		for _, col := range []int{xcol, ycol, zcol} {
			n, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("atom %d: bad coordinate %q", i, row[col])
			}
			data = append(data, n)
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, err
	}
	top, err := molkit.NewTopology(atoms, 0, 1)
	if err != nil {
		return nil, err
	}
	if bondBlock != "" {
		bt, err := parseTable(bondBlock)
		if err != nil {
			return nil, fmt.Errorf("m_bond block: %w", err)
		}
		fromcol := bt.column("from")
		tocol := bt.column("to")
		ordercol := bt.column("order")
		if fromcol < 0 || tocol < 0 || ordercol < 0 {
			return nil, fmt.Errorf("m_bond block misses from/to/order columns")
		}
		for i, row := range bt.rows {
			from, err1 := strconv.Atoi(row[fromcol])
			to, err2 := strconv.Atoi(row[tocol])
			ocode, err3 := strconv.Atoi(row[ordercol])
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("bond %d ill-formed", i)
			}
			order, err := molkit.OrderFromCode(strconv.Itoa(ocode))
			if err != nil {
				return nil, fmt.Errorf("bond %d: %w", i, err)
			}
			//mae atom numbering is 1-based
			if _, err := top.AddBond(from-1, to-1, order); err != nil {
				return nil, fmt.Errorf("bond %d: %w", i, err)
			}
		}
	}
	return molkit.NewMolecule(top, []*v3.Matrix{coords})
}

// GunzipMaegz decompresses the .maegz file in maegzPath into a .mae
// file alongside it, returning the path of the new file.
func GunzipMaegz(maegzPath string) (string, error) {
	errid := "mae.GunzipMaegz"
	maePath := strings.Replace(maegzPath, ".maegz", ".mae", 1)
	in, err := os.Open(maegzPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	defer in.Close()
	gz, err := gzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", errid, maegzPath, err)
	}
	defer gz.Close()
	out, err := os.Create(maePath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, gz); err != nil {
		return "", fmt.Errorf("%s: %s: %w", errid, maegzPath, err)
	}
	return maePath, nil
}
