/*
 * extract.go, part of molkit.
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

package mae

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// the field a MacroModel conformer search writes the potential energy to.
const energyField = "r_mmod_Potential_Energy"

// ConformerEnergy is the energy of one conformer in a .mae file,
// identified by its 1-based position among the structure blocks.
type ConformerEnergy struct {
	ID     int
	Energy float64 //kJ/mol
}

// Extractor pulls the lowest-energy conformers out of the -out.maegz
// file written by a MacroModel conformer search. The file holds every
// conformer found during the search along with its energy.
type Extractor struct {
	//MaegzPath is the path to the -out.maegz file of the search.
	MaegzPath string
	//MaePath is the path of the decompressed .mae file holding all
	//the conformers.
	MaePath string
	//Energies holds the id and energy of every conformer found,
	//sorted by increasing energy.
	Energies []ConformerEnergy
	//MinEnergy is the lowest energy found, in kJ/mol.
	MinEnergy float64
	//Path is the .mae file holding the extracted lowest energy
	//conformer.
	Path string

	content string
}

// NewExtractor decompresses <runName>-out.maegz, scans the conformer
// energies, and writes the n lowest-energy conformers each to its own
// .mae file. With n == 1 the file is named <run>-outEXTRACTED_<id>.mae;
// with more, a _conf_<i> suffix is added, i being the rank.
func NewExtractor(runName string, n int) (*Extractor, error) {
	errid := "mae.NewExtractor"
	if n < 1 {
		return nil, fmt.Errorf("%s: requested %d conformers", errid, n)
	}
	ex := new(Extractor)
	ex.MaegzPath = runName + "-out.maegz"
	var err error
	ex.MaePath, err = GunzipMaegz(ex.MaegzPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if err := ex.scanEnergies(); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, ex.MaePath, err)
	}
	if err := ex.extractConformers(n); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, ex.MaePath, err)
	}
	return ex, nil
}

// scanEnergies goes through all the data blocks in the .mae file. A
// conformer is a block preceded by an f_m_ct header; its energy block
// is the one holding the r_mmod_Potential_Energy field. Conformer ids
// count from 1, following the structure blocks of the file.
func (ex *Extractor) scanEnergies() error {
	content, err := os.ReadFile(ex.MaePath)
	if err != nil {
		return err
	}
	ex.content = string(content)
	prev := ""
	index := 1
	for _, block := range splitBlocks(ex.content) {
		if strings.Contains(prev, "f_m_ct") && strings.Contains(block, energyField) {
			energy, err := extractEnergy(block)
			if err != nil {
				return fmt.Errorf("conformer %d: %w", index, err)
			}
			ex.Energies = append(ex.Energies, ConformerEnergy{ID: index, Energy: energy})
			index++
		}
		prev = block
	}
	if len(ex.Energies) == 0 {
		return fmt.Errorf("no conformer energies found")
	}
	sort.SliceStable(ex.Energies, func(i, j int) bool { return ex.Energies[i].Energy < ex.Energies[j].Energy })
	ex.MinEnergy = ex.Energies[0].Energy
	return nil
}

// extractEnergy reads the energy value from a .mae energy data block,
// matching the label and value lines positionally.
func extractEnergy(block string) (float64, error) {
	parts := strings.Split(block, ":::")
	if len(parts) < 2 {
		return 0, fmt.Errorf("energy block has no ::: separator")
	}
	names := strings.Split(parts[0], "\n")
	values := strings.Split(parts[1], "\n")
	for i, name := range names {
		if !strings.Contains(name, energyField) {
			continue
		}
		if i >= len(values) {
			break
		}
		return strconv.ParseFloat(strings.TrimSpace(values[i]), 64)
	}
	return 0, fmt.Errorf("no %s field in block", energyField)
}

// extractConformers writes the n lowest-energy structure blocks, each
// in its own .mae file holding the file header plus that block.
func (ex *Extractor) extractConformers(n int) error {
	if n > len(ex.Energies) {
		return fmt.Errorf("requested %d conformers, search produced %d", n, len(ex.Energies))
	}
	//structure blocks are delimited by the f_m_ct keyword.
	blocks := strings.Split(ex.content, "f_m_ct")
	for i := 0; i < n; i++ {
		id := ex.Energies[i].ID
		if id >= len(blocks) {
			return fmt.Errorf("conformer %d not present in file", id)
		}
		newMae := blocks[0] + "f_m_ct" + blocks[id]
		var name string
		if n == 1 {
			name = strings.Replace(ex.MaePath, ".mae", fmt.Sprintf("EXTRACTED_%d.mae", id), 1)
		} else {
			name = strings.Replace(ex.MaePath, ".mae", fmt.Sprintf("EXTRACTED_%d_conf_%d.mae", id, i), 1)
		}
		if err := os.WriteFile(name, []byte(newMae), 0644); err != nil {
			return err
		}
		if i == 0 {
			ex.Path = name
		}
	}
	return nil
}

// LowestEnergyConformers returns the id and energy of the n lowest
// energy conformers, best first.
func (ex *Extractor) LowestEnergyConformers(n int) []ConformerEnergy {
	if n > len(ex.Energies) {
		n = len(ex.Energies)
	}
	return ex.Energies[:n]
}

// EnergyValues returns just the energies, sorted ascending. Handy for
// plotting.
func (ex *Extractor) EnergyValues() []float64 {
	es := make([]float64, len(ex.Energies))
	for i, v := range ex.Energies {
		es[i] = v.Energy
	}
	return es
}
