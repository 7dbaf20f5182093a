/*
 * doc.go, part of molkit.
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

// Package molkit provides atom and molecule structures for wrapping
// external molecular-modeling programs: facilities for reading and
// writing some files used in computational chemistry, geometric
// measurements, and helpers for molecules containing metal centers.
// The wrappers themselves are in the engine subpackage; the bonded
// graph abstraction is in the network subpackage.
package molkit

// Unit conversion constants. Energies in this library are given in
// kJ/mol unless stated otherwise.
const (
	H2KJ    = 2625.5  //Hartree to kJ/mol
	Kcal2KJ = 4.184   //kcal/mol to kJ/mol
	EV2KJ   = 96.4853 //electronvolt to kJ/mol
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
)
