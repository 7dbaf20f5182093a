/*
 * atomicdata.go, part of molkit.
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

// Z2Symbol matches atomic numbers to elemental symbols.
var Z2Symbol = map[int]string{
	1: "H", 2: "He", 3: "Li", 4: "Be", 5: "B", 6: "C",
	7: "N", 8: "O", 9: "F", 10: "Ne", 11: "Na", 12: "Mg",
	13: "Al", 14: "Si", 15: "P", 16: "S", 17: "Cl",
	18: "Ar", 19: "K", 20: "Ca", 21: "Sc", 22: "Ti",
	23: "V", 24: "Cr", 25: "Mn", 26: "Fe", 27: "Co",
	28: "Ni", 29: "Cu", 30: "Zn", 31: "Ga", 32: "Ge",
	33: "As", 34: "Se", 35: "Br", 36: "Kr", 37: "Rb",
	38: "Sr", 39: "Y", 40: "Zr", 41: "Nb", 42: "Mo",
	43: "Tc", 44: "Ru", 45: "Rh", 46: "Pd", 47: "Ag",
	48: "Cd", 49: "In", 50: "Sn", 51: "Sb", 52: "Te",
	53: "I", 54: "Xe", 55: "Cs", 56: "Ba", 57: "La",
	58: "Ce", 59: "Pr", 60: "Nd", 61: "Pm", 62: "Sm",
	63: "Eu", 64: "Gd", 65: "Tb", 66: "Dy", 67: "Ho",
	68: "Er", 69: "Tm", 70: "Yb", 71: "Lu", 72: "Hf",
	73: "Ta", 74: "W", 75: "Re", 76: "Os", 77: "Ir",
	78: "Pt", 79: "Au", 80: "Hg", 81: "Tl", 82: "Pb",
	83: "Bi", 84: "Po", 85: "At", 86: "Rn", 87: "Fr",
	88: "Ra", 89: "Ac", 90: "Th", 91: "Pa", 92: "U",
	93: "Np", 94: "Pu", 95: "Am", 96: "Cm", 97: "Bk",
	98: "Cf", 99: "Es", 100: "Fm", 101: "Md", 102: "No",
	103: "Lr", 104: "Rf", 105: "Db", 106: "Sg", 107: "Bh",
	108: "Hs", 109: "Mt", 110: "Ds", 111: "Rg", 112: "Cn",
	113: "Nh", 114: "Fl", 115: "Mc", 116: "Lv",
	117: "Ts", 118: "Og",
}

// Symbol2Z is the inverse of Z2Symbol.
var Symbol2Z = map[string]int{}

func init() {
	for k, v := range Z2Symbol {
		Symbol2Z[v] = k
	}
}

// A map for assigning mass to elements.
// Organic elements plus the transition metals handled by the
// metal-substitution helpers. Not every element is present.
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Al": 26.98,
	"Sc": 44.96,
	"Ti": 47.87,
	"V":  50.94,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Y":  88.91,
	"Zr": 91.22,
	"Nb": 92.91,
	"Mo": 95.95,
	"Ru": 101.07,
	"Rh": 102.91,
	"Pd": 106.42,
	"Ag": 107.87,
	"Cd": 112.41,
	"Hf": 178.49,
	"Ta": 180.95,
	"W":  183.84,
	"Re": 186.21,
	"Os": 190.23,
	"Ir": 192.22,
	"Pt": 195.08,
	"Au": 196.97,
	"Hg": 200.59,
	"Si": 28.08,
	"Be": 9.012,
	"B":  10.81,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

// A map for assigning covalent radii to elements
// Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.4,  // 0.31 altered: H always has only one bond, so a longer radius doesn't hurt, the extra bonds get eliminated later.
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Al": 1.21,
	"Sc": 1.7,
	"Ti": 1.6,
	"V":  1.53,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Y":  1.9,
	"Zr": 1.75,
	"Nb": 1.64,
	"Mo": 1.54,
	"Ru": 1.46,
	"Rh": 1.42,
	"Pd": 1.39,
	"Ag": 1.45,
	"Cd": 1.44,
	"Hf": 1.75,
	"Ta": 1.7,
	"W":  1.62,
	"Re": 1.51,
	"Os": 1.44,
	"Ir": 1.41,
	"Pt": 1.36,
	"Au": 1.36,
	"Hg": 1.32,
	"Si": 1.11,
	"Be": 0.96,
	"B":  0.84,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

// A map for checking that atoms don't have too many bonds. A value of 0
// means undefined, i.e. the atom shouldn't be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"N":  0, //undefined
	"P":  0,
	"S":  0,
	"Se": 0,
	"Be": 0,
	"F":  1,
	"Br": 1,
	"I":  1,
}
